package dto

import "time"

// SocialPostBaseDTO 创建/编辑帖子
type SocialPostBaseDTO struct {
	Content   string   `json:"content" binding:"required"`
	Platforms []string `json:"platforms" binding:"required,min=1"`
	MediaURLs []string `json:"media_urls"`
}

// SocialPostListDTO 列表查询
type SocialPostListDTO struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft publishing published failed"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// SocialPostDTO 帖子详情
type SocialPostDTO struct {
	ID           uint64                 `json:"id"`
	Content      string                 `json:"content"`
	Platforms    []string               `json:"platforms"`
	MediaURLs    []string               `json:"media_urls"`
	Status       string                 `json:"status"`
	ExternalID   *string                `json:"external_id"`
	PublishError *string                `json:"publish_error"`
	PublishedAt  *time.Time             `json:"published_at"`
	ScheduledAt  *time.Time             `json:"scheduled_at"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
