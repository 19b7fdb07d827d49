package model

import (
	"time"
)

// SocialPost 租户维度的一条待发布/已发布内容。
// ExternalID 与 metadata 中的平台帖子映射只在网关成功响应后写入，
// 发布失败时保持为空并记录 PublishError。
type SocialPost struct {
	ID           uint64                 `gorm:"primaryKey"`
	TenantID     uint64                 `gorm:"not null;index:idx_tenant_id" json:"tenant_id"`
	Content      string                 `gorm:"type:text;not null" json:"content"`
	Platforms    []string               `gorm:"type:json;serializer:json" json:"platforms"`
	MediaURLs    []string               `gorm:"type:json;serializer:json" json:"media_urls"`
	Status       string                 `gorm:"type:varchar(20);not null;default:'draft';index:idx_status" json:"status"` // draft/publishing/published/failed
	ExternalID   *string                `gorm:"type:varchar(128);index:idx_external_id" json:"external_id"`
	PublishError *string                `gorm:"type:varchar(2000)" json:"publish_error"`
	PublishedAt  *time.Time             `json:"published_at"`
	ScheduledAt  *time.Time             `json:"scheduled_at"`
	Metadata     map[string]interface{} `gorm:"type:json;serializer:json" json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func (SocialPost) TableName() string {
	return "social_posts"
}
