package model

import (
	"time"
)

// SocialComment 外部平台评论的本地副本，ExternalID 全局唯一，同步只追加不覆盖。
// Sentiment 由其他协作方填写，本子系统不写。
type SocialComment struct {
	ID           uint64                 `gorm:"primaryKey"`
	TenantID     uint64                 `gorm:"not null;index:idx_comment_tenant_id" json:"tenant_id"`
	PostID       uint64                 `gorm:"not null;index:idx_post_id" json:"post_id"`
	Platform     string                 `gorm:"type:varchar(32);not null" json:"platform"`
	ExternalID   string                 `gorm:"type:varchar(128);not null;uniqueIndex:idx_comment_external_id" json:"external_id"`
	AuthorName   *string                `gorm:"type:varchar(255)" json:"author_name"`
	Content      string                 `gorm:"type:varchar(2000);not null" json:"content"`
	Sentiment    *string                `gorm:"type:varchar(20)" json:"sentiment"`
	Replied      bool                   `gorm:"type:tinyint(1);not null;default:0" json:"replied"`
	ReplyContent *string                `gorm:"type:varchar(2000)" json:"reply_content"`
	Metadata     map[string]interface{} `gorm:"type:json;serializer:json" json:"metadata"`
	PostedAt     time.Time              `gorm:"not null" json:"posted_at"`
	CreatedAt    time.Time              `json:"created_at"`
}

func (SocialComment) TableName() string {
	return "social_comments"
}
