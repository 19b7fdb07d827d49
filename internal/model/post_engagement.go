package model

import (
	"time"
)

// PostEngagement 某帖子在某平台的互动指标快照，(post_id, platform) 唯一，
// 后续同步原地覆盖而不追加历史
type PostEngagement struct {
	ID             uint64    `gorm:"primaryKey"`
	TenantID       uint64    `gorm:"not null;index:idx_engagement_tenant_id" json:"tenant_id"`
	PostID         uint64    `gorm:"not null;index:idx_post_platform,unique" json:"post_id"`
	Platform       string    `gorm:"type:varchar(32);not null;index:idx_post_platform,unique" json:"platform"`
	Likes          int       `gorm:"not null;default:0" json:"likes"`
	Comments       int       `gorm:"not null;default:0" json:"comments"`
	Shares         int       `gorm:"not null;default:0" json:"shares"`
	Impressions    int       `gorm:"not null;default:0" json:"impressions"`
	Reach          int       `gorm:"not null;default:0" json:"reach"`
	Clicks         int       `gorm:"not null;default:0" json:"clicks"`
	EngagementRate float64   `gorm:"not null;default:0" json:"engagement_rate"`
	RecordedAt     time.Time `gorm:"not null" json:"recorded_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func (PostEngagement) TableName() string {
	return "social_engagement"
}
