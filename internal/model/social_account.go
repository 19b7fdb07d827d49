package model

import (
	"time"
)

// SocialAccount 租户在某平台上已连接的账号，连接回调时从网关 profile 同步
type SocialAccount struct {
	ID          uint64                 `gorm:"primaryKey"`
	TenantID    uint64                 `gorm:"not null;index:idx_tenant_platform,unique" json:"tenant_id"`
	Platform    string                 `gorm:"type:varchar(32);not null;index:idx_tenant_platform,unique" json:"platform"`
	AccountName string                 `gorm:"type:varchar(255)" json:"account_name"`
	Status      string                 `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Metadata    map[string]interface{} `gorm:"type:json;serializer:json" json:"metadata"`
	ConnectedBy uint64                 `gorm:"not null;default:0" json:"connected_by"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
