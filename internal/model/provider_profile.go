package model

import (
	"time"
)

// ProviderProfile 租户到网关的凭据绑定，同一 (tenant, provider) 至多一条 active
type ProviderProfile struct {
	ID         uint64    `gorm:"primaryKey"`
	TenantID   uint64    `gorm:"not null;index:idx_tenant_provider" json:"tenant_id"`
	Provider   string    `gorm:"type:varchar(32);not null;index:idx_tenant_provider" json:"provider"`
	Title      string    `gorm:"type:varchar(255)" json:"title"`
	ProfileKey string    `gorm:"type:varchar(128);not null" json:"-"`
	Status     string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active/inactive
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ProviderProfile) TableName() string {
	return "social_provider_profiles"
}
