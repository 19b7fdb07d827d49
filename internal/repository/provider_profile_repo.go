package repository

import (
	"Megaphone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProviderProfileRepo interface {
	CreateProfile(ctx context.Context, profile *model.ProviderProfile) error
	GetActiveProfile(ctx context.Context, tenantID uint64, provider string) (*model.ProviderProfile, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	ListActiveTenantIDs(ctx context.Context, provider string) ([]uint64, error)
}

type providerProfileRepoImpl struct {
	db *gorm.DB
}

func NewProviderProfileRepository(db *gorm.DB) ProviderProfileRepo {
	return &providerProfileRepoImpl{db: db}
}

func (r *providerProfileRepoImpl) CreateProfile(ctx context.Context, profile *model.ProviderProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetActiveProfile 同一 (tenant, provider) 至多一条 active，不存在时返回 nil
func (r *providerProfileRepoImpl) GetActiveProfile(ctx context.Context, tenantID uint64, provider string) (*model.ProviderProfile, error) {
	var profile model.ProviderProfile
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND provider = ? AND status = ?", tenantID, provider, "active").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *providerProfileRepoImpl) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.ProviderProfile{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListActiveTenantIDs 定时同步任务的租户集合
func (r *providerProfileRepoImpl) ListActiveTenantIDs(ctx context.Context, provider string) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.db.WithContext(ctx).
		Model(&model.ProviderProfile{}).
		Where("provider = ? AND status = ?", provider, "active").
		Distinct().
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
