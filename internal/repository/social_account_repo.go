package repository

import (
	"Megaphone/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialAccountRepo interface {
	SaveOrUpdateAccount(ctx context.Context, account *model.SocialAccount) error
	ListAccounts(ctx context.Context, tenantID uint64) ([]*model.SocialAccount, error)
	DeactivateAll(ctx context.Context, tenantID uint64) error
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

// SaveOrUpdateAccount 连接回调时按 (tenant_id, platform) Upsert
func (r *socialAccountRepoImpl) SaveOrUpdateAccount(ctx context.Context, account *model.SocialAccount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"account_name",
			"status",
			"metadata",
		}),
	}).Create(account).Error
}

func (r *socialAccountRepoImpl) ListAccounts(ctx context.Context, tenantID uint64) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("platform ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *socialAccountRepoImpl) DeactivateAll(ctx context.Context, tenantID uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.SocialAccount{}).
		Where("tenant_id = ?", tenantID).
		Update("status", "inactive").Error
}
