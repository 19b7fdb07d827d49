package repository

import (
	"Megaphone/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepo interface {
	SaveOrUpdateEngagement(ctx context.Context, engagement *model.PostEngagement) error
	ListByPost(ctx context.Context, tenantID uint64, postID uint64) ([]*model.PostEngagement, error)
}

type engagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepo {
	return &engagementRepoImpl{db: db}
}

// SaveOrUpdateEngagement 采用 Upsert 逻辑。如果 post_id + platform 已存在，则原地覆盖各项数值
func (r *engagementRepoImpl) SaveOrUpdateEngagement(ctx context.Context, engagement *model.PostEngagement) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"likes",
			"comments",
			"shares",
			"impressions",
			"reach",
			"clicks",
			"engagement_rate",
			"recorded_at",
		}),
	}).Create(engagement).Error
}

func (r *engagementRepoImpl) ListByPost(ctx context.Context, tenantID uint64, postID uint64) ([]*model.PostEngagement, error) {
	records := make([]*model.PostEngagement, 0)
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND post_id = ?", tenantID, postID).
		Order("platform ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
