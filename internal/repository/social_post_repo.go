package repository

import (
	"Megaphone/internal/model"
	"Megaphone/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SocialPostRepo interface {
	CreatePost(ctx context.Context, post *model.SocialPost) error
	GetPost(ctx context.Context, tenantID uint64, id uint64) (*model.SocialPost, error)
	GetPostByExternalID(ctx context.Context, externalID string) (*model.SocialPost, error)
	ListPosts(ctx context.Context, tenantID uint64, status string, page int, pageSize int) ([]*model.SocialPost, error)
	ListPublishedWithExternalID(ctx context.Context, tenantID uint64) ([]*model.SocialPost, error)
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	DeletePost(ctx context.Context, tenantID uint64, id uint64) error
}

type socialPostRepoImpl struct {
	db *gorm.DB
}

func NewSocialPostRepository(db *gorm.DB) SocialPostRepo {
	return &socialPostRepoImpl{db: db}
}

func (r *socialPostRepoImpl) CreatePost(ctx context.Context, post *model.SocialPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPost 按租户查询，不存在时返回 nil 而非错误
func (r *socialPostRepoImpl) GetPost(ctx context.Context, tenantID uint64, id uint64) (*model.SocialPost, error) {
	var post model.SocialPost
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPostByExternalID 供 webhook 反查本地帖子，跨租户
func (r *socialPostRepoImpl) GetPostByExternalID(ctx context.Context, externalID string) (*model.SocialPost, error) {
	var post model.SocialPost
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *socialPostRepoImpl) ListPosts(ctx context.Context, tenantID uint64, status string, page int, pageSize int) ([]*model.SocialPost, error) {
	posts := make([]*model.SocialPost, 0)
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedWithExternalID 批量同步的目标集合：已发布且有外部 ID 的帖子
func (r *socialPostRepoImpl) ListPublishedWithExternalID(ctx context.Context, tenantID uint64) ([]*model.SocialPost, error) {
	posts := make([]*model.SocialPost, 0)
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND external_id IS NOT NULL", tenantID, consts.PostStatusPublished).
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateFields 以 map 更新，nil 值写为 NULL（清空错误字段时用到）
func (r *socialPostRepoImpl) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.SocialPost{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *socialPostRepoImpl) DeletePost(ctx context.Context, tenantID uint64, id uint64) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&model.SocialPost{}).Error
}
