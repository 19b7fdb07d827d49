package repository

import (
	"Megaphone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type SocialCommentRepo interface {
	CreateComment(ctx context.Context, comment *model.SocialComment) error
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	GetComment(ctx context.Context, tenantID uint64, id uint64) (*model.SocialComment, error)
	ListByPost(ctx context.Context, tenantID uint64, postID uint64, page int, pageSize int) ([]*model.SocialComment, error)
	MarkReplied(ctx context.Context, id uint64, replyContent string) error
}

type socialCommentRepoImpl struct {
	db *gorm.DB
}

func NewSocialCommentRepository(db *gorm.DB) SocialCommentRepo {
	return &socialCommentRepoImpl{db: db}
}

func (r *socialCommentRepoImpl) CreateComment(ctx context.Context, comment *model.SocialComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ExistsByExternalID 同步去重依据：外部评论 ID 在库内全局唯一
func (r *socialCommentRepoImpl) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SocialComment{}).
		Where("external_id = ?", externalID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *socialCommentRepoImpl) GetComment(ctx context.Context, tenantID uint64, id uint64) (*model.SocialComment, error) {
	var comment model.SocialComment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *socialCommentRepoImpl) ListByPost(ctx context.Context, tenantID uint64, postID uint64, page int, pageSize int) ([]*model.SocialComment, error) {
	comments := make([]*model.SocialComment, 0)
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND post_id = ?", tenantID, postID).
		Order("posted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *socialCommentRepoImpl) MarkReplied(ctx context.Context, id uint64, replyContent string) error {
	return r.db.WithContext(ctx).
		Model(&model.SocialComment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"replied":       true,
			"reply_content": replyContent,
		}).Error
}
