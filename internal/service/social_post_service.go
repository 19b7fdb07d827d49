package service

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/model"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

// SocialPostService 帖子的本地维护：内容字段仅在未发布前可编辑，
// 状态与外部字段只由 PublisherService 变更
type SocialPostService interface {
	CreatePost(ctx context.Context, tenantID uint64, base *dto.SocialPostBaseDTO) (*dto.SocialPostDTO, error)
	UpdatePost(ctx context.Context, tenantID uint64, postID uint64, base *dto.SocialPostBaseDTO) error
	GetPost(ctx context.Context, tenantID uint64, postID uint64) (*dto.SocialPostDTO, error)
	ListPosts(ctx context.Context, tenantID uint64, query *dto.SocialPostListDTO) ([]*dto.SocialPostDTO, error)
	DeletePost(ctx context.Context, tenantID uint64, postID uint64) error
}

type socialPostServiceImpl struct {
	postRepo repository.SocialPostRepo
}

func NewSocialPostService(postRepo repository.SocialPostRepo) SocialPostService {
	return &socialPostServiceImpl{postRepo: postRepo}
}

func (s *socialPostServiceImpl) CreatePost(ctx context.Context, tenantID uint64, base *dto.SocialPostBaseDTO) (*dto.SocialPostDTO, error) {
	if err := checkPlatforms(base.Platforms); err != nil {
		return nil, err
	}
	post := &model.SocialPost{
		TenantID:  tenantID,
		Content:   base.Content,
		Platforms: base.Platforms,
		MediaURLs: base.MediaURLs,
		Status:    consts.PostStatusDraft,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post)
}

func (s *socialPostServiceImpl) UpdatePost(ctx context.Context, tenantID uint64, postID uint64, base *dto.SocialPostBaseDTO) error {
	if err := checkPlatforms(base.Platforms); err != nil {
		return err
	}
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.Status == consts.PostStatusPublished || post.Status == consts.PostStatusPublishing {
		return ErrPostNotEditable
	}

	return s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
		"content":    base.Content,
		"platforms":  base.Platforms,
		"media_urls": base.MediaURLs,
	})
}

func (s *socialPostServiceImpl) GetPost(ctx context.Context, tenantID uint64, postID uint64) (*dto.SocialPostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post)
}

func (s *socialPostServiceImpl) ListPosts(ctx context.Context, tenantID uint64, query *dto.SocialPostListDTO) ([]*dto.SocialPostDTO, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	posts, err := s.postRepo.ListPosts(ctx, tenantID, query.Status, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SocialPostDTO, 0, len(posts))
	if err = copier.Copy(&result, &posts); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *socialPostServiceImpl) DeletePost(ctx context.Context, tenantID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.postRepo.DeletePost(ctx, tenantID, postID)
}

func checkPlatforms(platforms []string) error {
	for _, p := range platforms {
		if !consts.IsSupportedPlatform(p) {
			return ErrParamInvalid
		}
	}
	return nil
}

func toPostDTO(post *model.SocialPost) (*dto.SocialPostDTO, error) {
	var result dto.SocialPostDTO
	if err := copier.Copy(&result, post); err != nil {
		return nil, err
	}
	return &result, nil
}
