package service

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

// PublisherService 驱动帖子走 发布/定时 状态机。
// 状态流转：draft → publishing → published|failed，failed → publishing 仅限手动重试；
// 外部 ID 与平台帖子映射只在网关成功响应后写入。
type PublisherService interface {
	// Publish 立即发布。publish 调用返回后帖子一定处于 published 或 failed
	Publish(ctx context.Context, tenantID uint64, postID uint64) (*dto.PublishResultDTO, error)
	// Schedule 定时发布，定时由网关托管。失败不改变本地状态，只记录错误
	Schedule(ctx context.Context, tenantID uint64, postID uint64, scheduledAt time.Time) (*dto.PublishResultDTO, error)
	// ApplyStatusEvent 处理网关回推的发布状态事件，按外部 ID 定位帖子
	ApplyStatusEvent(ctx context.Context, externalID string, status string, messages []string) error
}

type publisherServiceImpl struct {
	postRepo    repository.SocialPostRepo
	profileRepo repository.ProviderProfileRepo
	gateway     ayrshare.Client
}

func NewPublisherService(
	postRepo repository.SocialPostRepo,
	profileRepo repository.ProviderProfileRepo,
	gateway ayrshare.Client,
) PublisherService {
	return &publisherServiceImpl{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		gateway:     gateway,
	}
}

func (s *publisherServiceImpl) Publish(ctx context.Context, tenantID uint64, postID uint64) (*dto.PublishResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != consts.PostStatusDraft && post.Status != consts.PostStatusFailed {
		return nil, ErrPostStateInvalid
	}

	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// 终态前置失败：用户未绑定账号，系统无法自动恢复
		if err = s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
			"status":        consts.PostStatusFailed,
			"publish_error": ErrNoProvider.Error(),
		}); err != nil {
			return nil, err
		}
		return &dto.PublishResultDTO{Success: false, Error: ErrNoProvider.Error()}, nil
	}

	// 先落 publishing，远程调用期间对读者可见
	if err = s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
		"status": consts.PostStatusPublishing,
	}); err != nil {
		return nil, err
	}

	resp, err := s.gateway.Publish(ctx, &ayrshare.PublishRequest{
		Post:       post.Content,
		Platforms:  post.Platforms,
		MediaURLs:  post.MediaURLs,
		ProfileKey: profile.ProfileKey,
	})
	if err != nil {
		// 传输层失败也不能把帖子留在 publishing
		errMsg := err.Error()
		if dbErr := s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
			"status":        consts.PostStatusFailed,
			"publish_error": errMsg,
		}); dbErr != nil {
			return nil, dbErr
		}
		log.WarnContext(ctx, "publish transport failure", "post_id", post.ID, "err", err)
		return &dto.PublishResultDTO{Success: false, Error: errMsg}, nil
	}

	if resp.Status == "error" || (len(resp.Errors) > 0 && resp.ID == "") {
		errMsg := joinPlatformErrors(resp.Errors)
		metadata := mergeMetadata(post.Metadata, map[string]interface{}{
			"ayrshare_errors": resp.Errors,
		})
		if err = s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
			"status":        consts.PostStatusFailed,
			"publish_error": errMsg,
			"metadata":      metadata,
		}); err != nil {
			return nil, err
		}
		return &dto.PublishResultDTO{
			Success:        false,
			Error:          errMsg,
			PlatformErrors: toPlatformErrorDTOs(resp.Errors),
		}, nil
	}

	// 成功（含部分平台失败的部分成功）：写入外部 ID 与平台映射
	platformPostIDs := make(map[string]interface{})
	platformPostURLs := make(map[string]interface{})
	postIDs := make([]dto.PlatformPostDTO, 0, len(resp.PostIDs))
	for _, pid := range resp.PostIDs {
		platformPostIDs[pid.Platform] = pid.ID
		if pid.PostURL != "" {
			platformPostURLs[pid.Platform] = pid.PostURL
		}
		postIDs = append(postIDs, dto.PlatformPostDTO{
			Platform: pid.Platform,
			ID:       pid.ID,
			PostURL:  pid.PostURL,
		})
	}

	extra := map[string]interface{}{
		"ayrshare_id":        resp.ID,
		"platform_post_ids":  platformPostIDs,
		"platform_post_urls": platformPostURLs,
	}
	if len(resp.Errors) > 0 {
		extra["ayrshare_errors"] = resp.Errors
	}

	now := time.Now()
	if err = s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
		"status":        consts.PostStatusPublished,
		"published_at":  now,
		"external_id":   resp.ID,
		"publish_error": nil,
		"metadata":      mergeMetadata(post.Metadata, extra),
	}); err != nil {
		return nil, err
	}

	return &dto.PublishResultDTO{
		Success:        true,
		RemoteID:       resp.ID,
		PostIDs:        postIDs,
		PlatformErrors: toPlatformErrorDTOs(resp.Errors),
	}, nil
}

func (s *publisherServiceImpl) Schedule(ctx context.Context, tenantID uint64, postID uint64, scheduledAt time.Time) (*dto.PublishResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// 与 Publish 不同：定时失败不落 failed，帖子保持可再次定时
		return &dto.PublishResultDTO{Success: false, Error: ErrNoProvider.Error()}, nil
	}

	resp, err := s.gateway.Publish(ctx, &ayrshare.PublishRequest{
		Post:         post.Content,
		Platforms:    post.Platforms,
		MediaURLs:    post.MediaURLs,
		ScheduleDate: scheduledAt.UTC().Format(time.RFC3339),
		ProfileKey:   profile.ProfileKey,
	})
	if err != nil {
		log.WarnContext(ctx, "schedule transport failure", "post_id", post.ID, "err", err)
		return &dto.PublishResultDTO{Success: false, Error: err.Error()}, nil
	}

	if resp.Status == "error" {
		errMsg := joinErrorMessages(resp.Errors)
		if dbErr := s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
			"publish_error": errMsg,
		}); dbErr != nil {
			return nil, dbErr
		}
		return &dto.PublishResultDTO{
			Success:        false,
			Error:          errMsg,
			PlatformErrors: toPlatformErrorDTOs(resp.Errors),
		}, nil
	}

	if err = s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
		"external_id":  resp.ID,
		"scheduled_at": scheduledAt,
		"metadata": mergeMetadata(post.Metadata, map[string]interface{}{
			"ayrshare_id": resp.ID,
		}),
	}); err != nil {
		return nil, err
	}

	return &dto.PublishResultDTO{Success: true, RemoteID: resp.ID}, nil
}

func (s *publisherServiceImpl) ApplyStatusEvent(ctx context.Context, externalID string, status string, messages []string) error {
	post, err := s.postRepo.GetPostByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if post == nil {
		log.InfoContext(ctx, "status event for unknown external id, ignored", "external_id", externalID)
		return nil
	}

	fields := map[string]interface{}{}
	if status == "success" {
		fields["status"] = consts.PostStatusPublished
		fields["published_at"] = time.Now()
		fields["publish_error"] = nil
	} else {
		fields["status"] = consts.PostStatusFailed
		if len(messages) > 0 {
			fields["publish_error"] = strings.Join(messages, "; ")
		}
	}

	return s.postRepo.UpdateFields(ctx, post.ID, fields)
}

// joinPlatformErrors 拼接 "platform: message" 形式的错误串
func joinPlatformErrors(errs []ayrshare.APIError) string {
	if len(errs) == 0 {
		return "Unknown error"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		platform := e.Platform
		if platform == "" {
			platform = "unknown"
		}
		parts = append(parts, platform+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

func joinErrorMessages(errs []ayrshare.APIError) string {
	if len(errs) == 0 {
		return "Scheduling failed"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

func toPlatformErrorDTOs(errs []ayrshare.APIError) []dto.PlatformErrorDTO {
	if len(errs) == 0 {
		return nil
	}
	out := make([]dto.PlatformErrorDTO, 0, len(errs))
	for _, e := range errs {
		platform := e.Platform
		if platform == "" {
			platform = "unknown"
		}
		out = append(out, dto.PlatformErrorDTO{Platform: platform, Message: e.Message})
	}
	return out
}

func mergeMetadata(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
