package service

import (
	"Megaphone/internal/api/config"
	"Megaphone/internal/api/dto"
	"Megaphone/internal/model"
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/pkg/redis"
	"Megaphone/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/semaphore"
)

// CommentSyncService 单向拉取网关侧评论，按外部评论 ID 去重，只追加不覆盖。
// 情感标注由其他协作方处理，这里不写 sentiment。
type CommentSyncService interface {
	// SyncPost 返回本次新插入的评论数
	SyncPost(ctx context.Context, tenantID uint64, postID uint64) (int, error)
	SyncAll(ctx context.Context, tenantID uint64) (*dto.SyncReportDTO, error)
	ListComments(ctx context.Context, tenantID uint64, postID uint64, page int, pageSize int) ([]*dto.SocialCommentDTO, error)
	// Reply 通过网关回复评论，成功后置 replied 标记
	Reply(ctx context.Context, tenantID uint64, commentID uint64, message string) error
	// ApplyCommentEvent 处理网关回推的新评论事件
	ApplyCommentEvent(ctx context.Context, event *dto.WebhookEventDTO) error
}

type commentSyncServiceImpl struct {
	postRepo    repository.SocialPostRepo
	profileRepo repository.ProviderProfileRepo
	commentRepo repository.SocialCommentRepo
	gateway     ayrshare.Client
	syncCfg     config.SyncConfig
}

func NewCommentSyncService(
	postRepo repository.SocialPostRepo,
	profileRepo repository.ProviderProfileRepo,
	commentRepo repository.SocialCommentRepo,
	gateway ayrshare.Client,
	syncCfg config.SyncConfig,
) CommentSyncService {
	return &commentSyncServiceImpl{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		commentRepo: commentRepo,
		gateway:     gateway,
		syncCfg:     syncCfg,
	}
}

func (s *commentSyncServiceImpl) SyncPost(ctx context.Context, tenantID uint64, postID uint64) (int, error) {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrPostNotFound
	}
	if post.ExternalID == nil || *post.ExternalID == "" {
		return 0, ErrNoExternalID
	}

	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrNoProvider
	}

	lockKey := consts.CommentSyncLockKey + strconv.FormatUint(postID, 10)
	lockToken := uuid.NewString()
	locked, err := redis.TryLock(ctx, lockKey, lockToken, time.Duration(s.syncCfg.LockTTL)*time.Second, 1)
	if err != nil {
		return 0, err
	}
	if !locked {
		return 0, ErrSyncInProgress
	}
	defer redis.UnLock(ctx, lockKey, lockToken)

	result, err := s.gateway.GetComments(ctx, *post.ExternalID, profile.ProfileKey)
	if err != nil {
		return 0, err
	}

	synced := 0
	for platform, payload := range result {
		// 非数组的平台键是错误标记，跳过
		comments, ok := ayrshare.DecodeComments(payload)
		if !ok {
			continue
		}

		for _, c := range comments {
			if c.CommentID == "" {
				continue
			}
			exists, existsErr := s.commentRepo.ExistsByExternalID(ctx, c.CommentID)
			if existsErr != nil {
				return synced, existsErr
			}
			if exists {
				continue
			}

			record := &model.SocialComment{
				TenantID:   tenantID,
				PostID:     postID,
				Platform:   platform,
				ExternalID: c.CommentID,
				AuthorName: commentAuthor(c.UserName, c.DisplayName),
				Content:    c.Comment,
				Metadata: map[string]interface{}{
					"like_count":       c.LikeCount,
					"ayrshare_post_id": *post.ExternalID,
				},
				PostedAt: parseRemoteTime(c.Created),
			}
			if err = s.commentRepo.CreateComment(ctx, record); err != nil {
				return synced, err
			}
			synced++
		}
	}

	return synced, nil
}

func (s *commentSyncServiceImpl) SyncAll(ctx context.Context, tenantID uint64) (*dto.SyncReportDTO, error) {
	posts, err := s.postRepo.ListPublishedWithExternalID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &dto.SyncReportDTO{Total: len(posts), Errors: make([]string, 0)}
	if len(posts) == 0 {
		return report, nil
	}

	limit := int64(s.syncCfg.Concurrency)
	if limit < 1 {
		limit = 1
	}
	sem := semaphore.NewWeighted(limit)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, post := range posts {
		if err = sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(p *model.SocialPost) {
			defer sem.Release(1)
			defer wg.Done()

			count, syncErr := s.SyncPost(ctx, tenantID, p.ID)

			mu.Lock()
			defer mu.Unlock()
			report.Synced += count
			if syncErr != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("%d: %s", p.ID, syncErr.Error()))
			}
		}(post)
	}
	wg.Wait()

	log.InfoContext(ctx, "comment sync batch done",
		"tenant_id", tenantID,
		"total", report.Total,
		"synced", report.Synced,
		"errors", len(report.Errors))

	return report, nil
}

func (s *commentSyncServiceImpl) ListComments(ctx context.Context, tenantID uint64, postID uint64, page int, pageSize int) ([]*dto.SocialCommentDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	comments, err := s.commentRepo.ListByPost(ctx, tenantID, postID, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SocialCommentDTO, 0, len(comments))
	if err = copier.Copy(&result, &comments); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *commentSyncServiceImpl) Reply(ctx context.Context, tenantID uint64, commentID uint64, message string) error {
	comment, err := s.commentRepo.GetComment(ctx, tenantID, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	post, err := s.postRepo.GetPost(ctx, tenantID, comment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.ExternalID == nil || *post.ExternalID == "" {
		return ErrNoExternalID
	}

	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNoProvider
	}

	resp, err := s.gateway.ReplyToComment(ctx, *post.ExternalID, message, []string{comment.Platform}, profile.ProfileKey)
	if err != nil {
		return err
	}
	if resp.Status == "error" || len(resp.Errors) > 0 {
		log.WarnContext(ctx, "reply rejected by gateway", "comment_id", commentID, "errors", resp.Errors)
		return ErrReplyRejected
	}

	return s.commentRepo.MarkReplied(ctx, comment.ID, message)
}

func (s *commentSyncServiceImpl) ApplyCommentEvent(ctx context.Context, event *dto.WebhookEventDTO) error {
	if event.PostID == "" || event.Comment == "" {
		return nil
	}

	post, err := s.postRepo.GetPostByExternalID(ctx, event.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		log.InfoContext(ctx, "comment event for unknown external id, ignored", "external_id", event.PostID)
		return nil
	}

	externalID := event.CommentID
	if externalID == "" {
		externalID = event.ID
	}
	if externalID == "" {
		return nil
	}

	exists, err := s.commentRepo.ExistsByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	platform := event.Platform
	if platform == "" {
		platform = "unknown"
	}

	return s.commentRepo.CreateComment(ctx, &model.SocialComment{
		TenantID:   post.TenantID,
		PostID:     post.ID,
		Platform:   platform,
		ExternalID: externalID,
		AuthorName: commentAuthor(event.UserName, ""),
		Content:    event.Comment,
		Metadata:   map[string]interface{}{"source": "webhook"},
		PostedAt:   parseRemoteTime(event.Created),
	})
}

func commentAuthor(userName string, displayName string) *string {
	if userName != "" {
		return &userName
	}
	if displayName != "" {
		return &displayName
	}
	return nil
}

// parseRemoteTime 远端时间缺失或不可解析时取当前时间
func parseRemoteTime(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Now()
}
