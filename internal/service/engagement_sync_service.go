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
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/semaphore"
)

// EngagementSyncService 单向拉取网关侧互动指标并落到本地快照。
// 每个 (post, platform) 至多一条记录，后续同步原地覆盖。
type EngagementSyncService interface {
	SyncPost(ctx context.Context, tenantID uint64, postID uint64) error
	// SyncAll 同步租户下所有已发布帖子，单帖失败不中断批次
	SyncAll(ctx context.Context, tenantID uint64) (*dto.SyncReportDTO, error)
	GetPostEngagement(ctx context.Context, tenantID uint64, postID uint64) ([]*dto.EngagementDTO, error)
}

type engagementSyncServiceImpl struct {
	postRepo       repository.SocialPostRepo
	profileRepo    repository.ProviderProfileRepo
	engagementRepo repository.EngagementRepo
	gateway        ayrshare.Client
	syncCfg        config.SyncConfig
}

func NewEngagementSyncService(
	postRepo repository.SocialPostRepo,
	profileRepo repository.ProviderProfileRepo,
	engagementRepo repository.EngagementRepo,
	gateway ayrshare.Client,
	syncCfg config.SyncConfig,
) EngagementSyncService {
	return &engagementSyncServiceImpl{
		postRepo:       postRepo,
		profileRepo:    profileRepo,
		engagementRepo: engagementRepo,
		gateway:        gateway,
		syncCfg:        syncCfg,
	}
}

func (s *engagementSyncServiceImpl) SyncPost(ctx context.Context, tenantID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
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

	// 同一帖子的并发同步会在 Upsert 上互相覆盖，这里用锁串行化
	lockKey := consts.EngagementSyncLockKey + strconv.FormatUint(postID, 10)
	lockToken := uuid.NewString()
	locked, err := redis.TryLock(ctx, lockKey, lockToken, time.Duration(s.syncCfg.LockTTL)*time.Second, 1)
	if err != nil {
		return err
	}
	if !locked {
		return ErrSyncInProgress
	}
	defer redis.UnLock(ctx, lockKey, lockToken)

	analytics, err := s.gateway.GetPostAnalytics(ctx, *post.ExternalID, post.Platforms, profile.ProfileKey)
	if err != nil {
		return err
	}

	now := time.Now()
	for platform, payload := range analytics {
		// 平台键只带错误标记或非指标载荷时跳过，不算失败
		pa, ok := ayrshare.DecodePlatformAnalytics(payload)
		if !ok {
			continue
		}

		likes := pickMetric(pa.Analytics, "likeCount", "favoriteCount")
		comments := pickMetric(pa.Analytics, "commentCount", "replyCount")
		shares := pickMetric(pa.Analytics, "sharesCount", "retweetCount")
		impressions := pickMetric(pa.Analytics, "impressions", "views", "viewsCount")
		reach := pickMetric(pa.Analytics, "reachCount")
		clicks := pickMetric(pa.Analytics, "clicks")

		var engagementRate float64
		if impressions > 0 {
			total := float64(likes + comments + shares)
			engagementRate = math.Round(total/float64(impressions)*10000) / 100
		}

		record := &model.PostEngagement{
			TenantID:       tenantID,
			PostID:         postID,
			Platform:       platform,
			Likes:          likes,
			Comments:       comments,
			Shares:         shares,
			Impressions:    impressions,
			Reach:          reach,
			Clicks:         clicks,
			EngagementRate: engagementRate,
			RecordedAt:     now,
		}
		if err = s.engagementRepo.SaveOrUpdateEngagement(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

func (s *engagementSyncServiceImpl) SyncAll(ctx context.Context, tenantID uint64) (*dto.SyncReportDTO, error) {
	posts, err := s.postRepo.ListPublishedWithExternalID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &dto.SyncReportDTO{Total: len(posts), Errors: make([]string, 0)}
	if len(posts) == 0 {
		return report, nil
	}

	// 默认并发 1（严格串行），可通过 sync.concurrency 放开
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

			syncErr := s.SyncPost(ctx, tenantID, p.ID)

			mu.Lock()
			defer mu.Unlock()
			if syncErr != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("%d: %s", p.ID, syncErr.Error()))
			} else {
				report.Synced++
			}
		}(post)
	}
	wg.Wait()

	log.InfoContext(ctx, "engagement sync batch done",
		"tenant_id", tenantID,
		"total", report.Total,
		"synced", report.Synced,
		"errors", len(report.Errors))

	return report, nil
}

func (s *engagementSyncServiceImpl) GetPostEngagement(ctx context.Context, tenantID uint64, postID uint64) ([]*dto.EngagementDTO, error) {
	post, err := s.postRepo.GetPost(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	records, err := s.engagementRepo.ListByPost(ctx, tenantID, postID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.EngagementDTO, 0, len(records))
	if err = copier.Copy(&result, &records); err != nil {
		return nil, err
	}
	return result, nil
}

// pickMetric 按优先级取第一个存在的指标字段，兼容各平台的命名差异
func pickMetric(metrics map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		v, ok := metrics[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return int(parsed)
			}
		}
	}
	return 0
}
