package job

import (
	"Megaphone/internal/api/config"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/pkg/logger"
	"Megaphone/internal/pkg/redis"
	"Megaphone/internal/repository"
	"Megaphone/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SocialSyncJob 周期性拉取各租户已发布帖子的互动数据与评论。
// 租户级锁避免与手动触发的全量同步重叠
type SocialSyncJob struct {
	profileRepo   repository.ProviderProfileRepo
	engagementSvc service.EngagementSyncService
	commentSvc    service.CommentSyncService
	syncCfg       config.SyncConfig
}

func NewSocialSyncJob(
	profileRepo repository.ProviderProfileRepo,
	engagementSvc service.EngagementSyncService,
	commentSvc service.CommentSyncService,
	syncCfg config.SyncConfig,
) *SocialSyncJob {
	return &SocialSyncJob{
		profileRepo:   profileRepo,
		engagementSvc: engagementSvc,
		commentSvc:    commentSvc,
		syncCfg:       syncCfg,
	}
}

func (s *SocialSyncJob) Run() {
	traceID := "job-social-sync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	tenantIDs, err := s.profileRepo.ListActiveTenantIDs(ctx, consts.ProviderAyrshare)
	if err != nil {
		log.ErrorContext(ctx, "list active tenants error", "err", err)
		return
	}

	var tenantCount, postCount, errCount int

	for _, tid := range tenantIDs {
		lockKey := consts.TenantSyncLockKey + strconv.FormatUint(tid, 10)
		lockToken := uuid.NewString()
		locked, err := redis.TryLock(ctx, lockKey, lockToken, time.Duration(s.syncCfg.LockTTL)*time.Second, 1)
		if err != nil || !locked {
			continue
		}

		engagementReport, err := s.engagementSvc.SyncAll(ctx, tid)
		if err != nil {
			log.ErrorContext(ctx, "sync tenant engagement error", "tenant_id", tid, "err", err)
			errCount++
		} else {
			postCount += engagementReport.Synced
			errCount += len(engagementReport.Errors)
		}

		commentReport, err := s.commentSvc.SyncAll(ctx, tid)
		if err != nil {
			log.ErrorContext(ctx, "sync tenant comments error", "tenant_id", tid, "err", err)
			errCount++
		} else {
			errCount += len(commentReport.Errors)
		}

		tenantCount++
		redis.UnLock(ctx, lockKey, lockToken)
	}

	log.InfoContext(ctx, "sync social data success",
		"tenant_count", tenantCount,
		"post_count", postCount,
		"err_count", errCount)
}
