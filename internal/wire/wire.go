package wire

import (
	"Megaphone/internal/api"
	"Megaphone/internal/api/config"
	"Megaphone/internal/api/handler"
	"Megaphone/internal/job"
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/cron"
	"Megaphone/internal/repository"
	"Megaphone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, gateway ayrshare.Client, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewSocialPostRepository(db)
	profileRepo := repository.NewProviderProfileRepository(db)
	accountRepo := repository.NewSocialAccountRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	commentRepo := repository.NewSocialCommentRepository(db)

	postService := service.NewSocialPostService(postRepo)
	publisherService := service.NewPublisherService(postRepo, profileRepo, gateway)
	accountService := service.NewSocialAccountService(profileRepo, accountRepo, gateway)
	engagementService := service.NewEngagementSyncService(postRepo, profileRepo, engagementRepo, gateway, cfg.Sync)
	commentService := service.NewCommentSyncService(postRepo, profileRepo, commentRepo, gateway, cfg.Sync)

	handlers := &api.HandlersGroup{
		SocialPostHandler:    handler.NewSocialPostHandler(postService, publisherService),
		SocialAccountHandler: handler.NewSocialAccountHandler(accountService),
		SocialSyncHandler:    handler.NewSocialSyncHandler(engagementService, commentService),
		WebhookHandler:       handler.NewWebhookHandler(publisherService, commentService),
	}

	router := api.SetupRouter(handlers)

	syncJob := job.NewSocialSyncJob(profileRepo, engagementService, commentService, cfg.Sync)
	cronMgr := cron.NewCronManager(cfg.Sync.CronSpec, syncJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
