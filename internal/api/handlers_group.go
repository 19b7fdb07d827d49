package api

import "Megaphone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	SocialPostHandler    *handler.SocialPostHandler
	SocialAccountHandler *handler.SocialAccountHandler
	SocialSyncHandler    *handler.SocialSyncHandler
	WebhookHandler       *handler.WebhookHandler
}
