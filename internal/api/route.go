package api

import (
	"Megaphone/internal/api/middleware"
	"Megaphone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 网关回推无登录态，靠路径与后续校验约束
		webhookGroup := apiGroup.Group("/webhooks")
		{
			webhookGroup.POST("/ayrshare", group.WebhookHandler.HandleAyrshare)
		}

		socialGroup := apiGroup.Group("/social")
		socialGroup.Use(middleware.AuthMiddleware())
		{
			postGroup := socialGroup.Group("/posts")
			{
				postGroup.POST("", group.SocialPostHandler.CreatePost)
				postGroup.GET("", group.SocialPostHandler.ListPosts)
				postGroup.GET("/:post_id", group.SocialPostHandler.GetPost)
				postGroup.PUT("/:post_id", group.SocialPostHandler.UpdatePost)
				postGroup.DELETE("/:post_id", group.SocialPostHandler.DeletePost)

				postGroup.POST("/:post_id/publish", group.SocialPostHandler.Publish)
				postGroup.POST("/:post_id/schedule", group.SocialPostHandler.Schedule)
				postGroup.POST("/:post_id/retry", group.SocialPostHandler.Retry)

				postGroup.GET("/:post_id/engagement", group.SocialSyncHandler.GetPostEngagement)
				postGroup.GET("/:post_id/comments", group.SocialSyncHandler.ListComments)
				postGroup.POST("/:post_id/sync/engagement", group.SocialSyncHandler.SyncPostEngagement)
				postGroup.POST("/:post_id/sync/comments", group.SocialSyncHandler.SyncPostComments)
			}

			commentGroup := socialGroup.Group("/comments")
			{
				commentGroup.POST("/:comment_id/reply", group.SocialSyncHandler.Reply)
			}

			accountGroup := socialGroup.Group("/accounts")
			{
				accountGroup.POST("/connect", group.SocialAccountHandler.Connect)
				accountGroup.POST("/callback", group.SocialAccountHandler.Callback)
				accountGroup.DELETE("", group.SocialAccountHandler.Disconnect)
				accountGroup.GET("", group.SocialAccountHandler.ListAccounts)
			}

			socialGroup.POST("/sync", group.SocialSyncHandler.SyncAll)
		}
	}

	return r
}
