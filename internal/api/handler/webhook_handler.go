package handler

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/pkg/response"
	"Megaphone/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	publisherSvc service.PublisherService
	commentSvc   service.CommentSyncService
}

func NewWebhookHandler(publisherSvc service.PublisherService, commentSvc service.CommentSyncService) *WebhookHandler {
	return &WebhookHandler{
		publisherSvc: publisherSvc,
		commentSvc:   commentSvc,
	}
}

// HandleAyrshare 处理网关回推。未知事件类型直接确认，避免网关反复重投
func (s *WebhookHandler) HandleAyrshare(c *gin.Context) {
	var event dto.WebhookEventDTO
	if err := c.ShouldBindJSON(&event); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()

	// 新版回推带 type，旧版只有 action，取 type 优先
	eventType := event.Type
	if eventType == "" {
		eventType = event.Action
	}

	switch eventType {
	case "post", "social", "scheduled":
		externalID := event.ID
		if externalID == "" {
			externalID = event.PostID
		}
		messages := make([]string, 0, len(event.Errors))
		for _, e := range event.Errors {
			messages = append(messages, e.Message)
		}
		if err := s.publisherSvc.ApplyStatusEvent(ctx, externalID, event.Status, messages); err != nil {
			response.Error(c, err)
			return
		}
	case "comment", "comments":
		if err := s.commentSvc.ApplyCommentEvent(ctx, &event); err != nil {
			response.Error(c, err)
			return
		}
	default:
		log.InfoContext(ctx, "Webhook Ignored", "action", event.Action, "type", event.Type)
	}

	response.Success(c, nil)
}
