package handler

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/pkg/response"
	"Megaphone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SocialSyncHandler struct {
	engagementSvc service.EngagementSyncService
	commentSvc    service.CommentSyncService
}

func NewSocialSyncHandler(engagementSvc service.EngagementSyncService, commentSvc service.CommentSyncService) *SocialSyncHandler {
	return &SocialSyncHandler{
		engagementSvc: engagementSvc,
		commentSvc:    commentSvc,
	}
}

func (s *SocialSyncHandler) SyncPostEngagement(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.engagementSvc.SyncPost(c.Request.Context(), tenantID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *SocialSyncHandler) GetPostEngagement(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics, err := s.engagementSvc.GetPostEngagement(c.Request.Context(), tenantID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, metrics)
}

func (s *SocialSyncHandler) SyncPostComments(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	synced, err := s.commentSvc.SyncPost(c.Request.Context(), tenantID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.CommentSyncResultDTO{Synced: synced})
}

func (s *SocialSyncHandler) ListComments(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var page dto.PageDTO
	if err = c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.commentSvc.ListComments(c.Request.Context(), tenantID, postID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

func (s *SocialSyncHandler) Reply(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.ReplyDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.commentSvc.Reply(c.Request.Context(), tenantID, commentID, req.Message); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SyncAll 同步租户下所有已发布帖子的互动数据与评论
func (s *SocialSyncHandler) SyncAll(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")
	ctx := c.Request.Context()

	engagementReport, err := s.engagementSvc.SyncAll(ctx, tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentReport, err := s.commentSvc.SyncAll(ctx, tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"engagement": engagementReport,
		"comments":   commentReport,
	})
}
