package handler

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/pkg/response"
	"Megaphone/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type SocialPostHandler struct {
	postSvc      service.SocialPostService
	publisherSvc service.PublisherService
}

func NewSocialPostHandler(postSvc service.SocialPostService, publisherSvc service.PublisherService) *SocialPostHandler {
	return &SocialPostHandler{
		postSvc:      postSvc,
		publisherSvc: publisherSvc,
	}
}

func (s *SocialPostHandler) CreatePost(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	var req dto.SocialPostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), tenantID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *SocialPostHandler) UpdatePost(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SocialPostBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.postSvc.UpdatePost(c.Request.Context(), tenantID, postID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *SocialPostHandler) GetPost(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), tenantID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, post)
}

func (s *SocialPostHandler) ListPosts(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	var query dto.SocialPostListDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), tenantID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, posts)
}

func (s *SocialPostHandler) DeletePost(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.postSvc.DeletePost(c.Request.Context(), tenantID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Publish 立即发布。发布失败同样返回 200，结果体现在 result.Success
func (s *SocialPostHandler) Publish(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.publisherSvc.Publish(c.Request.Context(), tenantID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *SocialPostHandler) Schedule(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ScheduleDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.publisherSvc.Schedule(c.Request.Context(), tenantID, postID, scheduledAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Retry 重试失败的帖子，状态机允许 failed 再次进入 publishing
func (s *SocialPostHandler) Retry(c *gin.Context) {
	s.Publish(c)
}

func parsePostID(c *gin.Context) (uint64, error) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return postID, nil
}
