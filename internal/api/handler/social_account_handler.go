package handler

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/pkg/response"
	"Megaphone/internal/service"

	"github.com/gin-gonic/gin"
)

type SocialAccountHandler struct {
	accountSvc service.SocialAccountService
}

func NewSocialAccountHandler(accountSvc service.SocialAccountService) *SocialAccountHandler {
	return &SocialAccountHandler{
		accountSvc: accountSvc,
	}
}

// Connect 生成账号绑定链接，前端跳转至网关完成授权
func (s *SocialAccountHandler) Connect(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	var req dto.ConnectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	connectURL, err := s.accountSvc.Connect(c.Request.Context(), tenantID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, connectURL)
}

// Callback 授权完成后回调，拉取网关侧的已连接平台
func (s *SocialAccountHandler) Callback(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")
	userID := c.GetUint64("user_id")

	accounts, err := s.accountSvc.SyncConnectedAccounts(c.Request.Context(), tenantID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, accounts)
}

func (s *SocialAccountHandler) Disconnect(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	if err := s.accountSvc.Disconnect(c.Request.Context(), tenantID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *SocialAccountHandler) ListAccounts(c *gin.Context) {
	tenantID := c.GetUint64("tenant_id")

	accounts, err := s.accountSvc.ListAccounts(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, accounts)
}
