package service

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/model"
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/repository"
	"context"
	"fmt"
	log "log/slog"

	"github.com/jinzhu/copier"
)

// SocialAccountService 租户与网关 Profile 的生命周期管理，
// 以及连接回调后已绑定平台账号的同步
type SocialAccountService interface {
	// Connect 生成一次性绑定链接；租户尚无 Profile 时先创建
	Connect(ctx context.Context, tenantID uint64, opts *dto.ConnectDTO) (*dto.ConnectURLDTO, error)
	// SyncConnectedAccounts 绑定完成回调：拉取网关侧已连接平台并落库
	SyncConnectedAccounts(ctx context.Context, tenantID uint64, userID uint64) ([]*dto.SocialAccountDTO, error)
	Disconnect(ctx context.Context, tenantID uint64) error
	ListAccounts(ctx context.Context, tenantID uint64) ([]*dto.SocialAccountDTO, error)
}

type socialAccountServiceImpl struct {
	profileRepo repository.ProviderProfileRepo
	accountRepo repository.SocialAccountRepo
	gateway     ayrshare.Client
}

func NewSocialAccountService(
	profileRepo repository.ProviderProfileRepo,
	accountRepo repository.SocialAccountRepo,
	gateway ayrshare.Client,
) SocialAccountService {
	return &socialAccountServiceImpl{
		profileRepo: profileRepo,
		accountRepo: accountRepo,
		gateway:     gateway,
	}
}

func (s *socialAccountServiceImpl) Connect(ctx context.Context, tenantID uint64, opts *dto.ConnectDTO) (*dto.ConnectURLDTO, error) {
	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		resp, createErr := s.gateway.CreateProfile(ctx, fmt.Sprintf("tenant-%d", tenantID))
		if createErr != nil {
			return nil, createErr
		}
		if resp.ProfileKey == "" {
			log.WarnContext(ctx, "profile creation rejected", "tenant_id", tenantID, "errors", resp.Errors)
			return nil, ErrProfileCreateFailed
		}

		profile = &model.ProviderProfile{
			TenantID:   tenantID,
			Provider:   consts.ProviderAyrshare,
			Title:      resp.Title,
			ProfileKey: resp.ProfileKey,
			Status:     consts.ProfileStatusActive,
		}
		if err = s.profileRepo.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	connectOpts := &ayrshare.ConnectOptions{}
	if opts != nil {
		connectOpts.RedirectURL = opts.RedirectURL
		connectOpts.AllowedPlatforms = opts.AllowedPlatforms
	}

	jwtResp, err := s.gateway.GenerateConnectURL(ctx, profile.ProfileKey, connectOpts)
	if err != nil {
		return nil, err
	}
	if jwtResp.URL == "" {
		log.WarnContext(ctx, "connect url generation rejected", "tenant_id", tenantID, "errors", jwtResp.Errors)
		return nil, ErrConnectURLFailed
	}

	return &dto.ConnectURLDTO{URL: jwtResp.URL, Token: jwtResp.Token}, nil
}

func (s *socialAccountServiceImpl) SyncConnectedAccounts(ctx context.Context, tenantID uint64, userID uint64) ([]*dto.SocialAccountDTO, error) {
	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNoProvider
	}

	profileData, err := s.gateway.GetProfile(ctx, profile.ProfileKey)
	if err != nil {
		return nil, err
	}

	for _, platform := range profileData.ActiveSocialAccounts {
		if !consts.IsSupportedPlatform(platform) {
			continue
		}

		displayName := profileData.DisplayNames[platform]
		if displayName == "" {
			displayName = platform
		}

		account := &model.SocialAccount{
			TenantID:    tenantID,
			Platform:    platform,
			AccountName: displayName,
			Status:      "active",
			ConnectedBy: userID,
			Metadata: map[string]interface{}{
				"connection_type": consts.ProviderAyrshare,
				"display_name":    displayName,
			},
		}
		if err = s.accountRepo.SaveOrUpdateAccount(ctx, account); err != nil {
			return nil, err
		}
	}

	return s.ListAccounts(ctx, tenantID)
}

func (s *socialAccountServiceImpl) Disconnect(ctx context.Context, tenantID uint64) error {
	profile, err := s.profileRepo.GetActiveProfile(ctx, tenantID, consts.ProviderAyrshare)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNoProvider
	}

	if _, err = s.gateway.DeleteProfile(ctx, profile.ProfileKey); err != nil {
		return err
	}

	if err = s.profileRepo.UpdateStatus(ctx, profile.ID, consts.ProfileStatusInactive); err != nil {
		return err
	}
	return s.accountRepo.DeactivateAll(ctx, tenantID)
}

func (s *socialAccountServiceImpl) ListAccounts(ctx context.Context, tenantID uint64) ([]*dto.SocialAccountDTO, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SocialAccountDTO, 0, len(accounts))
	if err = copier.Copy(&result, &accounts); err != nil {
		return nil, err
	}
	return result, nil
}
