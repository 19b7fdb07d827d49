package ayrshare

import (
	"Megaphone/internal/api/config"
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrNotConfigured API Key 未配置。调用方应将其视为"未接入"状态而非崩溃
var ErrNotConfigured = errors.New("ayrshare api key 未配置")

// Client 社媒聚合网关的类型化封装。只做请求/响应映射，不持有业务状态。
// 传输层失败（网络错误、非 JSON 响应体）返回 error；
// 网关返回的业务错误（errors 列表）原样放在响应结构体中，由调用方判定。
type Client interface {
	CreateProfile(ctx context.Context, title string) (*CreateProfileResponse, error)
	GenerateConnectURL(ctx context.Context, profileKey string, opts *ConnectOptions) (*JWTResponse, error)
	GetProfile(ctx context.Context, profileKey string) (*ProfileResponse, error)
	DeleteProfile(ctx context.Context, profileKey string) (*StatusResponse, error)
	Publish(ctx context.Context, req *PublishRequest) (*PostResponse, error)
	DeletePost(ctx context.Context, remoteID string, profileKey string) (*StatusResponse, error)
	GetPostAnalytics(ctx context.Context, remoteID string, platforms []string, profileKey string) (map[string]json.RawMessage, error)
	GetAccountAnalytics(ctx context.Context, platforms []string, profileKey string) (map[string]json.RawMessage, error)
	GetComments(ctx context.Context, remoteID string, profileKey string) (map[string]json.RawMessage, error)
	ReplyToComment(ctx context.Context, remoteID string, comment string, platforms []string, profileKey string) (*ReplyResponse, error)
}

type clientImpl struct {
	http   *resty.Client
	apiKey string
	domain string
}

// NewClient 构造网关客户端。重试只针对传输层失败，网关明确拒绝不重试。
func NewClient(cfg *config.AyrshareConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			// 5xx 且无响应体视为网关侧瞬时故障
			return r.StatusCode() >= http.StatusInternalServerError && len(r.Body()) == 0
		})

	httpClient.JSONMarshal = json.Marshal
	httpClient.JSONUnmarshal = json.Unmarshal

	return &clientImpl{
		http:   httpClient,
		apiKey: cfg.APIKey,
		domain: cfg.Domain,
	}, nil
}

// do 发送请求并返回原始响应体。非 JSON 响应体视为传输层失败
func (c *clientImpl) do(ctx context.Context, method string, path string, body interface{}, profileKey string) ([]byte, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey)

	if profileKey != "" {
		req.SetHeader("Profile-Key", profileKey)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "ayrshare 请求失败 %s %s", method, path)
	}

	raw := resp.Body()
	if len(raw) == 0 || !json.Valid(raw) {
		return nil, errors.Errorf("ayrshare 响应异常 %s %s: %s", method, path, resp.Status())
	}

	return raw, nil
}

func (c *clientImpl) CreateProfile(ctx context.Context, title string) (*CreateProfileResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/profiles", map[string]interface{}{"title": title}, "")
	if err != nil {
		return nil, err
	}
	var resp CreateProfileResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 createProfile 响应失败")
	}
	return &resp, nil
}

func (c *clientImpl) GenerateConnectURL(ctx context.Context, profileKey string, opts *ConnectOptions) (*JWTResponse, error) {
	body := map[string]interface{}{
		"domain":     c.domain,
		"profileKey": profileKey,
		"privateKey": c.apiKey,
	}
	if opts != nil {
		if opts.RedirectURL != "" {
			body["redirect"] = opts.RedirectURL
		}
		if len(opts.AllowedPlatforms) > 0 {
			body["allowedSocial"] = opts.AllowedPlatforms
		}
	}

	raw, err := c.do(ctx, http.MethodPost, "/profiles/generateJWT", body, "")
	if err != nil {
		return nil, err
	}
	var resp JWTResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 generateJWT 响应失败")
	}
	return &resp, nil
}

func (c *clientImpl) GetProfile(ctx context.Context, profileKey string) (*ProfileResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, "/profiles/"+profileKey, nil, profileKey)
	if err != nil {
		return nil, err
	}
	var resp ProfileResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 profile 响应失败")
	}
	return &resp, nil
}

func (c *clientImpl) DeleteProfile(ctx context.Context, profileKey string) (*StatusResponse, error) {
	raw, err := c.do(ctx, http.MethodDelete, "/profiles/"+profileKey, nil, "")
	if err != nil {
		return nil, err
	}
	var resp StatusResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 deleteProfile 响应失败")
	}
	return &resp, nil
}

func (c *clientImpl) Publish(ctx context.Context, req *PublishRequest) (*PostResponse, error) {
	body := map[string]interface{}{
		"post":      req.Post,
		"platforms": req.Platforms,
	}
	if len(req.MediaURLs) > 0 {
		body["mediaUrls"] = req.MediaURLs
	}
	if req.ScheduleDate != "" {
		body["scheduleDate"] = req.ScheduleDate
	}

	raw, err := c.do(ctx, http.MethodPost, "/post", body, req.ProfileKey)
	if err != nil {
		return nil, err
	}
	var resp PostResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 post 响应失败")
	}
	return &resp, nil
}

func (c *clientImpl) DeletePost(ctx context.Context, remoteID string, profileKey string) (*StatusResponse, error) {
	raw, err := c.do(ctx, http.MethodDelete, "/post", map[string]interface{}{"id": remoteID}, profileKey)
	if err != nil {
		return nil, err
	}
	var resp StatusResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 deletePost 响应失败")
	}
	return &resp, nil
}

// GetPostAnalytics 返回 平台 -> 原始载荷 的映射，由调用方用 DecodePlatformAnalytics 按需解码
func (c *clientImpl) GetPostAnalytics(ctx context.Context, remoteID string, platforms []string, profileKey string) (map[string]json.RawMessage, error) {
	body := map[string]interface{}{"id": remoteID}
	if len(platforms) > 0 {
		body["platforms"] = platforms
	}

	raw, err := c.do(ctx, http.MethodPost, "/analytics/post", body, profileKey)
	if err != nil {
		return nil, err
	}
	var resp map[string]json.RawMessage
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 postAnalytics 响应失败")
	}
	return resp, nil
}

func (c *clientImpl) GetAccountAnalytics(ctx context.Context, platforms []string, profileKey string) (map[string]json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/analytics/social", map[string]interface{}{"platforms": platforms}, profileKey)
	if err != nil {
		return nil, err
	}
	var resp map[string]json.RawMessage
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 accountAnalytics 响应失败")
	}
	return resp, nil
}

// GetComments 返回 平台 -> 原始载荷 的映射，由调用方用 DecodeComments 按需解码
func (c *clientImpl) GetComments(ctx context.Context, remoteID string, profileKey string) (map[string]json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/comments/"+remoteID, nil, profileKey)
	if err != nil {
		return nil, err
	}
	var resp map[string]json.RawMessage
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 comments 响应失败")
	}
	return resp, nil
}

func (c *clientImpl) ReplyToComment(ctx context.Context, remoteID string, comment string, platforms []string, profileKey string) (*ReplyResponse, error) {
	body := map[string]interface{}{
		"id":        remoteID,
		"comment":   comment,
		"platforms": platforms,
	}

	raw, err := c.do(ctx, http.MethodPost, "/comments", body, profileKey)
	if err != nil {
		return nil, err
	}
	var resp ReplyResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "解析 replyToComment 响应失败")
	}
	return &resp, nil
}
