package ayrshare

import (
	"github.com/goccy/go-json"
)

// APIError 网关返回的单条错误，Platform 可能为空
type APIError struct {
	Action   string `json:"action,omitempty"`
	Platform string `json:"platform,omitempty"`
	Code     int    `json:"code,omitempty"`
	Message  string `json:"message"`
}

type CreateProfileResponse struct {
	Status     string     `json:"status"`
	Title      string     `json:"title,omitempty"`
	RefID      string     `json:"refId,omitempty"`
	ProfileKey string     `json:"profileKey,omitempty"`
	Errors     []APIError `json:"errors,omitempty"`
}

// JWTResponse 一次性连接链接，终端用户访问 URL 完成社交账号绑定
type JWTResponse struct {
	Status string     `json:"status"`
	Title  string     `json:"title,omitempty"`
	Token  string     `json:"token,omitempty"`
	URL    string     `json:"url,omitempty"`
	Errors []APIError `json:"errors,omitempty"`
}

type ProfileResponse struct {
	Status               string            `json:"status,omitempty"`
	ActiveSocialAccounts []string          `json:"activeSocialAccounts,omitempty"`
	DisplayNames         map[string]string `json:"displayNames,omitempty"`
	Errors               []APIError        `json:"errors,omitempty"`
}

type StatusResponse struct {
	Status string     `json:"status"`
	Errors []APIError `json:"errors,omitempty"`
}

// PlatformPostID 单平台的发布结果
type PlatformPostID struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
	PostURL  string `json:"postUrl,omitempty"`
	Status   string `json:"status,omitempty"`
}

// PostResponse /post 的响应。ID 与 Errors 可能同时存在（部分平台失败）
type PostResponse struct {
	Status  string           `json:"status"`
	ID      string           `json:"id,omitempty"`
	PostIDs []PlatformPostID `json:"postIds,omitempty"`
	Errors  []APIError       `json:"errors,omitempty"`
}

type ReplyResponse struct {
	Status    string     `json:"status"`
	CommentID string     `json:"commentID,omitempty"`
	Errors    []APIError `json:"errors,omitempty"`
}

// PublishRequest 发布/定时发布参数，ScheduleDate 非空时由网关托管定时
type PublishRequest struct {
	Post         string   `json:"post"`
	Platforms    []string `json:"platforms"`
	MediaURLs    []string `json:"mediaUrls,omitempty"`
	ScheduleDate string   `json:"scheduleDate,omitempty"`
	ProfileKey   string   `json:"-"`
}

// ConnectOptions generateJWT 的可选参数
type ConnectOptions struct {
	RedirectURL      string
	AllowedPlatforms []string
}

// PlatformAnalytics 单平台的指标载荷；仅含错误标记的平台解码失败
type PlatformAnalytics struct {
	Analytics map[string]interface{} `json:"analytics"`
	Status    string                 `json:"status,omitempty"`
	Errors    []APIError             `json:"errors,omitempty"`
}

// DecodePlatformAnalytics 尝试将某平台的原始响应解码为指标载荷。
// 值不是对象或不含 analytics 字段时返回 false（错误标记、状态字段等）
func DecodePlatformAnalytics(raw json.RawMessage) (*PlatformAnalytics, bool) {
	var pa PlatformAnalytics
	if err := json.Unmarshal(raw, &pa); err != nil {
		return nil, false
	}
	if pa.Analytics == nil {
		return nil, false
	}
	return &pa, true
}

// Comment 网关侧的单条评论
type Comment struct {
	CommentID   string `json:"commentId"`
	Comment     string `json:"comment"`
	UserName    string `json:"userName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Created     string `json:"created,omitempty"`
	LikeCount   int    `json:"likeCount,omitempty"`
}

// DecodeComments 尝试将某平台的原始响应解码为评论列表。
// 值不是数组时返回 false（该平台返回了错误标记）
func DecodeComments(raw json.RawMessage) ([]Comment, bool) {
	var list []Comment
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}
