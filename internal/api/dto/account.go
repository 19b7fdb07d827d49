package dto

import "time"

// ConnectDTO 发起账号连接
type ConnectDTO struct {
	RedirectURL      string   `json:"redirect_url"`
	AllowedPlatforms []string `json:"allowed_platforms"`
}

// ConnectURLDTO 网关签发的一次性绑定链接
type ConnectURLDTO struct {
	URL   string `json:"url"`
	Token string `json:"token,omitempty"`
}

// SocialAccountDTO 已连接账号
type SocialAccountDTO struct {
	ID          uint64    `json:"id"`
	Platform    string    `json:"platform"`
	AccountName string    `json:"account_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
