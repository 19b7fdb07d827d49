package dto

// ScheduleDTO 定时发布请求，时间为 RFC3339
type ScheduleDTO struct {
	ScheduledAt string `json:"scheduled_at" binding:"required"`
}

// PlatformErrorDTO 单平台发布错误
type PlatformErrorDTO struct {
	Platform string `json:"platform"`
	Message  string `json:"message"`
}

// PlatformPostDTO 单平台发布结果
type PlatformPostDTO struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
	PostURL  string `json:"post_url,omitempty"`
}

// PublishResultDTO 发布/定时的结构化结果，Success 为判定字段
type PublishResultDTO struct {
	Success        bool               `json:"success"`
	RemoteID       string             `json:"remote_id,omitempty"`
	PostIDs        []PlatformPostDTO  `json:"post_ids,omitempty"`
	Error          string             `json:"error,omitempty"`
	PlatformErrors []PlatformErrorDTO `json:"platform_errors,omitempty"`
}
