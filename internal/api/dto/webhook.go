package dto

// WebhookEventDTO 网关回推事件。字段按事件类型部分填充
type WebhookEventDTO struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	ID        string `json:"id"`
	Status    string `json:"status"`
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
	Platform  string `json:"platform"`
	Comment   string `json:"comment"`
	UserName  string `json:"userName"`
	Created   string `json:"created"`
	Errors    []struct {
		Message string `json:"message"`
	} `json:"errors"`
}
