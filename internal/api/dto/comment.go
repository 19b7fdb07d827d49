package dto

import "time"

// SocialCommentDTO 外部评论
type SocialCommentDTO struct {
	ID           uint64                 `json:"id"`
	PostID       uint64                 `json:"post_id"`
	Platform     string                 `json:"platform"`
	ExternalID   string                 `json:"external_id"`
	AuthorName   *string                `json:"author_name"`
	Content      string                 `json:"content"`
	Sentiment    *string                `json:"sentiment"`
	Replied      bool                   `json:"replied"`
	ReplyContent *string                `json:"reply_content"`
	Metadata     map[string]interface{} `json:"metadata"`
	PostedAt     time.Time              `json:"posted_at"`
}

// ReplyDTO 回复评论
type ReplyDTO struct {
	Message string `json:"message" binding:"required"`
}

// CommentSyncResultDTO 单帖评论同步结果
type CommentSyncResultDTO struct {
	Synced int `json:"synced"`
}
