package dto

import "time"

// EngagementDTO 单平台互动指标快照
type EngagementDTO struct {
	Platform       string    `json:"platform"`
	Likes          int       `json:"likes"`
	Comments       int       `json:"comments"`
	Shares         int       `json:"shares"`
	Impressions    int       `json:"impressions"`
	Reach          int       `json:"reach"`
	Clicks         int       `json:"clicks"`
	EngagementRate float64   `json:"engagement_rate"`
	RecordedAt     time.Time `json:"recorded_at"`
}
