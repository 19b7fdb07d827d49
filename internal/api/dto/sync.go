package dto

// SyncReportDTO 批量同步聚合结果，单帖失败不会中断批次
type SyncReportDTO struct {
	Total  int      `json:"total"`
	Synced int      `json:"synced"`
	Errors []string `json:"errors"`
}
