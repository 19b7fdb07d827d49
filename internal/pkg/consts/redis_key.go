package consts

const (
	EngagementSyncLockKey = "social:sync:lock:engagement:"
	CommentSyncLockKey    = "social:sync:lock:comment:"
	TenantSyncLockKey     = "social:sync:lock:tenant:"
)
