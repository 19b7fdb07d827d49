package consts

const (
	ProviderAyrshare = "ayrshare"
)

const (
	PostStatusDraft      = "draft"
	PostStatusPublishing = "publishing"
	PostStatusPublished  = "published"
	PostStatusFailed     = "failed"
)

const (
	ProfileStatusActive   = "active"
	ProfileStatusInactive = "inactive"
)

// SupportedPlatforms 当前支持接入的平台，与网关平台名一一对应
var SupportedPlatforms = []string{
	"facebook",
	"instagram",
	"twitter",
	"linkedin",
	"tiktok",
	"youtube",
}

func IsSupportedPlatform(platform string) bool {
	for _, p := range SupportedPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}
