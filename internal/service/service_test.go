package service

import (
	"Megaphone/internal/api/config"
	"Megaphone/internal/model"
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/pkg/redis"
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.SocialPost{},
		&model.ProviderProfile{},
		&model.SocialAccount{},
		&model.PostEngagement{},
		&model.SocialComment{},
	))
	return db
}

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return mr
}

func testSyncConfig() config.SyncConfig {
	return config.SyncConfig{Concurrency: 1, LockTTL: 60}
}

func seedProfile(t *testing.T, db *gorm.DB, tenantID uint64) *model.ProviderProfile {
	t.Helper()
	profile := &model.ProviderProfile{
		TenantID:   tenantID,
		Provider:   consts.ProviderAyrshare,
		Title:      "tenant-profile",
		ProfileKey: "pk-test",
		Status:     consts.ProfileStatusActive,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedPost(t *testing.T, db *gorm.DB, tenantID uint64, status string, externalID string) *model.SocialPost {
	t.Helper()
	post := &model.SocialPost{
		TenantID:  tenantID,
		Content:   "hello world",
		Platforms: []string{"twitter", "facebook"},
		Status:    status,
	}
	if externalID != "" {
		post.ExternalID = &externalID
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func reloadPost(t *testing.T, db *gorm.DB, id uint64) *model.SocialPost {
	t.Helper()
	var post model.SocialPost
	require.NoError(t, db.First(&post, id).Error)
	return &post
}

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

var errFakeNotStubbed = errors.New("fake gateway: not stubbed")

// fakeGateway 按需打桩的网关替身，未打桩的方法一律报错
type fakeGateway struct {
	publishCalls int

	publishFn       func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error)
	postAnalyticsFn func(ctx context.Context, remoteID string, platforms []string, profileKey string) (map[string]json.RawMessage, error)
	commentsFn      func(ctx context.Context, remoteID string, profileKey string) (map[string]json.RawMessage, error)
	replyFn         func(ctx context.Context, remoteID string, comment string, platforms []string, profileKey string) (*ayrshare.ReplyResponse, error)
	profileFn       func(ctx context.Context, profileKey string) (*ayrshare.ProfileResponse, error)
	createProfileFn func(ctx context.Context, title string) (*ayrshare.CreateProfileResponse, error)
	connectURLFn    func(ctx context.Context, profileKey string, opts *ayrshare.ConnectOptions) (*ayrshare.JWTResponse, error)
}

func (f *fakeGateway) CreateProfile(ctx context.Context, title string) (*ayrshare.CreateProfileResponse, error) {
	if f.createProfileFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.createProfileFn(ctx, title)
}

func (f *fakeGateway) GenerateConnectURL(ctx context.Context, profileKey string, opts *ayrshare.ConnectOptions) (*ayrshare.JWTResponse, error) {
	if f.connectURLFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.connectURLFn(ctx, profileKey, opts)
}

func (f *fakeGateway) GetProfile(ctx context.Context, profileKey string) (*ayrshare.ProfileResponse, error) {
	if f.profileFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.profileFn(ctx, profileKey)
}

func (f *fakeGateway) DeleteProfile(ctx context.Context, profileKey string) (*ayrshare.StatusResponse, error) {
	return &ayrshare.StatusResponse{Status: "success"}, nil
}

func (f *fakeGateway) Publish(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
	f.publishCalls++
	if f.publishFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.publishFn(ctx, req)
}

func (f *fakeGateway) DeletePost(ctx context.Context, remoteID string, profileKey string) (*ayrshare.StatusResponse, error) {
	return &ayrshare.StatusResponse{Status: "success"}, nil
}

func (f *fakeGateway) GetPostAnalytics(ctx context.Context, remoteID string, platforms []string, profileKey string) (map[string]json.RawMessage, error) {
	if f.postAnalyticsFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.postAnalyticsFn(ctx, remoteID, platforms, profileKey)
}

func (f *fakeGateway) GetAccountAnalytics(ctx context.Context, platforms []string, profileKey string) (map[string]json.RawMessage, error) {
	return nil, errFakeNotStubbed
}

func (f *fakeGateway) GetComments(ctx context.Context, remoteID string, profileKey string) (map[string]json.RawMessage, error) {
	if f.commentsFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.commentsFn(ctx, remoteID, profileKey)
}

func (f *fakeGateway) ReplyToComment(ctx context.Context, remoteID string, comment string, platforms []string, profileKey string) (*ayrshare.ReplyResponse, error) {
	if f.replyFn == nil {
		return nil, errFakeNotStubbed
	}
	return f.replyFn(ctx, remoteID, comment, platforms, profileKey)
}
