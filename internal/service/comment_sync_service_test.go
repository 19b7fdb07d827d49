package service

import (
	"Megaphone/internal/api/config"
	"Megaphone/internal/api/dto"
	"Megaphone/internal/model"
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/repository"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentSyncIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)

	gw := &fakeGateway{
		commentsFn: func(ctx context.Context, remoteID string, profileKey string) (map[string]json.RawMessage, error) {
			return map[string]json.RawMessage{
				"twitter": rawJSON(t, []map[string]interface{}{
					{"commentId": "c-1", "comment": "nice!", "userName": "alice", "created": time.Now().UTC().Format(time.RFC3339)},
					{"commentId": "c-2", "comment": "great", "displayName": "Bob"},
					{"comment": "no id, skipped"},
				}),
				"status": rawJSON(t, "success"),
			}, nil
		},
	}

	svc := NewCommentSyncService(
		repository.NewSocialPostRepository(db),
		repository.NewProviderProfileRepository(db),
		repository.NewSocialCommentRepository(db),
		gw,
		testSyncConfig(),
	)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")

	synced, err := svc.SyncPost(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, synced)

	// 二次同步按外部 ID 去重，零新增
	synced, err = svc.SyncPost(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.Zero(t, synced)

	var comments []model.SocialComment
	require.NoError(t, db.Where("post_id = ?", post.ID).Order("external_id ASC").Find(&comments).Error)
	require.Len(t, comments, 2)
	require.NotNil(t, comments[0].AuthorName)
	assert.Equal(t, "alice", *comments[0].AuthorName)
	require.NotNil(t, comments[1].AuthorName)
	assert.Equal(t, "Bob", *comments[1].AuthorName)
}

func TestCommentReplyMarksReplied(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)

	gw := &fakeGateway{
		replyFn: func(ctx context.Context, remoteID string, comment string, platforms []string, profileKey string) (*ayrshare.ReplyResponse, error) {
			assert.Equal(t, "ayr-1", remoteID)
			assert.Equal(t, []string{"twitter"}, platforms)
			return &ayrshare.ReplyResponse{Status: "success", CommentID: "r-1"}, nil
		},
	}

	commentRepo := repository.NewSocialCommentRepository(db)
	svc := NewCommentSyncService(
		repository.NewSocialPostRepository(db),
		repository.NewProviderProfileRepository(db),
		commentRepo,
		gw,
		testSyncConfig(),
	)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")

	comment := &model.SocialComment{
		TenantID:   1,
		PostID:     post.ID,
		Platform:   "twitter",
		ExternalID: "c-1",
		Content:    "nice!",
		PostedAt:   time.Now(),
	}
	require.NoError(t, db.Create(comment).Error)

	require.NoError(t, svc.Reply(context.Background(), 1, comment.ID, "thanks!"))

	var got model.SocialComment
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.True(t, got.Replied)
	require.NotNil(t, got.ReplyContent)
	assert.Equal(t, "thanks!", *got.ReplyContent)
}

func TestCommentReplyRejectedByGateway(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)

	gw := &fakeGateway{
		replyFn: func(ctx context.Context, remoteID string, comment string, platforms []string, profileKey string) (*ayrshare.ReplyResponse, error) {
			return &ayrshare.ReplyResponse{
				Status: "error",
				Errors: []ayrshare.APIError{{Message: "comment not found"}},
			}, nil
		},
	}

	svc := NewCommentSyncService(
		repository.NewSocialPostRepository(db),
		repository.NewProviderProfileRepository(db),
		repository.NewSocialCommentRepository(db),
		gw,
		testSyncConfig(),
	)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")

	comment := &model.SocialComment{
		TenantID:   1,
		PostID:     post.ID,
		Platform:   "twitter",
		ExternalID: "c-1",
		Content:    "nice!",
		PostedAt:   time.Now(),
	}
	require.NoError(t, db.Create(comment).Error)

	err := svc.Reply(context.Background(), 1, comment.ID, "thanks!")
	assert.ErrorIs(t, err, ErrReplyRejected)

	var got model.SocialComment
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.False(t, got.Replied)
}

func TestApplyCommentEvent(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)

	svc := NewCommentSyncService(
		repository.NewSocialPostRepository(db),
		repository.NewProviderProfileRepository(db),
		repository.NewSocialCommentRepository(db),
		&fakeGateway{},
		testSyncConfig(),
	)

	post := seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")

	event := &dto.WebhookEventDTO{
		Action:    "comments",
		PostID:    "ayr-1",
		CommentID: "c-9",
		Platform:  "instagram",
		Comment:   "from webhook",
		UserName:  "carol",
	}
	require.NoError(t, svc.ApplyCommentEvent(context.Background(), event))
	// 重复投递不产生第二条
	require.NoError(t, svc.ApplyCommentEvent(context.Background(), event))

	var comments []model.SocialComment
	require.NoError(t, db.Where("post_id = ?", post.ID).Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, "instagram", comments[0].Platform)
	assert.Equal(t, "from webhook", comments[0].Content)

	// 未知帖子的事件忽略
	unknown := &dto.WebhookEventDTO{Action: "comments", PostID: "nope", CommentID: "c-10", Comment: "x"}
	require.NoError(t, svc.ApplyCommentEvent(context.Background(), unknown))
}

func TestCommentSyncAllHonorsConcurrencyLimit(t *testing.T) {
	db := newTestDB(t)
	newTestRedis(t)
	// 内存库按连接隔离，并发下限制单连接避免各协程看到不同库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	var mu sync.Mutex
	inFlight, peak := 0, 0
	gw := &fakeGateway{
		commentsFn: func(ctx context.Context, remoteID string, profileKey string) (map[string]json.RawMessage, error) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			time.Sleep(30 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return map[string]json.RawMessage{
				"twitter": rawJSON(t, []map[string]interface{}{
					{"commentId": "c-" + remoteID, "comment": "hey"},
				}),
			}, nil
		},
	}

	svc := NewCommentSyncService(
		repository.NewSocialPostRepository(db),
		repository.NewProviderProfileRepository(db),
		repository.NewSocialCommentRepository(db),
		gw,
		config.SyncConfig{Concurrency: 2, LockTTL: 60},
	)

	seedProfile(t, db, 1)
	for i := 1; i <= 4; i++ {
		seedPost(t, db, 1, consts.PostStatusPublished, "ayr-"+strconv.Itoa(i))
	}

	report, err := svc.SyncAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 4, report.Synced)
	assert.Equal(t, 2, peak)
}
