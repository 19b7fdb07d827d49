package service

import (
	"Megaphone/internal/pkg/ayrshare"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSuccess(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			assert.Equal(t, "hello world", req.Post)
			assert.Equal(t, "pk-test", req.ProfileKey)
			return &ayrshare.PostResponse{
				Status: "success",
				ID:     "ayr-1",
				PostIDs: []ayrshare.PlatformPostID{
					{Platform: "twitter", ID: "tw-1", PostURL: "https://t.co/1"},
					{Platform: "facebook", ID: "fb-1"},
				},
			}, nil
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	result, err := svc.Publish(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ayr-1", result.RemoteID)
	assert.Len(t, result.PostIDs, 2)

	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusPublished, got.Status)
	require.NotNil(t, got.ExternalID)
	assert.Equal(t, "ayr-1", *got.ExternalID)
	assert.Nil(t, got.PublishError)
	assert.NotNil(t, got.PublishedAt)
	assert.Equal(t, "ayr-1", got.Metadata["ayrshare_id"])
}

func TestPublishGatewayErrorMarksFailed(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			return &ayrshare.PostResponse{
				Status: "error",
				Errors: []ayrshare.APIError{{Platform: "twitter", Message: "duplicate content"}},
			}, nil
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	result, err := svc.Publish(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "twitter: duplicate content", result.Error)
	require.Len(t, result.PlatformErrors, 1)
	assert.Equal(t, "twitter", result.PlatformErrors[0].Platform)

	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusFailed, got.Status)
	// 失败不得残留任何外部标识
	assert.Nil(t, got.ExternalID)
	require.NotNil(t, got.PublishError)
	assert.Equal(t, "twitter: duplicate content", *got.PublishError)
}

func TestPublishTransportFailureMarksFailed(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	result, err := svc.Publish(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)

	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusFailed, got.Status)
	assert.Nil(t, got.ExternalID)
}

func TestPublishPartialSuccessIsPublished(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			return &ayrshare.PostResponse{
				Status:  "success",
				ID:      "ayr-2",
				PostIDs: []ayrshare.PlatformPostID{{Platform: "twitter", ID: "tw-2"}},
				Errors:  []ayrshare.APIError{{Platform: "facebook", Message: "token expired"}},
			}, nil
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	result, err := svc.Publish(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.PlatformErrors, 1)
	assert.Equal(t, "facebook", result.PlatformErrors[0].Platform)

	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusPublished, got.Status)
	assert.NotNil(t, got.Metadata["ayrshare_errors"])
}

func TestPublishWithoutProfileFailsWithoutGatewayCall(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	result, err := svc.Publish(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ErrNoProvider.Error(), result.Error)
	assert.Zero(t, gw.publishCalls)

	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusFailed, got.Status)
}

func TestPublishRejectsInvalidState(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")

	_, err := svc.Publish(context.Background(), 1, post.ID)
	assert.ErrorIs(t, err, ErrPostStateInvalid)
	assert.Zero(t, gw.publishCalls)
}

func TestPublishRetryAfterFailure(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			return &ayrshare.PostResponse{Status: "success", ID: "ayr-3"}, nil
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusFailed, "")

	result, err := svc.Publish(context.Background(), 1, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, consts.PostStatusPublished, reloadPost(t, db, post.ID).Status)
}

func TestScheduleDoesNotChangeStatus(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			assert.NotEmpty(t, req.ScheduleDate)
			return &ayrshare.PostResponse{Status: "success", ID: "ayr-4"}, nil
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	when := time.Now().Add(24 * time.Hour)
	result, err := svc.Schedule(context.Background(), 1, post.ID, when)
	require.NoError(t, err)
	assert.True(t, result.Success)

	got := reloadPost(t, db, post.ID)
	// 定时发布不做状态迁移，发布结果由回推事件驱动
	assert.Equal(t, consts.PostStatusDraft, got.Status)
	require.NotNil(t, got.ExternalID)
	assert.Equal(t, "ayr-4", *got.ExternalID)
	require.NotNil(t, got.ScheduledAt)
}

func TestScheduleErrorKeepsStatus(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{
		publishFn: func(ctx context.Context, req *ayrshare.PublishRequest) (*ayrshare.PostResponse, error) {
			return &ayrshare.PostResponse{
				Status: "error",
				Errors: []ayrshare.APIError{{Message: "invalid schedule date"}},
			}, nil
		},
	}
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), gw)

	seedProfile(t, db, 1)
	post := seedPost(t, db, 1, consts.PostStatusDraft, "")

	result, err := svc.Schedule(context.Background(), 1, post.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "invalid schedule date", result.Error)

	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusDraft, got.Status)
	assert.Nil(t, got.ExternalID)
	require.NotNil(t, got.PublishError)
}

func TestApplyStatusEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPublisherService(repository.NewSocialPostRepository(db), repository.NewProviderProfileRepository(db), &fakeGateway{})

	post := seedPost(t, db, 1, consts.PostStatusPublishing, "ayr-5")

	require.NoError(t, svc.ApplyStatusEvent(context.Background(), "ayr-5", "success", nil))
	got := reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusPublished, got.Status)
	assert.NotNil(t, got.PublishedAt)

	require.NoError(t, svc.ApplyStatusEvent(context.Background(), "ayr-5", "error", []string{"rejected by platform"}))
	got = reloadPost(t, db, post.ID)
	assert.Equal(t, consts.PostStatusFailed, got.Status)
	require.NotNil(t, got.PublishError)
	assert.Equal(t, "rejected by platform", *got.PublishError)

	// 未知外部 ID 的事件静默忽略
	require.NoError(t, svc.ApplyStatusEvent(context.Background(), "unknown", "success", nil))
}
