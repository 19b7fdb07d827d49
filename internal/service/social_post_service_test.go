package service

import (
	"Megaphone/internal/api/dto"
	"Megaphone/internal/pkg/consts"
	"Megaphone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialPostService(repository.NewSocialPostRepository(db))

	created, err := svc.CreatePost(context.Background(), 1, &dto.SocialPostBaseDTO{
		Content:   "hello",
		Platforms: []string{"twitter"},
	})
	require.NoError(t, err)
	assert.Equal(t, consts.PostStatusDraft, created.Status)

	got, err := svc.GetPost(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)

	// 跨租户不可见
	_, err = svc.GetPost(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreatePostRejectsUnsupportedPlatform(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialPostService(repository.NewSocialPostRepository(db))

	_, err := svc.CreatePost(context.Background(), 1, &dto.SocialPostBaseDTO{
		Content:   "hello",
		Platforms: []string{"myspace"},
	})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpdatePostBlockedAfterPublish(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialPostService(repository.NewSocialPostRepository(db))

	post := seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")

	err := svc.UpdatePost(context.Background(), 1, post.ID, &dto.SocialPostBaseDTO{
		Content:   "changed",
		Platforms: []string{"twitter"},
	})
	assert.ErrorIs(t, err, ErrPostNotEditable)

	failed := seedPost(t, db, 1, consts.PostStatusFailed, "")
	err = svc.UpdatePost(context.Background(), 1, failed.ID, &dto.SocialPostBaseDTO{
		Content:   "changed",
		Platforms: []string{"linkedin"},
	})
	require.NoError(t, err)

	got := reloadPost(t, db, failed.ID)
	assert.Equal(t, "changed", got.Content)
	assert.Equal(t, []string{"linkedin"}, got.Platforms)
}

func TestListPostsFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialPostService(repository.NewSocialPostRepository(db))

	seedPost(t, db, 1, consts.PostStatusDraft, "")
	seedPost(t, db, 1, consts.PostStatusPublished, "ayr-1")
	seedPost(t, db, 1, consts.PostStatusPublished, "ayr-2")
	seedPost(t, db, 2, consts.PostStatusDraft, "")

	posts, err := svc.ListPosts(context.Background(), 1, &dto.SocialPostListDTO{Status: consts.PostStatusPublished, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = svc.ListPosts(context.Background(), 1, &dto.SocialPostListDTO{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialPostService(repository.NewSocialPostRepository(db))

	post := seedPost(t, db, 1, consts.PostStatusDraft, "")
	require.NoError(t, svc.DeletePost(context.Background(), 1, post.ID))

	_, err := svc.GetPost(context.Background(), 1, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
