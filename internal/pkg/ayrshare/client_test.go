package ayrshare

import (
	"Megaphone/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.AyrshareConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Domain:     "megaphone",
		Timeout:    5,
		RetryCount: 2,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.AyrshareConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPublishSendsAuthAndProfileKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/post", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "pk-1", r.Header.Get("Profile-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["post"])
		_, hasSchedule := body["scheduleDate"]
		assert.False(t, hasSchedule)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"id":     "ayr-1",
			"postIds": []map[string]interface{}{
				{"platform": "twitter", "id": "tw-1"},
			},
		})
	}))

	resp, err := client.Publish(context.Background(), &PublishRequest{
		Post:       "hello",
		Platforms:  []string{"twitter"},
		ProfileKey: "pk-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayr-1", resp.ID)
	require.Len(t, resp.PostIDs, 1)
	assert.Equal(t, "tw-1", resp.PostIDs[0].ID)
}

// 网关返回业务错误体时不算传输失败，错误列表原样带回
func TestPublishErrorBodyIsNotTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "error",
			"errors": []map[string]interface{}{
				{"platform": "twitter", "message": "duplicate content", "code": 110},
			},
		})
	}))

	resp, err := client.Publish(context.Background(), &PublishRequest{
		Post:      "hello",
		Platforms: []string{"twitter"},
	})
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.Empty(t, resp.ID)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "duplicate content", resp.Errors[0].Message)
}

func TestNonJSONBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))

	_, err := client.Publish(context.Background(), &PublishRequest{
		Post:      "hello",
		Platforms: []string{"twitter"},
	})
	assert.Error(t, err)
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(&config.AyrshareConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 1,
	})
	require.NoError(t, err)

	_, err = client.Publish(context.Background(), &PublishRequest{
		Post:      "hello",
		Platforms: []string{"twitter"},
	})
	assert.Error(t, err)
}

func TestGetPostAnalyticsReturnsRawPlatformMap(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/post", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"twitter": {"analytics": {"likeCount": 10, "impressions": 1000}},
			"facebook": {"status": "error", "errors": [{"message": "not connected"}]},
			"status": "success"
		}`))
	}))

	result, err := client.GetPostAnalytics(context.Background(), "ayr-1", []string{"twitter", "facebook"}, "pk-1")
	require.NoError(t, err)

	pa, ok := DecodePlatformAnalytics(result["twitter"])
	require.True(t, ok)
	assert.Equal(t, float64(10), pa.Analytics["likeCount"])

	_, ok = DecodePlatformAnalytics(result["facebook"])
	assert.False(t, ok)
	_, ok = DecodePlatformAnalytics(result["status"])
	assert.False(t, ok)
}

func TestGetCommentsDecoding(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/ayr-1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"twitter": [{"commentId": "c-1", "comment": "nice!", "userName": "alice"}],
			"instagram": {"status": "error"},
			"status": "success"
		}`))
	}))

	result, err := client.GetComments(context.Background(), "ayr-1", "pk-1")
	require.NoError(t, err)

	comments, ok := DecodeComments(result["twitter"])
	require.True(t, ok)
	require.Len(t, comments, 1)
	assert.Equal(t, "c-1", comments[0].CommentID)

	_, ok = DecodeComments(result["instagram"])
	assert.False(t, ok)
}

func TestGenerateConnectURLBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profiles/generateJWT", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "megaphone", body["domain"])
		assert.Equal(t, "pk-1", body["profileKey"])
		assert.Equal(t, "test-key", body["privateKey"])
		assert.Equal(t, "https://app.example.com/done", body["redirect"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"url":    "https://profile.ayrshare.com/social-link?token=abc",
		})
	}))

	resp, err := client.GenerateConnectURL(context.Background(), "pk-1", &ConnectOptions{
		RedirectURL: "https://app.example.com/done",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.URL, "social-link")
}
