package spapiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token     string
	refreshes int32
}

func (s *staticTokens) Token(context.Context) (string, error) {
	return s.token, nil
}

func (s *staticTokens) Refresh(context.Context) (string, error) {
	atomic.AddInt32(&s.refreshes, 1)
	s.token = "fresh"
	return s.token, nil
}

type plainTokens struct{}

func (plainTokens) Token(context.Context) (string, error) { return "only", nil }

func newTestClient(t *testing.T, baseURL string, tokens TokenProvider, sleeps *recordedSleeps) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL: baseURL,
		Tokens:  tokens,
		Retry:   RetryPolicy{MaxRetries: 3, BaseDelay: 50 * time.Millisecond},
		Sleep:   sleeps.Sleep,
	})
	require.NoError(t, err)
	return client
}

func TestClient_Do_RetriesThrottledRequests(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"value":42}}`))
	}))
	defer server.Close()

	sleeps := &recordedSleeps{}
	client := newTestClient(t, server.URL, &staticTokens{token: "tok"}, sleeps)

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/fba/inventory/v1/summaries"})
	require.NoError(t, err)

	var body struct {
		Payload struct {
			Value int `json:"value"`
		} `json:"payload"`
	}
	require.NoError(t, resp.Decode(&body))

	assert.Equal(t, 42, body.Payload.Value)
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits))
	require.Len(t, sleeps.delays, 3)
	for i := 1; i < len(sleeps.delays); i++ {
		assert.Greater(t, sleeps.delays[i], sleeps.delays[i-1])
	}
}

func TestClient_Do_RefreshesOnceOnUnauthorized(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get(HeaderAccessToken) != "fresh" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"errors":[{"code":"Unauthorized"}]}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tokens := &staticTokens{token: "stale"}
	client := newTestClient(t, server.URL, tokens, &recordedSleeps{})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders/v0/orders"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens.refreshes))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_Do_UnauthorizedWithoutRefresher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, plainTokens{}, &recordedSleeps{})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders/v0/orders"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestClient_Do_FatalStatusIsNotRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	sleeps := &recordedSleeps{}
	client := newTestClient(t, server.URL, plainTokens{}, sleeps)

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/fba/inbound/v0/shipments"})

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "boom")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Empty(t, sleeps.delays)
}

func TestClient_Do_SendsQueryAndTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/pricing/v0/price", r.URL.Path)
		assert.Equal(t, "ATVPDKIKX0DER", r.URL.Query().Get("MarketplaceId"))
		assert.Equal(t, "only", r.Header.Get(HeaderAccessToken))
		assert.NotEmpty(t, r.Header.Get(HeaderAmzDate))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, plainTokens{}, &recordedSleeps{})

	_, err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/products/pricing/v0/price",
		Query:  url.Values{"MarketplaceId": {"ATVPDKIKX0DER"}},
		Class:  ClassItemDetail,
	})
	require.NoError(t, err)
}
