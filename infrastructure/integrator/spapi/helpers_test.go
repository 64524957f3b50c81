package spapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-sync/internal/config"
	"github.com/vfg2006/seller-sync/internal/domain"
)

var usMarketplace, _ = domain.LookupMarketplace("US")

// simClock avança apenas quando o código "dorme", permitindo simular polling e backoff.
type simClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newSimClock() *simClock {
	return &simClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *simClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *simClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

func (c *simClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		SPAPI: config.SPAPI{
			Endpoint:       baseURL,
			LWAEndpoint:    baseURL + "/auth/o2/token",
			Region:         "us-east-1",
			RetryBaseDelay: time.Second,
		},
		Sync: config.Sync{
			ReportPollInterval:   10 * time.Second,
			OrderReportTimeout:   5 * time.Minute,
			ListingReportTimeout: 3 * time.Minute,
			BackfillPause:        10 * time.Second,
			BackfillMargin:       3 * time.Minute,
		},
	}
}

func handleLWA(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/o2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"Atza|test","token_type":"bearer","expires_in":3600}`))
	})
}

// newTestConnector sobe um servidor falso com o endpoint LWA já registrado.
func newTestConnector(t *testing.T, mux *http.ServeMux) (*AccountConnector, *simClock, *httptest.Server) {
	t.Helper()
	handleLWA(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	clock := newSimClock()
	service := New(testConfig(server.URL), nil, WithSleep(clock.Sleep), WithClock(clock.Now))

	connector, err := service.Connect(context.Background(), &domain.Account{
		ID:           "acc-1",
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "Atzr|refresh",
	})
	require.NoError(t, err)

	return connector.(*AccountConnector), clock, server
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func gzipBytes(t *testing.T, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
