package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "carbonintel")
		w.Write([]byte("page content"))
	}))
	defer srv.Close()

	f := newFetcher("test-source", 100)
	body, err := f.get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "page content", string(body))
}

func TestFetcherGet_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := newFetcher("test-source", 100)
	_, err := f.get(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetcherBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := newFetcher("flaky-source", 1000)

	for i := 0; i < 3; i++ {
		_, err := f.get(context.Background(), srv.URL)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, f.breaker.State())

	// Requests now fail fast without reaching the server.
	_, err := f.get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestFetcherGet_ContextCancelled(t *testing.T) {
	f := newFetcher("test-source", 0.001)
	// Token bucket starts full; burn the burst token first.
	f.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.get(ctx, "http://127.0.0.1:1")
	assert.Error(t, err)
}

func TestTrackerNames(t *testing.T) {
	assert.Equal(t, "corporate-commitments", NewCommitmentTracker().Name())
	assert.Equal(t, "funding-tracker", NewFundingTracker().Name())
}

func TestDemoData(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	commitments := DemoCommitments(now)
	require.Len(t, commitments, 5)
	for _, r := range commitments {
		assert.NotEmpty(t, r["company"])
		assert.NotEmpty(t, r["announcement_date"])
	}

	funding := DemoFunding(now)
	require.Len(t, funding, 4)
	for _, r := range funding {
		score, ok := r["dovu_relevance"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
