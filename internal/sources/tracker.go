// Package sources holds the data-acquisition collaborators. Each
// tracker enumerates its upstream sources behind a rate limiter and a
// circuit breaker, but extraction is deliberately stubbed: trackers
// emit whatever raw records their fetchers produce, which for the
// news and VC sources is currently nothing. The pipeline core only
// ever consumes their output.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/irfon92/carbon-dashboard/internal/normalize"
)

const userAgent = "carbonintel/1.0 (market intelligence; contact ops@dovu.earth)"

// Tracker collects raw event records from external sources.
type Tracker interface {
	Name() string
	Collect(ctx context.Context) ([]normalize.RawRecord, error)
}

// fetcher wraps an HTTP client with per-tracker rate limiting and a
// circuit breaker so one misbehaving source cannot stall a refresh.
type fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newFetcher(name string, requestsPerSecond float64) *fetcher {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("source", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("source circuit breaker state change")
		},
	}

	return &fetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// get fetches one URL through the limiter and breaker, returning the
// response body.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait aborted: %w", err)
	}

	body, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}
