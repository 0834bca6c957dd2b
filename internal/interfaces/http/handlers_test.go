package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfon92/carbon-dashboard/internal/domain"
	"github.com/irfon92/carbon-dashboard/internal/normalize"
	"github.com/irfon92/carbon-dashboard/internal/persistence"
)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()

	store, err := persistence.NewStore(t.TempDir())
	require.NoError(t, err)

	now := time.Now().UTC()
	commitments := []domain.Commitment{
		{
			Company:           "Microsoft",
			AnnouncementDate:  now.AddDate(0, 0, -2).Format(domain.DateFormat),
			CommitmentType:    domain.CommitmentCarbonNegative,
			CommitmentDetails: "carbon negative across the supply chain by 2030",
			RelevanceScore:    0.85,
			DovuOpportunity:   "General Carbon Market Activity",
		},
		{
			Company:           "Old Corp",
			AnnouncementDate:  now.AddDate(0, 0, -400).Format(domain.DateFormat),
			CommitmentType:    domain.CommitmentNetZero,
			CommitmentDetails: "net zero eventually",
			RelevanceScore:    0.5,
			DovuOpportunity:   "General Carbon Market Activity",
		},
	}
	funding := []domain.FundingEvent{
		{
			Company:                "CarbonChain",
			FundingType:            "Series A",
			Amount:                 "$5M",
			AnnouncementDate:       now.AddDate(0, 0, -3).Format(domain.DateFormat),
			Sector:                 "carbon-management",
			Stage:                  domain.StageSeed,
			BusinessModel:          domain.ModelSoftwarePlatform,
			DovuRelevance:          0.7,
			CompetitiveThreat:      0.65,
			PartnershipOpportunity: 0.8,
		},
	}
	require.NoError(t, store.Write(commitments, funding, now))
	_, err = store.Reload(now)
	require.NoError(t, err)

	cfg := ServerConfig{
		Addr:           "127.0.0.1:0",
		RequestTimeout: 5 * time.Second,
		APIKey:         apiKey,
	}
	return NewServer(cfg, store, nil, NewMetricsRegistry())
}

func TestCommitmentsEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/commitments", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp CommitmentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// The 400-day-old record falls outside the default 30-day window.
	require.Len(t, resp.Commitments, 1)
	assert.Equal(t, "Microsoft", resp.Commitments[0].Company)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 30, resp.FiltersApplied.DaysBack)
}

func TestCommitmentsEndpoint_SanitizesParams(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/commitments?days=9999&min_relevance=7&type=%3Cscript%3E", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CommitmentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 180, resp.FiltersApplied.DaysBack)
	assert.Equal(t, 1.0, resp.FiltersApplied.MinRelevance)
	assert.Empty(t, resp.FiltersApplied.CommitmentType)
}

func TestFundingEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/funding?min_threat=0.5", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FundingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.FundingEvents, 1)
	assert.Equal(t, "CarbonChain", resp.FundingEvents[0].Company)
}

func TestFundingEndpoint_ServesNormalizedRecords(t *testing.T) {
	store, err := persistence.NewStore(t.TempDir())
	require.NoError(t, err)

	now := time.Now().UTC()
	funding, dropped := normalize.FundingEvents([]normalize.RawRecord{
		{
			"company":           "Toucan Protocol",
			"funding_type":      "Seed",
			"amount":            "$7.5M",
			"announcement_date": now.AddDate(0, 0, -1).Format(domain.DateFormat),
			"sector":            "climate-tech",
			"description":       "tokenization infrastructure for carbon credit markets",
		},
	})
	require.Zero(t, dropped)
	require.NoError(t, store.Write(nil, funding, now))
	_, err = store.Reload(now)
	require.NoError(t, err)

	srv := NewServer(ServerConfig{Addr: "127.0.0.1:0"}, store, nil, NewMetricsRegistry())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/funding", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FundingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.FundingEvents, 1)
	assert.Equal(t, "Toucan Protocol", resp.FundingEvents[0].Company)
	// Stage and business model come out of normalization, not the
	// raw record.
	assert.Equal(t, domain.StageSeed, resp.FundingEvents[0].Stage)
	assert.NotEmpty(t, resp.FundingEvents[0].BusinessModel)
}

func TestAlertsEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AlertsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Recent high-relevance commitment plus threat and partnership
	// alerts from the funding event.
	require.Len(t, resp.Alerts, 3)
	assert.Equal(t, 3, resp.Total)
}

func TestStatsEndpoint_NoCacheConfigured(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Cached)
	assert.Equal(t, 2, resp.Stats.TotalCommitments)
	assert.Equal(t, 1, resp.Stats.TotalFundingEvents)
	assert.Equal(t, "$5.0M", resp.Stats.TotalFundingValue)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 2, resp.Commitments)
	assert.Equal(t, 1, resp.FundingEvents)
}

func TestHealthEndpoint_EmptyStore(t *testing.T) {
	store, err := persistence.NewStore(t.TempDir())
	require.NoError(t, err)
	srv := NewServer(ServerConfig{Addr: "127.0.0.1:0"}, store, nil, NewMetricsRegistry())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty", resp.Status)
}

func TestAPIKeyRequiredWhenConfigured(t *testing.T) {
	srv := newTestServer(t, "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/api/commitments", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_api_key", errResp.Code)
	assert.NotEmpty(t, errResp.RequestID)

	req = httptest.NewRequest(http.MethodGet, "/api/commitments", nil)
	req.Header.Set("X-API-Key", "secret-key")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyDoesNotGuardHealth(t *testing.T) {
	srv := newTestServer(t, "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "endpoint_not_found", errResp.Code)
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCORSAllowsLocalhostOnly(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	// Generate one request so the counters have values.
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "carbonintel_requests_total"))
	assert.True(t, strings.Contains(body, "carbonintel_snapshot_age_seconds"))
}

func TestDashboardPage(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Carbon Market Intelligence")
	assert.Contains(t, rec.Body.String(), "$5.0M")
}

func TestWriteJSON_EncodeFailureKeepsOriginalStatus(t *testing.T) {
	h := NewHandlers(nil, nil, NewMetricsRegistry())

	rec := httptest.NewRecorder()
	h.writeJSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	// The original status stands; no second WriteHeader is attempted.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCounterValueReadsVec(t *testing.T) {
	m := NewMetricsRegistry()
	m.RecordsIngested.WithLabelValues("commitment").Add(7)

	assert.Equal(t, 7.0, CounterValue(m.RecordsIngested, "commitment"))
	assert.Equal(t, 0.0, CounterValue(m.RecordsIngested, "unknown"))
}
