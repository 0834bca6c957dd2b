package http

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/alerts"
	"github.com/irfon92/carbon-dashboard/internal/cache"
	"github.com/irfon92/carbon-dashboard/internal/persistence"
	"github.com/irfon92/carbon-dashboard/internal/query"
)

// Handlers manages all HTTP endpoint handlers.
type Handlers struct {
	store   *persistence.Store
	stats   *cache.StatsCache
	metrics *MetricsRegistry
}

// NewHandlers creates a handlers instance over the snapshot store.
func NewHandlers(store *persistence.Store, stats *cache.StatsCache, metrics *MetricsRegistry) *Handlers {
	return &Handlers{store: store, stats: stats, metrics: metrics}
}

// Commitments serves filtered corporate commitments.
func (h *Handlers) Commitments(w http.ResponseWriter, r *http.Request) {
	params := paramsFromRequest(r).Sanitized()
	snap := h.store.Current()

	filtered, total := query.FilterCommitments(snap.Commitments, params, time.Now().UTC())
	h.writeJSON(w, http.StatusOK, CommitmentsResponse{
		Commitments:    filtered,
		Total:          total,
		FiltersApplied: params,
		Generated:      time.Now().UTC(),
	})
}

// Funding serves filtered VC funding events.
func (h *Handlers) Funding(w http.ResponseWriter, r *http.Request) {
	params := paramsFromRequest(r).Sanitized()
	snap := h.store.Current()

	filtered, total := query.FilterFunding(snap.Funding, params, time.Now().UTC())
	h.writeJSON(w, http.StatusOK, FundingResponse{
		FundingEvents:  filtered,
		Total:          total,
		FiltersApplied: params,
		Generated:      time.Now().UTC(),
	})
}

// Alerts serves the derived alert feed.
func (h *Handlers) Alerts(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	derived, total := alerts.Derive(snap.Commitments, snap.Funding, time.Now().UTC())
	h.writeJSON(w, http.StatusOK, AlertsResponse{
		Alerts:    derived,
		Total:     total,
		Generated: time.Now().UTC(),
	})
}

// Stats serves summary statistics, cache-first.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	if stats, ok := h.stats.Get(r.Context()); ok {
		h.metrics.CacheHits.Inc()
		h.writeJSON(w, http.StatusOK, StatsResponse{Stats: stats, Cached: true, Generated: now})
		return
	}
	h.metrics.CacheMisses.Inc()

	snap := h.store.Current()
	stats := alerts.Summarize(snap.Commitments, snap.Funding, now)
	_ = h.stats.Set(r.Context(), stats)

	h.writeJSON(w, http.StatusOK, StatsResponse{Stats: stats, Cached: false, Generated: now})
}

// Health reports snapshot freshness and sizes.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()

	status := "healthy"
	if snap.LoadedAt.IsZero() {
		status = "empty"
	}

	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:         status,
		Timestamp:      time.Now().UTC(),
		SnapshotLoaded: snap.LoadedAt,
		Commitments:    len(snap.Commitments),
		FundingEvents:  len(snap.Funding),
		Dropped:        snap.Dropped,
	})
}

// NotFound handles 404 responses.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Carbon Market Intelligence</title></head>
<body>
<h1>Carbon Market Intelligence</h1>
<ul>
<li>Commitments: {{.TotalCommitments}} ({{.RecentCommitments}} recent, {{.HighValueCommitments}} high-value)</li>
<li>Funding events: {{.TotalFundingEvents}} ({{.RecentFundingEvents}} recent, {{.TotalFundingValue}} total)</li>
<li>Competitive threats: {{.CompetitiveThreats}}</li>
<li>Partnership opportunities: {{.PartnershipOpportunities}}</li>
</ul>
<p>Last updated: {{.LastUpdated}}</p>
<p><a href="/api/commitments">commitments</a> | <a href="/api/funding">funding</a> | <a href="/api/alerts">alerts</a> | <a href="/api/stats">stats</a></p>
</body>
</html>
`))

// Dashboard renders a minimal HTML summary page.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	stats := alerts.Summarize(snap.Commitments, snap.Funding, time.Now().UTC())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, stats); err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "render_failed",
			"Failed to render dashboard")
	}
}

// writeJSON writes a JSON response. The status header is already
// sent by the time encoding can fail, so failures are logged rather
// than answered with a second status write.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("response encoding failed")
	}
}

// writeError writes the standardized error response.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestIDFrom(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}

// paramsFromRequest maps query string values onto filter parameters.
// Unparseable values keep their defaults; range enforcement happens
// in Sanitized.
func paramsFromRequest(r *http.Request) query.Params {
	params := query.DefaultParams()
	q := r.URL.Query()

	if v := q.Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.DaysBack = n
		}
	}
	if v := q.Get("min_relevance"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinRelevance = f
		}
	}
	if v := q.Get("min_threat"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinThreat = f
		}
	}
	if v := q.Get("min_partnership"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPartnership = f
		}
	}
	params.CommitmentType = q.Get("type")
	params.Sector = q.Get("sector")

	return params
}
