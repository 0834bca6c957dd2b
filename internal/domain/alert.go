package domain

// Alert kinds. Each kind carries a fixed priority.
const (
	AlertCommitment  = "commitment"
	AlertThreat      = "threat"
	AlertPartnership = "partnership"
)

// Alert priorities, fixed per kind.
const (
	PriorityHigh   = "high"   // commitment alerts
	PriorityUrgent = "urgent" // threat alerts
	PriorityMedium = "medium" // partnership alerts
)

// Alert is an ephemeral notification derived from the current entity
// collections on every query. Alerts are never persisted.
type Alert struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Date        string `json:"date"`
	SourceURL   string `json:"source_url,omitempty"`
}
