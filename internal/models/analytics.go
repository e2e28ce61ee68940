package models

import "time"

// ActivityEvent represents a tracked outreach event
type ActivityEvent struct {
	ID        int       `db:"id" json:"id"`
	EventType string    `db:"event_type" json:"event_type"` // draft_generation, email_sent, send_failed, engagement_check, agent_call, agent_failure, status_change
	Count     int       `db:"count" json:"count"`
	Metadata  *string   `db:"metadata" json:"metadata,omitempty"` // JSON metadata (agent id, lead counts, etc.)
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ActivitySummary represents aggregated outreach activity for a time period
type ActivitySummary struct {
	Period           string    `json:"period"`             // "today", "yesterday", "last_7_days", "last_30_days"
	DraftsGenerated  int       `json:"drafts_generated"`   // Leads drafted by the orchestrator
	EmailsSent       int       `json:"emails_sent"`        // Successful sends
	SendFailures     int       `json:"send_failures"`      // Failed sends
	EngagementChecks int       `json:"engagement_checks"`  // Engagement monitor runs
	HotLeadsDetected int       `json:"hot_leads_detected"` // Leads moved to hot_lead or replied
	AgentCalls       int       `json:"agent_calls"`        // Total external agent invocations
	AgentFailures    int       `json:"agent_failures"`     // Invocations that failed or timed out
	StatusChanges    int       `json:"status_changes"`     // Lead status transitions
	StartDate        time.Time `json:"start_date"`         // Period start
	EndDate          time.Time `json:"end_date"`           // Period end
}

// ActivityResponse represents the API response for activity
// @Description Activity response payload
type ActivityResponse struct {
	Success bool             `json:"success" example:"true"`
	Summary *ActivitySummary `json:"summary,omitempty"`
	Recent  []ActivityEvent  `json:"recent,omitempty"`
	Error   string           `json:"error,omitempty" example:""`
}
