package models

// DraftResult is one per-lead item returned by the campaign orchestrator
type DraftResult struct {
	LeadID          string  `json:"lead_id,omitempty"`
	LeadName        string  `json:"lead_name"`
	ResearchSummary string  `json:"research_summary"`
	SubjectLine     string  `json:"subject_line"`
	EmailBody       string  `json:"email_body"`
	LinkedInMessage string  `json:"linkedin_message"`
	FollowUp1       string  `json:"follow_up_1"`
	FollowUp2       string  `json:"follow_up_2"`
	FollowUp3       string  `json:"follow_up_3"`
	QualityScore    float64 `json:"quality_score"`
	Flags           string  `json:"flags"`
}

// DraftBatch is the orchestrator result for one draft generation call
type DraftBatch struct {
	Leads               []DraftResult `json:"leads"`
	AverageQualityScore *float64      `json:"average_quality_score,omitempty"`
}

// Send result statuses
const (
	SendSuccess = "success"
	SendFailed  = "failed"
)

// SendResult records the outcome of delivering one message
// @Description Outcome of one send attempt
type SendResult struct {
	LeadID    string `json:"lead_id,omitempty"`
	LeadName  string `json:"lead_name"`
	Email     string `json:"email"`
	Status    string `json:"status" example:"success"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

// Succeeded reports whether the send went through
func (r SendResult) Succeeded() bool {
	return r.Status == SendSuccess
}

// EngagementResult is one per-lead signal returned by the engagement monitor
type EngagementResult struct {
	LeadID           string `json:"lead_id,omitempty"`
	LeadName         string `json:"lead_name"`
	Company          string `json:"company"`
	Status           string `json:"status"`
	SignalType       string `json:"signal_type"`
	FollowUpDraft    string `json:"follow_up_draft"`
	DaysSinceContact *int   `json:"days_since_contact,omitempty"`
}

// EngagementStats are the counters the engagement monitor reports
type EngagementStats struct {
	HotLeadsCount     int `json:"hot_leads_count"`
	FollowUpsDue      int `json:"follow_ups_due"`
	NotificationsSent int `json:"notifications_sent"`
}

// EngagementReport is the engagement monitor result for one check
type EngagementReport struct {
	Results []EngagementResult `json:"engagement_results"`
	Summary string             `json:"summary"`
	EngagementStats
}
