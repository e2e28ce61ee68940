package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents an activity-log database health check response
// @Description Database health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// APIResponse is the envelope every mutating endpoint replies with
// @Description Generic API response
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Added Jane Smith to batch."`
	Error   string      `json:"error,omitempty" example:""`
	Data    interface{} `json:"data,omitempty"`
}

// LeadForm is the single-lead intake payload
// @Description Single lead intake form
type LeadForm struct {
	Name        string `json:"name" example:"Jane Smith"`
	Company     string `json:"company" example:"Acme Corp"`
	CompanyURL  string `json:"company_url" example:"https://acme.com"`
	LinkedInURL string `json:"linkedin_url" example:"https://linkedin.com/in/janesmith"`
	Email       string `json:"email" example:"jane@acme.com"`
	Channel     string `json:"channel,omitempty" example:"email"`
}

// BulkRequest carries comma-separated lead lines
// @Description Bulk intake payload
type BulkRequest struct {
	Text string `json:"text" example:"Jane Smith, Acme Corp, https://acme.com, , jane@acme.com"`
}

// DraftEdit updates the editable parts of a generated draft; nil fields are left alone
// @Description Draft edit payload
type DraftEdit struct {
	SubjectLine     *string `json:"subject_line,omitempty"`
	EmailBody       *string `json:"email_body,omitempty"`
	LinkedInMessage *string `json:"linkedin_message,omitempty"`
	FollowUp1       *string `json:"follow_up_1,omitempty"`
	FollowUp2       *string `json:"follow_up_2,omitempty"`
	FollowUp3       *string `json:"follow_up_3,omitempty"`
}

// ApprovalRequest toggles approval on one or all drafted leads
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// StatusRequest moves a lead to a new status manually
type StatusRequest struct {
	Status Status `json:"status" example:"closed"`
}

// SampleDataRequest switches sample-data mode
type SampleDataRequest struct {
	Enabled bool `json:"enabled"`
}

// TagRequest asks for research tags of free text
type TagRequest struct {
	Text string `json:"text"`
}

// SessionStatus mirrors the dashboard's loading bar and alert area
// @Description Current action state
type SessionStatus struct {
	Loading       bool   `json:"loading"`
	ActiveAgent   string `json:"active_agent,omitempty"`
	Progress      int    `json:"progress"`
	StatusMessage string `json:"status_message,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	SampleData    bool   `json:"sample_data"`
}

// EngagementView is the engagement tracker payload
// @Description Engagement results with summary counters
type EngagementView struct {
	Filter  string             `json:"filter" example:"all"`
	Results []EngagementResult `json:"results"`
	Summary string             `json:"summary"`
	Stats   EngagementStats    `json:"stats"`
}

// DraftsResponse reports the outcome of draft generation
// @Description Draft generation outcome
type DraftsResponse struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message,omitempty"`
	Error               string   `json:"error,omitempty"`
	Drafted             []Lead   `json:"drafted,omitempty"`
	AverageQualityScore *float64 `json:"average_quality_score,omitempty"`
}

// SendResponse reports the outcome of a send run
// @Description Send run outcome
type SendResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Error     string       `json:"error,omitempty"`
	Results   []SendResult `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

// AdminAuthRequest carries operator credentials
// @Description Login credentials
type AdminAuthRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

// AdminAuthResponse returns the operator token
// @Description Login result
type AdminAuthResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty" example:""`
}
