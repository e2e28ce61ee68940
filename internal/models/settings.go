package models

import "fmt"

// BrandVoice selects the tone the orchestrator writes in
type BrandVoice string

const (
	BrandVoiceFounder      BrandVoice = "founder"
	BrandVoiceProfessional BrandVoice = "professional"
)

// Settings holds the process-wide outreach configuration
type Settings struct {
	SlackChannel          string     `json:"slack_channel" toml:"slack_channel"`
	FollowUpDays          int        `json:"follow_up_days" toml:"follow_up_days"`
	RotationCaseStudy     bool       `json:"rotation_case_study" toml:"rotation_case_study"`
	RotationROICalculator bool       `json:"rotation_roi_calculator" toml:"rotation_roi_calculator"`
	RotationCheckin       bool       `json:"rotation_checkin" toml:"rotation_checkin"`
	BrandVoice            BrandVoice `json:"brand_voice" toml:"brand_voice"`
	EmailSignature        string     `json:"email_signature" toml:"email_signature"`
}

// DefaultSettings returns the settings a fresh session starts with
func DefaultSettings() Settings {
	return Settings{
		SlackChannel:          "#sales-alerts",
		FollowUpDays:          4,
		RotationCaseStudy:     true,
		RotationROICalculator: true,
		RotationCheckin:       true,
		BrandVoice:            BrandVoiceFounder,
		EmailSignature:        "Best regards,\nAlex Thompson\nFounder, Zaps\nalex@zaps.io",
	}
}

// Validate checks the settings invariants
func (s Settings) Validate() error {
	if s.FollowUpDays < 1 {
		return fmt.Errorf("follow_up_days must be at least 1")
	}
	if s.BrandVoice != BrandVoiceFounder && s.BrandVoice != BrandVoiceProfessional {
		return fmt.Errorf("brand_voice must be %q or %q", BrandVoiceFounder, BrandVoiceProfessional)
	}
	return nil
}

// SenderProvider is the mailbox provider behind a sender account
type SenderProvider string

const (
	ProviderGoogle SenderProvider = "google"
	ProviderSMTP   SenderProvider = "smtp"
)

// SenderAccount is a mailbox outreach can be sent from
type SenderAccount struct {
	ID          string         `json:"id" toml:"id"`
	Email       string         `json:"email" toml:"email"`
	DisplayName string         `json:"display_name" toml:"display_name"`
	DailyLimit  int            `json:"daily_limit" toml:"daily_limit"`
	SentToday   int            `json:"sent_today" toml:"sent_today"`
	HealthScore int            `json:"health_score" toml:"health_score"` // 0-100
	Active      bool           `json:"active" toml:"active"`
	Provider    SenderProvider `json:"provider" toml:"provider"`
}

// Validate checks the sender account invariants
func (a SenderAccount) Validate() error {
	if a.Email == "" {
		return fmt.Errorf("email is required")
	}
	if a.DailyLimit < 0 {
		return fmt.Errorf("daily_limit must not be negative")
	}
	if a.HealthScore < 0 || a.HealthScore > 100 {
		return fmt.Errorf("health_score must be between 0 and 100")
	}
	if a.Provider != ProviderGoogle && a.Provider != ProviderSMTP {
		return fmt.Errorf("provider must be %q or %q", ProviderGoogle, ProviderSMTP)
	}
	return nil
}

// HasCapacity reports whether the account can send another message today
func (a SenderAccount) HasCapacity() bool {
	return a.Active && a.SentToday < a.DailyLimit
}
