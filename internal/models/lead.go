package models

import (
	"errors"
	"strings"
)

// Status is the position of a lead in the outreach funnel
type Status string

// Lead statuses, in pipeline order
const (
	StatusNew        Status = "new"
	StatusResearched Status = "researched"
	StatusDrafted    Status = "drafted"
	StatusSent       Status = "sent"
	StatusHotLead    Status = "hot_lead"
	StatusReplied    Status = "replied"
	StatusClosed     Status = "closed"
)

// Statuses lists every status in the order the pipeline board shows them
var Statuses = []Status{
	StatusNew,
	StatusResearched,
	StatusDrafted,
	StatusSent,
	StatusHotLead,
	StatusReplied,
	StatusClosed,
}

// ErrInvalidTransition is returned when a status write is not allowed by the funnel
var ErrInvalidTransition = errors.New("invalid status transition")

var transitions = map[Status][]Status{
	StatusNew:        {StatusResearched, StatusDrafted},
	StatusResearched: {StatusDrafted},
	StatusDrafted:    {StatusSent},
	StatusSent:       {StatusHotLead, StatusReplied, StatusClosed},
	StatusHotLead:    {StatusReplied, StatusClosed},
	StatusReplied:    {StatusClosed},
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the column title used on the pipeline board
func (s Status) Label() string {
	switch s {
	case StatusHotLead:
		return "Hot Lead"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(string(s[:1])) + string(s[1:])
	}
}

// IsOutbound reports whether a lead with this status has been contacted
func (s Status) IsOutbound() bool {
	switch s {
	case StatusSent, StatusHotLead, StatusReplied, StatusClosed:
		return true
	}
	return false
}

// IsEngageable reports whether engagement checks apply to this status
func (s Status) IsEngageable() bool {
	return s == StatusSent || s == StatusHotLead || s == StatusReplied
}

// CanTransition reports whether a lead may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return from.Valid()
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Channel is the outreach medium for a lead
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelLinkedIn Channel = "linkedin"
)

// ParseChannel maps free text to a channel; only "linkedin" (any case) selects LinkedIn
func ParseChannel(token string) Channel {
	if strings.EqualFold(strings.TrimSpace(token), string(ChannelLinkedIn)) {
		return ChannelLinkedIn
	}
	return ChannelEmail
}

// Engagement signal types reported by the engagement monitor
const (
	SignalReply      = "reply"
	SignalLinkClick  = "link_click"
	SignalOpen       = "open"
	SignalNoResponse = "no_response"
)

// StatusForSignal maps an engagement signal to the status it implies.
// The boolean is false when the signal leaves the status unchanged.
func StatusForSignal(signalType string) (Status, bool) {
	switch signalType {
	case SignalReply:
		return StatusReplied, true
	case SignalLinkClick, SignalOpen:
		return StatusHotLead, true
	}
	return "", false
}

// Lead represents a prospect and its outreach lifecycle
type Lead struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Company          string          `json:"company"`
	CompanyURL       string          `json:"company_url"`
	LinkedInURL      string          `json:"linkedin_url"`
	Email            string          `json:"email"`
	Channel          Channel         `json:"channel"`
	Status           Status          `json:"status"`
	LastAction       string          `json:"last_action"`
	LastActionDate   string          `json:"last_action_date"` // YYYY-MM-DD
	ResearchSummary  string          `json:"research_summary,omitempty"`
	SubjectLine      string          `json:"subject_line,omitempty"`
	EmailBody        string          `json:"email_body,omitempty"`
	LinkedInMessage  string          `json:"linkedin_message,omitempty"`
	FollowUp1        string          `json:"follow_up_1,omitempty"`
	FollowUp2        string          `json:"follow_up_2,omitempty"`
	FollowUp3        string          `json:"follow_up_3,omitempty"`
	QualityScore     int             `json:"quality_score"`
	Flags            string          `json:"flags,omitempty"`
	Approved         bool            `json:"approved"`
	EngagementSignal string          `json:"engagement_signal,omitempty"`
	DaysSinceContact int             `json:"days_since_contact"`
	Timeline         []TimelineEvent `json:"timeline"`
}

// TimelineEvent is one entry in a lead's append-only activity history
type TimelineEvent struct {
	ID      string  `json:"id"`
	Channel Channel `json:"channel"`
	Action  string  `json:"action"`
	Date    string  `json:"date"`
	Detail  string  `json:"detail,omitempty"`
}

// SetStatus moves the lead to a new status if the funnel allows it
func (l *Lead) SetStatus(to Status) error {
	if !CanTransition(l.Status, to) {
		return ErrInvalidTransition
	}
	l.Status = to
	return nil
}

// Touch records the last action and appends a matching timeline event
func (l *Lead) Touch(eventID, action, date, detail string) {
	l.LastAction = action
	l.LastActionDate = date
	l.Timeline = append(l.Timeline, TimelineEvent{
		ID:      eventID,
		Channel: l.Channel,
		Action:  action,
		Date:    date,
		Detail:  detail,
	})
}

// Clone returns a copy of the lead that does not share its timeline
func (l Lead) Clone() Lead {
	if l.Timeline != nil {
		l.Timeline = append([]TimelineEvent(nil), l.Timeline...)
	}
	return l
}
