package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"outreach/internal/models"

	"github.com/rs/zerolog"
)

// EventType constants for tracking outreach activity
const (
	EventDraftGeneration = "draft_generation"
	EventEmailSent       = "email_sent"
	EventSendFailed      = "send_failed"
	EventEngagementCheck = "engagement_check"
	EventHotLead         = "hot_lead_detected"
	EventAgentCall       = "agent_call"
	EventAgentFailure    = "agent_failure"
	EventStatusChange    = "status_change"
)

// Period constants for summary queries
const (
	PeriodToday      = "today"
	PeriodYesterday  = "yesterday"
	PeriodLast7Days  = "last_7_days"
	PeriodLast30Days = "last_30_days"
)

// Store is the persistence the service records into
type Store interface {
	Insert(ctx context.Context, event models.ActivityEvent) error
	Totals(ctx context.Context, from, to time.Time) (map[string]int, error)
	Recent(ctx context.Context, limit int) ([]models.ActivityEvent, error)
}

// Service tracks outreach activity in the activity log. A nil *Service
// tracks nothing, so callers need no feature checks.
type Service struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates an analytics service over store
func NewService(store Store, logger zerolog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("activity store is required for analytics service")
	}
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "analytics").Logger(),
		now:    time.Now,
	}, nil
}

// TrackEvent records an event with optional JSON metadata
func (s *Service) TrackEvent(ctx context.Context, eventType string, count int, metadata map[string]interface{}) error {
	if s == nil {
		return nil
	}

	var metadataJSON *string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			str := string(b)
			metadataJSON = &str
		}
	}

	err := s.store.Insert(ctx, models.ActivityEvent{
		EventType: eventType,
		Count:     count,
		Metadata:  metadataJSON,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to track activity")
		return fmt.Errorf("failed to track event: %w", err)
	}
	return nil
}

// TrackDraftGeneration records one orchestrator run
func (s *Service) TrackDraftGeneration(ctx context.Context, drafted int, average *float64) error {
	metadata := map[string]interface{}{"drafted": drafted}
	if average != nil {
		metadata["average_quality_score"] = *average
	}
	return s.TrackEvent(ctx, EventDraftGeneration, drafted, metadata)
}

// TrackSend records one delivery outcome
func (s *Service) TrackSend(ctx context.Context, channel models.Channel, recipient string, success bool) error {
	eventType := EventEmailSent
	if !success {
		eventType = EventSendFailed
	}
	return s.TrackEvent(ctx, eventType, 1, map[string]interface{}{
		"channel":        channel,
		"recipient_hash": hashEmail(recipient),
	})
}

// TrackEngagementCheck records one engagement monitor run
func (s *Service) TrackEngagementCheck(ctx context.Context, checked, results int) error {
	return s.TrackEvent(ctx, EventEngagementCheck, 1, map[string]interface{}{
		"checked": checked,
		"results": results,
	})
}

// TrackAgentCall records an agent invocation and, when err is set, a failure
func (s *Service) TrackAgentCall(ctx context.Context, agentID string, err error) error {
	if trackErr := s.TrackEvent(ctx, EventAgentCall, 1, map[string]interface{}{"agent_id": agentID}); trackErr != nil {
		return trackErr
	}
	if err == nil {
		return nil
	}
	return s.TrackEvent(ctx, EventAgentFailure, 1, map[string]interface{}{
		"agent_id": agentID,
		"error":    err.Error(),
	})
}

// TrackStatusChange records a lead transition; moves into hot_lead or replied
// also count as a detected hot lead.
func (s *Service) TrackStatusChange(ctx context.Context, from, to models.Status) error {
	if err := s.TrackEvent(ctx, EventStatusChange, 1, map[string]interface{}{"from": from, "to": to}); err != nil {
		return err
	}
	if to == models.StatusHotLead || to == models.StatusReplied {
		return s.TrackEvent(ctx, EventHotLead, 1, nil)
	}
	return nil
}

// ValidPeriod reports whether period is a known summary window
func ValidPeriod(period string) bool {
	switch period {
	case PeriodToday, PeriodYesterday, PeriodLast7Days, PeriodLast30Days:
		return true
	}
	return false
}

// Window returns the [start, end) range of a period; unknown periods mean today
func Window(period string, now time.Time) (string, time.Time, time.Time) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := midnight.AddDate(0, 0, 1)

	switch period {
	case PeriodYesterday:
		return period, midnight.AddDate(0, 0, -1), midnight
	case PeriodLast7Days:
		return period, midnight.AddDate(0, 0, -6), tomorrow
	case PeriodLast30Days:
		return period, midnight.AddDate(0, 0, -29), tomorrow
	default:
		return PeriodToday, midnight, tomorrow
	}
}

// GetSummary aggregates the activity log over a period
func (s *Service) GetSummary(ctx context.Context, period string) (*models.ActivitySummary, error) {
	if s == nil {
		return nil, fmt.Errorf("activity log not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	period, start, end := Window(period, s.now())
	totals, err := s.store.Totals(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity summary: %w", err)
	}

	return &models.ActivitySummary{
		Period:           period,
		DraftsGenerated:  totals[EventDraftGeneration],
		EmailsSent:       totals[EventEmailSent],
		SendFailures:     totals[EventSendFailed],
		EngagementChecks: totals[EventEngagementCheck],
		HotLeadsDetected: totals[EventHotLead],
		AgentCalls:       totals[EventAgentCall],
		AgentFailures:    totals[EventAgentFailure],
		StatusChanges:    totals[EventStatusChange],
		StartDate:        start,
		EndDate:          end,
	}, nil
}

// GetRecent returns the newest recorded events, at most limit of them
func (s *Service) GetRecent(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	if s == nil {
		return nil, fmt.Errorf("activity log not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	events, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	if events == nil {
		events = []models.ActivityEvent{}
	}
	return events, nil
}

// hashEmail masks a recipient address before it is stored
func hashEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	return email[:2] + "***" + email[len(email)-3:]
}
