// Package session owns the outreach working state: the lead collection, the
// intake batch, settings, sender accounts and the results of the last agent
// runs. Every user action goes through the Controller.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"outreach/internal/agent"
	"outreach/internal/cache"
	"outreach/internal/delivery"
	"outreach/internal/events"
	"outreach/internal/metrics"
	"outreach/internal/models"
	"outreach/internal/outreach"
	"outreach/internal/research"

	"github.com/rs/zerolog"
)

var (
	ErrBusy            = errors.New("another agent action is in progress")
	ErrEmptyBatch      = errors.New("Add at least one lead before generating drafts.")
	ErrNothingApproved = errors.New("No approved drafts to send. Approve at least one email first.")
	ErrNothingSent     = errors.New("No sent or active leads to check engagement for.")
	ErrLeadNotFound    = errors.New("lead not found")
	ErrUnknownFilter   = errors.New("unknown engagement filter")
)

// Drafter researches leads and writes outreach drafts
type Drafter interface {
	GenerateDrafts(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error)
}

// Sender delivers one lead's approved message
type Sender interface {
	SendMessage(ctx context.Context, lead models.Lead) ([]models.SendResult, error)
}

// Monitor checks sent leads for engagement signals
type Monitor interface {
	CheckEngagement(ctx context.Context, leads []models.Lead, settings models.Settings) (*models.EngagementReport, error)
}

// ActivityTracker records activity in the activity log
type ActivityTracker interface {
	TrackDraftGeneration(ctx context.Context, drafted int, average *float64) error
	TrackSend(ctx context.Context, channel models.Channel, recipient string, success bool) error
	TrackEngagementCheck(ctx context.Context, checked, results int) error
	TrackAgentCall(ctx context.Context, agentID string, err error) error
	TrackStatusChange(ctx context.Context, from, to models.Status) error
}

// Options wires a Controller. Drafter, Sender and Monitor are required.
type Options struct {
	Drafter    Drafter
	Sender     Sender
	Monitor    Monitor
	AgentIDs   agent.IDs
	Settings   models.Settings
	Senders    *delivery.Pool
	Publisher  events.Publisher
	Activity   ActivityTracker
	TagTTL     time.Duration
	SampleData bool
	Logger     zerolog.Logger
}

// Controller serialises all state changes. Agent-calling actions also hold
// the busy flag for their whole run, so at most one external call is in
// flight while reads keep working.
type Controller struct {
	mu   sync.RWMutex
	busy bool

	leads       []models.Lead
	batch       []models.Lead
	settings    models.Settings
	sampleData  bool
	status      models.SessionStatus
	sendResults []models.SendResult
	engagement  *models.EngagementReport

	drafter   Drafter
	sender    Sender
	monitor   Monitor
	ids       agent.IDs
	senders   *delivery.Pool
	publisher events.Publisher
	activity  ActivityTracker
	tags      *cache.Cache[[]research.Tag]
	tagTTL    time.Duration
	logger    zerolog.Logger
	now       func() time.Time

	// sideEffectTimeout bounds activity writes and event publishing, which
	// outlive the request that triggered them
	sideEffectTimeout time.Duration
}

// New creates a controller with an empty lead collection, or the sample
// leads when opts.SampleData is set
func New(opts Options) *Controller {
	settings := opts.Settings
	if settings.Validate() != nil {
		settings = models.DefaultSettings()
	}
	senders := opts.Senders
	if senders == nil {
		senders = delivery.NewPool(nil)
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	tagTTL := opts.TagTTL
	if tagTTL <= 0 {
		tagTTL = 30 * time.Minute
	}

	c := &Controller{
		leads:     []models.Lead{},
		batch:     []models.Lead{},
		settings:  settings,
		drafter:   opts.Drafter,
		sender:    opts.Sender,
		monitor:   opts.Monitor,
		ids:       opts.AgentIDs,
		senders:   senders,
		publisher: publisher,
		activity:  opts.Activity,
		tags:      cache.New[[]research.Tag](),
		tagTTL:    tagTTL,
		logger:    opts.Logger.With().Str("component", "session").Logger(),
		now:       time.Now,

		sideEffectTimeout: 5 * time.Second,
	}
	if opts.SampleData {
		c.sampleData = true
		c.leads = SampleLeads()
	}
	return c
}

// Status returns the loading, progress and message state
func (c *Controller) Status() models.SessionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.status
	s.SampleData = c.sampleData
	return s
}

// SampleData reports whether sample-data mode is on
func (c *Controller) SampleData() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sampleData
}

// SetSampleData switches sample-data mode. Turning it on replaces the lead
// collection with the sample leads; turning it off resets leads, batch, send
// results and engagement results.
func (c *Controller) SetSampleData(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}

	c.sampleData = enabled
	if enabled {
		c.leads = SampleLeads()
	} else {
		c.leads = []models.Lead{}
		c.batch = []models.Lead{}
		c.engagement = nil
		c.sendResults = nil
		c.tags.Clear()
	}
	c.logger.Info().Bool("enabled", enabled).Msg("Sample data toggled")
	return nil
}

// Settings returns the current settings
func (c *Controller) Settings() models.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// UpdateSettings replaces the settings after validation
func (c *Controller) UpdateSettings(s models.Settings) (models.Settings, error) {
	if err := s.Validate(); err != nil {
		return models.Settings{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
	return s, nil
}

// Senders exposes the sender account pool
func (c *Controller) Senders() *delivery.Pool {
	return c.senders
}

// begin claims the busy flag for an agent action. collect runs under the
// lock and returns the input snapshot or a precondition error.
func (c *Controller) begin(agentID, message string, collect func() ([]models.Lead, error)) ([]models.Lead, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return nil, ErrBusy
	}

	input, err := collect()
	if err != nil {
		c.status.ErrorMessage = err.Error()
		c.status.StatusMessage = ""
		return nil, err
	}

	c.busy = true
	c.status = models.SessionStatus{
		Loading:       true,
		ActiveAgent:   agentID,
		StatusMessage: message,
	}
	return input, nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.status.Loading = false
	c.status.ActiveAgent = ""
}

func (c *Controller) fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.StatusMessage = ""
	c.status.ErrorMessage = message
}

// indexOf finds a lead by id; caller holds the lock
func indexOf(leads []models.Lead, id string) int {
	for i := range leads {
		if leads[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(leads []models.Lead) []models.Lead {
	out := make([]models.Lead, len(leads))
	for i, lead := range leads {
		out[i] = lead.Clone()
	}
	return out
}

// observe reports status transitions to metrics, the activity log and the
// event stream. It runs outside the lock.
func (c *Controller) observe(ctx context.Context, transitions []outreach.Transition) {
	if len(transitions) == 0 {
		return
	}

	pubCtx, cancel := c.detached(ctx)
	defer cancel()

	now := c.now().UTC()
	for _, t := range transitions {
		metrics.RecordStatusChange(string(t.To))
		if c.activity != nil {
			_ = c.activity.TrackStatusChange(pubCtx, t.From, t.To)
		}

		event := events.LeadEvent{
			LeadID:     t.LeadID,
			LeadName:   t.LeadName,
			From:       t.From,
			To:         t.To,
			Reason:     t.Reason,
			OccurredAt: now,
		}
		if err := c.publisher.Publish(pubCtx, event); err != nil {
			c.logger.Warn().Err(err).Str("lead_id", t.LeadID).Msg("Failed to publish lead event")
		}
	}
}

func (c *Controller) trackAgentCall(ctx context.Context, agentID string, err error) {
	c.track(ctx, func(ctx context.Context) error {
		return c.activity.TrackAgentCall(ctx, agentID, err)
	})
}

// detached returns a context that survives cancellation of ctx but still
// ends after sideEffectTimeout
func (c *Controller) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.sideEffectTimeout)
}

// track runs one activity write on a detached context. Failures are logged
// and never fail the action.
func (c *Controller) track(ctx context.Context, write func(context.Context) error) {
	if c.activity == nil {
		return
	}
	trackCtx, cancel := c.detached(ctx)
	defer cancel()
	if err := write(trackCtx); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to record activity")
	}
}
