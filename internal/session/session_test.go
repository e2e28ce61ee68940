package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"outreach/internal/agent"
	"outreach/internal/delivery"
	"outreach/internal/events"
	"outreach/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

var testIDs = agent.IDs{Orchestrator: "orch", Delivery: "deliver", Engagement: "engage"}

type drafterFunc func(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error)

func (f drafterFunc) GenerateDrafts(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error) {
	return f(ctx, leads)
}

type senderFunc func(ctx context.Context, lead models.Lead) ([]models.SendResult, error)

func (f senderFunc) SendMessage(ctx context.Context, lead models.Lead) ([]models.SendResult, error) {
	return f(ctx, lead)
}

type monitorFunc func(ctx context.Context, leads []models.Lead, settings models.Settings) (*models.EngagementReport, error)

func (f monitorFunc) CheckEngagement(ctx context.Context, leads []models.Lead, settings models.Settings) (*models.EngagementReport, error) {
	return f(ctx, leads, settings)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.LeadEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.LeadEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) transitions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.LeadID+":"+string(e.From)+"->"+string(e.To))
	}
	return out
}

type recordingActivity struct {
	mu    sync.Mutex
	calls []string
}

func (a *recordingActivity) add(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, name)
	return nil
}

func (a *recordingActivity) TrackDraftGeneration(context.Context, int, *float64) error {
	return a.add("drafts")
}

func (a *recordingActivity) TrackSend(_ context.Context, _ models.Channel, _ string, success bool) error {
	if success {
		return a.add("sent")
	}
	return a.add("send_failed")
}

func (a *recordingActivity) TrackEngagementCheck(context.Context, int, int) error {
	return a.add("engagement")
}

func (a *recordingActivity) TrackAgentCall(_ context.Context, agentID string, _ error) error {
	return a.add("call:" + agentID)
}

func (a *recordingActivity) TrackStatusChange(context.Context, models.Status, models.Status) error {
	return a.add("status")
}

type fixture struct {
	c         *Controller
	publisher *recordingPublisher
	activity  *recordingActivity
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	publisher := &recordingPublisher{}
	activity := &recordingActivity{}

	if opts.Drafter == nil {
		opts.Drafter = drafterFunc(func(context.Context, []models.Lead) (*models.DraftBatch, error) {
			t.Fatal("unexpected draft call")
			return nil, nil
		})
	}
	if opts.Sender == nil {
		opts.Sender = senderFunc(func(context.Context, models.Lead) ([]models.SendResult, error) {
			t.Fatal("unexpected send call")
			return nil, nil
		})
	}
	if opts.Monitor == nil {
		opts.Monitor = monitorFunc(func(context.Context, []models.Lead, models.Settings) (*models.EngagementReport, error) {
			t.Fatal("unexpected engagement call")
			return nil, nil
		})
	}
	opts.AgentIDs = testIDs
	opts.Publisher = publisher
	opts.Activity = activity
	opts.Logger = zerolog.Nop()
	opts.Settings = models.DefaultSettings()

	c := New(opts)
	c.now = func() time.Time { return testNow }
	return fixture{c: c, publisher: publisher, activity: activity}
}

func draftedLead(id, name string) models.Lead {
	return models.Lead{
		ID:          id,
		Name:        name,
		Email:       id + "@acme.io",
		Channel:     models.ChannelEmail,
		Status:      models.StatusDrafted,
		SubjectLine: "Hello " + name,
		EmailBody:   "Body",
		Approved:    true,
	}
}

func TestNew_SampleData(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	leads := f.c.Leads("")
	require.Len(t, leads, 5)
	assert.Equal(t, "Sarah Chen", leads[0].Name)
	assert.Equal(t, "Lisa Wang", leads[4].Name)
	assert.True(t, f.c.Status().SampleData)

	f = newFixture(t, Options{})
	assert.Empty(t, f.c.Leads(""))
}

func TestSetSampleData_OffIsFullReset(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})
	_, _, err := f.c.AddBulk("Jane Smith, Acme")
	require.NoError(t, err)
	f.c.sendResults = []models.SendResult{{LeadName: "Sarah Chen", Status: models.SendSuccess}}
	f.c.engagement = &models.EngagementReport{
		Results: []models.EngagementResult{{LeadName: "Sarah Chen", SignalType: models.SignalReply}},
		Summary: "1 reply",
	}
	_, err = f.c.LeadDetail("s1")
	require.NoError(t, err)

	require.NoError(t, f.c.SetSampleData(false))
	assert.Zero(t, f.c.tags.Clear(), "reset drops cached research tags")

	assert.Empty(t, f.c.Leads(""))
	assert.Empty(t, f.c.Batch())
	assert.Empty(t, f.c.SendResults())
	view, err := f.c.Engagement("")
	require.NoError(t, err)
	assert.Empty(t, view.Results)
	assert.Empty(t, view.Summary)
	assert.Equal(t, models.EngagementStats{}, view.Stats)
	assert.False(t, f.c.SampleData())

	require.NoError(t, f.c.SetSampleData(true))
	assert.Len(t, f.c.Leads(""), 5)
}

func TestIntake(t *testing.T) {
	f := newFixture(t, Options{})

	lead, msg, err := f.c.AddLead(models.LeadForm{Name: " Jane Smith ", Email: "jane@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", lead.Name)
	assert.NotEmpty(t, msg)

	_, _, err = f.c.AddLead(models.LeadForm{Name: "No Email"})
	assert.Error(t, err)

	added, _, err := f.c.AddBulk("A One, Co\ninvalid line\nB Two, Co2, , , b@co2.io, LinkedIn")
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, models.ChannelLinkedIn, added[1].Channel)
	assert.Len(t, f.c.Batch(), 3)

	require.NoError(t, f.c.RemoveBatchLead(lead.ID))
	assert.ErrorIs(t, f.c.RemoveBatchLead(lead.ID), ErrLeadNotFound)
	assert.Len(t, f.c.Batch(), 2)

	f.c.ClearBatch()
	assert.Empty(t, f.c.Batch())
}

func TestGenerateDrafts(t *testing.T) {
	avg := 87.5
	f := newFixture(t, Options{
		Drafter: drafterFunc(func(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error) {
			require.Len(t, leads, 2)
			return &models.DraftBatch{
				Leads: []models.DraftResult{
					{LeadID: leads[0].ID, SubjectLine: "Hi Jane", QualityScore: 90},
					{LeadID: leads[1].ID, SubjectLine: "Hi Bob", QualityScore: 85},
				},
				AverageQualityScore: &avg,
			}, nil
		}),
	})
	_, _, err := f.c.AddBulk("Jane Smith, Acme\nBob Lee, Initech")
	require.NoError(t, err)

	outcome, err := f.c.GenerateDrafts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Successfully generated drafts for 2 lead(s). Average quality: 87.5.", outcome.Message)
	assert.Empty(t, f.c.Batch())
	drafted := f.c.Leads(models.StatusDrafted)
	require.Len(t, drafted, 2)
	assert.Equal(t, "Hi Jane", drafted[0].SubjectLine)

	status := f.c.Status()
	assert.False(t, status.Loading)
	assert.Empty(t, status.ActiveAgent)
	assert.Equal(t, outcome.Message, status.StatusMessage)

	assert.Len(t, f.publisher.transitions(), 2)
	assert.Contains(t, f.activity.calls, "call:orch")
	assert.Contains(t, f.activity.calls, "drafts")
}

func TestGenerateDrafts_EmptyBatch(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.c.GenerateDrafts(context.Background())
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Equal(t, "Add at least one lead before generating drafts.", f.c.Status().ErrorMessage)
}

func TestGenerateDrafts_Failure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"agent message", &agent.AgentError{AgentID: "orch", Message: "quota exceeded"}, "quota exceeded"},
		{"agent without message", &agent.AgentError{AgentID: "orch"}, "Failed to generate drafts. Please try again."},
		{"transport", errors.New("connection reset"), "An error occurred while generating drafts."},
		{"timeout", agent.ErrTimeout, "An error occurred while generating drafts. The agent timed out."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{
				Drafter: drafterFunc(func(context.Context, []models.Lead) (*models.DraftBatch, error) {
					return nil, tt.err
				}),
			})
			_, _, err := f.c.AddBulk("Jane Smith, Acme")
			require.NoError(t, err)

			_, err = f.c.GenerateDrafts(context.Background())
			assert.ErrorIs(t, err, tt.err)
			assert.Len(t, f.c.Batch(), 1)
			assert.Empty(t, f.c.Leads(""))
			assert.Equal(t, tt.expected, f.c.Status().ErrorMessage)
			assert.False(t, f.c.Status().Loading)
		})
	}
}

func TestSendApproved_PartialFailure(t *testing.T) {
	calls := 0
	f := newFixture(t, Options{
		Sender: senderFunc(func(ctx context.Context, lead models.Lead) ([]models.SendResult, error) {
			calls++
			if calls == 2 {
				return nil, &agent.AgentError{AgentID: "deliver"}
			}
			return nil, nil
		}),
	})
	f.c.leads = []models.Lead{draftedLead("1", "Ann"), draftedLead("2", "Ben"), draftedLead("3", "Cat")}

	outcome, err := f.c.SendApproved(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, calls)
	require.Len(t, outcome.Results, 3)
	assert.Equal(t, 2, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, "Unknown error", outcome.Results[1].Error)
	assert.Equal(t, "Sending complete. 2 sent, 1 failed.", outcome.Message)

	leads := f.c.Leads("")
	assert.Equal(t, models.StatusSent, leads[0].Status)
	assert.False(t, leads[0].Approved)
	assert.Equal(t, "Email sent", leads[0].LastAction)
	assert.Equal(t, models.StatusDrafted, leads[1].Status)
	assert.True(t, leads[1].Approved)
	assert.Equal(t, models.StatusSent, leads[2].Status)
	assert.False(t, leads[2].Approved)

	assert.Equal(t, 100, f.c.Status().Progress)
	assert.Equal(t, outcome.Results, f.c.SendResults())
	assert.Equal(t, []string{"1:drafted->sent", "3:drafted->sent"}, f.publisher.transitions())
}

func TestSendApproved_FailureTexts(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"timeout", agent.ErrTimeout, "timed out"},
		{"agent message", &agent.AgentError{Message: "mailbox full"}, "mailbox full"},
		{"network", errors.New("dial tcp: refused"), "Network error"},
		{"direct delivery", &delivery.Error{Err: delivery.ErrNoSenderAvailable}, delivery.ErrNoSenderAvailable.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{
				Sender: senderFunc(func(context.Context, models.Lead) ([]models.SendResult, error) {
					return nil, tt.err
				}),
			})
			f.c.leads = []models.Lead{draftedLead("1", "Ann")}

			outcome, err := f.c.SendApproved(context.Background())
			require.NoError(t, err)
			require.Len(t, outcome.Results, 1)
			assert.Equal(t, models.SendFailed, outcome.Results[0].Status)
			assert.Equal(t, tt.expected, outcome.Results[0].Error)
		})
	}
}

type hangingMailer struct{}

func (hangingMailer) Deliver(ctx context.Context, _ delivery.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSendApproved_DirectDeliveryTimesOut(t *testing.T) {
	pool := delivery.NewPool([]models.SenderAccount{{
		ID: "alex", Email: "alex@zaps.io", DailyLimit: 10, HealthScore: 90, Active: true, Provider: models.ProviderGoogle,
	}})
	f := newFixture(t, Options{
		Sender: delivery.NewService(hangingMailer{}, pool, 0, 20*time.Millisecond, zerolog.Nop()),
	})
	f.c.leads = []models.Lead{draftedLead("1", "Ann")}

	outcome, err := f.c.SendApproved(context.Background())
	require.NoError(t, err)

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, models.SendFailed, outcome.Results[0].Status)
	assert.Equal(t, "timed out", outcome.Results[0].Error)
	lead := f.c.Leads("")[0]
	assert.Equal(t, models.StatusDrafted, lead.Status)
	assert.True(t, lead.Approved)
	assert.False(t, f.c.Status().Loading)
	assert.Equal(t, 0, pool.List()[0].SentToday)
}

// stuckActivity blocks every write until its context ends
type stuckActivity struct{}

func (stuckActivity) wait(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (a stuckActivity) TrackDraftGeneration(ctx context.Context, _ int, _ *float64) error {
	return a.wait(ctx)
}

func (a stuckActivity) TrackSend(ctx context.Context, _ models.Channel, _ string, _ bool) error {
	return a.wait(ctx)
}

func (a stuckActivity) TrackEngagementCheck(ctx context.Context, _, _ int) error {
	return a.wait(ctx)
}

func (a stuckActivity) TrackAgentCall(ctx context.Context, _ string, _ error) error {
	return a.wait(ctx)
}

func (a stuckActivity) TrackStatusChange(ctx context.Context, _, _ models.Status) error {
	return a.wait(ctx)
}

func TestActions_StuckActivityStoreIsBounded(t *testing.T) {
	f := newFixture(t, Options{
		Sender: senderFunc(func(context.Context, models.Lead) ([]models.SendResult, error) {
			return nil, nil
		}),
		Monitor: monitorFunc(func(context.Context, []models.Lead, models.Settings) (*models.EngagementReport, error) {
			return &models.EngagementReport{Results: []models.EngagementResult{{LeadID: "1", LeadName: "Ann", SignalType: models.SignalReply}}}, nil
		}),
	})
	f.c.activity = stuckActivity{}
	f.c.sideEffectTimeout = 20 * time.Millisecond
	f.c.leads = []models.Lead{draftedLead("1", "Ann")}

	start := time.Now()
	outcome, err := f.c.SendApproved(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Succeeded)

	_, err = f.c.CheckEngagement(context.Background())
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, models.StatusReplied, f.c.Leads("")[0].Status)
	assert.False(t, f.c.Status().Loading)
}

func TestSendApproved_CancelStopsBeforeNextItem(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	f := newFixture(t, Options{
		Sender: senderFunc(func(context.Context, models.Lead) ([]models.SendResult, error) {
			calls++
			cancel()
			return nil, nil
		}),
	})
	f.c.leads = []models.Lead{draftedLead("1", "Ann"), draftedLead("2", "Ben")}

	outcome, err := f.c.SendApproved(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, models.StatusSent, f.c.Leads("")[0].Status)
	assert.Equal(t, models.StatusDrafted, f.c.Leads("")[1].Status)
}

func TestSendApproved_NothingApproved(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	_, err := f.c.SendApproved(context.Background())
	assert.ErrorIs(t, err, ErrNothingApproved)
	assert.Equal(t, ErrNothingApproved.Error(), f.c.Status().ErrorMessage)
}

func TestCheckEngagement(t *testing.T) {
	days := 5
	f := newFixture(t, Options{
		SampleData: true,
		Monitor: monitorFunc(func(ctx context.Context, leads []models.Lead, settings models.Settings) (*models.EngagementReport, error) {
			assert.Len(t, leads, 3)
			assert.Equal(t, 4, settings.FollowUpDays)
			return &models.EngagementReport{
				Results: []models.EngagementResult{
					{LeadName: "marcus rodriguez", SignalType: models.SignalReply, DaysSinceContact: &days},
					{LeadName: "Priya Patel", SignalType: models.SignalOpen},
					{LeadName: "Nobody", SignalType: models.SignalLinkClick},
				},
				Summary:         "One reply",
				EngagementStats: models.EngagementStats{HotLeadsCount: 1, FollowUpsDue: 0, NotificationsSent: 1},
			}, nil
		}),
	})

	outcome, err := f.c.CheckEngagement(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Engagement check complete. 1 hot leads, 0 follow-ups due.", outcome.Message)

	marcus, err := f.c.Lead("s2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReplied, marcus.Status)
	assert.Equal(t, 5, marcus.DaysSinceContact)
	assert.Equal(t, "Engagement: reply", marcus.LastAction)

	priya, err := f.c.Lead("s3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDrafted, priya.Status, "drafted leads are not checked")

	view, err := f.c.Engagement("replied")
	require.NoError(t, err)
	assert.Equal(t, "One reply", view.Summary)
	assert.Equal(t, 1, view.Stats.HotLeadsCount)
	assert.Equal(t, []string{"s2:sent->replied"}, f.publisher.transitions())
}

func TestCheckEngagement_Errors(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.c.CheckEngagement(context.Background())
	assert.ErrorIs(t, err, ErrNothingSent)

	f = newFixture(t, Options{
		SampleData: true,
		Monitor: monitorFunc(func(context.Context, []models.Lead, models.Settings) (*models.EngagementReport, error) {
			return nil, &agent.AgentError{AgentID: "engage"}
		}),
	})
	_, err = f.c.CheckEngagement(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Failed to check engagement.", f.c.Status().ErrorMessage)
}

func TestBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := newFixture(t, Options{
		SampleData: true,
		Drafter: drafterFunc(func(context.Context, []models.Lead) (*models.DraftBatch, error) {
			close(started)
			<-release
			return &models.DraftBatch{}, nil
		}),
	})
	_, _, err := f.c.AddBulk("Jane Smith, Acme")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.c.GenerateDrafts(context.Background())
		done <- err
	}()
	<-started

	status := f.c.Status()
	assert.True(t, status.Loading)
	assert.Equal(t, "orch", status.ActiveAgent)
	assert.Equal(t, "Researching leads and generating outreach drafts...", status.StatusMessage)

	_, err = f.c.CheckEngagement(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, f.c.SetSampleData(false), ErrBusy)
	assert.Len(t, f.c.Leads(""), 5)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.c.Status().Loading)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	_, err := f.c.SetStatus(context.Background(), "s3", models.StatusClosed)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	lead, err := f.c.SetStatus(context.Background(), "s2", models.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, lead.Status)
	assert.Equal(t, "Status changed to Closed", lead.LastAction)
	assert.Equal(t, []string{"s2:sent->closed"}, f.publisher.transitions())

	_, err = f.c.SetStatus(context.Background(), "missing", models.StatusClosed)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestReviewActions(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	subject := "New subject"
	lead, err := f.c.EditDraft("s3", models.DraftEdit{SubjectLine: &subject})
	require.NoError(t, err)
	assert.Equal(t, subject, lead.SubjectLine)

	_, err = f.c.EditDraft("s1", models.DraftEdit{SubjectLine: &subject})
	assert.Error(t, err)

	lead, err = f.c.SetApproval("s3", true)
	require.NoError(t, err)
	assert.True(t, lead.Approved)

	review := f.c.Review()
	assert.Equal(t, 1, review.Total)
	assert.Equal(t, 1, review.ApprovedCount)

	assert.Equal(t, 1, f.c.SetAllApproval(false))
	assert.Equal(t, 0, f.c.Review().ApprovedCount)

	require.NoError(t, f.c.RemoveLead("s3"))
	assert.ErrorIs(t, f.c.RemoveLead("s3"), ErrLeadNotFound)
	assert.Equal(t, 0, f.c.Review().Total)
}

func TestDashboard_SampleData(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	d := f.c.Dashboard()
	assert.Equal(t, 5, d.Stats.TotalLeads)
	assert.Equal(t, 1, d.Stats.HotLeads)
	assert.Equal(t, 3, d.Stats.EmailsSent)
	assert.Equal(t, 1, d.Stats.Replied)
	assert.Equal(t, "33%", d.Stats.ResponseRate)
	assert.Len(t, d.Pipeline, 7)
	assert.Empty(t, d.StaleIDs)
}

func TestEngagement_SampleFallback(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	view, err := f.c.Engagement("")
	require.NoError(t, err)
	assert.Equal(t, "all", view.Filter)
	assert.Len(t, view.Results, 3)
	assert.Equal(t, sampleEngagementStats, view.Stats)

	view, err = f.c.Engagement("no_response")
	require.NoError(t, err)
	require.Len(t, view.Results, 1)
	assert.Equal(t, "Marcus Rodriguez", view.Results[0].LeadName)

	_, err = f.c.Engagement("cold")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestLeadDetail(t *testing.T) {
	f := newFixture(t, Options{SampleData: true})

	detail, err := f.c.LeadDetail("s3")
	require.NoError(t, err)
	assert.NotEmpty(t, detail.Tags)
	assert.NotEmpty(t, detail.Segments)

	again, err := f.c.LeadDetail("s3")
	require.NoError(t, err)
	assert.Equal(t, detail.Tags, again.Tags)
	assert.Equal(t, 1, f.c.tags.Clear(), "one summary is cached once")

	_, err = f.c.LeadDetail("nope")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t, Options{})

	s := models.DefaultSettings()
	s.FollowUpDays = 0
	_, err := f.c.UpdateSettings(s)
	assert.Error(t, err)
	assert.Equal(t, 4, f.c.Settings().FollowUpDays)

	s.FollowUpDays = 7
	updated, err := f.c.UpdateSettings(s)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.FollowUpDays)
}
