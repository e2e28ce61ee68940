package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"outreach/internal/agent"
	"outreach/internal/analytics"
	"outreach/internal/auth"
	"outreach/internal/models"
	"outreach/internal/research"
	"outreach/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgents struct {
	drafts     func(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error)
	send       func(ctx context.Context, lead models.Lead) ([]models.SendResult, error)
	engagement func(ctx context.Context, leads []models.Lead, s models.Settings) (*models.EngagementReport, error)
}

func (f *fakeAgents) GenerateDrafts(ctx context.Context, leads []models.Lead) (*models.DraftBatch, error) {
	return f.drafts(ctx, leads)
}

func (f *fakeAgents) SendMessage(ctx context.Context, lead models.Lead) ([]models.SendResult, error) {
	return f.send(ctx, lead)
}

func (f *fakeAgents) CheckEngagement(ctx context.Context, leads []models.Lead, s models.Settings) (*models.EngagementReport, error) {
	return f.engagement(ctx, leads, s)
}

func draftEveryLead(_ context.Context, leads []models.Lead) (*models.DraftBatch, error) {
	score := 8.0
	batch := &models.DraftBatch{AverageQualityScore: &score}
	for _, lead := range leads {
		batch.Leads = append(batch.Leads, models.DraftResult{
			LeadID:          lead.ID,
			LeadName:        lead.Name,
			ResearchSummary: "CTO at a startup that recently raised Series A.",
			SubjectLine:     "Quick idea for " + lead.Company,
			EmailBody:       "Hi " + lead.Name,
			QualityScore:    score,
		})
	}
	return batch, nil
}

func newController(t *testing.T, agents *fakeAgents) *session.Controller {
	t.Helper()
	if agents.drafts == nil {
		agents.drafts = draftEveryLead
	}
	if agents.send == nil {
		agents.send = func(context.Context, models.Lead) ([]models.SendResult, error) { return nil, nil }
	}
	if agents.engagement == nil {
		agents.engagement = func(context.Context, []models.Lead, models.Settings) (*models.EngagementReport, error) {
			return &models.EngagementReport{}, nil
		}
	}
	return session.New(session.Options{
		Drafter:  agents,
		Sender:   agents,
		Monitor:  agents,
		AgentIDs: agent.IDs{Orchestrator: "orch", Delivery: "deliver", Engagement: "engage"},
		Settings: models.DefaultSettings(),
		Logger:   zerolog.Nop(),
	})
}

// serve runs handler against a request and returns the recorder
func serve(t *testing.T, handler echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, handler(c))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const janeJSON = `{"name":"Jane Smith","company":"Acme","email":"jane@acme.com"}`

func TestAddLeadHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{"valid lead", janeJSON, http.StatusCreated, ""},
		{"missing email", `{"name":"Jane Smith"}`, http.StatusBadRequest, "Lead name and email are required."},
		{"malformed body", `{"name":`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newController(t, &fakeAgents{})
			rec := serve(t, AddLeadHandler(controller), http.MethodPost, "/api/batch", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			response := decode[models.APIResponse](t, rec)
			assert.Equal(t, tt.expectedError, response.Error)
			if tt.expectedError == "" {
				assert.Len(t, controller.Batch(), 1)
			}
		})
	}
}

func TestAddBulkHandler(t *testing.T) {
	controller := newController(t, &fakeAgents{})
	body := `{"text":"Jane Smith, Acme, https://acme.com, , jane@acme.com\nBob, Globex, , , bob@globex.com"}`

	rec := serve(t, AddBulkHandler(controller), http.MethodPost, "/api/batch/bulk", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, controller.Batch(), 2)

	rec = serve(t, AddBulkHandler(controller), http.MethodPost, "/api/batch/bulk", `{"text":"no commas here"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCampaignFlow(t *testing.T) {
	var sent []string
	agents := &fakeAgents{
		send: func(_ context.Context, lead models.Lead) ([]models.SendResult, error) {
			sent = append(sent, lead.Email)
			return nil, nil
		},
	}
	controller := newController(t, agents)

	rec := serve(t, GenerateDraftsHandler(controller), http.MethodPost, "/api/drafts", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, session.ErrEmptyBatch.Error(), decode[models.DraftsResponse](t, rec).Error)

	serve(t, AddLeadHandler(controller), http.MethodPost, "/api/batch", janeJSON)

	rec = serve(t, GenerateDraftsHandler(controller), http.MethodPost, "/api/drafts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	drafts := decode[models.DraftsResponse](t, rec)
	assert.True(t, drafts.Success)
	require.Len(t, drafts.Drafted, 1)
	assert.Equal(t, models.StatusDrafted, drafts.Drafted[0].Status)
	assert.Empty(t, controller.Batch())

	rec = serve(t, SendHandler(controller), http.MethodPost, "/api/send", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, ApproveAllHandler(controller), http.MethodPut, "/api/review/approval", `{"approved":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, ReviewHandler(controller), http.MethodGet, "/api/review", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, controller.Review().ApprovedCount)

	rec = serve(t, SendHandler(controller), http.MethodPost, "/api/send", "")
	require.Equal(t, http.StatusOK, rec.Code)
	response := decode[models.SendResponse](t, rec)
	assert.True(t, response.Success)
	assert.Equal(t, 1, response.Succeeded)
	assert.Equal(t, 0, response.Failed)
	assert.Equal(t, []string{"jane@acme.com"}, sent)

	rec = serve(t, SendResultsHandler(controller), http.MethodGet, "/api/send/results", "")
	results := decode[[]models.SendResult](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, models.SendSuccess, results[0].Status)

	lead := controller.Leads("")[0]
	assert.Equal(t, models.StatusSent, lead.Status)
}

func TestGenerateDraftsHandler_AgentFailures(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"agent reported error", &agent.AgentError{AgentID: "orch", Message: "quota exhausted"}, http.StatusBadGateway, "quota exhausted"},
		{"agent rejected without message", &agent.AgentError{AgentID: "orch"}, http.StatusBadGateway, "Failed to generate drafts. Please try again."},
		{"timeout", agent.ErrTimeout, http.StatusGatewayTimeout, "An error occurred while generating drafts. The agent timed out."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newController(t, &fakeAgents{
				drafts: func(context.Context, []models.Lead) (*models.DraftBatch, error) { return nil, tt.err },
			})
			serve(t, AddLeadHandler(controller), http.MethodPost, "/api/batch", janeJSON)

			rec := serve(t, GenerateDraftsHandler(controller), http.MethodPost, "/api/drafts", "")
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedError, decode[models.DraftsResponse](t, rec).Error)
			assert.Len(t, controller.Batch(), 1)
		})
	}
}

func TestLeadHandlers_NotFound(t *testing.T) {
	controller := newController(t, &fakeAgents{})

	rec := serve(t, GetLeadHandler(controller), http.MethodGet, "/api/leads/nope", "", "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, DeleteLeadHandler(controller), http.MethodDelete, "/api/leads/nope", "", "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLeadsHandler_StatusFilter(t *testing.T) {
	controller := session.New(session.Options{SampleData: true, Logger: zerolog.Nop()})

	rec := serve(t, ListLeadsHandler(controller), http.MethodGet, "/api/leads?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, ListLeadsHandler(controller), http.MethodGet, "/api/leads", "")
	assert.Len(t, decode[[]models.Lead](t, rec), 5)
}

func TestStatusHandler_GuardsTransitions(t *testing.T) {
	controller := session.New(session.Options{SampleData: true, Logger: zerolog.Nop()})
	var drafted models.Lead
	for _, lead := range controller.Leads("") {
		if lead.Status == models.StatusDrafted {
			drafted = lead
			break
		}
	}
	require.NotEmpty(t, drafted.ID)

	rec := serve(t, StatusHandler(controller), http.MethodPut, "/api/leads/x/status", `{"status":"closed"}`, "id", drafted.ID)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, StatusHandler(controller), http.MethodPut, "/api/leads/x/status", `{"status":"sent"}`, "id", drafted.ID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEngagementHandler(t *testing.T) {
	controller := session.New(session.Options{SampleData: true, Logger: zerolog.Nop()})

	rec := serve(t, EngagementHandler(controller), http.MethodGet, "/api/engagement?filter=cold", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, EngagementHandler(controller), http.MethodGet, "/api/engagement?filter=all", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	view := decode[models.EngagementView](t, rec)
	assert.Equal(t, "all", view.Filter)
}

func TestCheckEngagementHandler_NothingSent(t *testing.T) {
	controller := newController(t, &fakeAgents{})

	rec := serve(t, CheckEngagementHandler(controller), http.MethodPost, "/api/engagement/check", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, session.ErrNothingSent.Error(), decode[models.APIResponse](t, rec).Error)
}

func TestSettingsHandlers(t *testing.T) {
	controller := newController(t, &fakeAgents{})

	rec := serve(t, GetSettingsHandler(controller), http.MethodGet, "/api/settings", "")
	assert.Equal(t, models.DefaultSettings(), decode[models.Settings](t, rec))

	rec = serve(t, UpdateSettingsHandler(controller), http.MethodPut, "/api/settings",
		`{"follow_up_days":0,"brand_voice":"founder"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, UpdateSettingsHandler(controller), http.MethodPut, "/api/settings",
		`{"slack_channel":"#wins","follow_up_days":7,"brand_voice":"professional"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, controller.Settings().FollowUpDays)
	assert.Equal(t, models.BrandVoiceProfessional, controller.Settings().BrandVoice)
}

func TestSenderHandlers(t *testing.T) {
	controller := newController(t, &fakeAgents{})

	rec := serve(t, AddSenderHandler(controller), http.MethodPost, "/api/senders",
		`{"email":"alex@zaps.io","display_name":"Alex","daily_limit":50,"health_score":90,"active":true,"provider":"google"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, controller.Senders().List(), 1)
	id := controller.Senders().List()[0].ID

	rec = serve(t, UpdateSenderHandler(controller), http.MethodPut, "/api/senders/missing",
		`{"email":"alex@zaps.io","daily_limit":50,"health_score":90,"provider":"google"}`, "id", "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, DeleteSenderHandler(controller), http.MethodDelete, "/api/senders/"+id, "", "id", id)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, controller.Senders().List())
}

func TestSampleDataHandler(t *testing.T) {
	controller := newController(t, &fakeAgents{})

	rec := serve(t, SampleDataHandler(controller), http.MethodPut, "/api/sample-data", `{"enabled":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, controller.SampleData())
	assert.Len(t, controller.Leads(""), 5)

	rec = serve(t, SampleDataHandler(controller), http.MethodPut, "/api/sample-data", `{"enabled":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, controller.Leads(""))
}

func TestDashboardHandlers(t *testing.T) {
	controller := session.New(session.Options{SampleData: true, Logger: zerolog.Nop()})

	rec := serve(t, DashboardHandler(controller), http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode[session.Dashboard](t, rec)
	assert.Equal(t, 5, dashboard.Stats.TotalLeads)

	rec = serve(t, SessionStatusHandler(controller), http.MethodGet, "/api/status", "")
	status := decode[models.SessionStatus](t, rec)
	assert.False(t, status.Loading)
	assert.True(t, status.SampleData)
}

func TestTagsHandler(t *testing.T) {
	controller := newController(t, &fakeAgents{})

	rec := serve(t, TagsHandler(controller), http.MethodPost, "/api/research/tags", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, TagsHandler(controller), http.MethodPost, "/api/research/tags",
		`{"text":"CTO at CloudNine Solutions, a cloud infrastructure company."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	response := decode[TagsResponse](t, rec)
	require.NotEmpty(t, response.Tags)
	assert.Equal(t, "CTO", response.Tags[0].Text)
	require.Len(t, response.ByCategory[research.CategoryRole], 1)
	assert.Equal(t, "CTO", response.ByCategory[research.CategoryRole][0].Text)
	assert.True(t, response.Segments[0].Highlight)
}

type staticStore struct{ totals map[string]int }

func (s staticStore) Insert(context.Context, models.ActivityEvent) error { return nil }

func (s staticStore) Totals(context.Context, time.Time, time.Time) (map[string]int, error) {
	return s.totals, nil
}

func (s staticStore) Recent(_ context.Context, limit int) ([]models.ActivityEvent, error) {
	events := []models.ActivityEvent{{ID: 2, EventType: analytics.EventEmailSent, Count: 1}, {ID: 1, EventType: analytics.EventAgentCall, Count: 1}}
	if limit < len(events) {
		events = events[:limit]
	}
	return events, nil
}

func TestActivityHandler(t *testing.T) {
	service, err := analytics.NewService(staticStore{totals: map[string]int{analytics.EventEmailSent: 4}}, zerolog.Nop())
	require.NoError(t, err)

	tests := []struct {
		name           string
		service        *analytics.Service
		target         string
		expectedStatus int
		expectedRecent int
	}{
		{"not configured", nil, "/api/activity", http.StatusServiceUnavailable, 0},
		{"bad period", service, "/api/activity?period=forever", http.StatusBadRequest, 0},
		{"bad recent", service, "/api/activity?recent=many", http.StatusBadRequest, 0},
		{"recent over cap", service, "/api/activity?recent=201", http.StatusBadRequest, 0},
		{"default period", service, "/api/activity", http.StatusOK, 0},
		{"last 7 days", service, "/api/activity?period=last_7_days", http.StatusOK, 0},
		{"with recent events", service, "/api/activity?recent=1", http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, ActivityHandler(tt.service), http.MethodGet, tt.target, "")
			assert.Equal(t, tt.expectedStatus, rec.Code)

			response := decode[models.ActivityResponse](t, rec)
			if tt.expectedStatus == http.StatusOK {
				require.NotNil(t, response.Summary)
				assert.Equal(t, 4, response.Summary.EmailsSent)
				assert.Len(t, response.Recent, tt.expectedRecent)
			} else {
				assert.NotEmpty(t, response.Error)
			}
		})
	}
}

func TestAdminHandlers(t *testing.T) {
	manager := auth.NewManager("operator", "s3cret")

	rec := serve(t, AdminLoginHandler(manager), http.MethodPost, "/api/admin/login", `{"username":"operator","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, AdminLoginHandler(manager), http.MethodPost, "/api/admin/login", `{"username":"operator","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[models.AdminAuthResponse](t, rec).Token
	require.NotEmpty(t, token)
	assert.True(t, manager.ValidateToken(token))

	serve(t, AdminLogoutHandler(manager), http.MethodPost, "/api/admin/logout?token="+token, "")
	assert.False(t, manager.ValidateToken(token))
}
