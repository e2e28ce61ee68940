package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"outreach/internal/models"
)

// DraftLead is the per-lead payload sent to the orchestrator
type DraftLead struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	CompanyURL  string `json:"company_url"`
	LinkedInURL string `json:"linkedin_url"`
	Email       string `json:"email"`
	ID          string `json:"id,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

// EngagementLead is the per-lead payload sent to the engagement monitor
type EngagementLead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	ID      string `json:"id,omitempty"`
}

// PromptCodec renders typed requests into agent instructions and decodes
// agent results back into typed values.
type PromptCodec struct{}

// DraftPrompt builds the research and draft instruction for a batch
func (PromptCodec) DraftPrompt(leads []models.Lead) (string, error) {
	payload := make([]DraftLead, 0, len(leads))
	for _, l := range leads {
		payload = append(payload, DraftLead{
			ID:          l.ID,
			Name:        l.Name,
			Company:     l.Company,
			CompanyURL:  l.CompanyURL,
			LinkedInURL: l.LinkedInURL,
			Email:       l.Email,
			Channel:     string(l.Channel),
		})
	}

	data, err := marshal(payload)
	if err != nil {
		return "", err
	}
	return "Research and draft outreach emails for the following leads: " + data, nil
}

// SendPrompt builds the delivery instruction for one lead
func (PromptCodec) SendPrompt(lead models.Lead) string {
	if lead.Channel == models.ChannelLinkedIn {
		message := lead.LinkedInMessage
		if message == "" {
			message = lead.EmailBody
		}
		return fmt.Sprintf("Send this LinkedIn message - To: %s, Message: %s", lead.LinkedInURL, message)
	}

	subject := lead.SubjectLine
	if subject == "" {
		subject = "Outreach"
	}
	return fmt.Sprintf("Send this email - To: %s, Subject: %s, Body: %s", lead.Email, subject, lead.EmailBody)
}

// EngagementPrompt builds the engagement check instruction
func (PromptCodec) EngagementPrompt(leads []models.Lead, settings models.Settings) (string, error) {
	payload := make([]EngagementLead, 0, len(leads))
	for _, l := range leads {
		payload = append(payload, EngagementLead{ID: l.ID, Name: l.Name, Email: l.Email, Company: l.Company})
	}

	data, err := marshal(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Check Gmail for engagement signals from our outreach leads. "+
		"Look for replies, link clicks, and flag any leads with no response after %d days. "+
		"Send Slack notifications for high-signal events to %s. Here are the leads to check: %s",
		settings.FollowUpDays, settings.SlackChannel, data), nil
}

// Decode unpacks an agent result into v. The result may be a JSON value or a
// string holding JSON, optionally wrapped in a markdown code fence.
func (PromptCodec) Decode(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("failed to decode result string: %w", err)
		}
		text = stripFence(text)
		if text == "" {
			return nil
		}
		raw = json.RawMessage(text)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

// marshal encodes like JSON.stringify: no HTML escaping, no trailing newline
func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
