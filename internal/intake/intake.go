// Package intake turns operator input (a single form or pasted CSV-like text)
// into new lead records.
package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"outreach/internal/models"

	"github.com/google/uuid"
)

// Last-action labels for freshly added leads
const (
	ActionAddedToBatch = "Added to batch"
	ActionAddedViaBulk = "Added via bulk"
)

// DateLayout is the format of lastActionDate and timeline dates
const DateLayout = "2006-01-02"

// ErrNoValidLeads is returned when bulk text contains no qualifying line
var ErrNoValidLeads = errors.New("No valid leads found. Use format: Name, Company, CompanyURL, LinkedInURL, Email")

// ValidationError describes a missing or malformed form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewLead builds a lead from the single-add form. Name and email are required.
func NewLead(form models.LeadForm, now time.Time) (models.Lead, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)

	if name == "" {
		return models.Lead{}, &ValidationError{Field: "name", Message: "Lead name and email are required."}
	}
	if email == "" {
		return models.Lead{}, &ValidationError{Field: "email", Message: "Lead name and email are required."}
	}

	lead := newLead(now, name, strings.TrimSpace(form.Company), strings.TrimSpace(form.CompanyURL),
		strings.TrimSpace(form.LinkedInURL), email, models.ParseChannel(form.Channel), ActionAddedToBatch)
	return lead, nil
}

// ParseBulk parses one lead per line in the form
// "Name, Company, CompanyURL, LinkedInURL, Email[, Channel]".
// Lines without a non-empty name and company are skipped.
func ParseBulk(text string, now time.Time) ([]models.Lead, error) {
	var leads []models.Lead

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			continue
		}

		leads = append(leads, newLead(now, fields[0], fields[1], field(fields, 2), field(fields, 3),
			field(fields, 4), models.ParseChannel(field(fields, 5)), ActionAddedViaBulk))
	}

	if len(leads) == 0 {
		return nil, ErrNoValidLeads
	}
	return leads, nil
}

// AddedMessage is the status line shown after a single add
func AddedMessage(lead models.Lead) string {
	return fmt.Sprintf("Added %s to batch.", lead.Name)
}

// BulkMessage is the status line shown after a bulk parse
func BulkMessage(count int) string {
	return fmt.Sprintf("Parsed and added %d lead(s) from bulk input.", count)
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func newLead(now time.Time, name, company, companyURL, linkedInURL, email string, channel models.Channel, action string) models.Lead {
	date := now.Format(DateLayout)
	lead := models.Lead{
		ID:          uuid.NewString(),
		Name:        name,
		Company:     company,
		CompanyURL:  companyURL,
		LinkedInURL: linkedInURL,
		Email:       email,
		Channel:     channel,
		Status:      models.StatusNew,
		Timeline:    []models.TimelineEvent{},
	}
	lead.Touch(uuid.NewString(), action, date, "")
	return lead
}
