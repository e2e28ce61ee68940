// Package stats computes the dashboard projections of a lead collection.
// Everything here is a pure function of its inputs.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"outreach/internal/models"
)

const dateLayout = "2006-01-02"

// Summary holds the headline counters of the dashboard
type Summary struct {
	TotalLeads   int    `json:"total_leads"`
	HotLeads     int    `json:"hot_leads"`
	EmailsSent   int    `json:"emails_sent"`
	Replied      int    `json:"replied"`
	ResponseRate string `json:"response_rate" example:"33%"`
}

// Column is one status bucket of the pipeline board
type Column struct {
	Status models.Status `json:"status"`
	Title  string        `json:"title"`
	Count  int           `json:"count"`
	Leads  []models.Lead `json:"leads"`
}

// Compute returns the headline counters for leads
func Compute(leads []models.Lead) Summary {
	s := Summary{TotalLeads: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case models.StatusHotLead:
			s.HotLeads++
		case models.StatusReplied:
			s.Replied++
		}
		if lead.Status.IsOutbound() {
			s.EmailsSent++
		}
	}
	s.ResponseRate = ResponseRate(s.Replied, s.EmailsSent)
	return s
}

// ResponseRate formats replied/sent as a whole percentage, "0%" when nothing was sent
func ResponseRate(replied, sent int) string {
	if sent <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(replied)/float64(sent)*100)))
}

// Pipeline buckets leads into one column per status, in pipeline order
func Pipeline(leads []models.Lead) []Column {
	columns := make([]Column, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		column := Column{Status: status, Title: status.Label(), Leads: []models.Lead{}}
		for _, lead := range leads {
			if lead.Status == status {
				column.Leads = append(column.Leads, lead)
			}
		}
		column.Count = len(column.Leads)
		columns = append(columns, column)
	}
	return columns
}

// IsStale reports whether a lead waiting in researched, drafted or sent has had
// no action for at least followUpDays. Leads with an unreadable date are never stale.
func IsStale(lead models.Lead, now time.Time, followUpDays int) bool {
	switch lead.Status {
	case models.StatusResearched, models.StatusDrafted, models.StatusSent:
	default:
		return false
	}

	last, err := time.Parse(dateLayout, lead.LastActionDate)
	if err != nil {
		return false
	}

	return DaysBetween(last, now) >= followUpDays
}

// StaleIDs returns the ids of stale leads in collection order
func StaleIDs(leads []models.Lead, now time.Time, followUpDays int) []string {
	ids := []string{}
	for _, lead := range leads {
		if IsStale(lead, now, followUpDays) {
			ids = append(ids, lead.ID)
		}
	}
	return ids
}

// DaysBetween counts whole calendar days from one date to another
func DaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// Engagement filters
const (
	FilterAll        = "all"
	FilterHot        = "hot"
	FilterNoResponse = "no_response"
	FilterReplied    = "replied"
)

// Filters lists the accepted engagement filters
var Filters = []string{FilterAll, FilterHot, FilterNoResponse, FilterReplied}

// ValidFilter reports whether name is a known engagement filter
func ValidFilter(name string) bool {
	for _, f := range Filters {
		if f == name {
			return true
		}
	}
	return false
}

// FilterEngagement returns the results matching filter. Unknown filters behave like "all".
func FilterEngagement(results []models.EngagementResult, filter string) []models.EngagementResult {
	out := []models.EngagementResult{}
	for _, r := range results {
		if matchesFilter(r, filter) {
			out = append(out, r)
		}
	}
	return out
}

func matchesFilter(r models.EngagementResult, filter string) bool {
	switch strings.ToLower(filter) {
	case FilterHot:
		return r.SignalType == models.SignalReply || r.SignalType == models.SignalLinkClick
	case FilterNoResponse:
		return r.SignalType == models.SignalNoResponse || r.Status == models.SignalNoResponse
	case FilterReplied:
		return r.SignalType == models.SignalReply
	default:
		return true
	}
}

// EngagementFromLeads derives engagement rows from leads already in an
// engageable status, for showing sample data before any check has run.
func EngagementFromLeads(leads []models.Lead) []models.EngagementResult {
	out := []models.EngagementResult{}
	for _, lead := range leads {
		if !lead.Status.IsEngageable() {
			continue
		}
		signal := lead.EngagementSignal
		if signal == "" {
			signal = models.SignalNoResponse
		}
		days := lead.DaysSinceContact
		out = append(out, models.EngagementResult{
			LeadID:           lead.ID,
			LeadName:         lead.Name,
			Company:          lead.Company,
			Status:           string(lead.Status),
			SignalType:       signal,
			DaysSinceContact: &days,
		})
	}
	return out
}

// ReviewQueue holds the drafted leads awaiting approval
type ReviewQueue struct {
	Leads         []models.Lead `json:"leads"`
	Total         int           `json:"total"`
	ApprovedCount int           `json:"approved_count"`
}

// Review returns the drafted leads and how many of them are approved
func Review(leads []models.Lead) ReviewQueue {
	q := ReviewQueue{Leads: []models.Lead{}}
	for _, lead := range leads {
		if lead.Status != models.StatusDrafted {
			continue
		}
		q.Leads = append(q.Leads, lead)
		if lead.Approved {
			q.ApprovedCount++
		}
	}
	q.Total = len(q.Leads)
	return q
}

// ByStatus returns leads with the given status; an empty status returns all
func ByStatus(leads []models.Lead, status models.Status) []models.Lead {
	out := []models.Lead{}
	for _, lead := range leads {
		if status == "" || lead.Status == status {
			out = append(out, lead)
		}
	}
	return out
}
