package session

import (
	"outreach/internal/models"
	"outreach/internal/stats"
)

// Dashboard is the headline view: counters, pipeline board and stale leads
type Dashboard struct {
	Stats    stats.Summary  `json:"stats"`
	Pipeline []stats.Column `json:"pipeline"`
	StaleIDs []string       `json:"stale_ids"`
}

// Dashboard computes the dashboard from the current leads
func (c *Controller) Dashboard() Dashboard {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Dashboard{
		Stats:    stats.Compute(c.leads),
		Pipeline: stats.Pipeline(cloneAll(c.leads)),
		StaleIDs: stats.StaleIDs(c.leads, c.now(), c.settings.FollowUpDays),
	}
}

// Review returns the drafted leads awaiting approval
func (c *Controller) Review() stats.ReviewQueue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stats.Review(cloneAll(c.leads))
}

// Engagement returns the last engagement results filtered for the tracker.
// Before any check has run in sample-data mode the rows come from the leads.
func (c *Controller) Engagement(filter string) (models.EngagementView, error) {
	if filter == "" {
		filter = stats.FilterAll
	}
	if !stats.ValidFilter(filter) {
		return models.EngagementView{}, ErrUnknownFilter
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	view := models.EngagementView{Filter: filter, Results: []models.EngagementResult{}}
	switch {
	case c.engagement != nil && len(c.engagement.Results) > 0:
		view.Results = stats.FilterEngagement(c.engagement.Results, filter)
		view.Summary = c.engagement.Summary
		view.Stats = c.engagement.EngagementStats
	case c.sampleData:
		view.Results = stats.FilterEngagement(stats.EngagementFromLeads(c.leads), filter)
		view.Stats = sampleEngagementStats
	case c.engagement != nil:
		view.Summary = c.engagement.Summary
		view.Stats = c.engagement.EngagementStats
	}
	return view, nil
}
