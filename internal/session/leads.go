package session

import (
	"context"
	"fmt"

	"outreach/internal/intake"
	"outreach/internal/models"
	"outreach/internal/outreach"
	"outreach/internal/research"
	"outreach/internal/stats"
)

// LeadDetail is a lead with its research tags and the highlighted summary
type LeadDetail struct {
	Lead     models.Lead        `json:"lead"`
	Tags     []research.Tag     `json:"tags"`
	Segments []research.Segment `json:"segments"`
}

// Leads returns the lead collection, optionally filtered by status
func (c *Controller) Leads(status models.Status) []models.Lead {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := stats.ByStatus(c.leads, status)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// Lead returns one lead by id
func (c *Controller) Lead(id string) (models.Lead, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := indexOf(c.leads, id)
	if idx < 0 {
		return models.Lead{}, ErrLeadNotFound
	}
	return c.leads[idx].Clone(), nil
}

// LeadDetail returns a lead with research tags extracted from its summary
func (c *Controller) LeadDetail(id string) (LeadDetail, error) {
	lead, err := c.Lead(id)
	if err != nil {
		return LeadDetail{}, err
	}

	tags := c.Tags(lead.ResearchSummary)
	return LeadDetail{
		Lead:     lead,
		Tags:     tags,
		Segments: research.Highlight(lead.ResearchSummary, tags),
	}, nil
}

// Tags extracts research tags, memoised per summary text
func (c *Controller) Tags(text string) []research.Tag {
	if text == "" {
		return []research.Tag{}
	}
	return c.tags.GetOrSet(text, c.tagTTL, func() []research.Tag {
		return research.ExtractTags(text)
	})
}

// update applies fn to one lead under the lock
func (c *Controller) update(id string, fn func(models.Lead) (models.Lead, *outreach.Transition, error)) (models.Lead, *outreach.Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOf(c.leads, id)
	if idx < 0 {
		return models.Lead{}, nil, ErrLeadNotFound
	}
	updated, transition, err := fn(c.leads[idx])
	if err != nil {
		return models.Lead{}, nil, err
	}
	c.leads[idx] = updated
	return updated.Clone(), transition, nil
}

// EditDraft changes the draft text of a lead under review
func (c *Controller) EditDraft(id string, edit models.DraftEdit) (models.Lead, error) {
	lead, _, err := c.update(id, func(l models.Lead) (models.Lead, *outreach.Transition, error) {
		out, err := outreach.ApplyEdit(l, edit, c.now())
		return out, nil, err
	})
	return lead, err
}

// SetApproval approves or un-approves one drafted lead
func (c *Controller) SetApproval(id string, approved bool) (models.Lead, error) {
	lead, _, err := c.update(id, func(l models.Lead) (models.Lead, *outreach.Transition, error) {
		out, err := outreach.ApplyApproval(l, approved, c.now())
		return out, nil, err
	})
	return lead, err
}

// SetAllApproval applies approval to every drafted lead and returns how many there are
func (c *Controller) SetAllApproval(approved bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	count := 0
	for i, lead := range c.leads {
		if lead.Status != models.StatusDrafted {
			continue
		}
		if out, err := outreach.ApplyApproval(lead, approved, now); err == nil {
			c.leads[i] = out
			count++
		}
	}
	return count
}

// SetStatus moves a lead manually, subject to the funnel guard
func (c *Controller) SetStatus(ctx context.Context, id string, to models.Status) (models.Lead, error) {
	lead, transition, err := c.update(id, func(l models.Lead) (models.Lead, *outreach.Transition, error) {
		return outreach.ApplyStatus(l, to, c.now())
	})
	if err != nil {
		return models.Lead{}, err
	}
	if transition != nil {
		c.observe(ctx, []outreach.Transition{*transition})
	}
	return lead, nil
}

// RemoveLead deletes a lead from the collection
func (c *Controller) RemoveLead(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOf(c.leads, id)
	if idx < 0 {
		return ErrLeadNotFound
	}
	c.leads = append(c.leads[:idx], c.leads[idx+1:]...)
	return nil
}

// Batch returns the leads waiting for draft generation
func (c *Controller) Batch() []models.Lead {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.batch)
}

// AddLead validates a single lead and appends it to the batch
func (c *Controller) AddLead(form models.LeadForm) (models.Lead, string, error) {
	lead, err := intake.NewLead(form, c.now())
	if err != nil {
		return models.Lead{}, "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = append(c.batch, lead)
	return lead.Clone(), intake.AddedMessage(lead), nil
}

// AddBulk parses comma-separated lines and appends every valid lead to the batch
func (c *Controller) AddBulk(text string) ([]models.Lead, string, error) {
	leads, err := intake.ParseBulk(text, c.now())
	if err != nil {
		return nil, "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = append(c.batch, leads...)
	return cloneAll(leads), intake.BulkMessage(len(leads)), nil
}

// RemoveBatchLead drops one lead from the batch
func (c *Controller) RemoveBatchLead(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOf(c.batch, id)
	if idx < 0 {
		return fmt.Errorf("batch %w", ErrLeadNotFound)
	}
	c.batch = append(c.batch[:idx], c.batch[idx+1:]...)
	return nil
}

// ClearBatch empties the batch
func (c *Controller) ClearBatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batch = []models.Lead{}
}
