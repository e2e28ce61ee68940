package outreach

import (
	"fmt"
	"time"

	"outreach/internal/models"
	"outreach/internal/utils"
)

// ApplyDrafts turns batch leads into drafted leads using the orchestrator
// result. Results are matched by echoed lead id, then by position, then by
// case-insensitive name. Leads without a match are still drafted, with empty
// draft fields.
func ApplyDrafts(batch []models.Lead, result *models.DraftBatch, now time.Time) ([]models.Lead, []Transition) {
	var drafts []models.DraftResult
	if result != nil {
		drafts = result.Leads
	}

	leads := make([]models.Lead, 0, len(batch))
	transitions := []Transition{}

	known := make(map[string]bool, len(batch))
	for _, lead := range batch {
		known[lead.ID] = true
	}

	for idx, lead := range batch {
		out := lead.Clone()

		detail := "no draft returned"
		if match := matchDraft(drafts, known, idx, out); match != nil {
			fillDraft(&out, *match)
			detail = out.SubjectLine
		}

		if t, ok := setStatus(&out, models.StatusDrafted, "draft"); ok {
			transitions = append(transitions, t)
		}
		touch(&out, ActionDraftGenerated, now, detail)
		leads = append(leads, out)
	}

	return leads, transitions
}

// matchDraft finds the draft for the lead at idx: by echoed id, then by
// position, then by name. An id that names no lead in the batch counts as absent.
func matchDraft(drafts []models.DraftResult, known map[string]bool, idx int, lead models.Lead) *models.DraftResult {
	anonymous := func(d models.DraftResult) bool {
		return d.LeadID == "" || !known[d.LeadID]
	}

	if lead.ID != "" {
		for i := range drafts {
			if drafts[i].LeadID == lead.ID {
				return &drafts[i]
			}
		}
	}

	if idx < len(drafts) && (anonymous(drafts[idx]) || drafts[idx].LeadID == lead.ID) {
		return &drafts[idx]
	}

	name := utils.NormalizeName(lead.Name)
	for i := range drafts {
		if anonymous(drafts[i]) && name != "" && utils.NormalizeName(drafts[i].LeadName) == name {
			return &drafts[i]
		}
	}
	return nil
}

func fillDraft(lead *models.Lead, d models.DraftResult) {
	lead.ResearchSummary = utils.StripHTML(d.ResearchSummary)
	lead.SubjectLine = utils.StripHTML(d.SubjectLine)
	lead.EmailBody = utils.StripHTML(d.EmailBody)
	lead.LinkedInMessage = utils.StripHTML(d.LinkedInMessage)
	lead.FollowUp1 = utils.StripHTML(d.FollowUp1)
	lead.FollowUp2 = utils.StripHTML(d.FollowUp2)
	lead.FollowUp3 = utils.StripHTML(d.FollowUp3)
	lead.QualityScore = ClampScore(d.QualityScore)
	lead.Flags = utils.StripHTML(d.Flags)
	lead.Approved = false
}

// DraftsMessage is the status line shown after draft generation
func DraftsMessage(result *models.DraftBatch) string {
	count := 0
	var avg *float64
	if result != nil {
		count = len(result.Leads)
		avg = result.AverageQualityScore
	}
	return fmt.Sprintf("Successfully generated drafts for %d lead(s). Average quality: %s.", count, FormatScore(avg))
}

// ApplyEdit updates the draft fields present in edit
func ApplyEdit(lead models.Lead, edit models.DraftEdit, now time.Time) (models.Lead, error) {
	if lead.Status != models.StatusDrafted {
		return lead, ErrNotDrafted
	}

	out := lead.Clone()
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&out.SubjectLine, edit.SubjectLine)
	set(&out.EmailBody, edit.EmailBody)
	set(&out.LinkedInMessage, edit.LinkedInMessage)
	set(&out.FollowUp1, edit.FollowUp1)
	set(&out.FollowUp2, edit.FollowUp2)
	set(&out.FollowUp3, edit.FollowUp3)

	touch(&out, ActionDraftEdited, now, "")
	return out, nil
}

// ApplyApproval marks a drafted lead as approved or not approved for sending
func ApplyApproval(lead models.Lead, approved bool, now time.Time) (models.Lead, error) {
	if lead.Status != models.StatusDrafted {
		return lead, ErrNotDrafted
	}
	if lead.Approved == approved {
		return lead, nil
	}

	out := lead.Clone()
	out.Approved = approved
	action := ActionApproved
	if !approved {
		action = ActionUnapproved
	}
	touch(&out, action, now, "")
	return out, nil
}
