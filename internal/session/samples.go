package session

import (
	"outreach/internal/models"
)

// SampleLeads returns the five demo leads shown in sample-data mode
func SampleLeads() []models.Lead {
	leads := []models.Lead{
		{
			ID: "s1", Name: "Sarah Chen", Company: "TechFlow Inc", CompanyURL: "https://techflow.io",
			LinkedInURL: "https://linkedin.com/in/sarachen", Email: "sarah@techflow.io",
			Status: models.StatusHotLead, LastAction: "Replied to follow-up", LastActionDate: "2026-02-19",
			ResearchSummary: "VP of Engineering at TechFlow, a Series B SaaS startup. Recently posted about scaling challenges.",
			SubjectLine:     "Scaling your engineering org, Sarah?",
			EmailBody:       "Hi Sarah,\n\nI noticed your recent post about the challenges of scaling an engineering team from 20 to 50. At Zaps, we help teams like yours automate repetitive workflows so your engineers can focus on what matters.\n\nWould love to share how we helped a similar team save 15 hours per week.\n\nBest,\nAlex",
			FollowUp1:       "Quick follow-up on my previous note about engineering efficiency.",
			FollowUp2:       "Case study: How DataPipe saved 200 hours/month with workflow automation.",
			FollowUp3:       "Last check-in - would a 15-min demo be helpful?",
			QualityScore:    92, Flags: "High engagement", Approved: true,
			EngagementSignal: models.SignalReply, DaysSinceContact: 1,
		},
		{
			ID: "s2", Name: "Marcus Rodriguez", Company: "GrowthLab", CompanyURL: "https://growthlab.co",
			LinkedInURL: "https://linkedin.com/in/marcusr", Email: "marcus@growthlab.co",
			Status: models.StatusSent, LastAction: "Initial email sent", LastActionDate: "2026-02-17",
			ResearchSummary: "Co-founder at GrowthLab, a growth marketing agency. Looking for automation tools.",
			SubjectLine:     "Automate your client reporting, Marcus?",
			EmailBody:       "Hi Marcus,\n\nAs a growth marketing agency founder, I imagine client reporting takes up a huge chunk of your week. Zaps can automate your cross-platform reporting pipeline.\n\nInterested in seeing how?\n\nBest,\nAlex",
			FollowUp1:       "Following up on automating your reporting workflows.",
			FollowUp2:       "ROI Calculator: See how much time you could save.",
			FollowUp3:       "Final nudge - happy to do a quick walkthrough.",
			QualityScore:    78, Approved: true,
			EngagementSignal: models.SignalNoResponse, DaysSinceContact: 3,
		},
		{
			ID: "s3", Name: "Priya Patel", Company: "CloudNine Solutions", CompanyURL: "https://cloudnine.dev",
			LinkedInURL: "https://linkedin.com/in/priyap", Email: "priya@cloudnine.dev",
			Status: models.StatusDrafted, LastAction: "Draft generated", LastActionDate: "2026-02-18",
			ResearchSummary: "CTO at CloudNine Solutions, a cloud infrastructure company. Recently raised Series A.",
			SubjectLine:     "Post-Series A scaling at CloudNine?",
			EmailBody:       "Hi Priya,\n\nCongratulations on the Series A! As you scale CloudNine, automating internal workflows becomes critical. We help CTOs like you build reliable automation pipelines.\n\nHappy to share our approach?\n\nBest,\nAlex",
			FollowUp1:       "Quick note on scaling post-funding.",
			FollowUp2:       "How CloudBase automated 80% of their ops workflows.",
			FollowUp3:       "Last check-in on workflow automation.",
			QualityScore:    85, Flags: "Recent funding",
			DaysSinceContact: 2,
		},
		{
			ID: "s4", Name: "David Kim", Company: "OptiFlow", CompanyURL: "https://optiflow.ai",
			LinkedInURL: "https://linkedin.com/in/davidkim", Email: "david@optiflow.ai",
			Status: models.StatusNew, LastAction: "Added to pipeline", LastActionDate: "2026-02-20",
		},
		{
			ID: "s5", Name: "Lisa Wang", Company: "DataStream", CompanyURL: "https://datastream.io",
			LinkedInURL: "https://linkedin.com/in/lisawang", Email: "lisa@datastream.io",
			Status: models.StatusReplied, LastAction: "Positive reply received", LastActionDate: "2026-02-18",
			ResearchSummary: "Head of Product at DataStream. Interested in data pipeline automation.",
			SubjectLine:     "Streamline your data pipelines, Lisa?",
			EmailBody:       "Hi Lisa,\n\nI saw DataStream is expanding its data integration capabilities. Our automation tools can help speed up your pipeline development by 3x.\n\nWorth a quick chat?\n\nBest,\nAlex",
			QualityScore:    88, Flags: "Booking demo", Approved: true,
			EngagementSignal: models.SignalReply, DaysSinceContact: 2,
		},
	}

	for i := range leads {
		lead := &leads[i]
		lead.Channel = models.ChannelEmail
		lead.Timeline = []models.TimelineEvent{{
			ID:      lead.ID + "-1",
			Channel: models.ChannelEmail,
			Action:  lead.LastAction,
			Date:    lead.LastActionDate,
		}}
	}
	return leads
}

// Counters the engagement view shows for sample data before any check has run
var sampleEngagementStats = models.EngagementStats{
	HotLeadsCount:     2,
	FollowUpsDue:      1,
	NotificationsSent: 3,
}
