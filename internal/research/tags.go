// Package research extracts categorized facts from an agent-written research
// summary and marks them up for display. Nothing here is stored on a lead.
package research

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups research tags
type Category string

// Categories, in the order tags are reported
const (
	CategoryRole         Category = "role"
	CategoryFunding      Category = "funding"
	CategoryTechStack    Category = "tech_stack"
	CategoryBottleneck   Category = "bottleneck"
	CategoryCompanyStage Category = "company_stage"
	CategoryTrigger      Category = "trigger"
	CategoryInterest     Category = "interest"
)

// Categories lists every category in report order
var Categories = []Category{
	CategoryRole,
	CategoryFunding,
	CategoryTechStack,
	CategoryBottleneck,
	CategoryCompanyStage,
	CategoryTrigger,
	CategoryInterest,
}

var caser = cases.Title(language.English)

// Label returns a display title such as "Tech Stack"
func (c Category) Label() string {
	return caser.String(strings.ReplaceAll(string(c), "_", " "))
}

// Tag is one extracted fact
type Tag struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Text     string   `json:"text"`
}

// Roles are matched case-sensitively so that "cto" inside other words is ignored.
var matchers = map[Category]*regexp.Regexp{
	CategoryRole: regexp.MustCompile(
		`\b(?:CEO|CTO|CFO|COO|CMO|CRO|CPO|CIO|Co-?[Ff]ounder|Founder|` +
			`VP(?: of)? [A-Z][A-Za-z]+|Vice President(?: of)? [A-Z][A-Za-z]+|` +
			`Head of [A-Z][A-Za-z]+|Director of [A-Z][A-Za-z]+|Chief [A-Z][a-z]+ Officer)\b`),
	CategoryFunding: regexp.MustCompile(
		`(?i)\b(?:series [a-f]\b|pre-seed\b|seed (?:round|funding)\b|` +
			`raised \$?\d+(?:\.\d+)?\s?(?:[mbk]\b|million\b|billion\b)?|ipo\b|bootstrapped\b)`),
	CategoryTechStack: regexp.MustCompile(
		`(?i)\b(?:aws|gcp|azure|kubernetes|docker|terraform|salesforce|hubspot|snowflake|` +
			`databricks|postgres(?:ql)?|mysql|mongodb|react|python|golang|node\.js|` +
			`zapier|slack|jira|segment|stripe|shopify)\b`),
	CategoryBottleneck: regexp.MustCompile(
		`(?i)\b(?:bottlenecks?|manual (?:processes|workflows?|work|data entry|reporting)|` +
			`scaling (?:challenges|issues|pains?)|technical debt|tech debt|` +
			`slow (?:onboarding|deployments?|reporting)|high churn|churn)\b`),
	CategoryCompanyStage: regexp.MustCompile(
		`(?i)\b(?:early-stage|growth-stage|late-stage|start-?up|scale-?up|mid-market|enterprise|` +
			`fortune \d+|\d+(?:\s?-\s?\d+)?\+?\s?employees)\b`),
	CategoryTrigger: regexp.MustCompile(
		`(?i)\b(?:recently (?:raised|launched|hired|announced|expanded|acquired|joined)|` +
			`just (?:raised|launched|hired|announced)|new (?:role|hire|product|office)|` +
			`acquisition|acquired|expanding|expansion|hiring|launched)\b`),
	CategoryInterest: regexp.MustCompile(
		`(?i)\b(?:interested in|passionate about|focused on|focusing on|exploring|` +
			`posts? about|writes about|talks about) [A-Za-z0-9][A-Za-z0-9-]*(?: [A-Za-z0-9][A-Za-z0-9-]*)?`),
}

// ExtractTags scans a research summary and returns its tags grouped by
// category in Categories order, each group ordered by first appearance.
// Repeats of the same text within a category are reported once.
func ExtractTags(summary string) []Tag {
	tags := []Tag{}
	if strings.TrimSpace(summary) == "" {
		return tags
	}

	for _, category := range Categories {
		seen := make(map[string]bool)
		for _, match := range matchers[category].FindAllString(summary, -1) {
			match = strings.TrimSpace(match)
			key := strings.ToLower(match)
			if match == "" || seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, Tag{Category: category, Label: category.Label(), Text: match})
		}
	}

	return tags
}

// ByCategory groups tags by category, keeping their order
func ByCategory(tags []Tag) map[Category][]Tag {
	grouped := make(map[Category][]Tag)
	for _, tag := range tags {
		grouped[tag.Category] = append(grouped[tag.Category], tag)
	}
	return grouped
}
