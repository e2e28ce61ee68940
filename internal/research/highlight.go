package research

import (
	"regexp"
	"sort"
	"strings"
)

// Segment is a run of text, highlighted when it matched a tag
type Segment struct {
	Text      string   `json:"text"`
	Highlight bool     `json:"highlight"`
	Category  Category `json:"category,omitempty"`
}

type span struct {
	start, end int
	category   Category
}

// Highlight splits text into plain and highlighted segments. Tag texts are
// matched case-insensitively, longest first, and never overlap.
func Highlight(text string, tags []Tag) []Segment {
	if text == "" {
		return []Segment{}
	}

	candidates := uniqueByText(tags)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].Text) > len(candidates[j].Text)
	})

	var spans []span
	for _, tag := range candidates {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(tag.Text))
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !overlaps(spans, loc[0], loc[1]) {
				spans = append(spans, span{start: loc[0], end: loc[1], category: tag.Category})
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	segments := []Segment{}
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			segments = append(segments, Segment{Text: text[pos:s.start]})
		}
		segments = append(segments, Segment{Text: text[s.start:s.end], Highlight: true, Category: s.category})
		pos = s.end
	}
	if pos < len(text) {
		segments = append(segments, Segment{Text: text[pos:]})
	}

	return segments
}

func uniqueByText(tags []Tag) []Tag {
	seen := make(map[string]bool)
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		key := strings.ToLower(tag.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}
