package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes every tag
	StrictPolicy = bluemonday.StrictPolicy()
	// EmailPolicy keeps the basic formatting tags allowed in an outgoing email
	EmailPolicy = newEmailPolicy()
)

func newEmailPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "div", "span", "strong", "em", "u", "ul", "ol", "li", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// StripHTML turns agent-written text into plain text. Text without markup is
// returned unchanged, so literal ampersands and quotes survive.
func StripHTML(text string) string {
	if !strings.ContainsAny(text, "<>") {
		return text
	}
	return strings.TrimSpace(html.UnescapeString(StrictPolicy.Sanitize(text)))
}

// PlainTextToHTML renders a plain-text body as a minimal HTML email part
func PlainTextToHTML(text string) string {
	escaped := html.EscapeString(text)
	paragraphs := strings.Split(strings.ReplaceAll(escaped, "\r\n", "\n"), "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = "<p>" + strings.ReplaceAll(p, "\n", "<br>") + "</p>"
	}
	return EmailPolicy.Sanitize(strings.Join(paragraphs, ""))
}

// NormalizeName folds a person name for case-insensitive matching
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
