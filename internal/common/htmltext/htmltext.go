// Package htmltext extracts plain text from the HTML fragments the commerce
// platform stores in product and shop descriptions.
package htmltext

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptStylePattern = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagPattern         = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Clean strips tags, drops script/style blocks, decodes entities and
// collapses whitespace.
func Clean(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}

	text := scriptStylePattern.ReplaceAllString(htmlContent, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Truncate shortens text to at most max characters, appending an ellipsis
// when anything was cut.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}
