// Package textutil cleans raw feed content into plain text.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

// Requires a tag-shaped token after '<' so that decoded comparison text
// like "5 < 10 > 2" is left alone on a repeat pass.
var tagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>|<!--[^>]*-->`)

// Numeric and named entities that show up in feed summaries but survive a
// plain unescape pass (double-encoded markup, publisher CMS quirks).
var extraEntities = map[string]string{
	"&#38;":    "&",
	"&#8211;":  "-",
	"&#8212;":  "—",
	"&#8216;":  "'",
	"&#8217;":  "'",
	"&#8220;":  "\"",
	"&#8221;":  "\"",
	"&#8230;":  "...",
	"&#160;":   " ",
	"&nbsp;":   " ",
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   "\"",
	"&#39;":    "'",
	"&apos;":   "'",
	"&ndash;":  "-",
	"&mdash;":  "—",
	"&hellip;": "...",
	"&rsquo;":  "'",
	"&lsquo;":  "'",
	"&rdquo;":  "\"",
	"&ldquo;":  "\"",
}

// Normalize strips HTML tags, decodes entities and collapses whitespace.
// It is idempotent and never fails: any input, including the empty string,
// yields plain trimmed text or "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	// Second pass catches double-encoded markup like &amp;#8212;.
	for entity, replacement := range extraEntities {
		s = strings.ReplaceAll(s, entity, replacement)
	}

	return strings.Join(strings.Fields(s), " ")
}

// TruncateAtSentence cuts s near max characters, preferring to end on a
// sentence boundary. Text shorter than max is returned unchanged.
func TruncateAtSentence(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := s[:max]
	boundary := -1
	for _, end := range []string{". ", "! ", "? "} {
		if idx := strings.LastIndex(cut, end); idx > boundary {
			boundary = idx
		}
	}
	// Only honor a boundary that keeps a meaningful chunk of text.
	if boundary > max/2 {
		return strings.TrimSpace(cut[:boundary+1])
	}

	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}
