// Package relevance ranks articles for the AI-for-business niche.
package relevance

import (
	"regexp"
	"strings"
)

// Keywords the target audience cares about. A title hit outweighs a
// summary hit; each keyword counts once.
var nicheKeywords = []string{
	"ai",
	"artificial intelligence",
	"automation",
	"machine learning",
	"chatgpt",
	"openai",
	"llm",
	"generative",
	"copilot",
	"productivity",
	"workflow",
	"efficiency",
	"small business",
	"startup",
	"saas",
	"no-code",
	"integration",
	"customer service",
	"marketing",
	"strategy",
}

// Academic and research signals. The audience wants operator-level news,
// not papers, so each occurrence costs a point.
var academicTerms = []string{
	"arxiv",
	"peer-reviewed",
	"preprint",
	"dissertation",
	"thesis",
	"benchmark dataset",
	"academic",
	"university study",
}

const (
	titlePoints   = 3
	summaryPoints = 2

	longSummaryWords  = 60
	shortSummaryWords = 25
)

// Short keywords need whole-word matching so "ai" does not fire inside
// "said" or "retailers". Longer keywords are safe as substrings.
var shortKeywordPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, kw := range nicheKeywords {
		if len(kw) <= 3 && !strings.Contains(kw, " ") {
			patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}
	return patterns
}()

func containsKeyword(text, kw string) bool {
	if re, ok := shortKeywordPatterns[kw]; ok {
		return re.MatchString(text)
	}
	return strings.Contains(text, kw)
}

// Score assigns a non-negative relevance score to an article. It is a pure
// function of its inputs and case-insensitive. The result is a ranking
// signal, not a probability; ties are broken by the caller.
func Score(title, summary string) int {
	titleLower := strings.ToLower(title)
	summaryLower := strings.ToLower(summary)

	score := 0
	for _, kw := range nicheKeywords {
		// Title match wins; a keyword never counts twice.
		if containsKeyword(titleLower, kw) {
			score += titlePoints
		} else if containsKeyword(summaryLower, kw) {
			score += summaryPoints
		}
	}

	words := len(strings.Fields(summary))
	if words > longSummaryWords {
		score += 2
	} else if words > shortSummaryWords {
		score += 1
	}

	combined := titleLower + " " + summaryLower
	for _, term := range academicTerms {
		score -= strings.Count(combined, term)
	}

	if score < 0 {
		score = 0
	}
	return score
}
