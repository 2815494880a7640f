package generator

import (
	"regexp"
	"strings"

	"github.com/trivance/content-engine/internal/textutil"
)

const maxInsights = 3

// Numbers that carry a claim: percentages, money, multipliers, counted units.
var numericPattern = regexp.MustCompile(`(\$?\d[\d,]*(?:\.\d+)?(?:%|x\b)|\$\d[\d,]*(?:\.\d+)?(?:\s(?:million|billion|trillion))?|\b\d[\d,]*\s(?:hours?|days?|weeks?|months?|years?|employees|companies|teams|users|customers))`)

var quotedPattern = regexp.MustCompile(`[""]([^""]{10,200})[""]|"([^"]{10,200})"`)

// Verbs that usually introduce the actual finding of an article.
var findingVerbs = []string{
	"reveals", "revealed", "found", "announced", "shows", "showed",
	"reports", "reported", "launched", "discovered", "according to",
}

// ExtractKeyInsights pulls up to three concrete details from a summary, in
// priority order: hard numbers, direct quotes, finding-verb sentences. When
// nothing matches, a truncated prefix of the summary stands in so the
// templates always have something specific to say.
func ExtractKeyInsights(summary string) []string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil
	}

	var insights []string
	seen := make(map[string]bool)

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] || len(insights) >= maxInsights {
			return
		}
		seen[s] = true
		insights = append(insights, s)
	}

	sentences := splitSentences(summary)

	// Numbers first: the sentence around a figure reads better than the
	// bare token.
	for _, sentence := range sentences {
		if len(insights) >= maxInsights {
			break
		}
		if numericPattern.MatchString(sentence) {
			add(sentence)
		}
	}

	for _, match := range quotedPattern.FindAllStringSubmatch(summary, -1) {
		if len(insights) >= maxInsights {
			break
		}
		quote := match[1]
		if quote == "" {
			quote = match[2]
		}
		add(`"` + quote + `"`)
	}

	for _, sentence := range sentences {
		if len(insights) >= maxInsights {
			break
		}
		lower := strings.ToLower(sentence)
		for _, verb := range findingVerbs {
			if strings.Contains(lower, verb) {
				add(sentence)
				break
			}
		}
	}

	if len(insights) == 0 {
		add("Summary: " + textutil.TruncateAtSentence(summary, 180))
	}

	return insights
}

func splitSentences(text string) []string {
	parts := regexp.MustCompile(`(?:[.!?])\s+`).Split(text, -1)
	var sentences []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= 15 {
			sentences = append(sentences, strings.TrimSuffix(p, "."))
		}
	}
	return sentences
}
