// Package enhance upgrades thin feed summaries with content pulled from the
// article page itself. Enhancement is best effort: every failure path hands
// back the original summary.
package enhance

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/trivance/content-engine/internal/metrics"
	"github.com/trivance/content-engine/internal/textutil"
)

// Config controls when a summary is considered thin and how far extraction
// may go. Zero values are unusable; build it from config.Load.
type Config struct {
	Enabled             bool
	MinSummaryLength    int
	MaxSummaryLength    int
	MinEnhancedLength   int
	MinEnhancementRatio float64
	Timeout             time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		MinSummaryLength:    200,
		MaxSummaryLength:    800,
		MinEnhancedLength:   300,
		MinEnhancementRatio: 1.5,
		Timeout:             10 * time.Second,
	}
}

// Domains where page extraction is pointless (video, paywall shells,
// script-rendered apps).
var unsupportedDomains = []string{
	"youtube.com",
	"youtu.be",
	"twitter.com",
	"x.com",
	"reddit.com",
	"facebook.com",
	"instagram.com",
	"linkedin.com",
}

var truncationMarkers = []string{"...", "…", "[…]", "[...]", "&#8230;"}

var readMoreCues = []string{
	"read more",
	"continue reading",
	"full story",
	"click here",
	"view full",
}

// Selector candidates in priority order, first acceptable match wins.
// The generic "article p" leads because most publishers use semantic markup.
var contentSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".story-body p",
	"main p",
	".content p",
}

type Enhancer struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Enhancer {
	return &Enhancer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// NeedsEnhancement reports whether a summary looks truncated by the feed:
// too short, cut off with a marker, or carrying a read-more cue.
func (e *Enhancer) NeedsEnhancement(summary string) bool {
	trimmed := strings.TrimSpace(summary)
	if len(trimmed) < e.cfg.MinSummaryLength {
		return true
	}
	for _, marker := range truncationMarkers {
		if strings.HasSuffix(trimmed, marker) {
			return true
		}
	}
	lower := strings.ToLower(trimmed)
	for _, cue := range readMoreCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// Enhance returns a longer summary extracted from link when the feed summary
// is thin, or fallback unchanged in every other case. The enabled flag gates
// the whole path, including summaries that would otherwise qualify.
func (e *Enhancer) Enhance(link, fallback string) string {
	if !e.cfg.Enabled {
		return fallback
	}
	if !e.NeedsEnhancement(fallback) {
		return fallback
	}
	if isUnsupportedDomain(link) {
		log.Printf("Enhancement skipped for unsupported domain: %s", link)
		metrics.Global.IncrementEnhancementsDeclined()
		return fallback
	}

	content, err := e.extract(link)
	if err != nil {
		log.Printf("Enhancement failed for %s: %v", link, err)
		metrics.Global.IncrementEnhancementsDeclined()
		return fallback
	}

	if len(content) < e.cfg.MinEnhancedLength {
		metrics.Global.IncrementEnhancementsDeclined()
		return fallback
	}
	if float64(len(content)) < e.cfg.MinEnhancementRatio*float64(len(fallback)) {
		metrics.Global.IncrementEnhancementsDeclined()
		return fallback
	}

	return textutil.TruncateAtSentence(content, e.cfg.MaxSummaryLength)
}

func (e *Enhancer) extract(link string) (string, error) {
	resp, err := e.client.Get(link)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	// First candidate yielding enough text wins; candidates are not ranked
	// against each other.
	for _, selector := range contentSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) == 0 {
			continue
		}
		content := textutil.Normalize(strings.Join(paragraphs, " "))
		if len(content) >= e.cfg.MinEnhancedLength {
			return content, nil
		}
	}

	return "", fmt.Errorf("no structural candidate matched")
}

func isUnsupportedDomain(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return true
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	for _, domain := range unsupportedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
