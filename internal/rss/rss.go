// Package rss fetches and ranks articles from registered feeds.
package rss

import (
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/trivance/content-engine/internal/enhance"
	"github.com/trivance/content-engine/internal/metrics"
	"github.com/trivance/content-engine/internal/relevance"
	"github.com/trivance/content-engine/internal/textutil"
)

// Feed is a registered RSS source. Names are display labels; nothing
// enforces uniqueness, and duplicates are kept as-is.
type Feed struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Article is produced fresh on every fetch and never cached: re-fetching
// the same feed may yield different enhancement results.
type Article struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Link      string `json:"link"`
	Published string `json:"published"` // opaque, feed-supplied
	Score     int    `json:"score"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url,omitempty"`

	// Parsed publication time when the feed supplied one; used only for
	// max-age filtering, never for sorting.
	PublishedAt *time.Time `json:"-"`
}

// SeedConfig is the YAML shape of the startup feed list:
//
//	feeds:
//	  - name: TechCrunch AI
//	    url: https://techcrunch.com/category/artificial-intelligence/feed/
type SeedConfig struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadSeedFeeds reads the initial feed registry from a YAML file.
func LoadSeedFeeds(path string) ([]Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SeedConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Fetcher pulls feed entries, normalizes and enhances them and assigns
// relevance scores. All network failures degrade to empty results.
type Fetcher struct {
	parser   *gofeed.Parser
	enhancer *enhance.Enhancer
}

func NewFetcher(enhancer *enhance.Enhancer, timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient(timeout)
	return &Fetcher{parser: parser, enhancer: enhancer}
}

// FetchArticles returns up to limit scored articles from one feed, sorted by
// (score, published) descending. A fetch or parse failure yields an empty
// slice; callers cannot tell an unavailable feed from an empty one.
func (f *Fetcher) FetchArticles(feedURL string, limit int) []Article {
	feed, err := f.parser.ParseURL(feedURL)
	if err != nil {
		log.Printf("Error parsing RSS %s: %v", feedURL, err)
		metrics.Global.IncrementFetchFailures()
		return nil
	}
	metrics.Global.IncrementFeedsFetched()

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		title := textutil.Normalize(item.Title)
		summary := textutil.Normalize(item.Description)
		if summary == "" {
			summary = textutil.Normalize(item.Content)
		}

		enhanced := f.enhancer.Enhance(item.Link, summary)
		if enhanced != summary {
			metrics.Global.IncrementEnhancementsApplied()
			summary = enhanced
		}

		article := Article{
			Title:       title,
			Summary:     summary,
			Link:        item.Link,
			Published:   item.Published,
			Score:       relevance.Score(title, summary),
			PublishedAt: item.PublishedParsed,
		}
		metrics.Global.IncrementArticlesScored()
		articles = append(articles, article)
	}

	sortArticles(articles)
	return articles
}

// Aggregate fetches every registered feed sequentially, tags each article
// with its source, and re-sorts the combined set by score.
func (f *Fetcher) Aggregate(feeds []Feed, limitPerFeed int) []Article {
	var all []Article
	for _, feed := range feeds {
		articles := f.FetchArticles(feed.URL, limitPerFeed)
		for i := range articles {
			articles[i].Source = feed.Name
			articles[i].SourceURL = feed.URL
		}
		all = append(all, articles...)
	}
	sortArticles(all)
	return all
}

// TopArticle returns the highest-scored article across all feeds, skipping
// entries older than maxAgeDays when the feed supplied a parsable date.
// Undated entries are kept. Returns nil when no feed produced anything.
func (f *Fetcher) TopArticle(feeds []Feed, limitPerFeed, maxAgeDays int) *Article {
	all := f.Aggregate(feeds, limitPerFeed)

	var cutoff time.Time
	if maxAgeDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -maxAgeDays)
	}

	for i := range all {
		a := &all[i]
		if !cutoff.IsZero() && a.PublishedAt != nil && a.PublishedAt.Before(cutoff) {
			continue
		}
		return a
	}
	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// sortArticles orders by score descending, then by the raw published string
// descending. The string compare is a known limitation: feeds with differing
// date formats will interleave inconsistently.
func sortArticles(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].Score != articles[j].Score {
			return articles[i].Score > articles[j].Score
		}
		return articles[i].Published > articles[j].Published
	})
}
