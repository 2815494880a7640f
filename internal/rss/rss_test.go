package rss

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trivance/content-engine/internal/enhance"
)

func newTestFetcher() *Fetcher {
	cfg := enhance.DefaultConfig()
	cfg.Enabled = false
	return NewFetcher(enhance.New(cfg), 2*time.Second)
}

func serveFeed(t *testing.T, xml string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, xml)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rssXML(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title>` + items + `</channel></rss>`
}

func TestFetchArticlesUnavailableFeedIsEmpty(t *testing.T) {
	f := newTestFetcher()

	articles := f.FetchArticles("http://127.0.0.1:1/feed", 5)
	if len(articles) != 0 {
		t.Errorf("unavailable feed must yield empty result, got %d", len(articles))
	}
}

func TestFetchArticlesParseFailureIsEmpty(t *testing.T) {
	f := newTestFetcher()
	srv := serveFeed(t, "this is not xml at all")

	articles := f.FetchArticles(srv.URL, 5)
	if len(articles) != 0 {
		t.Errorf("parse failure must yield empty result, got %d", len(articles))
	}
}

func TestFetchArticlesNormalizesAndScores(t *testing.T) {
	f := newTestFetcher()
	srv := serveFeed(t, rssXML(`
<item>
  <title>AI startup raises funding &#38; expands</title>
  <description>&lt;p&gt;Machine learning automation for small business productivity.&lt;/p&gt;</description>
  <link>https://example.com/a</link>
  <pubDate>Tue, 03 Jun 2025 10:00:00 +0000</pubDate>
</item>`))

	articles := f.FetchArticles(srv.URL, 5)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	a := articles[0]
	if a.Title != "AI startup raises funding & expands" {
		t.Errorf("title not normalized: %q", a.Title)
	}
	if a.Summary != "Machine learning automation for small business productivity." {
		t.Errorf("summary not normalized: %q", a.Summary)
	}
	if a.Score <= 0 {
		t.Errorf("expected positive relevance score, got %d", a.Score)
	}
	if a.PublishedAt == nil {
		t.Error("expected parsed publication time")
	}
}

func TestFetchArticlesHonorsLimit(t *testing.T) {
	f := newTestFetcher()
	var items string
	for i := 0; i < 6; i++ {
		items += fmt.Sprintf(`<item><title>Item %d</title><description>d</description><link>https://example.com/%d</link></item>`, i, i)
	}
	srv := serveFeed(t, rssXML(items))

	articles := f.FetchArticles(srv.URL, 3)
	if len(articles) != 3 {
		t.Errorf("expected limit of 3, got %d", len(articles))
	}
}

func TestSortArticlesScoreThenPublishedString(t *testing.T) {
	articles := []Article{
		{Title: "low", Score: 1, Published: "2025-06-03"},
		{Title: "high-old", Score: 5, Published: "2025-06-01"},
		{Title: "high-new", Score: 5, Published: "2025-06-02"},
	}
	sortArticles(articles)

	if articles[0].Title != "high-new" || articles[1].Title != "high-old" || articles[2].Title != "low" {
		t.Errorf("unexpected order: %q %q %q", articles[0].Title, articles[1].Title, articles[2].Title)
	}
}

func TestAggregateTagsSourceAndResorts(t *testing.T) {
	f := newTestFetcher()
	low := serveFeed(t, rssXML(`<item><title>Nothing special today</title><description>d</description><link>https://example.com/low</link></item>`))
	high := serveFeed(t, rssXML(`<item><title>AI automation for small business</title><description>Machine learning productivity gains.</description><link>https://example.com/high</link></item>`))

	all := f.Aggregate([]Feed{
		{Name: "Low Feed", URL: low.URL},
		{Name: "High Feed", URL: high.URL},
	}, 5)

	if len(all) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(all))
	}
	if all[0].Source != "High Feed" {
		t.Errorf("expected highest scored article first, got source %q", all[0].Source)
	}
	for _, a := range all {
		if a.Source == "" || a.SourceURL == "" {
			t.Errorf("article missing source tags: %+v", a)
		}
	}
}

func TestTopArticleSkipsStaleDatedEntries(t *testing.T) {
	f := newTestFetcher()
	old := time.Now().AddDate(0, 0, -30).Format(time.RFC1123Z)
	srv := serveFeed(t, rssXML(fmt.Sprintf(`
<item>
  <title>AI automation for small business workflow</title>
  <description>Machine learning productivity.</description>
  <link>https://example.com/stale</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>Undated note</title>
  <description>d</description>
  <link>https://example.com/undated</link>
</item>`, old)))

	top := f.TopArticle([]Feed{{Name: "Feed", URL: srv.URL}}, 5, 7)
	if top == nil {
		t.Fatal("expected an article")
	}
	if top.Link != "https://example.com/undated" {
		t.Errorf("stale dated entry should be skipped, undated kept; got %q", top.Link)
	}
}

func TestTopArticleNilForEmptyFeed(t *testing.T) {
	f := newTestFetcher()
	srv := serveFeed(t, rssXML(""))

	if top := f.TopArticle([]Feed{{Name: "Empty", URL: srv.URL}}, 5, 7); top != nil {
		t.Errorf("feed with zero entries should yield no top article, got %+v", top)
	}
}

func TestTopArticleNilWithoutFeeds(t *testing.T) {
	f := newTestFetcher()
	if top := f.TopArticle(nil, 5, 7); top != nil {
		t.Errorf("expected nil with no feeds, got %+v", top)
	}
}

func TestLoadSeedFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	yaml := "feeds:\n  - name: TechCrunch AI\n    url: https://techcrunch.com/feed/\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	feeds, err := LoadSeedFeeds(path)
	if err != nil {
		t.Fatalf("LoadSeedFeeds: %v", err)
	}
	if len(feeds) != 1 || feeds[0].Name != "TechCrunch AI" {
		t.Errorf("unexpected seed feeds: %+v", feeds)
	}

	if _, err := LoadSeedFeeds(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
