package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/trivance/content-engine/internal/config"
	"github.com/trivance/content-engine/internal/enhance"
	"github.com/trivance/content-engine/internal/generator"
	"github.com/trivance/content-engine/internal/rss"
	"github.com/trivance/content-engine/internal/store"
	"github.com/trivance/content-engine/internal/telegram"
	"github.com/trivance/content-engine/internal/vault"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{ArticleLimit: 5}
	feeds, err := store.NewFeedStore(dir)
	if err != nil {
		t.Fatalf("feed store: %v", err)
	}
	subs, err := store.NewSubscriberStore(dir)
	if err != nil {
		t.Fatalf("subscriber store: %v", err)
	}
	contentVault, err := vault.New(dir)
	if err != nil {
		t.Fatalf("vault: %v", err)
	}

	enhCfg := enhance.DefaultConfig()
	enhCfg.Enabled = false
	fetcher := rss.NewFetcher(enhance.New(enhCfg), 2*time.Second)

	gen := generator.New(generator.Config{Enabled: false}, nil, nil, nil)

	s := New(cfg, feeds, fetcher, gen, store.NewPostStore(dir), contentVault, subs,
		telegram.NewNotifier("", ""))
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

func decodeBody(t *testing.T, res *http.Response, v interface{}) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestFeedLifecycle(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/feeds/", map[string]string{
		"name": "TechCrunch AI",
		"url":  "https://techcrunch.com/category/artificial-intelligence/feed/",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("create feed status %d", res.StatusCode)
	}
	var created struct {
		Message string `json:"message"`
		Total   int    `json:"total"`
	}
	decodeBody(t, res, &created)
	if created.Message != "Feed added" || created.Total != 1 {
		t.Errorf("unexpected create response: %+v", created)
	}

	res, _ = http.Get(srv.URL + "/feeds/")
	var feeds []rss.Feed
	decodeBody(t, res, &feeds)
	if len(feeds) != 1 || feeds[0].Name != "TechCrunch AI" {
		t.Errorf("unexpected feed list: %+v", feeds)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/feeds/?name=TechCrunch+AI", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete feed: %v", err)
	}
	var deleted struct {
		Message string `json:"message"`
	}
	decodeBody(t, res, &deleted)
	if deleted.Message != "Feed 'TechCrunch AI' removed." {
		t.Errorf("unexpected delete message: %q", deleted.Message)
	}

	res, _ = http.Get(srv.URL + "/feeds/")
	feeds = nil
	decodeBody(t, res, &feeds)
	if len(feeds) != 0 {
		t.Errorf("expected empty feed list, got %+v", feeds)
	}
}

func TestCreateFeedValidation(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/feeds/", map[string]string{"name": "No URL"})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing url should be 400, got %d", res.StatusCode)
	}

	res, _ = http.Post(srv.URL+"/feeds/", "application/json", strings.NewReader("{not json"))
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("bad JSON should be 400, got %d", res.StatusCode)
	}
}

func TestFeedArticlesRequiresKnownFeed(t *testing.T) {
	srv := newTestServer(t)

	res, _ := http.Get(srv.URL + "/feeds/articles")
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing feed_name should be 400, got %d", res.StatusCode)
	}

	res, _ = http.Get(srv.URL + "/feeds/articles?feed_name=nope")
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("unknown feed should be 404, got %d", res.StatusCode)
	}
}

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item>
  <title>Boring municipal notice</title>
  <description>The council meets on Tuesday to discuss parking. This notice has enough words to be counted but mentions nothing relevant to the niche at all, just local administrative matters and schedules.</description>
  <link>https://example.com/boring</link>
  <pubDate>Mon, 02 Jun 2025 10:00:00 +0000</pubDate>
</item>
<item>
  <title>AI automation reshapes small business workflow</title>
  <description>Machine learning and automation tools give startups new productivity gains across customer service and marketing.</description>
  <link>https://example.com/ai</link>
  <pubDate>Tue, 03 Jun 2025 10:00:00 +0000</pubDate>
</item>
</channel></rss>`

func TestFeedArticlesScoredAndTagged(t *testing.T) {
	srv := newTestServer(t)

	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML)
	}))
	defer feedSrv.Close()

	res := postJSON(t, srv.URL+"/feeds/", map[string]string{"name": "Test Feed", "url": feedSrv.URL})
	res.Body.Close()

	res, _ = http.Get(srv.URL + "/feeds/articles?feed_name=Test+Feed")
	var articles []rss.Article
	decodeBody(t, res, &articles)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Link != "https://example.com/ai" {
		t.Errorf("expected relevant article ranked first, got %q", articles[0].Title)
	}
	if articles[0].Score <= articles[1].Score {
		t.Errorf("expected descending scores, got %d then %d", articles[0].Score, articles[1].Score)
	}
	for _, a := range articles {
		if a.Source != "Test Feed" {
			t.Errorf("article missing source tag: %+v", a)
		}
	}
}

func TestTopArticleWithoutFeeds(t *testing.T) {
	srv := newTestServer(t)

	res, _ := http.Get(srv.URL + "/feeds/top-article")
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 with no feeds, got %d", res.StatusCode)
	}
}

func TestGeneratePersistsPost(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/posts/generate", map[string]string{
		"title":      "AI Revolution in Small Business",
		"summary":    "Artificial intelligence is transforming how small businesses operate, offering 40% productivity gains.",
		"source":     "MIT Technology Review",
		"link":       "https://example.com/ai-small-business",
		"post_style": "consultative",
		"platform":   "LinkedIn",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("generate status %d", res.StatusCode)
	}
	var result map[string]interface{}
	decodeBody(t, res, &result)

	if result["post"] == "" || result["post"] == nil {
		t.Error("expected non-empty post")
	}
	if result["method"] != generator.MethodTemplate {
		t.Errorf("expected template method with AI disabled, got %v", result["method"])
	}
	if result["style_used"] != "consultative" {
		t.Errorf("unexpected style: %v", result["style_used"])
	}
	if result["post_id"] == nil {
		t.Error("expected post_id from persistence side effect")
	}

	res, _ = http.Get(srv.URL + "/posts/all")
	var posts []store.GeneratedPost
	decodeBody(t, res, &posts)
	if len(posts) != 1 || posts[0].Title != "AI Revolution in Small Business" {
		t.Errorf("expected persisted post, got %+v", posts)
	}

	res, _ = http.Get(srv.URL + "/posts/vault/stats")
	var stats vault.Stats
	decodeBody(t, res, &stats)
	if stats.Total != 1 || stats.ByMethod[generator.MethodTemplate] != 1 {
		t.Errorf("expected vault entry, got %+v", stats)
	}
}

func TestGenerateAcceptsLegacyFields(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/posts/generate", map[string]string{
		"title":    "Legacy Format Test",
		"summary":  "Testing the old payload shape.",
		"url":      "https://example.com/legacy-test",
		"style":    "punchy",
		"platform": "LinkedIn",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("legacy generate status %d", res.StatusCode)
	}
	var result map[string]interface{}
	decodeBody(t, res, &result)
	if result["style_used"] != "punchy" {
		t.Errorf("legacy style field not honored: %v", result["style_used"])
	}
}

func TestHashtagsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/posts/hashtags", map[string]string{
		"content": "Artificial intelligence is revolutionizing small business automation.",
	})
	var result struct {
		Hashtags []string `json:"hashtags"`
	}
	decodeBody(t, res, &result)

	if len(result.Hashtags) < 2 {
		t.Fatalf("expected at least brand tags, got %v", result.Hashtags)
	}
	if result.Hashtags[0] != "#TrivanceAI" || result.Hashtags[1] != "#AIForBusiness" {
		t.Errorf("brand tags must lead: %v", result.Hashtags)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/posts/?id=missing", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown post, got %d", res.StatusCode)
	}
}

func TestSubscribers(t *testing.T) {
	srv := newTestServer(t)

	res := postJSON(t, srv.URL+"/subscribers/", map[string]string{"email": "ops@example.com"})
	var first struct {
		Message string `json:"message"`
		Total   int    `json:"total"`
	}
	decodeBody(t, res, &first)
	if first.Message != "Subscribed!" || first.Total != 1 {
		t.Errorf("unexpected subscribe response: %+v", first)
	}

	res = postJSON(t, srv.URL+"/subscribers/", map[string]string{"email": "ops@example.com"})
	var dup struct {
		Message string `json:"message"`
	}
	decodeBody(t, res, &dup)
	if dup.Message != "Already subscribed." {
		t.Errorf("unexpected duplicate response: %+v", dup)
	}

	res = postJSON(t, srv.URL+"/subscribers/", map[string]string{"email": "not-an-email"})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid email should be 400, got %d", res.StatusCode)
	}

	res, _ = http.Get(srv.URL + "/subscribers/")
	var emails []string
	decodeBody(t, res, &emails)
	if len(emails) != 1 || emails[0] != "ops@example.com" {
		t.Errorf("unexpected subscriber list: %v", emails)
	}
}

func TestStylesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, _ := http.Get(srv.URL + "/posts/styles")
	var body struct {
		Default string            `json:"default"`
		Styles  map[string]string `json:"styles"`
	}
	decodeBody(t, res, &body)

	if body.Default != generator.DefaultStyle {
		t.Errorf("unexpected default style %q", body.Default)
	}
	for _, name := range []string{"trivance_default", "consultative", "punchy", "casual"} {
		if body.Styles[name] == "" {
			t.Errorf("style %q missing from registry listing", name)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var body struct {
		Status string `json:"status"`
	}
	decodeBody(t, res, &body)
	if body.Status != "ok" && body.Status != "error" {
		t.Errorf("unexpected health status %q", body.Status)
	}
}
