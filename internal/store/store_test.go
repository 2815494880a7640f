package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/trivance/content-engine/internal/rss"
)

func TestFeedStoreAddAndRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFeedStore(dir)
	if err != nil {
		t.Fatalf("NewFeedStore: %v", err)
	}

	count, err := s.Add(rss.Feed{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	// Duplicate names are allowed and both entries are retained.
	count, _ = s.Add(rss.Feed{Name: "TechCrunch AI", URL: "https://example.com/other"})
	if count != 2 {
		t.Errorf("expected count 2 after duplicate add, got %d", count)
	}

	if err := s.Remove("TechCrunch AI"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(s.All()) != 0 {
		t.Errorf("expected removal by name to delete all duplicates, got %d left", len(s.All()))
	}
}

func TestFeedStorePersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFeedStore(dir)
	s.Add(rss.Feed{Name: "VentureBeat", URL: "https://venturebeat.com/feed/"})

	reloaded, err := NewFeedStore(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	feed, ok := reloaded.FindByName("VentureBeat")
	if !ok {
		t.Fatal("expected feed to survive reload")
	}
	if feed.URL != "https://venturebeat.com/feed/" {
		t.Errorf("unexpected URL after reload: %s", feed.URL)
	}
}

func TestFeedStoreSeedSkipsKnownNames(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFeedStore(dir)
	s.Add(rss.Feed{Name: "TechCrunch AI", URL: "https://operator-edited.example/feed"})

	err := s.Seed([]rss.Feed{
		{Name: "TechCrunch AI", URL: "https://techcrunch.com/feed/"},
		{Name: "The Verge AI", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 feeds after seed, got %d", len(all))
	}
	feed, _ := s.FindByName("TechCrunch AI")
	if feed.URL != "https://operator-edited.example/feed" {
		t.Errorf("seed must not overwrite operator feed, got %s", feed.URL)
	}
}

func TestPostStoreSaveRecentDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewPostStore(dir)

	first, err := s.Save("First", "summary", "Source", "https://a.example", "post one", "template", "trivance_default")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _ := s.Save("Second", "summary", "Source", "https://b.example", "post two", "external", "punchy")

	recent, err := s.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != second.ID {
		t.Errorf("expected newest post first, got %+v", recent)
	}

	deleted, err := s.Delete(first.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	deleted, _ = s.Delete(first.ID)
	if deleted {
		t.Error("second delete of same id should report false")
	}

	all, _ := s.All()
	if len(all) != 1 || all[0].ID != second.ID {
		t.Errorf("expected only second post to remain, got %+v", all)
	}
}

func TestPostStoreMissingFileIsEmpty(t *testing.T) {
	s := NewPostStore(t.TempDir())
	posts, err := s.All()
	if err != nil {
		t.Fatalf("All on missing file: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected empty history, got %d posts", len(posts))
	}
}

func TestSubscriberStoreDeduplicates(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSubscriberStore(dir)
	if err != nil {
		t.Fatalf("NewSubscriberStore: %v", err)
	}

	added, total, err := s.Add("ops@example.com")
	if err != nil || !added || total != 1 {
		t.Fatalf("first add: added=%v total=%d err=%v", added, total, err)
	}
	added, total, _ = s.Add("ops@example.com")
	if added || total != 1 {
		t.Errorf("duplicate add: added=%v total=%d", added, total)
	}
	added, total, _ = s.Add("dev@example.com")
	if !added || total != 2 {
		t.Errorf("second email: added=%v total=%d", added, total)
	}

	if _, err := os.Stat(filepath.Join(dir, "subscribers.json")); err != nil {
		t.Errorf("expected subscribers.json to exist: %v", err)
	}
}
