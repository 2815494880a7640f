package store

import (
	"path/filepath"
	"sync"

	"github.com/trivance/content-engine/internal/rss"
)

// FeedStore holds the feed registry, loaded at startup and persisted after
// every mutation. Duplicate names are allowed; removal by name removes all
// feeds carrying it.
type FeedStore struct {
	mu    sync.RWMutex
	path  string
	feeds []rss.Feed
}

func NewFeedStore(dataDir string) (*FeedStore, error) {
	s := &FeedStore{path: filepath.Join(dataDir, "feeds.json")}
	if err := loadJSON(s.path, &s.feeds); err != nil {
		return nil, err
	}
	return s, nil
}

// Seed adds feeds that are not yet registered by name. Used once at startup
// to merge the YAML seed list into whatever the operator already saved.
func (s *FeedStore) Seed(feeds []rss.Feed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.feeds))
	for _, f := range s.feeds {
		known[f.Name] = true
	}

	added := false
	for _, f := range feeds {
		if !known[f.Name] {
			s.feeds = append(s.feeds, f)
			known[f.Name] = true
			added = true
		}
	}
	if !added {
		return nil
	}
	return saveJSON(s.path, s.feeds)
}

// Add registers a feed. Names are not checked for uniqueness.
func (s *FeedStore) Add(feed rss.Feed) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feeds = append(s.feeds, feed)
	return len(s.feeds), saveJSON(s.path, s.feeds)
}

// Remove deletes every feed with the given name.
func (s *FeedStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.feeds[:0]
	for _, f := range s.feeds {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	s.feeds = kept
	return saveJSON(s.path, s.feeds)
}

// All returns a copy of the registry in insertion order.
func (s *FeedStore) All() []rss.Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rss.Feed, len(s.feeds))
	copy(out, s.feeds)
	return out
}

// FindByName returns the first feed registered under name.
func (s *FeedStore) FindByName(name string) (rss.Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.feeds {
		if f.Name == name {
			return f, true
		}
	}
	return rss.Feed{}, false
}
