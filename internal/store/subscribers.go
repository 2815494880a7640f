package store

import (
	"path/filepath"
	"sync"
)

// SubscriberStore keeps the email list in subscribers.json. Unlike feeds,
// subscribers are deduplicated by exact email match.
type SubscriberStore struct {
	mu     sync.Mutex
	path   string
	emails []string
}

func NewSubscriberStore(dataDir string) (*SubscriberStore, error) {
	s := &SubscriberStore{path: filepath.Join(dataDir, "subscribers.json")}
	if err := loadJSON(s.path, &s.emails); err != nil {
		return nil, err
	}
	return s, nil
}

// Add subscribes an email; the bool reports whether it was new.
func (s *SubscriberStore) Add(email string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.emails {
		if existing == email {
			return false, len(s.emails), nil
		}
	}
	s.emails = append(s.emails, email)
	return true, len(s.emails), saveJSON(s.path, s.emails)
}

// All returns the subscriber list.
func (s *SubscriberStore) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.emails))
	copy(out, s.emails)
	return out
}
