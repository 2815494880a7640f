package store

import (
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// GeneratedPost is an immutable history entry; the id is derived from the
// creation timestamp.
type GeneratedPost struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Summary          string  `json:"summary"`
	Source           string  `json:"source"`
	Link             string  `json:"link"`
	GeneratedContent string  `json:"generated_content"`
	Method           string  `json:"method,omitempty"`
	StyleUsed        string  `json:"style_used,omitempty"`
	CreatedAt        string  `json:"created_at"`
	Timestamp        float64 `json:"timestamp"`
}

// PostStore appends generated posts to posts.json. Entries are never
// mutated; deletion by id is the only removal path.
type PostStore struct {
	mu   sync.Mutex
	path string
}

func NewPostStore(dataDir string) *PostStore {
	return &PostStore{path: filepath.Join(dataDir, "posts.json")}
}

// Save appends a post built from the given fields and returns it.
func (s *PostStore) Save(title, summary, source, link, content, method, style string) (GeneratedPost, error) {
	now := time.Now()
	post := GeneratedPost{
		ID:               now.Format(time.RFC3339Nano),
		Title:            title,
		Summary:          summary,
		Source:           source,
		Link:             link,
		GeneratedContent: content,
		Method:           method,
		StyleUsed:        style,
		CreatedAt:        now.Format(time.RFC3339),
		Timestamp:        float64(now.UnixNano()) / 1e9,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []GeneratedPost
	if err := loadJSON(s.path, &posts); err != nil {
		return post, err
	}
	posts = append(posts, post)
	return post, saveJSON(s.path, posts)
}

// All returns every stored post in append order.
func (s *PostStore) All() ([]GeneratedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []GeneratedPost
	err := loadJSON(s.path, &posts)
	return posts, err
}

// Recent returns the newest posts first, limited by count.
func (s *PostStore) Recent(limit int) ([]GeneratedPost, error) {
	posts, err := s.All()
	if err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Timestamp > posts[j].Timestamp
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// Delete removes a post by id; the bool reports whether anything matched.
func (s *PostStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []GeneratedPost
	if err := loadJSON(s.path, &posts); err != nil {
		return false, err
	}

	kept := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(posts) {
		return false, nil
	}
	return true, saveJSON(s.path, kept)
}
