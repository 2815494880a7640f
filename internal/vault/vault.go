// Package vault keeps a long-term archive of everything the engine has
// generated, independent of the editable posts history. Posts can be
// deleted; vault entries cannot.
package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/trivance/content-engine/internal/generator"
)

type Entry struct {
	Title        string   `json:"title"`
	Source       string   `json:"source"`
	Link         string   `json:"link"`
	Post         string   `json:"post"`
	Method       string   `json:"method"`
	StyleUsed    string   `json:"style_used"`
	Platform     string   `json:"platform,omitempty"`
	Insights     []string `json:"key_insights,omitempty"`
	CharCount    int      `json:"char_count"`
	GenerationMs int64    `json:"generation_ms"`
	CreatedAt    string   `json:"created_at"`
}

type Stats struct {
	Total     int            `json:"total"`
	AvgLength float64        `json:"avg_length"`
	ByMethod  map[string]int `json:"by_method"`
	ByStyle   map[string]int `json:"by_style"`
}

type Vault struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

func New(dataDir string) (*Vault, error) {
	v := &Vault{path: filepath.Join(dataDir, "content_vault.json")}

	data, err := os.ReadFile(v.path)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	if err := json.Unmarshal(data, &v.entries); err != nil {
		return nil, fmt.Errorf("failed to parse vault: %w", err)
	}
	return v, nil
}

// Record archives a generation result. The caller treats the vault as
// best-effort and only logs failures.
func (v *Vault) Record(title, source, link string, result generator.Result) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.entries = append(v.entries, Entry{
		Title:        title,
		Source:       source,
		Link:         link,
		Post:         result.Post,
		Method:       result.Method,
		StyleUsed:    result.StyleUsed,
		Platform:     result.Platform,
		Insights:     result.KeyInsights,
		CharCount:    len(result.Post),
		GenerationMs: result.Elapsed.Milliseconds(),
		CreatedAt:    time.Now().Format(time.RFC3339),
	})
	return v.flush()
}

// Stats summarizes the archive by generation method and style.
func (v *Vault) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()

	stats := Stats{
		Total:    len(v.entries),
		ByMethod: make(map[string]int),
		ByStyle:  make(map[string]int),
	}
	totalChars := 0
	for _, e := range v.entries {
		stats.ByMethod[e.Method]++
		stats.ByStyle[e.StyleUsed]++
		totalChars += e.CharCount
	}
	if stats.Total > 0 {
		stats.AvgLength = float64(totalChars) / float64(stats.Total)
	}
	return stats
}

func (v *Vault) flush() error {
	if err := os.MkdirAll(filepath.Dir(v.path), 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	data, err := json.MarshalIndent(v.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode vault: %w", err)
	}
	if err := os.WriteFile(v.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}
