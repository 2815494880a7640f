package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched         int64
	FetchFailures        int64
	ArticlesScored       int64
	EnhancementsApplied  int64
	EnhancementsDeclined int64
	ExternalGenerations  int64
	FallbackGenerations  int64
	PostsSaved           int64

	// Timings
	LastGenerationTime    time.Duration
	TotalGenerationTime   time.Duration
	AverageGenerationTime time.Duration
	GenerationCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFailures++
}

func (m *Metrics) IncrementArticlesScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesScored++
}

func (m *Metrics) IncrementEnhancementsApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnhancementsApplied++
}

func (m *Metrics) IncrementEnhancementsDeclined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnhancementsDeclined++
}

func (m *Metrics) IncrementExternalGenerations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExternalGenerations++
}

func (m *Metrics) IncrementFallbackGenerations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackGenerations++
}

func (m *Metrics) IncrementPostsSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsSaved++
}

func (m *Metrics) RecordGenerationTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastGenerationTime = duration
	m.TotalGenerationTime += duration
	m.GenerationCount++

	if m.GenerationCount > 0 {
		m.AverageGenerationTime = m.TotalGenerationTime / time.Duration(m.GenerationCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":              m.FeedsFetched,
		"fetch_failures":             m.FetchFailures,
		"articles_scored":            m.ArticlesScored,
		"enhancements_applied":       m.EnhancementsApplied,
		"enhancements_declined":      m.EnhancementsDeclined,
		"external_generations":       m.ExternalGenerations,
		"fallback_generations":       m.FallbackGenerations,
		"posts_saved":                m.PostsSaved,
		"last_generation_time_ms":    m.LastGenerationTime.Milliseconds(),
		"average_generation_time_ms": m.AverageGenerationTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
