// Package ratelimit caps daily AI API usage. A rejected request is not an
// error upstream; the generator falls back to templates.
package ratelimit

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// AIRateLimiter tracks per-provider and combined daily request counts.
type AIRateLimiter struct {
	mu          sync.Mutex
	openaiCount int
	geminiCount int
	totalCount  int
	maxOpenAI   int
	maxGemini   int
	maxTotal    int
	resetTime   time.Time
	cacheHits   int
	cacheMisses int
}

// NewAIRateLimiter creates a limiter; a zero limit means unlimited.
func NewAIRateLimiter(maxOpenAI, maxGemini, maxTotal int) *AIRateLimiter {
	return &AIRateLimiter{
		maxOpenAI: maxOpenAI,
		maxGemini: maxGemini,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reserves one request slot for the named provider.
func (rl *AIRateLimiter) Allow(provider string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		return fmt.Errorf("total AI rate limit reached (%d/%d)", rl.totalCount, rl.maxTotal)
	}

	switch provider {
	case "openai":
		if rl.maxOpenAI > 0 && rl.openaiCount >= rl.maxOpenAI {
			return fmt.Errorf("openai rate limit reached (%d/%d)", rl.openaiCount, rl.maxOpenAI)
		}
		rl.openaiCount++
	case "gemini":
		if rl.maxGemini > 0 && rl.geminiCount >= rl.maxGemini {
			return fmt.Errorf("gemini rate limit reached (%d/%d)", rl.geminiCount, rl.maxGemini)
		}
		rl.geminiCount++
	default:
		return fmt.Errorf("unknown AI provider %q", provider)
	}

	rl.totalCount++
	rl.cacheMisses++
	return nil
}

// RecordCacheHit notes that a cached generation was reused.
func (rl *AIRateLimiter) RecordCacheHit() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cacheHits++
}

// GetStats returns current usage numbers.
func (rl *AIRateLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	hitRate := 0.0
	if total := rl.cacheHits + rl.cacheMisses; total > 0 {
		hitRate = float64(rl.cacheHits) / float64(total) * 100
	}

	return map[string]interface{}{
		"openai_used":    rl.openaiCount,
		"openai_limit":   rl.maxOpenAI,
		"gemini_used":    rl.geminiCount,
		"gemini_limit":   rl.maxGemini,
		"total_used":     rl.totalCount,
		"total_limit":    rl.maxTotal,
		"cache_hits":     rl.cacheHits,
		"cache_misses":   rl.cacheMisses,
		"cache_hit_rate": hitRate,
		"reset_time":     rl.resetTime,
	}
}

func (rl *AIRateLimiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		log.Printf("Resetting AI rate limiter counters (used %d total)", rl.totalCount)
		rl.openaiCount = 0
		rl.geminiCount = 0
		rl.totalCount = 0
		rl.cacheHits = 0
		rl.cacheMisses = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
