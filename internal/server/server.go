// Package server exposes the engine over HTTP for the dashboard UI and
// operator scripts.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/trivance/content-engine/internal/config"
	"github.com/trivance/content-engine/internal/generator"
	"github.com/trivance/content-engine/internal/metrics"
	"github.com/trivance/content-engine/internal/rss"
	"github.com/trivance/content-engine/internal/store"
	"github.com/trivance/content-engine/internal/telegram"
	"github.com/trivance/content-engine/internal/vault"
)

type Server struct {
	cfg         *config.Config
	feeds       *store.FeedStore
	fetcher     *rss.Fetcher
	generator   *generator.Generator
	posts       store.PostArchive
	vault       *vault.Vault
	subscribers *store.SubscriberStore
	notifier    *telegram.Notifier
}

func New(cfg *config.Config, feeds *store.FeedStore, fetcher *rss.Fetcher, gen *generator.Generator,
	posts store.PostArchive, contentVault *vault.Vault, subscribers *store.SubscriberStore,
	notifier *telegram.Notifier) *Server {
	return &Server{
		cfg:         cfg,
		feeds:       feeds,
		fetcher:     fetcher,
		generator:   gen,
		posts:       posts,
		vault:       contentVault,
		subscribers: subscribers,
		notifier:    notifier,
	}
}

// Routes builds the full route table. More specific patterns win, so the
// article endpoints shadow the "/feeds/" prefix match.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/feeds/", s.handleFeeds)
	mux.HandleFunc("/feeds/articles", s.handleFeedArticles)
	mux.HandleFunc("/feeds/top-article", s.handleTopArticle)
	mux.HandleFunc("/feeds/articles/all", s.handleAllArticles)

	mux.HandleFunc("/posts/", s.handlePosts)
	mux.HandleFunc("/posts/generate", s.handleGeneratePost)
	mux.HandleFunc("/posts/hashtags", s.handleHashtags)
	mux.HandleFunc("/posts/styles", s.handleStyles)
	mux.HandleFunc("/posts/all", s.handleAllPosts)
	mux.HandleFunc("/posts/history", s.handlePostHistory)
	mux.HandleFunc("/posts/vault/stats", s.handleVaultStats)

	mux.HandleFunc("/subscribers/", s.handleSubscribers)

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := metrics.Global.GetStats()
	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
