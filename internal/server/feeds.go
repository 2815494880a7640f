package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/trivance/content-engine/internal/rss"
)

func (s *Server) handleFeeds(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/feeds/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.createFeed(w, r)
	case http.MethodGet:
		s.listFeeds(w, r)
	case http.MethodDelete:
		s.deleteFeed(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createFeed(w http.ResponseWriter, r *http.Request) {
	var feed rss.Feed
	if err := json.NewDecoder(r.Body).Decode(&feed); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if feed.Name == "" || feed.URL == "" {
		writeError(w, http.StatusBadRequest, "name and url are required")
		return
	}

	total, err := s.feeds.Add(feed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save feed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Feed added",
		"total":   total,
	})
}

func (s *Server) listFeeds(w http.ResponseWriter, r *http.Request) {
	feeds := s.feeds.All()
	if feeds == nil {
		feeds = []rss.Feed{}
	}
	writeJSON(w, http.StatusOK, feeds)
}

func (s *Server) deleteFeed(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}
	if err := s.feeds.Remove(name); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove feed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Feed '%s' removed.", name),
	})
}

func (s *Server) handleFeedArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feedName := r.URL.Query().Get("feed_name")
	if feedName == "" {
		writeError(w, http.StatusBadRequest, "feed_name query parameter is required")
		return
	}
	feed, ok := s.feeds.FindByName(feedName)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("feed '%s' not found", feedName))
		return
	}

	limit := queryInt(r, "limit", s.cfg.ArticleLimit)
	articles := s.fetcher.FetchArticles(feed.URL, limit)
	for i := range articles {
		articles[i].Source = feed.Name
		articles[i].SourceURL = feed.URL
	}
	if articles == nil {
		articles = []rss.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) handleTopArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxAgeDays := queryInt(r, "max_age_days", 7)
	top := s.fetcher.TopArticle(s.feeds.All(), s.cfg.ArticleLimit, maxAgeDays)
	if top == nil {
		writeError(w, http.StatusNotFound, "no articles found")
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleAllArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limitPerFeed := queryInt(r, "limit_per_feed", s.cfg.ArticleLimit)
	articles := s.fetcher.Aggregate(s.feeds.All(), limitPerFeed)
	if articles == nil {
		articles = []rss.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
