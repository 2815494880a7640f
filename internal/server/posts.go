package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/trivance/content-engine/internal/generator"
	"github.com/trivance/content-engine/internal/metrics"
	"github.com/trivance/content-engine/internal/store"
)

// generateRequest accepts both the current field names and the legacy
// ones the first dashboard revision sent (url/style).
type generateRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	Link      string `json:"link"`
	URL       string `json:"url"`
	PostStyle string `json:"post_style"`
	Style     string `json:"style"`
	Platform  string `json:"platform"`
}

func (s *Server) handleGeneratePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Link == "" {
		req.Link = req.URL
	}
	if req.PostStyle == "" {
		req.PostStyle = req.Style
	}
	if req.Source == "" {
		req.Source = "Unknown"
	}

	article := generator.Article{
		Title:   req.Title,
		Summary: req.Summary,
		Source:  req.Source,
		Link:    req.Link,
	}
	result := s.generator.Generate(r.Context(), article, req.PostStyle, req.Platform)

	saved := s.persistResult(article, result)

	response := map[string]interface{}{
		"post":              result.Post,
		"method":            result.Method,
		"style_used":        result.StyleUsed,
		"platform":          result.Platform,
		"key_insights":      result.KeyInsights,
		"hashtags_included": result.HashtagsIncluded,
	}
	if result.SpecificDetail != "" {
		response["specific_detail"] = result.SpecificDetail
	}
	if result.FallbackReason != "" {
		response["fallback_reason"] = result.FallbackReason
	}
	if saved != nil {
		response["post_id"] = saved.ID
	}
	writeJSON(w, http.StatusOK, response)
}

// persistResult records the generation everywhere it should land. All of
// it is best-effort; the caller still gets their post when storage fails.
func (s *Server) persistResult(article generator.Article, result generator.Result) *store.GeneratedPost {
	var saved *store.GeneratedPost
	post, err := s.posts.Save(article.Title, article.Summary, article.Source, article.Link,
		result.Post, result.Method, result.StyleUsed)
	if err != nil {
		log.Printf("Error saving post: %v", err)
	} else {
		saved = &post
		metrics.Global.IncrementPostsSaved()
	}

	if s.vault != nil {
		if err := s.vault.Record(article.Title, article.Source, article.Link, result); err != nil {
			log.Printf("Error recording to vault: %v", err)
		}
	}

	if s.notifier.Enabled() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := s.notifier.Notify(ctx, result.Post); err != nil {
				log.Printf("Error announcing post: %v", err)
			}
		}()
	}
	return saved
}

func (s *Server) handleHashtags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Content string `json:"content"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	title, summary := req.Title, req.Summary
	if req.Content != "" {
		title, summary = req.Content, ""
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hashtags": generator.GenerateHashtags(title, summary),
	})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/posts/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit := queryInt(r, "limit", 10)
		posts, err := s.posts.Recent(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load posts")
			return
		}
		writeJSON(w, http.StatusOK, emptyIfNil(posts))
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id query parameter is required")
			return
		}
		deleted, err := s.posts.Delete(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to delete post")
			return
		}
		if !deleted {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"message": "Post not found",
				"success": false,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Post deleted successfully",
			"success": true,
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAllPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	posts, err := s.posts.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(posts))
}

func (s *Server) handlePostHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := queryInt(r, "limit", 20)
	posts, err := s.posts.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(posts))
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default": generator.DefaultStyle,
		"styles":  generator.AvailableStyles(),
	})
}

func (s *Server) handleVaultStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.vault.Stats())
}

func emptyIfNil(posts []store.GeneratedPost) []store.GeneratedPost {
	if posts == nil {
		return []store.GeneratedPost{}
	}
	return posts
}
