package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *Server) handleSubscribers(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/subscribers/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		email := strings.TrimSpace(req.Email)
		if email == "" || !strings.Contains(email, "@") {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}

		added, total, err := s.subscribers.Add(email)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save subscriber")
			return
		}
		if !added {
			writeJSON(w, http.StatusOK, map[string]string{"message": "Already subscribed."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Subscribed!",
			"total":   total,
		})
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.subscribers.All())
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
