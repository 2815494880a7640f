// Package telegram pushes freshly generated posts to an operator chat via
// the Bot API. Notification failures never fail the generation itself.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/trivance/content-engine/internal/retry"
)

type Notifier struct {
	token    string
	chatID   string
	baseURL  string
	client   *http.Client
	retryCfg retry.Config
}

func NewNotifier(token, chatID string) *Notifier {
	return &Notifier{
		token:    token,
		chatID:   chatID,
		baseURL:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 30 * time.Second},
		retryCfg: retry.Config{MaxAttempts: 3, Delay: time.Second, Backoff: true},
	}
}

// Enabled reports whether both token and chat id are configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.token != "" && n.chatID != ""
}

// Notify sends text to the configured chat, retrying transient failures
// with exponential backoff.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if !n.Enabled() {
		return nil
	}

	err := retry.Do(ctx, n.retryCfg, func() error {
		return n.sendOnce(ctx, text)
	})
	if err != nil {
		return fmt.Errorf("telegram notify: %w", err)
	}
	return nil
}

func (n *Notifier) sendOnce(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Warning: failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != 200 {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}
	return nil
}
