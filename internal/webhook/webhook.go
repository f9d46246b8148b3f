package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RugvedaRao/StudyLog/internal/models"
)

// SourceLabel identifies this app in the sign-up sheet.
const SourceLabel = "CA Foundation Tracker"

type payload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

// Logger posts profile captures to an optional sign-up webhook. Failures are
// the caller's to log and swallow; they must never reach the user.
type Logger struct {
	url    string
	client *http.Client
}

func New(url string) *Logger {
	return &Logger{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// LogProfile posts one capture. A no-op when no webhook URL is configured.
func (l *Logger) LogProfile(ctx context.Context, p models.Profile, refURL string) error {
	if l.url == "" {
		return nil
	}

	body, err := json.Marshal(payload{
		Name:      p.Name,
		Email:     p.Email,
		Source:    SourceLabel,
		URL:       refURL,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("webhook: serialize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: post returned %s", resp.Status)
	}
	return nil
}
