package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notifier forwards contact form submissions to an operator channel.
type Notifier interface {
	ContactMessage(ctx context.Context, name, email, message string) error
}

// NewWebhookNotifier posts messages to a chat webhook URL. When the URL is
// empty, submissions are only logged.
func NewWebhookNotifier(webhookURL string, logger zerolog.Logger) Notifier {
	l := logger.With().Str("component", "notify").Logger()
	if webhookURL == "" {
		l.Warn().Msg("contact webhook not configured, messages will be logged only")
		return &logNotifier{logger: l}
	}
	return &webhookNotifier{
		url:    webhookURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: l,
	}
}

type logNotifier struct {
	logger zerolog.Logger
}

func (n *logNotifier) ContactMessage(ctx context.Context, name, email, message string) error {
	n.logger.Info().
		Str("name", name).
		Str("email", email).
		Str("message", message).
		Msg("contact form submission")
	return nil
}

type webhookNotifier struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

type webhookPayload struct {
	Content string `json:"content"`
}

func (n *webhookNotifier) ContactMessage(ctx context.Context, name, email, message string) error {
	body, err := json.Marshal(webhookPayload{
		Content: fmt.Sprintf("Contact form\nFrom: %s <%s>\n%s", name, email, message),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("contact webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("contact webhook returned %s", resp.Status)
	}

	n.logger.Debug().Str("email", email).Msg("contact message forwarded")

	return nil
}
