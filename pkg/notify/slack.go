package notify

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samvad-hq/board-monitor/pkg/httpclient"
)

// slackNotifier posts the rendered message to a Slack incoming webhook.
type slackNotifier struct {
	id         string
	typ        string
	webhookURL string
	client     *resty.Client
	log        Logger
}

func newSlackNotifier(_ context.Context, cfg NotifierConfig, log Logger) (Notifier, error) {
	if cfg.Slack == nil {
		return nil, fmt.Errorf("notifier %q missing slack configuration", cfg.ID)
	}

	webhookURL := cfg.Slack.WebhookURL
	if webhookURL == "" && cfg.Slack.WebhookEnv != "" {
		webhookURL = strings.TrimSpace(os.Getenv(cfg.Slack.WebhookEnv))
	}
	if webhookURL == "" {
		return nil, fmt.Errorf("notifier %q has no webhook URL (set slack.webhook_url or the %s environment variable)", cfg.ID, cfg.Slack.WebhookEnv)
	}

	client := httpclient.NewRestyHTTPClient(time.Duration(cfg.Slack.TimeoutSeconds) * time.Second)

	return &slackNotifier{
		id:         cfg.ID,
		typ:        TypeSlack,
		webhookURL: webhookURL,
		client:     client,
		log:        ensureLogger(log),
	}, nil
}

func (s *slackNotifier) ID() string   { return s.id }
func (s *slackNotifier) Type() string { return s.typ }

// Notify renders the report and posts it as a webhook text payload.
func (s *slackNotifier) Notify(ctx context.Context, report Report) error {
	payload := map[string]string{"text": BuildMessage(report)}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.webhookURL)
	if err != nil {
		return fmt.Errorf("slack webhook request: %w", err)
	}
	if resp.IsError() {
		snippet := readBodySnippet(resp.Body())
		return fmt.Errorf("slack webhook status %d: %s", resp.StatusCode(), snippet)
	}

	s.log.DebugObj("slack notifier delivered report", "notifier_slack_delivery", map[string]any{
		"notifier_id": s.id,
		"boards":      len(report.Boards),
	})
	return nil
}
