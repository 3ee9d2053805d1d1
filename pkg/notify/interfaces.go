package notify

import "context"

// Notifier delivers a run report to a downstream sink (Slack, SQS, HTTP, etc).
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, report Report) error
}
