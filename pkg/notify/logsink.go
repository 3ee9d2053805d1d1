package notify

import "context"

// logNotifier writes the rendered report to the application log. Useful for
// dry runs and as a delivery of last resort.
type logNotifier struct {
	id  string
	typ string
	log Logger
}

func newLogNotifier(_ context.Context, cfg NotifierConfig, log Logger) (Notifier, error) {
	return &logNotifier{
		id:  cfg.ID,
		typ: TypeLog,
		log: ensureLogger(log),
	}, nil
}

func (l *logNotifier) ID() string   { return l.id }
func (l *logNotifier) Type() string { return l.typ }

func (l *logNotifier) Notify(_ context.Context, report Report) error {
	l.log.InfoObj("board monitor report", "report", map[string]any{
		"boards":  len(report.Boards),
		"has_new": report.HasNew(),
		"message": BuildMessage(report),
	})
	return nil
}
