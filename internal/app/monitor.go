package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/samvad-hq/board-monitor/internal/config"
	"github.com/samvad-hq/board-monitor/internal/logger"
	"github.com/samvad-hq/board-monitor/internal/monitor"
	"github.com/samvad-hq/board-monitor/internal/state"
	"github.com/samvad-hq/board-monitor/pkg/boards"
	"github.com/samvad-hq/board-monitor/pkg/httpclient"
	"github.com/samvad-hq/board-monitor/pkg/notify"
)

// Monitor represents the board monitor runtime. It coordinates the board
// registry, the processing service, the state store and the notifier fanout,
// and executes single passes or the interval loop.
type Monitor struct {
	cfg      *config.Config
	boardReg *boards.Registry
	service  *monitor.Service
	store    state.Store
	fanout   *notify.Fanout
	log      logger.Logger
}

// NewMonitor builds a monitor runtime from config files.
func NewMonitor(ctx context.Context, cfg *config.Config, log logger.Logger) (*Monitor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	boardReg, err := boards.LoadRegistry(cfg.BoardsFile)
	if err != nil {
		return nil, fmt.Errorf("load boards registry: %w", err)
	}
	boardList := boardReg.All()
	boardNames := make([]string, 0, len(boardList))
	for _, b := range boardList {
		boardNames = append(boardNames, b.Name)
	}
	log.InfoObj("boards registry loaded", "boards_meta", map[string]any{
		"count": len(boardNames),
		"names": boardNames,
	})

	store, err := state.NewStore(cfg.StateType, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("init state storage: %w", err)
	}
	log.InfoObj("state storage initialized", "state_config", map[string]any{
		"type": cfg.StateType,
		"path": cfg.StatePath,
	})

	// Notifiers are skipped in inspect and dry-run modes: nothing is
	// delivered, so missing delivery config must not block those modes.
	var fanout *notify.Fanout
	if !cfg.InspectItems && !cfg.DryRun {
		notifierReg, err := notify.LoadRegistry(cfg.NotifiersFile)
		if err != nil {
			return nil, fmt.Errorf("load notifiers registry: %w", err)
		}
		enabled := notifierReg.Enabled()
		if len(enabled) == 0 {
			return nil, fmt.Errorf("no notifiers configured")
		}

		built, err := notify.BuildAll(ctx, notify.DefaultRegistry(), enabled, log)
		if err != nil {
			return nil, fmt.Errorf("build notifiers: %w", err)
		}
		fanout = notify.NewFanout(built)

		summaries := make([]map[string]string, 0, len(enabled))
		for _, nc := range enabled {
			summaries = append(summaries, map[string]string{"id": nc.ID, "type": nc.Type})
		}
		log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
			"count":     len(summaries),
			"notifiers": summaries,
		})
	}

	client := httpclient.NewRestyClient(cfg.FetchTimeout)
	service := monitor.NewService(nil, client, cfg.UserAgent, log)

	return &Monitor{
		cfg:      cfg,
		boardReg: boardReg,
		service:  service,
		store:    store,
		fanout:   fanout,
		log:      log,
	}, nil
}

// Run executes a single pass, or the interval loop when monitor_interval is
// positive. Inspect mode always runs once.
func (m *Monitor) Run(ctx context.Context) error {
	if m == nil || m.service == nil {
		return fmt.Errorf("monitor is not initialized")
	}
	defer m.closeStore()

	if m.cfg.MonitorInterval <= 0 || m.cfg.InspectItems {
		return m.RunOnce(ctx)
	}

	if err := m.RunOnce(ctx); err != nil {
		m.log.ErrorObj("initial pass failed", "error", err)
	}

	ticker := time.NewTicker(m.cfg.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.InfoObj("monitor loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := m.RunOnce(ctx); err != nil {
				m.log.ErrorObj("scheduled pass failed", "error", err)
			}
		}
	}
}

// RunOnce performs one full pass: load state, process every board, persist
// the replacement state and deliver the report.
func (m *Monitor) RunOnce(ctx context.Context) error {
	start := time.Now()
	boardList := m.boardReg.All()
	m.log.InfoObj("pass started", "pass_meta", map[string]any{
		"boards_count": len(boardList),
		"started_at":   start.UTC(),
	})

	previous, err := m.store.Load()
	if err != nil {
		// A broken store is a cold start, not a fatal condition.
		m.log.WarnObj("state load failed; starting cold", "error", err.Error())
		previous = map[string][]string{}
	}

	results, newState := m.service.Run(ctx, boardList, previous)

	if m.cfg.InspectItems {
		fmt.Fprint(os.Stdout, monitor.RenderInspection(results, m.cfg.InspectLimit))
		return nil
	}

	if err := m.store.Save(newState); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	report := notify.NewReport(results)
	message := notify.BuildMessage(report)
	fmt.Fprintln(os.Stdout, message)

	m.log.InfoObj("pass completed", "pass_meta", map[string]any{
		"boards_count": len(boardList),
		"has_new":      report.HasNew(),
		"has_errors":   report.HasErrors(),
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})

	if m.cfg.DryRun {
		return nil
	}

	sent, err := m.fanout.Notify(ctx, report)
	if err != nil {
		m.log.ErrorObj("report delivery failed", "delivery_error", map[string]any{
			"delivered": sent,
			"error":     err.Error(),
		})
		return fmt.Errorf("deliver report: %w", err)
	}
	return nil
}

// closeStore safely closes the state backend, logging any errors encountered.
func (m *Monitor) closeStore() {
	if m == nil || m.store == nil {
		return
	}
	if err := m.store.Close(); err != nil {
		m.log.ErrorObj("state storage close failed", "error", err)
	}
}
