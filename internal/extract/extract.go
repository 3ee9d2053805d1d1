// Package extract turns raw board content (HTML markup or nested JSON) into
// an ordered, deduplicated, capped list of item titles plus per-title row
// text. It is the only part of the monitor with extraction logic; fetching
// and persistence live elsewhere.
package extract

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/board-monitor/pkg/boards"
)

// Result is the engine output for one board pass.
type Result struct {
	// Items holds distinct normalized titles in first-occurrence order,
	// capped at the board's max_items.
	Items []string
	// ExtractedTotal counts titles found before the cap. The HTML
	// item-selector path counts every matched node with non-empty title text
	// (duplicates included); the JSON path counts distinct titles only. Both
	// counts feed the inspection report, not the diff.
	ExtractedTotal int
	// RowTextByTitle maps each capped title to its summary line, when one
	// was recorded.
	RowTextByTitle map[string]string
}

// Strategy converts raw fetched bytes into a Result for one board.
type Strategy interface {
	SourceType() string
	Extract(raw []byte, board boards.Board) (Result, error)
}

// Registry resolves the strategy for a board's source type.
type Registry interface {
	StrategyFor(board boards.Board) (Strategy, error)
}

type strategyRegistry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry builds a registry for the provided strategies keyed by source type.
func NewRegistry(strategies ...Strategy) Registry {
	reg := &strategyRegistry{strategies: make(map[string]Strategy)}
	for _, s := range strategies {
		reg.register(s)
	}
	return reg
}

func (r *strategyRegistry) register(s Strategy) {
	if s == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(s.SourceType()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.strategies[key] = s
	r.mu.Unlock()
}

// StrategyFor selects the strategy matching the board's source type.
func (r *strategyRegistry) StrategyFor(board boards.Board) (Strategy, error) {
	if r == nil {
		return nil, fmt.Errorf("strategy registry is nil")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(board.SourceType))
	if s, ok := r.strategies[key]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no strategy registered for source type %q (board %q)", board.SourceType, board.Name)
}

// DefaultRegistry wires up the HTML and JSON strategies.
func DefaultRegistry() Registry {
	return NewRegistry(NewHTMLStrategy(), NewJSONStrategy())
}
