package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/board-monitor/internal/domain"
	"github.com/samvad-hq/board-monitor/internal/extract"
	"github.com/samvad-hq/board-monitor/internal/logger"
	"github.com/samvad-hq/board-monitor/pkg/boards"
	"github.com/samvad-hq/board-monitor/pkg/httpclient"
)

// Service coordinates fetching, extraction and diffing across boards.
type Service struct {
	strategies extract.Registry
	client     httpclient.Client
	userAgent  string
	log        logger.Logger
}

// DefaultHTTPClient returns a tuned http client for board fetches.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(15 * time.Second)
}

// NewService wires a monitor with the strategy registry and HTTP client.
func NewService(strategies extract.Registry, client httpclient.Client, userAgent string, log logger.Logger) *Service {
	if strategies == nil {
		strategies = extract.DefaultRegistry()
	}
	if client == nil {
		client = DefaultHTTPClient()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		strategies: strategies,
		client:     client,
		userAgent:  userAgent,
		log:        log,
	}
}

// Run processes every board in configuration order against the previous
// state and returns the ordered results plus the full replacement state. A
// board that failed writes its previous list back unchanged, so the next run
// diffs against the same baseline.
func (s *Service) Run(ctx context.Context, cfgs []boards.Board, previous map[string][]string) ([]domain.BoardResult, map[string][]string) {
	results := make([]domain.BoardResult, 0, len(cfgs))
	newState := make(map[string][]string, len(cfgs))

	for _, board := range cfgs {
		result := s.ProcessBoard(ctx, board, previous[board.Name])
		results = append(results, result)
		newState[board.Name] = result.CurrentItems

		if result.Failed() {
			s.log.ErrorObj("board pass failed", "board_error", map[string]any{
				"board": board.Name,
				"error": result.Err,
			})
			continue
		}
		s.log.InfoObj("board pass completed", "board_result", map[string]any{
			"board":           board.Name,
			"extracted_total": result.ExtractedTotal,
			"kept":            len(result.CurrentItems),
			"added":           len(result.AddedItems),
		})
	}

	return results, newState
}

// ProcessBoard produces exactly one result for the board, never returning an
// error past this boundary: any fetch, parse or dispatch failure degrades
// the board to "unchanged since last run" with the failure recorded in Err.
func (s *Service) ProcessBoard(ctx context.Context, board boards.Board, previous []string) domain.BoardResult {
	raw, err := s.download(ctx, board)
	if err != nil {
		return failureResult(board, previous, err)
	}

	strategy, err := s.strategies.StrategyFor(board)
	if err != nil {
		return failureResult(board, previous, err)
	}

	extracted, err := strategy.Extract(raw, board)
	if err != nil {
		return failureResult(board, previous, err)
	}

	return domain.BoardResult{
		Name:           board.Name,
		URL:            board.URL,
		MaxItems:       board.MaxItems,
		CurrentItems:   extracted.Items,
		AddedItems:     extract.DiffAdded(previous, extracted.Items),
		ExtractedTotal: extracted.ExtractedTotal,
		RowTextByTitle: extracted.RowTextByTitle,
	}
}

// download fetches the board's target URL: a plain GET for html boards, the
// configured verb with form payload for json boards.
func (s *Service) download(ctx context.Context, board boards.Board) ([]byte, error) {
	headers := make(map[string]string, 2)
	if s.userAgent != "" {
		headers["User-Agent"] = s.userAgent
	}

	var (
		resp httpclient.Response
		err  error
	)
	if board.SourceType == boards.SourceTypeJSON {
		headers["X-Requested-With"] = "XMLHttpRequest"
		resp, err = s.client.Execute(ctx, board.Method, board.TargetURL(), board.Payload, headers)
	} else {
		resp, err = s.client.Get(ctx, board.TargetURL(), headers)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch board %s: %w", board.Name, err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("board %s returned status %d body: %s", board.Name, code, responseSnippet(resp.Body()))
	}
	return resp.Body(), nil
}

func failureResult(board boards.Board, previous []string, err error) domain.BoardResult {
	if previous == nil {
		previous = []string{}
	}
	return domain.BoardResult{
		Name:           board.Name,
		URL:            board.URL,
		MaxItems:       board.MaxItems,
		CurrentItems:   previous,
		AddedItems:     nil,
		ExtractedTotal: len(previous),
		Err:            err.Error(),
	}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
