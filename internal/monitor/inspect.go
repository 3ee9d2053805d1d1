package monitor

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/board-monitor/internal/domain"
)

// RenderInspection formats the per-board extraction report used to verify
// max_items settings before wiring a board into notifications. limit caps
// the item preview per board.
func RenderInspection(results []domain.BoardResult, limit int) string {
	if limit <= 0 {
		limit = 10
	}

	var b strings.Builder
	b.WriteString("=== max_items inspection ===\n")

	for _, result := range results {
		fmt.Fprintf(&b, "\n[%s]\n", result.Name)
		if result.Failed() {
			fmt.Fprintf(&b, "- status: failed (%s)\n", result.Err)
			continue
		}
		fmt.Fprintf(&b, "- max_items: %d\n", result.MaxItems)
		fmt.Fprintf(&b, "- extracted total: %d\n", result.ExtractedTotal)
		fmt.Fprintf(&b, "- kept for compare: %d\n", len(result.CurrentItems))
		if result.ExtractedTotal > len(result.CurrentItems) {
			fmt.Fprintf(&b, "- cap applied: yes (top %d kept)\n", result.MaxItems)
		} else {
			b.WriteString("- cap applied: no (everything fits)\n")
		}

		fmt.Fprintf(&b, "- preview (up to %d):\n", limit)
		for i, item := range result.CurrentItems {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, item)
			if rowText := result.RowTextByTitle[item]; rowText != "" {
				fmt.Fprintf(&b, "     - row text: %s\n", rowText)
			}
		}
	}

	return b.String()
}
