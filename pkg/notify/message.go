package notify

import (
	"fmt"
	"strings"
)

// maxItemsPerBoardLine caps how many new items are listed per board in the
// rendered message; the rest collapses into an overflow line.
const maxItemsPerBoardLine = 5

// BuildMessage renders the report as Slack-flavored markdown.
func BuildMessage(report Report) string {
	lines := []string{
		fmt.Sprintf("*Board monitor results* (%s)", report.GeneratedAt.Format("2006-01-02 15:04 UTC")),
		"",
	}

	if report.HasNew() {
		lines = append(lines, "*New posts detected*")
	} else {
		lines = append(lines, "No new posts found on any board.")
	}

	for _, result := range report.Boards {
		label := fmt.Sprintf("*%s* <%s|open>", result.Name, result.URL)
		if result.Failed() {
			lines = append(lines, fmt.Sprintf("- %s: fetch failed (%s)", label, result.Err))
			continue
		}
		if len(result.AddedItems) == 0 {
			lines = append(lines, fmt.Sprintf("- %s: no changes", label))
			continue
		}

		lines = append(lines, fmt.Sprintf("- %s: %d new", label, len(result.AddedItems)))
		for i, item := range result.AddedItems {
			if i >= maxItemsPerBoardLine {
				break
			}
			lines = append(lines, "  - "+item)
		}
		if overflow := len(result.AddedItems) - maxItemsPerBoardLine; overflow > 0 {
			lines = append(lines, fmt.Sprintf("  - ... and %d more", overflow))
		}
	}

	if report.HasErrors() {
		lines = append(lines, "", "Some board fetches failed. Check URL/selector/network status.")
	}

	return strings.Join(lines, "\n")
}
