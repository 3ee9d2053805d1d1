package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/board-monitor/internal/domain"
)

func testReport(results ...domain.BoardResult) Report {
	return Report{
		GeneratedAt: time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC),
		Boards:      results,
	}
}

func TestBuildMessageNoChanges(t *testing.T) {
	report := testReport(domain.BoardResult{Name: "quiet", URL: "https://example.com/q"})

	msg := BuildMessage(report)
	if !strings.Contains(msg, "*Board monitor results* (2026-08-29 09:30 UTC)") {
		t.Fatalf("missing header:\n%s", msg)
	}
	if !strings.Contains(msg, "No new posts found on any board.") {
		t.Fatalf("missing no-change line:\n%s", msg)
	}
	if !strings.Contains(msg, "- *quiet* <https://example.com/q|open>: no changes") {
		t.Fatalf("missing board line:\n%s", msg)
	}
}

func TestBuildMessageListsNewItemsWithOverflow(t *testing.T) {
	added := []string{"one", "two", "three", "four", "five", "six", "seven"}
	report := testReport(domain.BoardResult{
		Name:       "busy",
		URL:        "https://example.com/b",
		AddedItems: added,
	})

	msg := BuildMessage(report)
	if !strings.Contains(msg, "*New posts detected*") {
		t.Fatalf("missing new-post header:\n%s", msg)
	}
	if !strings.Contains(msg, "- *busy* <https://example.com/b|open>: 7 new") {
		t.Fatalf("missing count line:\n%s", msg)
	}
	if !strings.Contains(msg, "  - five") {
		t.Fatalf("fifth item should be listed:\n%s", msg)
	}
	if strings.Contains(msg, "  - six") {
		t.Fatalf("sixth item should collapse into overflow:\n%s", msg)
	}
	if !strings.Contains(msg, "  - ... and 2 more") {
		t.Fatalf("missing overflow line:\n%s", msg)
	}
}

func TestBuildMessageReportsFailures(t *testing.T) {
	report := testReport(
		domain.BoardResult{Name: "ok", URL: "https://example.com/ok", AddedItems: []string{"fresh"}},
		domain.BoardResult{Name: "down", URL: "https://example.com/down", Err: "status 503"},
	)

	msg := BuildMessage(report)
	if !strings.Contains(msg, "- *down* <https://example.com/down|open>: fetch failed (status 503)") {
		t.Fatalf("missing failure line:\n%s", msg)
	}
	if !strings.Contains(msg, "Some board fetches failed.") {
		t.Fatalf("missing trailing warning:\n%s", msg)
	}
}

func TestReportFlags(t *testing.T) {
	quiet := testReport(domain.BoardResult{Name: "a"})
	if quiet.HasNew() || quiet.HasErrors() {
		t.Fatalf("quiet report should have no new items and no errors")
	}

	busy := testReport(
		domain.BoardResult{Name: "a", AddedItems: []string{"x"}},
		domain.BoardResult{Name: "b", Err: "boom"},
	)
	if !busy.HasNew() || !busy.HasErrors() {
		t.Fatalf("busy report flags wrong: new=%v errors=%v", busy.HasNew(), busy.HasErrors())
	}
}
