package extract

import "strings"

// Normalize collapses all whitespace runs (including newlines and tabs) to
// single spaces and trims the result. Applied before any title or row text is
// compared or stored, so extractions differing only in incidental whitespace
// are identical. Idempotent; empty in, empty out.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dedup accumulates normalized candidate strings, keeping distinct non-empty
// values in first-occurrence order. Later duplicates are dropped silently.
// Shared by both strategies so dedup semantics are identical regardless of
// source type.
type dedup struct {
	seen  map[string]struct{}
	items []string
}

func newDedup() *dedup {
	return &dedup{seen: make(map[string]struct{})}
}

// Add records value and reports whether it was a new distinct entry. Empty
// values are rejected.
func (d *dedup) Add(value string) bool {
	if value == "" {
		return false
	}
	if _, ok := d.seen[value]; ok {
		return false
	}
	d.seen[value] = struct{}{}
	d.items = append(d.items, value)
	return true
}

// Len returns the distinct count before any cap.
func (d *dedup) Len() int { return len(d.items) }

// Capped returns the first max distinct entries along with the rows map
// restricted to them.
func (d *dedup) Capped(max int, rows map[string]string) ([]string, map[string]string) {
	items := d.items
	if items == nil {
		items = []string{}
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	limited := make(map[string]string, len(items))
	for _, title := range items {
		if text, ok := rows[title]; ok {
			limited[title] = text
		}
	}
	return items, limited
}
