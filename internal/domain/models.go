// Package domain contains core models shared across the monitor and its sinks.
package domain

// BoardResult captures the outcome of a single board pass. A non-empty Err
// means the pass failed and CurrentItems carries the previous state forward
// unchanged.
type BoardResult struct {
	Name           string            `json:"name"`
	URL            string            `json:"url"`
	MaxItems       int               `json:"max_items"`
	CurrentItems   []string          `json:"current_items"`
	AddedItems     []string          `json:"added_items"`
	ExtractedTotal int               `json:"extracted_total"`
	RowTextByTitle map[string]string `json:"row_text_by_title,omitempty"`
	Err            string            `json:"error,omitempty"`
}

// Failed reports whether this board's pass ended in an error.
func (r BoardResult) Failed() bool { return r.Err != "" }
