package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samvad-hq/board-monitor/pkg/boards"
)

// jsonStrategy extracts items from a decoded JSON value tree.
type jsonStrategy struct{}

// NewJSONStrategy builds the extraction strategy for json boards.
func NewJSONStrategy() Strategy {
	return jsonStrategy{}
}

func (jsonStrategy) SourceType() string { return boards.SourceTypeJSON }

// Extract decodes the payload and walks json_items_key to the record list.
// A missing path or non-list value yields an empty result, not an error;
// only the decode itself can fail, and that failure is handled like a fetch
// failure by the processor.
func (jsonStrategy) Extract(raw []byte, board boards.Board) (Result, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Result{}, fmt.Errorf("decode json: %w", err)
	}

	records, ok := resolvePath(data, board.JSONItemsKey).([]any)
	if !ok {
		return Result{RowTextByTitle: map[string]string{}}, nil
	}

	titles := newDedup()
	rows := make(map[string]string)

	for _, rec := range records {
		record, ok := rec.(map[string]any)
		if !ok {
			continue
		}

		titleRaw, ok := record[board.JSONTitleKey]
		if !ok || titleRaw == nil {
			continue
		}
		title := Normalize(stringify(titleRaw))
		if title == "" {
			continue
		}
		if !titles.Add(title) {
			continue
		}

		rows[title] = rowText(record, board.JSONRowFields, title)
	}

	items, limitedRows := titles.Capped(board.MaxItems, rows)
	return Result{Items: items, ExtractedTotal: titles.Len(), RowTextByTitle: limitedRows}, nil
}

// resolvePath walks a dot-separated key path, descending only through
// objects. Any missing key, null, or non-object intermediate returns nil.
func resolvePath(data any, path string) any {
	current := data
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[key]
		if current == nil {
			return nil
		}
	}
	return current
}

// rowText renders the record as "field: value" pairs joined by " | ",
// skipping null or empty values. When fields is unset, all record fields are
// used in sorted name order so the output is deterministic. Falls back to
// the title when nothing renders.
func rowText(record map[string]any, fields []string, title string) string {
	if len(fields) == 0 {
		fields = make([]string, 0, len(record))
		for name := range record {
			fields = append(fields, name)
		}
		sort.Strings(fields)
	}

	pairs := make([]string, 0, len(fields))
	for _, field := range fields {
		value, ok := record[field]
		if !ok || value == nil {
			continue
		}
		text := Normalize(stringify(value))
		if text == "" {
			continue
		}
		pairs = append(pairs, field+": "+text)
	}

	if len(pairs) == 0 {
		return title
	}
	return strings.Join(pairs, " | ")
}

// stringify renders a decoded JSON scalar or composite as display text.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
