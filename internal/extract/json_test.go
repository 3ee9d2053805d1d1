package extract

import (
	"reflect"
	"testing"

	"github.com/samvad-hq/board-monitor/pkg/boards"
)

func jsonBoard(b boards.Board) boards.Board {
	b.SourceType = boards.SourceTypeJSON
	if b.JSONItemsKey == "" {
		b.JSONItemsKey = "data"
	}
	if b.JSONTitleKey == "" {
		b.JSONTitleKey = "title"
	}
	if b.MaxItems == 0 {
		b.MaxItems = 10
	}
	return b
}

func TestJSONExtractCountsDistinctTitlesOnly(t *testing.T) {
	raw := []byte(`{"data":[
		{"title":"X","sev":"high"},
		{"title":"X","sev":"low"},
		{"title":"Y"}
	]}`)
	board := jsonBoard(boards.Board{Name: "b"})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(res.Items, []string{"X", "Y"}) {
		t.Fatalf("Items = %v, want [X Y]", res.Items)
	}
	// Unlike the html item-selector path, duplicates do not inflate the total.
	if res.ExtractedTotal != 2 {
		t.Fatalf("ExtractedTotal = %d, want 2", res.ExtractedTotal)
	}
}

func TestJSONExtractNestedItemsKey(t *testing.T) {
	raw := []byte(`{"result":{"page":{"rows":[{"title":"Deep"}]}}}`)
	board := jsonBoard(boards.Board{Name: "b", JSONItemsKey: "result.page.rows"})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(res.Items, []string{"Deep"}) {
		t.Fatalf("Items = %v, want [Deep]", res.Items)
	}
}

func TestJSONExtractMissingPathYieldsEmptyResultNotError(t *testing.T) {
	cases := [][]byte{
		[]byte(`{"a":{}}`),
		[]byte(`{"a":null}`),
		[]byte(`{"a":{"b":"scalar"}}`),
		[]byte(`{"a":{"b":{"c":{"not":"a list"}}}}`),
	}
	board := jsonBoard(boards.Board{Name: "b", JSONItemsKey: "a.b.c"})

	for _, raw := range cases {
		res, err := NewJSONStrategy().Extract(raw, board)
		if err != nil {
			t.Fatalf("Extract(%s): %v", raw, err)
		}
		if len(res.Items) != 0 || res.ExtractedTotal != 0 {
			t.Fatalf("Extract(%s) = %+v, want empty", raw, res)
		}
	}
}

func TestJSONExtractMalformedPayloadFails(t *testing.T) {
	board := jsonBoard(boards.Board{Name: "b"})
	if _, err := NewJSONStrategy().Extract([]byte(`{"data":[`), board); err == nil {
		t.Fatalf("expected decode error for truncated payload")
	}
}

func TestJSONExtractSkipsUnusableRecords(t *testing.T) {
	raw := []byte(`{"data":[
		"not an object",
		{"other":"no title key"},
		{"title":null},
		{"title":"   "},
		{"title":"Kept"}
	]}`)
	board := jsonBoard(boards.Board{Name: "b"})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(res.Items, []string{"Kept"}) {
		t.Fatalf("Items = %v, want [Kept]", res.Items)
	}
	if res.ExtractedTotal != 1 {
		t.Fatalf("ExtractedTotal = %d, want 1", res.ExtractedTotal)
	}
}

func TestJSONExtractRowTextUsesConfiguredFieldsInOrder(t *testing.T) {
	raw := []byte(`{"data":[{"title":"Advisory","sev":"high","id":17,"ignored":"x"}]}`)
	board := jsonBoard(boards.Board{Name: "b", JSONRowFields: []string{"sev", "id", "missing"}})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := res.RowTextByTitle["Advisory"]; got != "sev: high | id: 17" {
		t.Fatalf("row text = %q", got)
	}
}

func TestJSONExtractRowTextDefaultsToAllFieldsSorted(t *testing.T) {
	raw := []byte(`{"data":[{"title":"T","b":"second","a":"first","empty":"","nil":null}]}`)
	board := jsonBoard(boards.Board{Name: "b"})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := res.RowTextByTitle["T"]; got != "a: first | b: second | title: T" {
		t.Fatalf("row text = %q", got)
	}
}

func TestJSONExtractRowTextFallsBackToTitle(t *testing.T) {
	raw := []byte(`{"data":[{"title":"Lonely","extra":null}]}`)
	board := jsonBoard(boards.Board{Name: "b", JSONRowFields: []string{"extra"}})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := res.RowTextByTitle["Lonely"]; got != "Lonely" {
		t.Fatalf("row text = %q, want title fallback", got)
	}
}

func TestJSONExtractTruncatesToMaxItems(t *testing.T) {
	raw := []byte(`{"data":[{"title":"1"},{"title":"22"},{"title":"333"},{"title":"4444"}]}`)
	board := jsonBoard(boards.Board{Name: "b", MaxItems: 2})

	res, err := NewJSONStrategy().Extract(raw, board)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(res.Items, []string{"1", "22"}) {
		t.Fatalf("Items = %v", res.Items)
	}
	if res.ExtractedTotal != 4 {
		t.Fatalf("ExtractedTotal = %d, want 4 (distinct before cap)", res.ExtractedTotal)
	}
	if len(res.RowTextByTitle) != 2 {
		t.Fatalf("row map should be restricted to kept titles, got %v", res.RowTextByTitle)
	}
}

func TestResolvePath(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": map[string]any{"c": []any{1.0, 2.0}}}}

	got, ok := resolvePath(data, "a.b.c").([]any)
	if !ok || len(got) != 2 {
		t.Fatalf("resolvePath(a.b.c) = %v", got)
	}
	if resolvePath(data, "a.x.c") != nil {
		t.Fatalf("missing intermediate should resolve to nil")
	}
	if resolvePath("scalar", "a") != nil {
		t.Fatalf("non-object root should resolve to nil")
	}
}

func TestStringifyScalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"text", "text"},
		{true, "true"},
		{float64(17), "17"},
		{float64(3.5), "3.5"},
	}
	for _, c := range cases {
		if got := stringify(c.in); got != c.want {
			t.Fatalf("stringify(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
