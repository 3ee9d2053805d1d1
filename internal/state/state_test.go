package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board_state.json")
	store, err := NewStore("json", path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	initial, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(initial) != 0 {
		t.Fatalf("expected empty state, got %v", initial)
	}

	want := map[string][]string{
		"security": {"Advisory A", "Advisory B"},
		"patch":    {},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
}

func TestJSONStoreCorruptFileIsColdStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board_state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewStore("json", path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("corrupt state should load as empty, got %v", got)
	}
}

func TestJSONStoreDropsWrongShapedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board_state.json")
	raw := `{"good": ["a", "b"], "bad": "scalar", "mixed": ["x", 5]}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewStore("json", path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got["good"], []string{"a", "b"}) {
		t.Fatalf("good entry = %v", got["good"])
	}
	if _, ok := got["bad"]; ok {
		t.Fatalf("scalar entry should be dropped")
	}
	if !reflect.DeepEqual(got["mixed"], []string{"x"}) {
		t.Fatalf("mixed entry = %v", got["mixed"])
	}
}

func TestBoltStoreRoundTripAndReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore("bbolt", path)
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	defer store.Close()

	first := map[string][]string{"a": {"one"}, "b": {"two"}}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Save replaces the mapping wholesale; board "b" must disappear.
	second := map[string][]string{"a": {"one", "fresh"}}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save replace: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("Load = %v, want %v", got, second)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Save(map[string][]string{"x": {"y"}}); err != nil {
		t.Fatalf("noop store Save: %v", err)
	}
	got, err := store.Load()
	if err != nil || len(got) != 0 {
		t.Fatalf("noop store Load = %v, %v", got, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", ""); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
