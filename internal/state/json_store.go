package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// jsonFileStore persists state as a single pretty-printed JSON document.
type jsonFileStore struct {
	path string
}

// Load reads the state file. A missing file or a document of the wrong shape
// is a cold start: the store returns an empty mapping rather than failing.
// Entries whose value is not a string list are dropped.
func (s *jsonFileStore) Load() (map[string][]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string][]string{}, nil
	}

	parsed := make(map[string][]string, len(doc))
	for name, value := range doc {
		list, ok := value.([]any)
		if !ok {
			continue
		}
		items := make([]string, 0, len(list))
		for _, v := range list {
			if str, ok := v.(string); ok {
				items = append(items, str)
			}
		}
		parsed[name] = items
	}
	return parsed, nil
}

// Save writes the full mapping through a temp file and rename so readers
// never observe a partial write.
func (s *jsonFileStore) Save(state map[string][]string) error {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *jsonFileStore) Close() error { return nil }
