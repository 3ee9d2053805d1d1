package state

import (
	"fmt"
	"strings"
)

// Package state persists the last-seen item list per board between runs.

// Store loads and saves the board-name → item-list mapping. Load tolerates a
// missing or corrupt backing store by returning an empty mapping; Save
// replaces the persisted mapping wholesale.
type Store interface {
	Load() (map[string][]string, error)
	Save(state map[string][]string) error
	Close() error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "json":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("json state storage requires a path")
		}
		return &jsonFileStore{path: path}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt state storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported state storage type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Load() (map[string][]string, error) { return map[string][]string{}, nil }
func (noopStore) Save(map[string][]string) error     { return nil }
func (noopStore) Close() error                       { return nil }
