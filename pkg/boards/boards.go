// Package boards loads and validates monitored board definitions (YAML/JSON).
package boards

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SourceTypeHTML = "html"
	SourceTypeJSON = "json"

	defaultMaxItems       = 20
	defaultMethod         = "GET"
	defaultJSONItemsKey   = "data"
	defaultJSONTitleKey   = "title"
	defaultFallbackMinLen = 6
	defaultFallbackMaxLen = 140
)

// Board describes one monitored source and its extraction strategy. Boards
// are validated on load and treated as read-only afterwards.
type Board struct {
	Name       string            `json:"name" yaml:"name"`
	URL        string            `json:"url" yaml:"url"`
	SourceType string            `json:"source_type" yaml:"source_type"`
	DataURL    string            `json:"data_url" yaml:"data_url"`
	Method     string            `json:"method" yaml:"method"`
	Payload    map[string]string `json:"payload" yaml:"payload"`

	// HTML extraction.
	ItemSelector  string `json:"item_selector" yaml:"item_selector"`
	TitleSelector string `json:"title_selector" yaml:"title_selector"`
	// Hyperlink text length bounds for the selector-less fallback scan.
	FallbackMinLen int `json:"fallback_min_len" yaml:"fallback_min_len"`
	FallbackMaxLen int `json:"fallback_max_len" yaml:"fallback_max_len"`

	// JSON extraction.
	JSONItemsKey  string   `json:"json_items_key" yaml:"json_items_key"`
	JSONTitleKey  string   `json:"json_title_key" yaml:"json_title_key"`
	JSONRowFields []string `json:"json_row_fields" yaml:"json_row_fields"`

	MaxItems int `json:"max_items" yaml:"max_items"`
}

// TargetURL returns the fetch target: data_url when set, else url.
func (b Board) TargetURL() string {
	if b.DataURL != "" {
		return b.DataURL
	}
	return b.URL
}

type configFile struct {
	Boards []Board `json:"boards" yaml:"boards"`
}

// Registry materializes board definitions loaded from a config file.
type Registry struct {
	boards []Board
	idx    map[string]Board
}

// All returns the boards in configuration order.
func (r *Registry) All() []Board {
	if r == nil || len(r.boards) == 0 {
		return nil
	}
	out := make([]Board, len(r.boards))
	copy(out, r.boards)
	return out
}

// ByName returns the board entry for the given name, if loaded.
func (r *Registry) ByName(name string) (Board, bool) {
	name = strings.TrimSpace(name)
	if r == nil || name == "" {
		return Board{}, false
	}
	b, ok := r.idx[name]
	return b, ok
}

// LoadRegistry loads the board registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("boards file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open boards file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read boards file: %w", err)
	}

	cfg, err := parseConfig(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(cfg.Boards) == 0 {
		return nil, errors.New("boards file contains no boards entries")
	}

	reg := &Registry{
		boards: make([]Board, len(cfg.Boards)),
		idx:    make(map[string]Board, len(cfg.Boards)),
	}

	for i := range cfg.Boards {
		b := sanitizeBoard(cfg.Boards[i])
		if err := validateBoard(b); err != nil {
			return nil, fmt.Errorf("boards[%d]: %w", i, err)
		}
		if _, exists := reg.idx[b.Name]; exists {
			return nil, fmt.Errorf("duplicate board name %q", b.Name)
		}
		reg.boards[i] = b
		reg.idx[b.Name] = b
	}

	return reg, nil
}

func parseConfig(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if cfg, err := unmarshalConfig(d.name, data, d.fn); err == nil {
			return cfg, nil
		}
	}

	return configFile{}, errors.New("boards file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalConfig(name string, data []byte, fn unmarshalFn) (configFile, error) {
	var cfg configFile
	if err := fn(data, &cfg); err != nil {
		return configFile{}, fmt.Errorf("decode %s boards: %w", name, err)
	}
	return cfg, nil
}

func sanitizeBoard(b Board) Board {
	b.Name = strings.TrimSpace(b.Name)
	b.URL = strings.TrimSpace(b.URL)
	b.SourceType = strings.ToLower(strings.TrimSpace(b.SourceType))
	b.DataURL = strings.TrimSpace(b.DataURL)
	b.Method = strings.ToUpper(strings.TrimSpace(b.Method))
	b.ItemSelector = strings.TrimSpace(b.ItemSelector)
	b.TitleSelector = strings.TrimSpace(b.TitleSelector)
	b.JSONItemsKey = strings.TrimSpace(b.JSONItemsKey)
	b.JSONTitleKey = strings.TrimSpace(b.JSONTitleKey)

	if b.SourceType == "" {
		b.SourceType = SourceTypeHTML
	}
	if b.Method == "" {
		b.Method = defaultMethod
	}
	if b.JSONItemsKey == "" {
		b.JSONItemsKey = defaultJSONItemsKey
	}
	if b.JSONTitleKey == "" {
		b.JSONTitleKey = defaultJSONTitleKey
	}
	if b.MaxItems <= 0 {
		b.MaxItems = defaultMaxItems
	}
	if b.FallbackMinLen <= 0 {
		b.FallbackMinLen = defaultFallbackMinLen
	}
	if b.FallbackMaxLen <= 0 {
		b.FallbackMaxLen = defaultFallbackMaxLen
	}

	if len(b.JSONRowFields) > 0 {
		fields := make([]string, 0, len(b.JSONRowFields))
		for _, f := range b.JSONRowFields {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		b.JSONRowFields = fields
	}

	return b
}

func validateBoard(b Board) error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.URL == "" {
		return fmt.Errorf("url is required for board %q", b.Name)
	}
	if b.SourceType != SourceTypeHTML && b.SourceType != SourceTypeJSON {
		return fmt.Errorf("unsupported source_type %q for board %q", b.SourceType, b.Name)
	}
	if b.FallbackMinLen > b.FallbackMaxLen {
		return fmt.Errorf("fallback_min_len exceeds fallback_max_len for board %q", b.Name)
	}
	return nil
}
