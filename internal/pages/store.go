// Package pages archives pages produced by the generate-page endpoint.
package pages

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Page is one archived generation result.
type Page struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DataType    string          `json:"data_type"`
	Title       string          `json:"title,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	SavedAt     time.Time       `json:"saved_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// Store persists generated pages keyed by name.
type Store interface {
	Close() error
	Save(p Page) (Page, error)
	Get(name string) (Page, bool, error)
	List() ([]Page, error)
	Delete(name string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	PageTTL         time.Duration
	CleanupInterval time.Duration
}

// ErrStorageDisabled is returned by Save when no archive backend is configured.
var ErrStorageDisabled = errors.New("page storage is disabled")

const (
	defaultPageTTL         = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// CheckType reports whether typ names a supported backend and has the settings
// it needs, without opening anything.
func CheckType(typ, path string) error {
	switch strings.TrimSpace(strings.ToLower(typ)) {
	case "", "none", "disabled":
		return nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("bbolt storage requires a path")
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage type %q", typ)
	}
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	if err := CheckType(typ, path); err != nil {
		return nil, err
	}
	if strings.TrimSpace(strings.ToLower(typ)) != "bbolt" {
		return noopStore{}, nil
	}
	return openBolt(path, normalizeOptions(opts))
}

// NewPage builds an archive record from a generate-page result, extracting a
// title and summary when the payload carries HTML.
func NewPage(name, description, dataType string, payload any) (Page, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Page{}, fmt.Errorf("page name is required")
	}
	raw, err := encodeJSON(payload)
	if err != nil {
		return Page{}, fmt.Errorf("encode page payload: %w", err)
	}

	p := Page{
		Name:        name,
		Description: description,
		DataType:    dataType,
		Payload:     raw,
	}
	if html := findHTML(payload); html != "" {
		meta, err := parseMeta([]byte(html))
		if err == nil {
			p.Title = meta.Title
			p.Summary = meta.Description
		}
	}
	return p, nil
}

// encodeJSON marshals v without escaping <, > and &, so stored markup reads
// back byte for byte.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func normalizeOptions(opts Options) Options {
	if opts.PageTTL <= 0 {
		opts.PageTTL = defaultPageTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                   { return nil }
func (noopStore) Save(p Page) (Page, error)      { return p, ErrStorageDisabled }
func (noopStore) Get(string) (Page, bool, error) { return Page{}, false, nil }
func (noopStore) List() ([]Page, error)          { return nil, nil }
func (noopStore) Delete(string) error            { return nil }
