// Package history keeps a record of past simplifications.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/plainspeak/internal/model"
)

// ErrNotFound is returned by Get for unknown IDs
var ErrNotFound = errors.New("history item not found")

// PreviewChars is how much original text a history item keeps
const PreviewChars = 200

// Store is an append-only log of history items
type Store interface {
	// Append stores an item, assigning ID and Timestamp when unset
	Append(ctx context.Context, item model.HistoryItem) (model.HistoryItem, error)

	// List returns up to limit items, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]model.HistoryItem, error)

	// Get returns one item by ID
	Get(ctx context.Context, id string) (model.HistoryItem, error)

	Close() error
}

// Open creates the store selected by cfg.Backend
func Open(cfg model.HistoryConfig) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLite(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown history backend: %s (supported: memory, sqlite)", cfg.Backend)
	}
}

// NewItem builds a history item; the original text is cut to PreviewChars
func NewItem(kind, original, simplified string, actions []string) model.HistoryItem {
	return model.HistoryItem{
		OriginalText:   Preview(original),
		SimplifiedText: simplified,
		Actions:        actions,
		Type:           kind,
	}
}

// Preview returns the first PreviewChars characters of s, with "..." when cut
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= PreviewChars {
		return s
	}
	return string([]rune(s)[:PreviewChars]) + "..."
}

// now is replaced in tests
var now = time.Now

func stamp(item model.HistoryItem) model.HistoryItem {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = now().UTC()
	}
	if item.Actions == nil {
		item.Actions = []string{}
	}
	return item
}
