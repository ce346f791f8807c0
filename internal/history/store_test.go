package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/plainspeak/internal/model"
)

func storeImplementations(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStore_AppendListNewestFirst(t *testing.T) {
	ctx := context.Background()

	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			for _, text := range []string{"first", "second", "third"} {
				if _, err := store.Append(ctx, NewItem(model.HistoryTypeText, text, text+".", []string{"Pay " + text})); err != nil {
					t.Fatalf("Append failed: %v", err)
				}
			}

			items, err := store.List(ctx, 0)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(items) != 3 {
				t.Fatalf("Expected 3 items, got %d", len(items))
			}
			if items[0].OriginalText != "third" || items[2].OriginalText != "first" {
				t.Errorf("Expected newest first, got %q, %q", items[0].OriginalText, items[2].OriginalText)
			}
			if len(items[0].Actions) != 1 || items[0].Actions[0] != "Pay third" {
				t.Errorf("Expected actions round-trip, got %v", items[0].Actions)
			}

			limited, _ := store.List(ctx, 2)
			if len(limited) != 2 || limited[0].OriginalText != "third" {
				t.Errorf("Expected 2 newest items, got %+v", limited)
			}
		})
	}
}

func TestStore_AssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			item, err := store.Append(ctx, NewItem(model.HistoryTypeImage, "scan", "No text found", nil))
			if err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if item.ID == "" {
				t.Error("Expected ID to be assigned")
			}
			if !item.Timestamp.Equal(fixed) {
				t.Errorf("Expected timestamp %v, got %v", fixed, item.Timestamp)
			}
			if item.Actions == nil {
				t.Error("Expected empty actions slice, got nil")
			}

			got, err := store.Get(ctx, item.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Type != model.HistoryTypeImage || !got.Timestamp.Equal(fixed) {
				t.Errorf("Unexpected item: %+v", got)
			}

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if _, err := store.Append(ctx, NewItem(model.HistoryTypeText, "kept", "kept.", nil)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	_ = store.Close()

	reopened, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	items, err := reopened.List(ctx, 0)
	if err != nil || len(items) != 1 || items[0].OriginalText != "kept" {
		t.Errorf("Expected persisted item, got %+v (%v)", items, err)
	}
}

func TestPreview(t *testing.T) {
	short := "short text"
	if Preview(short) != short {
		t.Errorf("Expected short text unchanged")
	}

	long := strings.Repeat("é", PreviewChars+10)
	p := Preview(long)
	if !strings.HasSuffix(p, "...") {
		t.Error("Expected ellipsis")
	}
	if n := len([]rune(strings.TrimSuffix(p, "..."))); n != PreviewChars {
		t.Errorf("Expected %d characters, got %d", PreviewChars, n)
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(model.HistoryConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("Open memory failed: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Expected MemoryStore, got %T", s)
	}

	s, err = Open(model.HistoryConfig{Backend: "sqlite", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open sqlite failed: %v", err)
	}
	_ = s.Close()

	if _, err := Open(model.HistoryConfig{Backend: "redis"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
