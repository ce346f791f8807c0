package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/plainspeak/internal/model"
)

func TestKey(t *testing.T) {
	a := Key("analysis", "ab", "c")
	b := Key("analysis", "a", "bc")
	if a == b {
		t.Error("Expected different keys for different part boundaries")
	}
	if a != Key("analysis", "ab", "c") {
		t.Error("Expected stable keys")
	}
	if !strings.HasPrefix(a, "plainspeak:v1:analysis:") {
		t.Errorf("Unexpected key format: %s", a)
	}
	if Key("summary", "ab", "c") == a {
		t.Error("Expected kind to be part of the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss")
	}

	_ = c.Set("k", []byte("v"), 0)
	if v, ok := c.Get("k"); !ok || string(v) != "v" {
		t.Errorf("Expected hit with 'v', got %q (%v)", v, ok)
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := Key("analysis", "text")

	if err := c.Set(key, []byte(`{"summary":"x"}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok := c.Get(key)
	if !ok || string(v) != `{"summary":"x"}` {
		t.Errorf("Expected hit, got %q (%v)", v, ok)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || strings.Contains(entries[0].Name(), ":") {
		t.Errorf("Expected one portable cache file, got %v", entries)
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("Expected deleting a missing key to succeed, got %v", err)
	}
}

func TestDiskCache_ExpiredAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	_ = c.Set("old", []byte("v"), -time.Second)
	if _, ok := c.Get("old"); ok {
		t.Error("Expected expired entry to miss")
	}

	_ = os.WriteFile(filepath.Join(dir, "bad.cache"), []byte("{not json"), 0o600)
	if _, ok := c.Get("bad"); ok {
		t.Error("Expected corrupt entry to miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.cache")); !os.IsNotExist(err) {
		t.Error("Expected corrupt entry to be removed")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	// Write through a separate disk cache so only disk has it
	_ = NewDiskCache(dir, time.Hour).Set("k", []byte("v"), 0)

	if v, ok := c.Get("k"); !ok || string(v) != "v" {
		t.Fatalf("Expected disk hit, got %q (%v)", v, ok)
	}
	if v, ok := c.memory.Get("k"); !ok || string(v) != "v" {
		t.Error("Expected value promoted to memory")
	}

	if err := c.Clear(); err != nil {
		t.Errorf("Clear failed: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after clear")
	}
}

func TestJSONHelpers(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	in := model.AnalysisResult{Summary: "short", Contradictions: []string{}}

	if err := SetJSON(c, "r", in, 0); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var out model.AnalysisResult
	if !GetJSON(c, "r", &out) {
		t.Fatal("Expected GetJSON hit")
	}
	if out.Summary != "short" {
		t.Errorf("Expected summary 'short', got %q", out.Summary)
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(model.CacheConfig{Enabled: false}).(Noop); !ok {
		t.Error("Expected Noop when disabled")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}).(*MemoryCache); !ok {
		t.Error("Expected MemoryCache without a directory")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("Expected LayeredCache with a directory")
	}
}
