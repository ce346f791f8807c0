package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const testUA = "PlainSpeak/0.1 (+https://github.com/ppiankov/plainspeak)"

func robotsServer(t *testing.T, body string, status int, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestRobotsChecker_Disallow(t *testing.T) {
	server := robotsServer(t, "User-agent: PlainSpeak\nDisallow: /private\nCrawl-delay: 2\n", http.StatusOK, nil)
	defer server.Close()

	checker := NewRobotsChecker(server.Client(), testUA)

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/private/notice")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if allowed {
		t.Error("Expected /private to be disallowed")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}

	allowed, _, _ = checker.CanFetch(context.Background(), server.URL+"/public/notice")
	if !allowed {
		t.Error("Expected /public to be allowed")
	}
}

func TestRobotsChecker_OtherAgentRulesIgnored(t *testing.T) {
	server := robotsServer(t, "User-agent: BadBot\nDisallow: /\n", http.StatusOK, nil)
	defer server.Close()

	checker := NewRobotsChecker(server.Client(), testUA)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/notice")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected rules for another agent not to apply")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := robotsServer(t, "", http.StatusNotFound, nil)
	defer server.Close()

	checker := NewRobotsChecker(server.Client(), testUA)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected missing robots.txt to allow")
	}
}

func TestRobotsChecker_CachesPerOrigin(t *testing.T) {
	var hits int32
	server := robotsServer(t, "User-agent: *\nDisallow:\n", http.StatusOK, &hits)
	defer server.Close()

	checker := NewRobotsChecker(server.Client(), testUA)
	for i := 0; i < 3; i++ {
		_, _, _ = checker.CanFetch(context.Background(), server.URL+"/page")
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", got)
	}

	checker.Clear()
	_, _, _ = checker.CanFetch(context.Background(), server.URL+"/page")
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("Expected refetch after Clear, got %d fetches", got)
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker(&http.Client{Timeout: time.Second}, testUA)

	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected unreachable robots.txt to allow")
	}
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	checker := NewRobotsChecker(nil, testUA)
	if _, _, err := checker.CanFetch(context.Background(), "/relative"); err == nil {
		t.Error("Expected error for URL without host")
	}
}

func TestProductToken(t *testing.T) {
	tests := map[string]string{
		testUA:     "PlainSpeak",
		"curl/8.0": "curl",
		"":         "",
		"Bare":     "Bare",
	}
	for in, want := range tests {
		if got := ProductToken(in); got != want {
			t.Errorf("ProductToken(%q): expected %q, got %q", in, want, got)
		}
	}
}
