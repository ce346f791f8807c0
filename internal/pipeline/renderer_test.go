package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/sources"
)

func TestRenderer_AnalysisMarkdown(t *testing.T) {
	res, err := New().Analyze(context.Background(), allFeatures(notice, "https://www.city.gov/notice"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var buf bytes.Buffer
	if err := NewRenderer(true).AnalysisMarkdown(&buf, "Permit Notice", res); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Permit Notice",
		"## Summary",
		"## What you need to do",
		"March 5",
		"## Sources",
		"https://www.city.gov/notice",
		"primary",
		"Generated by PlainSpeak (extraction)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, out)
		}
	}
}

func TestRenderer_NoFooter(t *testing.T) {
	res, _ := New().Analyze(context.Background(), allFeatures(notice))

	var buf bytes.Buffer
	if err := NewRenderer(false).AnalysisMarkdown(&buf, "", res); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(buf.String(), "Generated by PlainSpeak") {
		t.Error("Expected no footer")
	}
	if !strings.Contains(buf.String(), "# Document") {
		t.Error("Expected default title")
	}
}

func TestRenderer_SimplifyMarkdown(t *testing.T) {
	translated := "Debe enviar el formulario."
	res := &model.SimplifyResult{
		SimplifiedText:     "You must send form 27B.",
		SimplificationType: "extraction",
		Actions:            []string{"You must send form 27B."},
		TranslatedText:     &translated,
		TargetLang:         "es",
		TargetGrade:        5,
		Language:           "en",
		Readability:        model.Readability{Before: 10, After: 5},
	}

	var buf bytes.Buffer
	if err := NewRenderer(true).SimplifyMarkdown(&buf, res); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Translation (es)", translated, "You must send form 27B.", "Detected language"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, out)
		}
	}
}

func TestRenderer_SourcesMarkdown(t *testing.T) {
	catalog := sources.DefaultCatalog(sources.NewAuthorityClassifier(nil))
	res := catalog.Lookup("climate")
	status := []sources.LinkStatus{{URL: "https://www.epa.gov/climatechange", Reachable: true}}

	var buf bytes.Buffer
	if err := NewRenderer(false).SourcesMarkdown(&buf, res, status); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Further reading: climate") {
		t.Errorf("Expected topic heading\n%s", out)
	}
	if !strings.Contains(out, "Reachable") || !strings.Contains(out, "yes") {
		t.Errorf("Expected reachability column\n%s", out)
	}
}

func TestRenderer_HistoryMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(false).HistoryMarkdown(&buf, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No history yet.") {
		t.Errorf("Expected empty note, got %q", buf.String())
	}

	buf.Reset()
	items := []model.HistoryItem{{
		Timestamp:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Type:         model.HistoryTypeText,
		OriginalText: "Pay the fee",
		Actions:      []string{"Pay the fee"},
	}}
	if err := NewRenderer(false).HistoryMarkdown(&buf, items); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "2026-03-01 09:30") || !strings.Contains(buf.String(), "Pay the fee") {
		t.Errorf("Unexpected history markdown:\n%s", buf.String())
	}
}

func TestRenderer_WriteJSON(t *testing.T) {
	res, _ := New().Analyze(context.Background(), allFeatures(notice, "https://www.city.gov/notice"))

	var buf bytes.Buffer
	if err := NewRenderer(false).WriteJSON(&buf, res); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	for _, key := range []string{"summary", "bullets", "pros", "cons", "stakeholders", "actions", "contradictions", "sources", "ts"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected key %q in JSON", key)
		}
	}
	src := decoded["sources"].([]any)[0].(map[string]any)
	if src["authority"] != "primary" {
		t.Errorf("Expected authority encoded by name, got %v", src["authority"])
	}
}
