package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ppiankov/plainspeak/internal/history"
	"github.com/ppiankov/plainspeak/internal/model"
)

type analyzeBody struct {
	Text  string          `json:"text"`
	URLs  []string        `json:"urls"`
	Flags map[string]bool `json:"flags"`
}

type simplifyBody struct {
	Text        string `json:"text"`
	TargetLang  string `json:"target_lang"`
	TargetGrade int    `json:"target_grade"`
}

type sourcesBody struct {
	Topic string `json:"topic"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeBody
	if !s.decode(w, r, &body) {
		return
	}

	features := model.FeaturesFromFlags(body.Flags)
	req := model.AnalyzeRequest{
		Text:     s.plainText(body.Text),
		URLs:     body.URLs,
		Features: &features,
	}

	res, err := s.pipeline.Analyze(r.Context(), req)
	if errors.Is(err, model.ErrInput) {
		writeError(w, http.StatusBadRequest, "No text or urls provided")
		return
	}
	if err != nil {
		s.serverError(w, "analyze", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	var body simplifyBody
	if !s.decode(w, r, &body) {
		return
	}

	res, err := s.pipeline.Simplify(r.Context(), model.SimplifyRequest{
		Text:        s.plainText(body.Text),
		TargetLang:  body.TargetLang,
		TargetGrade: body.TargetGrade,
	})
	if errors.Is(err, model.ErrInput) {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}
	if err != nil {
		s.serverError(w, "simplify", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read image")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "Empty image")
		return
	}

	res, err := s.pipeline.AnalyzeImage(r.Context(), data)
	switch {
	case errors.Is(err, model.ErrInput):
		writeError(w, http.StatusBadRequest, "Could not read image")
	case err != nil:
		s.logger.Error("image analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := s.pipeline.History().List(r.Context(), limit)
	if err != nil {
		s.serverError(w, "history", err)
		return
	}
	if items == nil {
		items = []model.HistoryItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	items, err := s.pipeline.History().List(r.Context(), 0)
	if err != nil {
		s.serverError(w, "history export", err)
		return
	}

	name := fmt.Sprintf("plainspeak-history-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := history.ExportXLSX(w, items); err != nil {
		s.logger.Error("history export failed", "error", err)
	}
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	var body sourcesBody
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Lookup(body.Topic))
}

// decode reads a JSON body. An empty body decodes to the zero value.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

// plainText strips markup from pasted text; plain input passes through untouched
func (s *Server) plainText(text string) string {
	if !hasMarkup(text) {
		return text
	}
	return html.UnescapeString(s.policy.Sanitize(text))
}

// hasMarkup reports whether text contains a known HTML element, comment or doctype.
// Comparisons such as "income<limit and age>65" tokenize as unknown tags and do not count.
func hasMarkup(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				return true
			}
		case html.CommentToken, html.DoctypeToken:
			return true
		}
	}
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "server error: "+err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
