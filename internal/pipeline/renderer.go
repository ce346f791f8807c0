package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/ppiankov/plainspeak/internal/model"
	"github.com/ppiankov/plainspeak/internal/sources"
)

// Renderer writes results as JSON or Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes v as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// AnalysisMarkdown writes an analysis report
func (r *Renderer) AnalysisMarkdown(w io.Writer, title string, res *model.AnalysisResult) error {
	if title == "" {
		title = model.DocumentTitle
	}
	md := markdown.NewMarkdown(w)

	md.H1(title)
	md.PlainText("")

	for _, warning := range res.Warnings {
		md.Warningf("%s", warning)
	}

	md.H2("Summary")
	md.PlainText("")
	md.PlainText(res.Summary)
	md.PlainText("")

	writeBullets(md, "Key points", res.Bullets)
	writeBullets(md, "Pros", res.Pros)
	writeBullets(md, "Cons", res.Cons)

	if len(res.Actions) > 0 {
		md.H2("What you need to do")
		md.PlainText("")
		rows := make([][]string, 0, len(res.Actions))
		for _, a := range res.Actions {
			due := "-"
			if a.Due != nil {
				due = *a.Due
			}
			rows = append(rows, []string{escapeCell(a.Text), due})
		}
		md.Table(markdown.TableSet{Header: []string{"Action", "Due"}, Rows: rows})
		md.PlainText("")
	}

	if len(res.Stakeholders) > 0 {
		md.H2("Who is involved")
		md.PlainText("")
		items := make([]string, 0, len(res.Stakeholders))
		for _, s := range res.Stakeholders {
			items = append(items, fmt.Sprintf("%s (%s)", s.Name, s.Role))
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	md.H2("Sources")
	md.PlainText("")
	rows := make([][]string, 0, len(res.Sources))
	for _, s := range res.Sources {
		link := s.Title
		if s.URL != nil {
			link = fmt.Sprintf("[%s](%s)", escapeCell(s.Title), *s.URL)
		}
		rows = append(rows, []string{s.ID, link, s.Authority.String()})
	}
	md.Table(markdown.TableSet{Header: []string{"ID", "Source", "Authority"}, Rows: rows})
	md.PlainText("")

	r.footer(md, res.SummarySource)
	return md.Build()
}

// SimplifyMarkdown writes a simplification result
func (r *Renderer) SimplifyMarkdown(w io.Writer, res *model.SimplifyResult) error {
	md := markdown.NewMarkdown(w)

	md.H1("Plain-language version")
	md.PlainText("")
	md.PlainText(res.SimplifiedText)
	md.PlainText("")

	if res.TranslatedText != nil {
		md.H2("Translation (" + res.TargetLang + ")")
		md.PlainText("")
		md.PlainText(*res.TranslatedText)
		md.PlainText("")
	}

	if len(res.Actions) > 0 {
		md.H2("What you need to do")
		md.PlainText("")
		md.BulletList(res.Actions...)
		md.PlainText("")
	}

	rows := [][]string{
		{"Target grade", strconv.Itoa(res.TargetGrade)},
		{"Words before", strconv.Itoa(res.Readability.Before)},
		{"Words after", strconv.Itoa(res.Readability.After)},
	}
	if res.Language != "" {
		rows = append(rows, []string{"Detected language", res.Language})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	r.footer(md, res.SimplificationType)
	return md.Build()
}

// ImageMarkdown writes an image analysis
func (r *Renderer) ImageMarkdown(w io.Writer, res *model.ImageAnalysis) error {
	md := markdown.NewMarkdown(w)

	md.H1("Image text")
	md.PlainText("")
	md.PlainTextf("Image size: %dx%d, %d lines recognized", res.ImageSize.W, res.ImageSize.H, len(res.Boxes))
	md.PlainText("")

	md.H2("Plain-language version")
	md.PlainText("")
	md.PlainText(res.SimplifiedText)
	md.PlainText("")

	if len(res.ActionBoxes) > 0 {
		md.H2("Action lines")
		md.PlainText("")
		rows := make([][]string, 0, len(res.ActionBoxes))
		for _, b := range res.ActionBoxes {
			rows = append(rows, []string{
				escapeCell(b.Text),
				fmt.Sprintf("%d,%d %dx%d", b.X, b.Y, b.W, b.H),
			})
		}
		md.Table(markdown.TableSet{Header: []string{"Line", "Box"}, Rows: rows})
		md.PlainText("")
	}

	if res.FullText != "" {
		md.H2("Recognized text")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, res.FullText)
		md.PlainText("")
	}

	r.footer(md, "ocr")
	return md.Build()
}

// SourcesMarkdown writes a curated reading list
func (r *Renderer) SourcesMarkdown(w io.Writer, res sources.Result, status []sources.LinkStatus) error {
	md := markdown.NewMarkdown(w)

	heading := "Further reading"
	if res.Topic != "" {
		heading += ": " + res.Topic
	}
	md.H1(heading)
	md.PlainText("")

	reach := make(map[string]sources.LinkStatus, len(status))
	for _, s := range status {
		reach[s.URL] = s
	}

	header := []string{"Source", "Authority", "Summary"}
	if len(status) > 0 {
		header = append(header, "Reachable")
	}
	rows := make([][]string, 0, len(res.Sources))
	for _, e := range res.Sources {
		row := []string{
			fmt.Sprintf("[%s](%s)", escapeCell(e.Title), e.URL),
			e.Authority.String(),
			escapeCell(e.Summary),
		}
		if len(status) > 0 {
			row = append(row, reachability(reach[e.URL]))
		}
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")

	r.footer(md, "")
	return md.Build()
}

// HistoryMarkdown writes history items, newest first as given
func (r *Renderer) HistoryMarkdown(w io.Writer, items []model.HistoryItem) error {
	md := markdown.NewMarkdown(w)

	md.H1("History")
	md.PlainText("")

	if len(items) == 0 {
		md.Note("No history yet.")
		return md.Build()
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Timestamp.Format("2006-01-02 15:04"),
			it.Type,
			escapeCell(it.OriginalText),
			strconv.Itoa(len(it.Actions)),
		})
	}
	md.Table(markdown.TableSet{Header: []string{"When", "Type", "Original", "Actions"}, Rows: rows})
	md.PlainText("")

	return md.Build()
}

func (r *Renderer) footer(md *markdown.Markdown, method string) {
	if !r.includeFooter {
		return
	}
	md.HorizontalRule()
	md.PlainText("")
	if method != "" {
		md.PlainTextf("*Generated by PlainSpeak (%s). Check the original document before acting on it.*", method)
		return
	}
	md.PlainText("*Generated by PlainSpeak.*")
}

func writeBullets(md *markdown.Markdown, heading string, items []model.Bullet) {
	if len(items) == 0 {
		return
	}
	md.H2(heading)
	md.PlainText("")
	texts := make([]string, 0, len(items))
	for _, b := range items {
		texts = append(texts, b.Text)
	}
	md.BulletList(texts...)
	md.PlainText("")
}

func reachability(s sources.LinkStatus) string {
	switch {
	case s.URL == "":
		return "-"
	case s.Reachable:
		return "yes"
	case s.Dead:
		return "dead"
	default:
		return "no"
	}
}

// escapeCell keeps table cells on one line and escapes pipes
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
