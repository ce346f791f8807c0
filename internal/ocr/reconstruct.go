package ocr

import (
	"sort"
	"strings"

	"github.com/ppiankov/plainspeak/internal/extract"
	"github.com/ppiankov/plainspeak/internal/model"
)

// lineKey is the engine-assigned line identity
type lineKey struct {
	block int
	line  int
}

type lineAcc struct {
	words []string
	box   model.BoundingBox
}

// Reconstruct turns a batch of OCR word tokens into reading-order text lines.
//
// Tokens with blank text or negative confidence are dropped. Surviving tokens are
// grouped by (block, line) into lines whose box is the union of member boxes and whose
// text is the space-joined member text in emission order. Lines are then sorted by
// (top, left), since engines do not number lines in visual order.
func Reconstruct(tokens []model.OCRToken, size model.ImageSize) model.OCRResult {
	lines := sortLines(groupTokens(tokens))

	var texts []string
	for _, l := range lines {
		if l.Text != "" {
			texts = append(texts, l.Text)
		}
	}

	return model.OCRResult{
		Lines:     lines,
		FullText:  strings.Join(texts, "\n"),
		ImageSize: size,
	}
}

// groupTokens is the single accumulation pass. Lines come back in first-seen order.
func groupTokens(tokens []model.OCRToken) []model.TextLine {
	groups := make(map[lineKey]*lineAcc)
	var order []lineKey

	for _, tok := range tokens {
		text := strings.TrimSpace(tok.Text)
		if text == "" || tok.Confidence < 0 {
			continue
		}

		key := lineKey{block: tok.BlockIndex, line: tok.LineIndex}
		acc, ok := groups[key]
		if !ok {
			acc = &lineAcc{box: tok.Box}
			groups[key] = acc
			order = append(order, key)
		} else {
			acc.box = acc.box.Union(tok.Box)
		}
		acc.words = append(acc.words, text)
	}

	lines := make([]model.TextLine, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		lines = append(lines, model.TextLine{
			Text:        strings.TrimSpace(strings.Join(acc.words, " ")),
			BoundingBox: acc.box,
		})
	}
	return lines
}

// sortLines orders lines top-to-bottom, then left-to-right
func sortLines(lines []model.TextLine) []model.TextLine {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Y != lines[j].Y {
			return lines[i].Y < lines[j].Y
		}
		return lines[i].X < lines[j].X
	})
	return lines
}

var lineCue = extract.MustCompileCues(extract.LineActionCues)

// ActionBoxes returns the lines that carry an action cue, keeping their boxes
func ActionBoxes(lines []model.TextLine) []model.TextLine {
	var out []model.TextLine
	for _, l := range lines {
		if lineCue.MatchString(l.Text) {
			out = append(out, l)
		}
	}
	return out
}
