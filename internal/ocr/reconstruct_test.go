package ocr

import (
	"reflect"
	"testing"

	"github.com/ppiankov/plainspeak/internal/model"
)

func tok(text string, conf float64, block, line, x, y, w, h int) model.OCRToken {
	return model.OCRToken{
		Text: text, Confidence: conf, BlockIndex: block, LineIndex: line,
		Box: model.BoundingBox{X: x, Y: y, W: w, H: h},
	}
}

func TestReconstruct_GroupsByKeyAndUnionsBoxes(t *testing.T) {
	tokens := []model.OCRToken{
		tok("Hello", 95, 1, 1, 10, 12, 50, 20),
		tok("world", 90, 1, 1, 70, 10, 60, 24),
	}

	res := Reconstruct(tokens, model.ImageSize{W: 800, H: 600})

	if len(res.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(res.Lines))
	}
	line := res.Lines[0]
	if line.Text != "Hello world" {
		t.Errorf("Expected 'Hello world', got %q", line.Text)
	}
	want := model.BoundingBox{X: 10, Y: 10, W: 120, H: 24}
	if line.BoundingBox != want {
		t.Errorf("Expected box %+v, got %+v", want, line.BoundingBox)
	}
	if res.ImageSize != (model.ImageSize{W: 800, H: 600}) {
		t.Errorf("Expected image size passed through, got %+v", res.ImageSize)
	}
}

func TestReconstruct_DropsBlankAndNegativeConfidence(t *testing.T) {
	tokens := []model.OCRToken{
		tok("   ", 90, 1, 1, 0, 0, 10, 10),
		tok("noise", -1, 1, 1, 500, 0, 10, 10),
		tok("Keep", 80, 1, 1, 20, 0, 30, 10),
		tok("", 99, 2, 1, 0, 50, 10, 10),
	}

	res := Reconstruct(tokens, model.ImageSize{})

	if len(res.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %+v", len(res.Lines), res.Lines)
	}
	if res.Lines[0].Text != "Keep" {
		t.Errorf("Expected 'Keep', got %q", res.Lines[0].Text)
	}
	if res.Lines[0].X != 20 || res.Lines[0].W != 30 {
		t.Errorf("Expected box from kept token only, got %+v", res.Lines[0].BoundingBox)
	}
}

func TestReconstruct_SortsByTopThenLeft(t *testing.T) {
	// Engine numbering deliberately disagrees with visual order
	tokens := []model.OCRToken{
		tok("Footer", 90, 1, 1, 10, 500, 40, 10),
		tok("Right", 90, 2, 1, 300, 100, 40, 10),
		tok("Title", 90, 3, 1, 10, 20, 40, 10),
		tok("Left", 90, 4, 1, 10, 100, 40, 10),
	}

	res := Reconstruct(tokens, model.ImageSize{W: 400, H: 600})

	var got []string
	for _, l := range res.Lines {
		got = append(got, l.Text)
	}
	want := []string{"Title", "Left", "Right", "Footer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %q, got %q", want, got)
	}
	if res.FullText != "Title\nLeft\nRight\nFooter" {
		t.Errorf("Unexpected full text: %q", res.FullText)
	}

	for i := 1; i < len(res.Lines); i++ {
		prev, cur := res.Lines[i-1], res.Lines[i]
		if prev.Y > cur.Y || (prev.Y == cur.Y && prev.X > cur.X) {
			t.Errorf("Lines %d and %d out of order: %+v, %+v", i-1, i, prev, cur)
		}
	}
}

func TestReconstruct_SameKeyNonContiguousTokens(t *testing.T) {
	tokens := []model.OCRToken{
		tok("Pay", 90, 1, 1, 10, 10, 30, 10),
		tok("Other", 90, 1, 2, 10, 40, 30, 10),
		tok("now", 90, 1, 1, 50, 10, 30, 10),
	}

	res := Reconstruct(tokens, model.ImageSize{})

	if len(res.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(res.Lines))
	}
	if res.Lines[0].Text != "Pay now" {
		t.Errorf("Expected tokens joined in emission order, got %q", res.Lines[0].Text)
	}
}

func TestReconstruct_TrimsTokenText(t *testing.T) {
	res := Reconstruct([]model.OCRToken{
		tok(" Sign ", 90, 1, 1, 0, 0, 10, 10),
		tok("here\n", 90, 1, 1, 20, 0, 10, 10),
	}, model.ImageSize{})

	if res.Lines[0].Text != "Sign here" {
		t.Errorf("Expected trimmed words, got %q", res.Lines[0].Text)
	}
}

func TestReconstruct_Empty(t *testing.T) {
	res := Reconstruct(nil, model.ImageSize{W: 1, H: 1})

	if len(res.Lines) != 0 || res.FullText != "" {
		t.Errorf("Expected empty result, got %+v", res)
	}
	if res.ImageSize.W != 1 {
		t.Errorf("Expected image size passed through")
	}
}

func TestActionBoxes(t *testing.T) {
	lines := []model.TextLine{
		{Text: "City of Springfield", BoundingBox: model.BoundingBox{Y: 0}},
		{Text: "Issued by County Clerk", BoundingBox: model.BoundingBox{Y: 10}},
		{Text: "Please sign and return", BoundingBox: model.BoundingBox{X: 5, Y: 20, W: 100, H: 12}},
		{Text: "Amount due: $40", BoundingBox: model.BoundingBox{Y: 40}},
	}

	boxes := ActionBoxes(lines)

	if len(boxes) != 2 {
		t.Fatalf("Expected 2 action lines, got %d: %+v", len(boxes), boxes)
	}
	if boxes[0].Text != "Please sign and return" || boxes[0].W != 100 {
		t.Errorf("Expected action line with its box, got %+v", boxes[0])
	}
	if boxes[1].Text != "Amount due: $40" {
		t.Errorf("Unexpected second action line: %+v", boxes[1])
	}
}
