package model

// BoundingBox is an axis-aligned pixel rectangle
type BoundingBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the exclusive right edge
func (b BoundingBox) Right() int { return b.X + b.W }

// Bottom returns the exclusive bottom edge
func (b BoundingBox) Bottom() int { return b.Y + b.H }

// Union returns the smallest box containing both boxes
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	x1, y1 := min(b.X, o.X), min(b.Y, o.Y)
	x2, y2 := max(b.Right(), o.Right()), max(b.Bottom(), o.Bottom())
	return BoundingBox{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// OCRToken is one recognized word as emitted by the OCR engine
type OCRToken struct {
	Text       string
	Confidence float64
	BlockIndex int
	LineIndex  int
	Box        BoundingBox
}

// TextLine is a reconstructed line of text with the union box of its tokens
type TextLine struct {
	Text string `json:"text"`
	BoundingBox
}

// ImageSize holds source image pixel dimensions
type ImageSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// OCRResult is the output of line reconstruction
type OCRResult struct {
	Lines     []TextLine `json:"boxes"`
	FullText  string     `json:"full_text"`
	ImageSize ImageSize  `json:"image_size"`
}

// ImageAnalysis is the full response of the image path
type ImageAnalysis struct {
	ExtractedText  string     `json:"extracted_text"`
	SimplifiedText string     `json:"simplified_text"`
	Actions        []string   `json:"actions"`
	FullText       string     `json:"full_text"`
	ImageSize      ImageSize  `json:"image_size"`
	Boxes          []TextLine `json:"boxes"`
	ActionBoxes    []TextLine `json:"action_boxes"`
}
