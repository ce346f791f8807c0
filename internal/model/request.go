package model

// AnalyzeRequest is the input of a document analysis.
// Text may be empty when URLs are given; the pages are then fetched.
type AnalyzeRequest struct {
	Text     string    `json:"text"`
	URLs     []string  `json:"urls,omitempty"`
	Features *Features `json:"flags,omitempty"` // nil enables every classifier
}

// EffectiveFeatures resolves the request's feature toggles; a nil set means all enabled
func (r AnalyzeRequest) EffectiveFeatures() Features {
	if r.Features == nil {
		return DefaultFeatures()
	}
	return *r.Features
}

// SimplifyRequest is the input of a simplification. TargetGrade 0 means the configured default.
type SimplifyRequest struct {
	Text        string `json:"text"`
	TargetGrade int    `json:"target_grade,omitempty"`
	TargetLang  string `json:"target_lang,omitempty"`
}
