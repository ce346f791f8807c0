package model

// SimplificationTypeExtraction marks output produced by the deterministic simplifier
const SimplificationTypeExtraction = "extraction"

// SimplifyResult is the output of a simplify request
type SimplifyResult struct {
	OriginalText       string      `json:"original_text"`
	SimplifiedText     string      `json:"simplified_text"`
	SimplificationType string      `json:"simplification_type"`
	Actions            []string    `json:"actions"`
	TranslatedText     *string     `json:"translated_text"`
	TargetLang         string      `json:"target_lang,omitempty"`
	TargetGrade        int         `json:"target_grade"`
	Language           string      `json:"language,omitempty"` // Detected source language (ISO 639-1)
	Readability        Readability `json:"readability"`
}

// Readability compares word counts before and after simplification
type Readability struct {
	Before int `json:"before"`
	After  int `json:"after"`
}
