package model

import "time"

// History item types
const (
	HistoryTypeText  = "text"
	HistoryTypeImage = "image"
)

// HistoryItem records one past simplification
type HistoryItem struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	OriginalText   string    `json:"original_text"`
	SimplifiedText string    `json:"simplified_text"`
	Actions        []string  `json:"actions"`
	Type           string    `json:"type"`
}
