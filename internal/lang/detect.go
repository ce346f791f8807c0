// Package lang identifies the language of input documents.
package lang

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Supported are the languages offered for detection and translation targets
var Supported = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Chinese,
	lingua.Arabic,
	lingua.Hindi,
	lingua.Portuguese,
}

// minChars is the shortest input worth classifying
const minChars = 12

// Detector returns ISO 639-1 codes ("en", "es", ...) for text
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewDetector creates a detector. Language models load lazily on first use.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the lowercase ISO 639-1 code of the most likely language.
// Short or unrecognized text returns ("", false).
func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minChars {
		return "", false
	}

	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(Supported...).
			WithMinimumRelativeDistance(0.1).
			Build()
	})

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}

// IsSupported reports whether code names one of the Supported languages
func IsSupported(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, l := range Supported {
		if l.IsoCode639_1().String() == code {
			return true
		}
	}
	return false
}
