package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

// Detector names the dominant language of a text. The language models are
// loaded on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewDetector constructs a lazy detector over all supported languages.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the English name of the language, e.g. "German".
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return language.String(), true
}

var _ summarizer.LanguageDetector = (*Detector)(nil)
