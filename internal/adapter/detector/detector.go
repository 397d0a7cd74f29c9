// Package detector provides language identification for inbound messages.
package detector

import (
	"errors"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// ErrUndetermined is returned when no supported language can be
// identified for a text.
var ErrUndetermined = errors.New("language could not be determined")

// Detector identifies the language of a text, restricted to the supported
// language set.
type Detector interface {
	// Detect returns the lower-case ISO 639-1 code of text's language.
	Detect(text string) (string, error)
}

// LinguaDetector implements Detector with lingua language models loaded
// only for the supported languages, so an unsupported language can never
// be reported.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// Ensure LinguaDetector implements Detector interface.
var _ Detector = (*LinguaDetector)(nil)

// NewLinguaDetector builds a detector over the six supported languages.
func NewLinguaDetector() *LinguaDetector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Italian,
			lingua.Russian,
		).
		Build()
	return &LinguaDetector{detector: d}
}

// Detect returns the ISO 639-1 code of text's language.
func (d *LinguaDetector) Detect(text string) (string, error) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrUndetermined
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
