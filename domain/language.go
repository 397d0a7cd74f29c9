// Package domain defines the core domain models for the bot.
package domain

// DefaultLanguage is assigned to a session on first contact.
const DefaultLanguage = "en"

// LanguageInfo describes one supported language.
type LanguageInfo struct {
	Code  string
	Name  string
	Label string // correction label used in completion prompts and replies
}

// languages is the closed set of supported languages. Codes are ISO 639-1.
var languages = map[string]LanguageInfo{
	"en": {Code: "en", Name: "English", Label: "Correction:"},
	"es": {Code: "es", Name: "Spanish", Label: "Corrección:"},
	"fr": {Code: "fr", Name: "French", Label: "Correction:"},
	"de": {Code: "de", Name: "German", Label: "Korrektur:"},
	"it": {Code: "it", Name: "Italian", Label: "Correzione:"},
	"ru": {Code: "ru", Name: "Russian", Label: "Исправление:"},
}

// languageOrder fixes the display order of the supported set.
var languageOrder = []string{"en", "es", "fr", "de", "it", "ru"}

// IsSupported reports whether code is a member of the supported set.
func IsSupported(code string) bool {
	_, ok := languages[code]
	return ok
}

// LanguageName returns the display name for code, or the code itself when
// it is not supported.
func LanguageName(code string) string {
	if info, ok := languages[code]; ok {
		return info.Name
	}
	return code
}

// CorrectionLabel returns the correction label for code, falling back to
// the English label for unknown codes.
func CorrectionLabel(code string) string {
	if info, ok := languages[code]; ok {
		return info.Label
	}
	return languages[DefaultLanguage].Label
}

// LanguageCodes returns the supported codes in display order.
func LanguageCodes() []string {
	codes := make([]string, len(languageOrder))
	copy(codes, languageOrder)
	return codes
}
