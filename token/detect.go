package token

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DetectLanguage returns the lower-cased language name for filename, using
// content when the extension is ambiguous. It returns "" when unknown.
func DetectLanguage(filename string, content []byte) string {
	lang := enry.GetLanguage(filename, content)
	return strings.ToLower(lang)
}
