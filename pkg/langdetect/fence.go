// Package langdetect normalizes code fence info strings to language tags.
// It uses go-enry to resolve aliases and file extensions, so "golang",
// "go" and "Go" all map to the same tag.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const langBash = "bash"

// FenceLanguage returns the normalized language of a fence info string such
// as "go", "py title=x" or "JS". It returns "" for an empty info string and
// the lowercased first word when enry does not know it.
func FenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	word := strings.TrimPrefix(fields[0], "{.")
	word = strings.TrimSuffix(word, "}")

	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang)
	}
	if lang, ok := enry.GetLanguageByExtension("fence." + strings.ToLower(word)); ok {
		return normalize(lang)
	}
	return strings.ToLower(word)
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
