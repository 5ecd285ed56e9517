// Package turkish provides Turkish-aware text casing helpers.
//
// Plain strings.ToLower applies the Unicode default mappings, which fold
// the Turkish dotted İ and dotless I incorrectly (İ→i̇, I→i). The helpers
// here use the language-specific mappings from golang.org/x/text so that
// İ→i and I→ı, which keeps keyword and stoplist matching stable on
// Turkish content.
package turkish

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower returns s lowercased with Turkish casing rules.
func Lower(s string) string {
	// Casers are stateful, so build one per call rather than sharing.
	return cases.Lower(language.Turkish).String(s)
}

// Contains reports whether substr occurs in s, ignoring case under
// Turkish casing rules.
func Contains(s, substr string) bool {
	return strings.Contains(Lower(s), Lower(substr))
}
