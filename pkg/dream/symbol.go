package dream

import (
	"regexp"

	"github.com/tabir/tabir/internal/turkish"
)

// symbolPatterns are matched in order against the title, most specific
// first. Reordering changes which token wins on ambiguous titles like
// "Rüyada Yılan Görmek Ne Anlama Gelir", so the order is fixed.
// \w is ASCII-only in Go regexp, hence the explicit Unicode classes.
var symbolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Rüyada\s+([\p{L}\p{N}_]+)\s+Görmek`),
	regexp.MustCompile(`(?i)Rüyada\s+([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`(?i)([\p{L}\p{N}_]+)\s+Görmek`),
}

// symbolStoplist holds generic title words that are never dream symbols.
// A stoplisted match falls through to the next pattern.
var symbolStoplist = map[string]bool{
	"ne":     true,
	"nedir":  true,
	"anlama": true,
	"gelir":  true,
	"neye":   true,
}

// ExtractSymbol extracts the main dream symbol from a title, lowercased
// with Turkish casing rules. It returns the first pattern capture whose
// value is not stoplisted, or an empty string when no pattern yields a
// usable token.
func ExtractSymbol(title string) string {
	if title == "" {
		return ""
	}

	for _, pattern := range symbolPatterns {
		match := pattern.FindStringSubmatch(title)
		if match == nil {
			continue
		}
		symbol := turkish.Lower(match[1])
		if !symbolStoplist[symbol] {
			return symbol
		}
	}

	return ""
}
