package dream

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tabir/tabir/internal/turkish"
)

// tagNoisePattern matches site-branding and SEO artifacts that leak into
// the portal's tag lists.
var tagNoisePattern = regexp.MustCompile(`(?i)(seo|amp|milliyet|pembenar)`)

// genericTags are placeholder and umbrella tags that carry no signal.
var genericTags = map[string]bool{
	"1":    true,
	"2":    true,
	"3":    true,
	"ruya": true,
	"rüya": true,
}

// FilterTags normalizes and filters a raw tag list. Tags are trimmed and
// lowercased; empty, single-rune, noisy, and generic tags are dropped.
// Non-string elements are skipped. Relative order is preserved and the
// result is never nil, so it marshals as [] rather than null.
func FilterTags(tags []any) []string {
	cleaned := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag, ok := raw.(string)
		if !ok {
			continue
		}
		tag = turkish.Lower(strings.TrimSpace(tag))
		if tag == "" || utf8.RuneCountInString(tag) <= 1 {
			continue
		}
		if tagNoisePattern.MatchString(tag) || genericTags[tag] {
			continue
		}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}
