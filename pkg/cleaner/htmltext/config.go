// Package htmltext provides an HTML-to-plain-text cleaner for portal content.
// It parses the markup, drops non-content elements, and normalizes the
// remaining text so it can feed training data pipelines. When the input is
// too broken to parse it falls back to tag stripping so cleaning never fails.
package htmltext

// Config defines the configuration options for the htmltext cleaner.
type Config struct {
	// RemoveSelectors is a list of CSS selectors removed before text extraction.
	RemoveSelectors []string `json:"remove_selectors"`

	// CollapseWhitespace normalizes runs of whitespace to single spaces.
	CollapseWhitespace bool `json:"collapse_whitespace"`

	// TrimOutput trims leading/trailing whitespace from the final text.
	TrimOutput bool `json:"trim_output"`

	// UnescapeEntities decodes HTML entities that survive extraction,
	// including double-escaped ones such as &amp;nbsp;.
	UnescapeEntities bool `json:"unescape_entities"`
}

// DefaultConfig returns the configuration used for portal exports.
// Scripts and styles never contain prose, so they are always dropped.
func DefaultConfig() *Config {
	return &Config{
		RemoveSelectors:    []string{"script", "style"},
		CollapseWhitespace: true,
		TrimOutput:         true,
		UnescapeEntities:   true,
	}
}
