// Package dream processes Turkish dream interpretation records exported
// from a content portal. It cleans the portal HTML, extracts the dream
// symbol from each title, filters noisy tags, and validates that records
// carry enough domain vocabulary to be usable as training data.
package dream

import (
	"github.com/spf13/cast"
)

// RawRecord is one object from the portal's JSON export. The export is a
// MongoDB dump, so nested fields keep their extended-JSON shape
// ({"$oid": ...}, {"$date": ...}). Field access is lenient: missing or
// mistyped values come back as zero values and are handled downstream.
type RawRecord map[string]any

// ID returns the record's object id from the _id.$oid field.
func (r RawRecord) ID() string {
	return cast.ToString(cast.ToStringMap(r["_id"])["$oid"])
}

// Title returns the article title.
func (r RawRecord) Title() string {
	return cast.ToString(r["Title"])
}

// Description returns the article summary.
func (r RawRecord) Description() string {
	return cast.ToString(r["Description"])
}

// Text returns the raw HTML body.
func (r RawRecord) Text() string {
	return cast.ToString(r["Text"])
}

// Tags returns the tag list as loosely typed elements.
// Non-string elements are filtered out later.
func (r RawRecord) Tags() []any {
	return cast.ToSlice(r["Tags"])
}

// Properties returns the SEO property list in its raw shape.
func (r RawRecord) Properties() any {
	return r["Properties"]
}

// PublishDate returns the publish timestamp from the PublishDate.$date field.
func (r RawRecord) PublishDate() string {
	return cast.ToString(cast.ToStringMap(r["PublishDate"])["$date"])
}

// URL returns the canonical article URL.
func (r RawRecord) URL() string {
	return cast.ToString(r["Url"])
}

// CleanedRecord is the processed form of a RawRecord, ready for
// formatting into training examples. Lengths are rune counts.
type CleanedRecord struct {
	OriginalID     string   `json:"original_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	CleanedContent string   `json:"cleaned_content"`
	DreamSymbol    string   `json:"dream_symbol"`
	Tags           []string `json:"tags"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	OriginalLength int      `json:"original_length"`
	CleanedLength  int      `json:"cleaned_length"`
	PublishDate    string   `json:"publish_date"`
	URL            string   `json:"url"`
}
