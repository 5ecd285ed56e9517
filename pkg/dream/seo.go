package dream

import (
	"strings"

	"github.com/spf13/cast"
)

// SEOFields holds the metadata extracted from a record's property list.
type SEOFields struct {
	Title       string
	Description string
}

// ExtractSEO scans the portal's property list for seotitle/seodescription
// entries and returns the first non-empty trimmed value per field.
// Properties that are not a list yield empty fields, and malformed
// entries are skipped rather than treated as errors.
func ExtractSEO(properties any) SEOFields {
	var out SEOFields

	list, ok := properties.([]any)
	if !ok {
		return out
	}

	for _, entry := range list {
		prop, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name := strings.ToLower(cast.ToString(prop["IxName"]))
		value := strings.TrimSpace(cast.ToString(prop["Value"]))
		if value == "" {
			continue
		}

		switch name {
		case "seotitle":
			if out.Title == "" {
				out.Title = value
			}
		case "seodescription":
			if out.Description == "" {
				out.Description = value
			}
		}
	}

	return out
}
