// Package cleaner provides interfaces and implementations for cleaning HTML content.
// Cleaners transform raw portal HTML into plain text suitable for training data.
package cleaner

// Cleaner transforms HTML content into a cleaner format.
// The default implementation extracts plain text, dropping markup and noise.
type Cleaner interface {
	// Clean transforms the input HTML into a cleaned format.
	// The output format depends on the implementation (plain text, etc.).
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
