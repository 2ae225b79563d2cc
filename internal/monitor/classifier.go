package monitor

import (
	"strings"

	"github.com/JOBrien987/ProcessRoaster/internal/meta"
)

// Classifier flags processes whose identity matches a configured keyword
// list. Matching is plain case-insensitive substring containment over the
// process name and its resolved metadata; the keyword list is configuration
// data, not derived at runtime.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a classifier. Keywords are lowercased and blank
// entries dropped.
func NewClassifier(keywords []string) *Classifier {
	ks := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			ks = append(ks, k)
		}
	}
	return &Classifier{keywords: ks}
}

// Match reports whether any keyword appears in the lowercased concatenation
// of name, description, publisher, and path. Absent metadata fields count as
// empty strings.
func (c *Classifier) Match(name string, m meta.Metadata) bool {
	blob := strings.ToLower(name + " " + m.Description + " " + m.Publisher + " " + m.Path)
	for _, k := range c.keywords {
		if strings.Contains(blob, k) {
			return true
		}
	}
	return false
}
