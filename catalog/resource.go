package catalog

import (
	"fmt"
	"strings"
)

// Resource names one of the API collections
type Resource string

const (
	// ResourceMovie is the /movie collection
	ResourceMovie Resource = "movie"
	// ResourceCharacter is the /character collection
	ResourceCharacter Resource = "character"
	// ResourceBook is the /book collection
	ResourceBook Resource = "book"
	// ResourceChapter is the /chapter collection
	ResourceChapter Resource = "chapter"
	// ResourceQuote is the /quote collection
	ResourceQuote Resource = "quote"
)

// Resources returns every resource in display order
func Resources() []Resource {
	return []Resource{ResourceMovie, ResourceCharacter, ResourceBook, ResourceChapter, ResourceQuote}
}

// ParseResource accepts singular or plural names, case-insensitively
func ParseResource(name string) (Resource, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "s")
	for _, r := range Resources() {
		if string(r) == n {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

// Plural returns the resource name in plural form
func (r Resource) Plural() string {
	return string(r) + "s"
}

// RelatedResource returns the collection nested under a document of r,
// if there is one.
func (r Resource) RelatedResource() (Resource, bool) {
	switch r {
	case ResourceMovie, ResourceCharacter:
		return ResourceQuote, true
	case ResourceBook:
		return ResourceChapter, true
	default:
		return "", false
	}
}

// ParseFilters turns key=value pairs into query filters. The value may
// contain further '=' characters and may be empty.
func ParseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", pair)
		}
		if _, dup := filters[key]; dup {
			return nil, fmt.Errorf("duplicate filter key %q", key)
		}
		filters[key] = value
	}
	return filters, nil
}
