package filter

import (
	"github.com/s0up4200/onering/theoneapi"
)

// Matcher decides whether a document is kept
type Matcher interface {
	// Match checks if a document matches the filter criteria
	Match(doc theoneapi.Document) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Matcher

	// Expression returns the original filter expression
	Expression() string
}
