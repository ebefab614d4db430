package filter

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/onering/theoneapi"
)

// DefaultCacheSize is the number of compiled programs kept by NewCompiler
const DefaultCacheSize = 64

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the number of compiled expressions kept in memory. Zero disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		} else {
			c.cache = nil
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// Compiler turns expressions into reusable programs
type Compiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helperFuncs: createHelperFunctions(),
		cache:       newLRUCache(DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewCompiler()

// Compile compiles an expression with the shared default compiler
func Compile(expression string) (*Expression, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Expression, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Document fields are unknown until evaluation
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	compiled := &Expression{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, compiled)
	}

	return compiled, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Expression is a compiled filter. It is safe for concurrent use.
type Expression struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

var _ CompiledFilter = (*Expression)(nil)

// Match evaluates the expression against a document's fields
func (e *Expression) Match(doc theoneapi.Document) (bool, error) {
	fields := doc.Fields()
	env := make(map[string]any, len(fields)+len(e.helpers))
	maps.Copy(env, fields)
	maps.Copy(env, e.helpers)

	result, err := expr.Run(e.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: e.expression,
			DocumentID: doc.DocumentID(),
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: e.expression,
			DocumentID: doc.DocumentID(),
			Err:        fmt.Errorf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}

// Expression returns the original expression
func (e *Expression) Expression() string {
	return e.expression
}

// createHelperFunctions creates the helper functions available to every expression.
// expr's own operators (contains, startsWith, endsWith, matches, in) and
// builtins (lower, upper, len) are available as well.
func createHelperFunctions() map[string]any {
	return map[string]any{
		"hasValue":     hasValue,
		"containsFold": containsFold,
		"oneOf":        oneOf,
	}
}

// hasValue reports whether a field carries information. The upstream
// fills unknown character attributes with "", "NaN" or nothing at all.
func hasValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		s := strings.TrimSpace(val)
		return s != "" && s != "NaN"
	case float64:
		return !math.IsNaN(val)
	default:
		return true
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// oneOf checks s against a comma separated list, case-insensitively
func oneOf(s, list string) bool {
	for _, candidate := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(candidate), s) {
			return true
		}
	}
	return false
}
