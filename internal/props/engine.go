package props

import "regexp"

// Engine holds the compiled patterns used for scanning. Construct one with
// NewEngine and share it freely: it is immutable after construction and safe
// for concurrent use.
type Engine struct {
	// span matches a maximal single-layer bracket span. The first ] always
	// closes the span; there is no nesting awareness.
	span *regexp.Regexp
	// pair matches a candidate key plus its :: or ::: separator. Keys start
	// with a Unicode letter and continue with letters, digits, or
	// underscores (so año and título are valid keys).
	pair *regexp.Regexp
}

// NewEngine compiles the scanning patterns.
func NewEngine() *Engine {
	return &Engine{
		span: regexp.MustCompile(`\[([^\]]+)\]`),
		pair: regexp.MustCompile(`(\p{L}[\p{L}\p{N}_]*)\s*(:::?)\s*`),
	}
}
