package codec

import "github.com/pbj-go/pbj/pberrors"

// DepthGuard tracks nested-message recursion against a ParseOptions bound.
// Generated Parse methods thread one DepthGuard value down through every
// nested message field by calling Enter before recursing and Exit after.
type DepthGuard struct {
	max   int
	depth int
}

// NewDepthGuard builds a guard from the MaxDepth configured in opts; zero
// means unbounded.
func NewDepthGuard(opts ParseOptions) DepthGuard {
	return DepthGuard{max: opts.MaxDepth}
}

// Enter increments the current depth and reports an error once it would
// exceed the configured bound.
func (g *DepthGuard) Enter() error {
	g.depth++
	if g.max > 0 && g.depth > g.max {
		return pberrors.Newf(pberrors.DepthExceeded, "nesting depth %d exceeds max_depth %d", g.depth, g.max)
	}
	return nil
}

// Exit decrements the current depth; callers must call it exactly once
// per successful Enter, typically via defer.
func (g *DepthGuard) Exit() {
	g.depth--
}
