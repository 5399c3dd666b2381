package codec

import "github.com/pbj-go/pbj/pberrors"

// SizeGuard tracks the running total of length-delimited payload bytes
// read across an entire Parse call (a nested sub-message's payload is
// counted, and so are the length-delimited fields inside it) against a
// ParseOptions bound. A
// single shared SizeGuard instance is passed down through nested parses
// the same way DepthGuard is, so a large number of small nested messages
// can't evade the max_size bound by each staying individually small.
type SizeGuard struct {
	max     int
	consumed int
}

// NewSizeGuard builds a guard from the MaxSize configured in opts; zero
// means unbounded.
func NewSizeGuard(opts ParseOptions) SizeGuard {
	return SizeGuard{max: opts.MaxSize}
}

// Add accounts for n more bytes consumed, reporting an error once the
// running total would exceed the configured bound.
func (g *SizeGuard) Add(n int) error {
	g.consumed += n
	if g.max > 0 && g.consumed > g.max {
		return pberrors.Newf(pberrors.SizeExceeded, "parsed size %d exceeds max_size %d", g.consumed, g.max)
	}
	return nil
}
