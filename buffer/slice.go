package buffer

import (
	"github.com/pbj-go/pbj/pberrors"
	"github.com/pbj-go/pbj/wire"
)

// Bytes is a read-only, zero-copy cursor over an immutable byte range.
// Writes are forbidden; ReadBytes returns a sub-slice into the same
// backing array rather than a copy, so callers that materialize owned
// storage (as every parser must, per the no-wrap invariant) are
// responsible for copying what they keep.
type Bytes struct {
	data  []byte
	pos   int64
	limit int64
}

// NewBytes wraps data for reading. The returned cursor's limit is
// len(data).
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data, limit: int64(len(data))}
}

func (b *Bytes) Position() int64  { return b.pos }
func (b *Bytes) Limit() int64     { return b.limit }
func (b *Bytes) Remaining() int64 { return b.limit - b.pos }

func (b *Bytes) ReadByte() (byte, error) {
	if b.pos >= b.limit {
		return 0, pberrors.New(pberrors.IO, "slice cursor: read past limit")
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

func (b *Bytes) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+int64(n) > b.limit {
		return nil, pberrors.Newf(pberrors.IO, "slice cursor: requested %d bytes, only %d remaining", n, b.Remaining())
	}
	out := b.data[b.pos : b.pos+int64(n)]
	b.pos += int64(n)
	return out, nil
}

func (b *Bytes) Skip(n int) error {
	if n < 0 || b.pos+int64(n) > b.limit {
		return pberrors.Newf(pberrors.IO, "slice cursor: cannot skip %d bytes, only %d remaining", n, b.Remaining())
	}
	b.pos += int64(n)
	return nil
}

func (b *Bytes) ReadVarint() (uint64, error)   { return wire.ReadVarint(b) }
func (b *Bytes) ReadFixed32() (uint32, error)  { return wire.ReadFixed32(b) }
func (b *Bytes) ReadFixed64() (uint64, error)  { return wire.ReadFixed64(b) }

// WithLimit returns a sub-cursor over [Position, Position+n) without
// copying the backing array.
func (b *Bytes) WithLimit(n int64) (*Bytes, error) {
	if n < 0 || b.pos+n > b.limit {
		return nil, pberrors.Newf(pberrors.Malformed, "slice cursor: sub-limit of %d exceeds remaining %d", n, b.Remaining())
	}
	return &Bytes{data: b.data, pos: b.pos, limit: b.pos + n}, nil
}

// Advance moves this cursor's position past a sub-cursor that was
// created with WithLimit and fully consumed (or deliberately skipped).
func (b *Bytes) Advance(to int64) {
	b.pos = to
}

var _ Reader = (*Bytes)(nil)
