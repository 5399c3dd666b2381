package buffer

import (
	"github.com/pbj-go/pbj/pberrors"
	"github.com/pbj-go/pbj/wire"
)

// BufferedData is a positioned in-memory buffer supporting both reads and
// writes against one position/limit pair, in the style of java.nio's
// ByteBuffer: write in "write mode" (limit tracks capacity, writes grow
// the backing array), then Flip into "read mode" (limit becomes the
// write position, position resets to 0) to read back what was written.
// This is the buffer to_bytes and the positioned-write fast path use.
type BufferedData struct {
	data  []byte
	pos   int64
	limit int64
}

// NewBufferedData allocates a BufferedData in write mode with the given
// initial capacity hint.
func NewBufferedData(capacityHint int) *BufferedData {
	return &BufferedData{data: make([]byte, 0, capacityHint), limit: int64(capacityHint)}
}

// WrapBufferedData creates a BufferedData in read mode over an existing
// slice, taking ownership of it (the caller must not mutate it further).
func WrapBufferedData(data []byte) *BufferedData {
	return &BufferedData{data: data, limit: int64(len(data))}
}

func (b *BufferedData) Position() int64  { return b.pos }
func (b *BufferedData) Limit() int64     { return b.limit }
func (b *BufferedData) Remaining() int64 { return b.limit - b.pos }

// Flip transitions from write mode to read mode: limit becomes the
// current position (the number of bytes written), and position resets
// to zero so the next read starts at the beginning.
func (b *BufferedData) Flip() {
	b.limit = b.pos
	b.pos = 0
}

// Reset returns to write mode at the beginning, discarding read position.
func (b *BufferedData) Reset() {
	b.pos = 0
	b.limit = int64(cap(b.data))
}

// Bytes returns the bytes written so far (equivalent to the slice
// between 0 and the current write position), without consuming them.
func (b *BufferedData) Bytes() []byte {
	if b.limit < int64(len(b.data)) {
		return b.data[:b.limit]
	}
	return b.data
}

func (b *BufferedData) ReadByte() (byte, error) {
	if b.pos >= b.limit {
		return 0, pberrors.New(pberrors.IO, "buffered cursor: read past limit")
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

func (b *BufferedData) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+int64(n) > b.limit {
		return nil, pberrors.Newf(pberrors.IO, "buffered cursor: requested %d bytes, only %d remaining", n, b.Remaining())
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+int64(n)])
	b.pos += int64(n)
	return out, nil
}

func (b *BufferedData) Skip(n int) error {
	if n < 0 || b.pos+int64(n) > b.limit {
		return pberrors.Newf(pberrors.IO, "buffered cursor: cannot skip %d bytes, only %d remaining", n, b.Remaining())
	}
	b.pos += int64(n)
	return nil
}

func (b *BufferedData) WriteByte(v byte) error {
	b.ensure(int(b.pos) + 1)
	if int(b.pos) == len(b.data) {
		b.data = append(b.data, v)
	} else {
		b.data[b.pos] = v
	}
	b.pos++
	if b.pos > b.limit {
		b.limit = b.pos
	}
	return nil
}

func (b *BufferedData) WriteBytes(v []byte) error {
	b.ensure(int(b.pos) + len(v))
	if int(b.pos) == len(b.data) {
		b.data = append(b.data, v...)
	} else {
		copy(b.data[b.pos:], v)
	}
	b.pos += int64(len(v))
	if b.pos > b.limit {
		b.limit = b.pos
	}
	return nil
}

func (b *BufferedData) ensure(n int) {
	if cap(b.data) >= n {
		return
	}
	grown := make([]byte, len(b.data), n*2)
	copy(grown, b.data)
	b.data = grown
}

func (b *BufferedData) ReadVarint() (uint64, error)  { return wire.ReadVarint(b) }
func (b *BufferedData) ReadFixed32() (uint32, error) { return wire.ReadFixed32(b) }
func (b *BufferedData) ReadFixed64() (uint64, error) { return wire.ReadFixed64(b) }
func (b *BufferedData) WriteVarint(v uint64) error   { return wire.WriteVarint(b, v) }
func (b *BufferedData) WriteFixed32(v uint32) error  { return wire.WriteFixed32(b, v) }
func (b *BufferedData) WriteFixed64(v uint64) error  { return wire.WriteFixed64(b, v) }

var (
	_ Reader = (*BufferedData)(nil)
	_ Writer = (*BufferedData)(nil)
)
