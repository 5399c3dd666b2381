package buffer

import (
	"io"

	"github.com/pbj-go/pbj/pberrors"
	"github.com/pbj-go/pbj/wire"
)

// StreamCursor wraps a sequential OS stream (an io.Reader for decoding,
// an io.Writer for encoding). It blocks on the underlying stream and
// does not support seeking; Position is simply the monotonic count of
// bytes moved through it so far. Cancellation is delegated to the
// stream: closing it surfaces here as an IO error on the next call.
type StreamCursor struct {
	r   io.Reader
	w   io.Writer
	pos int64
	// limit bounds how many more bytes may be read/written from pos;
	// a fresh cursor is unbounded and only WithLimit narrows it.
	limit int64
}

// NewStreamReader wraps r for decoding with no a priori limit (Remaining
// reports the limit minus position, so callers relying on Remaining for
// bounds should pass a limit via WithLimit).
func NewStreamReader(r io.Reader) *StreamCursor {
	return &StreamCursor{r: r, limit: 1<<63 - 1}
}

// NewStreamWriter wraps w for encoding.
func NewStreamWriter(w io.Writer) *StreamCursor {
	return &StreamCursor{w: w, limit: 1<<63 - 1}
}

// WithLimit returns a view of this cursor bounded to n more bytes, the
// stream counterpart of Bytes.WithLimit: a reader of the view cannot
// reach bytes beyond them.
func (s *StreamCursor) WithLimit(n int64) *StreamCursor {
	sub := *s
	if s.pos+n < sub.limit {
		sub.limit = s.pos + n
	}
	return &sub
}

func (s *StreamCursor) Position() int64  { return s.pos }
func (s *StreamCursor) Limit() int64     { return s.limit }
func (s *StreamCursor) Remaining() int64 { return s.limit - s.pos }

func (s *StreamCursor) ReadByte() (byte, error) {
	if s.pos >= s.limit {
		return 0, pberrors.New(pberrors.IO, "stream cursor: read past limit")
	}
	var b [1]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, pberrors.IOErrorf(err, "stream cursor: short read")
	}
	s.pos++
	return b[0], nil
}

func (s *StreamCursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || s.pos+int64(n) > s.limit {
		return nil, pberrors.Newf(pberrors.IO, "stream cursor: requested %d bytes, only %d remaining", n, s.Remaining())
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(s.r, out); err != nil {
		return nil, pberrors.IOErrorf(err, "stream cursor: short read of %d bytes", n)
	}
	s.pos += int64(n)
	return out, nil
}

func (s *StreamCursor) Skip(n int) error {
	_, err := s.ReadBytes(n)
	return err
}

func (s *StreamCursor) WriteByte(v byte) error {
	if _, err := s.w.Write([]byte{v}); err != nil {
		return pberrors.IOErrorf(err, "stream cursor: short write")
	}
	s.pos++
	return nil
}

func (s *StreamCursor) WriteBytes(v []byte) error {
	if _, err := s.w.Write(v); err != nil {
		return pberrors.IOErrorf(err, "stream cursor: short write of %d bytes", len(v))
	}
	s.pos += int64(len(v))
	return nil
}

func (s *StreamCursor) ReadVarint() (uint64, error)  { return wire.ReadVarint(s) }
func (s *StreamCursor) ReadFixed32() (uint32, error) { return wire.ReadFixed32(s) }
func (s *StreamCursor) ReadFixed64() (uint64, error) { return wire.ReadFixed64(s) }
func (s *StreamCursor) WriteVarint(v uint64) error   { return wire.WriteVarint(s, v) }
func (s *StreamCursor) WriteFixed32(v uint32) error  { return wire.WriteFixed32(s, v) }
func (s *StreamCursor) WriteFixed64(v uint64) error  { return wire.WriteFixed64(s, v) }

var (
	_ Reader = (*StreamCursor)(nil)
	_ Writer = (*StreamCursor)(nil)
)
