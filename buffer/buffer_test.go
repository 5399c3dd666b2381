package buffer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbj-go/pbj/buffer"
)

func TestBytesZeroCopyReadAliasesBackingArray(t *testing.T) {
	t.Parallel()
	data := []byte("hello world")
	b := buffer.NewBytes(data)
	got, err := b.ReadBytes(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	// Mutating the backing array is visible through the returned slice:
	// this is the "may be zero-copy" contract, not a bug. Callers that
	// need owned storage (every parser, per the no-wrap invariant) must
	// copy explicitly -- which is exercised separately below.
	data[0] = 'H'
	assert.Equal(t, byte('H'), got[0])
}

func TestBytesReadBytesCopiedByCallerSurvivesMutation(t *testing.T) {
	t.Parallel()
	data := []byte("hello world")
	b := buffer.NewBytes(data)
	got, err := b.ReadBytes(5)
	require.NoError(t, err)
	owned := append([]byte(nil), got...)

	for i := range data {
		data[i] = 'x'
	}
	assert.Equal(t, "hello", string(owned))
}

func TestBytesRemainingAndLimit(t *testing.T) {
	t.Parallel()
	b := buffer.NewBytes([]byte{1, 2, 3, 4})
	assert.Equal(t, int64(4), b.Remaining())
	_, err := b.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.Remaining())
	assert.Equal(t, int64(1), b.Position())
}

func TestBytesWithLimitBoundsSubCursor(t *testing.T) {
	t.Parallel()
	b := buffer.NewBytes([]byte{1, 2, 3, 4, 5})
	sub, err := b.WithLimit(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sub.Remaining())
	_, err = sub.ReadBytes(3)
	require.Error(t, err, "reading past the sub-limit must fail even though the parent has more bytes")
}

func TestBufferedDataWriteFlipRead(t *testing.T) {
	t.Parallel()
	b := buffer.NewBufferedData(16)
	require.NoError(t, b.WriteByte(0x2a))
	require.NoError(t, b.WriteBytes([]byte("abc")))
	b.Flip()
	assert.Equal(t, int64(0), b.Position())
	assert.Equal(t, int64(4), b.Limit())

	got, err := b.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x2a), got)
	rest, err := b.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(rest))
}

func TestBufferedDataGrowsBeyondInitialCapacity(t *testing.T) {
	t.Parallel()
	b := buffer.NewBufferedData(1)
	payload := bytes.Repeat([]byte{0x7}, 1000)
	require.NoError(t, b.WriteBytes(payload))
	b.Flip()
	got, err := b.ReadBytes(1000)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestStreamCursorReadsSequentially(t *testing.T) {
	t.Parallel()
	src := bytes.NewReader([]byte("abcdef"))
	s := buffer.NewStreamReader(src)
	got, err := s.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, int64(3), s.Position())
}

func TestStreamCursorWithLimitBoundsReads(t *testing.T) {
	t.Parallel()
	src := bytes.NewReader([]byte("abcdef"))
	s := buffer.NewStreamReader(src)
	sub := s.WithLimit(2)
	_, err := sub.ReadBytes(3)
	require.Error(t, err)
}

func TestStreamCursorWriteRoundTrip(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	w := buffer.NewStreamWriter(&out)
	require.NoError(t, w.WriteVarint(300))
	r := buffer.NewStreamReader(bytes.NewReader(out.Bytes()))
	v, err := r.ReadVarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), v)
}
