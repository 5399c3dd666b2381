package wire_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pbj-go/pbj/wire"
)

type byteCursor struct {
	buf *bytes.Buffer
}

func (c *byteCursor) ReadByte() (byte, error)        { return c.buf.ReadByte() }
func (c *byteCursor) WriteByte(b byte) error          { return c.buf.WriteByte(b) }
func (c *byteCursor) ReadBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := c.buf.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *byteCursor) WriteBytes(b []byte) error {
	_, err := c.buf.Write(b)
	return err
}
func (c *byteCursor) Skip(n int) error {
	_, err := c.buf.Read(make([]byte, n))
	return err
}

func TestVarintRoundTrip(t *testing.T) {
	t.Parallel()
	values := []uint64{0, 1, 127, 128, 300, 1 << 21, 1 << 35, ^uint64(0)}
	for _, v := range values {
		c := &byteCursor{buf: &bytes.Buffer{}}
		require.NoError(t, wire.WriteVarint(c, v))
		assert.Equal(t, wire.SizeVarint(v), c.buf.Len())
		got, err := wire.ReadVarint(c)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVarintMatchesProtowire(t *testing.T) {
	t.Parallel()
	values := []uint64{0, 1, 150, 1 << 40}
	for _, v := range values {
		c := &byteCursor{buf: &bytes.Buffer{}}
		require.NoError(t, wire.WriteVarint(c, v))
		assert.Equal(t, protowire.AppendVarint(nil, v), c.buf.Bytes())
	}
}

func TestVarintTenthByteContinuationIsMalformed(t *testing.T) {
	t.Parallel()
	raw := bytes.Repeat([]byte{0xff}, 9)
	raw = append(raw, 0xff) // 10th byte still has the continuation bit set
	c := &byteCursor{buf: bytes.NewBuffer(raw)}
	_, err := wire.ReadVarint(c)
	require.Error(t, err)
}

func TestZigZagRoundTrip(t *testing.T) {
	t.Parallel()
	for _, v := range []int64{0, 1, -1, 2, -2, 1 << 40, -(1 << 40)} {
		assert.Equal(t, protowire.DecodeZigZag(wire.ZigZagEncode(v)), v)
		assert.Equal(t, v, wire.ZigZagDecode(wire.ZigZagEncode(v)))
	}
}

func TestFixed32RoundTrip(t *testing.T) {
	t.Parallel()
	c := &byteCursor{buf: &bytes.Buffer{}}
	require.NoError(t, wire.WriteFixed32(c, 0xdeadbeef))
	got, err := wire.ReadFixed32(c)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), got)
}

func TestFixed64RoundTrip(t *testing.T) {
	t.Parallel()
	c := &byteCursor{buf: &bytes.Buffer{}}
	require.NoError(t, wire.WriteFixed64(c, 0xdeadbeefcafef00d))
	got, err := wire.ReadFixed64(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeefcafef00d), got)
}

func TestTagRoundTrip(t *testing.T) {
	t.Parallel()
	c := &byteCursor{buf: &bytes.Buffer{}}
	require.NoError(t, wire.WriteTag(c, 5678, wire.Varint))
	fn, wt, err := wire.ReadTag(c)
	require.NoError(t, err)
	assert.Equal(t, uint32(5678), fn)
	assert.Equal(t, wire.Varint, wt)
}

func TestTagRejectsFieldNumberZero(t *testing.T) {
	t.Parallel()
	c := &byteCursor{buf: &bytes.Buffer{}}
	require.NoError(t, wire.WriteVarint(c, 0<<3|uint64(wire.Varint)))
	_, _, err := wire.ReadTag(c)
	require.Error(t, err)
}

func TestValidFieldNumberRejectsReservedRange(t *testing.T) {
	t.Parallel()
	assert.False(t, wire.ValidFieldNumber(19500))
	assert.True(t, wire.ValidFieldNumber(19999+1))
	assert.True(t, wire.ValidFieldNumber(1))
	assert.False(t, wire.ValidFieldNumber(0))
	assert.False(t, wire.ValidFieldNumber(wire.MaxFieldNumber+1))
}

func TestSkipFieldLengthDelimited(t *testing.T) {
	t.Parallel()
	c := &byteCursor{buf: &bytes.Buffer{}}
	require.NoError(t, wire.WriteVarint(c, 3))
	require.NoError(t, c.WriteBytes([]byte("abc")))
	require.NoError(t, wire.SkipField(c, wire.LengthDelimited))
	assert.Equal(t, 0, c.buf.Len())
}

func TestSkipFieldRejectsGroups(t *testing.T) {
	t.Parallel()
	c := &byteCursor{buf: &bytes.Buffer{}}
	err := wire.SkipField(c, 3)
	require.Error(t, err)
}

func TestTimestampSample(t *testing.T) {
	t.Parallel()
	// seconds=5678 (field 1, varint), nanos=1234 (field 2, varint)
	c := &byteCursor{buf: &bytes.Buffer{}}
	require.NoError(t, wire.WriteTag(c, 1, wire.Varint))
	require.NoError(t, wire.WriteVarint(c, 5678))
	require.NoError(t, wire.WriteTag(c, 2, wire.Varint))
	require.NoError(t, wire.WriteVarint(c, 1234))
	assert.Equal(t, []byte{0x08, 0xae, 0x2c, 0x10, 0xd2, 0x09}, c.buf.Bytes())
}
