package codec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbj-go/pbj/codec"
)

func TestToLowerCamelCase(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"field_name":     "fieldName",
		"a":              "a",
		"already_camel":  "alreadyCamel",
		"x":              "x",
		"id":             "id",
		"nested_message": "nestedMessage",
	}
	for in, want := range cases {
		assert.Equal(t, want, codec.ToLowerCamelCase(in), in)
	}
}

func TestJSONBytesRoundTrip(t *testing.T) {
	t.Parallel()
	enc := codec.EncodeJSONBytes([]byte("hello"))
	got, err := codec.DecodeJSONBytes(enc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestDecodeJSONBytesRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := codec.DecodeJSONBytes("not!base64!")
	assert.Error(t, err)
}

func TestJSONInt64RoundTrip(t *testing.T) {
	t.Parallel()
	s := codec.EncodeJSONInt64(-1234567890123)
	assert.Equal(t, "-1234567890123", s)
	v, err := codec.DecodeJSONInt64(s)
	require.NoError(t, err)
	assert.Equal(t, int64(-1234567890123), v)
}

func TestJSONUint64RoundTrip(t *testing.T) {
	t.Parallel()
	s := codec.EncodeJSONUint64(18446744073709551615)
	v, err := codec.DecodeJSONUint64(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), v)
}

func TestDepthGuardRejectsBeyondMax(t *testing.T) {
	t.Parallel()
	g := codec.NewDepthGuard(codec.ParseOptions{MaxDepth: 2})
	require.NoError(t, g.Enter())
	require.NoError(t, g.Enter())
	err := g.Enter()
	assert.Error(t, err)
	g.Exit()
	g.Exit()
}

func TestDepthGuardUnboundedWhenZero(t *testing.T) {
	t.Parallel()
	g := codec.NewDepthGuard(codec.ParseOptions{})
	for i := 0; i < 1000; i++ {
		require.NoError(t, g.Enter())
	}
}

func TestSizeGuardRejectsBeyondMax(t *testing.T) {
	t.Parallel()
	g := codec.NewSizeGuard(codec.ParseOptions{MaxSize: 10})
	require.NoError(t, g.Add(5))
	require.NoError(t, g.Add(5))
	assert.Error(t, g.Add(1))
}

func TestOwnedBytesCopiesAndNormalizesEmpty(t *testing.T) {
	t.Parallel()
	src := []byte("abc")
	out := codec.OwnedBytes(src)
	src[0] = 'z'
	assert.Equal(t, "abc", string(out))
	assert.Nil(t, codec.OwnedBytes(nil))
	assert.Nil(t, codec.OwnedBytes([]byte{}))
}

func TestJSONFloatSpecialValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"NaN"`, string(codec.EncodeJSONFloat64(math.NaN())))
	assert.Equal(t, `"Infinity"`, string(codec.EncodeJSONFloat64(math.Inf(1))))
	assert.Equal(t, `"-Infinity"`, string(codec.EncodeJSONFloat64(math.Inf(-1))))

	v, err := codec.DecodeJSONFloat64([]byte(`"NaN"`))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = codec.DecodeJSONFloat64([]byte("1.5"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestEnumJSONAcceptsNameOrOrdinal(t *testing.T) {
	t.Parallel()
	type color int32
	const (
		colorUnspecified color = 0
		colorRed         color = 1
	)
	byName := map[string]color{"COLOR_UNSPECIFIED": colorUnspecified, "COLOR_RED": colorRed}
	fromOrdinal := func(n int32) (color, bool) {
		switch n {
		case 0:
			return colorUnspecified, true
		case 1:
			return colorRed, true
		default:
			return 0, false
		}
	}
	got, err := codec.EnumJSON("COLOR_RED", byName, fromOrdinal)
	require.NoError(t, err)
	assert.Equal(t, colorRed, got)

	got, err = codec.EnumJSON("1", byName, fromOrdinal)
	require.NoError(t, err)
	assert.Equal(t, colorRed, got)

	_, err = codec.EnumJSON("NOPE", byName, fromOrdinal)
	assert.Error(t, err)
}
