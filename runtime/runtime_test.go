package runtime_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pbj-go/pbj/runtime"
)

func TestOptionalSomeNoneRoundTrip(t *testing.T) {
	t.Parallel()
	o := runtime.Some(42)
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	n := runtime.None[int]()
	_, ok = n.Get()
	assert.False(t, ok)
	assert.Equal(t, 7, n.GetOr(7))
}

func TestBytesEqualNilVsEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, runtime.BytesEqual(nil, []byte{}))
	assert.True(t, runtime.BytesEqual([]byte("a"), []byte("a")))
	assert.False(t, runtime.BytesEqual([]byte("a"), []byte("b")))
}

func TestFloatEqualDistinguishesZeroSignAndNaN(t *testing.T) {
	t.Parallel()
	assert.False(t, runtime.Float64Equal(0, math.Copysign(0, -1)))
	nan := math.NaN()
	assert.True(t, runtime.Float64Equal(nan, nan))
	assert.True(t, runtime.Float32Equal(float32(1.5), float32(1.5)))
}

func TestOptionalEqual(t *testing.T) {
	t.Parallel()
	a := runtime.Some(3)
	b := runtime.Some(3)
	c := runtime.Some(4)
	n1 := runtime.None[int]()
	n2 := runtime.None[int]()
	assert.True(t, runtime.OptionalEqualComparable(a, b))
	assert.False(t, runtime.OptionalEqualComparable(a, c))
	assert.True(t, runtime.OptionalEqualComparable(n1, n2))
	assert.False(t, runtime.OptionalEqualComparable(a, n1))
}

func TestSliceEqual(t *testing.T) {
	t.Parallel()
	eq := func(a, b []byte) bool { return runtime.BytesEqual(a, b) }
	assert.True(t, runtime.SliceEqual([][]byte{[]byte("a"), []byte("b")}, [][]byte{[]byte("a"), []byte("b")}, eq))
	assert.False(t, runtime.SliceEqual([][]byte{[]byte("a")}, [][]byte{[]byte("a"), []byte("b")}, eq))
}

func TestHashCombineDeterministic(t *testing.T) {
	t.Parallel()
	h1 := runtime.HashCombine(runtime.HashCombine(runtime.HashSeed, runtime.HashInt32(5)), runtime.HashString("x"))
	h2 := runtime.HashCombine(runtime.HashCombine(runtime.HashSeed, runtime.HashInt32(5)), runtime.HashString("x"))
	assert.Equal(t, h1, h2)

	h3 := runtime.HashCombine(runtime.HashCombine(runtime.HashSeed, runtime.HashInt32(6)), runtime.HashString("x"))
	assert.NotEqual(t, h1, h3)
}

func TestHashFloatMatchesEqualitySemantics(t *testing.T) {
	t.Parallel()
	assert.Equal(t, runtime.HashFloat64(0), runtime.HashFloat64(0))
	assert.NotEqual(t, runtime.HashFloat64(0), runtime.HashFloat64(math.Copysign(0, -1)))
}

func TestHashSliceOrderSensitive(t *testing.T) {
	t.Parallel()
	h := func(v int32) uint64 { return runtime.HashInt32(v) }
	a := runtime.HashSlice([]int32{1, 2}, h)
	b := runtime.HashSlice([]int32{2, 1}, h)
	assert.NotEqual(t, a, b)
}

func TestHashOneOfUnsetIsZero(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint64(0), runtime.HashOneOf(3, false, 99))
	assert.NotEqual(t, uint64(0), runtime.HashOneOf(3, true, 99))
}
