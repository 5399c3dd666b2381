package oneof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pbj-go/pbj/oneof"
)

type contactKind int

const (
	contactUnset contactKind = iota
	contactEmail
	contactPhone
)

func TestUnsetHasZeroKindAndNoValue(t *testing.T) {
	t.Parallel()
	var u oneof.OneOf[contactKind, string]
	assert.False(t, u.IsSet())
	assert.Equal(t, contactUnset, u.Kind())
	v, ok := u.Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestOfSetsKindAndValue(t *testing.T) {
	t.Parallel()
	o := oneof.Of(contactEmail, "a@example.com")
	assert.True(t, o.IsSet())
	assert.Equal(t, contactEmail, o.Kind())
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", v)
}

func TestAsReturnsFalseForWrongVariant(t *testing.T) {
	t.Parallel()
	o := oneof.Of(contactEmail, "a@example.com")
	_, ok := o.As(contactPhone)
	assert.False(t, ok)
	v, ok := o.As(contactEmail)
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", v)
}

func TestAsOnUnsetAlwaysFalse(t *testing.T) {
	t.Parallel()
	var u oneof.OneOf[contactKind, string]
	_, ok := u.As(contactUnset)
	assert.False(t, ok)
}

func TestEqualComparable(t *testing.T) {
	t.Parallel()
	a := oneof.Of(contactEmail, "x")
	b := oneof.Of(contactEmail, "x")
	c := oneof.Of(contactPhone, "x")
	assert.True(t, oneof.EqualComparable(a, b))
	assert.False(t, oneof.EqualComparable(a, c))

	var u1, u2 oneof.OneOf[contactKind, string]
	assert.True(t, oneof.EqualComparable(u1, u2))
	assert.False(t, oneof.EqualComparable(u1, a))
}

func TestEqualWithCustomEq(t *testing.T) {
	t.Parallel()
	type payload struct{ b []byte }
	a := oneof.Of(contactEmail, payload{b: []byte("abc")})
	b := oneof.Of(contactEmail, payload{b: []byte("abc")})
	eq := func(x, y payload) bool { return string(x.b) == string(y.b) }
	assert.True(t, oneof.Equal(a, b, eq))
}
