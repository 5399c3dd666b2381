package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbj-go/pbj/schema"
)

func TestValidAndLookup(t *testing.T) {
	t.Parallel()
	s := schema.New("Timestamp", []schema.FieldDefinition{
		{Number: 1, Name: "seconds", Kind: schema.Int64},
		{Number: 2, Name: "nanos", Kind: schema.Int32},
	})
	assert.True(t, s.Valid(1))
	assert.True(t, s.Valid(2))
	assert.False(t, s.Valid(3))
	require.NotNil(t, s.Lookup(1))
	assert.Equal(t, "seconds", s.Lookup(1).Name)
	assert.Nil(t, s.Lookup(99))
}

func TestDuplicateFieldNumberPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		schema.New("Bad", []schema.FieldDefinition{
			{Number: 1, Name: "a", Kind: schema.Int32},
			{Number: 1, Name: "b", Kind: schema.Int32},
		})
	})
}

func TestByName(t *testing.T) {
	t.Parallel()
	s := schema.New("M", []schema.FieldDefinition{
		{Number: 1, Name: "x", Kind: schema.String},
	})
	require.NotNil(t, s.ByName("x"))
	assert.Nil(t, s.ByName("missing"))
}

func TestKindPackable(t *testing.T) {
	t.Parallel()
	assert.True(t, schema.Int32.Packable())
	assert.False(t, schema.String.Packable())
	assert.False(t, schema.Message.Packable())
	assert.False(t, schema.Map.Packable())
}
