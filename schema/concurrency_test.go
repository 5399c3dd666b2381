package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/pbj-go/pbj/buffer"
	"github.com/pbj-go/pbj/schema"
)

// pointSchema stands in for a generated message's package-level Schema
// var: built once, never mutated, and shared by every goroutine below
// exactly the way every generated <name>Schema is shared by every call
// to that message's Write/Parse.
var pointSchema = schema.New("Point", []schema.FieldDefinition{
	{Number: 1, Name: "x", Kind: schema.Int32},
	{Number: 2, Name: "y", Kind: schema.Int32},
	{Number: 3, Name: "label", Kind: schema.String},
})

// TestSchemaConcurrentUse hammers one shared Schema singleton from many
// goroutines at once, each also running its own independent wire
// encode/decode round trip against its own buffer. Nothing here is
// expected to race: Schema.Lookup/Valid/ByName only read byNumber and
// Fields, which New finishes populating before returning, and each
// goroutine's BufferedData is private to it.
func TestSchemaConcurrentUse(t *testing.T) {
	t.Parallel()

	const workers = 64
	const iterationsPerWorker = 200

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < iterationsPerWorker; i++ {
				if !pointSchema.Valid(1) || !pointSchema.Valid(2) || !pointSchema.Valid(3) {
					t.Errorf("worker %d: expected fields 1-3 valid", w)
				}
				if pointSchema.Valid(99) {
					t.Errorf("worker %d: field 99 should not be valid", w)
				}
				if fd := pointSchema.Lookup(1); fd == nil || fd.Name != "x" {
					t.Errorf("worker %d: Lookup(1) = %v, want field x", w, fd)
				}
				if fd := pointSchema.ByName("label"); fd == nil || fd.Number != 3 {
					t.Errorf("worker %d: ByName(label) = %v, want number 3", w, fd)
				}

				buf := buffer.NewBufferedData(16)
				value := uint64(w*iterationsPerWorker + i)
				if err := buf.WriteVarint(value); err != nil {
					return err
				}
				buf.Flip()
				got, err := buf.ReadVarint()
				if err != nil {
					return err
				}
				if got != value {
					t.Errorf("worker %d: round trip got %d, want %d", w, got, value)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// TestSchemaConcurrentReadDuringIndependentConstruction confirms that
// building unrelated Schema instances concurrently never touches
// pointSchema's state, reinforcing that Schema has no package-level
// mutable state shared across instances.
func TestSchemaConcurrentReadDuringIndependentConstruction(t *testing.T) {
	t.Parallel()

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 32; i++ {
		i := i
		g.Go(func() error {
			s := schema.New("Scratch", []schema.FieldDefinition{
				{Number: uint32(i + 1), Name: "f", Kind: schema.Bool},
			})
			if !s.Valid(uint32(i + 1)) {
				t.Errorf("scratch schema %d: expected its own field valid", i)
			}
			if !pointSchema.Valid(1) {
				t.Errorf("pointSchema corrupted by concurrent construction of scratch schema %d", i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.True(t, pointSchema.Valid(2))
}
