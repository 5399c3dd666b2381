package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitComparator renders the total order a message's pbj.comparable
// option declares: Compare returns -1, 0 or 1, checking key fields in
// the declared sequence and stopping at the first one that differs, the
// same short-circuiting shape as a hand-written multi-key comparator.
func (ctx *fileContext) emitComparator(goName string, key []resolvedField) string {
	b := &WriteableBuffer{}
	b.P("package " + ctx.goPackage)
	b.P0()

	b.P(fmt.Sprintf("// Compare orders two %s values by the pbj.comparable key, returning", goName))
	b.P("// -1 if m sorts before other, 1 if after, 0 if the key fields are equal.")
	b.P(fmt.Sprintf("func (m *%s) Compare(other *%s) int {", goName, goName))
	b.Indent()
	for _, f := range key {
		emitKeyFieldCompare(b, f)
	}
	b.P("return 0")
	b.Unindent()
	b.P("}")
	b.P0()

	return b.String()
}

func emitKeyFieldCompare(b *WriteableBuffer, f resolvedField) {
	a := "m." + f.goName
	o := "other." + f.goName
	switch f.kind {
	case schema.Bool:
		b.P(fmt.Sprintf("if !%s && %s { return -1 }", a, o))
		b.P(fmt.Sprintf("if %s && !%s { return 1 }", a, o))
	case schema.Enum:
		b.P(fmt.Sprintf("if %s.ProtoOrdinal() < %s.ProtoOrdinal() { return -1 }", a, o))
		b.P(fmt.Sprintf("if %s.ProtoOrdinal() > %s.ProtoOrdinal() { return 1 }", a, o))
	default:
		b.P(fmt.Sprintf("if %s < %s { return -1 }", a, o))
		b.P(fmt.Sprintf("if %s > %s { return 1 }", a, o))
	}
}
