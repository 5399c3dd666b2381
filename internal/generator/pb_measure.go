package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

func (ctx *fileContext) emitMeasure(b *WriteableBuffer, goName string, plain []resolvedField, groups []oneofGroup) {
	b.P("// Measure returns the exact number of bytes Write would emit.")
	b.P(fmt.Sprintf("func (m *%s) Measure() int {", goName))
	b.Indent()
	b.P("size := 0")
	for _, f := range plain {
		ctx.emitMeasureField(b, f)
	}
	for _, g := range groups {
		b.P(fmt.Sprintf("switch m.%s.Kind() {", g.name))
		b.Indent()
		for _, mem := range g.members {
			b.P(fmt.Sprintf("case %s:", g.memberConst(goName, mem)))
			b.Indent()
			b.P(fmt.Sprintf("v, _ := m.%s.Get()", g.name))
			b.P(fmt.Sprintf("size += %s", ctx.measureOneofMember(mem, fmt.Sprintf("v.(%s)", mem.goType))))
			b.Unindent()
		}
		b.Unindent()
		b.P("}")
	}
	b.P("return size")
	b.Unindent()
	b.P("}")
	b.P0()
}

func (ctx *fileContext) measureOneofMember(f resolvedField, valueExpr string) string {
	n := f.descriptor.GetNumber()
	switch f.kind {
	case schema.String:
		return fmt.Sprintf("wire.SizeVarint(wire.EncodeTag(%d, wire.LengthDelimited)) + wire.SizeVarint(uint64(len(%s))) + len(%s)", n, valueExpr, valueExpr)
	case schema.Bytes:
		return fmt.Sprintf("wire.SizeVarint(wire.EncodeTag(%d, wire.LengthDelimited)) + wire.SizeVarint(uint64(len(%s))) + len(%s)", n, valueExpr, valueExpr)
	case schema.Message:
		return fmt.Sprintf("wire.SizeVarint(wire.EncodeTag(%d, wire.LengthDelimited)) + wire.SizeVarint(uint64(%s.Measure())) + %s.Measure()", n, valueExpr, valueExpr)
	default:
		return scalarMeasureExpr(n, f.kind, valueExpr, true)
	}
}

func (ctx *fileContext) emitMeasureField(b *WriteableBuffer, f resolvedField) {
	n := f.descriptor.GetNumber()
	switch {
	case f.kind == schema.Map:
		b.P(fmt.Sprintf("for k, v := range m.%s {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("entrySize := %s", ctx.mapEntrySizeExpr(f)))
		b.P(fmt.Sprintf("size += wire.SizeVarint(wire.EncodeTag(%d, wire.LengthDelimited)) + wire.SizeVarint(uint64(entrySize)) + entrySize", n))
		b.Unindent()
		b.P("}")
	case f.repeated && f.kind.Packable():
		b.P(fmt.Sprintf("if len(m.%s) > 0 {", f.goName))
		b.Indent()
		b.P("packedSize := 0")
		b.P(fmt.Sprintf("for _, v := range m.%s {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("packedSize += %s", scalarMeasureExpr(n, f.kind, "v", false)))
		b.Unindent()
		b.P("}")
		b.P("size += wire.SizeVarint(wire.EncodeTag(" + fmt.Sprint(n) + ", wire.LengthDelimited)) + wire.SizeVarint(uint64(packedSize)) + packedSize")
		b.Unindent()
		b.P("}")
	case f.repeated:
		b.P(fmt.Sprintf("for _, v := range m.%s {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("size += %s", ctx.measureOneofMember(f, "v")))
		b.Unindent()
		b.P("}")
	case f.wrapperElem != "":
		b.P(fmt.Sprintf("if v, ok := m.%s.Get(); ok {", f.goName))
		b.Indent()
		k := wrapperKindFor(f.wrapperElem)
		inner := scalarMeasureExpr(1, k, "v", true)
		b.P(fmt.Sprintf("size += wire.SizeVarint(wire.EncodeTag(%d, wire.LengthDelimited)) + wire.SizeVarint(uint64(%s)) + %s", n, inner, inner))
		b.Unindent()
		b.P("}")
	case f.optional:
		b.P(fmt.Sprintf("if v, ok := m.%s.Get(); ok {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("size += %s", ctx.measureOneofMember(f, "v")))
		b.Unindent()
		b.P("}")
	case f.kind == schema.String || f.kind == schema.Bytes:
		b.P(fmt.Sprintf("if len(m.%s) != 0 {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("size += %s", ctx.measureOneofMember(f, "m."+f.goName)))
		b.Unindent()
		b.P("}")
	case f.kind == schema.Message:
		b.P(fmt.Sprintf("if m.%s != nil {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("size += %s", ctx.measureOneofMember(f, "m."+f.goName)))
		b.Unindent()
		b.P("}")
	case f.kind == schema.Enum:
		b.P(fmt.Sprintf("if m.%s.ProtoOrdinal() != 0 {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("size += %s", scalarMeasureExpr(n, f.kind, "m."+f.goName, true)))
		b.Unindent()
		b.P("}")
	default:
		zero := zeroLiteral(f.kind)
		b.P(fmt.Sprintf("if m.%s != %s {", f.goName, zero))
		b.Indent()
		b.P(fmt.Sprintf("size += %s", scalarMeasureExpr(n, f.kind, "m."+f.goName, true)))
		b.Unindent()
		b.P("}")
	}
}

func (ctx *fileContext) mapEntrySizeExpr(f resolvedField) string {
	keySize := scalarMeasureExpr(1, f.mapKeyKind, "k", true)
	switch f.mapValueKind {
	case schema.Message:
		return keySize + " + wire.SizeVarint(wire.EncodeTag(2, wire.LengthDelimited)) + wire.SizeVarint(uint64(v.Measure())) + v.Measure()"
	case schema.String, schema.Bytes:
		return keySize + " + wire.SizeVarint(wire.EncodeTag(2, wire.LengthDelimited)) + wire.SizeVarint(uint64(len(v))) + len(v)"
	default:
		return keySize + " + " + scalarMeasureExpr(2, f.mapValueKind, "v", true)
	}
}
