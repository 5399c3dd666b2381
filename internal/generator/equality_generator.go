package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitEquality renders Hash() and Equal(other *Name) bool methods built
// on the shared runtime hashing/equality helpers, folding the non-oneof
// fields in declaration order and then each oneof group, so two messages
// that decode to the same field values always hash and compare equal
// regardless of wire ordering.
func (ctx *fileContext) emitEquality(goName string, fields []resolvedField) string {
	b := &WriteableBuffer{}
	imports := NewImportManager(ModulePath)
	imports.Use("runtime")
	plain, groups := groupFields(fields)

	b.P(fmt.Sprintf("// Hash returns a content hash of m, stable across processes and", ))
	b.P("// consistent with Equal: two Equal messages always hash equal.")
	b.P(fmt.Sprintf("func (m *%s) Hash() uint64 {", goName))
	b.Indent()
	b.P("h := runtime.HashSeed")
	for _, f := range plain {
		ctx.emitHashField(b, f)
	}
	for _, g := range groups {
		ctx.emitHashOneof(b, goName, g)
	}
	b.P("return h")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// Equal reports whether m and other encode the same message value.", ))
	b.P(fmt.Sprintf("func (m *%s) Equal(other *%s) bool {", goName, goName))
	b.Indent()
	b.P("if m == other {")
	b.Indent()
	b.P("return true")
	b.Unindent()
	b.P("}")
	b.P("if m == nil || other == nil {")
	b.Indent()
	b.P("return false")
	b.Unindent()
	b.P("}")
	for _, f := range plain {
		ctx.emitEqualField(b, f)
	}
	for _, g := range groups {
		ctx.emitEqualOneof(b, goName, g)
	}
	b.P("return true")
	b.Unindent()
	b.P("}")
	b.P0()

	out := &WriteableBuffer{}
	out.P("package " + ctx.goPackage)
	out.P0()
	imports.Render(out)
	out.P(b.String())
	return out.String()
}

// hashExprFor returns a uint64 Go expression hashing valueExpr of kind k.
func hashExprFor(k schema.Kind, valueExpr string) string {
	switch k {
	case schema.Bool:
		return fmt.Sprintf("runtime.HashBool(%s)", valueExpr)
	case schema.Int32, schema.SInt32, schema.SFixed32:
		return fmt.Sprintf("runtime.HashInt32(%s)", valueExpr)
	case schema.UInt32, schema.Fixed32:
		return fmt.Sprintf("runtime.HashUint32(%s)", valueExpr)
	case schema.Int64, schema.SInt64, schema.SFixed64:
		return fmt.Sprintf("runtime.HashInt64(%s)", valueExpr)
	case schema.UInt64, schema.Fixed64:
		return fmt.Sprintf("runtime.HashUint64(%s)", valueExpr)
	case schema.Float:
		return fmt.Sprintf("runtime.HashFloat32(%s)", valueExpr)
	case schema.Double:
		return fmt.Sprintf("runtime.HashFloat64(%s)", valueExpr)
	case schema.String:
		return fmt.Sprintf("runtime.HashString(%s)", valueExpr)
	case schema.Bytes:
		return fmt.Sprintf("runtime.HashBytes(%s)", valueExpr)
	case schema.Enum:
		return fmt.Sprintf("runtime.HashInt32(%s.ProtoOrdinal())", valueExpr)
	case schema.Message:
		return fmt.Sprintf("%s.Hash()", valueExpr)
	default:
		return fmt.Sprintf("runtime.HashUint64(uint64(%s))", valueExpr)
	}
}

// equalExprFor returns a bool Go expression comparing a and b of kind k.
func equalExprFor(k schema.Kind, a, b string) string {
	switch k {
	case schema.Float:
		return fmt.Sprintf("runtime.Float32Equal(%s, %s)", a, b)
	case schema.Double:
		return fmt.Sprintf("runtime.Float64Equal(%s, %s)", a, b)
	case schema.Bytes:
		return fmt.Sprintf("runtime.BytesEqual(%s, %s)", a, b)
	case schema.Message:
		return fmt.Sprintf("%s.Equal(%s)", a, b)
	default:
		return fmt.Sprintf("%s == %s", a, b)
	}
}

func (ctx *fileContext) emitHashField(b *WriteableBuffer, f resolvedField) {
	switch {
	case f.kind == schema.Map:
		b.P("{")
		b.Indent()
		b.P(fmt.Sprintf("mh := runtime.HashCombine(runtime.HashSeed, uint64(len(m.%s)))", f.goName))
		b.P(fmt.Sprintf("for k, v := range m.%s {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("mh ^= runtime.HashCombine(%s, %s)", hashExprFor(f.mapKeyKind, "k"), hashExprFor(f.mapValueKind, "v")))
		b.Unindent()
		b.P("}")
		b.P("h = runtime.HashCombine(h, mh)")
		b.Unindent()
		b.P("}")
	case f.repeated:
		elemExpr := hashExprFor(f.kind, "v")
		b.P(fmt.Sprintf("h = runtime.HashCombine(h, runtime.HashSlice(m.%s, func(v %s) uint64 { return %s }))", f.goName, elemKindGoType(f), elemExpr))
	case f.wrapperElem != "":
		wk := wrapperKindFor(f.wrapperElem)
		b.P(fmt.Sprintf("h = runtime.HashCombine(h, runtime.HashOptional(m.%s, func(v %s) uint64 { return %s }))", f.goName, f.wrapperElem, hashExprFor(wk, "v")))
	case f.optional:
		b.P(fmt.Sprintf("h = runtime.HashCombine(h, runtime.HashOptional(m.%s, func(v %s) uint64 { return %s }))", f.goName, goScalarType(f.kind), hashExprFor(f.kind, "v")))
	case f.kind == schema.Message:
		b.P(fmt.Sprintf("if m.%s != nil {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("h = runtime.HashCombine(h, %s)", hashExprFor(f.kind, "m."+f.goName)))
		b.Unindent()
		b.P("}")
	default:
		b.P(fmt.Sprintf("h = runtime.HashCombine(h, %s)", hashExprFor(f.kind, "m."+f.goName)))
	}
}

func elemKindGoType(f resolvedField) string {
	switch f.kind {
	case schema.Message:
		return "*" + f.messageGoType
	case schema.Enum:
		return f.enumGoType
	default:
		return goScalarType(f.kind)
	}
}

func (ctx *fileContext) emitHashOneof(b *WriteableBuffer, goName string, g oneofGroup) {
	b.P(fmt.Sprintf("switch m.%s.Kind() {", g.name))
	b.Indent()
	for _, mem := range g.members {
		b.P(fmt.Sprintf("case %s:", g.memberConst(goName, mem)))
		b.Indent()
		b.P(fmt.Sprintf("v, _ := m.%s.Get()", g.name))
		b.P(fmt.Sprintf("mv := v.(%s)", mem.goType))
		b.P(fmt.Sprintf("h = runtime.HashCombine(h, runtime.HashOneOf(uint64(%s), true, %s))", g.memberConst(goName, mem), hashExprFor(mem.kind, "mv")))
		b.Unindent()
	}
	b.P("default:")
	b.Indent()
	b.P("h = runtime.HashCombine(h, runtime.HashOneOf(0, false, 0))")
	b.Unindent()
	b.Unindent()
	b.P("}")
}

func (ctx *fileContext) emitEqualField(b *WriteableBuffer, f resolvedField) {
	switch {
	case f.kind == schema.Map:
		b.P(fmt.Sprintf("if len(m.%s) != len(other.%s) {", f.goName, f.goName))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("for k, v := range m.%s {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("ov, ok := other.%s[k]", f.goName))
		b.P("if !ok {")
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("if !(%s) {", equalExprFor(f.mapValueKind, "v", "ov")))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
		b.Unindent()
		b.P("}")
	case f.repeated:
		eq := func(elemA, elemB string) string { return equalExprFor(f.kind, elemA, elemB) }
		b.P(fmt.Sprintf("if !runtime.SliceEqual(m.%s, other.%s, func(a, b %s) bool { return %s }) {", f.goName, f.goName, elemKindGoType(f), eq("a", "b")))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
	case f.wrapperElem != "":
		wk := wrapperKindFor(f.wrapperElem)
		b.P(fmt.Sprintf("if !runtime.OptionalEqual(m.%s, other.%s, func(a, b %s) bool { return %s }) {", f.goName, f.goName, f.wrapperElem, equalExprFor(wk, "a", "b")))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
	case f.optional:
		b.P(fmt.Sprintf("if !runtime.OptionalEqual(m.%s, other.%s, func(a, b %s) bool { return %s }) {", f.goName, f.goName, goScalarType(f.kind), equalExprFor(f.kind, "a", "b")))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
	case f.kind == schema.Message:
		b.P(fmt.Sprintf("if (m.%s == nil) != (other.%s == nil) {", f.goName, f.goName))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("if m.%s != nil && !m.%s.Equal(other.%s) {", f.goName, f.goName, f.goName))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
	default:
		b.P(fmt.Sprintf("if !(%s) {", equalExprFor(f.kind, "m."+f.goName, "other."+f.goName)))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
	}
}

func (ctx *fileContext) emitEqualOneof(b *WriteableBuffer, goName string, g oneofGroup) {
	b.P(fmt.Sprintf("if m.%s.Kind() != other.%s.Kind() {", g.name, g.name))
	b.Indent()
	b.P("return false")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("switch m.%s.Kind() {", g.name))
	b.Indent()
	for _, mem := range g.members {
		b.P(fmt.Sprintf("case %s:", g.memberConst(goName, mem)))
		b.Indent()
		b.P(fmt.Sprintf("mv, _ := m.%s.Get()", g.name))
		b.P(fmt.Sprintf("ov, _ := other.%s.Get()", g.name))
		b.P(fmt.Sprintf("a := mv.(%s)", mem.goType))
		b.P(fmt.Sprintf("bb := ov.(%s)", mem.goType))
		b.P(fmt.Sprintf("if !(%s) {", equalExprFor(mem.kind, "a", "bb")))
		b.Indent()
		b.P("return false")
		b.Unindent()
		b.P("}")
		b.Unindent()
	}
	b.Unindent()
	b.P("}")
}
