package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitTestFactory renders a Random<Name> constructor that fills every
// field with a representative random value, for round-trip tests
// (encode then decode, or encode-json then decode-json, should always
// reproduce an Equal value). Nested messages recurse into their own
// Random<Type> constructor; oneof groups pick one member at random.
func (ctx *fileContext) emitTestFactory(goName string, fields []resolvedField) string {
	b := &WriteableBuffer{}
	imports := NewImportManager(ModulePath)
	imports.UseRaw("math/rand")
	plain, groups := groupFields(fields)
	needsRuntime := false
	needsOneof := len(groups) > 0
	needsFmt := false
	isStringy := func(k schema.Kind) bool { return k == schema.String || k == schema.Bytes }
	for _, f := range plain {
		if f.optional || f.wrapperElem != "" {
			needsRuntime = true
		}
		if isStringy(f.kind) || (f.kind == schema.Map && (isStringy(f.mapKeyKind) || isStringy(f.mapValueKind))) || (f.wrapperElem != "" && isStringy(wrapperKindFor(f.wrapperElem))) {
			needsFmt = true
		}
	}
	for _, g := range groups {
		for _, mem := range g.members {
			if isStringy(mem.kind) {
				needsFmt = true
			}
		}
	}
	if needsRuntime {
		imports.Use("runtime")
	}
	if needsOneof {
		imports.Use("oneof")
	}
	if needsFmt {
		imports.UseRaw("fmt")
	}

	b.P(fmt.Sprintf("// Random%s returns a %s populated with representative random values,", goName, goName))
	b.P("// for use in round-trip tests.")
	b.P(fmt.Sprintf("func Random%s(r *rand.Rand) *%s {", goName, goName))
	b.Indent()
	b.P("m := &" + goName + "{}")
	for _, f := range plain {
		ctx.emitRandomField(b, f)
	}
	for _, g := range groups {
		if len(g.members) == 0 {
			continue
		}
		b.P(fmt.Sprintf("switch r.Intn(%d) {", len(g.members)))
		b.Indent()
		for i, mem := range g.members {
			b.P(fmt.Sprintf("case %d:", i))
			b.Indent()
			ctx.emitRandomValueExpr(b, mem, "mv")
			b.P(fmt.Sprintf("m.%s = oneof.Of[%s, any](%s, mv)", g.name, g.kindType(goName), g.memberConst(goName, mem)))
			b.Unindent()
		}
		b.Unindent()
		b.P("}")
	}
	b.P("return m")
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

func (ctx *fileContext) emitRandomField(b *WriteableBuffer, f resolvedField) {
	switch {
	case f.kind == schema.Map:
		b.P(fmt.Sprintf("m.%s = make(%s)", f.goName, "map["+f.mapKeyGoType+"]"+f.mapValGoType))
		b.P(fmt.Sprintf("for i := 0; i < r.Intn(3); i++ {"))
		b.Indent()
		ctx.emitRandomValueExpr(b, resolvedField{kind: f.mapKeyKind}, "kv")
		ctx.emitRandomValueExpr(b, resolvedField{kind: f.mapValueKind, messageGoType: f.messageGoType, enumGoType: f.enumGoType}, "vv")
		b.P(fmt.Sprintf("m.%s[kv] = vv", f.goName))
		b.Unindent()
		b.P("}")
	case f.repeated:
		b.P(fmt.Sprintf("for i := 0; i < r.Intn(3); i++ {"))
		b.Indent()
		ctx.emitRandomValueExpr(b, f, "ev")
		b.P(fmt.Sprintf("m.%s = append(m.%s, ev)", f.goName, f.goName))
		b.Unindent()
		b.P("}")
	case f.wrapperElem != "":
		wf := resolvedField{kind: wrapperKindFor(f.wrapperElem)}
		ctx.emitRandomValueExpr(b, wf, "wv")
		b.P(fmt.Sprintf("m.%s = runtime.Some(wv)", f.goName))
	case f.optional:
		ctx.emitRandomValueExpr(b, f, "ov")
		b.P(fmt.Sprintf("m.%s = runtime.Some(ov)", f.goName))
	default:
		ctx.emitRandomValueExpr(b, f, "fv")
		b.P(fmt.Sprintf("m.%s = fv", f.goName))
	}
}

// emitRandomValueExpr emits a statement declaring a new variable named
// dest with a random value of kind f.kind.
func (ctx *fileContext) emitRandomValueExpr(b *WriteableBuffer, f resolvedField, dest string) {
	switch f.kind {
	case schema.Bool:
		b.P(fmt.Sprintf("%s := r.Intn(2) == 0", dest))
	case schema.Int32, schema.SInt32, schema.SFixed32:
		b.P(fmt.Sprintf("%s := r.Int31()", dest))
	case schema.UInt32, schema.Fixed32:
		b.P(fmt.Sprintf("%s := r.Uint32()", dest))
	case schema.Int64, schema.SInt64, schema.SFixed64:
		b.P(fmt.Sprintf("%s := r.Int63()", dest))
	case schema.UInt64, schema.Fixed64:
		b.P(fmt.Sprintf("%s := r.Uint64()", dest))
	case schema.Float:
		b.P(fmt.Sprintf("%s := r.Float32()", dest))
	case schema.Double:
		b.P(fmt.Sprintf("%s := r.Float64()", dest))
	case schema.String:
		b.P(fmt.Sprintf("%s := fmt.Sprintf(\"s%%d\", r.Intn(1000))", dest))
	case schema.Bytes:
		b.P(fmt.Sprintf("%s := []byte(fmt.Sprintf(\"b%%d\", r.Intn(1000)))", dest))
	case schema.Enum:
		b.P(fmt.Sprintf("%sOrdinals := make([]int32, 0, len(%s))", dest, unexportName(f.enumGoType)+"ByOrdinal"))
		b.P(fmt.Sprintf("for k := range %s {", unexportName(f.enumGoType)+"ByOrdinal"))
		b.Indent()
		b.P(fmt.Sprintf("%sOrdinals = append(%sOrdinals, k)", dest, dest))
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s, _ := %sFromOrdinal(%sOrdinals[r.Intn(len(%sOrdinals))])", dest, f.enumGoType, dest, dest))
	case schema.Message:
		b.P(fmt.Sprintf("%s := Random%s(r)", dest, f.messageGoType))
	default:
		b.P(fmt.Sprintf("var %s %s", dest, goScalarType(f.kind)))
	}
}
