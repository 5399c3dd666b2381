package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// oneofGroup collects the members of a single oneof declaration, in
// declaration order, so the model/codec emitters can treat each group as
// one oneof.OneOf-typed struct field instead of one field per member.
type oneofGroup struct {
	name    string
	id      schema.OneOfID
	members []resolvedField
}

// groupFields partitions a message's resolved fields into the ones that
// get their own struct field (plain scalars, repeated, map, message,
// Optional-wrapped) and the ones folded into a oneofGroup.
func groupFields(fields []resolvedField) (plain []resolvedField, groups []oneofGroup) {
	byID := make(map[schema.OneOfID]*oneofGroup)
	for _, f := range fields {
		if f.oneOf == schema.NoOneOf {
			plain = append(plain, f)
			continue
		}
		g, ok := byID[f.oneOf]
		if !ok {
			groups = append(groups, oneofGroup{name: f.groupName, id: f.oneOf})
			g = &groups[len(groups)-1]
			byID[f.oneOf] = g
		}
		g.members = append(g.members, f)
	}
	return plain, groups
}

func (g oneofGroup) kindType(msgName string) string {
	return msgName + g.name + "Kind"
}

func (g oneofGroup) memberConst(msgName string, member resolvedField) string {
	return msgName + g.name + "_" + member.goName
}

// --- model (struct + builder) ---------------------------------------

func (ctx *fileContext) emitModel(goName string, fields []resolvedField) string {
	b := &WriteableBuffer{}
	imports := NewImportManager(ModulePath)
	plain, groups := groupFields(fields)

	needsRuntime := false
	for _, f := range plain {
		if f.optional || f.wrapperElem != "" {
			needsRuntime = true
		}
	}
	if len(groups) > 0 {
		imports.Use("oneof")
	}
	if needsRuntime {
		imports.Use("runtime")
	}

	b.P("package " + ctx.goPackage)
	b.P0()
	imports.Render(b)

	b.P(fmt.Sprintf("// %s is a generated message model. Zero value is the proto3 default instance.", goName))
	b.P("type " + goName + " struct {")
	b.Indent()
	for _, f := range plain {
		b.P(f.goName + " " + f.goType)
	}
	for _, g := range groups {
		b.P(g.name + " oneof.OneOf[" + g.kindType(goName) + ", any]")
	}
	b.Unindent()
	b.P("}")
	b.P0()

	for _, g := range groups {
		ctx.emitOneofKind(b, goName, g)
	}

	for _, g := range groups {
		for _, m := range g.members {
			b.P(fmt.Sprintf("func (m *%s) Get%s() (%s, bool) {", goName, m.goName, m.goType))
			b.Indent()
			b.P(fmt.Sprintf("v, ok := m.%s.As(%s)", g.name, g.memberConst(goName, m)))
			b.P("if !ok {")
			b.Indent()
			b.P("var zero " + m.goType)
			b.P("return zero, false")
			b.Unindent()
			b.P("}")
			b.P(fmt.Sprintf("return v.(%s), true", m.goType))
			b.Unindent()
			b.P("}")
			b.P0()
		}
	}

	b.P(fmt.Sprintf("// %sBuilder builds a %s field by field before producing an immutable instance.", goName, goName))
	b.P(fmt.Sprintf("type %sBuilder struct {", goName))
	b.Indent()
	b.P("msg " + goName)
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("func New%sBuilder() *%sBuilder {", goName, goName))
	b.Indent()
	b.P(fmt.Sprintf("return &%sBuilder{}", goName))
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// ToBuilder returns a Builder seeded from m's current values (copyBuilder).", ))
	b.P(fmt.Sprintf("func (m *%s) ToBuilder() *%sBuilder {", goName, goName))
	b.Indent()
	b.P(fmt.Sprintf("return &%sBuilder{msg: *m}", goName))
	b.Unindent()
	b.P("}")
	b.P0()

	for _, f := range plain {
		b.P(fmt.Sprintf("func (b *%sBuilder) Set%s(v %s) *%sBuilder {", goName, f.goName, f.goType, goName))
		b.Indent()
		b.P(fmt.Sprintf("b.msg.%s = v", f.goName))
		b.P("return b")
		b.Unindent()
		b.P("}")
		b.P0()
	}
	for _, g := range groups {
		for _, m := range g.members {
			b.P(fmt.Sprintf("func (b *%sBuilder) Set%s(v %s) *%sBuilder {", goName, m.goName, m.goType, goName))
			b.Indent()
			b.P(fmt.Sprintf("b.msg.%s = oneof.Of[%s, any](%s, v)", g.name, g.kindType(goName), g.memberConst(goName, m)))
			b.P("return b")
			b.Unindent()
			b.P("}")
			b.P0()
		}
	}

	b.P(fmt.Sprintf("func (b *%sBuilder) Build() *%s {", goName, goName))
	b.Indent()
	b.P("m := b.msg")
	b.P("return &m")
	b.Unindent()
	b.P("}")
	b.P0()

	return b.String()
}

func (ctx *fileContext) emitOneofKind(b *WriteableBuffer, goName string, g oneofGroup) {
	kindType := g.kindType(goName)
	b.P(fmt.Sprintf("// %s discriminates the %q oneof's members; the zero value means unset.", kindType, g.name))
	b.P("type " + kindType + " int32")
	b.P0()
	b.P("const (")
	b.Indent()
	b.P(fmt.Sprintf("%sUnset %s = 0", goName+g.name, kindType))
	for i, m := range g.members {
		b.P(fmt.Sprintf("%s %s = %d", g.memberConst(goName, m), kindType, i+1))
	}
	b.Unindent()
	b.P(")")
	b.P0()
}
