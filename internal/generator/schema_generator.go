package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitSchema renders the <name>Schema package-level var: one
// schema.FieldDefinition per declared field (oneof members included,
// tagged with their group's OneOfID), built once at package init and
// never mutated afterward.
func (ctx *fileContext) emitSchema(goName string, fields []resolvedField) string {
	b := &WriteableBuffer{}
	imports := NewImportManager(ModulePath)
	imports.Use("schema")

	b.P("package " + ctx.goPackage)
	b.P0()
	imports.Render(b)

	varName := unexportName(goName) + "Schema"
	b.P(fmt.Sprintf("var %s = schema.New(%q, []schema.FieldDefinition{", varName, goName))
	b.Indent()
	for _, f := range fields {
		b.P("{")
		b.Indent()
		b.P(fmt.Sprintf("Number: %d,", f.descriptor.GetNumber()))
		b.P(fmt.Sprintf("Name: %q,", f.descriptor.GetName()))
		b.P(fmt.Sprintf("Kind: schema.%s,", f.kind.String()))
		if f.repeated {
			b.P("Repeated: true,")
		}
		if f.oneOf != 0 {
			b.P(fmt.Sprintf("OneOf: %d,", f.oneOf))
		}
		if f.optional {
			b.P("OptionalWrapper: true,")
		}
		if f.maxSize != 0 {
			b.P(fmt.Sprintf("MaxSize: %d,", f.maxSize))
		}
		if f.messageGoType != "" {
			b.P(fmt.Sprintf("MessageType: %q,", f.messageGoType))
		}
		if f.enumGoType != "" {
			b.P(fmt.Sprintf("EnumType: %q,", f.enumGoType))
		}
		if f.kind == schema.Map {
			b.P(fmt.Sprintf("MapKey: schema.%s,", f.mapKeyKind.String()))
			b.P(fmt.Sprintf("MapValue: schema.%s,", f.mapValueKind.String()))
		}
		b.Unindent()
		b.P("},")
	}
	b.Unindent()
	b.P("})")
	b.P0()

	return b.String()
}
