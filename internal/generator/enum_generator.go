package generator

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// generateEnum renders one <snake>.enum.pbj.go file: the Go named-int32
// type, its value constants (taking the proto enum value's own name,
// exported), and the FromOrdinal/FromName/ProtoOrdinal/ProtoName
// conversions codecs and JSON dispatch through.
func (ctx *fileContext) generateEnum(goName string, e *descriptorpb.EnumDescriptorProto) (*pluginpb.CodeGeneratorResponse_File, error) {
	imports := NewImportManager(ModulePath)
	imports.UseRaw("fmt")

	b := &WriteableBuffer{}
	b.P(fmt.Sprintf("// %s is a generated proto3 enum; the zero value is its first declared member.", goName))
	b.P("type " + goName + " int32")
	b.P0()

	b.P("const (")
	b.Indent()
	for _, v := range e.GetValue() {
		b.P(fmt.Sprintf("%s %s = %d", goName+"_"+v.GetName(), goName, v.GetNumber()))
	}
	b.Unindent()
	b.P(")")
	b.P0()

	b.P(fmt.Sprintf("var %sByOrdinal = map[int32]%s{", unexportName(goName), goName))
	b.Indent()
	for _, v := range e.GetValue() {
		b.P(fmt.Sprintf("%d: %s,", v.GetNumber(), goName+"_"+v.GetName()))
	}
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("var %sByName = map[string]%s{", unexportName(goName), goName))
	b.Indent()
	for _, v := range e.GetValue() {
		b.P(fmt.Sprintf("%q: %s,", v.GetName(), goName+"_"+v.GetName()))
	}
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("var %sNames = map[%s]string{", unexportName(goName), goName))
	b.Indent()
	for _, v := range e.GetValue() {
		b.P(fmt.Sprintf("%s: %q,", goName+"_"+v.GetName(), v.GetName()))
	}
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// %sFromOrdinal looks up a %s by its wire ordinal.", goName, goName))
	b.P(fmt.Sprintf("func %sFromOrdinal(v int32) (%s, bool) {", goName, goName))
	b.Indent()
	b.P(fmt.Sprintf("e, ok := %sByOrdinal[v]", unexportName(goName)))
	b.P("return e, ok")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// %sFromName looks up a %s by its declared proto name.", goName, goName))
	b.P(fmt.Sprintf("func %sFromName(name string) (%s, bool) {", goName, goName))
	b.Indent()
	b.P(fmt.Sprintf("e, ok := %sByName[name]", unexportName(goName)))
	b.P("return e, ok")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("func (e %s) ProtoOrdinal() int32 {", goName))
	b.Indent()
	b.P("return int32(e)")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("func (e %s) ProtoName() string {", goName))
	b.Indent()
	b.P(fmt.Sprintf("if name, ok := %sNames[e]; ok {", unexportName(goName)))
	b.Indent()
	b.P("return name")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("return fmt.Sprintf(\"%s(%%d)\", int32(e))", goName))
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("func (e %s) String() string {", goName))
	b.Indent()
	b.P("return e.ProtoName()")
	b.Unindent()
	b.P("}")
	b.P0()

	out := &WriteableBuffer{}
	out.P("package " + ctx.goPackage)
	out.P0()
	imports.Render(out)
	out.P(b.String())

	return responseFile(ctx.fileNameFor(goName, "enum.pbj"), out.String()), nil
}
