package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitProtoCodec renders the binary codec file: Write, Measure, Parse,
// ParseStrict and ToBytes/FromBytes. Write encodes the non-oneof fields in
// declaration order and then the set member of each oneof group, so its
// output is in ascending field-number order only when the .proto declares
// its fields in that order with oneof members numbered last. Parse
// accepts fields in any order, as the wire format does.
func (ctx *fileContext) emitProtoCodec(goName string, fields []resolvedField) string {
	b := &WriteableBuffer{}
	imports := NewImportManager(ModulePath)
	imports.Use("wire")
	imports.Use("buffer")
	imports.Use("codec")
	imports.Use("pberrors")
	plain, groups := groupFields(fields)
	needsRuntime := false
	needsOneof := len(groups) > 0
	needsSort := false
	for _, f := range plain {
		if f.optional || f.wrapperElem != "" {
			needsRuntime = true
		}
		if f.kind == schema.Map {
			needsSort = true
		}
	}
	if needsRuntime {
		imports.Use("runtime")
	}
	if needsOneof {
		imports.Use("oneof")
	}
	if needsSort {
		imports.UseRaw("sort")
	}

	b.P("package " + ctx.goPackage)
	b.P0()
	imports.Render(b)

	ctx.emitWrite(b, goName, plain, groups)
	ctx.emitMeasure(b, goName, plain, groups)
	ctx.emitParse(b, goName, plain, groups)
	ctx.emitToFromBytes(b, goName)

	return b.String()
}

func (ctx *fileContext) emitWrite(b *WriteableBuffer, goName string, plain []resolvedField, groups []oneofGroup) {
	b.P(fmt.Sprintf("// Write encodes m to w: non-oneof fields in declaration order, then each set oneof member.", ))
	b.P(fmt.Sprintf("func (m *%s) Write(w buffer.Writer) error {", goName))
	b.Indent()
	for _, f := range plain {
		ctx.emitWriteField(b, f)
	}
	for _, g := range groups {
		b.P(fmt.Sprintf("switch m.%s.Kind() {", g.name))
		b.Indent()
		for _, mem := range g.members {
			b.P(fmt.Sprintf("case %s:", g.memberConst(goName, mem)))
			b.Indent()
			b.P(fmt.Sprintf("v, _ := m.%s.Get()", g.name))
			ctx.emitWriteOneofMember(b, mem, fmt.Sprintf("v.(%s)", mem.goType))
			b.Unindent()
		}
		b.Unindent()
		b.P("}")
	}
	b.P("return nil")
	b.Unindent()
	b.P("}")
	b.P0()
}

func (ctx *fileContext) emitWriteOneofMember(b *WriteableBuffer, f resolvedField, valueExpr string) {
	n := f.descriptor.GetNumber()
	switch f.kind {
	case schema.String, schema.Bytes:
		ctx.emitWriteBytesLike(b, n, f.kind, valueExpr)
	case schema.Message:
		ctx.emitWriteMessage(b, n, valueExpr)
	default:
		scalarWriteStmt(b, n, f.kind, valueExpr, true)
	}
}

func (ctx *fileContext) emitWriteField(b *WriteableBuffer, f resolvedField) {
	n := f.descriptor.GetNumber()
	b.P("{")
	b.Indent()
	switch {
	case f.kind == schema.Map:
		ctx.emitWriteMap(b, f)
	case f.repeated && f.kind.Packable():
		ctx.emitWritePackedRepeated(b, f)
	case f.repeated:
		ctx.emitWriteUnpackedRepeated(b, f)
	case f.wrapperElem != "":
		b.P(fmt.Sprintf("if v, ok := m.%s.Get(); ok {", f.goName))
		b.Indent()
		b.P("_ = v")
		ctx.emitWriteWrapper(b, n, f.wrapperElem, "v")
		b.Unindent()
		b.P("}")
	case f.optional:
		b.P(fmt.Sprintf("if v, ok := m.%s.Get(); ok {", f.goName))
		b.Indent()
		switch f.kind {
		case schema.String, schema.Bytes:
			ctx.emitWriteBytesLike(b, n, f.kind, "v")
		default:
			scalarWriteStmt(b, n, f.kind, "v", true)
		}
		b.Unindent()
		b.P("}")
	case f.kind == schema.String:
		b.P(fmt.Sprintf("if len(m.%s) != 0 {", f.goName))
		b.Indent()
		ctx.emitWriteBytesLike(b, n, f.kind, "m."+f.goName)
		b.Unindent()
		b.P("}")
	case f.kind == schema.Bytes:
		b.P(fmt.Sprintf("if len(m.%s) != 0 {", f.goName))
		b.Indent()
		ctx.emitWriteBytesLike(b, n, f.kind, "m."+f.goName)
		b.Unindent()
		b.P("}")
	case f.kind == schema.Message:
		b.P(fmt.Sprintf("if m.%s != nil {", f.goName))
		b.Indent()
		ctx.emitWriteMessage(b, n, "m."+f.goName)
		b.Unindent()
		b.P("}")
	case f.kind == schema.Enum:
		b.P(fmt.Sprintf("if m.%s.ProtoOrdinal() != 0 {", f.goName))
		b.Indent()
		scalarWriteStmt(b, n, f.kind, "m."+f.goName, true)
		b.Unindent()
		b.P("}")
	default:
		zero := zeroLiteral(f.kind)
		b.P(fmt.Sprintf("if m.%s != %s {", f.goName, zero))
		b.Indent()
		scalarWriteStmt(b, n, f.kind, "m."+f.goName, true)
		b.Unindent()
		b.P("}")
	}
	b.Unindent()
	b.P("}")
}

func zeroLiteral(k schema.Kind) string {
	switch k {
	case schema.Bool:
		return "false"
	default:
		return "0"
	}
}

func (ctx *fileContext) emitWriteBytesLike(b *WriteableBuffer, n int32, k schema.Kind, valueExpr string) {
	var bytesExpr string
	if k == schema.String {
		bytesExpr = "[]byte(" + valueExpr + ")"
	} else {
		bytesExpr = valueExpr
	}
	b.P(fmt.Sprintf("if err := wire.WriteTag(w, %d, wire.LengthDelimited); err != nil {", n))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(len(%s))); err != nil {", valueExpr))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("if err := w.WriteBytes(%s); err != nil {", bytesExpr))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
}

func (ctx *fileContext) emitWriteMessage(b *WriteableBuffer, n int32, valueExpr string) {
	b.P(fmt.Sprintf("if err := wire.WriteTag(w, %d, wire.LengthDelimited); err != nil {", n))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(%s.Measure())); err != nil {", valueExpr))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("if err := %s.Write(w); err != nil {", valueExpr))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
}

func (ctx *fileContext) emitWriteWrapper(b *WriteableBuffer, n int32, elemGoType, valueExpr string) {
	k := wrapperKindFor(elemGoType)
	b.P(fmt.Sprintf("if err := wire.WriteTag(w, %d, wire.LengthDelimited); err != nil {", n))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("innerSize := %s", scalarMeasureExpr(1, k, valueExpr, true)))
	b.P("if err := wire.WriteVarint(w, uint64(innerSize)); err != nil {")
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	scalarWriteStmt(b, 1, k, valueExpr, true)
}

// wrapperKindFor maps a *Value wrapper's scalar element Go type back to
// its schema.Kind, used only to drive the shared scalar write/measure
// helpers when emitting that wrapper's single inner field (always field
// number 1, per google/protobuf/wrappers.proto).
func wrapperKindFor(goType string) schema.Kind {
	switch goType {
	case "float64":
		return schema.Double
	case "float32":
		return schema.Float
	case "int64":
		return schema.Int64
	case "uint64":
		return schema.UInt64
	case "int32":
		return schema.Int32
	case "uint32":
		return schema.UInt32
	case "bool":
		return schema.Bool
	case "string":
		return schema.String
	default:
		return schema.Bytes
	}
}

func (ctx *fileContext) emitWritePackedRepeated(b *WriteableBuffer, f resolvedField) {
	n := f.descriptor.GetNumber()
	b.P(fmt.Sprintf("if len(m.%s) > 0 {", f.goName))
	b.Indent()
	b.P(fmt.Sprintf("if err := wire.WriteTag(w, %d, wire.LengthDelimited); err != nil {", n))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P("packedSize := 0")
	b.P(fmt.Sprintf("for _, v := range m.%s {", f.goName))
	b.Indent()
	b.P(fmt.Sprintf("packedSize += %s", scalarMeasureExpr(n, f.kind, "v", false)))
	b.Unindent()
	b.P("}")
	b.P("if err := wire.WriteVarint(w, uint64(packedSize)); err != nil {")
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("for _, v := range m.%s {", f.goName))
	b.Indent()
	scalarWriteStmt(b, n, f.kind, "v", false)
	b.Unindent()
	b.P("}")
	b.Unindent()
	b.P("}")
}

func (ctx *fileContext) emitWriteUnpackedRepeated(b *WriteableBuffer, f resolvedField) {
	n := f.descriptor.GetNumber()
	b.P(fmt.Sprintf("for _, v := range m.%s {", f.goName))
	b.Indent()
	switch f.kind {
	case schema.String, schema.Bytes:
		ctx.emitWriteBytesLike(b, n, f.kind, "v")
	case schema.Message:
		b.P("if v != nil {")
		b.Indent()
		ctx.emitWriteMessage(b, n, "v")
		b.Unindent()
		b.P("}")
	default:
		scalarWriteStmt(b, n, f.kind, "v", true)
	}
	b.Unindent()
	b.P("}")
}

func (ctx *fileContext) emitWriteMap(b *WriteableBuffer, f resolvedField) {
	n := f.descriptor.GetNumber()
	// Map iteration order in Go is randomized, so entries are written in
	// ascending key order instead of range order -- otherwise the same
	// message could serialize to different bytes across two runs.
	b.P(fmt.Sprintf("keys := make([]%s, 0, len(m.%s))", f.mapKeyGoType, f.goName))
	b.P(fmt.Sprintf("for k := range m.%s {", f.goName))
	b.Indent()
	b.P("keys = append(keys, k)")
	b.Unindent()
	b.P("}")
	less := "keys[i] < keys[j]"
	if f.mapKeyKind == schema.Bool {
		less = "!keys[i] && keys[j]"
	}
	b.P(fmt.Sprintf("sort.Slice(keys, func(i, j int) bool { return %s })", less))
	b.P("for _, k := range keys {")
	b.Indent()
	b.P(fmt.Sprintf("v := m.%s[k]", f.goName))
	b.P(fmt.Sprintf("if err := wire.WriteTag(w, %d, wire.LengthDelimited); err != nil {", n))
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	keySize := scalarMeasureExpr(1, f.mapKeyKind, "k", true)
	var valueSizeExpr string
	var valueWrite func()
	switch f.mapValueKind {
	case schema.Message:
		valueSizeExpr = "wire.SizeVarint(wire.EncodeTag(2, wire.LengthDelimited)) + wire.SizeVarint(uint64(v.Measure())) + v.Measure()"
		valueWrite = func() { ctx.emitWriteMessage(b, 2, "v") }
	case schema.String, schema.Bytes:
		sizeOf := "len(v)"
		if f.mapValueKind == schema.String {
			sizeOf = "len(v)"
		}
		valueSizeExpr = fmt.Sprintf("wire.SizeVarint(wire.EncodeTag(2, wire.LengthDelimited)) + wire.SizeVarint(uint64(%s)) + %s", sizeOf, sizeOf)
		valueWrite = func() { ctx.emitWriteBytesLike(b, 2, f.mapValueKind, "v") }
	default:
		valueSizeExpr = scalarMeasureExpr(2, f.mapValueKind, "v", true)
		valueWrite = func() { scalarWriteStmt(b, 2, f.mapValueKind, "v", true) }
	}
	b.P(fmt.Sprintf("entrySize := %s + %s", keySize, valueSizeExpr))
	b.P("if err := wire.WriteVarint(w, uint64(entrySize)); err != nil {")
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	scalarWriteStmt(b, 1, f.mapKeyKind, "k", true)
	valueWrite()
	b.Unindent()
	b.P("}")
}
