package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitJSONCodec renders the canonical-protobuf-JSON codec file:
// WriteJSON/ParseJSON methods plus a Parse<Name>JSON constructor. Field
// names use lowerCamelCase; 64-bit integers and bytes are quoted strings;
// enums serialize by name; NaN/Infinity float values use the three
// special string literals -- all per codec's shared JSON helpers, so the
// generated code calls into codec rather than re-deriving the mapping.
func (ctx *fileContext) emitJSONCodec(goName string, fields []resolvedField) string {
	b := &WriteableBuffer{}
	imports := NewImportManager(ModulePath)
	imports.UseRaw("encoding/json")
	imports.Use("codec")
	plain, groups := groupFields(fields)
	needsRuntime := false
	needsOneof := len(groups) > 0
	hasMapField := false
	hasNumericMapKey := false
	for _, f := range plain {
		if f.optional || f.wrapperElem != "" {
			needsRuntime = true
		}
		if f.kind == schema.Map {
			hasMapField = true
			if f.mapKeyKind != schema.String && f.mapKeyKind != schema.Bool {
				hasNumericMapKey = true
			}
		}
	}
	if needsRuntime {
		imports.Use("runtime")
	}
	if needsOneof {
		imports.Use("oneof")
	}
	if hasMapField {
		imports.UseRaw("fmt")
	}
	if hasNumericMapKey {
		imports.UseRaw("strconv")
	}

	ctx.emitJSONWrite(b, goName, plain, groups)
	ctx.emitJSONParse(b, goName, plain, groups)

	out := &WriteableBuffer{}
	out.P("package " + ctx.goPackage)
	out.P0()
	imports.Render(out)
	out.P(b.String())
	return out.String()
}

func (ctx *fileContext) emitJSONWrite(b *WriteableBuffer, goName string, plain []resolvedField, groups []oneofGroup) {
	b.P(fmt.Sprintf("// WriteJSON renders m per the canonical protobuf JSON mapping.", ))
	b.P(fmt.Sprintf("func (m *%s) WriteJSON() ([]byte, error) {", goName))
	b.Indent()
	b.P("obj := make(map[string]json.RawMessage)")
	for _, f := range plain {
		ctx.emitJSONWriteField(b, f)
	}
	for _, g := range groups {
		b.P(fmt.Sprintf("switch m.%s.Kind() {", g.name))
		b.Indent()
		for _, mem := range g.members {
			b.P(fmt.Sprintf("case %s:", g.memberConst(goName, mem)))
			b.Indent()
			b.P("{")
			b.Indent()
			b.P(fmt.Sprintf("v, _ := m.%s.Get()", g.name))
			b.P(fmt.Sprintf("mv := v.(%s)", mem.goType))
			ctx.emitJSONValueExpr(b, mem, "mv", "raw")
			b.P(fmt.Sprintf("obj[%q] = raw", mem.jsonName))
			b.Unindent()
			b.P("}")
			b.Unindent()
		}
		b.Unindent()
		b.P("}")
	}
	b.P("return json.Marshal(obj)")
	b.Unindent()
	b.P("}")
	b.P0()
}

func (ctx *fileContext) emitJSONWriteField(b *WriteableBuffer, f resolvedField) {
	b.P("{")
	b.Indent()
	switch {
	case f.kind == schema.Map:
		b.P(fmt.Sprintf("if len(m.%s) > 0 {", f.goName))
		b.Indent()
		b.P("entries := make(map[string]json.RawMessage, len(m." + f.goName + "))")
		b.P(fmt.Sprintf("for k, v := range m.%s {", f.goName))
		b.Indent()
		b.P(fmt.Sprintf("keyStr := fmt.Sprint(k)"))
		ctx.emitJSONValueExpr(b, resolvedField{kind: f.mapValueKind, messageGoType: f.messageGoType, enumGoType: f.enumGoType}, "v", "raw")
		b.P("entries[keyStr] = raw")
		b.Unindent()
		b.P("}")
		b.P("raw, _ := json.Marshal(entries)")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	case f.repeated:
		b.P(fmt.Sprintf("if len(m.%s) > 0 {", f.goName))
		b.Indent()
		b.P("elems := make([]json.RawMessage, 0, len(m." + f.goName + "))")
		b.P(fmt.Sprintf("for _, v := range m.%s {", f.goName))
		b.Indent()
		ctx.emitJSONValueExpr(b, f, "v", "raw")
		b.P("elems = append(elems, raw)")
		b.Unindent()
		b.P("}")
		b.P("raw, _ := json.Marshal(elems)")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	case f.wrapperElem != "":
		b.P(fmt.Sprintf("if v, ok := m.%s.Get(); ok {", f.goName))
		b.Indent()
		wf := resolvedField{kind: wrapperKindFor(f.wrapperElem)}
		ctx.emitJSONValueExpr(b, wf, "v", "raw")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	case f.optional:
		b.P(fmt.Sprintf("if v, ok := m.%s.Get(); ok {", f.goName))
		b.Indent()
		ctx.emitJSONValueExpr(b, f, "v", "raw")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	case f.kind == schema.String || f.kind == schema.Bytes:
		b.P(fmt.Sprintf("if len(m.%s) != 0 {", f.goName))
		b.Indent()
		ctx.emitJSONValueExpr(b, f, "m."+f.goName, "raw")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	case f.kind == schema.Message:
		b.P(fmt.Sprintf("if m.%s != nil {", f.goName))
		b.Indent()
		ctx.emitJSONValueExpr(b, f, "m."+f.goName, "raw")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	case f.kind == schema.Enum:
		b.P(fmt.Sprintf("if m.%s.ProtoOrdinal() != 0 {", f.goName))
		b.Indent()
		ctx.emitJSONValueExpr(b, f, "m."+f.goName, "raw")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	default:
		zero := zeroLiteral(f.kind)
		b.P(fmt.Sprintf("if m.%s != %s {", f.goName, zero))
		b.Indent()
		ctx.emitJSONValueExpr(b, f, "m."+f.goName, "raw")
		b.P(fmt.Sprintf("obj[%q] = raw", f.jsonName))
		b.Unindent()
		b.P("}")
	}
	b.Unindent()
	b.P("}")
}

// emitJSONValueExpr emits statements producing a json.RawMessage named
// tmp from valueExpr, of kind f.kind, for use inside WriteJSON (which
// returns ([]byte, error), so the Message case's error return matches).
func (ctx *fileContext) emitJSONValueExpr(b *WriteableBuffer, f resolvedField, valueExpr, tmp string) {
	switch f.kind {
	case schema.Int64, schema.SInt64, schema.SFixed64:
		b.P(fmt.Sprintf("%s, _ := json.Marshal(codec.EncodeJSONInt64(int64(%s)))", tmp, valueExpr))
	case schema.UInt64, schema.Fixed64:
		b.P(fmt.Sprintf("%s, _ := json.Marshal(codec.EncodeJSONUint64(uint64(%s)))", tmp, valueExpr))
	case schema.Bytes:
		b.P(fmt.Sprintf("%s, _ := json.Marshal(codec.EncodeJSONBytes(%s))", tmp, valueExpr))
	case schema.Float:
		b.P(fmt.Sprintf("%s := codec.EncodeJSONFloat32(%s)", tmp, valueExpr))
	case schema.Double:
		b.P(fmt.Sprintf("%s := codec.EncodeJSONFloat64(%s)", tmp, valueExpr))
	case schema.Enum:
		b.P(fmt.Sprintf("%s, _ := json.Marshal(%s.ProtoName())", tmp, valueExpr))
	case schema.Message:
		b.P(fmt.Sprintf("%s, err := %s.WriteJSON()", tmp, valueExpr))
		b.P("if err != nil {")
		b.Indent()
		b.P("return nil, err")
		b.Unindent()
		b.P("}")
	default:
		b.P(fmt.Sprintf("%s, _ := json.Marshal(%s)", tmp, valueExpr))
	}
}

func (ctx *fileContext) emitJSONParse(b *WriteableBuffer, goName string, plain []resolvedField, groups []oneofGroup) {
	b.P(fmt.Sprintf("// ParseJSON decodes m from the canonical protobuf JSON mapping.", ))
	b.P(fmt.Sprintf("func (m *%s) ParseJSON(data []byte) error {", goName))
	b.Indent()
	b.P("var obj map[string]json.RawMessage")
	b.P("if err := json.Unmarshal(data, &obj); err != nil {")
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	for _, f := range plain {
		ctx.emitJSONParseField(b, f, fmt.Sprintf("m.%s", f.goName))
	}
	for _, g := range groups {
		for _, mem := range g.members {
			b.P(fmt.Sprintf("if raw, ok := obj[%q]; ok {", mem.jsonName))
			b.Indent()
			ctx.emitJSONDecodeValue(b, mem, "raw", "dv")
			b.P(fmt.Sprintf("m.%s = oneof.Of[%s, any](%s, dv)", g.name, g.kindType(goName), g.memberConst(goName, mem)))
			b.Unindent()
			b.P("}")
		}
	}
	b.P("return nil")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// Parse%sJSON decodes one %s from its canonical JSON form.", goName, goName))
	b.P(fmt.Sprintf("func Parse%sJSON(data []byte) (*%s, error) {", goName, goName))
	b.Indent()
	b.P("m := &" + goName + "{}")
	b.P("if err := m.ParseJSON(data); err != nil {")
	b.Indent()
	b.P("return nil, err")
	b.Unindent()
	b.P("}")
	b.P("return m, nil")
	b.Unindent()
	b.P("}")
	b.P0()
}

func (ctx *fileContext) emitJSONParseField(b *WriteableBuffer, f resolvedField, destExpr string) {
	b.P(fmt.Sprintf("if raw, ok := obj[%q]; ok {", f.jsonName))
	b.Indent()
	switch {
	case f.kind == schema.Map:
		b.P("var entries map[string]json.RawMessage")
		b.P("if err := json.Unmarshal(raw, &entries); err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s = make(%s, len(entries))", destExpr, "map["+f.mapKeyGoType+"]"+f.mapValGoType))
		b.P("for ks, ev := range entries {")
		b.Indent()
		ctx.emitJSONDecodeMapKey(b, f.mapKeyKind, "ks", "kv")
		ctx.emitJSONDecodeValue(b, resolvedField{kind: f.mapValueKind, messageGoType: f.messageGoType, enumGoType: f.enumGoType}, "ev", "vv")
		b.P(fmt.Sprintf("%s[kv] = vv", destExpr))
		b.Unindent()
		b.P("}")
	case f.repeated:
		b.P("var elems []json.RawMessage")
		b.P("if err := json.Unmarshal(raw, &elems); err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s = make(%s, 0, len(elems))", destExpr, f.goType))
		b.P("for _, er := range elems {")
		b.Indent()
		ctx.emitJSONDecodeValue(b, f, "er", "ev")
		b.P(fmt.Sprintf("%s = append(%s, ev)", destExpr, destExpr))
		b.Unindent()
		b.P("}")
	case f.wrapperElem != "":
		wf := resolvedField{kind: wrapperKindFor(f.wrapperElem)}
		ctx.emitJSONDecodeValue(b, wf, "raw", "dv")
		b.P(fmt.Sprintf("%s = runtime.Some(dv)", destExpr))
	case f.optional:
		ctx.emitJSONDecodeValue(b, f, "raw", "dv")
		b.P(fmt.Sprintf("%s = runtime.Some(dv)", destExpr))
	default:
		ctx.emitJSONDecodeValue(b, f, "raw", "dv")
		b.P(destExpr + " = dv")
	}
	b.Unindent()
	b.P("}")
}

func (ctx *fileContext) emitJSONDecodeMapKey(b *WriteableBuffer, k schema.Kind, srcVar, destVar string) {
	switch k {
	case schema.String:
		b.P(destVar + " := " + srcVar)
	case schema.Bool:
		b.P(fmt.Sprintf("%s := %s == \"true\"", destVar, srcVar))
	case schema.Int32, schema.SInt32, schema.SFixed32:
		b.P(fmt.Sprintf("kn, _ := strconv.ParseInt(%s, 10, 32)", srcVar))
		b.P(fmt.Sprintf("%s := int32(kn)", destVar))
	case schema.Int64, schema.SInt64, schema.SFixed64:
		b.P(fmt.Sprintf("kn, _ := strconv.ParseInt(%s, 10, 64)", srcVar))
		b.P(fmt.Sprintf("%s := kn", destVar))
	case schema.UInt32, schema.Fixed32:
		b.P(fmt.Sprintf("kn, _ := strconv.ParseUint(%s, 10, 32)", srcVar))
		b.P(fmt.Sprintf("%s := uint32(kn)", destVar))
	case schema.UInt64, schema.Fixed64:
		b.P(fmt.Sprintf("kn, _ := strconv.ParseUint(%s, 10, 64)", srcVar))
		b.P(fmt.Sprintf("%s := kn", destVar))
	default:
		b.P(destVar + " := " + srcVar)
	}
}

// emitJSONDecodeValue emits statements decoding raw (a json.RawMessage
// variable already in scope) of kind f.kind into a freshly declared
// variable named dest, for use inside ParseJSON (which returns error).
func (ctx *fileContext) emitJSONDecodeValue(b *WriteableBuffer, f resolvedField, raw, dest string) {
	switch f.kind {
	case schema.Int64, schema.SInt64, schema.SFixed64:
		b.P(fmt.Sprintf("%sRaw, err := codec.DecodeJSONInt64(string(%s))", dest, raw))
		b.P("if err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s := %s(%sRaw)", dest, goScalarType(f.kind), dest))
	case schema.UInt64, schema.Fixed64:
		b.P(fmt.Sprintf("%sRaw, err := codec.DecodeJSONUint64(string(%s))", dest, raw))
		b.P("if err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s := %sRaw", dest, dest))
	case schema.Bytes:
		b.P(fmt.Sprintf("var %sStr string", dest))
		b.P(fmt.Sprintf("if err := json.Unmarshal(%s, &%sStr); err != nil {", raw, dest))
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s, err := codec.DecodeJSONBytes(%sStr)", dest, dest))
		b.P("if err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	case schema.Float:
		b.P(fmt.Sprintf("%s, err := codec.DecodeJSONFloat32(%s)", dest, raw))
		b.P("if err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	case schema.Double:
		b.P(fmt.Sprintf("%s, err := codec.DecodeJSONFloat64(%s)", dest, raw))
		b.P("if err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	case schema.Enum:
		b.P(fmt.Sprintf("var %sStr string", dest))
		b.P(fmt.Sprintf("if err := json.Unmarshal(%s, &%sStr); err != nil {", raw, dest))
		b.Indent()
		b.P(fmt.Sprintf("%sStr = string(%s)", dest, raw))
		b.Unindent()
		b.P("}")
		b.P(fmt.Sprintf("%s, err := codec.EnumJSON(%sStr, %s, %sFromOrdinal)", dest, dest, unexportName(f.enumGoType)+"ByName", f.enumGoType))
		b.P("if err != nil {")
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	case schema.Message:
		b.P(fmt.Sprintf("%s := &%s{}", dest, f.messageGoType))
		b.P(fmt.Sprintf("if err := %s.ParseJSON(%s); err != nil {", dest, raw))
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	default:
		b.P(fmt.Sprintf("var %s %s", dest, goScalarType(f.kind)))
		b.P(fmt.Sprintf("if err := json.Unmarshal(%s, &%s); err != nil {", raw, dest))
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	}
}
