package generator

import (
	"fmt"

	"github.com/pbj-go/pbj/schema"
)

// emitParse renders unmarshalPB (the shared recursive decode body) and the
// Parse/ParseStrict package-level constructors; FromBytes is rendered by
// emitToFromBytes.
func (ctx *fileContext) emitParse(b *WriteableBuffer, goName string, plain []resolvedField, groups []oneofGroup) {
	b.P(fmt.Sprintf("// unmarshalPB decodes one %s from r, sharing dg/sg across the whole", goName))
	b.P("// recursive parse so nested messages can't evade the depth/size bounds.")
	b.P(fmt.Sprintf("func (m *%s) unmarshalPB(r buffer.Reader, dg *codec.DepthGuard, sg *codec.SizeGuard, strict bool) error {", goName))
	b.Indent()
	b.P("for r.Remaining() > 0 {")
	b.Indent()
	b.P("fieldNumber, wireType, err := wire.ReadTag(r)")
	b.P("if err != nil {")
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P("switch fieldNumber {")
	b.Indent()
	for _, f := range plain {
		b.P(fmt.Sprintf("case %d:", f.descriptor.GetNumber()))
		b.Indent()
		emitWireTypeCheck(b, goName, f)
		ctx.emitParseField(b, f, fmt.Sprintf("m.%s", f.goName), true)
		b.Unindent()
	}
	for _, g := range groups {
		for _, mem := range g.members {
			b.P(fmt.Sprintf("case %d:", mem.descriptor.GetNumber()))
			b.Indent()
			emitWireTypeCheck(b, goName, mem)
			ctx.emitParseOneofMember(b, goName, g, mem)
			b.Unindent()
		}
	}
	b.P("default:")
	b.Indent()
	b.P("if !wire.ValidFieldNumber(fieldNumber) {")
	b.Indent()
	b.P(fmt.Sprintf("return pberrors.Newf(pberrors.Malformed, \"%s: reserved field number %%d\", fieldNumber)", goName))
	b.Unindent()
	b.P("}")
	b.P("if strict {")
	b.Indent()
	b.P(fmt.Sprintf("return pberrors.Newf(pberrors.UnknownField, \"%s: unknown field number %%d\", fieldNumber)", goName))
	b.Unindent()
	b.P("}")
	b.P("if err := wire.SkipField(r, wireType); err != nil {")
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.Unindent()
	b.Unindent()
	b.P("}")
	b.Unindent()
	b.P("}")
	b.P("return nil")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// Parse%s decodes one %s from r under opts.", goName, goName))
	b.P(fmt.Sprintf("func Parse%s(r buffer.Reader, opts codec.ParseOptions) (*%s, error) {", goName, goName))
	b.Indent()
	b.P("dg := codec.NewDepthGuard(opts)")
	b.P("sg := codec.NewSizeGuard(opts)")
	b.P("m := &" + goName + "{}")
	b.P("if err := m.unmarshalPB(r, &dg, &sg, opts.Strict); err != nil {")
	b.Indent()
	b.P("return nil, err")
	b.Unindent()
	b.P("}")
	b.P("return m, nil")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// ParseStrict%s decodes one %s from r, rejecting unknown fields.", goName, goName))
	b.P(fmt.Sprintf("func ParseStrict%s(r buffer.Reader) (*%s, error) {", goName, goName))
	b.Indent()
	b.P(fmt.Sprintf("return Parse%s(r, codec.Defaults().WithStrict(true))", goName))
	b.Unindent()
	b.P("}")
	b.P0()
}

func (ctx *fileContext) emitToFromBytes(b *WriteableBuffer, goName string) {
	b.P(fmt.Sprintf("// ToBytes encodes m to a freshly allocated byte slice.", ))
	b.P(fmt.Sprintf("func (m *%s) ToBytes() []byte {", goName))
	b.Indent()
	b.P("buf := buffer.NewBufferedData(m.Measure())")
	b.P("_ = m.Write(buf)")
	b.P("return buf.Bytes()")
	b.Unindent()
	b.P("}")
	b.P0()

	b.P(fmt.Sprintf("// FromBytes%s decodes one %s from a complete byte slice, under default bounds.", goName, goName))
	b.P(fmt.Sprintf("func FromBytes%s(data []byte) (*%s, error) {", goName, goName))
	b.Indent()
	b.P(fmt.Sprintf("return Parse%s(buffer.NewBytes(data), codec.Defaults())", goName))
	b.Unindent()
	b.P("}")
	b.P0()
}

// emitParseField emits the case body reading one occurrence of field f off
// r into destExpr (an lvalue: a struct field selector, or a "var x T"-style
// temporary's name when asLvalue is false, used for oneof members where the
// decoded value must be boxed before assignment).
func (ctx *fileContext) emitParseField(b *WriteableBuffer, f resolvedField, destExpr string, asLvalue bool) {
	n := f.descriptor.GetNumber()
	switch {
	case f.kind == schema.Map:
		ctx.emitParseMapEntry(b, f, destExpr)
	case f.repeated && f.kind.Packable():
		b.P("if wireType == wire.LengthDelimited {")
		b.Indent()
		b.P("length, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		emitMaxSizeCheck(b, f.maxSize, f.goName, "length")
		b.P("payload, err := r.ReadBytes(int(length))")
		b.P("if err != nil { return err }")
		b.P("if err := sg.Add(len(payload)); err != nil { return err }")
		b.P("sub := buffer.NewBytes(payload)")
		b.P("for sub.Remaining() > 0 {")
		b.Indent()
		b.P("var elem " + goScalarType(f.kind))
		scalarReadStmt(b, f.kind, "elem")
		b.P(fmt.Sprintf("%s = append(%s, elem)", destExpr, destExpr))
		b.Unindent()
		b.P("}")
		b.Unindent()
		b.P("} else {")
		b.Indent()
		b.P("var elem " + goScalarType(f.kind))
		scalarReadStmt(b, f.kind, "elem")
		b.P(fmt.Sprintf("%s = append(%s, elem)", destExpr, destExpr))
		b.Unindent()
		b.P("}")
	case f.repeated:
		switch f.kind {
		case schema.String, schema.Bytes:
			ctx.emitParseLengthDelimitedScalar(b, f, "elem")
			b.P(fmt.Sprintf("%s = append(%s, elem)", destExpr, destExpr))
		case schema.Message:
			ctx.emitParseNestedMessage(b, f, "elem")
			b.P(fmt.Sprintf("%s = append(%s, elem)", destExpr, destExpr))
		case schema.Enum:
			b.P("ordVal, err := r.ReadVarint()")
			b.P("if err != nil { return err }")
			b.P(fmt.Sprintf("elem, _ := %sFromOrdinal(int32(int64(ordVal)))", f.enumGoType))
			b.P(fmt.Sprintf("%s = append(%s, elem)", destExpr, destExpr))
		}
	case f.wrapperElem != "":
		ctx.emitParseWrapper(b, f, destExpr)
	case f.optional:
		if f.kind == schema.String || f.kind == schema.Bytes {
			ctx.emitParseLengthDelimitedScalar(b, f, "v")
		} else {
			scalarReadStmtDeclared(b, f.kind, "v")
		}
		b.P(fmt.Sprintf("%s = runtime.Some(v)", destExpr))
	case f.kind == schema.String || f.kind == schema.Bytes:
		ctx.emitParseLengthDelimitedScalar(b, f, "v")
		b.P(destExpr + " = v")
	case f.kind == schema.Message:
		ctx.emitParseNestedMessage(b, f, "v")
		b.P(destExpr + " = v")
	case f.kind == schema.Enum:
		b.P("ordVal, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(fmt.Sprintf("v, _ := %sFromOrdinal(int32(int64(ordVal)))", f.enumGoType))
		b.P(destExpr + " = v")
	default:
		scalarReadStmtDeclared(b, f.kind, "v")
		b.P(destExpr + " = v")
	}
	_ = n
}

// scalarReadStmtDeclared predeclares destExpr (a bare local variable, not
// an existing struct-field selector) before handing off to scalarReadStmt,
// which only ever assigns to an existing lvalue.
func scalarReadStmtDeclared(b *WriteableBuffer, k schema.Kind, destExpr string) {
	b.P("var " + destExpr + " " + goScalarType(k))
	scalarReadStmt(b, k, destExpr)
}

func (ctx *fileContext) emitParseLengthDelimitedScalar(b *WriteableBuffer, f resolvedField, varName string) {
	k := f.kind
	b.P("length, err := r.ReadVarint()")
	b.P("if err != nil { return err }")
	emitMaxSizeCheck(b, f.maxSize, f.goName, "length")
	b.P("payload, err := r.ReadBytes(int(length))")
	b.P("if err != nil { return err }")
	b.P("if err := sg.Add(len(payload)); err != nil { return err }")
	if k == schema.String {
		b.P(varName + " := codec.OwnedString(payload)")
	} else {
		b.P(varName + " := codec.OwnedBytes(payload)")
	}
}

func (ctx *fileContext) emitParseNestedMessage(b *WriteableBuffer, f resolvedField, varName string) {
	b.P("length, err := r.ReadVarint()")
	b.P("if err != nil { return err }")
	emitMaxSizeCheck(b, f.maxSize, f.goName, "length")
	b.P("payload, err := r.ReadBytes(int(length))")
	b.P("if err != nil { return err }")
	b.P("if err := sg.Add(len(payload)); err != nil { return err }")
	b.P("if err := dg.Enter(); err != nil { return err }")
	b.P(fmt.Sprintf("%s := &%s{}", varName, f.messageGoType))
	b.P(fmt.Sprintf("if err := %s.unmarshalPB(buffer.NewBytes(payload), dg, sg, strict); err != nil {", varName))
	b.Indent()
	b.P("dg.Exit()")
	b.P("return err")
	b.Unindent()
	b.P("}")
	b.P("dg.Exit()")
}

func (ctx *fileContext) emitParseWrapper(b *WriteableBuffer, f resolvedField, destExpr string) {
	k := wrapperKindFor(f.wrapperElem)
	b.P("length, err := r.ReadVarint()")
	b.P("if err != nil { return err }")
	emitMaxSizeCheck(b, f.maxSize, f.goName, "length")
	b.P("payload, err := r.ReadBytes(int(length))")
	b.P("if err != nil { return err }")
	b.P("if err := sg.Add(len(payload)); err != nil { return err }")
	b.P("sub := buffer.NewBytes(payload)")
	b.P("var inner " + f.wrapperElem)
	b.P("for sub.Remaining() > 0 {")
	b.Indent()
	b.P("innerNum, innerWireType, err := wire.ReadTag(sub)")
	b.P("if err != nil { return err }")
	b.P("if innerNum == 1 {")
	b.Indent()
	if k == schema.String || k == schema.Bytes {
		b.P("innerLen, err := sub.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P("innerPayload, err := sub.ReadBytes(int(innerLen))")
		b.P("if err != nil { return err }")
		if k == schema.String {
			b.P("inner = codec.OwnedString(innerPayload)")
		} else {
			b.P("inner = codec.OwnedBytes(innerPayload)")
		}
	} else {
		scalarReadStmt(b, k, "inner")
	}
	b.Unindent()
	b.P("} else {")
	b.Indent()
	b.P("if err := wire.SkipField(sub, innerWireType); err != nil { return err }")
	b.Unindent()
	b.P("}")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("%s = runtime.Some(inner)", destExpr))
}

func (ctx *fileContext) emitParseMapEntry(b *WriteableBuffer, f resolvedField, destExpr string) {
	b.P("length, err := r.ReadVarint()")
	b.P("if err != nil { return err }")
	emitMaxSizeCheck(b, f.maxSize, f.goName, "length")
	b.P("payload, err := r.ReadBytes(int(length))")
	b.P("if err != nil { return err }")
	b.P("if err := sg.Add(len(payload)); err != nil { return err }")
	b.P("sub := buffer.NewBytes(payload)")
	b.P("var key " + f.mapKeyGoType)
	b.P("var value " + f.mapValGoType)
	b.P("for sub.Remaining() > 0 {")
	b.Indent()
	b.P("entryNum, entryWireType, err := wire.ReadTag(sub)")
	b.P("if err != nil { return err }")
	b.P("switch entryNum {")
	b.Indent()
	b.P("case 1:")
	b.Indent()
	scalarReadStmt(b, f.mapKeyKind, "key")
	b.Unindent()
	b.P("case 2:")
	b.Indent()
	switch f.mapValueKind {
	case schema.Message:
		b.P("innerLen, err := sub.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P("innerPayload, err := sub.ReadBytes(int(innerLen))")
		b.P("if err != nil { return err }")
		b.P("if err := dg.Enter(); err != nil { return err }")
		b.P("value = &" + f.messageGoType + "{}")
		b.P("if err := value.unmarshalPB(buffer.NewBytes(innerPayload), dg, sg, strict); err != nil {")
		b.Indent()
		b.P("dg.Exit()")
		b.P("return err")
		b.Unindent()
		b.P("}")
		b.P("dg.Exit()")
	case schema.String, schema.Bytes:
		b.P("innerLen, err := sub.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P("innerPayload, err := sub.ReadBytes(int(innerLen))")
		b.P("if err != nil { return err }")
		if f.mapValueKind == schema.String {
			b.P("value = codec.OwnedString(innerPayload)")
		} else {
			b.P("value = codec.OwnedBytes(innerPayload)")
		}
	case schema.Enum:
		b.P("ordVal, err := sub.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(fmt.Sprintf("value, _ = %sFromOrdinal(int32(int64(ordVal)))", f.enumGoType))
	default:
		scalarReadStmt(b, f.mapValueKind, "value")
	}
	b.Unindent()
	b.P("default:")
	b.Indent()
	b.P("if err := wire.SkipField(sub, entryWireType); err != nil { return err }")
	b.Unindent()
	b.Unindent()
	b.P("}")
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("if %s == nil {", destExpr))
	b.Indent()
	b.P(fmt.Sprintf("%s = make(%s)", destExpr, "map["+f.mapKeyGoType+"]"+f.mapValGoType))
	b.Unindent()
	b.P("}")
	b.P(fmt.Sprintf("%s[key] = value", destExpr))
}

func (ctx *fileContext) emitParseOneofMember(b *WriteableBuffer, goName string, g oneofGroup, mem resolvedField) {
	var varName string
	switch mem.kind {
	case schema.String, schema.Bytes:
		varName = "v"
		ctx.emitParseLengthDelimitedScalar(b, mem, varName)
	case schema.Message:
		varName = "v"
		ctx.emitParseNestedMessage(b, mem, varName)
	case schema.Enum:
		varName = "v"
		b.P("ordVal, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(fmt.Sprintf("v, _ := %sFromOrdinal(int32(int64(ordVal)))", mem.enumGoType))
	default:
		varName = "v"
		scalarReadStmtDeclared(b, mem.kind, varName)
	}
	b.P(fmt.Sprintf("m.%s = oneof.Of[%s, any](%s, %s)", g.name, g.kindType(goName), g.memberConst(goName, mem), varName))
}
