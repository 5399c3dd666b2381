package generator

import (
	"fmt"
	"strings"

	"github.com/pbj-go/pbj/schema"
)

// wireTypeExpr names the wire.Type constant a field's encoding uses.
func wireTypeExpr(k schema.Kind) string {
	switch k {
	case schema.Int32, schema.Int64, schema.UInt32, schema.UInt64,
		schema.SInt32, schema.SInt64, schema.Bool, schema.Enum:
		return "wire.Varint"
	case schema.Fixed64, schema.SFixed64, schema.Double:
		return "wire.Fixed64"
	case schema.Fixed32, schema.SFixed32, schema.Float:
		return "wire.Fixed32"
	default:
		return "wire.LengthDelimited"
	}
}

// expectedWireTypes lists the wire.Type expression(s) a tag for field f
// may legally carry. Most fields accept exactly one; a packable repeated
// scalar field also accepts the packed length-delimited encoding on top
// of its own unpacked element wire type, since proto3 readers must
// accept either form from a producer.
func expectedWireTypes(f resolvedField) []string {
	switch {
	case f.kind == schema.Map:
		return []string{"wire.LengthDelimited"}
	case f.repeated && f.kind.Packable():
		return []string{"wire.LengthDelimited", wireTypeExpr(f.kind)}
	case f.repeated:
		return []string{"wire.LengthDelimited"}
	case f.wrapperElem != "":
		return []string{"wire.LengthDelimited"}
	default:
		return []string{wireTypeExpr(f.kind)}
	}
}

// emitMaxSizeCheck enforces a field's pbj.max_size override, when
// declared, against a just-decoded length-delimited field's own declared
// length -- checked before the payload is read off the cursor, so an
// oversized declared length fails SizeExceeded without ever allocating
// or copying the payload. A zero maxSize (the option unset) emits
// nothing and leaves sizing entirely to the parse call's shared
// SizeGuard.
func emitMaxSizeCheck(b *WriteableBuffer, maxSize uint32, fieldName, lengthVar string) {
	if maxSize == 0 {
		return
	}
	b.P(fmt.Sprintf("if %s > %d {", lengthVar, maxSize))
	b.Indent()
	b.P(fmt.Sprintf(
		"return pberrors.Newf(pberrors.SizeExceeded, \"field %s: length %%d exceeds pbj.max_size %d\", %s)",
		fieldName, maxSize, lengthVar,
	))
	b.Unindent()
	b.P("}")
}

// emitWireTypeCheck rejects a tag whose wire type doesn't match any of
// f's expected encodings before the case body reads a single byte of it,
// so a corrupt or adversarial tag (including a group tag on a field
// number that happens to be declared) can never be misread as if it
// carried the schema's expected shape.
func emitWireTypeCheck(b *WriteableBuffer, goName string, f resolvedField) {
	types := expectedWireTypes(f)
	conds := make([]string, len(types))
	for i, t := range types {
		conds[i] = "wireType != " + t
	}
	want := strings.Join(types, " or ")
	b.P("if " + strings.Join(conds, " && ") + " {")
	b.Indent()
	b.P(fmt.Sprintf(
		"return pberrors.Newf(pberrors.WireTypeMismatch, \"%s.%s: field %d: wire type %%s does not match %s\", wireType)",
		goName, f.goName, f.descriptor.GetNumber(), want,
	))
	b.Unindent()
	b.P("}")
}

// scalarWriteStmt emits the statement writing valueExpr (already of the
// field's Go scalar type) as field fieldNumber's tagged value. When
// withTag is false, only the value bytes are written (used for packed
// repeated encoding, where one tag covers the whole packed payload).
func scalarWriteStmt(b *WriteableBuffer, fieldNumber int32, k schema.Kind, valueExpr string, withTag bool) {
	if withTag {
		b.P(fmt.Sprintf("if err := wire.WriteTag(w, %d, %s); err != nil {", fieldNumber, wireTypeExpr(k)))
		b.Indent()
		b.P("return err")
		b.Unindent()
		b.P("}")
	}
	switch k {
	case schema.Int32:
		b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(int64(%s))); err != nil {", valueExpr))
	case schema.Int64:
		b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(%s)); err != nil {", valueExpr))
	case schema.UInt32, schema.UInt64:
		b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(%s)); err != nil {", valueExpr))
	case schema.SInt32:
		b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(wire.ZigZagEncode32(%s))); err != nil {", valueExpr))
	case schema.SInt64:
		b.P(fmt.Sprintf("if err := wire.WriteVarint(w, wire.ZigZagEncode(%s)); err != nil {", valueExpr))
	case schema.Bool:
		b.P(fmt.Sprintf("boolVarint := uint64(0); if %s { boolVarint = 1 }", valueExpr))
		b.P("if err := wire.WriteVarint(w, boolVarint); err != nil {")
	case schema.Fixed32:
		b.P(fmt.Sprintf("if err := wire.WriteFixed32(w, %s); err != nil {", valueExpr))
	case schema.SFixed32:
		b.P(fmt.Sprintf("if err := wire.WriteFixed32(w, uint32(%s)); err != nil {", valueExpr))
	case schema.Float:
		b.P(fmt.Sprintf("if err := wire.WriteFixed32(w, wire.EncodeFloat32(%s)); err != nil {", valueExpr))
	case schema.Fixed64:
		b.P(fmt.Sprintf("if err := wire.WriteFixed64(w, %s); err != nil {", valueExpr))
	case schema.SFixed64:
		b.P(fmt.Sprintf("if err := wire.WriteFixed64(w, uint64(%s)); err != nil {", valueExpr))
	case schema.Double:
		b.P(fmt.Sprintf("if err := wire.WriteFixed64(w, wire.EncodeFloat64(%s)); err != nil {", valueExpr))
	case schema.Enum:
		b.P(fmt.Sprintf("if err := wire.WriteVarint(w, uint64(int64(%s.ProtoOrdinal()))); err != nil {", valueExpr))
	}
	b.Indent()
	b.P("return err")
	b.Unindent()
	b.P("}")
}

// scalarMeasureExpr returns a Go expression computing the measured wire
// size of one scalar field value. When withTag is false, the tag's own
// size is excluded (used for packed repeated encoding, which writes one
// tag for the whole payload).
func scalarMeasureExpr(fieldNumber int32, k schema.Kind, valueExpr string, withTag bool) string {
	var valueSize string
	switch k {
	case schema.Int32:
		valueSize = fmt.Sprintf("wire.SizeVarint(uint64(int64(%s)))", valueExpr)
	case schema.Int64, schema.UInt32, schema.UInt64:
		valueSize = fmt.Sprintf("wire.SizeVarint(uint64(%s))", valueExpr)
	case schema.SInt32:
		valueSize = fmt.Sprintf("wire.SizeVarint(uint64(wire.ZigZagEncode32(%s)))", valueExpr)
	case schema.SInt64:
		valueSize = fmt.Sprintf("wire.SizeVarint(wire.ZigZagEncode(%s))", valueExpr)
	case schema.Bool:
		valueSize = "1"
	case schema.Fixed32, schema.SFixed32, schema.Float:
		valueSize = "4"
	case schema.Fixed64, schema.SFixed64, schema.Double:
		valueSize = "8"
	case schema.Enum:
		valueSize = fmt.Sprintf("wire.SizeVarint(uint64(int64(%s.ProtoOrdinal())))", valueExpr)
	default:
		valueSize = "0"
	}
	if !withTag {
		return valueSize
	}
	return fmt.Sprintf("wire.SizeVarint(wire.EncodeTag(%d, %s)) + %s", fieldNumber, wireTypeExpr(k), valueSize)
}

// scalarReadStmt emits the statement(s) reading one value of kind k off
// cursor r and assigning it to destExpr (an existing lvalue of the
// field's Go scalar type; callers predeclare destExpr when it isn't
// already a struct field selector). The raw wire value is always read
// into a block-scoped "raw" temporary so destExpr may itself be named
// "v" without colliding. Every branch returns a bare "err" on failure,
// matching unmarshalPB's (error) signature.
func scalarReadStmt(b *WriteableBuffer, k schema.Kind, destExpr string) {
	b.P("{")
	switch k {
	case schema.Int32:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = int32(int64(raw))")
	case schema.Int64:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = int64(raw)")
	case schema.UInt32:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = uint32(raw)")
	case schema.UInt64:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = raw")
	case schema.SInt32:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = wire.ZigZagDecode32(uint32(raw))")
	case schema.SInt64:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = wire.ZigZagDecode(raw)")
	case schema.Bool:
		b.P("raw, err := r.ReadVarint()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = raw != 0")
	case schema.Fixed32:
		b.P("raw, err := r.ReadFixed32()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = raw")
	case schema.SFixed32:
		b.P("raw, err := r.ReadFixed32()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = int32(raw)")
	case schema.Float:
		b.P("raw, err := r.ReadFixed32()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = wire.DecodeFloat32(raw)")
	case schema.Fixed64:
		b.P("raw, err := r.ReadFixed64()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = raw")
	case schema.SFixed64:
		b.P("raw, err := r.ReadFixed64()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = int64(raw)")
	case schema.Double:
		b.P("raw, err := r.ReadFixed64()")
		b.P("if err != nil { return err }")
		b.P(destExpr + " = wire.DecodeFloat64(raw)")
	}
	b.P("}")
}
