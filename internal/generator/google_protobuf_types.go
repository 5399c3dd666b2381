package generator

import "strings"

// wrapperScalarGoType maps a google.protobuf.*Value wrapper message's
// fully-qualified name to the Go scalar type its single "value" field
// holds. A field referencing one of these wrapper types is generated as
// runtime.Optional[T] instead of a pointer to a generated wrapper
// message struct -- the idiomatic Go shape for "optional scalar with
// explicit presence" that the teacher's Solidity target had no
// equivalent for (hence google_protobuf_types.go there hand-rolling
// placeholder structs for Timestamp/Struct/Empty instead). Timestamp,
// Duration, Struct, Value, Empty and the other non-*Value well-known
// types are ordinary generated messages here, not special-cased.
var wrapperScalarGoType = map[string]string{
	"google.protobuf.DoubleValue": "float64",
	"google.protobuf.FloatValue":  "float32",
	"google.protobuf.Int64Value":  "int64",
	"google.protobuf.UInt64Value": "uint64",
	"google.protobuf.Int32Value":  "int32",
	"google.protobuf.UInt32Value": "uint32",
	"google.protobuf.BoolValue":   "bool",
	"google.protobuf.StringValue": "string",
	"google.protobuf.BytesValue":  "[]byte",
}

// wrapperGoType looks up the Optional[T] element type for a field's
// referenced message type name (fully qualified, leading dot stripped),
// returning ok=false for every type that isn't a *Value wrapper.
func wrapperGoType(fullyQualifiedTypeName string) (goType string, ok bool) {
	name := strings.TrimPrefix(fullyQualifiedTypeName, ".")
	t, ok := wrapperScalarGoType[name]
	return t, ok
}
