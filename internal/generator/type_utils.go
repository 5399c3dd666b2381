package generator

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbj-go/pbj/schema"
)

// goKeywords sanitizeName must rename away from, the same role
// solidityReservedKeywords played in the teacher's type_utils.go.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// sanitizeName renames a proto identifier that collides with a Go keyword
// by appending an underscore, matching the teacher's leading-underscore
// sanitization in spirit (Go allows a trailing underscore; a leading one
// would look like an unexported field, which is wrong for every case
// this function covers).
func sanitizeName(name string) string {
	if goKeywords[name] {
		return name + "_"
	}
	return name
}

// fieldKind maps a descriptor field type to the runtime schema.Kind the
// generated codec dispatches on, mirroring how the teacher's typeToSol
// dispatches protobuf types to Solidity types -- except every case here
// is representable, since Go (unlike Solidity) has native 64-bit floats,
// enums-as-ints, byte slices and message pointers.
func fieldKind(fd *descriptorpb.FieldDescriptorProto) (schema.Kind, error) {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return schema.Double, nil
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return schema.Float, nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return schema.Int64, nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return schema.UInt64, nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return schema.Int32, nil
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return schema.Fixed64, nil
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return schema.Fixed32, nil
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return schema.Bool, nil
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return schema.String, nil
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return 0, fmt.Errorf("field %s: groups are not supported", fd.GetName())
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		return schema.Message, nil
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return schema.Bytes, nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return schema.UInt32, nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return schema.Enum, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return schema.SFixed32, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return schema.SFixed64, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return schema.SInt32, nil
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return schema.SInt64, nil
	default:
		return 0, fmt.Errorf("field %s: unsupported field type %s", fd.GetName(), fd.GetType())
	}
}

// goScalarType returns the Go type a schema.Kind's generated struct field
// holds, for every kind except Message/Enum/Map (whose Go type is the
// referenced generated type, resolved separately via typeName).
func goScalarType(k schema.Kind) string {
	switch k {
	case schema.Int32, schema.SInt32, schema.SFixed32:
		return "int32"
	case schema.Int64, schema.SInt64, schema.SFixed64:
		return "int64"
	case schema.UInt32, schema.Fixed32:
		return "uint32"
	case schema.UInt64, schema.Fixed64:
		return "uint64"
	case schema.Float:
		return "float32"
	case schema.Double:
		return "float64"
	case schema.Bool:
		return "bool"
	case schema.String:
		return "string"
	case schema.Bytes:
		return "[]byte"
	default:
		return ""
	}
}

// wireFunctionSuffix returns the CamelCase name of a scalar kind, e.g.
// schema.Int32 -> "Int32", and "" for Message/Enum/Map.
func wireFunctionSuffix(k schema.Kind) string {
	switch k {
	case schema.Int32:
		return "Int32"
	case schema.Int64:
		return "Int64"
	case schema.UInt32:
		return "UInt32"
	case schema.UInt64:
		return "UInt64"
	case schema.SInt32:
		return "SInt32"
	case schema.SInt64:
		return "SInt64"
	case schema.Fixed32:
		return "Fixed32"
	case schema.Fixed64:
		return "Fixed64"
	case schema.SFixed32:
		return "SFixed32"
	case schema.SFixed64:
		return "SFixed64"
	case schema.Float:
		return "Float"
	case schema.Double:
		return "Double"
	case schema.Bool:
		return "Bool"
	case schema.String:
		return "String"
	case schema.Bytes:
		return "Bytes"
	default:
		return ""
	}
}

// typeName resolves a field's referenced message/enum type name (as it
// appears on FieldDescriptorProto.TypeName, fully package-qualified with
// a leading dot) to the Go identifier the generator emits for it:
// nested types are flattened with an underscore, mirroring the teacher's
// nested-type flattening in enhanced_features.go. A reference inside
// currentPackage has that package prefix stripped; a reference to any
// other package is flattened whole, package components included, into one
// underscore-joined identifier, and no import of that package is emitted.
func typeName(raw string, currentPackage string) string {
	raw = strings.TrimPrefix(raw, ".")
	parts := strings.Split(raw, ".")

	// Since descriptorpb gives us no direct signal of where the package ends and the
	// message path begins beyond FileDescriptorProto.Package, callers
	// that know the owning file's package pass it in currentPackage and
	// we strip exactly that prefix when present.
	pkgParts := strings.Split(currentPackage, ".")
	if currentPackage != "" && len(parts) > len(pkgParts) && strings.HasPrefix(raw, currentPackage+".") {
		parts = parts[len(pkgParts):]
		return strings.Join(parts, "_")
	}
	return strings.Join(parts, "_")
}
