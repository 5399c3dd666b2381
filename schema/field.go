// Package schema holds the per-message metadata the generator emits as a
// compile-time constant table: an ordered list of FieldDefinitions plus a
// fast number-to-definition lookup. The generated binary and JSON codecs
// do not consult it: they carry field numbers and JSON names as literals
// in their own switch cases and tag writes.
package schema

// Kind enumerates every scalar/container kind a proto3 field can carry.
type Kind int

const (
	Int32 Kind = iota
	Int64
	UInt32
	UInt64
	SInt32
	SInt64
	Fixed32
	Fixed64
	SFixed32
	SFixed64
	Float
	Double
	Bool
	String
	Bytes
	Enum
	Message
	Map
)

func (k Kind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case SInt32:
		return "sint32"
	case SInt64:
		return "sint64"
	case Fixed32:
		return "fixed32"
	case Fixed64:
		return "fixed64"
	case SFixed32:
		return "sfixed32"
	case SFixed64:
		return "sfixed64"
	case Float:
		return "float"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Enum:
		return "enum"
	case Message:
		return "message"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Packable reports whether repeated fields of this kind may use the
// packed length-delimited encoding. Message, string, bytes and map are
// never packable.
func (k Kind) Packable() bool {
	switch k {
	case String, Bytes, Message, Map:
		return false
	default:
		return true
	}
}

// OneOfID names a oneof group within a single message's field list.
type OneOfID int

// NoOneOf is the zero value of OneOfID, meaning "not part of any oneof".
const NoOneOf OneOfID = 0

// FieldDefinition is the immutable metadata the generator emits for one
// field (or one oneof member, which is flattened to its own
// FieldDefinition carrying a non-zero OneOf).
type FieldDefinition struct {
	Number         uint32
	Name           string
	Kind           Kind
	Repeated       bool
	OneOf          OneOfID
	OptionalWrapper bool
	MaxSize        uint32 // 0 means "no per-field override"

	// MapKey/MapValue are populated only when Kind == Map.
	MapKey   Kind
	MapValue Kind

	// MessageType/EnumType name the referenced generated type for
	// Message and Enum kinds (and for Map values of those kinds);
	// empty for every other kind.
	MessageType string
	EnumType    string
}
