package generator

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbj-go/pbj/pberrors"
)

// isMapField reports whether field is a proto3 map field, detected the
// same way the teacher's isMapField does: a repeated message field whose
// referenced type is a synthetic nested MapEntry message. Unlike the
// teacher, which must synthesize an Entry/List wrapper message because
// Solidity has no generic map type, Go has a native map[K]V -- so this
// generator stops at detection and emits a plain Go map field, with no
// wrapper message synthesis step at all.
func isMapField(field *descriptorpb.FieldDescriptorProto, parent *descriptorpb.DescriptorProto) bool {
	if !isFieldRepeated(field) || field.GetType() != descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
		return false
	}
	entry := mapEntryType(field, parent)
	return entry != nil
}

// mapEntryType returns the synthetic MapEntry nested message backing a
// map field, or nil if field isn't a map field.
func mapEntryType(field *descriptorpb.FieldDescriptorProto, parent *descriptorpb.DescriptorProto) *descriptorpb.DescriptorProto {
	typeName := strings.TrimPrefix(field.GetTypeName(), ".")
	parts := strings.Split(typeName, ".")
	simple := parts[len(parts)-1]

	for _, nested := range parent.GetNestedType() {
		if nested.GetName() == simple && nested.GetOptions().GetMapEntry() {
			return nested
		}
	}
	return nil
}

// mapKeyValueFields extracts the key and value FieldDescriptorProto from
// a map field's synthetic entry message.
func mapKeyValueFields(field *descriptorpb.FieldDescriptorProto, parent *descriptorpb.DescriptorProto) (key, value *descriptorpb.FieldDescriptorProto, err error) {
	entry := mapEntryType(field, parent)
	if entry == nil {
		return nil, nil, pberrors.Newf(pberrors.Generator, "field %s: not a map field", field.GetName())
	}
	if len(entry.GetField()) != 2 {
		return nil, nil, pberrors.Newf(pberrors.Generator, "field %s: malformed map entry message", field.GetName())
	}
	for _, f := range entry.GetField() {
		switch f.GetName() {
		case "key":
			key = f
		case "value":
			value = f
		}
	}
	if key == nil || value == nil {
		return nil, nil, pberrors.Newf(pberrors.Generator, "field %s: map entry missing key or value", field.GetName())
	}
	return key, value, nil
}
