package generator

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbj-go/pbj/pberrors"
	"github.com/pbj-go/pbj/schema"
)

// checkSyntaxVersion validates the protobuf syntax version, unchanged
// from the teacher: this generator, like protobuf3-solidity, only
// supports proto3.
func checkSyntaxVersion(v string) error {
	if v != "proto3" {
		return pberrors.New(pberrors.Generator, "must use syntax = \"proto3\";")
	}
	return nil
}

// checkDuplicateFieldNumbers reports a GeneratorError if two fields (or
// two oneof members, which the descriptor also carries as ordinary
// fields) share a field number within one message.
func checkDuplicateFieldNumbers(msg *descriptorpb.DescriptorProto) error {
	seen := make(map[int32]string, len(msg.GetField()))
	for _, f := range msg.GetField() {
		if prior, ok := seen[f.GetNumber()]; ok {
			return pberrors.Newf(pberrors.Generator, "message %s: fields %q and %q both use field number %d",
				msg.GetName(), prior, f.GetName(), f.GetNumber())
		}
		seen[f.GetNumber()] = f.GetName()
	}
	return nil
}

// checkFieldNumberRange rejects field numbers outside the wire format's
// legal range, including the reserved 19000-19999 block, the same bound
// wire.ValidFieldNumber enforces on the decode side -- checked here too
// so a bad .proto fails at generation time rather than producing a codec
// that can never successfully write one of its own fields.
func checkFieldNumberRange(msg *descriptorpb.DescriptorProto) error {
	for _, f := range msg.GetField() {
		n := f.GetNumber()
		if n < 1 || n > (1<<29-1) {
			return pberrors.Newf(pberrors.Generator, "message %s: field %q number %d out of range", msg.GetName(), f.GetName(), n)
		}
		if n >= 19000 && n <= 19999 {
			return pberrors.Newf(pberrors.Generator, "message %s: field %q number %d falls in the reserved range 19000-19999", msg.GetName(), f.GetName(), n)
		}
	}
	return nil
}

// checkDuplicateTypeNames reports a GeneratorError if two messages or
// enums in the same file would flatten to the same Go identifier --
// e.g. two distinct nested types named "Entry" under different parents
// both flattening to "Entry" -- since the teacher's own nested-type
// flattening (enhanced_features.go) can otherwise silently collide.
func checkDuplicateTypeNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return pberrors.Newf(pberrors.Generator, "duplicate generated type name %q after flattening", n)
		}
		seen[n] = true
	}
	return nil
}

// isComparableKind reports whether Compare can order a field of kind k
// directly with Go's </> operators (or, for Enum, its ProtoOrdinal()).
// Bytes, Message and Map never can: slices and maps aren't ordered, and
// a nested message's own comparability would need a recursive pass this
// generator doesn't attempt.
func isComparableKind(k schema.Kind) bool {
	switch k {
	case schema.Bytes, schema.Message, schema.Map:
		return false
	default:
		return true
	}
}

// resolveComparableKey validates msgName's pbj.comparable declaration (a
// comma-separated, ordered list of field names) against its resolved
// fields and returns them in declared order, precisely identifying the
// offending field on any rejection. An empty key (option unset) returns
// a nil slice and no error.
func resolveComparableKey(msgName, key string, fields []resolvedField) ([]resolvedField, error) {
	if key == "" {
		return nil, nil
	}
	byName := make(map[string]resolvedField, len(fields))
	for _, f := range fields {
		byName[f.descriptor.GetName()] = f
	}
	names := strings.Split(key, ",")
	out := make([]resolvedField, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		f, ok := byName[name]
		if !ok {
			return nil, pberrors.Newf(pberrors.Generator, "message %s: pbj.comparable names unknown field %q", msgName, name)
		}
		if f.repeated {
			return nil, pberrors.Newf(pberrors.Generator, "message %s: pbj.comparable field %q is repeated, which Go cannot compare with ==", msgName, name)
		}
		if f.oneOf != schema.NoOneOf {
			return nil, pberrors.Newf(pberrors.Generator, "message %s: pbj.comparable field %q is a oneof member", msgName, name)
		}
		if !isComparableKind(f.kind) {
			return nil, pberrors.Newf(pberrors.Generator, "message %s: pbj.comparable field %q has non-comparable kind %s", msgName, name, f.kind)
		}
		out = append(out, f)
	}
	return out, nil
}
