package generator

import (
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/pbj-go/pbj/buffer"
	"github.com/pbj-go/pbj/wire"
)

// Custom option extension numbers. The option-defining .proto
// (pbj/options.proto, not compiled into protoc's well-known registry
// when this plugin runs standalone) declares:
//
//	extend google.protobuf.MessageOptions {
//	  string comparable = 50501;
//	}
//	extend google.protobuf.FieldOptions {
//	  uint32 max_size = 50502;
//	}
//
// pbj.comparable is message-level: a comma-separated, ordered list of
// field names declaring a total-ordering key, e.g.
// `option (pbj.comparable) = "last_name,first_name";`. pbj.max_size is
// field-level: a per-field override of the parse call's max_size bound.
//
// Because protoc-gen-pbj never links either extension's generated Go
// type in, proto.Unmarshal leaves these bytes in the options message's
// unknown-field area instead of a typed field. We decode them back out
// ourselves with the wire package, the same wire package the generated
// codecs use -- this generator depends on its own runtime the way
// protoc-gen-go depends on google.golang.org/protobuf.
const (
	comparableExtensionNumber = 50501
	maxSizeExtensionNumber    = 50502
)

// readMessageOptions scans a MessageOptions message's unrecognized bytes
// for the pbj.comparable extension, returning its raw comma-separated
// field list ("" if unset).
func readMessageOptions(opts *descriptorpb.MessageOptions) (comparableKey string, err error) {
	if opts == nil {
		return "", nil
	}
	raw := opts.ProtoReflect().GetUnknown()
	if len(raw) == 0 {
		return "", nil
	}

	cur := buffer.NewBytes(raw)
	for cur.Remaining() > 0 {
		number, wireType, terr := wire.ReadTag(cur)
		if terr != nil {
			return "", terr
		}
		switch number {
		case comparableExtensionNumber:
			length, lerr := cur.ReadVarint()
			if lerr != nil {
				return "", lerr
			}
			payload, perr := cur.ReadBytes(int(length))
			if perr != nil {
				return "", perr
			}
			comparableKey = string(payload)
		default:
			if serr := wire.SkipField(cur, wireType); serr != nil {
				return "", serr
			}
		}
	}
	return comparableKey, nil
}

// readFieldOptions scans a FieldOptions message's unrecognized bytes for
// the pbj.max_size extension.
func readFieldOptions(opts *descriptorpb.FieldOptions) (maxSize uint32, hasMaxSize bool, err error) {
	if opts == nil {
		return 0, false, nil
	}
	raw := opts.ProtoReflect().GetUnknown()
	if len(raw) == 0 {
		return 0, false, nil
	}

	cur := buffer.NewBytes(raw)
	for cur.Remaining() > 0 {
		number, wireType, terr := wire.ReadTag(cur)
		if terr != nil {
			return 0, false, terr
		}
		switch number {
		case maxSizeExtensionNumber:
			v, rerr := cur.ReadVarint()
			if rerr != nil {
				return 0, false, rerr
			}
			maxSize = uint32(v)
			hasMaxSize = true
		default:
			if serr := wire.SkipField(cur, wireType); serr != nil {
				return 0, false, serr
			}
		}
	}
	return maxSize, hasMaxSize, nil
}
