package generator

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/pbj-go/pbj/schema"
)

// resolvedField is everything the model/schema/codec emitters need to
// know about one field, after oneof/map/wrapper/enum resolution -- the
// Go-targeting analogue of the teacher's per-field dispatch inside
// field_generator.go, just computed once up front instead of recomputed
// inline at each emission site.
type resolvedField struct {
	descriptor *descriptorpb.FieldDescriptorProto
	goName     string // exported Go field name
	jsonName   string // lowerCamelCase
	kind       schema.Kind
	repeated   bool
	oneOf      schema.OneOfID // schema.NoOneOf if not part of a oneof
	groupName  string         // exported oneof group name, set when oneOf != NoOneOf
	optional   bool           // proto3 "optional" scalar (synthetic one-field oneof)
	maxSize    uint32

	goType string // the Go type of the struct field (post map/wrapper/optional resolution)

	// populated when kind == Message or Enum (or Map's value is one)
	messageGoType string
	enumGoType    string

	// populated when kind == Map
	mapKeyKind   schema.Kind
	mapValueKind schema.Kind
	mapKeyGoType string
	mapValGoType string

	wrapperElem string // non-"" if this field references a google.protobuf.*Value wrapper
}

// resolveFields computes a resolvedField for every declared field of msg,
// in declaration order, resolving nested/oneof/map/wrapper specifics
// against ctx's cross-file registries.
func (ctx *fileContext) resolveFields(msg *descriptorpb.DescriptorProto) ([]resolvedField, error) {
	oneOfSynthetic := make([]bool, len(msg.GetOneofDecl()))
	// A oneof generated purely to carry one proto3 "optional" field is
	// "synthetic": descriptorpb marks the member field's
	// Proto3Optional=true. We treat those as Optional[T] fields, not as
	// real oneof groups.
	for _, f := range msg.GetField() {
		if f.GetProto3Optional() && f.OneofIndex != nil {
			oneOfSynthetic[f.GetOneofIndex()] = true
		}
	}

	out := make([]resolvedField, 0, len(msg.GetField()))
	for _, f := range msg.GetField() {
		rf := resolvedField{
			descriptor: f,
			goName:     ExportName(f.GetName()),
			jsonName:   lowerCamel(f.GetName()),
			repeated:   isFieldRepeated(f) && !f.GetProto3Optional(),
		}

		maxSize, hasMaxSize, err := readFieldOptions(f.GetOptions())
		if err != nil {
			return nil, fmt.Errorf("field %s: decoding custom options: %w", f.GetName(), err)
		}
		if hasMaxSize {
			rf.maxSize = maxSize
		}

		if f.OneofIndex != nil && !oneOfSynthetic[f.GetOneofIndex()] {
			rf.oneOf = schema.OneOfID(f.GetOneofIndex() + 1)
			rf.groupName = ExportName(msg.GetOneofDecl()[f.GetOneofIndex()].GetName())
		}
		if f.GetProto3Optional() {
			rf.optional = true
		}

		kind, err := fieldKind(f)
		if err != nil {
			return nil, err
		}
		rf.kind = kind

		switch kind {
		case schema.Message:
			if w, ok := wrapperGoType(f.GetTypeName()); ok {
				rf.wrapperElem = w
				rf.goType = "runtime.Optional[" + w + "]"
				out = append(out, rf)
				continue
			}
			if isMapField(f, msg) {
				key, val, merr := mapKeyValueFields(f, msg)
				if merr != nil {
					return nil, merr
				}
				keyKind, kerr := fieldKind(key)
				if kerr != nil {
					return nil, kerr
				}
				valKind, verr := fieldKind(val)
				if verr != nil {
					return nil, verr
				}
				rf.kind = schema.Map
				rf.mapKeyKind = keyKind
				rf.mapValueKind = valKind
				rf.mapKeyGoType = goScalarType(keyKind)
				if valKind == schema.Message {
					rf.mapValGoType = "*" + typeName(val.GetTypeName(), ctx.pkg)
					rf.messageGoType = strings.TrimPrefix(rf.mapValGoType, "*")
				} else if valKind == schema.Enum {
					rf.mapValGoType = typeName(val.GetTypeName(), ctx.pkg)
					rf.enumGoType = rf.mapValGoType
				} else {
					rf.mapValGoType = goScalarType(valKind)
				}
				rf.goType = "map[" + rf.mapKeyGoType + "]" + rf.mapValGoType
				out = append(out, rf)
				continue
			}
			rf.messageGoType = typeName(f.GetTypeName(), ctx.pkg)
			if rf.repeated {
				rf.goType = "[]*" + rf.messageGoType
			} else {
				rf.goType = "*" + rf.messageGoType
			}
		case schema.Enum:
			rf.enumGoType = typeName(f.GetTypeName(), ctx.pkg)
			if rf.repeated {
				rf.goType = "[]" + rf.enumGoType
			} else {
				rf.goType = rf.enumGoType
			}
		default:
			scalar := goScalarType(kind)
			switch {
			case rf.repeated:
				rf.goType = "[]" + scalar
			case rf.optional:
				rf.goType = "runtime.Optional[" + scalar + "]"
			default:
				rf.goType = scalar
			}
		}

		out = append(out, rf)
	}
	return out, nil
}

func lowerCamel(snake string) string {
	var b strings.Builder
	upperNext := false
	for i, r := range snake {
		switch {
		case r == '_':
			upperNext = true
		case upperNext:
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			upperNext = false
		case i == 0:
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// generateMessage emits the full file set for one message: model,
// schema, protobuf codec, JSON codec, test factory, the Hash/Equal
// methods, and -- when the message declares pbj.comparable -- a Compare
// total order over its declared key fields.
func (ctx *fileContext) generateMessage(fm flatMessage) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	goName := flatGoName(fm.localName)
	fields, err := ctx.resolveFields(fm.descriptor)
	if err != nil {
		return nil, err
	}

	var files []*pluginpb.CodeGeneratorResponse_File

	model := ctx.emitModel(goName, fields)
	files = append(files, responseFile(ctx.fileNameFor(goName, "pbj"), model))

	sch := ctx.emitSchema(goName, fields)
	files = append(files, responseFile(ctx.fileNameFor(goName, "schema.pbj"), sch))

	pb := ctx.emitProtoCodec(goName, fields)
	files = append(files, responseFile(ctx.fileNameFor(goName, "pb.pbj"), pb))

	j := ctx.emitJSONCodec(goName, fields)
	files = append(files, responseFile(ctx.fileNameFor(goName, "json.pbj"), j))

	tf := ctx.emitTestFactory(goName, fields)
	files = append(files, responseFile(ctx.fileNameFor(goName, "testfactory.pbj"), tf))

	eq := ctx.emitEquality(goName, fields)
	files = append(files, responseFile(ctx.fileNameFor(goName, "equal.pbj"), eq))

	comparableKey, err := readMessageOptions(fm.descriptor.GetOptions())
	if err != nil {
		return nil, fmt.Errorf("message %s: decoding custom options: %w", goName, err)
	}
	keyFields, err := resolveComparableKey(goName, comparableKey, fields)
	if err != nil {
		return nil, err
	}
	if len(keyFields) > 0 {
		cmp := ctx.emitComparator(goName, keyFields)
		files = append(files, responseFile(ctx.fileNameFor(goName, "comparator.pbj"), cmp))
	}

	return files, nil
}

func (ctx *fileContext) fileNameFor(goName, suffix string) string {
	return ctx.dir + "/" + snakeCase(goName) + "." + suffix + ".go"
}
