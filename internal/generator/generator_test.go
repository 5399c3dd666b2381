package generator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/pbj-go/pbj/internal/generator"
)

// compile parses source (a single .proto file's text) in-memory and
// returns the CodeGeneratorRequest a real protoc/buf invocation would
// hand the plugin, letting the generator be exercised end-to-end
// without ever shelling out to protoc.
func compile(t *testing.T, filename, source string) *pluginpb.CodeGeneratorRequest {
	t.Helper()
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(map[string]string{filename: source}),
		}),
	}
	files, err := compiler.Compile(context.Background(), filename)
	require.NoError(t, err)
	require.Len(t, files, 1)

	fdp := protodesc.ToFileDescriptorProto(files[0])
	return &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{filename},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{fdp},
	}
}

func fileNamed(t *testing.T, resp *pluginpb.CodeGeneratorResponse, suffix string) *pluginpb.CodeGeneratorResponse_File {
	t.Helper()
	for _, f := range resp.GetFile() {
		if strings.HasSuffix(f.GetName(), suffix) {
			return f
		}
	}
	return nil
}

const simpleProto = `
syntax = "proto3";
package example.v1;

message Point {
  int32 x = 1;
  int32 y = 2;
  string label = 3;
}
`

func TestGenerateSimpleMessage(t *testing.T) {
	t.Parallel()
	req := compile(t, "simple.proto", simpleProto)

	g := generator.New(req, "test")
	require.NoError(t, g.ParseParameters())
	resp, err := g.Generate()
	require.NoError(t, err)
	assert.Empty(t, resp.GetError())

	model := fileNamed(t, resp, "point.pbj.go")
	require.NotNil(t, model)
	assert.Contains(t, model.GetContent(), "type Point struct")

	pb := fileNamed(t, resp, "point.pb.pbj.go")
	require.NotNil(t, pb)
	assert.Contains(t, pb.GetContent(), "func (m *Point) Write(w buffer.Writer) error")
	assert.Contains(t, pb.GetContent(), "func ParsePoint(r buffer.Reader")
	assert.Contains(t, pb.GetContent(), "pberrors.WireTypeMismatch")

	jsonFile := fileNamed(t, resp, "point.json.pbj.go")
	require.NotNil(t, jsonFile)
	assert.Contains(t, jsonFile.GetContent(), "func (m *Point) WriteJSON() ([]byte, error)")

	tf := fileNamed(t, resp, "point.testfactory.pbj.go")
	require.NotNil(t, tf)
	assert.Contains(t, tf.GetContent(), "func RandomPoint(r *rand.Rand) *Point")

	eq := fileNamed(t, resp, "point.equal.pbj.go")
	require.NotNil(t, eq)
	assert.Contains(t, eq.GetContent(), "func (m *Point) Hash() uint64")
	assert.Contains(t, eq.GetContent(), "func (m *Point) Equal(other *Point) bool")

	sch := fileNamed(t, resp, "point.schema.pbj.go")
	require.NotNil(t, sch)
	assert.Contains(t, sch.GetContent(), "schema.New")
}

const enumProto = `
syntax = "proto3";
package example.v1;

enum Color {
  COLOR_UNSPECIFIED = 0;
  COLOR_RED = 1;
  COLOR_BLUE = 2;
}

message Shaded {
  Color color = 1;
}
`

func TestGenerateEnum(t *testing.T) {
	t.Parallel()
	req := compile(t, "enum.proto", enumProto)

	g := generator.New(req, "test")
	require.NoError(t, g.ParseParameters())
	resp, err := g.Generate()
	require.NoError(t, err)
	assert.Empty(t, resp.GetError())

	enumFile := fileNamed(t, resp, "color.enum.pbj.go")
	require.NotNil(t, enumFile)
	content := enumFile.GetContent()
	assert.Contains(t, content, "type Color int32")
	assert.Contains(t, content, "Color_COLOR_RED Color = 1")
	assert.Contains(t, content, "func ColorFromOrdinal(v int32) (Color, bool)")
	assert.Contains(t, content, "func ColorFromName(name string) (Color, bool)")
}

const nestedOneofProto = `
syntax = "proto3";
package example.v1;

message Envelope {
  message Header {
    string id = 1;
  }

  Header header = 1;
  repeated string tags = 2;
  map<string, int32> counts = 3;

  oneof payload {
    string text = 4;
    int32 code = 5;
  }
}
`

func TestGenerateNestedMessageRepeatedMapAndOneof(t *testing.T) {
	t.Parallel()
	req := compile(t, "envelope.proto", nestedOneofProto)

	g := generator.New(req, "test")
	require.NoError(t, g.ParseParameters())
	resp, err := g.Generate()
	require.NoError(t, err)
	assert.Empty(t, resp.GetError())

	model := fileNamed(t, resp, "envelope.pbj.go")
	require.NotNil(t, model)
	content := model.GetContent()
	assert.Contains(t, content, "Header *Envelope_Header")
	assert.Contains(t, content, "Tags []string")
	assert.Contains(t, content, "Counts map[string]int32")
	assert.Contains(t, content, "oneof.OneOf[EnvelopePayloadKind, any]")

	headerModel := fileNamed(t, resp, "envelope_header.pbj.go")
	assert.NotNil(t, headerModel)

	pb := fileNamed(t, resp, "envelope.pb.pbj.go")
	require.NotNil(t, pb)
	assert.Contains(t, pb.GetContent(), "sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })")
}

const comparableMaxSizeProto = `
syntax = "proto3";
package example.v1;
import "google/protobuf/descriptor.proto";

extend google.protobuf.MessageOptions {
  string comparable = 50501;
}
extend google.protobuf.FieldOptions {
  uint32 max_size = 50502;
}

message Person {
  option (comparable) = "age,name";
  string name = 1;
  int32 age = 2;
  bytes blob = 3 [(max_size) = 16];
}
`

func TestGenerateComparableAndMaxSize(t *testing.T) {
	t.Parallel()
	req := compile(t, "person.proto", comparableMaxSizeProto)

	g := generator.New(req, "test")
	require.NoError(t, g.ParseParameters())
	resp, err := g.Generate()
	require.NoError(t, err)
	assert.Empty(t, resp.GetError())

	cmp := fileNamed(t, resp, "person.comparator.pbj.go")
	require.NotNil(t, cmp)
	content := cmp.GetContent()
	assert.Contains(t, content, "func (m *Person) Compare(other *Person) int")
	assert.Contains(t, content, "m.Age < other.Age")
	assert.Contains(t, content, "m.Name < other.Name")

	pb := fileNamed(t, resp, "person.pb.pbj.go")
	require.NotNil(t, pb)
	assert.Contains(t, pb.GetContent(), "pberrors.SizeExceeded")
	assert.Contains(t, pb.GetContent(), "length > 16")
}

func TestGoPackagePrefixOption(t *testing.T) {
	t.Parallel()
	req := compile(t, "simple.proto", simpleProto)
	req.Parameter = strPtr("go_package_prefix=internal/genpb")

	g := generator.New(req, "test")
	require.NoError(t, g.ParseParameters())
	resp, err := g.Generate()
	require.NoError(t, err)

	model := fileNamed(t, resp, "point.pbj.go")
	require.NotNil(t, model)
	assert.True(t, strings.HasPrefix(model.GetName(), "internal/genpb/"), model.GetName())
}

func strPtr(s string) *string { return &s }
