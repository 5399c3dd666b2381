// Package generator implements the protoc-gen-pbj plugin: it reads a
// pluginpb.CodeGeneratorRequest from the driver (protoc or buf generate),
// walks every FileDescriptorProto it names, and emits one set of Go
// source files per message/enum implementing that message's model,
// schema, binary codec, JSON codec and test factory.
package generator

import (
	"fmt"
	"log"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// ModulePath is this module's own import path, used to qualify
// references to its runtime packages (wire, buffer, schema, codec,
// runtime, oneof) in generated imports.
const ModulePath = "github.com/pbj-go/pbj"

// Generator drives code generation from a CodeGeneratorRequest.
type Generator struct {
	request *pluginpb.CodeGeneratorRequest

	versionString string
	licenseHeader string

	// messageRegistry maps a fully-qualified ("pkg.Msg.Nested") proto
	// name to its descriptor, built once up front so field type
	// resolution never needs to re-walk the file list.
	messageRegistry map[string]*descriptorpb.DescriptorProto
	enumRegistry    map[string]*descriptorpb.EnumDescriptorProto

	// packageOf maps a fully-qualified message/enum name to the proto
	// package (possibly "") it was declared in. buildRegistries fills it;
	// no emitter reads it.
	packageOf map[string]string

	fileNaming *FileNaming

	strict bool // parsed from the "strict" plugin parameter; no emitter reads it (ParseStrict is emitted for every message regardless).
}

// New initializes a new Generator.
func New(request *pluginpb.CodeGeneratorRequest, versionString string) *Generator {
	return &Generator{
		request:         request,
		versionString:   versionString,
		messageRegistry: make(map[string]*descriptorpb.DescriptorProto),
		enumRegistry:    make(map[string]*descriptorpb.EnumDescriptorProto),
		packageOf:       make(map[string]string),
		fileNaming:      NewFileNaming(""),
	}
}

// ParseParameters parses the plugin's comma-separated key=value
// parameter string (the `--pbj_opt=` flags protoc/buf pass through).
func (g *Generator) ParseParameters() error {
	raw := g.request.GetParameter()
	if raw == "" {
		return nil
	}
	for _, param := range strings.Split(raw, ",") {
		kv := strings.SplitN(param, "=", 2)
		key := kv[0]
		value := ""
		if len(kv) == 2 {
			value = kv[1]
		}
		switch key {
		case "license":
			g.licenseHeader = value
		case "strict":
			g.strict = value == "true"
		case "go_package_prefix":
			g.fileNaming = NewFileNaming(value)
		default:
			log.Printf("WARNING: unrecognized protoc-gen-pbj option %q, ignoring", key)
		}
	}
	return nil
}

// Generate walks every requested proto file and produces the response's
// file list.
func (g *Generator) Generate() (*pluginpb.CodeGeneratorResponse, error) {
	response := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}

	toGenerate := make(map[string]struct{}, len(g.request.GetFileToGenerate()))
	for _, name := range g.request.GetFileToGenerate() {
		toGenerate[name] = struct{}{}
	}

	g.buildRegistries(g.request.GetProtoFile())

	log.Printf("INFO: processing %d proto files, %d selected for generation", len(g.request.GetProtoFile()), len(toGenerate))
	for _, protoFile := range g.request.GetProtoFile() {
		if _, ok := toGenerate[protoFile.GetName()]; !ok {
			continue
		}
		files, err := g.generateFile(protoFile)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", protoFile.GetName(), err)
		}
		response.File = append(response.File, files...)
	}
	return response, nil
}

// buildRegistries indexes every message and enum across the whole
// request by fully-qualified name, so a field in one file can resolve a
// type declared in another without re-scanning the file list.
func (g *Generator) buildRegistries(files []*descriptorpb.FileDescriptorProto) {
	for _, f := range files {
		pkg := f.GetPackage()
		for _, m := range f.GetMessageType() {
			g.registerMessage(pkg, "", m)
		}
		for _, e := range f.GetEnumType() {
			fq := qualify(pkg, e.GetName())
			g.enumRegistry[fq] = e
			g.packageOf[fq] = pkg
		}
	}
}

func (g *Generator) registerMessage(pkg, prefix string, m *descriptorpb.DescriptorProto) {
	local := m.GetName()
	if prefix != "" {
		local = prefix + "." + local
	}
	fq := qualify(pkg, local)
	g.messageRegistry[fq] = m
	g.packageOf[fq] = pkg

	for _, nested := range m.GetNestedType() {
		if nested.GetOptions().GetMapEntry() {
			continue // synthetic map entries aren't addressable types
		}
		g.registerMessage(pkg, local, nested)
	}
	for _, e := range m.GetEnumType() {
		efq := qualify(pkg, local+"."+e.GetName())
		g.enumRegistry[efq] = e
		g.packageOf[efq] = pkg
	}
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// generateFile produces every output file for one input proto file:
// one flattened type list (messages depth-first, then their enums) each
// getting its own model/schema/codec/json/testfactory file set, plus one
// enum.pbj.go per top-level or nested enum.
func (g *Generator) generateFile(protoFile *descriptorpb.FileDescriptorProto) ([]*pluginpb.CodeGeneratorResponse_File, error) {
	if err := checkSyntaxVersion(protoFile.GetSyntax()); err != nil {
		return nil, fmt.Errorf("%s: %w", protoFile.GetName(), err)
	}

	pkg := protoFile.GetPackage()
	ctx := &fileContext{
		gen:        g,
		protoFile:  protoFile,
		pkg:        pkg,
		goPackage:  g.fileNaming.GoPackageName(pkg),
		dir:        g.fileNaming.PackageDir(pkg),
	}

	var out []*pluginpb.CodeGeneratorResponse_File

	messages := flattenMessages(protoFile.GetMessageType(), "")
	names := make([]string, 0, len(messages))
	for _, fm := range messages {
		names = append(names, flatGoName(fm.localName))
	}
	for _, e := range protoFile.GetEnumType() {
		names = append(names, e.GetName())
	}
	for _, fm := range messages {
		for _, e := range fm.descriptor.GetEnumType() {
			names = append(names, flatGoName(fm.localName)+"_"+e.GetName())
		}
	}
	if err := checkDuplicateTypeNames(names); err != nil {
		return nil, err
	}

	for _, fm := range messages {
		if err := checkDuplicateFieldNumbers(fm.descriptor); err != nil {
			return nil, err
		}
		if err := checkFieldNumberRange(fm.descriptor); err != nil {
			return nil, err
		}
		msgFiles, err := ctx.generateMessage(fm)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", fm.localName, err)
		}
		out = append(out, msgFiles...)
	}

	for _, e := range protoFile.GetEnumType() {
		enumFile, err := ctx.generateEnum(e.GetName(), e)
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", e.GetName(), err)
		}
		out = append(out, enumFile)
	}
	for _, fm := range messages {
		for _, e := range fm.descriptor.GetEnumType() {
			enumFile, err := ctx.generateEnum(flatGoName(fm.localName)+"_"+e.GetName(), e)
			if err != nil {
				return nil, fmt.Errorf("enum %s: %w", e.GetName(), err)
			}
			out = append(out, enumFile)
		}
	}

	return out, nil
}

// flatMessage pairs a nested-type-flattened Go name ("Outer_Inner") with
// its descriptor, mirroring the teacher's nested-type flattening.
type flatMessage struct {
	localName  string // dotted path, e.g. "Outer.Inner"
	descriptor *descriptorpb.DescriptorProto
}

func flatGoName(localName string) string {
	return strings.ReplaceAll(localName, ".", "_")
}

// flattenMessages walks message descriptors depth-first, skipping
// synthetic map-entry nested types, producing the full set of types this
// file must generate.
func flattenMessages(msgs []*descriptorpb.DescriptorProto, prefix string) []flatMessage {
	var out []flatMessage
	for _, m := range msgs {
		local := m.GetName()
		if prefix != "" {
			local = prefix + "." + local
		}
		if !m.GetOptions().GetMapEntry() {
			out = append(out, flatMessage{localName: local, descriptor: m})
			out = append(out, flattenMessages(m.GetNestedType(), local)...)
		}
	}
	return out
}

// fileContext carries per-proto-file state (package, generator back
// reference) into the per-message/per-enum emission functions.
type fileContext struct {
	gen       *Generator
	protoFile *descriptorpb.FileDescriptorProto
	pkg       string
	goPackage string
	dir       string
}

func responseFile(name, content string) *pluginpb.CodeGeneratorResponse_File {
	return &pluginpb.CodeGeneratorResponse_File{
		Name:    proto.String(name),
		Content: proto.String(content),
	}
}
