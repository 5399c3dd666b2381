// Command protoc-gen-pbj is a protoc/buf plugin: it reads a
// CodeGeneratorRequest from stdin and writes a CodeGeneratorResponse to
// stdout, generating the pbj model, schema, binary and JSON codecs, test
// factory and equality methods for every message and enum in the
// requested files.
package main

import (
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/pbj-go/pbj/config"
	"github.com/pbj-go/pbj/internal/generator"
)

// configFileName is the sidecar buf generate/protoc looks for in the
// invocation's working directory, analogous to buf.gen.yaml layering
// over a plugin's own --opt flags.
const configFileName = "pbj.gen.yaml"

// version is stamped at build time via -ldflags; left as the default
// when building without that flag.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "protoc-gen-pbj: "+err.Error())
		os.Exit(1)
	}
}

func run() error {
	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return fmt.Errorf("unmarshaling request: %w", err)
	}

	cfg, err := config.Load(configFileName)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configFileName, err)
	}
	if yamlParams := cfg.ToParameters(); yamlParams != "" {
		// The sidecar's settings come first so any `--pbj_opt=` the
		// driver also passes is parsed afterward and wins on conflict.
		if req.Parameter != nil && *req.Parameter != "" {
			req.Parameter = proto.String(yamlParams + "," + *req.Parameter)
		} else {
			req.Parameter = proto.String(yamlParams)
		}
	}

	gen := generator.New(req, version)
	if err := gen.ParseParameters(); err != nil {
		return fmt.Errorf("parsing parameters: %w", err)
	}

	resp, err := gen.Generate()
	if err != nil {
		resp = &pluginpb.CodeGeneratorResponse{
			Error: proto.String(err.Error()),
		}
	}

	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshaling response: %w", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
