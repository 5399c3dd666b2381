// Package config loads the optional pbj.gen.yaml sidecar that layers
// default plugin options over the CLI `--pbj_opt=` parameters, the way
// buf generate's buf.gen.yaml layers over a plugin's own flags.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pbj-go/pbj/pberrors"
)

// Config is the decoded form of pbj.gen.yaml. Every field is optional;
// a zero value means "let the plugin parameter or built-in default
// apply" rather than "force zero/empty". Fields mirror the plugin
// parameters ParseParameters understands, so Config.ToParameters can
// feed them straight into the same key=value parsing path the CLI uses.
type Config struct {
	Strict          bool   `yaml:"strict"`
	GoPackagePrefix string `yaml:"go_package_prefix"`
	License         string `yaml:"license"`
}

// ToParameters renders c as the comma-separated key=value parameter
// string protoc-gen-pbj's ParseParameters already parses from
// `--pbj_opt=`, so a CLI parameter and a YAML field both flow through
// one parsing path.
func (c Config) ToParameters() string {
	var parts []string
	if c.License != "" {
		parts = append(parts, "license="+c.License)
	}
	if c.Strict {
		parts = append(parts, "strict=true")
	}
	if c.GoPackagePrefix != "" {
		parts = append(parts, "go_package_prefix="+c.GoPackagePrefix)
	}
	return strings.Join(parts, ",")
}

// Load reads and parses the YAML config at path. A missing file is not
// an error: it returns a zero Config so callers fall back entirely to
// CLI parameters.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, pberrors.Newf(pberrors.IO, "reading config %q: %v", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, pberrors.Newf(pberrors.Malformed, "parsing config %q: %v", path, err)
	}
	return c, nil
}
