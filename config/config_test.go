package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbj-go/pbj/config"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	t.Parallel()
	c, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, c)
}

func TestLoadParsesYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pbj.gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\ngo_package_prefix: internal/genpb\nlicense: Apache-2.0\n"), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, c.Strict)
	assert.Equal(t, "internal/genpb", c.GoPackagePrefix)
	assert.Equal(t, "Apache-2.0", c.License)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pbj.gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: [this is not a bool"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestToParameters(t *testing.T) {
	t.Parallel()
	c := config.Config{Strict: true, GoPackagePrefix: "internal/genpb", License: "Apache-2.0"}
	assert.Equal(t, "license=Apache-2.0,strict=true,go_package_prefix=internal/genpb", c.ToParameters())
	assert.Equal(t, "", config.Config{}.ToParameters())
}
