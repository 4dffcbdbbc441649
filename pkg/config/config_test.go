package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvailland/radiofrance-dl/pkg/model"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.NotEmpty(t, cfg.OutputDir)
	assert.Empty(t, cfg.DefaultStation)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	in := &Config{
		APIKey:         "secret-key",
		OutputDir:      "/tmp/podcasts",
		DefaultStation: "1",
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *model.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidate(t *testing.T) {
	cfg := &Config{OutputDir: "/tmp/out"}
	assert.NoError(t, cfg.Validate())

	cfg.DefaultStation = "99"
	assert.Error(t, cfg.Validate())

	cfg.DefaultStation = "4"
	assert.NoError(t, cfg.Validate())

	cfg.OutputDir = ""
	assert.Error(t, cfg.Validate())
}
