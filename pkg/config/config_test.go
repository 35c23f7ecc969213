package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfigPath = "./testdata/syrup.test.yml"

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(testConfigPath)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.ApplicationConfiguration.LogLevel)
	require.Equal(t, "json", cfg.ApplicationConfiguration.LogEncoding)

	opts := cfg.DecoderConfiguration.ToOptions()
	require.True(t, opts.AllowSinglePrecisionWidening)
	require.True(t, opts.Strict)
	require.Equal(t, 16, opts.MaxDepth)
	require.Equal(t, 4096, opts.MaxLength)
	require.NotNil(t, opts.Symbols)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Nil(t, cfg.DecoderConfiguration.ToOptions().Symbols)

	cfg, err = Load(testConfigPath)
	require.NoError(t, err)
	require.True(t, cfg.DecoderConfiguration.Strict)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg, err = Parse([]byte("DecoderConfiguration:\n  MaxDepth: 3\n"))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.DecoderConfiguration.MaxDepth)
	require.Equal(t, "console", cfg.ApplicationConfiguration.LogEncoding)

	for _, bad := range []string{
		"Unknown: 1\n",
		"ApplicationConfiguration:\n  LogLevel: loud\n",
		"ApplicationConfiguration:\n  LogEncoding: xml\n",
		"DecoderConfiguration:\n  MaxDepth: -1\n",
		"DecoderConfiguration:\n  MaxLength: -1\n",
		"DecoderConfiguration:\n  SymbolCacheSize: -1\n",
		"DecoderConfiguration: [\n",
	} {
		_, err := Parse([]byte(bad))
		require.Error(t, err, bad)
	}
}
