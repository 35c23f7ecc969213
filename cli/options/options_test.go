package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/syrup/pkg/config"
	"github.com/nspcc-dev/syrup/pkg/syrup"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func TestGetConfigFromContext(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "cfg.yml")
		require.NoError(t, os.WriteFile(p, []byte("DecoderConfiguration:\n  Strict: true\n"), 0644))
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", p, "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.True(t, cfg.DecoderConfiguration.Strict)
	})

	t.Run("missing file", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", filepath.Join(t.TempDir(), "none.yml"), "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})
}

func TestGetDecodeOptions(t *testing.T) {
	set := flag.NewFlagSet("flagSet", flag.ExitOnError)
	ctx := cli.NewContext(cli.NewApp(), set, nil)
	opts := GetDecodeOptions(ctx, config.DecoderConfiguration{MaxDepth: 7})
	require.Equal(t, syrup.DecodeOptions{MaxDepth: 7}, opts)

	set = flag.NewFlagSet("flagSet", flag.ExitOnError)
	set.Bool("strict", true, "")
	set.Bool("widen", true, "")
	set.Int("max-depth", 3, "")
	ctx = cli.NewContext(cli.NewApp(), set, nil)
	opts = GetDecodeOptions(ctx, config.DecoderConfiguration{MaxDepth: 7, SymbolCacheSize: 10})
	require.True(t, opts.Strict)
	require.True(t, opts.AllowSinglePrecisionWidening)
	require.Equal(t, 3, opts.MaxDepth)
	require.NotNil(t, opts.Symbols)
}

func TestHandleLoggingParams(t *testing.T) {
	d := t.TempDir()
	testLog := filepath.Join(d, "file.log")

	t.Run("logdir is a file", func(t *testing.T) {
		logfile := filepath.Join(d, "logdir")
		require.NoError(t, os.WriteFile(logfile, []byte{1, 2, 3}, os.ModePerm))
		cfg := config.ApplicationConfiguration{
			LogPath: filepath.Join(logfile, "file.log"),
		}
		_, _, _, err := HandleLoggingParams(false, cfg)
		require.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		_, _, _, err := HandleLoggingParams(false, config.ApplicationConfiguration{LogLevel: "loud"})
		require.Error(t, err)
	})

	t.Run("default", func(t *testing.T) {
		cfg := config.ApplicationConfiguration{
			LogPath: testLog,
		}
		logger, lvl, closer, err := HandleLoggingParams(false, cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			if closer != nil {
				require.NoError(t, closer())
			}
		})
		require.True(t, logger.Core().Enabled(zap.InfoLevel))
		require.False(t, logger.Core().Enabled(zap.DebugLevel))
		require.Equal(t, zap.InfoLevel, lvl.Level())
	})

	t.Run("debug", func(t *testing.T) {
		cfg := config.ApplicationConfiguration{
			LogPath:     testLog,
			LogLevel:    "warn",
			LogEncoding: "json",
		}
		logger, _, closer, err := HandleLoggingParams(true, cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			if closer != nil {
				require.NoError(t, closer())
			}
		})
		require.True(t, logger.Core().Enabled(zap.InfoLevel))
		require.True(t, logger.Core().Enabled(zap.DebugLevel))
	})
}
