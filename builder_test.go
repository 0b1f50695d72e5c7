// FILE: lixenwraith/valconfig/builder_test.go
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBuilder returns a builder isolated from the process arguments and environment
func newTestBuilder(args []string, environ map[string]string) *Builder {
	return NewBuilder().WithArgs(args).WithEnv(environ)
}

const scenarioTOML = `
remote = "mainnet"
listen = "0.0.0.0:9999"

[validator]
basefee = 5000
`

// TestBuilderScenarios tests the pipeline end to end
func TestBuilderScenarios(t *testing.T) {
	t.Run("DefaultsOnly", func(t *testing.T) {
		params, err := newTestBuilder(nil, nil).Build()
		require.NoError(t, err)
		assert.Equal(t, Defaults(), *params)
	})

	t.Run("FileNamedOnCommandLine", func(t *testing.T) {
		path := writeFile(t, "mbv.toml", scenarioTOML)
		params, err := newTestBuilder([]string{"--config", path}, nil).Build()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:9999", params.Listen.String())
		assert.Equal(t, MainnetURL, params.Remote.String())
		assert.Equal(t, uint64(5000), params.Validator.BaseFee)
		assert.Equal(t, path, params.ConfigPath)
		assert.Equal(t, DefaultLifecycle, params.Lifecycle)
	})

	t.Run("EnvironmentBeatsFile", func(t *testing.T) {
		path := writeFile(t, "mbv.toml", scenarioTOML)
		params, err := newTestBuilder([]string{"--config", path}, map[string]string{
			"MBV_VALIDATOR_BASEFEE": "99999",
		}).Build()
		require.NoError(t, err)
		assert.Equal(t, uint64(99999), params.Validator.BaseFee)
		assert.Equal(t, MainnetURL, params.Remote.String())
	})

	t.Run("EnvironmentBeatsCommandLine", func(t *testing.T) {
		params, err := newTestBuilder([]string{"--basefee", "7", "--storage", "/cli"}, map[string]string{
			"MBV_VALIDATOR_BASEFEE": "8",
		}).Build()
		require.NoError(t, err)
		assert.Equal(t, uint64(8), params.Validator.BaseFee)
		assert.Equal(t, "/cli", params.Storage)
	})

	t.Run("MissingFile", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.toml")
		params, err := newTestBuilder([]string{"--config", missing}, nil).Build()
		assert.Nil(t, params)
		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("ShortKeypairFromEnvironment", func(t *testing.T) {
		params, err := newTestBuilder(nil, map[string]string{
			"MBV_VALIDATOR_KEYPAIR": shortKeypair,
		}).Build()
		assert.Nil(t, params)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCodec)
		assert.NotContains(t, err.Error(), shortKeypair)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "validator.keypair", fe.Path)
		assert.Equal(t, SourceEnv, fe.Source)
	})

	t.Run("StructuredRemoteFromEnvironment", func(t *testing.T) {
		o := NewOverlay(SourceEnv, envOrigin)
		o.Set("remote", map[string]any{"url": "https://rpc.example.com"}, "MBV_REMOTE")
		params, err := newTestBuilder(nil, nil).WithOverlay(o).Build()
		require.NoError(t, err, "a table holding one url is still a single unified remote")
		assert.Equal(t, "https://rpc.example.com", params.Remote.String())

		o.Set("remote", []any{"mainnet", "devnet"}, "MBV_REMOTE")
		_, err = newTestBuilder(nil, nil).WithOverlay(o).Build()
		assert.ErrorIs(t, err, ErrStructural)
	})

	t.Run("BadFlag", func(t *testing.T) {
		_, err := newTestBuilder([]string{"--frobnicate"}, nil).Build()
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("TableEnvironmentVariable", func(t *testing.T) {
		_, err := newTestBuilder(nil, map[string]string{"MBV_LEDGER": "1"}).Build()
		assert.ErrorIs(t, err, ErrSyntax)
	})
}

// TestBuilderConfigPath tests how the configuration file is chosen
func TestBuilderConfigPath(t *testing.T) {
	cliFile := writeFile(t, "cli.toml", `storage = "/from/cli-file"`)
	envFile := writeFile(t, "env.toml", `storage = "/from/env-file"`)
	fallback := writeFile(t, "fallback.toml", `storage = "/from/fallback"`)

	t.Run("EnvironmentNamesFile", func(t *testing.T) {
		params, err := newTestBuilder([]string{"--config", cliFile}, map[string]string{"MBV_CONFIG": envFile}).Build()
		require.NoError(t, err)
		assert.Equal(t, "/from/env-file", params.Storage)
		assert.Equal(t, envFile, params.ConfigPath)
	})

	t.Run("CommandLineNamesFile", func(t *testing.T) {
		params, err := newTestBuilder([]string{"-c", cliFile}, nil).WithFile(fallback).Build()
		require.NoError(t, err)
		assert.Equal(t, "/from/cli-file", params.Storage)
	})

	t.Run("FallbackFile", func(t *testing.T) {
		cfg, err := newTestBuilder(nil, nil).WithFile(fallback).BuildLayers()
		require.NoError(t, err)
		assert.Equal(t, fallback, cfg.FilePath())

		params, err := cfg.Params()
		require.NoError(t, err)
		assert.Equal(t, "/from/fallback", params.Storage)
		assert.Empty(t, params.ConfigPath)
	})

	t.Run("EmptyPathIsFatal", func(t *testing.T) {
		params, err := newTestBuilder(nil, map[string]string{"MBV_CONFIG": ""}).WithFile(fallback).Build()
		assert.Nil(t, params)
		assert.ErrorIs(t, err, ErrCodec)

		_, err = newTestBuilder([]string{"--config", ""}, nil).WithFile(fallback).Build()
		assert.ErrorIs(t, err, ErrCodec)
		assert.Contains(t, err.Error(), "--config")
	})

	t.Run("CommandLineOrderSwapped", func(t *testing.T) {
		params, err := newTestBuilder([]string{"--config", cliFile}, map[string]string{"MBV_CONFIG": envFile}).
			WithSources(SourceCLI, SourceEnv, SourceFile).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "/from/cli-file", params.Storage)
	})
}

// TestBuilderDiscovery tests finding a configuration file nobody named
func TestBuilderDiscovery(t *testing.T) {
	xdgHome := t.TempDir()
	dir := filepath.Join(xdgHome, "mbv")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mbv.yaml"), []byte("storage: /from/xdg\n"), 0644))

	opts := DefaultDiscoveryOptions("mbv")
	opts.UseCurrentDir = false

	t.Run("XDGConfigHome", func(t *testing.T) {
		params, err := newTestBuilder(nil, map[string]string{"XDG_CONFIG_HOME": xdgHome}).
			WithFileDiscovery(opts).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "/from/xdg", params.Storage)
	})

	t.Run("CustomPathFirst", func(t *testing.T) {
		custom := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(custom, "mbv.toml"), []byte(`storage = "/from/custom"`), 0644))

		withPath := opts
		withPath.Paths = []string{custom}
		params, err := newTestBuilder(nil, map[string]string{"XDG_CONFIG_HOME": xdgHome}).
			WithFileDiscovery(withPath).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "/from/custom", params.Storage)
	})

	t.Run("NothingFound", func(t *testing.T) {
		params, err := newTestBuilder(nil, map[string]string{"XDG_CONFIG_HOME": t.TempDir(), "XDG_CONFIG_DIRS": t.TempDir()}).
			WithFileDiscovery(opts).
			Build()
		require.NoError(t, err)
		assert.Equal(t, Defaults(), *params)
	})

	t.Run("XDGPaths", func(t *testing.T) {
		paths := getXDGConfigPaths("mbv", map[string]string{"HOME": "/home/val", "XDG_CONFIG_DIRS": "/a" + string(os.PathListSeparator) + "/b"})
		assert.Equal(t, []string{"/home/val/.config/mbv", "/a/mbv", "/b/mbv"}, paths)

		paths = getXDGConfigPaths("mbv", nil)
		assert.Equal(t, []string{"/etc/xdg/mbv", "/etc/mbv"}, paths)
	})
}

// TestBuilderOptions tests the remaining builder knobs
func TestBuilderOptions(t *testing.T) {
	t.Run("Validators", func(t *testing.T) {
		var calls []string
		errTooCheap := errors.New("base fee below policy")

		_, err := newTestBuilder([]string{"--basefee", "1"}, nil).
			WithValidator(func(p *Params) error {
				calls = append(calls, "first")
				return nil
			}).
			WithValidator(func(p *Params) error {
				calls = append(calls, "second")
				if p.Validator.BaseFee < 10 {
					return errTooCheap
				}
				return nil
			}).
			Build()
		assert.ErrorIs(t, err, errTooCheap)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("CustomDefaults", func(t *testing.T) {
		defaults := Defaults()
		defaults.Storage = "/srv/mbv"
		params, err := newTestBuilder(nil, nil).WithDefaults(defaults).Build()
		require.NoError(t, err)
		assert.Equal(t, "/srv/mbv", params.Storage)
	})

	t.Run("CustomEnvironmentNaming", func(t *testing.T) {
		params, err := newTestBuilder(nil, map[string]string{
			"MAGIC.LEDGER.BLOCK.TIME": "1s",
			"MBV_LEDGER_BLOCK_TIME":   "2s",
		}).WithEnvPrefix("MAGIC.").WithEnvSeparator(".").Build()
		require.NoError(t, err)
		assert.Equal(t, "1s", params.Ledger.BlockTime.String())
	})

	t.Run("ParsedFlagSet", func(t *testing.T) {
		fs := NewFlagSet("host")
		require.NoError(t, fs.Parse([]string{"--lifecycle", "ephemeral"}))
		params, err := NewBuilder().WithEnv(nil).WithFlags(fs).Build()
		require.NoError(t, err)
		assert.Equal(t, LifecycleEphemeral, params.Lifecycle)

		_, err = NewBuilder().WithEnv(nil).WithFlags((*pflag.FlagSet)(nil)).Build()
		assert.Error(t, err)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			newTestBuilder([]string{"--lifecycle", "forever"}, nil).MustBuild()
		})
	})

	t.Run("LogsUnknownKeys", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

		_, err := newTestBuilder(nil, map[string]string{"MBV_COLOUR": "blue"}).WithLogger(logger).Build()
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "MBV_COLOUR")
		assert.Contains(t, buf.String(), "ignoring unrecognized configuration keys")
		assert.Contains(t, buf.String(), "configuration assembled")
	})
}
