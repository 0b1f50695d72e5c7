// FILE: lixenwraith/valconfig/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with content in a temporary directory and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFile tests reading each supported file format
func TestLoadFile(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.toml", `
remote = "mainnet"
listen = "0.0.0.0:9999"

[validator]
basefee = 5000

[accounts-db]
block-size = 512
database-size = "1GiB"

[ledger]
block-time = "50ms"
reset = false
`)
		o, err := cfg.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, SourceFile, o.Source)
		assert.Equal(t, path, o.Origin)
		assert.Empty(t, o.Unknown())

		v, ok := o.Lookup("validator.basefee")
		require.True(t, ok)
		assert.Equal(t, int64(5000), v)

		v, _ = o.Lookup("remote")
		assert.Equal(t, "mainnet", v)

		v, _ = o.Lookup("ledger.reset")
		assert.Equal(t, false, v)
		assert.Equal(t, 7, o.Len())
	})

	t.Run("YAML", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.yaml", `
remote: testnet
validator:
  basefee: 42
chainlink:
  prepare-lookup-tables: true
`)
		o, err := cfg.LoadFile(path)
		require.NoError(t, err)

		v, _ := o.Lookup("validator.basefee")
		assert.Equal(t, 42, v)
		v, _ = o.Lookup("chainlink.prepare-lookup-tables")
		assert.Equal(t, true, v)
	})

	t.Run("JSON", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.json", `{"validator": {"basefee": 18446744073709551615}, "lifecycle": "offline"}`)
		o, err := cfg.LoadFile(path)
		require.NoError(t, err)

		v, _ := o.Lookup("validator.basefee")
		assert.Equal(t, "18446744073709551615", describeValue(v))
		v, _ = o.Lookup("lifecycle")
		assert.Equal(t, "offline", v)
	})

	t.Run("StructuredRemote", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.toml", `
[[remote]]
url = "https://a.example.com"

[[remote]]
http = "https://b.example.com"
ws = "wss://b.example.com"
`)
		o, err := cfg.LoadFile(path)
		require.NoError(t, err)
		v, ok := o.Lookup("remote")
		require.True(t, ok)

		rc, err := decodeRemoteCluster(v)
		require.NoError(t, err)
		assert.Len(t, rc.Remotes(), 2)
	})

	t.Run("UnknownKeys", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.toml", `
config = "/elsewhere.toml"
colour = "blue"

[validator]
basefee = 1
nickname = "val"

[telemetry]
enabled = true
`)
		o, err := cfg.LoadFile(path)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"config", "colour", "validator.nickname", "telemetry"}, o.Unknown())
		_, ok := o.Lookup("config")
		assert.False(t, ok, "a file cannot name another file")
		assert.Equal(t, 1, o.Len())
	})

	t.Run("MissingFile", func(t *testing.T) {
		cfg := newTestConfig(t)
		_, err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSourceUnavailable)

		var srcErr *SourceError
		require.ErrorAs(t, err, &srcErr)
		assert.Equal(t, SourceFile, srcErr.Source)
	})

	t.Run("BadSyntax", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.toml", "[validator\nbasefee = ")
		_, err := cfg.LoadFile(path)
		assert.ErrorIs(t, err, ErrSyntax)
		assert.NotErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("ScalarWhereTableExpected", func(t *testing.T) {
		cfg := newTestConfig(t)
		path := writeFile(t, "mbv.toml", `validator = "abc"`)
		_, err := cfg.LoadFile(path)
		assert.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, err.Error(), `"validator" must be a table`)
	})

	t.Run("FormatDetection", func(t *testing.T) {
		assert.Equal(t, "toml", detectFileFormat("/etc/mbv/config.toml"))
		assert.Equal(t, "toml", detectFileFormat("config"))
		assert.Equal(t, "yaml", detectFileFormat("config.YML"))
		assert.Equal(t, "yaml", detectFileFormat("config.yaml"))
		assert.Equal(t, "json", detectFileFormat("config.json"))
	})
}

// TestLoadEnv tests mapping environment variables to paths
func TestLoadEnv(t *testing.T) {
	t.Run("Mapping", func(t *testing.T) {
		cfg := newTestConfig(t)
		o, err := cfg.LoadEnv(map[string]string{
			"MBV_REMOTE":                        "mainnet",
			"MBV_VALIDATOR_BASEFEE":             "99999",
			"MBV_ACCOUNTS_DB_BLOCK_SIZE":        "128",
			"MBV_LEDGER_BLOCKTIME":              "1s",
			"MBV_CHAIN_OPERATION_COUNTRY_CODE":  "de",
			"MBV_CHAINOPERATION_FQDN":           "https://validator.example.com",
			"mbv_storage":                       "/ignored/wrong/case/prefix",
			"PATH":                              "/usr/bin",
			"MBV_":                              "empty",
		})
		require.NoError(t, err)
		assert.Equal(t, SourceEnv, o.Source)

		expected := map[string]string{
			"remote":                       "mainnet",
			"validator.basefee":            "99999",
			"accounts-db.block-size":       "128",
			"ledger.block-time":            "1s",
			"chain-operation.country-code": "de",
			"chain-operation.fqdn":         "https://validator.example.com",
		}
		assert.Equal(t, len(expected), o.Len())
		for path, want := range expected {
			v, ok := o.Lookup(path)
			require.True(t, ok, path)
			assert.Equal(t, want, v, path)
		}
		assert.Equal(t, "MBV_ACCOUNTS_DB_BLOCK_SIZE", o.Name("accounts-db.block-size"))
		assert.Empty(t, o.Unknown())
	})

	t.Run("SuffixIsCaseInsensitive", func(t *testing.T) {
		cfg := newTestConfig(t)
		o, err := cfg.LoadEnv(map[string]string{"MBV_validator_basefee": "7"})
		require.NoError(t, err)
		v, _ := o.Lookup("validator.basefee")
		assert.Equal(t, "7", v)
	})

	t.Run("UnknownVariables", func(t *testing.T) {
		cfg := newTestConfig(t)
		o, err := cfg.LoadEnv(map[string]string{
			"MBV_BOGUS":             "1",
			"MBV_VALIDATOR_BASEFEE": "1",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"MBV_BOGUS"}, o.Unknown())
	})

	t.Run("TableVariable", func(t *testing.T) {
		cfg := newTestConfig(t)
		_, err := cfg.LoadEnv(map[string]string{"MBV_VALIDATOR": "x"})
		assert.ErrorIs(t, err, ErrSyntax)

		_, err = cfg.LoadEnv(map[string]string{"MBV_ACCOUNTS_DB": "x"})
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("CustomPrefixAndSeparator", func(t *testing.T) {
		opts := DefaultLoadOptions()
		opts.EnvPrefix = "VAL__"
		opts.EnvSeparator = "__"
		cfg, err := NewWithOptions(opts)
		require.NoError(t, err)
		require.NoError(t, cfg.RegisterStruct(Defaults()))

		o, err := cfg.LoadEnv(map[string]string{
			"VAL__ACCOUNTS__DB__MAX__SNAPSHOTS": "9",
			"VAL__VALIDATOR__BASEFEE":           "5",
			"MBV_VALIDATOR_BASEFEE":             "6",
		})
		require.NoError(t, err)

		v, _ := o.Lookup("accounts-db.max-snapshots")
		assert.Equal(t, "9", v)
		v, _ = o.Lookup("validator.basefee")
		assert.Equal(t, "5", v)
		assert.Equal(t, "VAL__COMMIT__COMPUTE__UNIT__PRICE", cfg.EnvName("commit.compute-unit-price"))
	})

	t.Run("EnvName", func(t *testing.T) {
		cfg := newTestConfig(t)
		assert.Equal(t, "MBV_VALIDATOR_KEYPAIR", cfg.EnvName("validator.keypair"))
		assert.Equal(t, "MBV_ACCOUNTS_DB_DATABASE_SIZE", cfg.EnvName("accounts-db.database-size"))
		assert.Equal(t, []string{"ACCOUNTS_DB_BLOCK_SIZE", "ACCOUNTS_DB_BLOCKSIZE", "ACCOUNTSDB_BLOCK_SIZE", "ACCOUNTSDB_BLOCKSIZE"},
			envSpellings("accounts-db.block-size", "_"))
	})
}

// TestResolveConfigPath tests which layer names the configuration file
func TestResolveConfigPath(t *testing.T) {
	cfg := newTestConfig(t)

	cli := NewOverlay(SourceCLI, cliOrigin)
	cli.Set(configPathKey, "/from/cli.toml", "--config")
	env := NewOverlay(SourceEnv, envOrigin)
	env.Set(configPathKey, "/from/env.toml", "MBV_CONFIG")

	path, namedBy, err := cfg.resolveConfigPath(cli, env)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.toml", path)
	assert.Equal(t, SourceEnv, namedBy.Source)

	path, namedBy, err = cfg.resolveConfigPath(cli, nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/cli.toml", path)
	assert.Equal(t, SourceCLI, namedBy.Source)

	path, namedBy, err = cfg.resolveConfigPath(NewOverlay(SourceCLI, cliOrigin))
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Nil(t, namedBy)

	t.Run("BlankPath", func(t *testing.T) {
		blank := NewOverlay(SourceEnv, envOrigin)
		blank.Set(configPathKey, "  ", "MBV_CONFIG")

		_, _, err := cfg.resolveConfigPath(cli, blank)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCodec)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, configPathKey, fe.Path)
		assert.Equal(t, SourceEnv, fe.Source)
		assert.Equal(t, "MBV_CONFIG", fe.Name)
	})
}
