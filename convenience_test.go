// FILE: lixenwraith/valconfig/convenience_test.go
package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebug(t *testing.T) {
	path := writeFile(t, "mbv.toml", "[validator]\nbasefee = 5000\n")
	cfg, err := newTestBuilder([]string{"--config", path, "--keypair", DefaultKeypair}, map[string]string{
		"MBV_VALIDATOR_BASEFEE": "6000",
	}).BuildLayers()
	require.NoError(t, err)

	out := cfg.Debug()
	assert.Contains(t, out, "Precedence: [env cli file default]")
	assert.Contains(t, out, "File: "+path)
	assert.Contains(t, out, "validator.basefee:\n    Current: 6000 (env)\n    Default: 100\n    env: 6000 (MBV_VALIDATOR_BASEFEE)\n    file: 5000 (validator.basefee)\n")
	assert.Contains(t, out, "metrics:\n    Current: <absent>\n")
	assert.NotContains(t, out, DefaultKeypair)
	assert.Contains(t, out, "validator.keypair:\n    Current: <redacted> (cli)\n")

	assert.Less(t, strings.Index(out, "remote:"), strings.Index(out, "ledger.block-time:"), "paths follow registration order")
}

func TestExportEnv(t *testing.T) {
	path := writeFile(t, "mbv.toml", `
storage = "/srv/mbv"

[[remote]]
url = "https://a.example.com"

[[remote]]
url = "https://b.example.com"
`)
	cfg, err := newTestBuilder([]string{"--config", path, "--lifecycle", "offline"}, map[string]string{
		"MBV_LEDGER_BLOCKTIME": "2s",
	}).BuildLayers()
	require.NoError(t, err)

	exports := cfg.ExportEnv()
	assert.Equal(t, map[string]string{
		"MBV_CONFIG":            path,
		"MBV_STORAGE":           "/srv/mbv",
		"MBV_LIFECYCLE":         "offline",
		"MBV_LEDGER_BLOCK_TIME": "2s",
	}, exports)

	t.Run("ReplaysIntoSameConfiguration", func(t *testing.T) {
		single, err := newTestBuilder([]string{"--remote", "testnet", "--basefee", "12"}, nil).BuildLayers()
		require.NoError(t, err)
		want, err := single.Params()
		require.NoError(t, err)

		replayed, err := newTestBuilder(nil, single.ExportEnv()).Build()
		require.NoError(t, err)
		assert.Equal(t, want, replayed)
	})
}

func TestQuick(t *testing.T) {
	args := os.Args
	t.Cleanup(func() { os.Args = args })
	os.Args = []string{"mbv", "--lifecycle", "replica"}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	t.Setenv("MBV_STORAGE", "/from/env")

	params, err := Quick()
	require.NoError(t, err)
	assert.Equal(t, LifecycleReplica, params.Lifecycle)
	assert.Equal(t, "/from/env", params.Storage)

	require.NoError(t, os.MkdirAll(dir+"/mbv", 0755))
	require.NoError(t, os.WriteFile(dir+"/mbv/mbv.toml", []byte("[validator]\nbasefee = 31\n"), 0644))
	params, err = QuickWithDiscovery("mbv")
	require.NoError(t, err)
	assert.Equal(t, uint64(31), params.Validator.BaseFee)

	assert.NotPanics(t, func() { MustQuick() })
	os.Args = []string{"mbv", "stray"}
	assert.Panics(t, func() { MustQuick() })
}
