// FILE: lixenwraith/valconfig/cli.go
package config

import (
	"errors"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// cliOrigin is the Overlay.Origin of the command-line layer.
const cliOrigin = "command line"

// flagBinding ties a command-line flag to a configuration path.
type flagBinding struct {
	name      string
	shorthand string
	path      string
	usage     string
	def       string
	numeric   bool
}

// cliFlags lists every flag the command line accepts. Defaults are shown in help output
// only; a flag enters the overlay when the user actually sets it.
var cliFlags = []flagBinding{
	{name: "config", shorthand: "c", path: configPathKey, usage: "path to the TOML configuration file"},
	{name: "remote", shorthand: "r", path: "remote", def: DefaultRemote,
		usage: "remote cluster URL or alias (mainnet, devnet, testnet, localhost, dev)"},
	{name: "lifecycle", path: "lifecycle", def: string(DefaultLifecycle),
		usage: "account lifecycle mode (" + lifecycleNames() + ")"},
	{name: "storage", path: "storage", usage: "root directory for ledger and accounts data"},
	{name: "listen", shorthand: "l", path: "listen", def: DefaultListen, usage: "RPC listen address (ip:port)"},
	{name: "metrics", shorthand: "m", path: "metrics", usage: "metrics listen address (ip:port); disabled when unset"},
	{name: "basefee", path: "validator.basefee", def: strconv.Itoa(DefaultBaseFee), numeric: true,
		usage: "base fee charged per transaction (alias --base-fee)"},
	{name: "keypair", shorthand: "k", path: "validator.keypair",
		usage: "base58 validator keypair (built-in development keypair when unset)"},
}

// BindFlags declares the configuration flags on fs. Use it to share flags with a larger
// command line, then read them back with LoadFlags after parsing.
func BindFlags(fs *pflag.FlagSet) {
	for _, b := range cliFlags {
		if fs.Lookup(b.name) != nil {
			continue
		}
		if b.numeric {
			def, _ := strconv.ParseUint(b.def, 10, 64)
			fs.Uint64P(b.name, b.shorthand, def, b.usage)
			continue
		}
		fs.StringP(b.name, b.shorthand, b.def, b.usage)
	}
	fs.SetNormalizeFunc(NormalizeFlagName)
}

// NewFlagSet returns a flag set holding only the configuration flags.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	BindFlags(fs)
	return fs
}

// NormalizeFlagName maps accepted flag aliases onto their canonical names.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "base-fee":
		return "basefee"
	}
	return pflag.NormalizedName(name)
}

// LoadArgs parses command-line arguments (without the program name) into a command-line
// overlay. Unknown flags, malformed flag values and positional arguments are ErrSyntax.
// pflag.ErrHelp is returned unchanged when help was requested.
func (c *Config) LoadArgs(args []string) (*Overlay, error) {
	fs := NewFlagSet("valconf")
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, sourceError(SourceCLI, cliOrigin, ErrSyntax, "failed to parse arguments: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, sourceError(SourceCLI, cliOrigin, ErrSyntax, "unexpected argument %q", fs.Arg(0))
	}
	return c.LoadFlags(fs)
}

// LoadFlags builds the command-line overlay from an already parsed flag set. Only flags the
// user set are included; flags missing from fs are skipped.
func (c *Config) LoadFlags(fs *pflag.FlagSet) (*Overlay, error) {
	o := NewOverlay(SourceCLI, cliOrigin)
	for _, b := range cliFlags {
		f := fs.Lookup(b.name)
		if f == nil || !f.Changed {
			continue
		}
		if !c.IsRegistered(b.path) {
			return nil, sourceError(SourceCLI, cliOrigin, ErrSyntax, "flag --%s has no configuration field %q", b.name, b.path)
		}
		o.Set(b.path, f.Value.String(), "--"+b.name)
	}
	return o, nil
}
