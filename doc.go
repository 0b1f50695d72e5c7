// File: lixenwraith/valconfig/doc.go

// Package config assembles the configuration of a validator node from four layers:
// built-in defaults, an optional configuration file, command-line flags and environment
// variables. The result is a single validated Params value.
//
// Features:
//   - Layered merge with a single global precedence order and per-field source tracking
//   - Typed codecs for cluster URLs with aliases, base58 keypairs and public keys,
//     socket addresses, human-readable durations and fixed block sizes
//   - TOML, YAML and JSON configuration files
//   - Field errors that name the path, the source and the offending text
//   - Builder pattern for easy initialization
//
// Quick Start:
//
//	params, err := config.Quick()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(params.Remote, params.Listen)
//
// Default Precedence (highest to lowest):
//  1. Environment variables (MBV_VALIDATOR_BASEFEE=5000)
//  2. Command-line arguments (--basefee 5000)
//  3. Configuration file (--config validator.toml or MBV_CONFIG)
//  4. Default values
//
// A layer defers to the next one only by not holding a field at all. Flags left at their
// static defaults are not part of the command-line layer.
//
// Custom Sources:
//
//	params, err := config.NewBuilder().
//	    WithArgs(os.Args[1:]).
//	    WithEnv(env.ToMap(os.Environ())).
//	    WithSources(config.SourceCLI, config.SourceEnv, config.SourceFile).
//	    WithLogger(logger).
//	    Build()
//
// Remote Cluster:
// On the command line and in the environment the remote is one URL or one of the aliases
// mainnet, devnet, testnet, localhost and dev. A configuration file may also give separate
// request and subscription URLs or several remotes:
//
//	remote = "mainnet"
//
//	[remote]
//	http = "https://rpc.example.com"
//	ws = "wss://rpc.example.com"
//
//	remote = ["mainnet", { http = "https://a.example.com", ws = "wss://a.example.com" }]
//
// Table fields are taken literally; only bare strings are looked up as aliases.
//
// Thread Safety:
// Assembly runs once and synchronously. The resulting Config store may be inspected from
// several goroutines; Params must not be modified after Build returns.
package config
