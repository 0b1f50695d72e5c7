// FILE: lixenwraith/valconfig/params.go
package config

import "time"

// Params is the fully resolved validator configuration.
// It is produced once by the pipeline and must be treated as read-only afterwards.
type Params struct {
	// ConfigPath is the configuration file named on the command line or in the environment.
	// A file never sets it.
	ConfigPath string `toml:"config"`

	// Remote is the upstream cluster the validator clones state from.
	Remote RemoteCluster `toml:"remote"`

	Lifecycle LifecycleMode `toml:"lifecycle"`

	// Storage is the root directory for ledger and accounts data. Empty means unset.
	Storage string `toml:"storage"`

	Listen BindAddress `toml:"listen"`

	// Metrics is the metrics listener; nil disables metrics.
	Metrics *BindAddress `toml:"metrics"`

	Validator      ValidatorConfig       `toml:"validator"`
	Commit         CommitStrategy        `toml:"commit"`
	AccountsDB     AccountsDBConfig      `toml:"accounts-db"`
	Ledger         LedgerConfig          `toml:"ledger"`
	ChainLink      ChainLinkConfig       `toml:"chainlink"`
	ChainOperation *ChainOperationConfig `toml:"chain-operation"`
}

// ValidatorConfig holds the validator identity and fee settings.
type ValidatorConfig struct {
	BaseFee uint64  `toml:"basefee"`
	Keypair Keypair `toml:"keypair" redact:"true"`
}

// CommitStrategy controls how state commits are priced.
type CommitStrategy struct {
	ComputeUnitPrice uint64 `toml:"compute-unit-price"`
}

// AccountsDBConfig sizes the accounts database.
type AccountsDBConfig struct {
	DatabaseSize      ByteSize  `toml:"database-size" validate:"gt=0"`
	BlockSize         BlockSize `toml:"block-size"`
	IndexSize         ByteSize  `toml:"index-size" validate:"gt=0"`
	MaxSnapshots      uint16    `toml:"max-snapshots" validate:"gt=0"`
	SnapshotFrequency uint64    `toml:"snapshot-frequency" validate:"gt=0"`
}

// LedgerConfig controls ledger partitioning and block production.
type LedgerConfig struct {
	BlocksPerPartition uint64        `toml:"blocks-per-partition" validate:"gt=0"`
	BlockTime          time.Duration `toml:"block-time" validate:"gt=0"`
	// Reset wipes the ledger on startup.
	Reset bool `toml:"reset"`
}

// ChainLinkConfig tunes how accounts are cloned from the remote cluster.
type ChainLinkConfig struct {
	PrepareLookupTables  bool   `toml:"prepare-lookup-tables"`
	AutoAirdropLamports  uint64 `toml:"auto-airdrop-lamports"`
	MaxMonitoredAccounts uint64 `toml:"max-monitored-accounts"`
}

// ChainOperationConfig describes how the validator announces itself on chain.
// The section is optional, but once any field is given all fields are required.
type ChainOperationConfig struct {
	CountryCode        CountryCode   `toml:"country-code" validate:"required,iso3166_1_alpha2"`
	FQDN               *URL          `toml:"fqdn" validate:"required"`
	ClaimFeesFrequency time.Duration `toml:"claim-fees-frequency" validate:"required,gt=0"`
}
