// FILE: lixenwraith/valconfig/defaults.go
package config

import "time"

// Built-in defaults.
const (
	DefaultRemote             = "devnet"
	DefaultLifecycle          = LifecycleProgramsReplica
	DefaultListen             = "127.0.0.1:8899"
	DefaultBaseFee            = 100
	DefaultComputeUnitPrice   = 1_000_000
	DefaultDatabaseSize       = 100 * 1024 * 1024
	DefaultBlockSize          = Block256
	DefaultIndexSize          = 1024 * 1024
	DefaultMaxSnapshots       = 4
	DefaultSnapshotFrequency  = 1024
	DefaultBlocksPerPartition = 1024 * 1024
	DefaultBlockTime          = 400 * time.Millisecond
	DefaultLedgerReset        = true

	// DefaultKeypair is a well-known development identity. Never use it on a public cluster.
	DefaultKeypair = "9Vo7TbA5YfC5a33JhAi9Fb41usA6JwecHNRw3f9MzzHAM8hFnXTzL5DcEHwsAFjuUZ8vNQcJ4XziRFpMc3gTgBQ"
)

// Defaults returns the complete built-in configuration. It depends on no external input
// and every call returns an independent value.
func Defaults() Params {
	keypair, err := ParseKeypair(DefaultKeypair)
	if err != nil {
		panic("config: built-in keypair is invalid: " + err.Error())
	}

	return Params{
		Remote:    MustRemoteCluster(DefaultRemote),
		Lifecycle: DefaultLifecycle,
		Listen:    MustBindAddress(DefaultListen),
		Validator: ValidatorConfig{
			BaseFee: DefaultBaseFee,
			Keypair: keypair,
		},
		Commit: CommitStrategy{
			ComputeUnitPrice: DefaultComputeUnitPrice,
		},
		AccountsDB: AccountsDBConfig{
			DatabaseSize:      DefaultDatabaseSize,
			BlockSize:         DefaultBlockSize,
			IndexSize:         DefaultIndexSize,
			MaxSnapshots:      DefaultMaxSnapshots,
			SnapshotFrequency: DefaultSnapshotFrequency,
		},
		Ledger: LedgerConfig{
			BlocksPerPartition: DefaultBlocksPerPartition,
			BlockTime:          DefaultBlockTime,
			Reset:              DefaultLedgerReset,
		},
	}
}
