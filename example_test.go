// FILE: lixenwraith/valconfig/example_test.go
package config_test

import (
	"errors"
	"fmt"
	"log"

	config "github.com/lixenwraith/valconfig"
)

func ExampleBuilder() {
	params, err := config.NewBuilder().
		WithArgs([]string{"--remote", "mainnet", "--base-fee", "250"}).
		WithEnv(map[string]string{"MBV_LEDGER_BLOCK_TIME": "50ms"}).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(params.Remote)
	fmt.Println(params.Validator.BaseFee, params.Ledger.BlockTime)
	// Output:
	// https://api.mainnet-beta.solana.com
	// 250 50ms
}

func ExampleBuilder_BuildLayers() {
	cfg, err := config.NewBuilder().
		WithArgs([]string{"--basefee", "1"}).
		WithEnv(map[string]string{"MBV_VALIDATOR_BASEFEE": "2"}).
		BuildLayers()
	if err != nil {
		log.Fatal(err)
	}
	value, _ := cfg.Get("validator.basefee")
	fmt.Printf("%v from %s (%s)\n", value, cfg.Origin("validator.basefee"), cfg.SourceName("validator.basefee"))
	// Output: 2 from env (MBV_VALIDATOR_BASEFEE)
}

func ExampleParseRemoteCluster() {
	rc, err := config.ParseRemoteCluster("dev")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(rc, config.IsSingleUnified(rc))
	// Output: http://127.0.0.1:8899 true
}

func ExampleFieldError() {
	_, err := config.NewBuilder().
		WithArgs(nil).
		WithEnv(map[string]string{"MBV_ACCOUNTS_DB_BLOCK_SIZE": "1024"}).
		Build()

	var fe *config.FieldError
	if errors.As(err, &fe) {
		fmt.Println(fe.Path, fe.Source, fe.Name, fe.Value)
		fmt.Println(errors.Is(err, config.ErrCodec))
	}
	// Output:
	// accounts-db.block-size env MBV_ACCOUNTS_DB_BLOCK_SIZE 1024
	// true
}
