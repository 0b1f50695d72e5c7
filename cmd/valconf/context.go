package main

import (
	"context"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	config "github.com/lixenwraith/valconfig"
)

// loggerKey is the context key for storing the command logger.
type loggerKey struct{}

// withLogger returns a new context with the logger stored.
func withLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFromContext retrieves the logger from context, or a no-op logger.
func loggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// newBuilder prepares the pipeline exactly as the validator runs it: the command's parsed
// flags, the process environment and file discovery.
func newBuilder(cmd *cobra.Command) *config.Builder {
	return config.NewBuilder().
		WithFlags(cmd.Flags()).
		WithEnv(env.ToMap(os.Environ())).
		WithFileDiscovery(config.DefaultDiscoveryOptions(appName)).
		WithLogger(loggerFromContext(cmd.Context()))
}
