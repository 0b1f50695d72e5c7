package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// logOptions configures the command's own logging. These variables use the VALCONF_ prefix
// so they never collide with the validator's MBV_ configuration.
type logOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"warn"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

func setupLogging(environ map[string]string, w io.Writer) (zerolog.Logger, error) {
	var opts logOptions
	if err := env.ParseWithOptions(&opts, env.Options{Prefix: "VALCONF_", Environment: environ}); err != nil {
		return zerolog.Nop(), fmt.Errorf("error getting logging options: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid VALCONF_LOG_LEVEL %q: %w", opts.Level, err)
	}

	var logger zerolog.Logger
	switch strings.ToLower(opts.Format) {
	case "json":
		logger = zerolog.New(w)
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"})
	default:
		return zerolog.Nop(), fmt.Errorf("invalid VALCONF_LOG_FORMAT %q: want console or json", opts.Format)
	}

	return logger.Level(level).With().Timestamp().Str("role", "valconf").Logger(), nil
}
