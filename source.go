// FILE: lixenwraith/valconfig/source.go
package config

import (
	"fmt"
	"slices"
)

// Source represents a configuration source, used to define load precedence
type Source string

const (
	// SourceDefault represents the built-in default values
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI Source = "cli"
)

const (
	// DefaultEnvPrefix is prepended to every environment variable the pipeline reads.
	DefaultEnvPrefix = "MBV_"
	// DefaultEnvSeparator joins path segments in environment variable names.
	DefaultEnvSeparator = "_"
)

// LoadOptions configures how configuration is assembled from multiple sources
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority).
	// SourceDefault is always the floor, whether listed or not.
	// Default: [SourceEnv, SourceCLI, SourceFile, SourceDefault]
	Sources []Source

	// EnvPrefix selects the environment variables that belong to the configuration.
	// Example: "MBV_" maps "MBV_VALIDATOR_BASEFEE" to "validator.basefee"
	EnvPrefix string

	// EnvSeparator splits the remainder of a variable name into path segments
	EnvSeparator string
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources:      []Source{SourceEnv, SourceCLI, SourceFile, SourceDefault},
		EnvPrefix:    DefaultEnvPrefix,
		EnvSeparator: DefaultEnvSeparator,
	}
}

// normalize validates the source order and fills unset fields.
func (o LoadOptions) normalize() (LoadOptions, error) {
	def := DefaultLoadOptions()
	if len(o.Sources) == 0 {
		o.Sources = def.Sources
	}
	if o.EnvSeparator == "" {
		o.EnvSeparator = def.EnvSeparator
	}

	seen := make(map[Source]bool, len(o.Sources))
	order := make([]Source, 0, len(o.Sources)+1)
	for _, s := range o.Sources {
		switch s {
		case SourceDefault, SourceFile, SourceEnv, SourceCLI:
		default:
			return o, fmt.Errorf("unknown configuration source %q", s)
		}
		if seen[s] {
			return o, fmt.Errorf("configuration source %q listed twice", s)
		}
		seen[s] = true
		if s != SourceDefault {
			order = append(order, s)
		}
	}
	o.Sources = append(order, SourceDefault)
	return o, nil
}

// rank returns the position of s in the precedence order, lower is stronger.
func (o LoadOptions) rank(s Source) int {
	if i := slices.Index(o.Sources, s); i >= 0 {
		return i
	}
	return len(o.Sources)
}
