// FILE: lixenwraith/valconfig/builder.go
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// ValidatorFunc defines the signature for a function that can validate the final Params.
// It runs after field and structure validation and should return an error if validation fails.
type ValidatorFunc func(p *Params) error

// Builder provides a fluent interface for assembling the configuration
type Builder struct {
	defaults   Params
	opts       LoadOptions
	args       []string
	flags      *pflag.FlagSet
	environ    map[string]string
	file       string
	discovery  *FileDiscoveryOptions
	overlays   []*Overlay
	validators []ValidatorFunc
	logger     zerolog.Logger
	err        error
}

// NewBuilder creates a builder that reads os.Args and a snapshot of the process environment.
// Tests should supply both explicitly with WithArgs and WithEnv.
func NewBuilder() *Builder {
	return &Builder{
		defaults: Defaults(),
		opts:     DefaultLoadOptions(),
		args:     os.Args[1:],
		environ:  env.ToMap(os.Environ()),
		logger:   zerolog.Nop(),
	}
}

// WithDefaults replaces the built-in defaults
func (b *Builder) WithDefaults(defaults Params) *Builder {
	b.defaults = defaults
	return b
}

// WithSources sets the precedence order for configuration sources
func (b *Builder) WithSources(sources ...Source) *Builder {
	b.opts.Sources = sources
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithEnvSeparator sets the separator between path segments in variable names
func (b *Builder) WithEnvSeparator(sep string) *Builder {
	b.opts.EnvSeparator = sep
	return b
}

// WithEnv sets the environment snapshot. A nil map means an empty environment.
func (b *Builder) WithEnv(environ map[string]string) *Builder {
	b.environ = environ
	return b
}

// WithArgs sets the command-line arguments, without the program name
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	b.flags = nil
	return b
}

// WithFlags reads the command line from an already parsed flag set, such as a cobra
// command's. The set must carry the flags declared by BindFlags.
func (b *Builder) WithFlags(fs *pflag.FlagSet) *Builder {
	if fs == nil {
		b.err = fmt.Errorf("flag set cannot be nil")
		return b
	}
	b.flags = fs
	b.args = nil
	return b
}

// WithFile sets a configuration file used when neither the command line nor the
// environment names one
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithOverlay adds a programmatic overlay, applied after the loaded sources. It replaces
// whatever its source layer loaded.
func (b *Builder) WithOverlay(o *Overlay) *Builder {
	if o != nil {
		b.overlays = append(b.overlays, o)
	}
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// WithLogger sets the logger used to report loaded sources and ignored keys
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build runs the whole pipeline and returns the validated configuration
func (b *Builder) Build() (*Params, error) {
	cfg, err := b.BuildLayers()
	if err != nil {
		return nil, err
	}

	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(params); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	b.logger.Debug().
		Str("remote", params.Remote.String()).
		Str("lifecycle", params.Lifecycle.String()).
		Str("listen", params.Listen.String()).
		Msg("configuration assembled")
	return params, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Params {
	params, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return params
}

// BuildLayers loads every source and merges them, without decoding. The returned store
// answers which layer supplied each value, even when the values themselves are invalid.
func (b *Builder) BuildLayers() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	cfg, err := NewWithOptions(b.opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.RegisterStruct(b.defaults); err != nil {
		return nil, fmt.Errorf("failed to register defaults: %w", err)
	}

	var cli *Overlay
	if b.flags != nil {
		cli, err = cfg.LoadFlags(b.flags)
	} else {
		cli, err = cfg.LoadArgs(b.args)
	}
	if err != nil {
		return nil, err
	}

	envOverlay, err := cfg.LoadEnv(b.environ)
	if err != nil {
		return nil, err
	}
	b.report(envOverlay)
	b.report(cli)

	filePath, namedBy, err := cfg.resolveConfigPath(cli, envOverlay)
	if err != nil {
		return nil, err
	}
	switch {
	case filePath != "":
		b.logger.Debug().Str("path", filePath).Str("source", string(namedBy.Source)).Msg("configuration file named")
	case b.file != "":
		filePath = b.file
	case b.discovery != nil:
		filePath = discoverFile(*b.discovery, b.environ)
		if filePath != "" {
			b.logger.Debug().Str("path", filePath).Msg("configuration file discovered")
		}
	}

	var fileOverlay *Overlay
	if filePath != "" {
		if fileOverlay, err = cfg.LoadFile(filePath); err != nil {
			return nil, err
		}
		b.report(fileOverlay)
	}

	if err := cfg.Apply(append([]*Overlay{fileOverlay, cli, envOverlay}, b.overlays...)...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// report logs what a source contributed.
func (b *Builder) report(o *Overlay) {
	if o == nil {
		return
	}
	b.logger.Debug().
		Str("source", string(o.Source)).
		Str("origin", o.Origin).
		Int("fields", o.Len()).
		Msg("configuration source loaded")
	if unknown := o.Unknown(); len(unknown) > 0 {
		b.logger.Warn().
			Str("source", string(o.Source)).
			Str("origin", o.Origin).
			Strs("keys", unknown).
			Msg("ignoring unrecognized configuration keys")
	}
}
