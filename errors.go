// FILE: lixenwraith/valconfig/errors.go
package config

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the pipeline matches exactly one of these with errors.Is.
var (
	// ErrSourceUnavailable reports a source that was named but could not be read.
	ErrSourceUnavailable = errors.New("configuration source unavailable")
	// ErrSyntax reports a malformed source: bad TOML, an unknown flag, a table where a value belongs.
	ErrSyntax = errors.New("configuration syntax error")
	// ErrCodec reports text that the target field's codec rejected.
	ErrCodec = errors.New("invalid configuration value")
	// ErrStructural reports a merged configuration that is missing required data or combines
	// values that cannot appear together.
	ErrStructural = errors.New("invalid configuration structure")
)

// Codec failures, each also matching ErrCodec.
var (
	ErrBase58           = fmt.Errorf("%w: invalid base58", ErrCodec)
	ErrKeyLength        = fmt.Errorf("%w: wrong key length", ErrCodec)
	ErrKeyMismatch      = fmt.Errorf("%w: public key does not match secret", ErrCodec)
	ErrInvalidURL       = fmt.Errorf("%w: invalid url", ErrCodec)
	ErrInvalidAddress   = fmt.Errorf("%w: invalid socket address", ErrCodec)
	ErrInvalidDuration  = fmt.Errorf("%w: invalid duration", ErrCodec)
	ErrUnknownBlockSize = fmt.Errorf("%w: unsupported block size", ErrCodec)
	ErrUnknownLifecycle = fmt.Errorf("%w: unknown lifecycle mode", ErrCodec)
	ErrInvalidCountry   = fmt.Errorf("%w: invalid country code", ErrCodec)
	ErrInvalidNumber    = fmt.Errorf("%w: invalid number", ErrCodec)
	ErrInvalidRemote    = fmt.Errorf("%w: invalid remote", ErrCodec)
)

// SourceError is returned when a whole source fails to load.
type SourceError struct {
	Source Source // which layer failed
	Origin string // file path, "environment" or "command line"
	Kind   error  // ErrSourceUnavailable or ErrSyntax
	Err    error
}

func (e *SourceError) Error() string {
	if e.Origin == "" {
		return fmt.Sprintf("%s source: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s source %q: %v", e.Source, e.Origin, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *SourceError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// FieldError is returned when a single configuration field fails extraction or validation.
type FieldError struct {
	Path   string // dotted path, e.g. "validator.keypair"
	Source Source // layer that supplied the winning value, empty when the field is absent
	Name   string // key as written in the source: env var, flag or file key
	Value  string // offending text, redacted for secrets
	Kind   error  // ErrCodec or ErrStructural
	Err    error
}

func (e *FieldError) Error() string {
	where := e.Path
	if e.Source != "" {
		where = fmt.Sprintf("%s (from %s", e.Path, e.Source)
		if e.Name != "" && e.Name != e.Path {
			where += " " + e.Name
		}
		where += ")"
	}
	if e.Value != "" {
		return fmt.Sprintf("%s = %q: %v", where, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *FieldError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func sourceError(src Source, origin string, kind error, format string, args ...any) *SourceError {
	return &SourceError{Source: src, Origin: origin, Kind: kind, Err: fmt.Errorf(format, args...)}
}
