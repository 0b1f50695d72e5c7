// FILE: lixenwraith/valconfig/encode.go
package config

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EncodeOptions controls how Params are rendered.
type EncodeOptions struct {
	// Redact replaces secret values such as the keypair with a placeholder.
	Redact bool
}

// ToMap renders p as nested tables of plain values, the shape a configuration file has.
// Unset optional fields are omitted and the config path is never included.
func (p *Params) ToMap(opts EncodeOptions) map[string]any {
	return encodeStruct(reflect.ValueOf(p).Elem(), "", opts)
}

func encodeStruct(v reflect.Value, prefix string, opts EncodeOptions) map[string]any {
	out := make(map[string]any)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key := tomlKey(field)
		path := joinPath(prefix, key)
		if key == "-" || path == configPathKey {
			continue
		}

		fv := v.Field(i)
		if !isLeafType(field.Type) {
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if sub := encodeStruct(fv, path, opts); len(sub) > 0 {
				out[key] = sub
			}
			continue
		}

		if opts.Redact && field.Tag.Get("redact") == "true" {
			out[key] = redactedValue
			continue
		}
		if value, ok := encodeLeaf(fv); ok {
			out[key] = value
		}
	}
	return out
}

// encodeLeaf returns the file representation of one field; ok is false for unset values.
func encodeLeaf(v reflect.Value) (any, bool) {
	if (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, false
	}
	switch value := v.Interface().(type) {
	case RemoteCluster:
		return encodeRemoteCluster(value), true
	case time.Duration:
		return FormatDuration(value), true
	case BlockSize:
		return int64(value), true
	case ByteSize:
		return encodeUint(uint64(value)), true
	case string:
		return value, value != ""
	case bool:
		return value, true
	case encoding.TextMarshaler:
		text, err := value.MarshalText()
		if err != nil || len(text) == 0 {
			return nil, false
		}
		return string(text), true
	}

	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint(v.Uint()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	}
	return v.Interface(), true
}

// encodeUint keeps integers signed where possible, since TOML integers are 64-bit signed.
func encodeUint(n uint64) any {
	if n <= math.MaxInt64 {
		return int64(n)
	}
	return n
}

// Encode writes p in the given format: "toml", "yaml" or "json".
func (p *Params) Encode(w io.Writer, format string, opts EncodeOptions) error {
	data := p.ToMap(opts)
	switch format {
	case "toml":
		if err := toml.NewEncoder(w).Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config data to JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

// Save writes p to path atomically, choosing the format from the file extension.
// Secrets are written in full.
func (p *Params) Save(path string) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf, detectFileFormat(path), EncodeOptions{}); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	// The file may carry the validator keypair.
	if err := os.Chmod(tempPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
