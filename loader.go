// FILE: lixenwraith/valconfig/loader.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// configPathKey is the path that names the configuration file itself.
const configPathKey = "config"

// envOrigin is the Overlay.Origin of the environment layer.
const envOrigin = "environment"

// LoadFile reads a configuration file into a file-layer overlay. The store is not modified;
// pass the overlay to Apply. A file that does not exist is ErrSourceUnavailable, a file that
// does not parse is ErrSyntax. Keys that match no field are listed in Overlay.Unknown.
func (c *Config) LoadFile(path string) (*Overlay, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	format := detectFileFormat(path)
	fileConfig, err := parseFileData(data, format)
	if err != nil {
		return nil, &SourceError{Source: SourceFile, Origin: path, Kind: ErrSyntax,
			Err: fmt.Errorf("failed to parse %s config file: %w", format, err)}
	}

	o := NewOverlay(SourceFile, path)
	if err := c.collectFileValues(o, "", fileConfig); err != nil {
		return nil, err
	}
	return o, nil
}

// readFile reads the whole file and releases the handle on every path.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sourceError(SourceFile, path, ErrSourceUnavailable, "config file does not exist")
		}
		return nil, sourceError(SourceFile, path, ErrSourceUnavailable, "failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, sourceError(SourceFile, path, ErrSourceUnavailable, "failed to read config file: %w", err)
	}
	return data, nil
}

// parseFileData decodes a document into nested maps.
func parseFileData(data []byte, format string) (map[string]any, error) {
	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &fileConfig); err != nil {
			return nil, err
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return fileConfig, nil
}

// collectFileValues copies registered leaves from a parsed document into o. A registered
// leaf is taken whole, so "remote" may be a string, a table or an array of either.
func (c *Config) collectFileValues(o *Overlay, prefix string, table map[string]any) error {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := table[key]
		path := joinPath(prefix, key)

		switch {
		case path == configPathKey:
			// A file cannot redirect to another file.
			o.addUnknown(path)
		case c.IsRegistered(path):
			o.Set(path, value, path)
		case c.isTable(path):
			sub, ok := value.(map[string]any)
			if !ok {
				return sourceError(SourceFile, o.Origin, ErrSyntax, "key %q must be a table, got %T", path, value)
			}
			if err := c.collectFileValues(o, path, sub); err != nil {
				return err
			}
		default:
			o.addUnknown(path)
		}
	}
	return nil
}

// detectFileFormat determines format from file extension, defaulting to TOML
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// LoadEnv builds the environment overlay from a snapshot of variables. Variables carrying the
// configured prefix are mapped to paths by splitting the rest of the name on the separator;
// hyphens inside a key may be written as the separator or left out. Values stay text and are
// decoded by the field codec after merging. A variable naming a whole table is ErrSyntax;
// other unmatched prefixed variables are listed in Overlay.Unknown.
func (c *Config) LoadEnv(environ map[string]string) (*Overlay, error) {
	opts := c.Options()
	leaves, tables := c.envIndex(opts.EnvSeparator)
	o := NewOverlay(SourceEnv, envOrigin)

	names := make([]string, 0, len(environ))
	for name := range environ {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rest, ok := strings.CutPrefix(name, opts.EnvPrefix)
		if !ok || rest == "" {
			continue
		}
		key := strings.ToUpper(rest)
		if path, ok := leaves[key]; ok {
			o.Set(path, environ[name], name)
			continue
		}
		if table, ok := tables[key]; ok {
			return nil, sourceError(SourceEnv, name, ErrSyntax, "%s names the table %q, not a value", name, table)
		}
		if opts.EnvPrefix != "" {
			o.addUnknown(name)
		}
	}
	return o, nil
}

// envIndex maps every accepted variable spelling (without prefix) to its path.
func (c *Config) envIndex(sep string) (leaves, tables map[string]string) {
	leaves = make(map[string]string)
	tables = make(map[string]string)
	for _, path := range c.Paths() {
		for _, name := range envSpellings(path, sep) {
			if _, taken := leaves[name]; !taken {
				leaves[name] = path
			}
		}
		segments := strings.Split(path, ".")
		for i := 1; i < len(segments); i++ {
			table := strings.Join(segments[:i], ".")
			for _, name := range envSpellings(table, sep) {
				tables[name] = table
			}
		}
	}
	return leaves, tables
}

// envSpellings returns the upper-case names a path may take, hyphens either replaced by
// the separator or removed.
func envSpellings(path, sep string) []string {
	names := []string{""}
	for i, segment := range strings.Split(path, ".") {
		variants := []string{strings.ReplaceAll(segment, "-", sep)}
		if strings.Contains(segment, "-") {
			variants = append(variants, strings.ReplaceAll(segment, "-", ""))
		}
		next := make([]string, 0, len(names)*len(variants))
		for _, n := range names {
			for _, v := range variants {
				if i > 0 {
					v = sep + v
				}
				next = append(next, n+strings.ToUpper(v))
			}
		}
		names = next
	}
	return names
}

// EnvName returns the canonical environment variable for path.
func (c *Config) EnvName(path string) string {
	opts := c.Options()
	return opts.EnvPrefix + envSpellings(path, opts.EnvSeparator)[0]
}

// resolveConfigPath returns the configuration file named by the command line or the
// environment, whichever has higher precedence. The file layer never names itself.
// A path that is given but blank is an error, not an absent one.
func (c *Config) resolveConfigPath(overlays ...*Overlay) (string, *Overlay, error) {
	for _, source := range c.Options().Sources {
		if source == SourceFile || source == SourceDefault {
			continue
		}
		for _, o := range overlays {
			if o == nil || o.Source != source {
				continue
			}
			v, ok := o.Lookup(configPathKey)
			if !ok {
				continue
			}
			path := strings.TrimSpace(describeValue(v))
			if path == "" {
				return "", o, &FieldError{
					Path:   configPathKey,
					Source: o.Source,
					Name:   o.Name(configPathKey),
					Kind:   ErrCodec,
					Err:    errors.New("configuration file path is empty"),
				}
			}
			return path, o, nil
		}
	}
	return "", nil, nil
}
