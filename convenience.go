// FILE: lixenwraith/valconfig/convenience.go
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Quick assembles the configuration from os.Args, the process environment and the file they
// name. This is the recommended way to initialize configuration for most validators.
func Quick() (*Params, error) {
	return NewBuilder().Build()
}

// QuickWithDiscovery is Quick, falling back to a discovered appName.toml (or .yaml/.json) in
// the working directory or XDG config directories when no file is named.
func QuickWithDiscovery(appName string) (*Params, error) {
	return NewBuilder().WithFileDiscovery(DefaultDiscoveryOptions(appName)).Build()
}

// MustQuick is like Quick but panics on error
func MustQuick() *Params {
	params, err := Quick()
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return params
}

// Debug returns a formatted string showing all configuration values and their sources
func (c *Config) Debug() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	fmt.Fprintf(&b, "Precedence: %v\n", c.options.Sources)
	if c.filePath != "" {
		fmt.Fprintf(&b, "File: %s\n", c.filePath)
	}
	b.WriteString("Current values:\n")

	show := func(item configItem, v any) string {
		if item.redact {
			return redactedValue
		}
		return describeValue(v)
	}

	for _, path := range c.order {
		item := c.items[path]
		fmt.Fprintf(&b, "  %s:\n", path)
		if item.origin == "" {
			b.WriteString("    Current: <absent>\n")
		} else {
			fmt.Fprintf(&b, "    Current: %s (%s)\n", show(item, item.currentValue), item.origin)
		}
		if item.hasDefault {
			fmt.Fprintf(&b, "    Default: %s\n", show(item, item.defaultValue))
		}

		sources := make([]Source, 0, len(item.values))
		for source := range item.values {
			sources = append(sources, source)
		}
		sort.Slice(sources, func(i, j int) bool { return c.options.rank(sources[i]) < c.options.rank(sources[j]) })
		for _, source := range sources {
			fmt.Fprintf(&b, "    %s: %s (%s)\n", source, show(item, item.values[source]), item.names[source])
		}
	}

	return b.String()
}

// ExportEnv returns environment assignments that reproduce every value not taken from the
// defaults. Only text-representable values are exported; a structured remote is skipped.
func (c *Config) ExportEnv() map[string]string {
	exports := make(map[string]string)
	for _, path := range c.Paths() {
		origin := c.Origin(path)
		if origin == "" || origin == SourceDefault {
			continue
		}
		value, _ := c.Get(path)
		switch v := value.(type) {
		case map[string]any, []any, []map[string]any:
			continue
		case RemoteCluster:
			if !IsSingleUnified(v) {
				continue
			}
		}
		exports[c.EnvName(path)] = describeValue(value)
	}
	return exports
}
