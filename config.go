// FILE: lixenwraith/valconfig/config.go
package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// configItem holds every layer's value for one configuration path
type configItem struct {
	defaultValue any
	hasDefault   bool
	values       map[Source]any    // raw overlay values by source
	names        map[Source]string // source-level key that supplied each value
	currentValue any
	origin       Source // source of currentValue, empty when absent
	index        []int  // field index path inside the registered struct
	redact       bool
}

// Config is the merged layer store. Each registered path resolves to the value of the
// highest-precedence source that holds it.
type Config struct {
	items    map[string]configItem
	order    []string // registration order
	layout   reflect.Type
	options  LoadOptions
	filePath string
	mutex    sync.RWMutex
}

// New creates a store with the default load options.
func New() *Config {
	cfg, _ := NewWithOptions(DefaultLoadOptions())
	return cfg
}

// NewWithOptions creates a store with the given precedence and environment settings.
func NewWithOptions(opts LoadOptions) (*Config, error) {
	normalized, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	return &Config{
		items:   make(map[string]configItem),
		options: normalized,
	}, nil
}

// Merge builds a store from defaults and applies the overlays. It is the functional form of
// RegisterStruct followed by Apply.
func Merge(defaults Params, opts LoadOptions, overlays ...*Overlay) (*Config, error) {
	cfg, err := NewWithOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.RegisterStruct(defaults); err != nil {
		return nil, fmt.Errorf("failed to register defaults: %w", err)
	}
	if err := cfg.Apply(overlays...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options returns the normalized load options.
func (c *Config) Options() LoadOptions {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	opts := c.options
	opts.Sources = append([]Source(nil), c.options.Sources...)
	return opts
}

// register adds one path. A nil defaultValue means the path has no default and stays absent
// until some overlay supplies it.
func (c *Config) register(path string, defaultValue any, index []int, redact bool) error {
	if path == "" {
		return fmt.Errorf("registration path cannot be empty")
	}
	for _, segment := range strings.Split(path, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("invalid path segment %q in path %q", segment, path)
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.items[path]; exists {
		return fmt.Errorf("path already registered: %s", path)
	}
	item := configItem{
		defaultValue: defaultValue,
		hasDefault:   !isNil(defaultValue),
		values:       make(map[Source]any),
		names:        make(map[Source]string),
		index:        index,
		redact:       redact,
	}
	item.currentValue, item.origin = c.computeValue(item)
	c.items[path] = item
	c.order = append(c.order, path)
	return nil
}

// Apply records each overlay's values in its source layer and recomputes the winners.
// Applying a second overlay for the same source replaces that layer entirely.
func (c *Config) Apply(overlays ...*Overlay) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, o := range overlays {
		if o == nil {
			continue
		}
		if o.Source == SourceDefault {
			return fmt.Errorf("cannot apply an overlay as the %s layer", SourceDefault)
		}
		for _, path := range o.Paths() {
			if _, exists := c.items[path]; !exists {
				return fmt.Errorf("%w: %s overlay sets unregistered path %q", ErrSyntax, o.Source, path)
			}
		}

		for path, item := range c.items {
			delete(item.values, o.Source)
			delete(item.names, o.Source)
			if v, ok := o.Lookup(path); ok {
				item.values[o.Source] = v
				item.names[o.Source] = o.Name(path)
			}
			item.currentValue, item.origin = c.computeValue(item)
			c.items[path] = item
		}
		if o.Source == SourceFile {
			c.filePath = o.Origin
		}
	}
	return nil
}

// computeValue walks the precedence order and returns the first layer holding a value.
func (c *Config) computeValue(item configItem) (any, Source) {
	for _, source := range c.options.Sources {
		if source == SourceDefault {
			break
		}
		if v, ok := item.values[source]; ok {
			return v, source
		}
	}
	if item.hasDefault {
		return item.defaultValue, SourceDefault
	}
	return nil, ""
}

// Get returns the winning raw value for path. The bool is false when the path is not
// registered or no layer holds a value.
func (c *Config) Get(path string) (any, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[path]
	if !exists || item.origin == "" {
		return nil, false
	}
	return item.currentValue, true
}

// GetSource returns the raw value a specific layer holds for path.
func (c *Config) GetSource(path string, source Source) (any, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[path]
	if !exists {
		return nil, false
	}
	if source == SourceDefault {
		return item.defaultValue, item.hasDefault
	}
	v, ok := item.values[source]
	return v, ok
}

// Origin reports which layer supplied the winning value for path. It is empty when the path
// is absent from every layer.
func (c *Config) Origin(path string) Source {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.items[path].origin
}

// SourceName returns the key that supplied the winning value for path, such as the name of
// an environment variable or flag.
func (c *Config) SourceName(path string) string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item := c.items[path]
	if name, ok := item.names[item.origin]; ok {
		return name
	}
	return path
}

// Sources returns every layer's value for path, including the default.
func (c *Config) Sources(path string) map[Source]any {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[path]
	if !exists {
		return nil
	}
	result := make(map[Source]any, len(item.values)+1)
	for s, v := range item.values {
		result[s] = v
	}
	if item.hasDefault {
		result[SourceDefault] = item.defaultValue
	}
	return result
}

// Paths returns all registered paths in registration order.
func (c *Config) Paths() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return append([]string(nil), c.order...)
}

// IsRegistered reports whether path is a configuration leaf.
func (c *Config) IsRegistered(path string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, exists := c.items[path]
	return exists
}

// isTable reports whether path is a proper prefix of some registered leaf.
func (c *Config) isTable(path string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	prefix := path + "."
	for _, p := range c.order {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// FilePath returns the configuration file the file layer was loaded from, if any.
func (c *Config) FilePath() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.filePath
}

// Redacted reports whether values of path must be hidden from diagnostics.
func (c *Config) Redacted(path string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.items[path].redact
}
