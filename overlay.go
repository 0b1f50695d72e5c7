// FILE: lixenwraith/valconfig/overlay.go
package config

import "sort"

// Overlay is the partial configuration produced by one source.
// A path either holds a raw value or is absent; absence is the only way to defer to a
// lower-precedence layer. Values keep the representation the source produced (text for
// flags and environment, TOML/YAML/JSON scalars and tables for files) and are decoded only
// after the merge.
type Overlay struct {
	// Source is the layer this overlay belongs to.
	Source Source
	// Origin describes where the data came from, e.g. a file path.
	Origin string

	values  map[string]any
	names   map[string]string
	unknown []string
}

// NewOverlay creates an empty overlay for the given source.
func NewOverlay(source Source, origin string) *Overlay {
	return &Overlay{
		Source: source,
		Origin: origin,
		values: make(map[string]any),
		names:  make(map[string]string),
	}
}

// Set records value for path. name is the key as written in the source and is used in
// error messages; it may be empty. A nil value removes the path.
func (o *Overlay) Set(path string, value any, name string) {
	if value == nil {
		delete(o.values, path)
		delete(o.names, path)
		return
	}
	o.values[path] = value
	if name != "" {
		o.names[path] = name
	}
}

// Lookup returns the raw value for path and whether the overlay holds it.
func (o *Overlay) Lookup(path string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[path]
	return v, ok
}

// Name returns the source-level key that supplied path.
func (o *Overlay) Name(path string) string {
	if n, ok := o.names[path]; ok {
		return n
	}
	return path
}

// Paths returns the present paths in sorted order.
func (o *Overlay) Paths() []string {
	if o == nil {
		return nil
	}
	paths := make([]string, 0, len(o.values))
	for p := range o.values {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of present paths.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.values)
}

// Unknown lists keys the source carried that match no configuration field.
func (o *Overlay) Unknown() []string {
	if o == nil {
		return nil
	}
	return o.unknown
}

func (o *Overlay) addUnknown(key string) {
	o.unknown = append(o.unknown, key)
}
