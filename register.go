// FILE: lixenwraith/valconfig/register.go
package config

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	remoteClusterType   = reflect.TypeOf((*RemoteCluster)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
)

// RegisterStruct registers one configuration path per leaf field of structWithDefaults,
// using `toml` tags for the path segments. Nested structs become tables. A nil pointer to a
// struct registers its leaves without defaults, so the section stays absent unless a source
// supplies it. Fields tagged `redact:"true"` are hidden from diagnostics.
func (c *Config) RegisterStruct(structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("RegisterStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	c.mutex.Lock()
	if c.layout != nil {
		c.mutex.Unlock()
		return fmt.Errorf("a struct is already registered: %s", c.layout)
	}
	c.layout = v.Type()
	c.mutex.Unlock()

	var errs []string
	c.registerFields(v, v.Type(), "", nil, &errs)
	if len(errs) > 0 {
		return fmt.Errorf("failed to register %d field(s): %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// registerFields walks t recursively. v is invalid when the enclosing section has no default.
func (c *Config) registerFields(v reflect.Value, t reflect.Type, prefix string, index []int, errs *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key := tomlKey(field)
		if key == "-" {
			continue
		}
		path := joinPath(prefix, key)
		fieldIndex := append(slices.Clone(index), i)

		var fv reflect.Value
		if v.IsValid() {
			fv = v.Field(i)
		}

		if !isLeafType(field.Type) {
			st := field.Type
			if st.Kind() == reflect.Ptr {
				st = st.Elem()
				if fv.IsValid() {
					if fv.IsNil() {
						fv = reflect.Value{}
					} else {
						fv = fv.Elem()
					}
				}
			}
			c.registerFields(fv, st, path, fieldIndex, errs)
			continue
		}

		var def any
		if fv.IsValid() && !isNil(fv.Interface()) {
			def = fv.Interface()
		}
		if err := c.register(path, def, fieldIndex, field.Tag.Get("redact") == "true"); err != nil {
			*errs = append(*errs, fmt.Sprintf("field %s (%s): %v", field.Name, path, err))
		}
	}
}

// isLeafType reports whether values of t are decoded as a unit rather than walked as a table.
func isLeafType(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	return t.Kind() != reflect.Struct
}

// tomlKey returns the path segment for a struct field.
func tomlKey(field reflect.StructField) string {
	tag := field.Tag.Get("toml")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
