// FILE: lixenwraith/valconfig/decode.go
package config

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

var (
	blockSizeType = reflect.TypeOf(BlockSize(0))
	byteSizeType  = reflect.TypeOf(ByteSize(0))
)

// Params decodes the merged layers into a Params value and validates it. Fields are decoded
// in registration order and the first failure is returned as a *FieldError naming the path,
// the winning source and the offending text. No partial result is returned.
func (c *Config) Params() (*Params, error) {
	var p Params
	if err := c.extract(&p); err != nil {
		return nil, err
	}
	if err := c.checkRemote(&p); err != nil {
		return nil, err
	}
	if err := c.validateStruct(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// extract decodes every present leaf into target, which must point to the registered struct type.
func (c *Config) extract(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("extract target must be non-nil pointer, got %T", target)
	}
	root := rv.Elem()

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.layout == nil || root.Type() != c.layout {
		return fmt.Errorf("extract target must be *%v, got %T", c.layout, target)
	}

	for _, path := range c.order {
		item := c.items[path]
		if item.origin == "" {
			continue
		}
		field := fieldByIndex(root, item.index)
		if err := decodeLeaf(item.currentValue, field); err != nil {
			return newFieldError(path, item, ErrCodec, err)
		}
	}
	return nil
}

// fieldByIndex walks a field index path, allocating nil struct pointers on the way.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// decodeLeaf converts one raw layer value into field.
func decodeLeaf(raw any, field reflect.Value) error {
	if raw == nil {
		return nil
	}
	if reflect.TypeOf(raw).AssignableTo(field.Type()) {
		field.Set(reflect.ValueOf(raw))
		return nil
	}

	// Text goes straight to the field's codec so its error is reported unchanged.
	if text, ok := raw.(string); ok {
		if u, ok := textUnmarshalerFor(field); ok {
			return u.UnmarshalText([]byte(text))
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      field.Addr().Interface(),
		TagName:     "toml",
		DecodeHook:  leafDecodeHook(),
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	return decoder.Decode(raw)
}

// textUnmarshalerFor returns the TextUnmarshaler behind field, allocating pointer fields.
func textUnmarshalerFor(field reflect.Value) (encoding.TextUnmarshaler, bool) {
	if field.Kind() == reflect.Ptr {
		if !field.Type().Implements(textUnmarshalerType) {
			return nil, false
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return field.Interface().(encoding.TextUnmarshaler), true
	}
	if !field.CanAddr() || !field.Addr().Type().Implements(textUnmarshalerType) {
		return nil, false
	}
	return field.Addr().Interface().(encoding.TextUnmarshaler), true
}

// leafDecodeHook returns the composite decode hook for all leaf conversions
func leafDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		remoteClusterHookFunc(),
		durationHookFunc(),
		blockSizeHookFunc(),
		byteSizeHookFunc(),
		textUnmarshalerHookFunc(),
		unsignedHookFunc(),
		boolHookFunc(),
	)
}

// remoteClusterHookFunc decodes every representation of a remote cluster
func remoteClusterHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != remoteClusterType {
			return data, nil
		}
		return decodeRemoteCluster(data)
	}
}

// durationHookFunc accepts duration text or a number of seconds
func durationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType || f == durationType {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return ParseDuration(s)
		}
		if secs, ok := toFloat(data); ok {
			return DurationFromSeconds(secs)
		}
		return nil, fmt.Errorf("%w: expected text or seconds, got %T", ErrInvalidDuration, data)
	}
}

// blockSizeHookFunc maps numeric identities onto block sizes
func blockSizeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != blockSizeType || f == blockSizeType {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return ParseBlockSize(s)
		}
		n, err := toUint(data, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownBlockSize, err)
		}
		return BlockSizeFromUint(n)
	}
}

// byteSizeHookFunc accepts integer byte counts
func byteSizeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != byteSizeType || f == byteSizeType || f.Kind() == reflect.String {
			return data, nil
		}
		n, err := toUint(data, 64)
		if err != nil {
			return nil, err
		}
		return ByteSize(n), nil
	}
}

// textUnmarshalerHookFunc routes text into any type implementing encoding.TextUnmarshaler
func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		target := t
		if target.Kind() == reflect.Ptr {
			target = target.Elem()
		}
		if !reflect.PointerTo(target).Implements(textUnmarshalerType) {
			return data, nil
		}
		value := reflect.New(target)
		if err := value.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(reflect.ValueOf(data).String())); err != nil {
			return nil, err
		}
		return value.Elem().Interface(), nil
	}
}

// unsignedHookFunc converts numbers and numeric text into unsigned integers with range checks
func unsignedHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f == t {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return data, nil
		}
		n, err := toUint(data, t.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(t).Interface(), nil
	}
}

// boolHookFunc accepts booleans written as text
func boolHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t.Kind() != reflect.Bool || f.Kind() == reflect.Bool {
			return data, nil
		}
		return toBool(data)
	}
}

// Scan decodes the merged values below basePath into target using `toml` tags. It is meant
// for callers that mirror one section in their own struct; use Params for the full,
// validated configuration.
func (c *Config) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	c.mutex.RLock()
	nestedMap := make(map[string]any)
	for _, path := range c.order {
		if item := c.items[path]; item.origin != "" {
			setNestedValue(nestedMap, path, item.currentValue)
		}
	}
	c.mutex.RUnlock()

	section := navigateToPath(nestedMap, basePath)
	if section == nil {
		section = make(map[string]any)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		TagName:    "toml",
		DecodeHook: leafDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}
