// FILE: lixenwraith/valconfig/coerce.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// toUint converts a raw source value into an unsigned integer that fits in bits.
// Text is parsed as base 10 and may use '_' as a digit separator.
func toUint(data any, bits int) (uint64, error) {
	if n, ok := data.(json.Number); ok {
		data = n.String()
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.String()), "_", "")
		if strings.HasPrefix(s, "-") {
			return 0, fmt.Errorf("%w: %q must not be negative", ErrInvalidNumber, v.String())
		}
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, fmt.Errorf("%w: %q overflows %d-bit unsigned integer", ErrInvalidNumber, v.String(), bits)
			}
			return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrInvalidNumber, v.String())
		}
		return n, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < 0 {
			return 0, fmt.Errorf("%w: %d must not be negative", ErrInvalidNumber, i)
		}
		return checkUintRange(uint64(i), bits)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return checkUintRange(v.Uint(), bits)

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f < 0 || f != math.Trunc(f) || f >= math.Ldexp(1, bits) {
			return 0, fmt.Errorf("%w: %v is not an unsigned %d-bit integer", ErrInvalidNumber, f, bits)
		}
		return uint64(f), nil

	default:
		return 0, fmt.Errorf("%w: expected unsigned integer, got %T", ErrInvalidNumber, data)
	}
}

func checkUintRange(n uint64, bits int) (uint64, error) {
	if bits < 64 && n >= 1<<uint(bits) {
		return 0, fmt.Errorf("%w: %d overflows %d-bit unsigned integer", ErrInvalidNumber, n, bits)
	}
	return n, nil
}

// toFloat converts numeric raw values and numeric text into a float64.
func toFloat(data any) (float64, bool) {
	if n, ok := data.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// toBool converts a raw boolean or its text form.
func toBool(data any) (bool, error) {
	switch v := data.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrCodec, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: expected boolean, got %T", ErrCodec, data)
	}
}

// describeValue renders a raw value for error messages.
func describeValue(data any) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
