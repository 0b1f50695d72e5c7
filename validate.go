// FILE: lixenwraith/valconfig/validate.go
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const redactedValue = "<redacted>"

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// getValidator returns the shared struct validator. Field names in its errors are the
// `toml` keys, so namespaces read as configuration paths.
func getValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := tomlKey(fld)
			if name == "-" {
				return ""
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// checkRemote enforces that sources which can only carry text set a single unified remote.
func (c *Config) checkRemote(p *Params) error {
	c.mutex.RLock()
	item := c.items["remote"]
	c.mutex.RUnlock()

	if p.Remote == nil {
		return newFieldError("remote", item, ErrStructural, errors.New("remote cluster is required"))
	}
	switch item.origin {
	case SourceCLI, SourceEnv:
		if !IsSingleUnified(p.Remote) {
			return newFieldError("remote", item, ErrStructural,
				fmt.Errorf("%s can only set a single remote url, got %s", item.origin, describeRemoteShape(p.Remote)))
		}
	}
	return nil
}

func describeRemoteShape(rc RemoteCluster) string {
	switch v := rc.(type) {
	case MultipleRemotes:
		return fmt.Sprintf("%d remotes", len(v))
	case SingleRemote:
		if _, ok := v.Remote.(DisjointedRemote); ok {
			return "separate http and ws urls"
		}
	}
	return fmt.Sprintf("%T", rc)
}

// validateStruct runs the `validate` tag rules and reports the first failure.
func (c *Config) validateStruct(p *Params) error {
	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrStructural, err)
	}

	fe := verrs[0]
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	c.mutex.RLock()
	item := c.items[path]
	c.mutex.RUnlock()

	if fe.Tag() == "required" {
		if item.origin != "" {
			return newFieldError(path, item, ErrCodec, errors.New("must not be empty or zero"))
		}
		return newFieldError(path, item, ErrStructural, fmt.Errorf("required field is missing from section %q", parentPath(path)))
	}
	return newFieldError(path, item, ErrCodec, validationMessage(fe))
}

func validationMessage(fe validator.FieldError) error {
	switch fe.Tag() {
	case "gt":
		return fmt.Errorf("must be greater than %s", fe.Param())
	case "iso3166_1_alpha2":
		return fmt.Errorf("%w: %v is not an ISO 3166-1 alpha-2 code", ErrInvalidCountry, fe.Value())
	default:
		return fmt.Errorf("failed %q check", fe.Tag())
	}
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return ""
}

// newFieldError describes a failing field using the layer that supplied its value.
func newFieldError(path string, item configItem, kind, err error) *FieldError {
	fe := &FieldError{
		Path:   path,
		Source: item.origin,
		Kind:   kind,
		Err:    err,
	}
	if item.origin == "" {
		return fe
	}
	fe.Name = path
	if name, ok := item.names[item.origin]; ok {
		fe.Name = name
	}
	if item.redact {
		fe.Value = redactedValue
	} else {
		fe.Value = describeValue(item.currentValue)
	}
	return fe
}
