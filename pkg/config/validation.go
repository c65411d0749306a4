package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against the struct validation tags.
// Values are checked as-is; normalization happens in ApplyDefaults, not
// here.
func Validate(cfg *Config) error {
	validate := validator.New()

	// Report violations under the config file key names
	// (logging.level) instead of Go field names (Logging.Level)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatValidationErrors(verrs)
		}
		return err
	}

	return nil
}

// formatValidationErrors renders one line per violated rule, naming the
// config key and the validation tag that rejected its value.
func formatValidationErrors(errs validator.ValidationErrors) error {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		line := fmt.Sprintf("%s: failed %q validation", key, e.Tag())
		if e.Param() != "" {
			line += fmt.Sprintf(" (allowed: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			line += fmt.Sprintf(" (got: %v)", e.Value())
		}
		lines = append(lines, line)
	}
	return fmt.Errorf("invalid configuration:\n  %s", strings.Join(lines, "\n  "))
}
