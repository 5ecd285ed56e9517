// Package config loads and validates the processing configuration.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Settings is the processing configuration commands hand to the
// pipeline. Values come from flags, TABIR_* environment variables and
// the optional config file; flags win over env, env over file.
type Settings struct {
	InputFile string `mapstructure:"input" validate:"required"`
	OutputDir string `mapstructure:"output-dir" validate:"required"`

	MinContentLength int  `mapstructure:"min-content-length" validate:"gt=0"`
	Parallel         bool `mapstructure:"parallel"`
	MaxWorkers       int  `mapstructure:"max-workers" validate:"gte=0,lte=64"`
	ChunkSize        int  `mapstructure:"chunk-size" validate:"gte=0"`
	Benchmark        bool `mapstructure:"benchmark"`
	NoClean          bool `mapstructure:"no-clean"`

	SaveProcessedData bool `mapstructure:"save-processed-data"`
	SaveChatFormat    bool `mapstructure:"save-chat-format"`
	SavePromptFormat  bool `mapstructure:"save-prompt-format"`
	SaveQualityReport bool `mapstructure:"save-quality-report"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report flag/env names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})
	return v
}

// Load unmarshals the bound viper state into Settings and validates it.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %s", formatErrors(err))
	}
	return s, nil
}

// formatErrors renders validator failures as a single readable line.
func formatErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s %s", e.Field(), describeError(e)))
	}
	return strings.Join(parts, "; ")
}

// describeError creates a human-readable message for one failed rule.
func describeError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
