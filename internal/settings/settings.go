// Package settings holds instruct's own settings, read from the environment
// and overridden by command-line flags.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/re-cinq/instruct/internal/fileutil"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel     = "INSTRUCT_LOG_LEVEL"
	EnvLogFormat    = "INSTRUCT_LOG_FORMAT"
	EnvDefaultsFile = "INSTRUCT_DEFAULTS_FILE"
)

// Settings configure the tool itself, not the instructions it renders.
type Settings struct {
	LogLevel     string `validate:"required,oneof=trace debug info warn error disabled"`
	LogFormat    string `validate:"required,oneof=console json"`
	DefaultsFile string `validate:"omitempty,filepath"`
}

var validate = validator.New()

// Default returns the built-in settings.
func Default() Settings {
	return Settings{LogLevel: "warn", LogFormat: "console"}
}

// FromEnv overlays the INSTRUCT_* variables found by lookup on Default().
func FromEnv(lookup func(string) (string, bool)) Settings {
	s := Default()
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		s.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDefaultsFile); ok {
		s.DefaultsFile = v
	}
	return s
}

// Validate reports the first invalid field in a readable form.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s %q must be one of: %s", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s %q is not a valid %s", fe.Field(), fe.Value(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// DefaultsPath returns the saved-answers file, DefaultsFile when set.
func (s Settings) DefaultsPath() (string, error) {
	if s.DefaultsFile != "" {
		return s.DefaultsFile, nil
	}
	return fileutil.DefaultsPath()
}
