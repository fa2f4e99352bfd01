package relationship

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is the kind of all errors caused by a missing or
// inconsistent relationship configuration.
var ErrConfiguration = errors.New("relationship configuration error")

// ConfigurationError describes a configuration problem for
// a set of providers.
type ConfigurationError struct {
	msg       string
	Providers []string
}

func ConfigurationErrorf(providers []string, msg string, args ...any) error {
	return &ConfigurationError{
		msg:       fmt.Sprintf(msg, args...),
		Providers: providers,
	}
}

func (e *ConfigurationError) Error() string {
	if len(e.Providers) == 0 {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.msg)
	}
	return fmt.Sprintf("%s: %s [%s]", ErrConfiguration, e.msg, strings.Join(e.Providers, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
