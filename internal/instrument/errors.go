package instrument

import (
	"errors"
	"strings"
)

var (
	ErrInvalidConfig    = errors.New("invalid instrument configuration")
	ErrQuestionNotFound = errors.New("question not found")
)

// ConfigError lists every problem found while validating an instrument.
// A process must not serve scoring requests with an instrument that fails validation.
type ConfigError struct {
	Issues []string
}

func (e *ConfigError) Error() string {
	if len(e.Issues) == 0 {
		return ErrInvalidConfig.Error()
	}
	return ErrInvalidConfig.Error() + ": " + strings.Join(e.Issues, "; ")
}

// Is makes errors.Is(err, ErrInvalidConfig) match any ConfigError
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
