package model

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the common kind of all argument related
// errors reported by the data container.
var ErrInvalidArgument = errors.New("invalid argument")

var ErrInvalidModelId = fmt.Errorf("invalid model id: %w", ErrInvalidArgument)

func InvalidArgument(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(msg, args...))
}
