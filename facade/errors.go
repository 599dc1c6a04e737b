package facade

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required name, type or backend is absent.
// It is always returned before the backend is contacted.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// errNilBackend is returned by NewFactory for a nil backend.
	errNilBackend = fmt.Errorf("%w: backend is nil", ErrInvalidArgument)
	// errNilType is returned when a type-based lookup receives a nil type.
	errNilType = fmt.Errorf("%w: type is nil", ErrInvalidArgument)
	// errEmptyName is returned when empty names are disallowed.
	errEmptyName = fmt.Errorf("%w: logger name is empty", ErrInvalidArgument)
)
