package engine

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a broken internal consistency rule; it is raised by panic, never returned
var ErrInvariant = errors.New("engine invariant violated")

func invariant(err error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		panic(fmt.Errorf("%w: %s: %w", ErrInvariant, msg, err))
	}
	panic(fmt.Errorf("%w: %s", ErrInvariant, msg))
}
