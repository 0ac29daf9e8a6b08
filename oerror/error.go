package oerror

import "fmt"

// KnockbackError is an error returned by the knockback packages.
type KnockbackError struct {
	Err string
}

// New creates a new KnockbackError using the format and arguments passed.
func New(format string, args ...any) *KnockbackError {
	return &KnockbackError{Err: fmt.Sprintf(format, args...)}
}

func (e *KnockbackError) Error() string {
	return e.Err
}
