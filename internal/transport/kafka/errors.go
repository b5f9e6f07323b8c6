package kafka

import "errors"

// PermanentError wraps a handler failure that retrying cannot fix, such as a
// result for an unknown checkout. The consumer commits the offset and moves on.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "payment result skipped"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as permanent. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return PermanentError{Err: err}
}

// IsPermanent reports whether err, or anything it wraps, was marked permanent.
func IsPermanent(err error) bool {
	var perm PermanentError
	return errors.As(err, &perm)
}
