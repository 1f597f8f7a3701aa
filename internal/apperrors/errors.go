package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
// A submission rejected with this error never reaches the backend store.
var ErrValidation = errors.New("validation error")

// ErrPersist indicates that the backend store could not be reached or refused the operation.
var ErrPersist = errors.New("persistence error")

// PersistError carries the failed store operation alongside the underlying cause.
// errors.Is(err, ErrPersist) reports true for any *PersistError.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersist.Error(), e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is makes every PersistError match ErrPersist.
func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

// NewPersistError wraps err for the given store operation. A nil err stays nil.
func NewPersistError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistError{Op: op, Err: err}
}
