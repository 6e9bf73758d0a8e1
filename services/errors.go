package services

import (
	"errors"
	"fmt"
)

// ValidationError rejects input before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError is returned when a referenced entity does not exist or
// belongs to another operator. The two cases are not distinguished.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConsistencyError means one side of a ledger/aggregate write could not be
// undone after the other failed. RollbackErr is set when the rollback itself
// failed; that is the one condition callers must treat as fatal.
type ConsistencyError struct {
	Op          string
	Err         error
	RollbackErr error
}

func (e *ConsistencyError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%s: %v (rollback failed: %v)", e.Op, e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConsistency(err error) bool {
	var target *ConsistencyError
	return errors.As(err, &target)
}

// Fatal reports whether storage atomicity was not honored.
func (e *ConsistencyError) Fatal() bool { return e.RollbackErr != nil }
