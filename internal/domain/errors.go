package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UniqueViolation is returned by repositories when an insert or update hits
// a unique constraint. It matches ErrDuplicate with errors.Is.
type UniqueViolation struct {
	Constraint string
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *UniqueViolation) Is(target error) bool {
	return target == ErrDuplicate
}
