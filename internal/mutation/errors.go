package mutation

import (
	"fmt"

	"github.com/alexanderramin/chrona/internal/domain"
)

type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReorder Op = "reorder"
)

// ValidationError rejects an operation before any local apply, so a bad call
// can never corrupt the store.
type ValidationError struct {
	Entity domain.EntityType
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

// MutationFailed reports a remote rejection after the local state has been
// rolled back to its pre-operation snapshot.
type MutationFailed struct {
	Entity domain.EntityType
	Op     Op
	Cause  error
}

func (e *MutationFailed) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Entity, e.Cause)
}

func (e *MutationFailed) Unwrap() error {
	return e.Cause
}
