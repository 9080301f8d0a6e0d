package repo

import (
	"errors"
	"fmt"
)

// ErrCancelled marks a batch stopped by cooperative cancellation. It is
// reported distinctly from per-item failures.
var ErrCancelled = errors.New("batch cancelled")

// NotFoundError indicates an entry vanished between scan and mutation.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %s not found", e.ID)
}

// ReferenceQueryError indicates the referencer lookup for an entry could not
// complete. The entry is recorded as a failure and skipped; resolution
// continues for the rest of the batch.
type ReferenceQueryError struct {
	ID  string
	Err error
}

func (e *ReferenceQueryError) Error() string {
	return fmt.Sprintf("reference query for %s failed: %v", e.ID, e.Err)
}

func (e *ReferenceQueryError) Unwrap() error { return e.Err }

// RenameConflictError indicates a computed target path already names an
// existing distinct entry. The planned op is skipped, never silently
// overwritten or disambiguated.
type RenameConflictError struct {
	Target   string
	HolderID string
}

func (e *RenameConflictError) Error() string {
	return fmt.Sprintf("target %s already occupied by entry %s", e.Target, e.HolderID)
}

// ConsolidationError indicates a reference to a duplicate could not be
// repointed at the canonical entry. The duplicate is left in place.
type ConsolidationError struct {
	DuplicateID string
	Err         error
}

func (e *ConsolidationError) Error() string {
	return fmt.Sprintf("consolidation of duplicate %s failed: %v", e.DuplicateID, e.Err)
}

func (e *ConsolidationError) Unwrap() error { return e.Err }

// PreconditionError aborts an operation before any mutation begins
// (e.g. empty selection, selected entry of the wrong type).
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}
