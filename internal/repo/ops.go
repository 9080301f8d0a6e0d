package repo

import (
	"fmt"
	"strings"
)

// MutationOp is one planned structural mutation. Each op is applied as a
// single repository call; the batch as a whole is not transactional.
type MutationOp interface {
	// Label is the display name used for progress reporting.
	Label() string
	// Describe renders the op for logs and dry-run output.
	Describe() string
}

// Rename moves an entry to a new full path (archive, reorganize, or
// prefix-enforcement rename).
type Rename struct {
	Entry  Entry
	Target string
}

func (op Rename) Label() string { return op.Entry.Name }

func (op Rename) Describe() string {
	return fmt.Sprintf("rename %s -> %s", op.Entry.Path(), op.Target)
}

// Delete removes an entry from the repository.
type Delete struct {
	Entry Entry
}

func (op Delete) Label() string { return op.Entry.Name }

func (op Delete) Describe() string {
	return fmt.Sprintf("delete %s", op.Entry.Path())
}

// Consolidate repoints every reference to each duplicate at the canonical
// entry, then removes the duplicates.
type Consolidate struct {
	Canonical  Entry
	Duplicates []Entry
}

func (op Consolidate) Label() string { return op.Canonical.Name }

func (op Consolidate) Describe() string {
	dups := make([]string, len(op.Duplicates))
	for i, d := range op.Duplicates {
		dups[i] = d.Path()
	}
	return fmt.Sprintf("consolidate [%s] into %s", strings.Join(dups, ", "), op.Canonical.Path())
}

// SetReference points a named reference slot of an entry at another entry
// (e.g. assigning a material to a mesh).
type SetReference struct {
	Entry  Entry
	Slot   string
	Target Entry
}

func (op SetReference) Label() string { return op.Entry.Name }

func (op SetReference) Describe() string {
	return fmt.Sprintf("set %s.%s -> %s", op.Entry.Path(), op.Slot, op.Target.Path())
}
