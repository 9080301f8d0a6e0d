package repo

import "context"

// Repository is the mutable content store the engine operates on. The engine
// treats it as a single-writer resource: mutations are issued strictly
// sequentially, and calls are opaque synchronous operations.
type Repository interface {
	// List enumerates entries under scope, excluding container pseudo-entries.
	List(ctx context.Context, scope string, recursive bool) ([]Entry, error)
	// Metadata fetches a fresh snapshot of one entry by id.
	Metadata(ctx context.Context, id string) (Entry, error)
	// Referencers returns the ids of entries referencing id without loading
	// their content.
	Referencers(ctx context.Context, id string) ([]string, error)
	// Rename moves the entry to the given full target path.
	Rename(ctx context.Context, id string, targetPath string) error
	// Delete removes the entry.
	Delete(ctx context.Context, id string) error
	// Consolidate repoints all references from each duplicate to canonical,
	// then removes the duplicates. A duplicate whose references cannot be
	// repointed is left in place and its failure returned.
	Consolidate(ctx context.Context, canonicalID string, duplicateIDs []string) error
}

// PropertyReader is an optional repository capability for cheap boolean
// property scans (e.g. a material's two-sided flag).
type PropertyReader interface {
	BoolProperty(ctx context.Context, id string, key string) (bool, error)
}

// ReferenceWriter is an optional repository capability for pointing a named
// reference slot of an entry at another entry.
type ReferenceWriter interface {
	SetReference(ctx context.Context, id string, slot string, targetID string) error
}

// ProgressSink receives per-item progress and answers cooperative
// cancellation checks. The engine drives it once per processed item, always
// from the single mutation thread.
type ProgressSink interface {
	Advance(n int, label string)
	ShouldCancel() bool
}

// SelectionProvider exposes the host's current interactive selection. Used
// only by interactively-scoped operations; an empty selection is a
// precondition failure, not an empty-result success.
type SelectionProvider interface {
	CurrentSelection(ctx context.Context) ([]Entry, error)
}

// NopSink is a ProgressSink that discards progress and never cancels.
type NopSink struct{}

func (NopSink) Advance(int, string) {}
func (NopSink) ShouldCancel() bool  { return false }
