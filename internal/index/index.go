// Package index captures point-in-time snapshots of the content repository.
// All planning and mutation decisions for one batch are made against a single
// snapshot generation, even when enumerating the scope takes multiple
// underlying calls.
package index

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stonekeep/curator/internal/repo"
)

// generation is a process-wide counter so planner and executor can assert
// they operate on the same snapshot.
var generation atomic.Uint64

// Options controls what Take includes in a snapshot.
type Options struct {
	Scope     string
	Recursive bool
	// Include/Exclude are doublestar patterns matched against full entry
	// paths. Empty Include means everything in scope.
	Include []string
	Exclude []string
}

// Snapshot is an immutable listing of entries under a scope.
type Snapshot struct {
	Scope      string
	Generation uint64
	Entries    []repo.Entry

	byID   map[string]repo.Entry
	byPath map[string]repo.Entry
}

// Take lists the scope through the repository and freezes the result.
func Take(ctx context.Context, r repo.Repository, opts Options) (*Snapshot, error) {
	entries, err := r.List(ctx, opts.Scope, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("listing scope %s: %w", opts.Scope, err)
	}

	snap := &Snapshot{
		Scope:      opts.Scope,
		Generation: generation.Add(1),
		byID:       make(map[string]repo.Entry),
		byPath:     make(map[string]repo.Entry),
	}

	for _, e := range entries {
		keep, err := matches(e.Path(), opts)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		snap.Entries = append(snap.Entries, e)
		snap.byID[e.ID] = e
		snap.byPath[e.Path()] = e
	}

	return snap, nil
}

func matches(p string, opts Options) (bool, error) {
	included := len(opts.Include) == 0
	for _, pat := range opts.Include {
		ok, err := doublestar.Match(pat, p)
		if err != nil {
			return false, fmt.Errorf("include pattern %q: %w", pat, err)
		}
		if ok {
			included = true
			break
		}
	}
	if !included {
		return false, nil
	}
	for _, pat := range opts.Exclude {
		ok, err := doublestar.Match(pat, p)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

// Len returns the number of entries captured.
func (s *Snapshot) Len() int {
	return len(s.Entries)
}

// ByID looks up an entry by id.
func (s *Snapshot) ByID(id string) (repo.Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// ByPath looks up an entry by its full path.
func (s *Snapshot) ByPath(p string) (repo.Entry, bool) {
	e, ok := s.byPath[p]
	return e, ok
}

// OfType returns the entries of the given type, in snapshot order.
func (s *Snapshot) OfType(typeName string) []repo.Entry {
	var out []repo.Entry
	for _, e := range s.Entries {
		if e.Type == typeName {
			out = append(out, e)
		}
	}
	return out
}
