// Package refgraph resolves which entries reference which, from metadata-only
// repository queries. The scan phase is read-only and may run queries in
// parallel; results are frozen before any mutation begins.
package refgraph

import (
	"context"
	"runtime"
	"sync"

	"github.com/stonekeep/curator/internal/index"
	"github.com/stonekeep/curator/internal/repo"
	"golang.org/x/sync/errgroup"
)

// Result holds referencer sets for a snapshot plus the entries whose lookup
// failed. A failed lookup never aborts resolution for the rest of the scope.
type Result struct {
	Refs     repo.ReferenceSet
	Failures map[string]error
}

// Workers computes the scan concurrency from a percentage of CPU cores,
// mirroring the engine-wide concurrency policy.
func Workers(explicit, percent int) int {
	if explicit > 0 {
		return explicit
	}
	if percent <= 0 {
		percent = 50
	}
	n := (runtime.NumCPU() * percent) / 100
	if n < 1 {
		n = 1
	}
	return n
}

// Resolve queries referencers for every entry in the snapshot. Self-references
// are never counted. Lookup failures are recorded per entry as
// ReferenceQueryError and the entry is skipped.
func Resolve(ctx context.Context, r repo.Repository, snap *index.Snapshot, workers int) (*Result, error) {
	if workers < 1 {
		workers = 1
	}

	res := &Result{
		Refs:     make(repo.ReferenceSet, snap.Len()),
		Failures: make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, e := range snap.Entries {
		e := e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ids, err := r.Referencers(gctx, e.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failures[e.ID] = &repo.ReferenceQueryError{ID: e.ID, Err: err}
				return nil
			}
			refs := ids[:0:0]
			for _, id := range ids {
				if id == e.ID {
					continue
				}
				refs = append(refs, id)
			}
			res.Refs[e.ID] = refs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Orphan reports whether the entry resolved to zero referencers. Entries
// whose lookup failed are never treated as orphans.
func (r *Result) Orphan(id string) bool {
	if _, failed := r.Failures[id]; failed {
		return false
	}
	refs, ok := r.Refs[id]
	return ok && len(refs) == 0
}

// Orphans returns the orphaned entries of the snapshot in snapshot order.
func (r *Result) Orphans(snap *index.Snapshot) []repo.Entry {
	var out []repo.Entry
	for _, e := range snap.Entries {
		if r.Orphan(e.ID) {
			out = append(out, e)
		}
	}
	return out
}
