// Package pathplan computes target paths for rename operations and detects
// naming collisions. A collision is always reported, never resolved by
// inventing a disambiguated name.
package pathplan

import (
	"path"

	"github.com/stonekeep/curator/internal/index"
	"github.com/stonekeep/curator/internal/repo"
)

// Planner resolves target paths against one snapshot generation. It tracks
// targets claimed earlier in the same plan, so two entries planned at the
// same path collide even before anything is executed.
type Planner struct {
	snap    *index.Snapshot
	claimed map[string]string // target path → id that claimed it
}

// New creates a planner bound to a snapshot.
func New(snap *index.Snapshot) *Planner {
	return &Planner{
		snap:    snap,
		claimed: make(map[string]string),
	}
}

// Generation returns the snapshot generation the planner operates on.
func (p *Planner) Generation() uint64 {
	return p.snap.Generation
}

// ArchiveTarget plans a flat move of the entry under archiveRoot, ignoring
// the original container hierarchy.
func (p *Planner) ArchiveTarget(e repo.Entry, archiveRoot string) (string, error) {
	return p.claim(e, path.Join(archiveRoot, e.Name))
}

// TypeTarget plans a move of the entry under root/<type>/.
func (p *Planner) TypeTarget(e repo.Entry, root string) (string, error) {
	return p.claim(e, path.Join(root, e.Type, e.Name))
}

// PrefixTarget plans an in-place rename to prefix_name within the entry's
// container.
func (p *Planner) PrefixTarget(e repo.Entry, newName string) (string, error) {
	return p.claim(e, path.Join(e.ContainerPath, newName))
}

// claim validates that target is free in both the snapshot and the current
// plan. A target occupied by the entry itself is not a collision.
func (p *Planner) claim(e repo.Entry, target string) (string, error) {
	if holder, ok := p.snap.ByPath(target); ok && holder.ID != e.ID {
		return "", &repo.RenameConflictError{Target: target, HolderID: holder.ID}
	}
	if holderID, ok := p.claimed[target]; ok && holderID != e.ID {
		return "", &repo.RenameConflictError{Target: target, HolderID: holderID}
	}
	p.claimed[target] = e.ID
	return target, nil
}
