// Package repo defines the content-repository data model and the collaborator
// interfaces the curation engine consumes. The concrete repository (editor
// host, filesystem store) lives behind these interfaces; the engine never
// subclasses or reaches past them.
package repo

import "path"

// Entry is an immutable snapshot of one addressable item in the repository.
// Entries are re-fetched, never patched in place, whenever the repository
// may have changed.
type Entry struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	ContainerPath string `json:"container_path" yaml:"container_path"`
}

// Path returns the full hierarchical path of the entry.
func (e Entry) Path() string {
	return path.Join(e.ContainerPath, e.Name)
}

// Zero reports whether the entry is the zero value.
func (e Entry) Zero() bool {
	return e.ID == "" && e.Name == ""
}

// ReferenceSet maps an entry id to the ids of entries referencing it.
// An entry mapped to an empty set is an orphan. Computed per scan and
// never cached across batches.
type ReferenceSet map[string][]string

// Orphan reports whether id has no referencers in the set.
func (rs ReferenceSet) Orphan(id string) bool {
	return len(rs[id]) == 0
}
