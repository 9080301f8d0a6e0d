// Package fsrepo stores the asset database on a billy filesystem. Each entry
// is a `<container>/<name>.asset.yaml` document carrying metadata only;
// payload blobs living alongside are opaque to this package.
package fsrepo

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

const docSuffix = ".asset.yaml"

// document is the on-disk shape of one entry.
type document struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	Refs       []string          `yaml:"refs,omitempty"`
	Slots      map[string]string `yaml:"slots,omitempty"`
	Properties map[string]any    `yaml:"properties,omitempty"`
}

// references returns every id this document points at, slot targets included.
func (d *document) references() []string {
	out := append([]string(nil), d.Refs...)
	for _, target := range d.Slots {
		out = append(out, target)
	}
	return out
}

// Repo is a Repository backed by a billy filesystem. All operations are
// serialized on one mutex: mutation is single-writer and the lazy reverse
// index must not be rebuilt concurrently.
type Repo struct {
	fs billy.Filesystem

	mu      sync.Mutex
	byID    map[string]string   // id -> document path
	reverse map[string][]string // id -> referencer ids
	indexed bool
}

// New wraps an existing filesystem. Use osfs.New for a real database root or
// memfs.New in tests.
func New(fs billy.Filesystem) *Repo {
	return &Repo{fs: fs}
}

// fsPath maps a logical container path ("/Game/Props") onto the filesystem.
func fsPath(containerPath string) string {
	return strings.TrimPrefix(containerPath, "/")
}

// logicalPath is the inverse of fsPath for a document's directory.
func logicalPath(dir string) string {
	if dir == "." || dir == "" {
		return "/"
	}
	return "/" + dir
}

func docPath(containerPath, name string) string {
	return path.Join(fsPath(containerPath), name+docSuffix)
}

func (r *Repo) readDoc(p string) (*document, error) {
	data, err := util.ReadFile(r.fs, p)
	if err != nil {
		return nil, err
	}
	var d document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return &d, nil
}

func (r *Repo) writeDoc(p string, d *document) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	if dir := path.Dir(p); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(r.fs, p, data, 0o644)
}

func entryFor(d *document, p string) repo.Entry {
	return repo.Entry{
		ID:            d.ID,
		Name:          d.Name,
		Type:          d.Type,
		ContainerPath: logicalPath(path.Dir(p)),
	}
}

// ensureIndex walks every document and rebuilds the id and reverse-reference
// maps. Called lazily under r.mu; any mutation invalidates it.
func (r *Repo) ensureIndex() error {
	if r.indexed {
		return nil
	}
	byID := make(map[string]string)
	reverse := make(map[string][]string)
	err := util.Walk(r.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(p, docSuffix) {
			return err
		}
		d, derr := r.readDoc(p)
		if derr != nil {
			// One unreadable document must not wedge every operation on
			// the database; it is surfaced when addressed directly.
			logger.Warn("skipping unreadable document", logger.String("path", p), logger.Err(derr))
			return nil
		}
		byID[d.ID] = p
		for _, ref := range dedupe(d.references()) {
			if ref != d.ID {
				reverse[ref] = append(reverse[ref], d.ID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, ids := range reverse {
		sort.Strings(ids)
	}
	r.byID = byID
	r.reverse = reverse
	r.indexed = true
	return nil
}

func (r *Repo) invalidate() {
	r.indexed = false
}

// List walks the scope container and returns entries in path order.
func (r *Repo) List(ctx context.Context, scope string, recursive bool) ([]repo.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	root := fsPath(scope)
	if root == "" {
		root = "."
	}
	var out []repo.Entry
	err := util.Walk(r.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == root {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !recursive && path.Dir(p) != root {
			return nil
		}
		if !strings.HasSuffix(p, docSuffix) {
			return nil
		}
		d, derr := r.readDoc(p)
		if derr != nil {
			logger.Warn("skipping unreadable document", logger.String("path", p), logger.Err(derr))
			return nil
		}
		out = append(out, entryFor(d, p))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out, nil
}

// Metadata returns the entry for id, or NotFoundError.
func (r *Repo) Metadata(ctx context.Context, id string) (repo.Entry, error) {
	if err := ctx.Err(); err != nil {
		return repo.Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d, p, err := r.lookup(id)
	if err != nil {
		return repo.Entry{}, err
	}
	return entryFor(d, p), nil
}

// lookup resolves id to its document under r.mu.
func (r *Repo) lookup(id string) (*document, string, error) {
	if err := r.ensureIndex(); err != nil {
		return nil, "", err
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, "", &repo.NotFoundError{ID: id}
	}
	d, err := r.readDoc(p)
	if err != nil {
		return nil, "", err
	}
	return d, p, nil
}

// Referencers answers from the reverse index.
func (r *Repo) Referencers(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureIndex(); err != nil {
		return nil, &repo.ReferenceQueryError{ID: id, Err: err}
	}
	if _, ok := r.byID[id]; !ok {
		return nil, &repo.NotFoundError{ID: id}
	}
	return append([]string(nil), r.reverse[id]...), nil
}

// Rename moves the document for id to targetPath and rewrites its name.
// An existing document at the target is a RenameConflictError.
func (r *Repo) Rename(ctx context.Context, id, targetPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d, oldPath, err := r.lookup(id)
	if err != nil {
		return err
	}
	newPath := docPath(path.Dir(targetPath), path.Base(targetPath))
	if newPath == oldPath {
		return nil
	}
	if _, err := r.fs.Stat(newPath); err == nil {
		holder, derr := r.readDoc(newPath)
		if derr != nil {
			// Occupied but unreadable; never overwrite it.
			return fmt.Errorf("rename target %s is occupied by an unreadable document: %w", targetPath, derr)
		}
		return &repo.RenameConflictError{Target: targetPath, HolderID: holder.ID}
	} else if !os.IsNotExist(err) {
		return err
	}
	d.Name = path.Base(targetPath)
	if err := r.writeDoc(newPath, d); err != nil {
		return err
	}
	if err := r.fs.Remove(oldPath); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// Delete removes the document for id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, p, err := r.lookup(id)
	if err != nil {
		return err
	}
	if err := r.fs.Remove(p); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// Consolidate repoints every document referencing a duplicate at the
// canonical entry, then removes the duplicate. A failed rewrite aborts that
// duplicate and leaves it (and its remaining referencers) intact.
func (r *Repo) Consolidate(ctx context.Context, canonicalID string, duplicateIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, _, err := r.lookup(canonicalID); err != nil {
		return err
	}
	for _, dup := range duplicateIDs {
		if err := r.consolidateOne(canonicalID, dup); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) consolidateOne(canonicalID, dup string) error {
	_, dupPath, err := r.lookup(dup)
	if err != nil {
		return &repo.ConsolidationError{DuplicateID: dup, Err: err}
	}
	for _, refID := range append([]string(nil), r.reverse[dup]...) {
		if err := r.repoint(refID, dup, canonicalID); err != nil {
			return &repo.ConsolidationError{DuplicateID: dup, Err: err}
		}
	}
	if err := r.fs.Remove(dupPath); err != nil {
		return &repo.ConsolidationError{DuplicateID: dup, Err: err}
	}
	r.invalidate()
	if err := r.ensureIndex(); err != nil {
		return err
	}
	return nil
}

// repoint rewrites one document, replacing references to from with to.
// A reference that would become a self-reference is dropped instead.
func (r *Repo) repoint(id, from, to string) error {
	d, p, err := r.lookup(id)
	if err != nil {
		return err
	}
	var refs []string
	for _, ref := range d.Refs {
		if ref == from {
			ref = to
		}
		if ref != d.ID {
			refs = append(refs, ref)
		}
	}
	d.Refs = dedupe(refs)
	for slot, target := range d.Slots {
		if target == from {
			d.Slots[slot] = to
		}
	}
	return r.writeDoc(p, d)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// BoolProperty reads a boolean metadata property; absent keys are false.
func (r *Repo) BoolProperty(ctx context.Context, id, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d, _, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	v, ok := d.Properties[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("property %q of %s is not boolean", key, id)
	}
	return b, nil
}

// SetReference points the named slot of id at targetID.
func (r *Repo) SetReference(ctx context.Context, id, slot, targetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d, p, err := r.lookup(id)
	if err != nil {
		return err
	}
	if _, ok := r.byID[targetID]; !ok {
		return &repo.NotFoundError{ID: targetID}
	}
	if d.Slots == nil {
		d.Slots = make(map[string]string)
	}
	d.Slots[slot] = targetID
	if err := r.writeDoc(p, d); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// Put creates or overwrites a document. Used by seeding tools and tests.
func (r *Repo) Put(ctx context.Context, e repo.Entry, refs []string, properties map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d := &document{ID: e.ID, Name: e.Name, Type: e.Type, Refs: refs, Properties: properties}
	if err := r.writeDoc(docPath(e.ContainerPath, e.Name), d); err != nil {
		return err
	}
	r.invalidate()
	return nil
}
