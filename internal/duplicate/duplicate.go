// Package duplicate groups snapshot entries that share a display name and
// plans their consolidation into a single canonical entry.
package duplicate

import (
	"fmt"

	"github.com/stonekeep/curator/internal/index"
	"github.com/stonekeep/curator/internal/repo"
	"golang.org/x/text/unicode/norm"
)

// GroupBy selects the duplicate-grouping key.
type GroupBy string

const (
	// ByName groups on display name only. Entries of unrelated types that
	// merely share a name land in the same group; this matches the historic
	// behavior and is the default.
	ByName GroupBy = "name"
	// ByNameType groups on (display name, type) for stricter semantics.
	ByNameType GroupBy = "name_type"
)

// Valid reports whether g is a known grouping mode.
func (g GroupBy) Valid() bool {
	return g == ByName || g == ByNameType
}

// Group is a set of entries sharing a grouping key, in snapshot order.
type Group struct {
	Name    string
	Members []repo.Entry
}

// Canonical picks the surviving entry: the caller-designated id when it is a
// member, otherwise the first entry in snapshot order.
func (g Group) Canonical(designatedID string) repo.Entry {
	if designatedID != "" {
		for _, m := range g.Members {
			if m.ID == designatedID {
				return m
			}
		}
	}
	return g.Members[0]
}

// Duplicates returns the members other than canonical.
func (g Group) Duplicates(canonical repo.Entry) []repo.Entry {
	var out []repo.Entry
	for _, m := range g.Members {
		if m.ID != canonical.ID {
			out = append(out, m)
		}
	}
	return out
}

func key(e repo.Entry, mode GroupBy) string {
	name := norm.NFC.String(e.Name)
	if mode == ByNameType {
		return name + "\x00" + e.Type
	}
	return name
}

// Groups partitions the snapshot by the grouping key. Group order follows
// the first occurrence of each key in the snapshot.
func Groups(snap *index.Snapshot, mode GroupBy) []Group {
	byKey := make(map[string]int)
	var groups []Group
	for _, e := range snap.Entries {
		k := key(e, mode)
		idx, ok := byKey[k]
		if !ok {
			byKey[k] = len(groups)
			groups = append(groups, Group{Name: norm.NFC.String(e.Name)})
			idx = len(groups) - 1
		}
		groups[idx].Members = append(groups[idx].Members, e)
	}
	return groups
}

// Finding is an observable non-op outcome of duplicate planning.
type Finding struct {
	Name    string
	Message string
}

// Plan produces one Consolidate op per group of size > 1. Size-1 groups are
// reported as findings so "no duplicates found" stays observable to the
// caller. designated maps a group name to the caller-chosen canonical id.
func Plan(groups []Group, designated map[string]string) ([]repo.MutationOp, []Finding) {
	var ops []repo.MutationOp
	var findings []Finding
	for _, g := range groups {
		if len(g.Members) < 2 {
			findings = append(findings, Finding{
				Name:    g.Name,
				Message: fmt.Sprintf("no duplicates found for %s", g.Name),
			})
			continue
		}
		canonical := g.Canonical(designated[g.Name])
		ops = append(ops, repo.Consolidate{
			Canonical:  canonical,
			Duplicates: g.Duplicates(canonical),
		})
	}
	return ops, findings
}
