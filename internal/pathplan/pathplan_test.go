package pathplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stonekeep/curator/internal/index"
	"github.com/stonekeep/curator/internal/repo"
)

type fakeRepo struct {
	repo.Repository
	entries []repo.Entry
}

func (f *fakeRepo) List(context.Context, string, bool) ([]repo.Entry, error) {
	return f.entries, nil
}

func snapshot(t *testing.T, entries ...repo.Entry) *index.Snapshot {
	t.Helper()
	snap, err := index.Take(context.Background(), &fakeRepo{entries: entries}, index.Options{Scope: "/Game"})
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestArchiveTargetFlattensHierarchy(t *testing.T) {
	e := repo.Entry{ID: "1", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/Props/Stones"}
	p := New(snapshot(t, e))

	target, err := p.ArchiveTarget(e, "/Game/_ARCHIVE")
	if err != nil {
		t.Fatal(err)
	}
	if target != "/Game/_ARCHIVE/rock" {
		t.Errorf("target = %q, want /Game/_ARCHIVE/rock", target)
	}
}

func TestTypeTarget(t *testing.T) {
	e := repo.Entry{ID: "1", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/Misc"}
	p := New(snapshot(t, e))

	target, err := p.TypeTarget(e, "/Game")
	if err != nil {
		t.Fatal(err)
	}
	if target != "/Game/Texture2D/rock" {
		t.Errorf("target = %q, want /Game/Texture2D/rock", target)
	}
}

func TestPrefixTargetStaysInContainer(t *testing.T) {
	e := repo.Entry{ID: "1", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/Textures"}
	p := New(snapshot(t, e))

	target, err := p.PrefixTarget(e, "tex_rock")
	if err != nil {
		t.Fatal(err)
	}
	if target != "/Game/Textures/tex_rock" {
		t.Errorf("target = %q, want /Game/Textures/tex_rock", target)
	}
}

func TestCollisionWithExistingEntry(t *testing.T) {
	existing := repo.Entry{ID: "1", Name: "tex_rock", Type: "Texture2D", ContainerPath: "/Game/Textures"}
	renaming := repo.Entry{ID: "2", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/Textures"}
	p := New(snapshot(t, existing, renaming))

	_, err := p.PrefixTarget(renaming, "tex_rock")
	var conflict *repo.RenameConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want RenameConflictError", err)
	}
	if conflict.HolderID != "1" {
		t.Errorf("HolderID = %q, want 1", conflict.HolderID)
	}
}

func TestCollisionWithinSamePlan(t *testing.T) {
	a := repo.Entry{ID: "1", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/A"}
	b := repo.Entry{ID: "2", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/B"}
	p := New(snapshot(t, a, b))

	first, err := p.ArchiveTarget(a, "/Game/_ARCHIVE")
	if err != nil {
		t.Fatal(err)
	}
	if first != "/Game/_ARCHIVE/rock" {
		t.Errorf("first target = %q", first)
	}

	_, err = p.ArchiveTarget(b, "/Game/_ARCHIVE")
	var conflict *repo.RenameConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second claim err = %v, want RenameConflictError", err)
	}
	if conflict.HolderID != "1" {
		t.Errorf("HolderID = %q, want 1", conflict.HolderID)
	}
}

func TestSelfClaimIsNotACollision(t *testing.T) {
	e := repo.Entry{ID: "1", Name: "tex_rock", Type: "Texture2D", ContainerPath: "/Game/Textures"}
	p := New(snapshot(t, e))

	// Planning the entry at its own current path must not conflict.
	target, err := p.PrefixTarget(e, "tex_rock")
	if err != nil {
		t.Fatalf("self-claim err = %v", err)
	}
	if target != "/Game/Textures/tex_rock" {
		t.Errorf("target = %q", target)
	}
}
