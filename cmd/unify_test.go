package cmd

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/stonekeep/curator/internal/fsrepo"
	"github.com/stonekeep/curator/internal/repo"
)

// Passing --select alone must restrict unification to the selected entry's
// group and keep the selection as canonical; no extra flag is required.
func TestUnifySelectFlagRestrictsToSelection(t *testing.T) {
	dir := t.TempDir()
	db := fsrepo.New(osfs.New(dir))
	ctx := context.Background()

	seed := []repo.Entry{
		{ID: "X", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/A"},
		{ID: "Y", Name: "rock", Type: "Texture2D", ContainerPath: "/Game/B"},
		{ID: "P", Name: "tree", Type: "StaticMesh", ContainerPath: "/Game/A"},
		{ID: "Q", Name: "tree", Type: "StaticMesh", ContainerPath: "/Game/B"},
	}
	for _, e := range seed {
		if err := db.Put(ctx, e, nil, nil); err != nil {
			t.Fatalf("seed %s: %v", e.ID, err)
		}
	}

	rootCmd.SetArgs([]string{"unify", "--db", dir, "--select", "Y"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unify failed: %v", err)
	}

	if _, err := db.Metadata(ctx, "X"); err == nil {
		t.Error("X should have been consolidated into selected Y")
	}
	if _, err := db.Metadata(ctx, "Y"); err != nil {
		t.Errorf("selected Y must survive as canonical: %v", err)
	}
	// The unselected tree group is untouched.
	for _, id := range []string{"P", "Q"} {
		if _, err := db.Metadata(ctx, id); err != nil {
			t.Errorf("entry %s must be untouched: %v", id, err)
		}
	}
}
