package curate

import (
	"context"
	"fmt"
	"strings"

	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// AssignConfig configures material-to-mesh assignment.
type AssignConfig struct {
	Scan ScanConfig
	// Slot is the reference slot written on each matching mesh.
	Slot string
	// MeshType is the entry type scanned for name matches.
	MeshType string
	// MaterialPrefix is the naming prefix the selected material must carry;
	// the remainder of the name is the match stem.
	MaterialPrefix string
}

// AssignMaterial points the material slot of every similarly-named mesh at
// the currently selected material. Precondition: exactly one selected entry,
// of type Material, whose name carries the material prefix.
func AssignMaterial(ctx context.Context, env Env, cfg AssignConfig) (*Outcome, error) {
	if cfg.Slot == "" {
		cfg.Slot = "material"
	}
	if cfg.MeshType == "" {
		cfg.MeshType = "StaticMesh"
	}
	if cfg.MaterialPrefix == "" {
		cfg.MaterialPrefix = "mat"
	}

	selected, err := currentSelection(ctx, env, 1)
	if err != nil {
		return nil, err
	}
	if len(selected) != 1 {
		return nil, &repo.PreconditionError{Reason: fmt.Sprintf("exactly one selected entry required, got %d", len(selected))}
	}
	material := selected[0]
	if material.Type != "Material" {
		return nil, &repo.PreconditionError{Reason: fmt.Sprintf("selected entry %s is a %s, not a Material", material.Name, material.Type)}
	}
	stem := strings.TrimPrefix(material.Name, cfg.MaterialPrefix+"_")
	if stem == material.Name {
		return nil, &repo.PreconditionError{Reason: fmt.Sprintf("selected material %s does not carry the %q prefix", material.Name, cfg.MaterialPrefix)}
	}

	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Snapshot: snap}
	for _, mesh := range snap.OfType(cfg.MeshType) {
		if !strings.Contains(mesh.Name, stem) {
			continue
		}
		logger.Info(fmt.Sprintf("assigning %s to %s", material.Path(), mesh.Path()))
		out.Ops = append(out.Ops, repo.SetReference{Entry: mesh, Slot: cfg.Slot, Target: material})
	}
	if len(out.Ops) == 0 {
		out.Findings = append(out.Findings, Finding{
			Level:  FindingInfo,
			Entry:  material.Path(),
			Detail: fmt.Sprintf("no %s entries match stem %q", cfg.MeshType, stem),
		})
	}

	out.execute(ctx, env)
	return out, nil
}
