package curate

import (
	"context"
	"fmt"

	"github.com/stonekeep/curator/internal/pathplan"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// OrganizeConfig configures reorganization by type.
type OrganizeConfig struct {
	Scan ScanConfig
	// Root is the container under which per-type containers are created.
	// Defaults to the scan scope.
	Root string
}

// OrganizeByType moves every entry in scope to Root/<type>/<name>. Entries
// already at their target path are skipped.
func OrganizeByType(ctx context.Context, env Env, cfg OrganizeConfig) (*Outcome, error) {
	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}

	root := cfg.Root
	if root == "" {
		root = cfg.Scan.Scope
	}

	out := &Outcome{Snapshot: snap}
	planner := pathplan.New(snap)
	for _, e := range snap.Entries {
		target, err := planner.TypeTarget(e, root)
		if err != nil {
			out.PlanFailures = append(out.PlanFailures, planFailure(e, err))
			continue
		}
		if target == e.Path() {
			continue
		}
		logger.Info(fmt.Sprintf("moving %s -> %s", e.Path(), target))
		out.Ops = append(out.Ops, repo.Rename{Entry: e, Target: target})
	}

	out.execute(ctx, env)
	return out, nil
}
