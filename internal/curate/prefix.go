package curate

import (
	"context"
	"fmt"

	"github.com/stonekeep/curator/internal/classify"
	"github.com/stonekeep/curator/internal/pathplan"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// PrefixConfig configures prefix-convention enforcement.
type PrefixConfig struct {
	Scan  ScanConfig
	Rules classify.Table
}

// EnforcePrefixes renames entries whose names do not start with the prefix
// their type's rule demands. Entries already compliant, and entries whose
// type has no rule, are left untouched — re-running against an already
// compliant scope plans nothing.
func EnforcePrefixes(ctx context.Context, env Env, cfg PrefixConfig) (*Outcome, error) {
	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Snapshot: snap}
	planner := pathplan.New(snap)
	for _, e := range snap.Entries {
		prefix, ok := cfg.Rules.PrefixFor(e.Type)
		if !ok || classify.Compliant(e.Name, prefix) {
			continue
		}
		target, err := planner.PrefixTarget(e, classify.PrefixedName(prefix, e.Name))
		if err != nil {
			out.PlanFailures = append(out.PlanFailures, planFailure(e, err))
			continue
		}
		logger.Info(fmt.Sprintf("renaming %s -> %s", e.Path(), target))
		out.Ops = append(out.Ops, repo.Rename{Entry: e, Target: target})
	}

	if len(out.Ops) == 0 && len(out.PlanFailures) == 0 {
		logger.Info("all names already compliant", logger.String("scope", cfg.Scan.Scope))
	}

	out.execute(ctx, env)
	return out, nil
}
