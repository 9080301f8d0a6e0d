package curate

import (
	"context"
	"fmt"

	"github.com/stonekeep/curator/internal/batch"
	"github.com/stonekeep/curator/internal/pathplan"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// ArchiveConfig configures the orphan-archive operation.
type ArchiveConfig struct {
	Scan        ScanConfig
	ArchiveRoot string
}

// ArchiveOrphans moves every unreferenced entry in scope to a flat archive
// container. Entries with at least one referencer are never touched.
func ArchiveOrphans(ctx context.Context, env Env, cfg ArchiveConfig) (*Outcome, error) {
	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}
	refs, planFailures, err := resolveReferences(ctx, env, cfg.Scan, snap)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Snapshot: snap, PlanFailures: planFailures}
	planner := pathplan.New(snap)
	for _, e := range refs.Orphans(snap) {
		target, err := planner.ArchiveTarget(e, cfg.ArchiveRoot)
		if err != nil {
			out.PlanFailures = append(out.PlanFailures, planFailure(e, err))
			continue
		}
		logger.Info(fmt.Sprintf("archiving %s -> %s", e.Path(), target))
		out.Ops = append(out.Ops, repo.Rename{Entry: e, Target: target})
	}

	out.execute(ctx, env)
	return out, nil
}

// PurgeConfig configures the orphan-delete operation.
type PurgeConfig struct {
	Scan ScanConfig
}

// PurgeOrphans deletes every unreferenced entry in scope.
func PurgeOrphans(ctx context.Context, env Env, cfg PurgeConfig) (*Outcome, error) {
	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}
	refs, planFailures, err := resolveReferences(ctx, env, cfg.Scan, snap)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Snapshot: snap, PlanFailures: planFailures}
	for _, e := range refs.Orphans(snap) {
		logger.Info(fmt.Sprintf("deleting unreferenced %s", e.Path()))
		out.Ops = append(out.Ops, repo.Delete{Entry: e})
	}

	out.execute(ctx, env)
	return out, nil
}

// ReportOrphans lists unreferenced entries without mutating anything.
func ReportOrphans(ctx context.Context, env Env, cfg ScanConfig) (*Outcome, error) {
	snap, err := scan(ctx, env, cfg)
	if err != nil {
		return nil, err
	}
	refs, planFailures, err := resolveReferences(ctx, env, cfg, snap)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Snapshot: snap, PlanFailures: planFailures}
	for _, e := range refs.Orphans(snap) {
		out.Findings = append(out.Findings, Finding{
			Level:  FindingWarning,
			Entry:  e.Path(),
			Detail: fmt.Sprintf("unreferenced %s %s", e.Type, e.Name),
		})
	}
	if len(out.Findings) == 0 {
		logger.Info("no unreferenced entries found", logger.String("scope", cfg.Scope))
	}

	out.logFindings()
	return out, nil
}

func planFailure(e repo.Entry, err error) batch.Failure {
	return batch.Failure{Label: e.Name, Err: err}
}
