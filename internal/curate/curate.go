// Package curate implements the maintenance operations: orphan archiving,
// orphan deletion, orphan and two-sided reporting, prefix enforcement,
// reorganization by type, duplicate unification, and material assignment.
//
// Every operation follows the same shape: capture one snapshot, analyze it
// read-only, plan mutation ops against that same snapshot generation, then
// execute them as a single cancellable batch.
package curate

import (
	"context"
	"fmt"

	"github.com/stonekeep/curator/internal/batch"
	"github.com/stonekeep/curator/internal/index"
	"github.com/stonekeep/curator/internal/refgraph"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// Env carries the collaborators an operation runs against.
type Env struct {
	Repo      repo.Repository
	Sink      repo.ProgressSink
	Selection repo.SelectionProvider
	// DryRun plans and logs but applies nothing.
	DryRun bool
}

// ScanConfig controls the read-only scan phase shared by all operations.
type ScanConfig struct {
	Scope              string
	Recursive          bool
	Include            []string
	Exclude            []string
	Concurrency        int
	ConcurrencyPercent int
}

func (c ScanConfig) workers() int {
	return refgraph.Workers(c.Concurrency, c.ConcurrencyPercent)
}

// FindingLevel classifies a finding for logging.
type FindingLevel string

const (
	FindingInfo    FindingLevel = "info"
	FindingWarning FindingLevel = "warning"
)

// Finding is a policy-relevant observation that is not a mutation
// (an orphan in a report, a two-sided material, a name with no duplicates).
type Finding struct {
	Level  FindingLevel
	Entry  string
	Detail string
}

// Outcome is the result of one operation: what was seen, what was planned,
// and the batch report when mutations ran.
type Outcome struct {
	Snapshot *index.Snapshot
	Ops      []repo.MutationOp
	Findings []Finding
	// PlanFailures are items rejected during planning (e.g. rename
	// conflicts, failed reference queries); they are folded into the
	// report's failure list alongside execution failures.
	PlanFailures []batch.Failure
	Report       *batch.Report
}

// logFindings emits findings through the structured logger at their level.
func (o *Outcome) logFindings() {
	for _, f := range o.Findings {
		switch f.Level {
		case FindingWarning:
			logger.Warn(f.Detail, logger.String("entry", f.Entry))
		default:
			logger.Info(f.Detail, logger.String("entry", f.Entry))
		}
	}
}

// execute runs the planned ops unless the env is dry-run, then merges plan
// failures into the final report.
func (o *Outcome) execute(ctx context.Context, env Env) {
	o.logFindings()

	if env.DryRun {
		for _, op := range o.Ops {
			logger.Info(fmt.Sprintf("would %s", op.Describe()))
		}
		o.Report = &batch.Report{Failures: o.PlanFailures}
		return
	}

	job := batch.NewJob(o.Ops)
	report := batch.NewExecutor(env.Repo).Run(ctx, job, env.Sink)
	report.Failures = append(o.PlanFailures, report.Failures...)
	o.Report = report
}

// scan captures the snapshot every operation decides against.
func scan(ctx context.Context, env Env, cfg ScanConfig) (*index.Snapshot, error) {
	snap, err := index.Take(ctx, env.Repo, index.Options{
		Scope:     cfg.Scope,
		Recursive: cfg.Recursive,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("snapshot captured",
		logger.String("scope", cfg.Scope),
		logger.Int("entries", snap.Len()),
		logger.Int("generation", int(snap.Generation)))
	return snap, nil
}

// resolveReferences runs the parallel referencer scan for a snapshot and
// converts lookup failures into plan failures.
func resolveReferences(ctx context.Context, env Env, cfg ScanConfig, snap *index.Snapshot) (*refgraph.Result, []batch.Failure, error) {
	res, err := refgraph.Resolve(ctx, env.Repo, snap, cfg.workers())
	if err != nil {
		return nil, nil, err
	}
	var failures []batch.Failure
	for _, e := range snap.Entries {
		if qerr, ok := res.Failures[e.ID]; ok {
			failures = append(failures, batch.Failure{Label: e.Name, Err: qerr})
		}
	}
	return res, failures, nil
}
