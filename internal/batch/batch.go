// Package batch drives a sequence of planned mutations over the repository,
// strictly sequentially, with per-item failure isolation and cooperative
// cancellation sampled at item boundaries.
package batch

import (
	"context"
	"fmt"

	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// Status is the batch lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Failure records one item that could not be processed. Failures are
// non-fatal to the batch. Op is nil for scan-phase failures, where the item
// never made it into the plan.
type Failure struct {
	Label string
	Op    repo.MutationOp
	Err   error
}

// Report is the terminal outcome of a batch. Never a single pass/fail
// boolean: processed count, per-item failures, and cancellation are all
// reported.
type Report struct {
	Completed int
	Failures  []Failure
	Cancelled bool
}

// FailedCount returns the number of per-item failures.
func (r *Report) FailedCount() int {
	return len(r.Failures)
}

// Job tracks one batch from creation to its terminal report. Mutated only by
// the executor and discarded after the report is returned.
type Job struct {
	ops    []repo.MutationOp
	status Status
	report Report
}

// NewJob creates a pending job over the planned ops.
func NewJob(ops []repo.MutationOp) *Job {
	return &Job{ops: ops, status: StatusPending}
}

// Status returns the current lifecycle state.
func (j *Job) Status() Status {
	return j.status
}

// Executor applies mutation ops through the repository collaborator.
type Executor struct {
	repo repo.Repository
	// refWriter is non-nil when the repository supports SetReference ops.
	refWriter repo.ReferenceWriter
}

// NewExecutor creates an executor over the repository. SetReference ops are
// supported when the repository also implements repo.ReferenceWriter.
func NewExecutor(r repo.Repository) *Executor {
	x := &Executor{repo: r}
	if w, ok := r.(repo.ReferenceWriter); ok {
		x.refWriter = w
	}
	return x
}

// Run executes the job. Cancellation is checked before each item, never
// mid-item; already-applied mutations are not rolled back. Per-item failures
// are recorded and the batch continues.
func (x *Executor) Run(ctx context.Context, job *Job, sink repo.ProgressSink) *Report {
	if sink == nil {
		sink = repo.NopSink{}
	}
	job.status = StatusRunning

	for _, op := range job.ops {
		if ctx.Err() != nil || sink.ShouldCancel() {
			job.status = StatusCancelled
			job.report.Cancelled = true
			logger.Warn("batch cancelled", logger.Int("completed", job.report.Completed))
			return &job.report
		}

		if err := x.apply(ctx, op); err != nil {
			job.report.Failures = append(job.report.Failures, Failure{Label: op.Label(), Op: op, Err: err})
			logger.Error("batch item failed", logger.String("op", op.Describe()), logger.Err(err))
		} else {
			job.report.Completed++
			logger.Info("batch item applied", logger.String("op", op.Describe()))
		}
		sink.Advance(1, op.Label())
	}

	job.status = StatusCompleted
	return &job.report
}

func (x *Executor) apply(ctx context.Context, op repo.MutationOp) error {
	switch o := op.(type) {
	case repo.Rename:
		return x.repo.Rename(ctx, o.Entry.ID, o.Target)
	case repo.Delete:
		return x.repo.Delete(ctx, o.Entry.ID)
	case repo.Consolidate:
		ids := make([]string, len(o.Duplicates))
		for i, d := range o.Duplicates {
			ids[i] = d.ID
		}
		return x.repo.Consolidate(ctx, o.Canonical.ID, ids)
	case repo.SetReference:
		if x.refWriter == nil {
			return fmt.Errorf("repository does not support reference assignment")
		}
		return x.refWriter.SetReference(ctx, o.Entry.ID, o.Slot, o.Target.ID)
	default:
		return fmt.Errorf("unknown mutation op %T", op)
	}
}
