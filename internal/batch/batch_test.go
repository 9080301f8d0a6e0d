package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stonekeep/curator/internal/repo"
)

type call struct {
	kind string
	id   string
}

type fakeRepo struct {
	repo.Repository
	calls      []call
	renameErr  map[string]error
	deleteErr  map[string]error
	consolErr  map[string]error
	setRefErrs map[string]error
	supportRef bool
}

func (f *fakeRepo) Rename(_ context.Context, id, target string) error {
	f.calls = append(f.calls, call{"rename", id})
	return f.renameErr[id]
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, call{"delete", id})
	return f.deleteErr[id]
}

func (f *fakeRepo) Consolidate(_ context.Context, canonicalID string, _ []string) error {
	f.calls = append(f.calls, call{"consolidate", canonicalID})
	return f.consolErr[canonicalID]
}

type fakeRefRepo struct {
	fakeRepo
}

func (f *fakeRefRepo) SetReference(_ context.Context, id, slot, targetID string) error {
	f.calls = append(f.calls, call{"setref", id})
	return f.setRefErrs[id]
}

type cancellingSink struct {
	after     int
	processed int
	labels    []string
}

func (s *cancellingSink) Advance(n int, label string) {
	s.processed += n
	s.labels = append(s.labels, label)
}

func (s *cancellingSink) ShouldCancel() bool {
	return s.after > 0 && s.processed >= s.after
}

func entry(id, name string) repo.Entry {
	return repo.Entry{ID: id, Name: name, Type: "Texture2D", ContainerPath: "/Game"}
}

func TestRunAppliesAllOps(t *testing.T) {
	f := &fakeRepo{}
	ops := []repo.MutationOp{
		repo.Rename{Entry: entry("A", "rock"), Target: "/Game/_ARCHIVE/rock"},
		repo.Delete{Entry: entry("B", "tree")},
		repo.Consolidate{Canonical: entry("C", "grass"), Duplicates: []repo.Entry{entry("D", "grass")}},
	}

	job := NewJob(ops)
	if job.Status() != StatusPending {
		t.Errorf("initial status = %s", job.Status())
	}

	report := NewExecutor(f).Run(context.Background(), job, nil)

	if job.Status() != StatusCompleted {
		t.Errorf("status = %s, want completed", job.Status())
	}
	if report.Completed != 3 || report.FailedCount() != 0 || report.Cancelled {
		t.Errorf("report = %+v", report)
	}
	if len(f.calls) != 3 || f.calls[0].kind != "rename" || f.calls[1].kind != "delete" || f.calls[2].kind != "consolidate" {
		t.Errorf("calls = %+v", f.calls)
	}
}

func TestRunIsolatesPerItemFailures(t *testing.T) {
	boom := errors.New("vanished")
	f := &fakeRepo{deleteErr: map[string]error{"B": boom}}
	ops := []repo.MutationOp{
		repo.Delete{Entry: entry("A", "a")},
		repo.Delete{Entry: entry("B", "b")},
		repo.Delete{Entry: entry("C", "c")},
	}

	report := NewExecutor(f).Run(context.Background(), NewJob(ops), nil)

	if report.Completed != 2 {
		t.Errorf("Completed = %d, want 2", report.Completed)
	}
	if report.FailedCount() != 1 || !errors.Is(report.Failures[0].Err, boom) {
		t.Fatalf("Failures = %+v", report.Failures)
	}
	if report.Failures[0].Label != "b" {
		t.Errorf("failed op label = %q", report.Failures[0].Label)
	}
	// C must still have been attempted after B failed.
	if len(f.calls) != 3 {
		t.Errorf("calls = %+v", f.calls)
	}
}

func TestRunCancellationAtItemBoundary(t *testing.T) {
	f := &fakeRepo{}
	var ops []repo.MutationOp
	for _, id := range []string{"A", "B", "C", "D"} {
		ops = append(ops, repo.Delete{Entry: entry(id, id)})
	}
	sink := &cancellingSink{after: 2}

	job := NewJob(ops)
	report := NewExecutor(f).Run(context.Background(), job, sink)

	if !report.Cancelled {
		t.Error("report.Cancelled = false, want true")
	}
	if job.Status() != StatusCancelled {
		t.Errorf("status = %s, want cancelled", job.Status())
	}
	if report.Completed != 2 {
		t.Errorf("Completed = %d, want exactly 2", report.Completed)
	}
	// Items after the cancellation point are untouched.
	if len(f.calls) != 2 {
		t.Errorf("calls = %+v", f.calls)
	}
	if sink.labels[0] != "A" || sink.labels[1] != "B" {
		t.Errorf("progress labels = %+v", sink.labels)
	}
}

func TestRunContextCancellation(t *testing.T) {
	f := &fakeRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := NewExecutor(f).Run(ctx, NewJob([]repo.MutationOp{
		repo.Delete{Entry: entry("A", "a")},
	}), nil)

	if !report.Cancelled || report.Completed != 0 {
		t.Errorf("report = %+v", report)
	}
	if len(f.calls) != 0 {
		t.Errorf("no op should have been applied, got %+v", f.calls)
	}
}

func TestRunSetReference(t *testing.T) {
	f := &fakeRefRepo{}
	ops := []repo.MutationOp{
		repo.SetReference{Entry: entry("M", "sm_rock"), Slot: "material", Target: entry("X", "mat_rock")},
	}

	report := NewExecutor(f).Run(context.Background(), NewJob(ops), nil)
	if report.Completed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(f.calls) != 1 || f.calls[0].kind != "setref" || f.calls[0].id != "M" {
		t.Errorf("calls = %+v", f.calls)
	}
}

func TestRunSetReferenceUnsupported(t *testing.T) {
	f := &fakeRepo{} // does not implement ReferenceWriter
	ops := []repo.MutationOp{
		repo.SetReference{Entry: entry("M", "sm_rock"), Slot: "material", Target: entry("X", "mat_rock")},
	}

	report := NewExecutor(f).Run(context.Background(), NewJob(ops), nil)
	if report.Completed != 0 || report.FailedCount() != 1 {
		t.Errorf("report = %+v", report)
	}
}
