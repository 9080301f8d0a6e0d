/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/curate"
	"github.com/stonekeep/curator/internal/fsrepo"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/config"
	"github.com/stonekeep/curator/pkg/exitcode"
	"github.com/stonekeep/curator/pkg/logger"
)

// runContext derives a context cancelled by SIGINT/SIGTERM, so a batch stops
// at the next item boundary instead of mid-mutation.
func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// newEnv loads configuration and opens the asset database for a command run.
func newEnv(cmd *cobra.Command) (curate.Env, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return curate.Env{}, nil, &exitError{code: exitcode.ConfigError, msg: err.Error()}
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if _, err := os.Stat(dbPath); err != nil {
		return curate.Env{}, nil, &exitError{
			code: exitcode.RepositoryError,
			msg:  fmt.Sprintf("cannot open asset database at %s: %v", dbPath, err),
		}
	}
	database := fsrepo.New(osfs.New(dbPath))

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	env := curate.Env{
		Repo:   database,
		Sink:   &progressSink{},
		DryRun: dryRun,
	}

	if cmd.Flags().Lookup("select") != nil {
		ids, _ := cmd.Flags().GetStringSlice("select")
		if len(ids) > 0 {
			env.Selection = &flagSelection{repo: database, ids: ids}
		}
	}
	return env, cfg, nil
}

// addScanFlags declares the scan-phase flags shared by every operation.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().String("scope", "", "Container path to scan (default from config)")
	cmd.Flags().Bool("recursive", true, "Descend into nested containers")
	cmd.Flags().StringSlice("include", nil, "Glob patterns; only matching paths are considered")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns; matching paths are skipped")
	cmd.Flags().Int("concurrency", 0, "Reference-scan worker count (0 = percent of CPUs)")
}

// scanConfig merges config-file scan settings with any flags set on cmd.
func scanConfig(cmd *cobra.Command, cfg *config.Config) curate.ScanConfig {
	sc := curate.ScanConfig{
		Scope:              cfg.Scan.Scope,
		Recursive:          cfg.Scan.Recursive,
		Include:            cfg.Scan.Include,
		Exclude:            cfg.Scan.Exclude,
		Concurrency:        cfg.Scan.Concurrency,
		ConcurrencyPercent: cfg.Scan.ConcurrencyPercent,
	}
	if v, _ := cmd.Flags().GetString("scope"); v != "" {
		sc.Scope = v
	}
	if cmd.Flags().Changed("recursive") {
		sc.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("include") {
		sc.Include, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		sc.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}
	if cmd.Flags().Changed("concurrency") {
		sc.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	return sc
}

// progressSink logs batch progress; cancellation comes from the run context.
type progressSink struct {
	processed int
}

func (s *progressSink) Advance(n int, label string) {
	s.processed += n
	logger.Debug("processed item", logger.String("item", label), logger.Int("total", s.processed))
}

func (s *progressSink) ShouldCancel() bool { return false }

// flagSelection adapts --select ids into a SelectionProvider.
type flagSelection struct {
	repo repo.Repository
	ids  []string
}

func (s *flagSelection) CurrentSelection(ctx context.Context) ([]repo.Entry, error) {
	entries := make([]repo.Entry, 0, len(s.ids))
	for _, id := range s.ids {
		e, err := s.repo.Metadata(ctx, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// finishRun logs the batch summary and converts the outcome into the
// command's error (nil on clean success).
func finishRun(out *curate.Outcome) error {
	report := out.Report
	if report == nil {
		return nil
	}
	logger.Info("batch finished",
		logger.Int("completed", report.Completed),
		logger.Int("failed", report.FailedCount()),
		logger.Bool("cancelled", report.Cancelled))
	for _, f := range report.Failures {
		logger.Error(fmt.Sprintf("item %s failed", f.Label), logger.Err(f.Err))
	}
	if report.Cancelled {
		return &exitError{code: exitcode.BatchCancelled, msg: "batch cancelled"}
	}
	if report.FailedCount() > 0 {
		return &exitError{
			code: exitcode.BatchFailures,
			msg:  fmt.Sprintf("%d item(s) failed", report.FailedCount()),
		}
	}
	return nil
}
