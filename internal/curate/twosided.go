package curate

import (
	"context"
	"fmt"

	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// TwoSidedConfig configures the two-sided material report.
type TwoSidedConfig struct {
	Scan ScanConfig
	// Property is the boolean flag inspected on each material.
	Property string
}

// ReportTwoSided scans materials in scope and reports those with the
// two-sided flag set. Read-only; requires a repository with the
// PropertyReader capability.
func ReportTwoSided(ctx context.Context, env Env, cfg TwoSidedConfig) (*Outcome, error) {
	reader, ok := env.Repo.(repo.PropertyReader)
	if !ok {
		return nil, &repo.PreconditionError{Reason: "repository does not support property scans"}
	}
	if cfg.Property == "" {
		cfg.Property = "two_sided"
	}

	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Snapshot: snap}
	for _, m := range snap.OfType("Material") {
		twoSided, err := reader.BoolProperty(ctx, m.ID, cfg.Property)
		if err != nil {
			out.PlanFailures = append(out.PlanFailures, planFailure(m, err))
			continue
		}
		if twoSided {
			out.Findings = append(out.Findings, Finding{
				Level:  FindingWarning,
				Entry:  m.Path(),
				Detail: fmt.Sprintf("material %s is two-sided", m.Name),
			})
		}
	}
	if len(out.Findings) == 0 {
		logger.Info("no two-sided materials found", logger.String("scope", cfg.Scan.Scope))
	}

	out.logFindings()
	return out, nil
}
