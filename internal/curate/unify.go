package curate

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/stonekeep/curator/internal/duplicate"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/logger"
)

// UnifyConfig configures duplicate consolidation.
type UnifyConfig struct {
	Scan ScanConfig
	// GroupBy selects the grouping key; defaults to duplicate.ByName.
	GroupBy duplicate.GroupBy
	// Designated maps a group name to the caller-chosen canonical entry id.
	Designated map[string]string
	// SelectedOnly restricts unification to the duplicate group of the
	// currently selected entry. Requires a selection.
	SelectedOnly bool
}

// UnifyDuplicates consolidates entries sharing a display name into a single
// canonical entry: references are repointed first, duplicates removed after.
func UnifyDuplicates(ctx context.Context, env Env, cfg UnifyConfig) (*Outcome, error) {
	mode := cfg.GroupBy
	if mode == "" {
		mode = duplicate.ByName
	}
	if !mode.Valid() {
		return nil, &repo.PreconditionError{Reason: fmt.Sprintf("unknown grouping mode %q", mode)}
	}

	designated := cfg.Designated
	var selectedName string
	if cfg.SelectedOnly {
		selected, err := currentSelection(ctx, env, 1)
		if err != nil {
			return nil, err
		}
		// Group names are NFC-normalized, so the selection's name must be
		// too or a decomposed-form name would match no group.
		selectedName = norm.NFC.String(selected[0].Name)
		if designated == nil {
			designated = map[string]string{selectedName: selected[0].ID}
		}
	}

	snap, err := scan(ctx, env, cfg.Scan)
	if err != nil {
		return nil, err
	}

	groups := duplicate.Groups(snap, mode)
	if cfg.SelectedOnly {
		var filtered []duplicate.Group
		for _, g := range groups {
			if g.Name == selectedName {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}

	ops, dupFindings := duplicate.Plan(groups, designated)

	out := &Outcome{Snapshot: snap, Ops: ops}
	for _, f := range dupFindings {
		out.Findings = append(out.Findings, Finding{
			Level:  FindingInfo,
			Entry:  f.Name,
			Detail: f.Message,
		})
	}
	for _, op := range ops {
		logger.Info(fmt.Sprintf("unifying %s", op.Describe()))
	}

	out.execute(ctx, env)
	return out, nil
}

// currentSelection fetches the host selection and enforces the minimum size
// precondition. An empty selection is a failure, never an empty success.
func currentSelection(ctx context.Context, env Env, min int) ([]repo.Entry, error) {
	if env.Selection == nil {
		return nil, &repo.PreconditionError{Reason: "no selection provider available"}
	}
	selected, err := env.Selection.CurrentSelection(ctx)
	if err != nil {
		return nil, err
	}
	if len(selected) < min {
		return nil, &repo.PreconditionError{Reason: fmt.Sprintf("at least %d selected entry required, got %d", min, len(selected))}
	}
	return selected, nil
}
