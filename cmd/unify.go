/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/curate"
	"github.com/stonekeep/curator/internal/duplicate"
	"github.com/stonekeep/curator/internal/ops"
	"github.com/stonekeep/curator/pkg/logger"
)

var unifyCmd = &cobra.Command{
	Use:   "unify",
	Short: "Consolidate same-named duplicate entries",
	Long: `Unify groups entries sharing a display name, keeps one canonical entry
per group, repoints all references at it, and removes the rest. Passing
--select restricts unification to the selected entry's group, with the
selection as the canonical entry.`,
	RunE: runUnify,
}

func init() {
	rootCmd.AddCommand(unifyCmd)
	addScanFlags(unifyCmd)
	unifyCmd.Flags().String("group-by", "", "Grouping key: name or name_type (default from config)")
	unifyCmd.Flags().StringSlice("select", nil, "Entry id acting as the current selection; restricts unification to its group")

	if err := ops.RegisterCommand("unify", ops.GroupCurate, unifyCmd, "Consolidate same-named duplicates"); err != nil {
		logger.Error("Failed to register unify command", logger.Err(err))
	}
}

func runUnify(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	groupBy := cfg.Unify.GroupBy
	if v, _ := cmd.Flags().GetString("group-by"); v != "" {
		groupBy = v
	}
	// A selection restricts the run to its own duplicate group.
	selectedIDs, _ := cmd.Flags().GetStringSlice("select")
	selectedOnly := len(selectedIDs) > 0

	out, err := curate.UnifyDuplicates(ctx, env, curate.UnifyConfig{
		Scan:         scanConfig(cmd, cfg),
		GroupBy:      duplicate.GroupBy(groupBy),
		SelectedOnly: selectedOnly,
	})
	if err != nil {
		return err
	}
	return finishRun(out)
}
