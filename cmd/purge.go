/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/curate"
	"github.com/stonekeep/curator/internal/ops"
	"github.com/stonekeep/curator/pkg/logger"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete unreferenced entries",
	Long: `Purge scans the scope, resolves the reference graph, and deletes every
entry with no referencers. Run 'curator report orphans' or use --dry-run
first; deletion is not reversible.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	addScanFlags(purgeCmd)

	if err := ops.RegisterCommand("purge", ops.GroupCurate, purgeCmd, "Delete unreferenced entries"); err != nil {
		logger.Error("Failed to register purge command", logger.Err(err))
	}
}

func runPurge(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	out, err := curate.PurgeOrphans(ctx, env, curate.PurgeConfig{Scan: scanConfig(cmd, cfg)})
	if err != nil {
		return err
	}
	return finishRun(out)
}
