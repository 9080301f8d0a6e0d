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

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move unreferenced entries into the archive container",
	Long: `Archive scans the scope, resolves the reference graph, and moves every
entry with no referencers into a flat archive container. Referenced entries
are never touched. Entries whose reference lookup fails are reported and
left in place.`,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	addScanFlags(archiveCmd)
	archiveCmd.Flags().String("archive-root", "", "Container receiving archived entries (default from config)")

	if err := ops.RegisterCommand("archive", ops.GroupCurate, archiveCmd, "Move unreferenced entries to the archive"); err != nil {
		logger.Error("Failed to register archive command", logger.Err(err))
	}
}

func runArchive(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	root := cfg.Archive.Root
	if v, _ := cmd.Flags().GetString("archive-root"); v != "" {
		root = v
	}

	out, err := curate.ArchiveOrphans(ctx, env, curate.ArchiveConfig{
		Scan:        scanConfig(cmd, cfg),
		ArchiveRoot: root,
	})
	if err != nil {
		return err
	}
	return finishRun(out)
}
