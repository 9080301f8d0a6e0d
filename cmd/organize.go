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

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Move entries into per-type containers",
	Long: `Organize moves every entry in scope to <root>/<type>/<name>. Entries
already at their target are skipped, so a second run plans nothing.`,
	RunE: runOrganize,
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	addScanFlags(organizeCmd)
	organizeCmd.Flags().String("root", "", "Container under which per-type containers are created (default: scope)")

	if err := ops.RegisterCommand("organize", ops.GroupCurate, organizeCmd, "Move entries into per-type containers"); err != nil {
		logger.Error("Failed to register organize command", logger.Err(err))
	}
}

func runOrganize(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	root, _ := cmd.Flags().GetString("root")
	out, err := curate.OrganizeByType(ctx, env, curate.OrganizeConfig{
		Scan: scanConfig(cmd, cfg),
		Root: root,
	})
	if err != nil {
		return err
	}
	return finishRun(out)
}
