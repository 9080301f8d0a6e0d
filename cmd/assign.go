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

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign the selected material to similarly named meshes",
	Long: `Assign takes exactly one selected Material entry (via --select) whose
name carries the material prefix, strips the prefix to obtain a stem, and
points the material slot of every mesh whose name contains that stem at it.`,
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
	addScanFlags(assignCmd)
	assignCmd.Flags().StringSlice("select", nil, "Entry ids acting as the current selection")
	assignCmd.Flags().String("slot", "material", "Reference slot written on each matching mesh")
	assignCmd.Flags().String("mesh-type", "StaticMesh", "Entry type scanned for name matches")

	if err := ops.RegisterCommand("assign", ops.GroupCurate, assignCmd, "Assign selected material to similarly named meshes"); err != nil {
		logger.Error("Failed to register assign command", logger.Err(err))
	}
}

func runAssign(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	slot, _ := cmd.Flags().GetString("slot")
	meshType, _ := cmd.Flags().GetString("mesh-type")

	out, err := curate.AssignMaterial(ctx, env, curate.AssignConfig{
		Scan:     scanConfig(cmd, cfg),
		Slot:     slot,
		MeshType: meshType,
	})
	if err != nil {
		return err
	}
	return finishRun(out)
}
