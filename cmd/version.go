/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/ops"
	"github.com/stonekeep/curator/pkg/buildinfo"
	"github.com/stonekeep/curator/pkg/logger"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show curator version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("extended", false, "Show module version and platform details")
	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")

	if err := ops.RegisterCommand("version", ops.GroupSupport, versionCmd, "Show version information"); err != nil {
		logger.Error("Failed to register version command", logger.Err(err))
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if jsonOutput {
		info := map[string]string{
			"version":   buildinfo.BinaryVersion,
			"module":    buildinfo.ModuleVersion(),
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "curator %s\n", buildinfo.BinaryVersion)
	if extended {
		fmt.Fprintf(out, "module:   %s\n", buildinfo.ModuleVersion())
		fmt.Fprintf(out, "go:       %s\n", runtime.Version())
		fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
