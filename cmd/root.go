/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/ops"
	"github.com/stonekeep/curator/internal/repo"
	"github.com/stonekeep/curator/pkg/buildinfo"
	"github.com/stonekeep/curator/pkg/exitcode"
	"github.com/stonekeep/curator/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curator",
		Short: "Asset database maintenance tool",
		Long: `Curator analyzes the reference graph of an asset database and applies
batch structural maintenance: archiving or deleting unreferenced entries,
enforcing naming prefixes, reorganizing by type, and consolidating duplicates.

Examples:
   curator report orphans        # List unreferenced entries
   curator archive               # Move unreferenced entries to the archive
   curator prefix --dry-run      # Preview prefix enforcement
   curator unify                 # Consolidate same-named duplicates`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("dry-run", false, "Plan and log mutations without applying them")
	cmd.PersistentFlags().String("db", "", "Asset database root directory (default from config)")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("curator {{.Version}}\n")

	// Grouped help by command group (Curate → Report → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Maintenance Commands (mutate the database):")
		for _, c := range reg.GetCommandsByGroup(ops.GroupCurate) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Report Commands (read-only):")
		for _, c := range reg.GetCommandsByGroup(ops.GroupReport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// exitError carries a specific process exit code out of a command run.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// Execute runs the root command and maps failures onto process exit codes.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				logger.Error(ee.msg)
			}
			os.Exit(ee.code)
		}
		var precondition *repo.PreconditionError
		if errors.As(err, &precondition) {
			logger.Error(err.Error())
			os.Exit(exitcode.PreconditionFailed)
		}
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(logLevelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
		DryRun:   dryRun,
	})
}
