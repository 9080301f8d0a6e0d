/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/curate"
	"github.com/stonekeep/curator/internal/ops"
	"github.com/stonekeep/curator/pkg/logger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Read-only analysis reports",
	Long:  `Report runs read-only scans over the asset database and prints findings as a table. Nothing is mutated.`,
}

var reportOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List unreferenced entries",
	RunE:  runReportOrphans,
}

var reportTwoSidedCmd = &cobra.Command{
	Use:   "twosided",
	Short: "List materials with the two-sided flag set",
	RunE:  runReportTwoSided,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportOrphansCmd)
	reportCmd.AddCommand(reportTwoSidedCmd)
	addScanFlags(reportOrphansCmd)
	addScanFlags(reportTwoSidedCmd)
	reportTwoSidedCmd.Flags().String("property", "two_sided", "Boolean material property to inspect")

	if err := ops.RegisterCommand("report", ops.GroupReport, reportCmd, "Read-only analysis reports"); err != nil {
		logger.Error("Failed to register report command", logger.Err(err))
	}
}

func runReportOrphans(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	out, err := curate.ReportOrphans(ctx, env, scanConfig(cmd, cfg))
	if err != nil {
		return err
	}
	logScanFailures(out)
	printFindings(cmd.OutOrStdout(), out.Findings)
	return nil
}

func runReportTwoSided(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	property, _ := cmd.Flags().GetString("property")
	out, err := curate.ReportTwoSided(ctx, env, curate.TwoSidedConfig{
		Scan:     scanConfig(cmd, cfg),
		Property: property,
	})
	if err != nil {
		return err
	}
	logScanFailures(out)
	printFindings(cmd.OutOrStdout(), out.Findings)
	return nil
}

// logScanFailures reports entries the scan could not analyze. The report is
// still printed; an unanalyzable entry is never silently dropped.
func logScanFailures(out *curate.Outcome) {
	for _, f := range out.PlanFailures {
		logger.Error(fmt.Sprintf("could not analyze %s", f.Label), logger.Err(f.Err))
	}
}

// printFindings renders findings as an aligned table. Column widths use
// display width, not byte length, so wide runes in entry names line up.
func printFindings(w io.Writer, findings []curate.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}
	headers := []string{"LEVEL", "ENTRY", "DETAIL"}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{string(f.Level), f.Entry, f.Detail})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
	fmt.Fprintf(w, "\n%d finding(s)\n", len(findings))
}
