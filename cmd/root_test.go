package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/curate"
)

func TestInitializeLogger(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "info", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")
	cmd.Flags().Bool("dry-run", false, "")

	// This should not panic
	initializeLogger(cmd)
}

func TestInitializeLogger_InvalidLevel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("log-level", "invalid", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("no-color", false, "")
	cmd.Flags().Bool("dry-run", false, "")

	// Should default to info level
	initializeLogger(cmd)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"archive", "purge", "report", "prefix", "organize", "unify", "assign", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "curator ") {
		t.Errorf("unexpected version output: %q", buf.String())
	}
}

func TestPrintFindingsAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	printFindings(&buf, []curate.Finding{
		{Level: curate.FindingWarning, Entry: "/Game/rock", Detail: "unreferenced Texture2D rock"},
		{Level: curate.FindingWarning, Entry: "/Game/Deep/very_long_name", Detail: "unreferenced Material very_long_name"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected table output:\n%s", buf.String())
	}
	header := lines[0]
	if !strings.HasPrefix(header, "LEVEL") || !strings.Contains(header, "ENTRY") || !strings.Contains(header, "DETAIL") {
		t.Errorf("unexpected header: %q", header)
	}
	// Detail column starts at the same offset in every row.
	offset := strings.Index(header, "DETAIL")
	for _, line := range lines[1:3] {
		if !strings.HasPrefix(line[offset:], "unreferenced") {
			t.Errorf("misaligned row: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "2 finding(s)") {
		t.Errorf("missing summary line in %q", buf.String())
	}
}

func TestPrintFindingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printFindings(&buf, nil)
	if !strings.Contains(buf.String(), "No findings.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
