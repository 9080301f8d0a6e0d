/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stonekeep/curator/internal/classify"
	"github.com/stonekeep/curator/internal/curate"
	"github.com/stonekeep/curator/internal/ops"
	"github.com/stonekeep/curator/pkg/exitcode"
	"github.com/stonekeep/curator/pkg/logger"
)

var prefixCmd = &cobra.Command{
	Use:   "prefix",
	Short: "Enforce type-based naming prefixes",
	Long: `Prefix renames entries whose names do not start with the prefix mapped
to their type (tex_ for Texture2D, mat_ for Material, and so on). Types
without a rule and already-compliant names are skipped, so the operation
is idempotent. A custom table can be supplied as a YAML or TOML rules file.`,
	RunE: runPrefix,
}

func init() {
	rootCmd.AddCommand(prefixCmd)
	addScanFlags(prefixCmd)
	prefixCmd.Flags().String("rules", "", "Path to a prefix rules file (default: built-in table)")

	if err := ops.RegisterCommand("prefix", ops.GroupCurate, prefixCmd, "Enforce type-based naming prefixes"); err != nil {
		logger.Error("Failed to register prefix command", logger.Err(err))
	}
}

func runPrefix(cmd *cobra.Command, _ []string) error {
	env, cfg, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx, stop := runContext(cmd)
	defer stop()

	rulesPath, _ := cmd.Flags().GetString("rules")
	if rulesPath == "" {
		rulesPath = cfg.Prefix.Rules
	}
	rules := classify.Default()
	if rulesPath != "" {
		loaded, err := classify.Load(rulesPath)
		if err != nil {
			return &exitError{code: exitcode.ConfigError, msg: err.Error()}
		}
		rules = loaded
	}

	out, err := curate.EnforcePrefixes(ctx, env, curate.PrefixConfig{
		Scan:  scanConfig(cmd, cfg),
		Rules: rules,
	})
	if err != nil {
		return err
	}
	return finishRun(out)
}
