/*
Copyright © 2026 zippyzappypixy <zippyzappypixy@users.noreply.github.com>
*/
package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zippyzappypixy/fast-license-checker/pkg/buildinfo"
	"github.com/zippyzappypixy/fast-license-checker/pkg/config"
	"github.com/zippyzappypixy/fast-license-checker/pkg/exitcode"
	"github.com/zippyzappypixy/fast-license-checker/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flc",
		Short: "Fast license header checker and fixer",
		Long: `flc scans source trees for license headers and can insert missing ones.

Files are checked against the configured header text, wrapped in the comment
style matching each file's extension. Headers land after shebang lines and
XML declarations, writes are atomic, and similar-but-wrong headers are
reported for manual review rather than overwritten.

Examples:
   flc scan              # Check the current directory
   flc scan ./src        # Check a subtree
   flc fix --dry-run     # Preview which files would gain a header
   flc fix               # Insert missing headers
   flc init              # Write a starter .flc.yaml`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (.yaml or .toml)")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("flc {{.Version}}\n")

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the CLI. It is called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error back to the process exit code.
func exitCodeFor(err error) int {
	if ec, ok := err.(exitError); ok {
		return ec.code
	}
	return exitcode.ConfigError
}

// exitError carries a specific exit code through cobra's error return.
type exitError struct {
	code int
	msg  string
}

func (e exitError) Error() string { return e.msg }

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(levelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
	})
}

// loadConfig assembles the effective configuration from the shared scan/fix
// flags. A header is required: scanning without one can only fail.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var o config.Overrides
	o.LicenseHeader, _ = cmd.Flags().GetString("header")
	o.LicenseFile, _ = cmd.Flags().GetString("license")
	if cmd.Flags().Changed("jobs") {
		o.ParallelJobs, _ = cmd.Flags().GetInt("jobs")
		o.ParallelJobsSet = true
	}
	if cmd.Flags().Changed("max-bytes") {
		o.MaxHeaderBytes, _ = cmd.Flags().GetInt("max-bytes")
		o.MaxHeaderBytesSet = true
	}
	if cmd.Flags().Changed("similarity-threshold") {
		o.SimilarityThreshold, _ = cmd.Flags().GetInt("similarity-threshold")
		o.SimilarityThresholdSet = true
	}

	cfg, err := config.Load(configPath, o)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.LicenseHeader) == "" {
		return nil, errors.New("no license header provided: use --license <file> or --header <text>, " +
			"or add license_header to your config file")
	}
	return cfg, nil
}

// addRunFlags registers the flags shared by scan and fix.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("license", "l", "", "Path to file containing the license header text")
	cmd.Flags().String("header", "", "License header text (alternative to --license)")
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel jobs (default: number of CPUs)")
	cmd.Flags().Int("max-bytes", 8192, "Maximum bytes to read for header detection")
	cmd.Flags().Int("similarity-threshold", 70, "Similarity cutoff for malformed header detection (0-100)")
	cmd.Flags().StringP("output", "o", "text", "Output format (text|json|github)")
	cmd.MarkFlagsMutuallyExclusive("license", "header")
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
