/*
Copyright © 2026 zippyzappypixy <zippyzappypixy@users.noreply.github.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zippyzappypixy/fast-license-checker/pkg/exitcode"
	"github.com/zippyzappypixy/fast-license-checker/pkg/fixer"
	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
)

func newFixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Insert missing license headers",
		Long: `Fix walks the given directory (default ".") and inserts the license
header into files that are missing it. Conformant files are untouched, and
files with a similar-but-wrong header are reported for manual review instead
of being rewritten. Every write is atomic.

Use --dry-run to preview which files would change.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runFix,
	}
	addRunFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Preview changes without writing any files")
	return cmd
}

var fixCmd = newFixCommand()

func runFix(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := fixer.New(root, cfg)
	if err != nil {
		return err
	}
	f.DryRun, _ = cmd.Flags().GetBool("dry-run")

	report := &fixReport{}
	f.OnResult = func(r results.FixResult) { report.add(r) }

	summary, err := f.Fix(cmd.Context())
	if err != nil {
		return exitError{code: exitcode.FileSystemError, msg: fmt.Sprintf("fix failed: %v", err)}
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if err := renderFix(cmd.OutOrStdout(), summary, report, format, !noColor); err != nil {
		return err
	}

	if !summary.IsClean() {
		return exitError{
			code: exitcode.HeadersMissing,
			msg:  fmt.Sprintf("%d files could not be fixed", summary.Failed),
		}
	}
	return nil
}
