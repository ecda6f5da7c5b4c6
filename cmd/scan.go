/*
Copyright © 2026 zippyzappypixy <zippyzappypixy@users.noreply.github.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zippyzappypixy/fast-license-checker/pkg/exitcode"
	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
	"github.com/zippyzappypixy/fast-license-checker/pkg/scanner"
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Check files for the configured license header",
		Long: `Scan walks the given directory (default ".") and checks every
processable file for the license header. The exit code is non-zero when any
file is missing the header or carries a malformed one.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runScan,
	}
	addRunFlags(cmd)
	return cmd
}

var scanCmd = newScanCommand()

func runScan(cmd *cobra.Command, args []string) error {
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

	s, err := scanner.New(root, cfg)
	if err != nil {
		return err
	}

	report := &scanReport{}
	s.OnResult = func(r results.ScanResult) { report.add(r) }

	summary, err := s.Scan(cmd.Context())
	if err != nil {
		return exitError{code: exitcode.FileSystemError, msg: fmt.Sprintf("scan failed: %v", err)}
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if err := renderScan(cmd.OutOrStdout(), summary, report, format, !noColor); err != nil {
		return err
	}

	if !summary.IsClean() {
		return exitError{
			code: exitcode.HeadersMissing,
			msg:  fmt.Sprintf("%d files need attention", summary.Failed),
		}
	}
	return nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("output")
	return parseOutputFormat(raw)
}
