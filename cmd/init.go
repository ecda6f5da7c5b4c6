/*
Copyright © 2026 zippyzappypixy <zippyzappypixy@users.noreply.github.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zippyzappypixy/fast-license-checker/pkg/config"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Init writes an annotated starter config to .flc.yaml (or the path
given with --path) so a project can version its license header settings.
Existing files are never overwritten.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runInit,
	}
	cmd.Flags().String("path", "", "Where to write the config (default .flc.yaml or .flc.toml)")
	cmd.Flags().String("format", "yaml", "Config format (yaml|toml)")
	return cmd
}

var initCmd = newInitCommand()

func runInit(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = ".flc." + format
	}

	if err := config.WriteTemplate(path, format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
