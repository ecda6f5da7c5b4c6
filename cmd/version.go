/*
Copyright © 2026 zippyzappypixy <zippyzappypixy@users.noreply.github.com>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/zippyzappypixy/fast-license-checker/pkg/buildinfo"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "version",
		Short:        "Show version information",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runVersion,
	}
	cmd.Flags().Bool("extended", false, "Show build and platform details")
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

var versionCmd = newVersionCommand()

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if jsonOutput {
		info := map[string]string{
			"version":       buildinfo.BinaryVersion,
			"moduleVersion": buildinfo.ModuleVersion(),
			"goVersion":     runtime.Version(),
			"platform":      runtime.GOOS,
			"arch":          runtime.GOARCH,
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "flc %s\n", buildinfo.BinaryVersion)
	if extended {
		fmt.Fprintf(out, "module version: %s\n", buildinfo.ModuleVersion())
		fmt.Fprintf(out, "go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
