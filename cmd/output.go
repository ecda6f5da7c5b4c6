/*
Copyright © 2026 zippyzappypixy <zippyzappypixy@users.noreply.github.com>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zippyzappypixy/fast-license-checker/pkg/results"
)

const (
	ansiReset    = "\x1b[0m"
	ansiBold     = "\x1b[1m"
	ansiRed      = "\x1b[31m"
	ansiGreen    = "\x1b[32m"
	ansiYellow   = "\x1b[33m"
	ansiCyan     = "\x1b[36m"
	ansiBoldCyan = "\x1b[1;36m"
)

// parseOutputFormat validates the --output flag value.
func parseOutputFormat(s string) (string, error) {
	switch s {
	case "text", "json", "github":
		return s, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or github)", s)
	}
}

// scanReport collects per-file scan results for rendering after the run.
type scanReport struct {
	results []results.ScanResult
}

func (r *scanReport) add(res results.ScanResult) {
	r.results = append(r.results, res)
}

// attention returns the failing results sorted by path.
func (r *scanReport) attention() []results.ScanResult {
	var out []results.ScanResult
	for _, res := range r.results {
		if res.Status.NeedsAttention() {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func renderScan(w io.Writer, summary results.ScanSummary, report *scanReport, format string, color bool) error {
	switch format {
	case "json":
		return renderScanJSON(w, summary, report)
	case "github":
		renderScanGitHub(w, summary, report)
		return nil
	default:
		renderScanText(w, summary, report, color)
		return nil
	}
}

func renderScanText(w io.Writer, summary results.ScanSummary, report *scanReport, color bool) {
	if summary.Total == 0 {
		fmt.Fprintln(w, "No files found to check")
		return
	}

	fmt.Fprintln(w, paint("License Header Check Results", ansiBoldCyan, color))
	fmt.Fprintf(w, "%s", paint(fmt.Sprintf("✓ Passed: %d", summary.Passed), ansiGreen, color))
	if summary.Failed > 0 {
		fmt.Fprintf(w, "  %s", paint(fmt.Sprintf("✗ Failed: %d", summary.Failed), ansiRed, color))
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(w, "  %s", paint(fmt.Sprintf("⚠ Skipped: %d", summary.Skipped), ansiYellow, color))
	}
	fmt.Fprintf(w, "  %s\n", paint(fmt.Sprintf("Total: %d", summary.Total), ansiCyan, color))

	passedPct := summary.Passed * 100 / summary.Total
	fmt.Fprintf(w, "%s %d%%\n", progressBar(passedPct, 40, color), passedPct)

	failing := report.attention()
	if len(failing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, paint("Details:", ansiBold, color))
		width := 0
		for _, res := range failing {
			if rw := runewidth.StringWidth(res.Path); rw > width {
				width = rw
			}
		}
		for _, res := range failing {
			pad := strings.Repeat(" ", width-runewidth.StringWidth(res.Path))
			fmt.Fprintf(w, "  %s%s  %s\n", res.Path, pad, paint(res.Status.String(), ansiRed, color))
		}
	}
}

func progressBar(pct, width int, color bool) string {
	filled := pct * width / 100
	var b strings.Builder
	if color {
		b.WriteString(ansiGreen)
	}
	b.WriteString("[")
	b.WriteString(strings.Repeat("█", filled))
	if color {
		b.WriteString(ansiRed)
	}
	b.WriteString(strings.Repeat("░", width-filled))
	if color {
		b.WriteString(ansiReset)
	}
	b.WriteString("]")
	return b.String()
}

func paint(s, code string, color bool) string {
	if !color {
		return s
	}
	return code + s + ansiReset
}

func renderScanJSON(w io.Writer, summary results.ScanSummary, report *scanReport) error {
	sort.Slice(report.results, func(i, j int) bool {
		return report.results[i].Path < report.results[j].Path
	})
	payload := struct {
		Summary results.ScanSummary  `json:"summary"`
		Results []results.ScanResult `json:"results"`
	}{summary, report.results}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderScanGitHub(w io.Writer, summary results.ScanSummary, report *scanReport) {
	for _, res := range report.attention() {
		fmt.Fprintf(w, "::error file=%s,title=License Header::%s\n", res.Path, res.Status)
	}
	switch {
	case summary.Failed > 0:
		fmt.Fprintf(w, "::error title=License Check Failed::Found %d files missing license headers out of %d total files\n",
			summary.Failed, summary.Total)
	case summary.Total == 0:
		fmt.Fprintln(w, "::warning title=No Files Found::No files found to check for license headers")
	default:
		fmt.Fprintf(w, "::notice title=License Check Passed::All %d checked files have valid license headers\n",
			summary.Total)
	}
}

// fixReport collects per-file fix results for rendering after the run.
type fixReport struct {
	results []results.FixResult
}

func (r *fixReport) add(res results.FixResult) {
	r.results = append(r.results, res)
}

func (r *fixReport) changedOrFailed() []results.FixResult {
	var out []results.FixResult
	for _, res := range r.results {
		switch res.Action.Kind {
		case results.ActionFixed, results.ActionWouldFix, results.ActionFailed:
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func renderFix(w io.Writer, summary results.FixSummary, report *fixReport, format string, color bool) error {
	if format == "json" {
		sort.Slice(report.results, func(i, j int) bool {
			return report.results[i].Path < report.results[j].Path
		})
		payload := struct {
			Summary results.FixSummary  `json:"summary"`
			Results []results.FixResult `json:"results"`
		}{summary, report.results}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	for _, res := range report.changedOrFailed() {
		code := ansiGreen
		if res.Action.Kind == results.ActionFailed {
			code = ansiRed
		}
		fmt.Fprintf(w, "  %s  %s\n", res.Path, paint(res.Action.String(), code, color))
	}
	fmt.Fprintln(w, summary.String())
	return nil
}
