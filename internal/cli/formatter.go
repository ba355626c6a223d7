package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/dirtally/internal/dirtally"
)

const (
	// IndentWidth is the number of spaces per tree depth level.
	IndentWidth = 2
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *dirtally.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintText outputs the report in the plain text layout: header, grand
// total, top-level children summary, and the per-directory tree
// breakdown. levels limits the displayed tree depth (0=unlimited);
// totals switches each entry to the direct=/total= form.
func PrintText(report *dirtally.Report, levels int, totals bool, writer io.Writer) error {
	fmt.Fprintf(writer, "Root: %s\n", report.Root)
	fmt.Fprintf(writer, "Path: %s\n", report.Path)
	fmt.Fprintln(writer)

	fmt.Fprintf(writer, "Grand total files: %d\n", report.GrandTotal)
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "Top-level children summary:")

	children := report.Children()
	if len(children) == 0 {
		fmt.Fprintln(writer, "  (no subdirectories)")
	}

	for _, child := range children {
		fmt.Fprintf(writer, "  %s\n", entry(child, totals))
	}

	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "Per-directory tree breakdown:")

	for _, dir := range report.Dirs {
		if levels > 0 && dir.Depth > levels {
			continue
		}

		indent := strings.Repeat(" ", dir.Depth*IndentWidth)
		fmt.Fprintf(writer, "%s%s\n", indent, entry(dir, totals))
	}

	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "Done.")

	return nil
}

// entry renders one "path  count" cell, with recursive totals when requested.
func entry(dir dirtally.DirCount, totals bool) string {
	if totals {
		return fmt.Sprintf("%s  direct=%d  total=%d", dir.Rel, dir.Direct, dir.Total)
	}

	return fmt.Sprintf("%s  %d", dir.Rel, dir.Direct)
}
