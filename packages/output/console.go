package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/extconf/extconf/packages/core/merge"
)

// formatValue formats a value for display, summarizing large composites
// instead of dumping them.
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("[sequence with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{mapping with %d keys}", len(val))
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatResult prints a merge outcome: the written keys when verbose, then
// a one-line summary.
func (f *ConsoleFormatter) FormatResult(res *merge.Result, elapsed time.Duration, dryRun bool) {
	if f.verbose {
		keys := make([]string, 0, len(res.Writes))
		for k := range res.Writes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(f.writer, "  %s = %s\n", color.CyanString(k), formatValue(res.Writes[k], 60))
		}
	}

	unchanged := len(res.Effective) - len(res.Writes)
	summary := fmt.Sprintf("%d keys written, %d unchanged (%s)",
		len(res.Writes), unchanged, elapsed.Round(time.Millisecond))
	if res.Reset {
		summary = "store reset, " + summary
	}
	if dryRun {
		fmt.Fprintf(f.writer, "%s %s\n", color.YellowString("dry run:"), summary)
		return
	}
	fmt.Fprintln(f.writer, color.GreenString(summary))
}

// FormatValid prints a validation success line for one file.
func (f *ConsoleFormatter) FormatValid(file string) {
	fmt.Fprintf(f.writer, "%s %s\n", color.GreenString("valid:"), file)
}

// FormatError prints an error to the console.
func (f *ConsoleFormatter) FormatError(err error) {
	fmt.Fprintf(f.writer, "%s %v\n", color.RedString("error:"), err)
}
