package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/extconf/extconf/packages/core/merge"
)

// JSONOutput is the machine-readable form of a merge result.
type JSONOutput struct {
	Reset     bool           `json:"reset"`
	Writes    map[string]any `json:"writes"`
	Unchanged int            `json:"unchanged"`
	Duration  float64        `json:"duration"`
	Time      string         `json:"time"`
}

type JSONFormatter struct {
	writer io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{writer: os.Stdout}
}

func NewJSONFormatterWithWriter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

func (f *JSONFormatter) FormatResult(res *merge.Result, elapsed time.Duration, dryRun bool) {
	out := JSONOutput{
		Reset:     res.Reset,
		Writes:    res.Writes,
		Unchanged: len(res.Effective) - len(res.Writes),
		Duration:  elapsed.Seconds(),
		Time:      time.Now().Format(time.RFC3339),
	}
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
