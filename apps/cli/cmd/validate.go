package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extconf/extconf/packages/core/source"
	"github.com/extconf/extconf/packages/output"
	"github.com/extconf/extconf/packages/template"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file ...>",
	Short: "Check config files for format and schema errors",
	Long: `Parse config files and check their structure without touching any
store. Template files are rendered first, exactly as apply would.

Examples:
  extconf validate server.yml
  extconf validate --glob 'conf.d/*.yml'`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

var validateGlobFlag bool

func init() {
	validateCmd.Flags().BoolVar(&validateGlobFlag, "glob", false, "Expand file arguments as glob patterns")
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := source.ExpandGlobs(args, validateGlobFlag)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched")
	}

	loader := source.New(source.WithRenderer(template.NewJinja()))
	formatter := output.NewConsoleFormatter(output.WithWriter(cmd.OutOrStdout()))

	var firstErr error
	for _, file := range files {
		if _, err := loader.LoadFile(file); err != nil {
			formatter.FormatError(err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		formatter.FormatValid(file)
	}
	return firstErr
}
