package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsqlapp/navigator/internal/queryplan"
	"github.com/tsqlapp/navigator/internal/urlparse"
)

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	URL        string                `json:"url"`
	Parsed     *urlparse.ParsedURL   `json:"parsed"`
	Statements []queryplan.Statement `json:"statements"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <url>",
		Short: "Derive the metadata lookups a navigator URL implies",
		Long: `Decode a TSQL.APP navigator URL and derive the ordered lookup statements
needed to resolve it: card metadata, sort fields, named filter, selected
record, and parent record.

Templates may carry unresolved placeholders ({tablename},
{parent_tablename}, @card_id) that a later execution layer fills from
earlier statements' results.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args[0], cmd)
		},
	}
}

func runPlan(opts *RootOptions, rawURL string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	parsed, err := urlparse.Decode(rawURL)
	if err != nil {
		_ = formatter.Error(ErrCodeDecode, err.Error(), nil)
		return WrapExitError(ExitCommandError, "decoding URL", err)
	}

	statements := queryplan.Derive(parsed)
	formatter.VerboseLog("Derived %d statement(s) for %s", len(statements), rawURL)

	if formatter.Format == "json" {
		return formatter.Success(&PlanResult{
			URL:        rawURL,
			Parsed:     parsed,
			Statements: statements,
		})
	}

	renderParsed(formatter, rawURL, parsed)
	fmt.Fprintf(formatter.Writer, "\nSuggested queries:\n")
	queryplan.Render(formatter.Writer, statements)
	return nil
}
