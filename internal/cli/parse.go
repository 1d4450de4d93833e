package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsqlapp/navigator/internal/urlparse"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>",
		Short: "Decode a navigator URL into structured intent",
		Long: `Decode a TSQL.APP navigator URL into its components: card, parent/child
context, sort fields, filter, and selected record id.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
}

func runParse(opts *RootOptions, rawURL string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	parsed, err := urlparse.Decode(rawURL)
	if err != nil {
		_ = formatter.Error(ErrCodeDecode, err.Error(), nil)
		return WrapExitError(ExitCommandError, "decoding URL", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(parsed)
	}

	renderParsed(formatter, rawURL, parsed)
	return nil
}

// renderParsed writes the component listing for a decoded URL.
func renderParsed(formatter *OutputFormatter, rawURL string, parsed *urlparse.ParsedURL) {
	w := formatter.Writer

	fmt.Fprintf(w, "URL: %s\n\n", rawURL)
	fmt.Fprintf(w, "  Domain:      %s\n", parsed.Domain)
	fmt.Fprintf(w, "  Card:        %s\n", parsed.Card)

	if parsed.ChildCard != "" {
		fmt.Fprintf(w, "  Parent ID:   %d\n", *parsed.ParentID)
		fmt.Fprintf(w, "  Child Card:  %s\n", parsed.ChildCard)
	}
	if len(parsed.SortFields) > 0 {
		fmt.Fprintf(w, "  Sort:        %s\n", formatSortFields(parsed.SortFields))
	}
	if parsed.Filter != "" {
		fmt.Fprintf(w, "  Filter:      %s\n", parsed.Filter)
	}
	if parsed.SelectedID != nil {
		fmt.Fprintf(w, "  Selected ID: %d\n", *parsed.SelectedID)
	}
}

// formatSortFields renders sort fields as "18377 DESC, 101 ASC".
func formatSortFields(fields []urlparse.SortField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strconv.FormatInt(f.FieldID, 10) + " " + string(f.Direction)
	}
	return strings.Join(parts, ", ")
}
