package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Catalog string // catalog export path, overrides the config file
}

// SearchResult is the JSON payload of the search command.
type SearchResult struct {
	Pattern string   `json:"pattern"`
	Names   []string `json:"names"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "search <pattern>",
		Short:         "Search the procedure catalog by name substring",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "path to the procedure catalog CSV export")

	return cmd
}

func runSearch(opts *SearchOptions, pattern string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := openCatalog(opts.Catalog, opts.Config, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	names, err := cat.FindByNameContains(cmd.Context(), pattern)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "catalog search", err)
	}

	if len(names) == 0 {
		message := fmt.Sprintf("no procedures match %q", pattern)
		_ = formatter.Error(ErrCodeNotFound, message, nil)
		return NewExitError(ExitFailure, message)
	}

	if formatter.Format == "json" {
		return formatter.Success(&SearchResult{Pattern: pattern, Names: names})
	}

	fmt.Fprintf(formatter.Writer, "Found %d procedure(s) matching %q:\n", len(names), pattern)
	for _, name := range names {
		fmt.Fprintf(formatter.Writer, "  %s\n", name)
	}
	return nil
}
