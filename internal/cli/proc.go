package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsqlapp/navigator/internal/catalog"
)

// ProcOptions holds flags for the proc command.
type ProcOptions struct {
	*RootOptions
	Catalog string // catalog export path, overrides the config file
}

// ProcResult is the JSON payload of the proc command.
type ProcResult struct {
	Procedure  string              `json:"procedure"`
	Parameters []catalog.Parameter `json:"parameters"`
}

// NewProcCommand creates the proc command.
func NewProcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "proc <name>",
		Short: "Look up a stored procedure signature in the catalog",
		Long: `Look up a stored procedure by exact name (case-insensitive) in the
procedure catalog export and display its parameter signature with
generated example usage.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProc(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "path to the procedure catalog CSV export")

	return cmd
}

func runProc(opts *ProcOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := openCatalog(opts.Catalog, opts.Config, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	params, err := cat.FindByExactName(cmd.Context(), name)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "catalog lookup", err)
	}

	if len(params) == 0 {
		// Empty result set, not an exception: report and exit 1
		message := fmt.Sprintf("procedure %q not found in catalog", name)
		_ = formatter.Error(ErrCodeNotFound, message, nil)
		return NewExitError(ExitFailure, message)
	}

	if formatter.Format == "json" {
		return formatter.Success(&ProcResult{
			Procedure:  params[0].Procedure,
			Parameters: params,
		})
	}

	renderProcedure(formatter.Writer, params[0].Procedure, params)
	return nil
}

// openCatalog resolves the export path and loads the catalog index,
// emitting the command error output itself on failure.
func openCatalog(flagValue string, cfg *Config, formatter *OutputFormatter) (*catalog.Catalog, error) {
	path, err := resolveCatalogPath(flagValue, cfg)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "resolving catalog", err)
	}

	cat, err := catalog.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "loading catalog", err)
	}

	formatter.VerboseLog("Loaded catalog from %s", path)
	return cat, nil
}

// renderProcedure writes the grouped parameter listing and generated
// example usage for a procedure.
func renderProcedure(w io.Writer, name string, params []catalog.Parameter) {
	fmt.Fprintf(w, "Procedure: %s\n", name)

	var required, optional []catalog.Parameter
	for _, p := range params {
		if p.Required {
			required = append(required, p)
		} else {
			optional = append(optional, p)
		}
	}

	if len(required) > 0 {
		fmt.Fprintln(w, "\nREQUIRED parameters:")
		for _, p := range required {
			fmt.Fprintf(w, "  %s\n", formatParameter(p))
		}
	}
	if len(optional) > 0 {
		fmt.Fprintln(w, "\nOPTIONAL parameters:")
		for _, p := range optional {
			fmt.Fprintf(w, "  %s\n", formatParameter(p))
		}
	}

	fmt.Fprintln(w, "\nExample usage:")
	renderExampleUsage(w, name, required, optional)
}

// formatParameter renders one parameter record:
//
//	@text | nvarchar(MAX) | REQUIRED | OUTPUT | default=N'...'
func formatParameter(p catalog.Parameter) string {
	parts := []string{"@" + p.Name}

	switch {
	case p.Size == "MAX" || p.Size == "-1":
		parts = append(parts, fmt.Sprintf("%s(MAX)", p.Type))
	case p.Size != "":
		parts = append(parts, fmt.Sprintf("%s(%s)", p.Type, p.Size))
	default:
		parts = append(parts, p.Type)
	}

	if p.Required {
		parts = append(parts, "REQUIRED")
	} else {
		parts = append(parts, "optional")
	}
	if p.Output {
		parts = append(parts, "OUTPUT")
	}
	if p.Default != nil && !p.Required {
		parts = append(parts, "default="+*p.Default)
	}

	return strings.Join(parts, " | ")
}

// renderExampleUsage writes a skeleton EXEC statement: DECLARE lines for
// OUTPUT parameters, then the required parameters. The last line ends in
// a comma when optional parameters remain to be filled in.
func renderExampleUsage(w io.Writer, name string, required, optional []catalog.Parameter) {
	var outputs []catalog.Parameter
	for _, p := range append(append([]catalog.Parameter{}, required...), optional...) {
		if p.Output {
			outputs = append(outputs, p)
		}
	}

	for _, p := range outputs {
		fmt.Fprintf(w, "DECLARE @%s NVARCHAR(MAX);\n", p.Name)
	}
	if len(outputs) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "EXEC %s\n", name)
	for i, p := range required {
		value, suffix := "N'value'", ""
		if p.Output {
			value, suffix = "@"+p.Name, " OUT"
		}
		terminator := ";"
		if i < len(required)-1 || len(optional) > 0 {
			terminator = ","
		}
		fmt.Fprintf(w, "    @%s = %s%s%s\n", p.Name, value, suffix, terminator)
	}
}
