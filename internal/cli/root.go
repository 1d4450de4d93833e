// Package cli implements the tsqlnav command tree.
//
// The commands are a thin shell: URL decoding lives in urlparse, statement
// derivation in queryplan, and catalog lookups in catalog. This package
// only owns argument handling, configuration, and display formatting.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is populated from the YAML config file during
	// PersistentPreRunE, before any command runs.
	Config *Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tsqlnav CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tsqlnav",
		Short: "TSQL.APP navigator toolbox",
		Long: `Decode TSQL.APP navigator URLs into structured query intent, derive the
metadata lookups they imply, and query the stored procedure catalog.`,
	}

	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		opts.Config = cfg

		// The config file may set the format; an explicit flag wins.
		if cfg.Format != "" && !cmd.PersistentFlags().Changed("format") {
			opts.Format = cfg.Format
		}

		if !isValidFormat(opts.Format) {
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		}
		return nil
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+DefaultConfigFile+" if present)")

	// Add subcommands
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewProcCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
