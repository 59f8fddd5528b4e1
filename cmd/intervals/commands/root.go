// Package commands implements CLI command handlers for intervals.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intervals/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	Verbose    bool
	Quiet      bool
}

// NewRootCommand builds the intervals command tree.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "intervals",
		Short: "Interval algebra toolkit",
		Long: `intervals runs set algebra, graph coloring, multi-list intersection and
disjoint-set replay over interval documents written in YAML or JSON.

Commands:
  algebra   Union, intersection, difference and complement of two lists
  color     Minimum coloring of one list (weighted, constrained or online)
  multi     k-way intersection, threshold coverage and coverage profile
  store     Replay add/remove operations into a disjoint interval store
  contain   Covered intervals and overlapping pairs of one list
  validate  Check a document against the schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default .intervals.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "", "output format: table, json, yaml (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(
		NewAlgebraCommand(opts),
		NewColorCommand(opts),
		NewMultiCommand(opts),
		NewStoreCommand(opts),
		NewContainCommand(opts),
		NewValidateCommand(opts),
		NewSchemaCommand(),
		versionCmd(),
	)

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "intervals %s\n", version.String())
		},
	}
}
