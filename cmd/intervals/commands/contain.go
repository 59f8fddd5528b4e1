package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/containment"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
)

const opContain = "contain"

// NewContainCommand creates the containment report command.
func NewContainCommand(opts *GlobalOptions) *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "contain <document|->",
		Short: "Report covered intervals and overlapping pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, observability.ModeCLI, func(ctx context.Context, s *session) error {
				doc, err := s.load(ctx, args[0])
				if err != nil {
					return err
				}

				list, err := pickList(doc, listName)
				if err != nil {
					return err
				}

				plain := list.Plain()

				var (
					kept    []interval.Interval
					removed int
					pairs   []containment.Pair
				)

				runErr := s.run(ctx, opContain, len(plain), func(context.Context) (int, error) {
					kept, removed = containment.RemoveCovered(plain)
					pairs = containment.OverlappingPairs(plain)

					return len(kept), nil
				})
				if runErr != nil {
					return runErr
				}

				return s.renderer.Containment(kept, removed, pairs)
			})
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "name of the list (default: first list)")

	return cmd
}
