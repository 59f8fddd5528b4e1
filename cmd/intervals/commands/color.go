package commands

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/coloring"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
)

// Coloring variants, also used as operation names.
const (
	variantColor       = "color"
	variantWeighted    = "color.weighted"
	variantConstrained = "color.constrained"
	variantOnline      = "color.online"
)

type colorCommand struct {
	opts        *GlobalOptions
	list        string
	weighted    bool
	constrained bool
	online      bool
}

// NewColorCommand creates the interval graph coloring command.
func NewColorCommand(opts *GlobalOptions) *cobra.Command {
	cc := &colorCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "color <document|->",
		Short: "Color a list so overlapping intervals differ",
		Long: `Assign each interval of one list a color so that overlapping intervals get
different colors, using as few colors as the deepest overlap requires.

  --weighted     balance interval weights across colors
  --constrained  also separate the index pairs under "constraints"
  --online       color in start order with the online colorer`,
		Args: cobra.ExactArgs(1),
		RunE: cc.run,
	}

	cmd.Flags().StringVarP(&cc.list, "list", "l", "", "name of the list to color (default: first list)")
	cmd.Flags().BoolVar(&cc.weighted, "weighted", false, "balance weights across colors")
	cmd.Flags().BoolVar(&cc.constrained, "constrained", false, "honor the document's constraints")
	cmd.Flags().BoolVar(&cc.online, "online", false, "use the online colorer")

	return cmd
}

func (cc *colorCommand) variant() (string, error) {
	variants := 0

	for _, on := range []bool{cc.weighted, cc.constrained, cc.online} {
		if on {
			variants++
		}
	}

	switch {
	case variants > 1:
		return "", fmt.Errorf("%w: --weighted, --constrained and --online are exclusive", ErrInvalidFlag)
	case cc.weighted:
		return variantWeighted, nil
	case cc.constrained:
		return variantConstrained, nil
	case cc.online:
		return variantOnline, nil
	default:
		return variantColor, nil
	}
}

func (cc *colorCommand) run(cmd *cobra.Command, args []string) error {
	variant, err := cc.variant()
	if err != nil {
		return err
	}

	return withSession(cmd, cc.opts, observability.ModeCLI, func(ctx context.Context, s *session) error {
		doc, loadErr := s.load(ctx, args[0])
		if loadErr != nil {
			return loadErr
		}

		list, pickErr := pickList(doc, cc.list)
		if pickErr != nil {
			return pickErr
		}

		if variant == variantWeighted {
			return cc.runWeighted(ctx, s, list)
		}

		plain := list.Plain()

		var assignment coloring.Assignment

		runErr := s.run(ctx, variant, len(plain), func(ctx context.Context) (int, error) {
			var colorErr error

			switch variant {
			case variantConstrained:
				assignment, colorErr = coloring.ColorConstrained(plain, doc.ColoringConstraints())
			case variantOnline:
				assignment, colorErr = colorOnline(plain)
			default:
				assignment, colorErr = coloring.Color(plain)
			}

			if colorErr != nil {
				return 0, colorErr
			}

			trace.SpanFromContext(ctx).SetAttributes(attribute.Int(observability.AttrColors, assignment.Count))
			s.metrics.RecordColors(ctx, variant, assignment.Count)
			s.logger.DebugContext(ctx, "colored", "colors", assignment.Count, "max_overlap", coloring.MaxOverlap(plain))

			return len(assignment.Colors), nil
		})
		if runErr != nil {
			return runErr
		}

		return s.renderer.Coloring(plain, assignment)
	})
}

func (cc *colorCommand) runWeighted(ctx context.Context, s *session, list intervalio.List) error {
	items := list.Weighted()

	var assignment coloring.WeightedAssignment

	runErr := s.run(ctx, variantWeighted, len(items), func(ctx context.Context) (int, error) {
		var colorErr error

		assignment, colorErr = coloring.ColorWeighted(items)
		if colorErr != nil {
			return 0, colorErr
		}

		trace.SpanFromContext(ctx).SetAttributes(attribute.Int(observability.AttrColors, assignment.Count))
		s.metrics.RecordColors(ctx, variantWeighted, assignment.Count)

		return len(assignment.Colors), nil
	})
	if runErr != nil {
		return runErr
	}

	return s.renderer.WeightedColoring(items, assignment)
}

// colorOnline feeds list to a Dynamic colorer in start order and maps the
// colors back to input order.
func colorOnline(list []interval.Interval) (coloring.Assignment, error) {
	order := make([]int, len(list))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(list[a].Start, list[b].Start)
	})

	dyn := coloring.NewDynamic()
	colors := make([]int, len(list))

	for _, i := range order {
		_, c, err := dyn.Add(list[i])
		if err != nil {
			return coloring.Assignment{}, fmt.Errorf("interval %d: %w", i, err)
		}

		colors[i] = c
	}

	return coloring.Assignment{Colors: colors, Count: dyn.Allocated()}, nil
}
