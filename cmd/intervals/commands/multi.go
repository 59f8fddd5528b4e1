package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/multilist"
	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
	"github.com/Sumatoshi-tech/intervals/pkg/render"
)

// Multi-list operation names.
const (
	opMultiIntersect = "multi.intersection"
	opMultiAtLeast   = "multi.at_least"
	opMultiUnion     = "multi.union"
	opMultiWeighted  = "multi.weighted"
	opMultiProfile   = "multi.profile"
)

type multiCommand struct {
	opts     *GlobalOptions
	atLeast  int
	weighted bool
	union    bool
	profile  bool
	plot     string
}

// NewMultiCommand creates the multi-list command.
func NewMultiCommand(opts *GlobalOptions) *cobra.Command {
	mc := &multiCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "multi <document|->",
		Short: "Intersect many interval lists at once",
		Long: `Combine every list of a document.

By default prints the points covered by all lists. --at-least m prints the
points covered by at least m lists, --union the points covered by any,
--weighted the common points with the summed weight of the intervals over
them, and --profile how many lists cover each segment. --plot additionally
writes the coverage profile as an HTML chart.`,
		Args: cobra.ExactArgs(1),
		RunE: mc.run,
	}

	cmd.Flags().IntVar(&mc.atLeast, "at-least", 0, "minimum number of lists covering a point")
	cmd.Flags().BoolVar(&mc.weighted, "weighted", false, "sum interval weights over the common segments")
	cmd.Flags().BoolVar(&mc.union, "union", false, "points covered by any list")
	cmd.Flags().BoolVar(&mc.profile, "profile", false, "print the coverage profile")
	cmd.Flags().StringVar(&mc.plot, "plot", "", "write the coverage profile chart to this HTML file")

	return cmd
}

func (mc *multiCommand) operation() (string, error) {
	var ops []string

	if mc.atLeast != 0 {
		ops = append(ops, opMultiAtLeast)
	}

	if mc.weighted {
		ops = append(ops, opMultiWeighted)
	}

	if mc.union {
		ops = append(ops, opMultiUnion)
	}

	if mc.profile {
		ops = append(ops, opMultiProfile)
	}

	switch len(ops) {
	case 0:
		return opMultiIntersect, nil
	case 1:
		return ops[0], nil
	default:
		return "", fmt.Errorf("%w: --at-least, --weighted, --union and --profile are exclusive", ErrInvalidFlag)
	}
}

func (mc *multiCommand) run(cmd *cobra.Command, args []string) error {
	op, err := mc.operation()
	if err != nil {
		return err
	}

	return withSession(cmd, mc.opts, observability.ModeCLI, func(ctx context.Context, s *session) error {
		doc, loadErr := s.load(ctx, args[0])
		if loadErr != nil {
			return loadErr
		}

		lists := doc.PlainLists()
		title := fmt.Sprintf("%s of %d lists", op, len(lists))

		switch op {
		case opMultiWeighted:
			runErr := mc.runWeighted(ctx, s, doc, title)
			if runErr != nil {
				return runErr
			}
		case opMultiProfile:
			segs, runErr := mc.profileOf(ctx, s, lists)
			if runErr != nil {
				return runErr
			}

			renderErr := s.renderer.Profile(title, segs)
			if renderErr != nil {
				return renderErr
			}
		default:
			var result []interval.Interval

			runErr := s.run(ctx, op, countIntervals(lists...), func(ctx context.Context) (int, error) {
				var opErr error

				switch op {
				case opMultiAtLeast:
					trace.SpanFromContext(ctx).SetAttributes(attribute.Int(observability.AttrThreshold, mc.atLeast))
					result, opErr = multilist.AtLeast(lists, mc.atLeast)
				case opMultiUnion:
					result = multilist.Union(lists...)
				default:
					result = multilist.Intersection(lists...)
				}

				return len(result), opErr
			})
			if runErr != nil {
				return runErr
			}

			renderErr := s.renderer.Intervals(title, result)
			if renderErr != nil {
				return renderErr
			}
		}

		if mc.plot == "" {
			return nil
		}

		return mc.writePlot(ctx, s, lists)
	})
}

func (mc *multiCommand) runWeighted(ctx context.Context, s *session, doc *intervalio.Document, title string) error {
	lists := doc.WeightedLists()

	var segs []multilist.WeightedSegment

	runErr := s.run(ctx, opMultiWeighted, countIntervals(doc.PlainLists()...), func(context.Context) (int, error) {
		segs = multilist.WeightedIntersection(lists)

		return len(segs), nil
	})
	if runErr != nil {
		return runErr
	}

	return s.renderer.WeightedSegments(title, segs)
}

func (mc *multiCommand) profileOf(ctx context.Context, s *session, lists [][]interval.Interval) ([]multilist.Segment, error) {
	var segs []multilist.Segment

	err := s.run(ctx, opMultiProfile, countIntervals(lists...), func(context.Context) (int, error) {
		segs = multilist.Profile(lists...)

		return len(segs), nil
	})

	return segs, err
}

func (mc *multiCommand) writePlot(ctx context.Context, s *session, lists [][]interval.Interval) error {
	segs, err := mc.profileOf(ctx, s, lists)
	if err != nil {
		return err
	}

	f, err := os.Create(mc.plot)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	writeErr := render.WriteProfileChart(f, "Coverage of "+strconv.Itoa(len(lists))+" lists", segs)

	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}

	if closeErr != nil {
		return fmt.Errorf("close plot file: %w", closeErr)
	}

	s.logger.InfoContext(ctx, "wrote coverage chart", "segments", len(segs))

	return nil
}
