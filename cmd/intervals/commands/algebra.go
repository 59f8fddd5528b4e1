package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/setalg"
	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
	"github.com/Sumatoshi-tech/intervals/pkg/render"
)

// Algebra operations.
const (
	opUnion        = "union"
	opIntersection = "intersection"
	opDifference   = "difference"
	opXor          = "xor"
	opComplement   = "complement"
	opNormalize    = "normalize"
	opEqual        = "equal"
)

const boundsLen = 2

type algebraCommand struct {
	opts   *GlobalOptions
	op     string
	a, b   string
	bounds []int
}

// NewAlgebraCommand creates the set algebra command.
func NewAlgebraCommand(opts *GlobalOptions) *cobra.Command {
	ac := &algebraCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "algebra <document|->",
		Short: "Set algebra over two interval lists",
		Long: `Combine half-open interval lists as point sets.

Operations:
  union         points in A or B (all lists when --a/--b are omitted)
  intersection  points in both A and B
  difference    points in A but not B
  xor           points in exactly one of A and B
  complement    points of --bounds not in A
  normalize     A sorted with overlapping and touching intervals merged
  equal         whether A and B cover the same points`,
		Args: cobra.ExactArgs(1),
		RunE: ac.run,
	}

	cmd.Flags().StringVar(&ac.op, "op", opUnion, "operation: union, intersection, difference, xor, complement, normalize, equal")
	cmd.Flags().StringVar(&ac.a, "a", "", "name of list A (default: first list)")
	cmd.Flags().StringVar(&ac.b, "b", "", "name of list B (default: second list)")
	cmd.Flags().IntSliceVar(&ac.bounds, "bounds", nil, "complement bounds as start,end")

	return cmd
}

func (ac *algebraCommand) run(cmd *cobra.Command, args []string) error {
	return withSession(cmd, ac.opts, observability.ModeCLI, func(ctx context.Context, s *session) error {
		doc, err := s.load(ctx, args[0])
		if err != nil {
			return err
		}

		switch ac.op {
		case opUnion:
			if ac.a == "" && ac.b == "" && len(doc.Lists) != 2 {
				lists := doc.PlainLists()

				return ac.emit(ctx, s, "Union of "+strconv.Itoa(len(lists))+" lists", countIntervals(lists...), func() []interval.Interval {
					return setalg.UnionAll(lists...)
				})
			}

			return ac.binary(ctx, s, doc, "Union", setalg.Union)
		case opIntersection:
			return ac.binary(ctx, s, doc, "Intersection", setalg.Intersection)
		case opDifference:
			return ac.binary(ctx, s, doc, "Difference", setalg.Difference)
		case opXor:
			return ac.binary(ctx, s, doc, "Symmetric difference", setalg.SymmetricDifference)
		case opEqual:
			return ac.equal(ctx, s, doc)
		case opComplement, opNormalize:
			return ac.unary(ctx, s, doc)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOp, ac.op)
		}
	})
}

func (ac *algebraCommand) binary(
	ctx context.Context, s *session, doc *intervalio.Document, title string,
	fn func(a, b []interval.Interval) []interval.Interval,
) error {
	left, right, err := pickPair(doc, ac.a, ac.b)
	if err != nil {
		return err
	}

	a, b := left.Plain(), right.Plain()
	label := fmt.Sprintf("%s of %s and %s", title, left.Label(0), right.Label(1))

	return ac.emit(ctx, s, label, len(a)+len(b), func() []interval.Interval {
		return fn(a, b)
	})
}

func (ac *algebraCommand) unary(ctx context.Context, s *session, doc *intervalio.Document) error {
	list, err := pickList(doc, ac.a)
	if err != nil {
		return err
	}

	a := list.Plain()

	if ac.op == opNormalize {
		return ac.emit(ctx, s, "Normalized "+list.Label(0), len(a), func() []interval.Interval {
			return interval.Normalize(a)
		})
	}

	if len(ac.bounds) != boundsLen {
		return fmt.Errorf("%w: got %v", ErrBounds, ac.bounds)
	}

	bounds := interval.New(ac.bounds[0], ac.bounds[1])

	return ac.emit(ctx, s, "Complement of "+list.Label(0)+" in "+bounds.String(), len(a), func() []interval.Interval {
		return setalg.Complement(a, bounds)
	})
}

func (ac *algebraCommand) equal(ctx context.Context, s *session, doc *intervalio.Document) error {
	left, right, err := pickPair(doc, ac.a, ac.b)
	if err != nil {
		return err
	}

	a, b := left.Plain(), right.Plain()

	var equal bool

	runErr := s.run(ctx, ac.op, len(a)+len(b), func(context.Context) (int, error) {
		equal = setalg.Equal(a, b)

		return 0, nil
	})
	if runErr != nil {
		return runErr
	}

	return s.renderer.Render(render.Report{
		Title: fmt.Sprintf("%s = %s", left.Label(0), right.Label(1)),
		Summary: []render.Stat{
			{Label: "Equal", Value: strconv.FormatBool(equal)},
			{Label: "Measure " + left.Label(0), Value: s.renderer.Int(setalg.Measure(a))},
			{Label: "Measure " + right.Label(1), Value: s.renderer.Int(setalg.Measure(b))},
		},
		Data: map[string]bool{"equal": equal},
	})
}

func (ac *algebraCommand) emit(ctx context.Context, s *session, title string, inputs int, fn func() []interval.Interval) error {
	var result []interval.Interval

	runErr := s.run(ctx, ac.op, inputs, func(context.Context) (int, error) {
		result = fn()

		return len(result), nil
	})
	if runErr != nil {
		return runErr
	}

	return s.renderer.Intervals(title, result)
}
