package commands

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
)

// Sentinel errors shared by commands.
var (
	ErrUnknownOp   = errors.New("unknown operation")
	ErrListCount   = errors.New("wrong number of lists")
	ErrBounds      = errors.New("bounds must be two integers start,end")
	ErrInvalidFlag = errors.New("conflicting flags")
)

func countIntervals(lists ...[]interval.Interval) int {
	n := 0

	for _, l := range lists {
		n += len(l)
	}

	return n
}

// pickList returns the named list, or the first one when name is empty.
func pickList(doc *intervalio.Document, name string) (intervalio.List, error) {
	if name != "" {
		return doc.List(name)
	}

	if len(doc.Lists) == 0 {
		return intervalio.List{}, fmt.Errorf("%w: document has no lists", ErrListCount)
	}

	return doc.Lists[0], nil
}

// pickPair returns lists a and b, defaulting to the first two lists.
func pickPair(doc *intervalio.Document, a, b string) (intervalio.List, intervalio.List, error) {
	if a == "" && b == "" {
		if len(doc.Lists) < 2 {
			return intervalio.List{}, intervalio.List{}, fmt.Errorf("%w: need 2, document has %d", ErrListCount, len(doc.Lists))
		}

		return doc.Lists[0], doc.Lists[1], nil
	}

	left, err := doc.List(a)
	if err != nil {
		return intervalio.List{}, intervalio.List{}, err
	}

	right, err := doc.List(b)
	if err != nil {
		return intervalio.List{}, intervalio.List{}, err
	}

	return left, right, nil
}
