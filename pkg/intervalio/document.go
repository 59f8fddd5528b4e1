// Package intervalio reads interval documents: named interval lists,
// coloring constraints and store operations, written in YAML or JSON.
//
//	lists:
//	  - name: a
//	    intervals: [[1, 5], {start: 7, end: 9, weight: 3}]
//	constraints: [[0, 1]]
//	ops:
//	  - {op: addRange, start: 1, end: 3}
//	  - {op: remove, value: 2}
package intervalio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/intervals/pkg/alg/coloring"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/diset"
	"github.com/Sumatoshi-tech/intervals/pkg/alg/interval"
)

// ErrUnknownList is returned by Document.List for a name not in the document.
var ErrUnknownList = errors.New("unknown list")

// DefaultWeight is the weight of an interval written without one.
const DefaultWeight = 1

// Store operation kinds.
const (
	OpAdd         = "add"
	OpAddRange    = "addRange"
	OpRemove      = "remove"
	OpRemoveRange = "removeRange"
)

// Document is a decoded interval document.
type Document struct {
	Lists       []List   `yaml:"lists"`
	Constraints [][2]int `yaml:"constraints"`
	Ops         []Op     `yaml:"ops"`
}

// List is a named interval list.
type List struct {
	Name      string  `yaml:"name"`
	Intervals []Entry `yaml:"intervals"`
}

// Entry is one interval of a list, written as [start, end] or as a
// mapping with start, end and an optional weight.
type Entry struct {
	interval.Weighted
}

// Op is one store operation, replayed in document order.
type Op struct {
	Op    string `yaml:"op"`
	Value int    `yaml:"value"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// UnmarshalYAML accepts both the pair and the mapping form.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair [2]int

		decodeErr := node.Decode(&pair)
		if decodeErr != nil {
			return fmt.Errorf("line %d: %w", node.Line, decodeErr)
		}

		e.Weighted = interval.Weighted{Interval: interval.New(pair[0], pair[1]), Weight: DefaultWeight}

		return nil
	case yaml.MappingNode:
		var raw struct {
			Start  int  `yaml:"start"`
			End    int  `yaml:"end"`
			Weight *int `yaml:"weight"`
		}

		decodeErr := node.Decode(&raw)
		if decodeErr != nil {
			return fmt.Errorf("line %d: %w", node.Line, decodeErr)
		}

		weight := DefaultWeight
		if raw.Weight != nil {
			weight = *raw.Weight
		}

		e.Weighted = interval.Weighted{Interval: interval.New(raw.Start, raw.End), Weight: weight}

		return nil
	default:
		return fmt.Errorf("line %d: interval must be a pair or a mapping", node.Line)
	}
}

// Parse validates data against the schema and decodes it.
func Parse(data []byte) (*Document, error) {
	validateErr := Validate(data)
	if validateErr != nil {
		return nil, validateErr
	}

	var doc Document

	unmarshalErr := yaml.Unmarshal(data, &doc)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, unmarshalErr)
	}

	return &doc, nil
}

// Read parses a document from r.
func Read(r io.Reader) (*Document, error) {
	data, readErr := io.ReadAll(r)
	if readErr != nil {
		return nil, fmt.Errorf("read document: %w", readErr)
	}

	return Parse(data)
}

// Load parses the document at path; "-" reads standard input.
func Load(path string) (*Document, error) {
	if path == "-" {
		return Read(os.Stdin)
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("read document: %w", readErr)
	}

	doc, parseErr := Parse(data)
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", path, parseErr)
	}

	return doc, nil
}

// List returns the list called name.
func (d *Document) List(name string) (List, error) {
	for _, l := range d.Lists {
		if l.Name == name {
			return l, nil
		}
	}

	return List{}, fmt.Errorf("%w: %q", ErrUnknownList, name)
}

// Label returns the list's name, or its position when unnamed.
func (l List) Label(index int) string {
	if l.Name != "" {
		return l.Name
	}

	return fmt.Sprintf("#%d", index)
}

// Plain returns the intervals without weights.
func (l List) Plain() []interval.Interval {
	out := make([]interval.Interval, len(l.Intervals))

	for i, e := range l.Intervals {
		out[i] = e.Interval
	}

	return out
}

// Weighted returns the intervals with their weights.
func (l List) Weighted() []interval.Weighted {
	out := make([]interval.Weighted, len(l.Intervals))

	for i, e := range l.Intervals {
		out[i] = e.Weighted
	}

	return out
}

// PlainLists returns every list without weights, in document order.
func (d *Document) PlainLists() [][]interval.Interval {
	out := make([][]interval.Interval, len(d.Lists))

	for i, l := range d.Lists {
		out[i] = l.Plain()
	}

	return out
}

// WeightedLists returns every list with weights, in document order.
func (d *Document) WeightedLists() [][]interval.Weighted {
	out := make([][]interval.Weighted, len(d.Lists))

	for i, l := range d.Lists {
		out[i] = l.Weighted()
	}

	return out
}

// ColoringConstraints converts the constraint pairs.
func (d *Document) ColoringConstraints() []coloring.Constraint {
	out := make([]coloring.Constraint, len(d.Constraints))

	for i, c := range d.Constraints {
		out[i] = coloring.Constraint{A: c[0], B: c[1]}
	}

	return out
}

// Apply runs the operation against store.
func (o Op) Apply(store *diset.Store) {
	switch o.Op {
	case OpAdd:
		store.AddNum(o.Value)
	case OpAddRange:
		store.AddRange(o.Start, o.End)
	case OpRemove:
		store.RemoveNum(o.Value)
	case OpRemoveRange:
		store.RemoveRange(o.Start, o.End)
	}
}

// Replay applies ops in order to a fresh store and returns it.
func Replay(ops []Op) *diset.Store {
	store := diset.New()

	for _, o := range ops {
		o.Apply(store)
	}

	return store
}
