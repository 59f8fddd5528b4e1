// Package render prints interval results as terminal tables, JSON or YAML,
// and draws coverage profiles as HTML charts.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an output format other than table, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const yamlIndent = 2

// Options control how a Renderer prints.
type Options struct {
	Format   string
	Color    bool
	Humanize bool
}

// Renderer writes reports to one writer in one format.
type Renderer struct {
	w    io.Writer
	opts Options

	title  *color.Color
	accent *color.Color
	muted  *color.Color
}

// Report is one printable result. Header, Rows and Summary feed the table
// form; Data is encoded as-is for JSON and YAML.
type Report struct {
	Title   string
	Header  table.Row
	Rows    []table.Row
	Summary []Stat
	Data    any
}

// Stat is a labelled summary value printed under a table.
type Stat struct {
	Label string
	Value string
}

// New returns a Renderer writing to w.
func New(w io.Writer, opts Options) (*Renderer, error) {
	switch opts.Format {
	case "":
		opts.Format = FormatTable
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	r := &Renderer{
		w:      w,
		opts:   opts,
		title:  color.New(color.FgCyan, color.Bold),
		accent: color.New(color.FgGreen),
		muted:  color.New(color.FgHiBlack),
	}

	for _, c := range []*color.Color{r.title, r.accent, r.muted} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r, nil
}

// Format returns the output format in use.
func (r *Renderer) Format() string {
	return r.opts.Format
}

// Render writes rep in the configured format.
func (r *Renderer) Render(rep Report) error {
	switch r.opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")

		encodeErr := enc.Encode(rep.Data)
		if encodeErr != nil {
			return fmt.Errorf("encode json: %w", encodeErr)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(yamlIndent)

		encodeErr := enc.Encode(rep.Data)
		if encodeErr != nil {
			return fmt.Errorf("encode yaml: %w", encodeErr)
		}

		closeErr := enc.Close()
		if closeErr != nil {
			return fmt.Errorf("encode yaml: %w", closeErr)
		}

		return nil
	default:
		return r.renderTable(rep)
	}
}

func (r *Renderer) renderTable(rep Report) error {
	if rep.Title != "" {
		_, err := r.title.Fprintln(r.w, rep.Title)
		if err != nil {
			return fmt.Errorf("write title: %w", err)
		}
	}

	if len(rep.Rows) > 0 {
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.Style().Options.SeparateRows = false
		tbl.Style().Options.DrawBorder = false
		tbl.AppendHeader(rep.Header)
		tbl.AppendRows(rep.Rows)

		_, err := fmt.Fprintln(r.w, tbl.Render())
		if err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	} else {
		_, err := r.muted.Fprintln(r.w, "(empty)")
		if err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}

	for _, s := range rep.Summary {
		_, err := fmt.Fprintf(r.w, "%s: %s\n", s.Label, r.accent.Sprint(s.Value))
		if err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	return nil
}

// Int formats n, with thousands separators when humanizing.
func (r *Renderer) Int(n int) string {
	if r.opts.Humanize {
		return humanize.Comma(int64(n))
	}

	return strconv.Itoa(n)
}

// Uint formats n, with thousands separators when humanizing.
func (r *Renderer) Uint(n uint64) string {
	if r.opts.Humanize {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}

	return strconv.FormatUint(n, 10)
}
