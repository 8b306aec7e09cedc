// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/tropy/ttp/internal/config"
	"github.com/tropy/ttp/internal/jsonfmt"
	"github.com/tropy/ttp/internal/template"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Section labels, in rendering order.
const (
	LabelRemovedFields = "Removed fields"
	LabelAddedFields   = "Added fields"
	LabelRemovedData   = "Removed data"
	LabelAddedData     = "Added data"
	LabelChangedData   = "Changed data"
	LabelOrderChanges  = "Order changes"
)

// emptyValue marks an empty section or cell.
const emptyValue = "-"

// Options controls Render.
type Options struct {
	Format      string
	Color       bool
	Titles      bool
	Padding     int
	Unchanged   bool
	SummaryOnly bool
}

// Render writes r to w in the requested format. An empty format means text.
func Render(w io.Writer, r *template.Report, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "", FormatText:
		if opts.SummaryOnly {
			return writeSummaryText(w, r.Summary(), opts)
		}
		return writeText(w, r, opts)
	case FormatJSON:
		if opts.SummaryOnly {
			return writeSummaryJSON(w, r.Summary())
		}
		return writeJSON(w, r)
	case FormatYAML:
		if opts.SummaryOnly {
			return writeSummaryYAML(w, r.Summary())
		}
		return writeYAML(w, r)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// section is one titled table of the text rendering.
type section struct {
	label   string
	headers []string
	rows    [][]string
}

func writeText(w io.Writer, r *template.Report, opts Options) error {
	sections := []section{
		{LabelRemovedFields, []string{"property", "field"}, fieldRows(r.RemovedFields())},
		{LabelAddedFields, []string{"property", "field"}, fieldRows(r.AddedFields())},
		{LabelRemovedData, []string{"property", "attribute", "value"}, attrRows(r.RemovedData())},
		{LabelAddedData, []string{"property", "attribute", "value"}, attrRows(r.AddedData())},
		{LabelChangedData, []string{"property", "attribute", "old", "new"}, changeRows(r.ChangedData())},
		{LabelOrderChanges, []string{"property", "from", "to", "shift"}, orderRows(r.OrderChanges(), opts.Unchanged)},
	}

	headerStyle := titleStyle(opts)
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, headerStyle.Render(s.label))
		if len(s.rows) == 0 {
			fmt.Fprintln(w, emptyValue)
			continue
		}
		TableWriter(w, s.headers, s.rows, opts)
	}
	return nil
}

func writeSummaryText(w io.Writer, s template.Summary, opts Options) error {
	rows := [][]string{
		{LabelRemovedFields, strconv.Itoa(s.RemovedFields)},
		{LabelAddedFields, strconv.Itoa(s.AddedFields)},
		{LabelRemovedData, strconv.Itoa(s.RemovedData)},
		{LabelAddedData, strconv.Itoa(s.AddedData)},
		{LabelChangedData, strconv.Itoa(s.ChangedData)},
		{LabelOrderChanges, strconv.Itoa(s.Moved)},
	}
	TableWriter(w, []string{"section", "count"}, rows, opts)
	return nil
}

func fieldRows(fields []template.Field) [][]string {
	var rows [][]string
	for _, f := range fields {
		p, _ := f.Property()
		rows = append(rows, []string{p, fieldCell(f)})
	}
	return rows
}

func attrRows(groups []template.PropertyAttrs) [][]string {
	var rows [][]string
	for _, g := range groups {
		for _, a := range g.Attrs {
			rows = append(rows, []string{g.Property, a.Name, cell(a)})
		}
	}
	return rows
}

func changeRows(groups []template.PropertyChanges) [][]string {
	var rows [][]string
	for _, g := range groups {
		for _, c := range g.Changes {
			rows = append(rows, []string{g.Property, c.Name, cell(c.Old), cell(c.New)})
		}
	}
	return rows
}

// orderRows lists order entries with 1-based ordinal positions. Zero shifts
// are dropped unless unchanged is set.
func orderRows(changes []template.OrderChange, unchanged bool) [][]string {
	var rows [][]string
	for _, oc := range changes {
		shift, ok := oc.Shift()
		if ok && shift == 0 && !unchanged {
			continue
		}
		from, shiftText := emptyValue, emptyValue
		if ok {
			from = humanize.Ordinal(oc.FromIndex + 1)
			shiftText = fmt.Sprintf("%+d", shift)
			if shift == 0 {
				shiftText = "0"
			}
		}
		rows = append(rows, []string{oc.Property, from, humanize.Ordinal(oc.ToIndex + 1), shiftText})
	}
	return rows
}

// cell renders an attribute value on one line.
func cell(a template.Attr) string {
	if b, err := jsonfmt.Compact([]byte(a.Raw)); err == nil {
		return string(b)
	}
	return a.Raw
}

// fieldCell renders a whole field on one line.
func fieldCell(f template.Field) string {
	if b, err := jsonfmt.Compact([]byte(f.JSON())); err == nil {
		return string(b)
	}
	return f.JSON()
}

// titleStyle styles section labels. Without color they print as plain text.
func titleStyle(opts Options) lipgloss.Style {
	style := lipgloss.NewStyle().Align(lipgloss.Left)
	if opts.Color {
		header, _, _ := getColors("colors")
		style = style.Bold(true).Foreground(header)
	}
	return style
}

// TableWriter renders rows in a tabular form honoring color, titles and
// padding options.
func TableWriter(w io.Writer, headers []string, rows [][]string, opts Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering, falling back
// to defaults picked for the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
