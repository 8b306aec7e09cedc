// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tropy/ttp/internal/jsonfmt"
	"github.com/tropy/ttp/internal/template"
)

// Status markers shown in front of each property.
const (
	MarkAdded     = "+"
	MarkRemoved   = "-"
	MarkChanged   = "~"
	MarkMoved     = ">"
	MarkUnchanged = " "
)

var markStyles = map[string]lipgloss.Style{
	MarkAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00a000")),
	MarkRemoved: lipgloss.NewStyle().Foreground(lipgloss.Color("#d00000")),
	MarkChanged: lipgloss.NewStyle().Foreground(lipgloss.Color("#b08800")),
	MarkMoved:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0088a0")),
}

// Browse runs an interactive list of every property in r. Properties of the
// newer version come first, in its order, followed by removed ones.
func Browse(r *template.Report, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(newModel(r), opts...).Run()
	return err
}

type item struct {
	property string
	mark     string
	details  []string
}

type model struct {
	items     []item
	visible   []int
	cursor    int
	expanded  map[string]bool
	filter    textinput.Model
	filtering bool
}

func newModel(r *template.Report) model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 256

	m := model{
		items:    buildItems(r),
		expanded: make(map[string]bool),
		filter:   ti,
	}
	m.applyFilter()
	return m
}

func buildItems(r *template.Report) []item {
	var items []item
	for _, oc := range r.OrderChanges() {
		it := item{property: oc.Property, mark: MarkUnchanged}

		if f, ok := r.AddedField(oc.Property); ok {
			it.mark = MarkAdded
			for _, a := range f.Attrs() {
				it.details = append(it.details, MarkAdded+" "+a.Name+": "+compact(a))
			}
			items = append(items, it)
			continue
		}

		removed, _ := r.RemovedDataFor(oc.Property)
		for _, a := range removed {
			it.details = append(it.details, MarkRemoved+" "+a.Name+": "+compact(a))
		}
		added, _ := r.AddedDataFor(oc.Property)
		for _, a := range added {
			it.details = append(it.details, MarkAdded+" "+a.Name+": "+compact(a))
		}
		changed, _ := r.ChangedDataFor(oc.Property)
		for _, c := range changed {
			it.details = append(it.details, fmt.Sprintf("%s %s: %s -> %s", MarkChanged, c.Name, compact(c.Old), compact(c.New)))
		}
		if len(it.details) > 0 {
			it.mark = MarkChanged
		}

		if shift, _ := oc.Shift(); shift != 0 {
			if it.mark == MarkUnchanged {
				it.mark = MarkMoved
			}
			it.details = append(it.details, fmt.Sprintf("%s moved: %s -> %s (%+d)", MarkMoved,
				humanize.Ordinal(oc.FromIndex+1), humanize.Ordinal(oc.ToIndex+1), shift))
		}
		items = append(items, it)
	}

	for _, f := range r.RemovedFields() {
		p, _ := f.Property()
		it := item{property: p, mark: MarkRemoved}
		for _, a := range f.Attrs() {
			it.details = append(it.details, MarkRemoved+" "+a.Name+": "+compact(a))
		}
		items = append(items, it)
	}
	return items
}

func compact(a template.Attr) string {
	if b, err := jsonfmt.Compact([]byte(a.Raw)); err == nil {
		return string(b)
	}
	return a.Raw
}

// applyFilter recomputes the visible items from the filter text and clamps
// the cursor.
func (m *model) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = make([]int, 0, len(m.items))
	for i, it := range m.items {
		if needle == "" || strings.Contains(strings.ToLower(it.property), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.filtering {
		switch key.String() {
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ", "enter":
		if len(m.visible) > 0 {
			p := m.items[m.visible[m.cursor]].property
			m.expanded[p] = !m.expanded[p]
		}
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Template fields (%d):\n\n", len(m.items))

	for pos, idx := range m.visible {
		it := m.items[idx]
		cursor := " "
		if m.cursor == pos {
			cursor = ">"
		}
		mark := it.mark
		if style, ok := markStyles[mark]; ok {
			mark = style.Render(mark)
		}
		fmt.Fprintf(&sb, "%s %s %s\n", cursor, mark, it.property)
		if m.expanded[it.property] {
			for _, d := range it.details {
				fmt.Fprintf(&sb, "      %s\n", d)
			}
		}
	}
	if len(m.visible) == 0 {
		sb.WriteString("  no matching fields\n")
	}

	if m.filtering || m.filter.Value() != "" {
		sb.WriteString("\n" + m.filter.View() + "\n")
	}
	sb.WriteString("\nSPACE: expand, /: filter, Q/ESCAPE: quit\n")
	return sb.String()
}
