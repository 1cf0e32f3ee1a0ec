package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rowText is what a list item must expose to be rendered as a single row.
// All item types in this package implement it.
type rowText interface {
	Title() string
	Description() string
}

// rowDelegate renders one item per line: the title, then the description
// appended muted, truncated with an ellipsis when the row overflows and
// padded to the full width so the selection highlight spans the line.
type rowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	width := m.Width()
	rt, ok := item.(rowText)
	if width < 4 || !ok {
		return
	}

	line := rt.Title()
	if desc := strings.TrimSpace(rt.Description()); desc != "" {
		line += "  " + styleMuted().Render(desc)
	}

	if lineW := xansi.StringWidth(line); lineW > width {
		line = xansi.Truncate(line, width, "…")
	} else {
		line += strings.Repeat(" ", width-lineW)
	}

	st := d.normal
	if index == m.Index() {
		st = d.selected
	}
	fmt.Fprint(w, st.Render(line))
}
