package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/io"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
)

func kindStyle(k route.Kind) lipgloss.Style {
	switch k {
	case route.Pump:
		return stylePump
	case route.Valve:
		return styleValve
	}
	return styleDim
}

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse a definition's nodes and connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := io.Load(args[0])
			if err != nil {
				return err
			}
			d, _, err := def.Build()
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newInspectModel(def.Title, d), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// inspectModel - read-only diagram browser
// =============================================================================

type inspectTab int

const (
	tabNodes inspectTab = iota
	tabConnections
)

type inspectModel struct {
	title       string
	nodes       []*network.Node
	connections []diagram.Connection

	tab    inspectTab
	cursor int
	offset int
	height int
}

func newInspectModel(title string, d *diagram.Diagram) inspectModel {
	return inspectModel{
		title:       title,
		nodes:       d.Chain().Nodes(),
		connections: d.Connections(),
		height:      15,
	}
}

func (m inspectModel) rowCount() int {
	if m.tab == tabNodes {
		return len(m.nodes)
	}
	return len(m.connections)
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.tab = 1 - m.tab
			m.cursor, m.offset = 0, 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "Diagram"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	tabs := []string{fmt.Sprintf("Nodes (%d)", len(m.nodes)), fmt.Sprintf("Connections (%d)", len(m.connections))}
	for i, t := range tabs {
		if inspectTab(i) == m.tab {
			tabs[i] = tabActiveStyle.Render(t)
		} else {
			tabs[i] = listDimStyle.Render(t)
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab switch  q quit"))
	b.WriteString("\n\n")

	if m.tab == tabNodes {
		b.WriteString(m.nodeTable())
		if m.cursor < len(m.nodes) {
			b.WriteString("\n")
			b.WriteString(nodeDetail(m.nodes[m.cursor]))
		}
	} else {
		b.WriteString(m.connectionTable())
	}

	if n := m.rowCount(); n > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, n)))
	}
	return b.String()
}

func (m inspectModel) visible() (int, int) {
	end := min(m.offset+m.height, m.rowCount())
	return m.offset, end
}

func (m inspectModel) nodeTable() string {
	start, end := m.visible()
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		n := m.nodes[i]
		rows = append(rows, []string{cursorMark(i == m.cursor), n.ID, n.Label,
			fmt.Sprintf("(%g, %g)", n.X, n.Y), fmt.Sprintf("%g", n.Size)})
	}
	return m.table(rows, func(row, col int) lipgloss.Style { return lipgloss.NewStyle() },
		"", "ID", "Label", "Center", "Size")
}

func (m inspectModel) connectionTable() string {
	start, end := m.visible()
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		c := m.connections[i]
		rows = append(rows, []string{cursorMark(i == m.cursor), c.Key.StartID + " → " + c.Key.EndID,
			c.Key.Side.String(), c.Kind.String(), c.Label})
	}
	kindAt := func(row, col int) lipgloss.Style {
		if col == 3 && start+row < len(m.connections) {
			return kindStyle(m.connections[start+row].Kind)
		}
		return lipgloss.NewStyle()
	}
	return m.table(rows, kindAt, "", "Pair", "Side", "Kind", "Label")
}

func (m inspectModel) table(rows [][]string, cell func(row, col int) lipgloss.Style, headers ...string) string {
	start, _ := m.visible()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			style := cell(row, col)
			if start+row == m.cursor {
				return style.Bold(true)
			}
			return style
		})
	return t.Render()
}

func nodeDetail(n *network.Node) string {
	a := n.Anchors()
	lines := []string{
		listSelectedStyle.Render(n.ID) + " " + n.Label,
		fmt.Sprintf("  anchors  TL (%.2f, %.2f)  TR (%.2f, %.2f)", a.TopLeft.X, a.TopLeft.Y, a.TopRight.X, a.TopRight.Y),
		fmt.Sprintf("           BL (%.2f, %.2f)  BR (%.2f, %.2f)", a.BottomLeft.X, a.BottomLeft.Y, a.BottomRight.X, a.BottomRight.Y),
	}
	corners := []struct{ name, text string }{
		{"top-left", n.Corners.TopLeft},
		{"top-right", n.Corners.TopRight},
		{"bottom-left", n.Corners.BottomLeft},
		{"bottom-right", n.Corners.BottomRight},
	}
	for _, c := range corners {
		if c.text != "" {
			lines = append(lines, listDimStyle.Render(fmt.Sprintf("  %-12s %s", c.name, c.text)))
		}
	}
	return strings.Join(lines, "\n")
}

func cursorMark(selected bool) string {
	if selected {
		return "▸"
	}
	return " "
}
