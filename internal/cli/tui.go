package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/laneflow/laneflow/pkg/diagram"
)

const listHeight = 15

// LaneListModel lets the user pick a lane from a positioned diagram.
type LaneListModel struct {
	Diagram  *diagram.Diagram
	Cursor   int
	Offset   int
	Height   int
	Selected *diagram.Lane
}

func NewLaneListModel(d *diagram.Diagram) LaneListModel {
	return LaneListModel{Diagram: d, Height: listHeight}
}

func (m LaneListModel) Init() tea.Cmd { return nil }

func (m LaneListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Diagram.Lanes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Diagram.Lanes) > 0 {
				m.Selected = &m.Diagram.Lanes[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LaneListModel) View() string {
	end := m.Offset + m.Height
	if end > len(m.Diagram.Lanes) {
		end = len(m.Diagram.Lanes)
	}
	rows := make([][]string, 0, end-m.Offset)
	for _, lane := range m.Diagram.Lanes[m.Offset:end] {
		rows = append(rows, []string{
			lane.Actor,
			fmt.Sprintf("%d", len(lane.Elements)),
			fmt.Sprintf("%.0f × %.0f", lane.Width, lane.Height),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("LANE", "ELEMENTS", "SIZE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case row == m.Cursor-m.Offset:
				return lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Padding(0, 1)
			default:
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
		})
	title := StyleTitle.Render(m.Diagram.Name)
	help := StyleDim.Render("↑/↓ move · enter select · q quit")
	return fmt.Sprintf("%s\n%s\n%s\n", title, t.Render(), help)
}

// ElementListModel lets the user pick an element within a lane.
type ElementListModel struct {
	Lane     *diagram.Lane
	Elements []diagram.Element
	Cursor   int
	Offset   int
	Height   int
	Selected *diagram.Element
}

// NewElementListModel collects the elements belonging to lane, in the
// order the lane references them.
func NewElementListModel(d *diagram.Diagram, lane *diagram.Lane) ElementListModel {
	byID := make(map[string]diagram.Element, len(d.Elements))
	for _, el := range d.Elements {
		byID[el.ID] = el
	}
	elements := make([]diagram.Element, 0, len(lane.Elements))
	for _, id := range lane.Elements {
		if el, ok := byID[id]; ok {
			elements = append(elements, el)
		}
	}
	return ElementListModel{Lane: lane, Elements: elements, Height: listHeight}
}

func (m ElementListModel) Init() tea.Cmd { return nil }

func (m ElementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Elements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Elements) > 0 {
				m.Selected = &m.Elements[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ElementListModel) View() string {
	end := m.Offset + m.Height
	if end > len(m.Elements) {
		end = len(m.Elements)
	}
	rows := make([][]string, 0, end-m.Offset)
	for _, el := range m.Elements[m.Offset:end] {
		rows = append(rows, []string{
			el.ID,
			el.Shape,
			truncate(elementLabel(el), 40),
			fmt.Sprintf("(%.0f, %.0f)", el.X, el.Y),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "SHAPE", "LABEL", "POSITION").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case row == m.Cursor-m.Offset:
				return lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Padding(0, 1)
			default:
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
		})
	title := StyleTitle.Render(m.Lane.Actor)
	help := StyleDim.Render("↑/↓ move · enter inspect · q quit")
	return fmt.Sprintf("%s\n%s\n%s\n", title, t.Render(), help)
}

// elementLabel returns the text a human would use to identify el.
func elementLabel(el diagram.Element) string {
	if el.Label != "" {
		return el.Label
	}
	return el.Text
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
