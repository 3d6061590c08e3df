package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/orchard/pkg/tournament"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RosterPickModel - Interactive player selection
// =============================================================================

// RosterPickModel is the bubbletea model for choosing players from a roster.
// Space toggles a player; enter confirms once Want players are chosen.
type RosterPickModel struct {
	Players []tournament.Player
	Want    int
	Cursor  int
	Chosen  []int // indices into Players, in selection order
	Done    bool
	Height  int
	Offset  int
}

// NewRosterPickModel creates a picker choosing want players.
func NewRosterPickModel(players []tournament.Player, want int) RosterPickModel {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b tournament.Player) int { return a.Seed - b.Seed })
	return RosterPickModel{Players: sorted, Want: want, Height: 15}
}

func (m RosterPickModel) Init() tea.Cmd {
	return nil
}

func (m RosterPickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Chosen = nil
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Players)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.toggle(m.Cursor)
		case "enter":
			if len(m.Chosen) < m.Want && !slices.Contains(m.Chosen, m.Cursor) {
				m.toggle(m.Cursor)
			}
			if len(m.Chosen) == m.Want {
				m.Done = true
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *RosterPickModel) toggle(i int) {
	if at := slices.Index(m.Chosen, i); at >= 0 {
		m.Chosen = slices.Delete(m.Chosen, at, at+1)
		return
	}
	if len(m.Chosen) < m.Want {
		m.Chosen = append(m.Chosen, i)
	}
}

// Selected returns the ids of the chosen players in selection order, or nil
// if the picker was cancelled.
func (m RosterPickModel) Selected() []string {
	if !m.Done {
		return nil
	}
	ids := make([]string, len(m.Chosen))
	for i, idx := range m.Chosen {
		ids[i] = m.Players[idx].ID
	}
	return ids
}

func (m RosterPickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Select %d Players", m.Want)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Players))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Players[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if at := slices.Index(m.Chosen, i); at >= 0 {
			mark = strconv.Itoa(at + 1)
		}
		flavor := p.Flavor
		if flavor == "" {
			flavor = "-"
		}
		rows = append(rows, []string{cursor, mark, strconv.Itoa(p.Seed), p.ID, flavor})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Seed", "Player", "Flavor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Players) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}
			switch {
			case slices.Contains(m.Chosen, idx):
				return base.Foreground(colorGreen).Bold(idx == m.Cursor)
			case idx == m.Cursor:
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] chosen %d of %d", m.Cursor+1, len(m.Players), len(m.Chosen), m.Want)))

	return b.String()
}

// pickPlayers runs the picker and returns the chosen ids, or nil if the
// user quit.
func pickPlayers(players []tournament.Player, want int) ([]string, error) {
	if len(players) < want {
		return nil, fmt.Errorf("roster has %d players, need %d", len(players), want)
	}
	final, err := tea.NewProgram(NewRosterPickModel(players, want)).Run()
	if err != nil {
		return nil, fmt.Errorf("player picker: %w", err)
	}
	return final.(RosterPickModel).Selected(), nil
}
