package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fieldserve/dispatch/internal/cli/formatter"
	"github.com/fieldserve/dispatch/internal/contract"
)

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "assign"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// pickerModel is the interactive technician picker: a cursor list over the
// scored candidates for one job. Selecting returns the candidate; quitting
// leaves choice nil.
type pickerModel struct {
	jobTitle   string
	candidates []contract.TechScore
	cursor     int
	choice     *contract.TechScore
}

func newPickerModel(jobTitle string, candidates []contract.TechScore) pickerModel {
	return pickerModel{jobTitle: jobTitle, candidates: candidates}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, pickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, pickerKeys.Down):
		if m.cursor < len(m.candidates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, pickerKeys.Select):
		if len(m.candidates) > 0 {
			m.choice = &m.candidates[m.cursor]
		}
		return m, tea.Quit
	case key.Matches(keyMsg, pickerKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Pick a technician for " + m.jobTitle))
	b.WriteString("\n\n")

	for i, c := range m.candidates {
		cursor := "  "
		name := formatter.Dim(c.TechName)
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
			name = formatter.Bold(c.TechName)
		}
		line := fmt.Sprintf("%s%s  %s", cursor, name, formatter.ScoreBadge(c.Score, c.IsRecommended))
		if c.HasWarnings {
			line += "  " + formatter.StyleYellow.Render(fmt.Sprintf("▲ %d warning(s)", len(c.Warnings)))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim("↑/↓ move · enter assign · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// runPicker opens the technician picker and returns the selection, or nil
// when the operator cancels.
func runPicker(jobTitle string, candidates []contract.TechScore) (*contract.TechScore, error) {
	final, err := tea.NewProgram(newPickerModel(jobTitle, candidates)).Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model type %T", final)
	}
	return m.choice, nil
}
