package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type helpModel struct{}

func (h *helpModel) Init() tea.Cmd {
	return nil
}

func (h *helpModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	return h, nil
}

func (h *helpModel) View() string {
	helpContent := `weatherglass - Controls

Rain:
  [+]      More rain (+100 drops)
  [-]      Less rain (-100 drops)
  [r]      Toggle rain

Model:
  []]      Tilt up (+15°)
  [[]      Tilt down (-15°)
  [0]      Reset tilt

General:
  [?]      Show this help
  [q]      Quit application

Press [Esc] to close this help`

	return modalStyle.
		Width(40).
		MaxWidth(45).
		Align(lipgloss.Left).
		Render(helpContent)
}
