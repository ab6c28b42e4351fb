// Package tui
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

type quitMessage struct{}

type UIModel struct {
	rain        tea.Model
	help        tea.Model
	overlay     tea.Model
	helpVisible bool
}

func NewUIModel(relayHost string) (*UIModel, error) {
	rm, err := newRainModel(relayHost)
	if err != nil {
		return nil, err
	}
	m := &UIModel{
		rain: rm,
		help: &helpModel{},
	}
	m.overlay = overlay.New(m.help, m.rain, overlay.Center, overlay.Center, 0, 0)
	return m, nil
}

func (m *UIModel) Init() tea.Cmd {
	return tea.Batch(m.rain.Init(), m.help.Init(), m.overlay.Init())
}

func (m *UIModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	passToRain := func() tea.Cmd {
		rm, cmd := m.rain.Update(message)
		m.rain = rm
		return cmd
	}

	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.rain.Update(quitMessage{})
			return m, tea.Quit
		case "esc":
			m.helpVisible = false
			return m, nil
		case "?":
			m.helpVisible = true
			return m, nil
		}
		if m.helpVisible {
			return m, nil
		}
		return m, passToRain()
	default:
		return m, passToRain()
	}
}

func (m *UIModel) View() string {
	if m.helpVisible {
		return m.overlay.View()
	}
	return m.rain.View()
}
