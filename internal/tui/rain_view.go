package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/JackWithOneEye/weatherglass/internal/scene"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/websocket"
)

const (
	initialDensity = 500
	densityStep    = 100
	tiltStep       = 15
)

// tickMsg is sent every 1/30th second to advance the rain
type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

type rainModel struct {
	scene     *scene.Scene
	renderer  *termRenderer
	relayHost string
	conn      *websocket.Conn
	connected bool
	loading   bool
	assetsOk  int
	assetsErr int
	density   int
	termWidth int
	err       error
	spinner   spinner.Model
}

func newRainModel(relayHost string) (*rainModel, error) {
	layout := scene.DefaultLayout()
	layout.Rain.Count = initialDensity

	r := newTermRenderer(layout.Rain.Settings, 78, 20)
	s, err := scene.New(layout, r, nil)
	if err != nil {
		return nil, err
	}
	return &rainModel{
		scene:     s,
		renderer:  r,
		relayHost: relayHost,
		loading:   true,
		density:   initialDensity,
		termWidth: 80,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205")))),
	}, nil
}

func (m *rainModel) Init() tea.Cmd {
	return tea.Batch(connectToRelay(m.relayHost), loadAssets(m.relayHost, m.scene.Layout()), m.spinner.Tick, tick())
}

func (m *rainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "+", "=":
			m.setDensity(m.density + densityStep)
		case "-", "_":
			m.setDensity(max(m.density-densityStep, 0))
		case "]":
			m.handle(scene.TiltChanged{Degrees: m.scene.Tilt() + tiltStep})
		case "[":
			m.handle(scene.TiltChanged{Degrees: m.scene.Tilt() - tiltStep})
		case "0":
			m.handle(scene.TiltChanged{Degrees: 0})
		case "r":
			m.handle(scene.RainToggled{Enabled: !m.scene.Rain().Visible()})
		}
	case quitMessage:
		if m.conn != nil {
			m.conn.Close(websocket.StatusNormalClosure, "")
			m.conn = nil
		}
		m.connected = false
	case connectionResult:
		m.connected = msg.Connected
		m.conn = msg.Conn
		if msg.Err != nil {
			m.err = msg.Err
		}
		if m.connected {
			return m, listenForLines(m.conn)
		}
	case lineMessage:
		if msg.Err != nil {
			if m.connected {
				m.err = msg.Err
			}
			m.connected = false
			return m, nil
		}
		m.handle(scene.ReadingReceived{Line: msg.Line})
		if m.connected {
			return m, listenForLines(m.conn)
		}
	case assetsLoaded:
		m.loading = false
		for _, ev := range msg.Events {
			if _, failed := ev.(scene.AssetFailed); failed {
				m.assetsErr++
			} else {
				m.assetsOk++
			}
			m.handle(ev)
		}
	case tickMsg:
		m.scene.Frame()
		return m, tick()
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		// 1 header line, 1 footer line, 2 border rows and 2 border columns
		if msg.Height > 4 && msg.Width > 2 {
			m.renderer.resize(msg.Width-2, msg.Height-4)
		}
	}
	return m, nil
}

func (m *rainModel) View() string {
	var s strings.Builder

	title := titleStyle.Render("weatherglass")
	if m.loading {
		title += fmt.Sprintf(" %s", m.spinner.View())
	}
	status := statusStyle.Render(fmt.Sprintf("Drops: %d • Tilt: %d° • %s • %s",
		m.scene.Rain().Len(),
		m.scene.Tilt(),
		rainStatus(m.scene.Rain().Visible()),
		connectedStatus(m.connected)))

	availableWidth := m.termWidth - 2
	header := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Width(m.termWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			title,
			lipgloss.NewStyle().Width(max(availableWidth-lipgloss.Width(title)-lipgloss.Width(status), 0)).Render(""),
			status))
	s.WriteString(header)
	s.WriteString("\n")

	rows := make([]string, m.renderer.height)
	for y := range rows {
		rows[y] = m.renderer.row(y)
	}
	grid := lipgloss.NewStyle().Width(m.renderer.width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	s.WriteString(frameStyle.Render(grid))
	s.WriteString("\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.scene.LastReading() != "":
		s.WriteString(readingStyle.Render(m.scene.LastReading()))
	default:
		s.WriteString(statusStyle.Render(m.assetSummary()))
	}

	return s.String()
}

func (m *rainModel) assetSummary() string {
	if m.loading {
		return "loading assets"
	}
	return fmt.Sprintf("assets: %d loaded, %d failed", m.assetsOk, m.assetsErr)
}

func (m *rainModel) setDensity(count int) {
	if err := m.scene.Handle(scene.DensityChanged{Count: count}); err != nil {
		m.err = err
		return
	}
	m.density = count
}

func (m *rainModel) handle(ev scene.Event) {
	if err := m.scene.Handle(ev); err != nil {
		log.Printf("could not handle %T: %s", ev, err)
	}
}
