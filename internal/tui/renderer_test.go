package tui

import (
	"strings"
	"testing"

	"github.com/JackWithOneEye/weatherglass/internal/rain"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererProjectsDrops(t *testing.T) {
	s := rain.DefaultSettings()
	r := newTermRenderer(s, 10, 8)

	// top left corner, far; bottom right corner, near
	r.UploadPositions([]float32{
		s.Horizontal.Min, s.Top.Max - 0.01, s.Depth.Min,
		s.Horizontal.Max - 0.01, s.Floor - s.FallSpeed + 0.01, s.Depth.Max - 0.01,
	})
	r.Render(scene.Camera{}, nil)

	assert.Equal(t, uint8(1), r.grid[0][0])
	assert.Equal(t, uint8(shades), r.grid[7][9])
	assert.Contains(t, r.row(0), dropGlyphs[0])
	assert.Contains(t, r.row(7), dropGlyphs[shades-1])
}

func TestRendererSkipsOutOfView(t *testing.T) {
	s := rain.DefaultSettings()
	r := newTermRenderer(s, 10, 8)

	r.UploadPositions([]float32{s.Horizontal.Max + 1, 5, -3, -5, s.Top.Max + 1, -3})
	r.Render(scene.Camera{}, nil)

	for y := range r.grid {
		assert.Equal(t, strings.Repeat(" ", 10), r.row(y))
	}
}

func TestRendererHidden(t *testing.T) {
	s := rain.DefaultSettings()
	r := newTermRenderer(s, 4, 4)
	r.UploadPositions([]float32{-5, 6, -3})
	r.SetRainVisible(false)
	r.Render(scene.Camera{}, nil)

	for _, row := range r.grid {
		assert.Equal(t, []uint8{0, 0, 0, 0}, row)
	}
}

func TestRendererResize(t *testing.T) {
	r := newTermRenderer(rain.DefaultSettings(), 4, 4)
	r.resize(12, 3)
	require.Len(t, r.grid, 3)
	assert.Len(t, r.grid[0], 12)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRainModelKeys(t *testing.T) {
	m, err := newRainModel("localhost:0")
	require.NoError(t, err)
	assert.Equal(t, initialDensity, m.scene.Rain().Len())

	m.Update(key("+"))
	assert.Equal(t, initialDensity+densityStep, m.scene.Rain().Len())

	for range 10 {
		m.Update(key("-"))
	}
	assert.Equal(t, 0, m.scene.Rain().Len())
	assert.NoError(t, m.err)

	m.Update(key("]"))
	m.Update(key("]"))
	assert.Equal(t, 2*tiltStep, m.scene.Tilt())
	m.Update(key("["))
	assert.Equal(t, tiltStep, m.scene.Tilt())
	m.Update(key("0"))
	assert.Equal(t, 0, m.scene.Tilt())

	m.Update(key("r"))
	assert.False(t, m.scene.Rain().Visible())
	m.Update(key("r"))
	assert.True(t, m.scene.Rain().Visible())
}

func TestRainModelLines(t *testing.T) {
	m, err := newRainModel("localhost:0")
	require.NoError(t, err)

	m.Update(lineMessage{Line: "temp=19.2"})
	assert.Equal(t, "temp=19.2", m.scene.LastReading())
	assert.Contains(t, m.View(), "temp=19.2")
}

func TestRainModelAssets(t *testing.T) {
	m, err := newRainModel("localhost:0")
	require.NoError(t, err)

	m.Update(assetsLoaded{Events: []scene.Event{
		scene.AssetFailed{Path: "untitled.glb", Err: assert.AnError},
	}})
	assert.False(t, m.loading)
	assert.Equal(t, "assets: 0 loaded, 1 failed", m.assetSummary())
}

func TestUIModelHelp(t *testing.T) {
	ui, err := NewUIModel("localhost:0")
	require.NoError(t, err)

	ui.Update(key("?"))
	assert.True(t, ui.helpVisible)
	assert.Contains(t, ui.View(), "Controls")

	// keys are swallowed while the help is open
	ui.Update(key("+"))
	assert.Equal(t, initialDensity, ui.rain.(*rainModel).scene.Rain().Len())

	ui.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ui.helpVisible)
}
