package tui

import (
	"strings"

	"github.com/JackWithOneEye/weatherglass/internal/rain"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
)

const shades = 3

// termRenderer rasterizes the rain buffer onto a character grid, looking along the z axis.
type termRenderer struct {
	width     int
	height    int
	settings  rain.Settings
	positions []float32
	visible   bool
	grid      [][]uint8 // 0 = empty, 1..shades = depth shade
	models    map[string]bool
	textures  map[string]bool
}

func newTermRenderer(settings rain.Settings, width, height int) *termRenderer {
	r := &termRenderer{
		settings: settings,
		visible:  true,
		models:   make(map[string]bool),
		textures: make(map[string]bool),
	}
	r.resize(width, height)
	return r
}

func (r *termRenderer) AddModel(node *scene.Node) {
	r.models[node.Name] = true
}

func (r *termRenderer) Render(cam scene.Camera, s *scene.Scene) {
	for _, row := range r.grid {
		clear(row)
	}
	if !r.visible || r.width == 0 || r.height == 0 {
		return
	}

	h, top := r.settings.Horizontal, r.settings.Top
	bottom := r.settings.Floor - r.settings.FallSpeed
	d := r.settings.Depth
	for i := 0; i+2 < len(r.positions); i += 3 {
		x, y, z := r.positions[i], r.positions[i+1], r.positions[i+2]
		col := int((x - h.Min) / (h.Max - h.Min) * float32(r.width))
		row := int((top.Max - y) / (top.Max - bottom) * float32(r.height))
		if col < 0 || col >= r.width || row < 0 || row >= r.height {
			continue
		}
		shade := uint8(1)
		if d.Max > d.Min {
			shade += uint8((z - d.Min) / (d.Max - d.Min) * shades)
		}
		shade = min(shade, shades)
		r.grid[row][col] = max(r.grid[row][col], shade)
	}
}

func (r *termRenderer) SetRainVisible(visible bool) {
	r.visible = visible
}

func (r *termRenderer) UpdateTexture(ref *scene.TextureRef) {
	r.textures[ref.Name] = ref.Loaded()
}

func (r *termRenderer) UploadPositions(positions []float32) {
	r.positions = append(r.positions[:0], positions...)
}

func (r *termRenderer) resize(width, height int) {
	r.width = max(width, 0)
	r.height = max(height, 0)
	r.grid = make([][]uint8, r.height)
	for i := range r.grid {
		r.grid[i] = make([]uint8, r.width)
	}
}

func (r *termRenderer) row(y int) string {
	var b strings.Builder
	b.Grow(r.width * 2)
	run := uint8(0)
	runLen := 0
	flush := func() {
		if runLen == 0 {
			return
		}
		if run == 0 {
			b.WriteString(strings.Repeat(" ", runLen))
		} else {
			b.WriteString(dropStyles[run-1].Render(strings.Repeat(dropGlyphs[run-1], runLen)))
		}
		runLen = 0
	}
	for _, c := range r.grid[y] {
		if c != run {
			flush()
			run = c
		}
		runLen++
	}
	flush()
	return b.String()
}
