// Package rain animates a fixed-capacity buffer of falling particles.
package rain

import (
	"math/rand/v2"
)

type Animator interface {
	Len() int
	Position(i int) (x, y, z float32)
	Positions() []float32
	SetDensity(count int) error
	SetVisible(enabled bool)
	Settings() Settings
	TakeDirty() bool
	Tick()
	Visible() bool
}

type animator struct {
	settings Settings
	rng      *rand.Rand
	buf      *Buffer
	visible  bool
	dirty    bool
}

// NewAnimator returns a visible animator without a buffer; Tick is a no-op until SetDensity.
func NewAnimator(s Settings, rng *rand.Rand) (Animator, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &animator{settings: s, rng: rng, visible: true}, nil
}

func (a *animator) Len() int {
	if a.buf == nil {
		return 0
	}
	return a.buf.Len()
}

// Position returns zeros before the first SetDensity.
func (a *animator) Position(i int) (x, y, z float32) {
	if a.buf == nil {
		return 0, 0, 0
	}
	return a.buf.At(i)
}

// Positions exposes the live buffer. Callers must not retain it across SetDensity.
func (a *animator) Positions() []float32 {
	if a.buf == nil {
		return nil
	}
	return a.buf.positions
}

func (a *animator) SetDensity(count int) error {
	buf, err := NewBuffer(count, a.settings, a.rng)
	if err != nil {
		return err
	}
	a.buf = buf
	a.dirty = true
	return nil
}

func (a *animator) SetVisible(enabled bool) {
	a.visible = enabled
}

func (a *animator) Settings() Settings {
	return a.settings
}

func (a *animator) TakeDirty() bool {
	d := a.dirty
	a.dirty = false
	return d
}

func (a *animator) Tick() {
	if !a.visible || a.buf == nil {
		return
	}
	p := a.buf.positions
	floor := a.settings.Floor
	speed := a.settings.FallSpeed
	// particle 0 stays where it was constructed
	for i := 1; i < a.buf.count; i++ {
		y := p[i*3+1] - speed
		if y < floor {
			y = a.settings.Top.sample(a.rng)
		}
		p[i*3+1] = y
	}
	a.dirty = true
}

func (a *animator) Visible() bool {
	return a.visible
}
