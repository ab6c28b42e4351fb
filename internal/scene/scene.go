// Package scene holds the weather scene graph and dispatches UI and asset events to it.
package scene

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/JackWithOneEye/weatherglass/internal/rain"
	"github.com/chewxy/math32"
)

const (
	minTilt = -180
	maxTilt = 180
)

type Camera struct {
	Fov      float32
	Near     float32
	Far      float32
	Position Vec3
}

// Renderer is the drawing backend. All calls happen on the goroutine driving the scene.
type Renderer interface {
	AddModel(node *Node)
	Render(cam Camera, s *Scene)
	SetRainVisible(visible bool)
	UpdateTexture(ref *TextureRef)
	UploadPositions(positions []float32)
}

type Scene struct {
	layout      *Layout
	renderer    Renderer
	textures    *TextureRegistry
	root        *Node
	pivot       *Node
	camera      Camera
	rain        rain.Animator
	tilt        int
	lastReading string
}

func New(layout *Layout, r Renderer, rng *rand.Rand) (*Scene, error) {
	anim, err := rain.NewAnimator(layout.Rain.Settings, rng)
	if err != nil {
		return nil, fmt.Errorf("could not create rain animator: %w", err)
	}
	if err := anim.SetDensity(layout.Rain.Count); err != nil {
		return nil, fmt.Errorf("could not create rain buffer: %w", err)
	}

	s := &Scene{
		layout:   layout,
		renderer: r,
		textures: NewTextureRegistry(),
		root:     NewNode("scene", Vec3{}),
		pivot:    NewNode(layout.Pivot.Name, layout.Pivot.Position),
		camera: Camera{
			Fov:      layout.Camera.Fov,
			Near:     layout.Camera.Near,
			Far:      layout.Camera.Far,
			Position: layout.Camera.Position,
		},
		rain: anim,
	}
	s.root.Add(s.pivot)
	s.root.Add(NewNode("glass", layout.Glass.Position))

	ground := NewNode("ground", Vec3{Y: layout.Ground.Y})
	ground.Rotation.X = -math32.Pi / 2
	if layout.Ground.Texture != "" {
		ground.Texture = s.textures.Lookup(layout.Ground.Texture)
	}
	s.root.Add(ground)

	r.SetRainVisible(anim.Visible())
	return s, nil
}

func (s *Scene) Handle(ev Event) error {
	switch e := ev.(type) {
	case DensityChanged:
		if err := s.rain.SetDensity(e.Count); err != nil {
			return fmt.Errorf("could not set rain density: %w", err)
		}
	case TiltChanged:
		s.SetTilt(e.Degrees)
	case RainToggled:
		s.rain.SetVisible(e.Enabled)
		s.renderer.SetRainVisible(e.Enabled)
	case AssetLoaded:
		return s.addModel(e)
	case TextureLoaded:
		s.renderer.UpdateTexture(s.textures.Fill(e.Texture))
	case AssetFailed:
		log.Printf("error loading %s: %s", e.Path, e.Err)
	case ReadingReceived:
		s.lastReading = e.Line
	default:
		return fmt.Errorf("unknown scene event %T", ev)
	}
	return nil
}

// Frame advances the rain by one tick and renders.
func (s *Scene) Frame() {
	s.rain.Tick()
	if s.rain.TakeDirty() {
		s.renderer.UploadPositions(s.rain.Positions())
	}
	s.renderer.Render(s.camera, s)
}

// SetTilt rotates the pivot about X. Degrees outside [-180, 180] are clamped.
func (s *Scene) SetTilt(degrees int) {
	s.tilt = min(max(degrees, minTilt), maxTilt)
	s.pivot.Rotation.X = float32(s.tilt) * math32.Pi / 180
}

func (s *Scene) Camera() Camera {
	return s.camera
}

func (s *Scene) LastReading() string {
	return s.lastReading
}

func (s *Scene) Layout() *Layout {
	return s.layout
}

func (s *Scene) Pivot() *Node {
	return s.pivot
}

func (s *Scene) Rain() rain.Animator {
	return s.rain
}

func (s *Scene) Root() *Node {
	return s.root
}

func (s *Scene) Textures() *TextureRegistry {
	return s.textures
}

func (s *Scene) Tilt() int {
	return s.tilt
}

func (s *Scene) addModel(e AssetLoaded) error {
	var ml *ModelLayout
	for i := range s.layout.Models {
		if s.layout.Models[i].Path == e.Model.Path {
			ml = &s.layout.Models[i]
			break
		}
	}
	if ml == nil {
		return fmt.Errorf("model %s is not part of the layout", e.Model.Path)
	}
	if s.root.Find(ml.Path) != nil {
		return fmt.Errorf("model %s already added", ml.Path)
	}

	node := NewNode(ml.Path, ml.Position)
	node.Model = e.Model
	if ml.Texture != "" {
		node.Texture = s.textures.Lookup(ml.Texture)
	}
	if ml.Pivoted {
		s.pivot.Add(node)
	} else {
		s.root.Add(node)
	}
	s.renderer.AddModel(node)
	return nil
}
