package scene

import (
	_ "embed"
	"fmt"

	"github.com/JackWithOneEye/weatherglass/internal/rain"
	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

type Vec3 struct {
	X, Y, Z float32
}

func (v *Vec3) UnmarshalYAML(n *yaml.Node) error {
	var a []float32
	if err := n.Decode(&a); err != nil {
		return err
	}
	if len(a) != 3 {
		return fmt.Errorf("line %d: vector needs 3 components, got %d", n.Line, len(a))
	}
	v.X, v.Y, v.Z = a[0], a[1], a[2]
	return nil
}

func (v Vec3) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "[%g,%g,%g]", v.X, v.Y, v.Z), nil
}

type CameraLayout struct {
	Fov      float32 `yaml:"fov" json:"fov"`
	Near     float32 `yaml:"near" json:"near"`
	Far      float32 `yaml:"far" json:"far"`
	Position Vec3    `yaml:"position" json:"position"`
}

type GroundLayout struct {
	Width   float32 `yaml:"width" json:"width"`
	Depth   float32 `yaml:"depth" json:"depth"`
	Y       float32 `yaml:"y" json:"y"`
	Texture string  `yaml:"texture" json:"texture"`
}

type GlassLayout struct {
	Size         Vec3    `yaml:"size" json:"size"`
	Position     Vec3    `yaml:"position" json:"position"`
	Roughness    float32 `yaml:"roughness" json:"roughness"`
	Transmission float32 `yaml:"transmission" json:"transmission"`
	Thickness    float32 `yaml:"thickness" json:"thickness"`
}

type LightLayout struct {
	Kind       string  `yaml:"kind" json:"kind"`
	Color      uint32  `yaml:"color" json:"color"`
	Intensity  float32 `yaml:"intensity" json:"intensity"`
	Position   *Vec3   `yaml:"position,omitempty" json:"position,omitempty"`
	CastShadow bool    `yaml:"castShadow" json:"castShadow"`
}

type PivotLayout struct {
	Name     string `yaml:"name" json:"name"`
	Position Vec3   `yaml:"position" json:"position"`
}

type ModelLayout struct {
	Path     string `yaml:"path" json:"path"`
	Texture  string `yaml:"texture" json:"texture"`
	Pivoted  bool   `yaml:"pivoted" json:"pivoted"`
	Position Vec3   `yaml:"position" json:"position"`
}

type RainLayout struct {
	Count         int     `yaml:"count" json:"count"`
	Size          float32 `yaml:"size" json:"size"`
	Color         uint32  `yaml:"color" json:"color"`
	rain.Settings `yaml:",inline"`
}

type Layout struct {
	Camera     CameraLayout      `yaml:"camera" json:"camera"`
	Background string            `yaml:"background" json:"background"`
	Textures   map[string]string `yaml:"textures" json:"textures"`
	Ground     GroundLayout      `yaml:"ground" json:"ground"`
	Glass      GlassLayout       `yaml:"glass" json:"glass"`
	Lights     []LightLayout     `yaml:"lights" json:"lights"`
	Pivot      PivotLayout       `yaml:"pivot" json:"pivot"`
	Models     []ModelLayout     `yaml:"models" json:"models"`
	Rain       RainLayout        `yaml:"rain" json:"rain"`
}

func ParseLayout(b []byte) (*Layout, error) {
	l := &Layout{Rain: RainLayout{Settings: rain.DefaultSettings()}}
	if err := yaml.Unmarshal(b, l); err != nil {
		return nil, fmt.Errorf("could not parse layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// DefaultLayout returns a fresh copy of the embedded layout.
func DefaultLayout() *Layout {
	l, err := ParseLayout(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("embedded layout is invalid: %s", err))
	}
	return l
}

func (l *Layout) validate() error {
	if l.Pivot.Name == "" {
		return fmt.Errorf("layout: pivot needs a name")
	}
	refs := []string{l.Background, l.Ground.Texture}
	for _, m := range l.Models {
		if m.Path == "" {
			return fmt.Errorf("layout: model without path")
		}
		refs = append(refs, m.Texture)
	}
	for _, name := range refs {
		if name == "" {
			continue
		}
		if _, ok := l.Textures[name]; !ok {
			return fmt.Errorf("layout: unknown texture %q", name)
		}
	}
	return nil
}
