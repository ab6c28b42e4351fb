package rain

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float32 `yaml:"min" json:"min"`
	Max float32 `yaml:"max" json:"max"`
}

func (r Range) sample(rng *rand.Rand) float32 {
	v := r.Min + rng.Float32()*(r.Max-r.Min)
	// float32 rounding can land on Max
	if v >= r.Max {
		return r.Min
	}
	return v
}

type Settings struct {
	Horizontal Range   `yaml:"horizontal" json:"horizontal"`
	Depth      Range   `yaml:"depth" json:"depth"`
	Top        Range   `yaml:"top" json:"top"`
	Floor      float32 `yaml:"floor" json:"floor"`
	FallSpeed  float32 `yaml:"fallSpeed" json:"fallSpeed"`
}

func DefaultSettings() Settings {
	return Settings{
		Horizontal: Range{Min: -10, Max: 0},
		Depth:      Range{Min: -5.6, Max: -1.6},
		Top:        Range{Min: 4, Max: 8},
		Floor:      1.2,
		FallSpeed:  0.1,
	}
}

func (s Settings) validate() error {
	if s.Horizontal.Max < s.Horizontal.Min || s.Depth.Max < s.Depth.Min || s.Top.Max < s.Top.Min {
		return fmt.Errorf("%w: range max below min", ErrInvalidArgument)
	}
	if s.FallSpeed <= 0 {
		return fmt.Errorf("%w: fall speed must be positive", ErrInvalidArgument)
	}
	return nil
}

// Buffer holds count particles as a flat x, y, z sequence.
type Buffer struct {
	positions []float32
	count     int
}

func NewBuffer(count int, s Settings, rng *rand.Rand) (*Buffer, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: particle count %d", ErrInvalidArgument, count)
	}
	b := &Buffer{
		positions: make([]float32, count*3),
		count:     count,
	}
	for i := range count {
		b.positions[i*3] = s.Horizontal.sample(rng)
		b.positions[i*3+1] = s.Top.sample(rng)
		b.positions[i*3+2] = s.Depth.sample(rng)
	}
	return b, nil
}

func (b *Buffer) Len() int {
	return b.count
}

func (b *Buffer) At(i int) (x, y, z float32) {
	return b.positions[i*3], b.positions[i*3+1], b.positions[i*3+2]
}
