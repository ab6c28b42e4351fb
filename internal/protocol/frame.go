package protocol

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	frameHeaderSize  = 5
	bytesPerParticle = 12
)

// Frame is one upload of the rain buffer to the browser renderer.
// Layout: byte 0 visible flag, bytes 1-4 particle count (LE), then x, y, z float32 (LE) per particle.
type Frame struct {
	Visible   bool
	Positions []float32
}

func (f *Frame) Count() uint32 {
	return uint32(len(f.Positions) / 3)
}

func (f *Frame) EncodeSize() int {
	return frameHeaderSize + int(f.Count())*bytesPerParticle
}

// Encode writes f into b, growing it when needed, and returns the written slice.
func (f *Frame) Encode(b []byte) []byte {
	size := f.EncodeSize()
	if cap(b) < size {
		b = make([]byte, size)
	}
	b = b[:size]

	if f.Visible {
		b[0] = 1
	} else {
		b[0] = 0
	}
	count := f.Count()
	binary.LittleEndian.PutUint32(b[1:5], count)

	off := frameHeaderSize
	for _, v := range f.Positions[:count*3] {
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
		off += 4
	}
	return b
}

func (f *Frame) Decode(b []byte) error {
	if len(b) < frameHeaderSize {
		return errors.New("frame too short")
	}
	f.Visible = b[0] == 1
	count := binary.LittleEndian.Uint32(b[1:5])
	if len(b) < frameHeaderSize+int(count)*bytesPerParticle {
		return errors.New("frame length does not match particle count")
	}

	f.Positions = make([]float32, count*3)
	off := frameHeaderSize
	for i := range f.Positions {
		f.Positions[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
		off += 4
	}
	return nil
}
