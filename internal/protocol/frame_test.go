package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameEncode(t *testing.T) {
	f := &Frame{Visible: true, Positions: []float32{-5, 4.5, -2, -1, 1.25, -3}}

	b := f.Encode(nil)

	require.Len(t, b, 5+2*12)
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, []byte{2, 0, 0, 0}, b[1:5])

	var out Frame
	require.NoError(t, out.Decode(b))
	assert.True(t, out.Visible)
	assert.Equal(t, f.Positions, out.Positions)
}

func TestFrameEncodeReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 128)
	f := &Frame{Positions: []float32{1, 2, 3}}

	b := f.Encode(buf)

	assert.Same(t, &buf[:1][0], &b[0])
	assert.Equal(t, byte(0), b[0])
}

func TestFrameIgnoresIncompleteTriple(t *testing.T) {
	f := &Frame{Positions: []float32{1, 2, 3, 4}}
	assert.Equal(t, uint32(1), f.Count())
	assert.Len(t, f.Encode(nil), 5+12)
}

func TestFrameDecodeErrors(t *testing.T) {
	var f Frame
	assert.ErrorContains(t, f.Decode([]byte{1, 2}), "too short")
	assert.ErrorContains(t, f.Decode([]byte{1, 3, 0, 0, 0, 0, 0}), "does not match")
}

func TestEmptyFrame(t *testing.T) {
	f := &Frame{Visible: true}
	b := f.Encode(nil)

	var out Frame
	require.NoError(t, out.Decode(b))
	assert.Empty(t, out.Positions)
	assert.True(t, out.Visible)
}
