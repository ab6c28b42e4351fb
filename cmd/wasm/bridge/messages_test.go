package bridge

import (
	"testing"

	"github.com/JackWithOneEye/weatherglass/internal/assets"
	"github.com/JackWithOneEye/weatherglass/internal/protocol"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageMessageEvent(t *testing.T) {
	tests := []struct {
		msg  PageMessage
		want scene.Event
	}{
		{PageMessage{Type: MsgDensity, Value: 2000}, scene.DensityChanged{Count: 2000}},
		{PageMessage{Type: MsgTilt, Value: -45}, scene.TiltChanged{Degrees: -45}},
		{PageMessage{Type: MsgRain, Enabled: true}, scene.RainToggled{Enabled: true}},
	}
	for _, tt := range tests {
		ev, err := tt.msg.Event()
		require.NoError(t, err)
		assert.Equal(t, tt.want, ev)
	}

	_, err := PageMessage{Type: 99}.Event()
	assert.Error(t, err)
}

func TestModelMessage(t *testing.T) {
	root := scene.NewNode("scene", scene.Vec3{})
	pivot := scene.NewNode("untitledPivot", scene.Vec3{Y: -0.16})
	root.Add(pivot)

	pivoted := scene.NewNode("untitled.glb", scene.Vec3{X: -2.5, Y: -0.1, Z: -5.47})
	pivoted.Model = &assets.Model{Path: "untitled.glb"}
	pivoted.Texture = &scene.TextureRef{Name: "steel"}
	pivot.Add(pivoted)

	loose := scene.NewNode("bawah.glb", scene.Vec3{Y: -1.3})
	loose.Model = &assets.Model{Path: "bawah.glb"}
	root.Add(loose)

	msg := ModelMessage(pivoted, "/assets/")
	assert.Equal(t, MsgModel, msg["type"])
	assert.Equal(t, "/assets/untitled.glb", msg["url"])
	assert.Equal(t, "/assets/", msg["base"])
	assert.Equal(t, true, msg["pivoted"])
	assert.Equal(t, "untitledPivot", msg["parent"])
	assert.Equal(t, "steel", msg["texture"])
	assert.Equal(t, []any{float32(-2.5), float32(-0.1), float32(-5.47)}, msg["position"])

	msg = ModelMessage(loose, "/assets/")
	assert.Equal(t, false, msg["pivoted"])
	assert.NotContains(t, msg, "texture")
}

func TestTextureMessage(t *testing.T) {
	ref := &scene.TextureRef{Name: "sky"}
	msg := TextureMessage(ref, "/assets/")
	assert.Equal(t, false, msg["loaded"])
	assert.NotContains(t, msg, "url")

	ref.Texture = &assets.Texture{Name: "sky", Path: "textures/sky.png", Width: 4, Height: 2}
	msg = TextureMessage(ref, "/assets/")
	assert.Equal(t, true, msg["loaded"])
	assert.Equal(t, "/assets/textures/sky.png", msg["url"])
	assert.Equal(t, 4, msg["width"])
}

func TestFrameEncoder(t *testing.T) {
	var e frameEncoder
	_, changed := e.take()
	assert.False(t, changed)

	e.upload([]float32{1, 2, 3})
	e.setVisible(true)
	b, changed := e.take()
	require.True(t, changed)

	var f protocol.Frame
	require.NoError(t, f.Decode(b))
	assert.True(t, f.Visible)
	assert.Equal(t, []float32{1, 2, 3}, f.Positions)

	_, changed = e.take()
	assert.False(t, changed)

	e.setVisible(true)
	_, changed = e.take()
	assert.False(t, changed, "same visibility is not a change")

	e.setVisible(false)
	b, changed = e.take()
	require.True(t, changed)
	require.NoError(t, f.Decode(b))
	assert.False(t, f.Visible)
}
