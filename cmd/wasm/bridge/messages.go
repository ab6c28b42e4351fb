// Package bridge connects a scene running in the browser's wasm worker to the page.
package bridge

import (
	"fmt"

	"github.com/JackWithOneEye/weatherglass/internal/protocol"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
)

// page -> worker
const (
	MsgDensity = iota
	MsgTilt
	MsgRain
)

// worker -> page
const (
	MsgReady = iota
	MsgModel
	MsgTexture
	MsgFrame
	MsgReading
	MsgAssetError
)

// PageMessage is the decoded data of a message posted by the page.
type PageMessage struct {
	Type    int
	Value   int
	Enabled bool
}

func (m PageMessage) Event() (scene.Event, error) {
	switch m.Type {
	case MsgDensity:
		return scene.DensityChanged{Count: m.Value}, nil
	case MsgTilt:
		return scene.TiltChanged{Degrees: m.Value}, nil
	case MsgRain:
		return scene.RainToggled{Enabled: m.Enabled}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %d", m.Type)
	}
}

func vec(v scene.Vec3) []any {
	return []any{v.X, v.Y, v.Z}
}

// ModelMessage describes a newly attached model node. The renderer adds the glb bytes; url is
// the fallback when they are missing and base resolves the glb's external resources.
func ModelMessage(n *scene.Node, assetBase string) map[string]any {
	msg := map[string]any{
		"type":     MsgModel,
		"name":     n.Name,
		"url":      assetBase + n.Model.Path,
		"base":     assetBase,
		"position": vec(n.Position),
		"rotation": vec(n.Rotation),
		"pivoted":  false,
	}
	if p := n.Parent(); p != nil && p.Parent() != nil {
		msg["pivoted"] = true
		msg["parent"] = p.Name
	}
	if n.Texture != nil {
		msg["texture"] = n.Texture.Name
	}
	return msg
}

func TextureMessage(ref *scene.TextureRef, assetBase string) map[string]any {
	msg := map[string]any{
		"type":   MsgTexture,
		"name":   ref.Name,
		"loaded": ref.Loaded(),
	}
	if ref.Loaded() {
		msg["url"] = assetBase + ref.Texture.Path
		msg["width"] = ref.Texture.Width
		msg["height"] = ref.Texture.Height
	}
	return msg
}

// frameEncoder keeps the last uploaded positions encoded, reusing one buffer.
type frameEncoder struct {
	frame protocol.Frame
	buf   []byte
	dirty bool
}

func (e *frameEncoder) upload(positions []float32) {
	e.frame.Positions = append(e.frame.Positions[:0], positions...)
	e.dirty = true
}

func (e *frameEncoder) setVisible(visible bool) {
	if e.frame.Visible != visible {
		e.frame.Visible = visible
		e.dirty = true
	}
}

// take returns the encoded frame if it changed since the last call.
func (e *frameEncoder) take() ([]byte, bool) {
	if !e.dirty {
		return nil, false
	}
	e.dirty = false
	e.buf = e.frame.Encode(e.buf)
	return e.buf, true
}
