//go:build js
// +build js

package bridge

import (
	"syscall/js"

	"github.com/JackWithOneEye/weatherglass/internal/scene"
)

type Poster interface {
	PostMessage(msg any, transfer ...any)
}

type globalPoster struct {
	global js.Value
}

func NewPoster() Poster {
	return &globalPoster{global: js.Global()}
}

func (p *globalPoster) PostMessage(msg any, transfer ...any) {
	if len(transfer) == 0 {
		p.global.Call("postMessage", msg)
		return
	}
	p.global.Call("postMessage", msg, transfer)
}

// Renderer forwards scene changes to the page, which owns the WebGL context.
type Renderer struct {
	poster    Poster
	assetBase string
	frames    frameEncoder
	tilt      float32
}

func NewRenderer(p Poster, assetBase string) *Renderer {
	return &Renderer{poster: p, assetBase: assetBase}
}

func (r *Renderer) AddModel(node *scene.Node) {
	msg := ModelMessage(node, r.assetBase)
	if len(node.Model.Data) == 0 {
		r.poster.PostMessage(msg)
		return
	}
	arr := bytesToJS(node.Model.Data)
	msg["data"] = arr
	r.poster.PostMessage(msg, arr.Get("buffer"))
}

func (r *Renderer) Render(cam scene.Camera, s *scene.Scene) {
	tilt := s.Pivot().Rotation.X
	b, changed := r.frames.take()
	if !changed && tilt == r.tilt {
		return
	}
	r.tilt = tilt

	msg := map[string]any{"type": MsgFrame, "tilt": tilt}
	if !changed {
		r.poster.PostMessage(msg)
		return
	}
	arr := bytesToJS(b)
	msg["data"] = arr
	r.poster.PostMessage(msg, arr.Get("buffer"))
}

func (r *Renderer) SetRainVisible(visible bool) {
	r.frames.setVisible(visible)
}

func (r *Renderer) UpdateTexture(ref *scene.TextureRef) {
	r.poster.PostMessage(TextureMessage(ref, r.assetBase))
}

func (r *Renderer) UploadPositions(positions []float32) {
	r.frames.upload(positions)
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}
