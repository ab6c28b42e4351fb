package scene

import "github.com/JackWithOneEye/weatherglass/internal/assets"

type Event interface {
	sceneEvent()
}

type DensityChanged struct {
	Count int
}

type TiltChanged struct {
	Degrees int
}

type RainToggled struct {
	Enabled bool
}

type AssetLoaded struct {
	Model *assets.Model
}

type TextureLoaded struct {
	Texture *assets.Texture
}

type AssetFailed struct {
	Path string
	Err  error
}

type ReadingReceived struct {
	Line string
}

func (DensityChanged) sceneEvent()  {}
func (TiltChanged) sceneEvent()     {}
func (RainToggled) sceneEvent()     {}
func (AssetLoaded) sceneEvent()     {}
func (TextureLoaded) sceneEvent()   {}
func (AssetFailed) sceneEvent()     {}
func (ReadingReceived) sceneEvent() {}
