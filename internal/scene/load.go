package scene

import (
	"context"
	"sync"

	"github.com/JackWithOneEye/weatherglass/internal/assets"
)

// LoadAssets loads every texture and model named by the layout concurrently and reports each
// outcome through submit. It returns once all loads have finished.
func LoadAssets(ctx context.Context, l assets.Loader, layout *Layout, submit func(Event)) {
	var wg sync.WaitGroup
	for name, path := range layout.Textures {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t, err := l.LoadTexture(ctx, name, path)
			if err != nil {
				submit(AssetFailed{Path: path, Err: err})
				return
			}
			submit(TextureLoaded{Texture: t})
		}()
	}
	for _, m := range layout.Models {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model, err := l.LoadModel(ctx, m.Path)
			if err != nil {
				submit(AssetFailed{Path: m.Path, Err: err})
				return
			}
			submit(AssetLoaded{Model: model})
		}()
	}
	wg.Wait()
}
