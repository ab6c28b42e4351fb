package server

import (
	"context"
	"io/fs"
	"sync"

	"github.com/JackWithOneEye/weatherglass/internal/assets"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
)

// CheckAssets loads every asset the default layout needs from fsys, the tree served under /assets,
// and returns the ones that are missing or malformed.
func CheckAssets(ctx context.Context, fsys fs.FS) []scene.AssetFailed {
	var mu sync.Mutex
	var failed []scene.AssetFailed
	loader := assets.NewLoader(assets.DirSource(fsys), 1)
	scene.LoadAssets(ctx, loader, scene.DefaultLayout(), func(ev scene.Event) {
		if f, ok := ev.(scene.AssetFailed); ok {
			mu.Lock()
			failed = append(failed, f)
			mu.Unlock()
		}
	})
	return failed
}
