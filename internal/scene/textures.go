package scene

import (
	"sync"

	"github.com/JackWithOneEye/weatherglass/internal/assets"
)

// TextureRef is a shared handle to a texture that may not have loaded yet.
type TextureRef struct {
	Name    string
	Texture *assets.Texture
}

func (r *TextureRef) Loaded() bool {
	return r != nil && r.Texture != nil
}

type TextureRegistry struct {
	mu   sync.Mutex
	refs map[string]*TextureRef
}

func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{refs: make(map[string]*TextureRef)}
}

// Lookup returns the handle for name, creating an empty one on first use.
func (r *TextureRegistry) Lookup(name string) *TextureRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.refs[name]
	if !ok {
		ref = &TextureRef{Name: name}
		r.refs[name] = ref
	}
	return ref
}

func (r *TextureRegistry) Fill(t *assets.Texture) *TextureRef {
	ref := r.Lookup(t.Name)
	r.mu.Lock()
	ref.Texture = t
	r.mu.Unlock()
	return ref
}
