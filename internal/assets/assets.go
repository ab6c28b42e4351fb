// Package assets loads model and texture files for the scene.
package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/JackWithOneEye/weatherglass/internal/lrucache"
)

var ErrMalformed = errors.New("malformed asset")

const (
	glbMagic      = 0x46546c67 // "glTF"
	glbHeaderSize = 12
)

type Model struct {
	Path    string
	Version uint32
	Data    []byte
}

type Texture struct {
	Name   string
	Path   string
	Format string
	Width  int
	Height int
	Data   []byte
}

type Loader interface {
	LoadModel(ctx context.Context, path string) (*Model, error)
	LoadTexture(ctx context.Context, name, path string) (*Texture, error)
}

type loader struct {
	src   Source
	cache lrucache.LruCache[string, []byte]
}

func NewLoader(src Source, cacheSize int) Loader {
	return &loader{src: src, cache: lrucache.NewLruCache[string, []byte](cacheSize)}
}

func (l *loader) LoadModel(ctx context.Context, path string) (*Model, error) {
	data, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	version, err := decodeGLBHeader(data)
	if err != nil {
		l.cache.Remove(path)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Model{Path: path, Version: version, Data: data}, nil
}

func (l *loader) LoadTexture(ctx context.Context, name, path string) (*Texture, error) {
	data, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		l.cache.Remove(path)
		return nil, fmt.Errorf("%s: %w: %w", path, ErrMalformed, err)
	}
	return &Texture{
		Name:   name,
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
	}, nil
}

func (l *loader) read(ctx context.Context, path string) ([]byte, error) {
	if data, ok := l.cache.Get(path); ok {
		return data, nil
	}
	data, err := l.src.ReadAsset(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	l.cache.Add(path, data)
	return data, nil
}

func decodeGLBHeader(b []byte) (uint32, error) {
	if len(b) < glbHeaderSize {
		return 0, fmt.Errorf("%w: too short", ErrMalformed)
	}
	if binary.LittleEndian.Uint32(b[0:4]) != glbMagic {
		return 0, fmt.Errorf("%w: not a binary glTF file", ErrMalformed)
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != 2 {
		return 0, fmt.Errorf("%w: unsupported glTF version %d", ErrMalformed, version)
	}
	length := binary.LittleEndian.Uint32(b[8:12])
	if int(length) > len(b) {
		return 0, fmt.Errorf("%w: declared length %d exceeds %d bytes", ErrMalformed, length, len(b))
	}
	return version, nil
}
