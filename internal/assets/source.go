package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
)

type Source interface {
	ReadAsset(ctx context.Context, name string) ([]byte, error)
}

type dirSource struct {
	fsys fs.FS
}

func DirSource(fsys fs.FS) Source {
	return &dirSource{fsys}
}

func (s *dirSource) ReadAsset(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.fsys, path.Clean(name))
}

type httpSource struct {
	base   *url.URL
	client *http.Client
}

// HTTPSource reads assets relative to baseURL, e.g. "http://localhost:5173/assets/".
func HTTPSource(baseURL string, client *http.Client) (Source, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid asset base url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpSource{base: u, client: client}, nil
}

func (s *httpSource) ReadAsset(ctx context.Context, name string) ([]byte, error) {
	u := s.base.JoinPath(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
