package tui

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/JackWithOneEye/weatherglass/internal/assets"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/websocket"
)

const (
	assetCacheSize = 16
	assetTimeout   = 30 * time.Second
)

type lineMessage struct {
	Line string
	Err  error
}

type connectionResult struct {
	Conn      *websocket.Conn
	Connected bool
	Err       error
}

type assetsLoaded struct {
	Events []scene.Event
}

func connectToRelay(host string) tea.Cmd {
	return func() tea.Msg {
		u := url.URL{Scheme: "ws", Host: host, Path: "/ws"}
		conn, _, err := websocket.Dial(context.Background(), u.String(), nil)
		if err != nil {
			return connectionResult{Err: fmt.Errorf("websocket connection failed: %w", err)}
		}
		return connectionResult{Conn: conn, Connected: true}
	}
}

func listenForLines(conn *websocket.Conn) tea.Cmd {
	return func() tea.Msg {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return lineMessage{Err: err}
		}
		return lineMessage{Line: string(data)}
	}
}

// loadAssets fetches the layout's assets from the relay's static route.
func loadAssets(host string, layout *scene.Layout) tea.Cmd {
	return func() tea.Msg {
		u := url.URL{Scheme: "http", Host: host, Path: "/assets/"}
		src, err := assets.HTTPSource(u.String(), http.DefaultClient)
		if err != nil {
			return assetsLoaded{Events: []scene.Event{scene.AssetFailed{Path: u.String(), Err: err}}}
		}

		ctx, cancel := context.WithTimeout(context.Background(), assetTimeout)
		defer cancel()

		var mu sync.Mutex
		var events []scene.Event
		scene.LoadAssets(ctx, assets.NewLoader(src, assetCacheSize), layout, func(ev scene.Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		})
		return assetsLoaded{Events: events}
	}
}
