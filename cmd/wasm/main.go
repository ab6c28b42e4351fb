//go:build js
// +build js

package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"syscall/js"
	"time"

	"github.com/JackWithOneEye/weatherglass/cmd/wasm/bridge"
	"github.com/JackWithOneEye/weatherglass/internal/assets"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
	"github.com/coder/websocket"
)

const assetCacheSize = 16

var (
	ctx = context.Background()

	loop   scene.Loop
	frames = make(chan time.Time, 1)
	poster = bridge.NewPoster()

	requestAnimationFrame = js.Global().Get("requestAnimationFrame")
	frameFunc             js.Func

	onMessageFunc = js.FuncOf(func(this js.Value, args []js.Value) any {
		return onMessage(args[0])
	})
)

func main() {
	global := js.Global()
	frameFunc = js.FuncOf(func(this js.Value, args []js.Value) any {
		select {
		case frames <- time.Now():
		default:
		}
		requestAnimationFrame.Invoke(frameFunc)
		return js.Undefined()
	})
	defer func() {
		frameFunc.Release()

		global.Call("removeEventListener", "message", onMessageFunc)
		onMessageFunc.Release()
	}()

	origin := global.Get("location").Get("origin").String()
	assetBase := "/assets/"

	s, err := scene.New(scene.DefaultLayout(), bridge.NewRenderer(poster, assetBase), nil)
	if err != nil {
		log.Fatalf("could not create scene: %s", err)
	}
	loop = scene.NewLoop(s)
	go loop.Run(ctx, frames)

	global.Call("addEventListener", "message", onMessageFunc)
	poster.PostMessage(map[string]any{"type": bridge.MsgReady})
	requestAnimationFrame.Invoke(frameFunc)

	go loadAssets(origin+assetBase, s.Layout())

	conn, _, err := websocket.Dial(ctx, strings.Replace(origin, "http", "ws", 1)+"/ws", nil)
	if err != nil {
		log.Fatalf("websocket dial failed: %s", err)
	}
	log.Println("WS CONN OPEN")

	for {
		_, b, err := conn.Read(ctx)
		if err != nil {
			log.Fatalf("could not read from websocket: %s", err)
		}
		line := string(b)
		if err := loop.Submit(ctx, scene.ReadingReceived{Line: line}); err != nil {
			log.Printf("could not submit reading: %s", err)
		}
		poster.PostMessage(map[string]any{"type": bridge.MsgReading, "line": line})
	}
}

func loadAssets(baseURL string, layout *scene.Layout) {
	src, err := assets.HTTPSource(baseURL, http.DefaultClient)
	if err != nil {
		log.Printf("invalid asset url %s: %s", baseURL, err)
		return
	}
	scene.LoadAssets(ctx, assets.NewLoader(src, assetCacheSize), layout, func(ev scene.Event) {
		if f, ok := ev.(scene.AssetFailed); ok {
			poster.PostMessage(map[string]any{"type": bridge.MsgAssetError, "path": f.Path, "error": f.Err.Error()})
		}
		if err := loop.Submit(ctx, ev); err != nil {
			log.Printf("could not submit %T: %s", ev, err)
		}
	})
}

func onMessage(msgEvt js.Value) js.Value {
	data := msgEvt.Get("data")
	msg := bridge.PageMessage{Type: data.Get("type").Int()}
	if v := data.Get("value"); v.Type() == js.TypeNumber {
		msg.Value = v.Int()
	}
	if v := data.Get("enabled"); v.Type() == js.TypeBoolean {
		msg.Enabled = v.Bool()
	}

	ev, err := msg.Event()
	if err != nil {
		log.Printf("%s", err)
		return makeError(err.Error()).Value
	}
	// callbacks must not block the event loop
	go func() {
		if err := loop.Submit(ctx, ev); err != nil {
			log.Printf("could not submit %T: %s", ev, err)
		}
	}()
	return js.Undefined()
}

func makeError(msg string) js.Error {
	return js.Error{Value: js.ValueOf(msg)}
}
