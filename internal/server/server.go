package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/JackWithOneEye/weatherglass/internal/database"
	"github.com/JackWithOneEye/weatherglass/internal/livereload"
	"github.com/JackWithOneEye/weatherglass/internal/relay"
	"github.com/JackWithOneEye/weatherglass/internal/scene"
	"github.com/a-h/templ"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

const (
	relayPath       = "/ws"
	scenePath       = "/scene"
	livereloadPath  = "/_livereload"
	subscriberQueue = 16
)

type ServerConfig interface {
	AssetDir() string
	Dev() bool
	Port() uint
	ReadingsLimit() uint
}

type Relay interface {
	LastLine() (string, bool)
	Submit(ctx context.Context, ev relay.Event) error
}

type server struct {
	ctx    context.Context
	cfg    ServerConfig
	db     database.DatabaseService
	hub    *relay.Hub
	relay  Relay
	layout *scene.Layout
}

func NewServer(ctx context.Context, cfg ServerConfig, db database.DatabaseService, hub *relay.Hub, r Relay) *http.Server {
	s := &server{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		hub:    hub,
		relay:  r,
		layout: scene.DefaultLayout(),
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port()),
		Handler:           s.registerRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
}

func (s *server) registerRoutes() http.Handler {
	r := gin.Default()

	r.Static("/assets", s.cfg.AssetDir())

	index := func(c *gin.Context) {
		g := pageGlobals{RelayPath: relayPath, ScenePath: scenePath, InitialRain: s.layout.Rain.Count}
		templ.Handler(indexPage(g)).ServeHTTP(c.Writer, c.Request)
	}
	if s.cfg.Dev() {
		r.GET(livereloadPath, livereload.Handler)
		r.GET("/", livereload.Inject(livereloadPath, index))
	} else {
		r.GET("/", index)
	}

	r.GET(scenePath, func(c *gin.Context) {
		c.JSON(http.StatusOK, s.layout)
	})

	r.GET("/status", func(c *gin.Context) {
		last, ok := s.relay.LastLine()
		c.JSON(http.StatusOK, gin.H{
			"subscribers": s.hub.Len(),
			"lastLine":    last,
			"hasLine":     ok,
		})
	})

	r.GET("/readings", s.readingsHandler)

	r.GET(relayPath, s.relayHandler)

	return r
}

func (s *server) readingsHandler(c *gin.Context) {
	limit := int(s.cfg.ReadingsLimit())
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			c.String(http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, limit)
	}

	readings, err := s.db.RecentReadings(c.Request.Context(), limit)
	if err != nil {
		log.Printf("could not load readings: %s", err)
		c.String(http.StatusInternalServerError, "could not load readings")
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (s *server) relayHandler(c *gin.Context) {
	socket, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Printf("could not open websocket: %s", err)
		return
	}
	defer socket.CloseNow()

	sub := newSubscriber(subscriberQueue)
	s.hub.Add(sub)
	defer func() {
		sub.close()
		s.hub.Remove(sub)
		if err := s.relay.Submit(s.ctx, relay.SubscriberDisconnected{Subscriber: sub}); err != nil {
			log.Printf("could not report disconnect of %s: %s", sub.ID(), err)
		}
	}()

	// subscribers never send; CloseRead handles control frames and cancels on close
	ctx := socket.CloseRead(c.Request.Context())
	if err := s.relay.Submit(ctx, relay.SubscriberConnected{Subscriber: sub}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case line := <-sub.msgs:
			err := socket.Write(ctx, websocket.MessageText, []byte(line))
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			if err != nil {
				log.Printf("could not write to websocket %s: %s", sub.ID(), err)
				return
			}
		}
	}
}
