package scene

import (
	"context"
	"log"
	"time"
)

// Loop serializes events and frames for one scene onto a single goroutine.
type Loop interface {
	Run(ctx context.Context, frames <-chan time.Time)
	Submit(ctx context.Context, ev Event) error
}

type loop struct {
	scene  *Scene
	events chan Event
}

func NewLoop(s *Scene) Loop {
	return &loop{scene: s, events: make(chan Event, 32)}
}

// Run returns when ctx is done or frames is closed.
func (l *loop) Run(ctx context.Context, frames <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.events:
			l.handle(ev)
		case _, ok := <-frames:
			// events queued before the frame are applied first
			l.drain()
			if !ok {
				return
			}
			l.scene.Frame()
		}
	}
}

func (l *loop) drain() {
	for {
		select {
		case ev := <-l.events:
			l.handle(ev)
		default:
			return
		}
	}
}

func (l *loop) handle(ev Event) {
	if err := l.scene.Handle(ev); err != nil {
		log.Printf("scene event %T: %s", ev, err)
	}
}

func (l *loop) Submit(ctx context.Context, ev Event) error {
	select {
	case l.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
