// Package relay fans out sensor lines to socket subscribers.
package relay

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"
)

var (
	ErrClosed         = errors.New("subscriber closed")
	ErrSlowSubscriber = errors.New("subscriber too slow")
)

type Subscriber interface {
	ID() string
	Open() bool
	// Send must not block; a line is either fully queued or rejected.
	Send(text string) error
}

type Recorder interface {
	WriteReading(ctx context.Context, line string, at time.Time) error
}

type Event interface {
	relayEvent()
}

type LineReceived struct {
	Text string
	At   time.Time
}

type SubscriberConnected struct {
	Subscriber Subscriber
}

type SubscriberDisconnected struct {
	Subscriber Subscriber
}

func (LineReceived) relayEvent()           {}
func (SubscriberConnected) relayEvent()    {}
func (SubscriberDisconnected) relayEvent() {}

type Relay struct {
	subs     SubscriberSet
	recorder Recorder
	events   chan Event
	lastLine atomic.Pointer[string]
	// subscribers that got a line through OnLine; owned by the Run goroutine
	served map[string]struct{}
}

// NewRelay creates a relay over subs. recorder may be nil.
func NewRelay(subs SubscriberSet, recorder Recorder) *Relay {
	return &Relay{
		subs:     subs,
		recorder: recorder,
		events:   make(chan Event, 64),
		served:   make(map[string]struct{}),
	}
}

// OnLine sends text to every open subscriber and returns the number of successful sends.
// It must not run concurrently with Run.
func (r *Relay) OnLine(text string) int {
	delivered := 0
	for s := range r.subs.All() {
		if !s.Open() {
			continue
		}
		if err := s.Send(text); err != nil {
			log.Printf("could not relay line to %s: %s", s.ID(), err)
			continue
		}
		r.served[s.ID()] = struct{}{}
		delivered++
	}
	return delivered
}

func (r *Relay) LastLine() (string, bool) {
	l := r.lastLine.Load()
	if l == nil {
		return "", false
	}
	return *l, true
}

func (r *Relay) Submit(ctx context.Context, ev Event) error {
	select {
	case r.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run handles submitted events one at a time until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.events:
			r.handle(ctx, ev)
		}
	}
}

func (r *Relay) handle(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case LineReceived:
		r.lastLine.Store(&e.Text)
		r.OnLine(e.Text)
		if r.recorder != nil {
			at := e.At
			if at.IsZero() {
				at = time.Now()
			}
			if err := r.recorder.WriteReading(ctx, e.Text, at); err != nil {
				log.Printf("could not record reading: %s", err)
			}
		}
	case SubscriberConnected:
		log.Printf("subscriber connected: %s", e.Subscriber.ID())
		// a subscriber added to the hub before this event may already have the line
		if _, ok := r.served[e.Subscriber.ID()]; ok {
			return
		}
		if last, ok := r.LastLine(); ok && e.Subscriber.Open() {
			if err := e.Subscriber.Send(last); err != nil {
				log.Printf("could not replay last line to %s: %s", e.Subscriber.ID(), err)
			}
		}
	case SubscriberDisconnected:
		delete(r.served, e.Subscriber.ID())
		log.Printf("subscriber disconnected: %s", e.Subscriber.ID())
	}
}
