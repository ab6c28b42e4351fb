package server

import (
	"sync/atomic"

	"github.com/JackWithOneEye/weatherglass/internal/relay"
	"github.com/google/uuid"
)

type subscriber struct {
	id   string
	msgs chan string
	open atomic.Bool
}

func newSubscriber(queueSize int) *subscriber {
	s := &subscriber{
		id:   uuid.NewString(),
		msgs: make(chan string, queueSize),
	}
	s.open.Store(true)
	return s
}

func (s *subscriber) ID() string {
	return s.id
}

func (s *subscriber) Open() bool {
	return s.open.Load()
}

func (s *subscriber) Send(text string) error {
	if !s.open.Load() {
		return relay.ErrClosed
	}
	select {
	case s.msgs <- text:
		return nil
	default:
		return relay.ErrSlowSubscriber
	}
}

func (s *subscriber) close() {
	s.open.Store(false)
}
