package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	mu    sync.Mutex
	id    string
	open  bool
	fail  error
	calls int
	lines []string
}

func (s *fakeSubscriber) ID() string { return s.id }

func (s *fakeSubscriber) Open() bool { return s.open }

func (s *fakeSubscriber) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail != nil {
		return s.fail
	}
	s.lines = append(s.lines, text)
	return nil
}

func (s *fakeSubscriber) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

type fakeRecorder struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (r *fakeRecorder) WriteReading(ctx context.Context, line string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return r.err
}

func (r *fakeRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func newSubscribers(hub *Hub) []*fakeSubscriber {
	subs := []*fakeSubscriber{
		{id: "1", open: true},
		{id: "2", open: true},
		{id: "3", open: true},
		{id: "closed", open: false},
	}
	for _, s := range subs {
		hub.Add(s)
	}
	return subs
}

func TestOnLineSkipsClosed(t *testing.T) {
	hub := NewHub()
	subs := newSubscribers(hub)
	r := NewRelay(hub, nil)

	assert.Equal(t, 3, r.OnLine("X"))

	for _, s := range subs[:3] {
		assert.Equal(t, []string{"X"}, s.received())
	}
	assert.Equal(t, 0, subs[3].calls)
}

func TestOnLineIsolatesFailures(t *testing.T) {
	hub := NewHub()
	subs := newSubscribers(hub)
	subs[1].fail = errors.New("broken pipe")
	r := NewRelay(hub, nil)

	assert.Equal(t, 2, r.OnLine("X"))

	assert.Equal(t, []string{"X"}, subs[0].received())
	assert.Empty(t, subs[1].received())
	assert.Equal(t, 1, subs[1].calls)
	assert.Equal(t, []string{"X"}, subs[2].received())
}

func TestOnLineUsesLiveSet(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, nil)
	assert.Equal(t, 0, r.OnLine("a"))

	s := &fakeSubscriber{id: "late", open: true}
	hub.Add(s)
	assert.Equal(t, 1, r.OnLine("b"))

	hub.Remove(s)
	assert.Equal(t, 0, r.OnLine("c"))
	assert.Equal(t, []string{"b"}, s.received())
}

func TestRunRelaysAndRecords(t *testing.T) {
	hub := NewHub()
	subs := newSubscribers(hub)
	rec := &fakeRecorder{err: errors.New("disk full")}
	r := NewRelay(hub, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, r.Submit(ctx, LineReceived{Text: "t=20"}))
	require.NoError(t, r.Submit(ctx, LineReceived{Text: "t=21"}))

	require.Eventually(t, func() bool {
		return len(rec.recorded()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"t=20", "t=21"}, subs[0].received())
	assert.Equal(t, []string{"t=20", "t=21"}, subs[2].received())
	assert.Equal(t, []string{"t=20", "t=21"}, rec.recorded())

	last, ok := r.LastLine()
	assert.True(t, ok)
	assert.Equal(t, "t=21", last)
}

func TestRunReplaysLastLineOnConnect(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	early := &fakeSubscriber{id: "early", open: true}
	require.NoError(t, r.Submit(ctx, SubscriberConnected{Subscriber: early}))
	require.NoError(t, r.Submit(ctx, LineReceived{Text: "hum=40"}))
	require.Eventually(t, func() bool {
		_, ok := r.LastLine()
		return ok
	}, time.Second, 5*time.Millisecond)

	late := &fakeSubscriber{id: "late", open: true}
	hub.Add(late)
	require.NoError(t, r.Submit(ctx, SubscriberConnected{Subscriber: late}))
	require.NoError(t, r.Submit(ctx, SubscriberDisconnected{Subscriber: late}))

	require.Eventually(t, func() bool {
		return len(late.received()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"hum=40"}, late.received())
	assert.Empty(t, early.received(), "early was never added to the hub")
}

func TestRunDoesNotReplayDeliveredLine(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the transport registers before announcing the connection
	s := &fakeSubscriber{id: "s", open: true}
	hub.Add(s)
	require.NoError(t, r.Submit(ctx, LineReceived{Text: "t=20"}))
	require.NoError(t, r.Submit(ctx, SubscriberConnected{Subscriber: s}))
	require.NoError(t, r.Submit(ctx, LineReceived{Text: "t=21"}))
	go r.Run(ctx)

	require.Eventually(t, func() bool {
		return len(s.received()) >= 2
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"t=20", "t=21"}, s.received())
}

func TestRunReplaysAfterReconnect(t *testing.T) {
	hub := NewHub()
	r := NewRelay(hub, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &fakeSubscriber{id: "s", open: true}
	hub.Add(s)
	require.NoError(t, r.Submit(ctx, LineReceived{Text: "t=20"}))
	require.NoError(t, r.Submit(ctx, SubscriberDisconnected{Subscriber: s}))
	require.NoError(t, r.Submit(ctx, SubscriberConnected{Subscriber: s}))
	go r.Run(ctx)

	require.Eventually(t, func() bool {
		return len(s.received()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"t=20", "t=20"}, s.received())
}

func TestSubmitCancelled(t *testing.T) {
	r := NewRelay(NewHub(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var err error
	for range 128 {
		if err = r.Submit(ctx, LineReceived{Text: "x"}); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, context.Canceled)
}
