// Package sse streams calendar events to browsers as Server-Sent Events.
//
// Two families of events flow through the broker. Occasion events follow
// changes to occasion files and are trailed by a rate limited
// calendar.updated hint. Day events announce a new local Jalali date; the
// latest one is replayed to every client that connects later.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Event types published by the service.
const (
	TypeOccasionCreated = "occasion.created"
	TypeOccasionUpdated = "occasion.updated"
	TypeOccasionDeleted = "occasion.deleted"
	TypeCalendarUpdated = "calendar.updated"
	TypeDayChanged      = "day.changed"
)

const (
	clientBuffer    = 64
	defaultThrottle = 2 * time.Second
	retryMillis     = 3000
)

// Event is one message on the stream.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// encode renders event in the text/event-stream wire format.
func encode(event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload)), nil
}

func occasionEventType(kind string) (string, bool) {
	switch kind {
	case "created":
		return TypeOccasionCreated, true
	case "updated":
		return TypeOccasionUpdated, true
	case "deleted":
		return TypeOccasionDeleted, true
	}
	return "", false
}

// hub is the broker state. Only the broker goroutine touches it.
type hub struct {
	clients map[chan []byte]struct{}

	throttle     time.Duration
	lastCalendar time.Time
	// trailing fires once the throttle window closes on a suppressed
	// calendar.updated.
	trailing <-chan time.Time

	today []byte
}

func (h *hub) send(raw []byte) {
	for ch := range h.clients {
		select {
		case ch <- raw:
		default:
			// Slow client; it misses this event.
		}
	}
}

func (h *hub) broadcast(event Event) {
	if raw, err := encode(event); err == nil {
		h.send(raw)
	}
}

func (h *hub) add(ch chan []byte) {
	h.clients[ch] = struct{}{}
	if h.today != nil {
		ch <- h.today
	}
}

func (h *hub) remove(ch chan []byte) {
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *hub) occasionChanged(kind, path string, now time.Time) {
	if typ, ok := occasionEventType(kind); ok {
		h.broadcast(Event{Type: typ, Data: map[string]string{"path": path}})
	}
	if wait := h.throttle - now.Sub(h.lastCalendar); wait > 0 {
		if h.trailing == nil {
			h.trailing = time.After(wait)
		}
		return
	}
	h.calendarUpdated(now)
}

func (h *hub) calendarUpdated(now time.Time) {
	h.lastCalendar = now
	h.trailing = nil
	h.broadcast(Event{Type: TypeCalendarUpdated, Data: map[string]string{}})
}

func (h *hub) dayChanged(date string) {
	raw, err := encode(Event{Type: TypeDayChanged, Data: map[string]string{"date": date}})
	if err != nil {
		return
	}
	h.today = raw
	h.send(raw)
}

// Broker fans events out to connected clients. Public methods hand
// closures to a single goroutine that owns the hub.
type Broker struct {
	ops     chan func(*hub)
	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker that emits calendar.updated at most once per
// throttle interval.
func NewBroker(throttle time.Duration) *Broker {
	if throttle <= 0 {
		throttle = defaultThrottle
	}
	b := &Broker{
		ops:     make(chan func(*hub)),
		stopCh:  make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go b.run(&hub{clients: make(map[chan []byte]struct{}), throttle: throttle})
	return b
}

func (b *Broker) run(h *hub) {
	defer close(b.stopped)
	for {
		select {
		case <-b.stopCh:
			for ch := range h.clients {
				close(ch)
			}
			return
		case op := <-b.ops:
			op(h)
		case now := <-h.trailing:
			h.calendarUpdated(now)
		}
	}
}

// do runs op on the broker goroutine and waits for it. It reports false
// when the broker is closed.
func (b *Broker) do(op func(*hub)) bool {
	if b.closed.Load() {
		return false
	}
	done := make(chan struct{})
	select {
	case b.ops <- func(h *hub) { op(h); close(done) }:
	case <-b.stopped:
		return false
	}
	<-done
	return true
}

// Close stops the broker and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe registers a client. The channel is closed by Unsubscribe or
// Close, and is returned closed when the broker already stopped.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	if !b.do(func(h *hub) { h.add(ch) }) {
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.do(func(h *hub) { h.remove(ch) })
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	n := 0
	b.do(func(h *hub) { n = len(h.clients) })
	return n
}

// Publish sends an arbitrary event to all connected clients.
func (b *Broker) Publish(event Event) {
	b.do(func(h *hub) { h.broadcast(event) })
}

// PublishOccasionEvent reports an occasion file change. kind is "created",
// "updated" or "deleted".
func (b *Broker) PublishOccasionEvent(kind, path string) {
	now := time.Now()
	b.do(func(h *hub) { h.occasionChanged(kind, path, now) })
}

// PublishDayChanged announces that the local Jalali date is now date.
func (b *Broker) PublishDayChanged(date string) {
	b.do(func(h *hub) { h.dayChanged(date) })
}

// ServeHTTP streams events to one client (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
