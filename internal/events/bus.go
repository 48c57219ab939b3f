package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrBusClosed is returned by Publish once the bus has been closed.
var ErrBusClosed = errors.New("event bus is closed")

// Bus is what publishers and subscribers see of the event bus.
type Bus interface {
	// Publish delivers an event to every subscriber of its type.
	// Fails only when the bus is closed; slow subscribers never block it.
	Publish(ctx context.Context, event Event) error

	// Subscribe registers a handler for one event type and returns the
	// matching unsubscribe function.
	Subscribe(eventType EventType, handler EventHandler) (unsubscribe func())

	// SubscribeAll registers a handler for every event type.
	SubscribeAll(handler EventHandler) (unsubscribe func())

	// Close shuts the bus down, draining what is already buffered.
	Close() error
}

// subscription is one registered handler with its delivery buffer.
type subscription struct {
	id           uint64
	eventType    EventType // empty means all types
	handler      EventHandler
	events       chan Event
	done         chan struct{}
	unsubscribed atomic.Bool
}

// EventBus is the in-process Bus implementation. Each subscription gets its
// own buffered channel and dispatch goroutine, so one stalled handler only
// ever loses its own events.
type EventBus struct {
	mu            sync.RWMutex
	subscriptions map[uint64]*subscription
	nextID        atomic.Uint64
	closed        atomic.Bool
	dropped       atomic.Uint64
	logger        *slog.Logger

	// bufferSize is the size of each subscriber's event buffer.
	bufferSize int
}

// BusOption configures the event bus.
type BusOption func(*EventBus)

// WithBufferSize sets the buffer size for subscriber event channels.
func WithBufferSize(size int) BusOption {
	return func(b *EventBus) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// WithLogger sets the logger for the event bus.
func WithLogger(logger *slog.Logger) BusOption {
	return func(b *EventBus) {
		b.logger = logger
	}
}

// NewBus creates an event bus. The default buffer absorbs a burst of
// download notifications without dropping; see WithBufferSize.
func NewBus(opts ...BusOption) *EventBus {
	b := &EventBus{
		subscriptions: make(map[uint64]*subscription),
		bufferSize:    64,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Publish delivers an event to every matching subscription. The send is
// non-blocking: a full subscriber buffer drops the event for that subscriber
// and counts it in Stats, rather than stalling the feed.
func (b *EventBus) Publish(ctx context.Context, event Event) error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscriptions {
		if sub.eventType != "" && sub.eventType != event.Type {
			continue
		}

		select {
		case sub.events <- event:
		case <-ctx.Done():
			return ctx.Err()
		default:
			b.dropped.Add(1)
			b.logger.Warn("event bus subscriber buffer full, dropping event",
				"event_type", event.Type,
				"subscriber_id", sub.id,
			)
		}
	}

	return nil
}

// Subscribe registers a handler for one event type.
func (b *EventBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return b.subscribe(eventType, handler)
}

// SubscribeAll registers a handler that receives every event type.
func (b *EventBus) SubscribeAll(handler EventHandler) func() {
	return b.subscribe("", handler)
}

func (b *EventBus) subscribe(eventType EventType, handler EventHandler) func() {
	if b.closed.Load() {
		// Subscribing to a closed bus yields a no-op unsubscribe
		return func() {}
	}

	id := b.nextID.Add(1)
	sub := &subscription{
		id:        id,
		eventType: eventType,
		handler:   handler,
		events:    make(chan Event, b.bufferSize),
		done:      make(chan struct{}),
	}

	b.mu.Lock()
	b.subscriptions[id] = sub
	b.mu.Unlock()

	go b.dispatch(sub)

	return func() {
		b.unsubscribe(id)
	}
}

// dispatch is the per-subscription delivery loop. On shutdown it drains
// whatever is already buffered before exiting.
func (b *EventBus) dispatch(sub *subscription) {
	for {
		select {
		case event, ok := <-sub.events:
			if !ok {
				return
			}
			b.safeCall(sub, event)
		case <-sub.done:
			for {
				select {
				case event, ok := <-sub.events:
					if !ok {
						return
					}
					b.safeCall(sub, event)
				default:
					return
				}
			}
		}
	}
}

// safeCall invokes the handler; a panicking handler is logged, not fatal.
func (b *EventBus) safeCall(sub *subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"subscriber_id", sub.id,
				"event_type", event.Type,
				"panic", r,
			)
		}
	}()

	sub.handler(event)
}

func (b *EventBus) unsubscribe(id uint64) {
	b.mu.Lock()
	sub, ok := b.subscriptions[id]
	if ok {
		delete(b.subscriptions, id)
	}
	b.mu.Unlock()

	// The CAS guards against unsubscribe racing Close
	if ok && sub.unsubscribed.CompareAndSwap(false, true) {
		close(sub.done)
		close(sub.events)
	}
}

// Close shuts the bus down. Buffered events are still delivered by each
// subscription's dispatch loop; Close is idempotent.
func (b *EventBus) Close() error {
	if b.closed.Swap(true) {
		return nil
	}

	b.mu.Lock()
	subs := make([]*subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, sub)
	}
	b.subscriptions = make(map[uint64]*subscription)
	b.mu.Unlock()

	for _, sub := range subs {
		if sub.unsubscribed.CompareAndSwap(false, true) {
			close(sub.done)
			close(sub.events)
		}
	}

	return nil
}

// Stats reports the live subscriber count and how many events were dropped
// to full buffers.
func (b *EventBus) Stats() BusStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BusStats{
		SubscriberCount: len(b.subscriptions),
		DroppedEvents:   b.dropped.Load(),
		IsClosed:        b.closed.Load(),
	}
}

// BusStats is the snapshot returned by Stats.
type BusStats struct {
	SubscriberCount int
	DroppedEvents   uint64
	IsClosed        bool
}
