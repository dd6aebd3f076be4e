package streaming

import (
	"context"
	"fmt"
	"sync"
	"time"

	"scamtrap/internal/domain/models"
	"scamtrap/pkg/logger"
)

const (
	defaultBufferSize    = 64
	remoteQueueSize      = 256
	remotePublishTimeout = 5 * time.Second
)

// remotePublisher delivers events to an external broker
type remotePublisher interface {
	PublishDetection(ctx context.Context, event *DetectionEvent) error
}

// EventBus fans detection events out to in-process subscribers and,
// when configured, to NATS JetStream. Delivery is best effort and
// never blocks the caller: slow subscribers have events dropped, and
// remote publishes run on a background worker behind a bounded queue
// with the same drop-on-full semantics.
type EventBus struct {
	remote      remotePublisher
	logger      *logger.Logger
	remoteQueue chan *DetectionEvent
	remoteDone  chan struct{}

	mu          sync.RWMutex
	subscribers map[string]chan *DetectionEvent
	nextID      int
	closed      bool
}

// NewEventBus creates an event bus. nats may be nil for local-only
// operation.
func NewEventBus(nats *NATSPublisher, log *logger.Logger) *EventBus {
	if nats == nil {
		return newEventBus(nil, log)
	}
	return newEventBus(nats, log)
}

func newEventBus(remote remotePublisher, log *logger.Logger) *EventBus {
	b := &EventBus{
		remote:      remote,
		logger:      log.WithComponent("eventbus"),
		subscribers: make(map[string]chan *DetectionEvent),
	}

	if remote != nil {
		b.remoteQueue = make(chan *DetectionEvent, remoteQueueSize)
		b.remoteDone = make(chan struct{})
		go b.forwardRemote()
	}

	return b
}

// forwardRemote drains the remote queue so a slow or reconnecting
// broker only ever delays this worker, never a publisher
func (b *EventBus) forwardRemote() {
	defer close(b.remoteDone)

	for event := range b.remoteQueue {
		ctx, cancel := context.WithTimeout(context.Background(), remotePublishTimeout)
		if err := b.remote.PublishDetection(ctx, event); err != nil {
			b.logger.Warn().Err(err).Msg("failed to publish event to NATS")
		}
		cancel()
	}
}

// Subscribe registers a new subscriber and returns its channel along
// with an unsubscribe function
func (b *EventBus) Subscribe() (<-chan *DetectionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := fmt.Sprintf("sub-%d", b.nextID)
	b.nextID++

	ch := make(chan *DetectionEvent, defaultBufferSize)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// SubscriberCount returns the number of active subscribers
func (b *EventBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Publish delivers an event to all subscribers and queues it for the
// remote worker when one is running. It never blocks.
func (b *EventBus) Publish(event *DetectionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Debug().Str("subscriber", id).Msg("subscriber buffer full, dropping event")
		}
	}

	if b.remoteQueue != nil {
		select {
		case b.remoteQueue <- event:
		default:
			b.logger.Debug().Msg("remote queue full, dropping event")
		}
	}
}

// Close shuts down the bus, all subscriber channels and the remote
// worker
func (b *EventBus) Close() {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true

	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}

	remoteQueue := b.remoteQueue
	b.mu.Unlock()

	if remoteQueue != nil {
		close(remoteQueue)
		<-b.remoteDone
	}
}

// Publisher adapts the event bus to the engine's fire-and-forget
// publishing contract
type Publisher struct {
	bus *EventBus
}

// NewPublisher wraps an event bus for use by the detection engine
func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish wraps a record in an event envelope and broadcasts it. It
// never blocks the detection path.
func (p *Publisher) Publish(rec models.ConversationRecord) {
	p.bus.Publish(NewDetectionEvent(rec))
}
