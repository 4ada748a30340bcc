package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// InMemoryDispatcher fans events out to subscribed handlers inside the process.
type InMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	async     bool
	inflight  sync.WaitGroup
	logger    *zap.Logger
}

// NewInMemoryDispatcher creates a dispatcher instance. When async is true, Publish returns
// before handlers run and handlers see a context that outlives the publishing request.
func NewInMemoryDispatcher(logger *zap.Logger, async bool) *InMemoryDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryDispatcher{
		listeners: make(map[EventType][]EventHandler),
		async:     async,
		logger:    logger,
	}
}

// Publish invokes handlers for the given event. Handler failures are logged, never returned.
func (d *InMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	if !d.async {
		d.deliver(ctx, event, handlers)
		return nil
	}

	detached := context.WithoutCancel(ctx)
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		d.deliver(detached, event, handlers)
	}()
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *InMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Wait blocks until all asynchronous deliveries started so far have finished.
func (d *InMemoryDispatcher) Wait() {
	d.inflight.Wait()
}

func (d *InMemoryDispatcher) deliver(ctx context.Context, event Event, handlers []EventHandler) {
	for _, handler := range handlers {
		if err := d.invoke(ctx, event, handler); err != nil {
			d.logger.Error("event handler failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.String("complaint_id", event.ComplaintID),
				zap.Error(err))
		}
	}
}

func (d *InMemoryDispatcher) invoke(ctx context.Context, event Event, handler EventHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, event)
}
