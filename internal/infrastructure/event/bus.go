// Package event dispatches domain events to in-process handlers.
package event

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/travelhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultHandlerTimeout bounds one asynchronous handler call
const DefaultHandlerTimeout = 30 * time.Second

// InMemoryEventBus implements EventBus with in-process pub/sub. By default
// handlers run in the background so a slow mail provider never holds up the
// request that produced the event; Stop waits for them.
type InMemoryEventBus struct {
	registry       *HandlerRegistry
	logger         *zap.Logger
	synchronous    bool
	handlerTimeout time.Duration
	running        atomic.Bool
	wg             sync.WaitGroup
}

// BusOption is a functional option for InMemoryEventBus
type BusOption func(*InMemoryEventBus)

// WithSynchronousDispatch runs handlers inside Publish
func WithSynchronousDispatch() BusOption {
	return func(b *InMemoryEventBus) {
		b.synchronous = true
	}
}

// WithHandlerTimeout overrides DefaultHandlerTimeout
func WithHandlerTimeout(d time.Duration) BusOption {
	return func(b *InMemoryEventBus) {
		if d > 0 {
			b.handlerTimeout = d
		}
	}
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, opts ...BusOption) *InMemoryEventBus {
	b := &InMemoryEventBus{
		registry:       NewHandlerRegistry(),
		logger:         logger,
		handlerTimeout: DefaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.running.Store(true)
	return b
}

// Publish hands events to every registered handler. Handler failures are
// logged, never returned.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if b.synchronous {
				b.dispatch(ctx, handler, event)
				continue
			}
			if !b.running.Load() {
				b.logger.Warn("event bus stopped, dropping event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()))
				continue
			}
			b.wg.Add(1)
			go func(h shared.EventHandler, e shared.DomainEvent) {
				defer b.wg.Done()
				hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.handlerTimeout)
				defer cancel()
				b.dispatch(hctx, h, e)
			}(handler, event)
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start accepts events again after Stop
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started")
	return nil
}

// Stop refuses new asynchronous work and waits for in-flight handlers or ctx
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatch runs one handler, containing panics
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r))
		}
	}()
	if err := handler.Handle(ctx, event); err != nil {
		b.logger.Error("handler failed to process event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err))
	}
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
