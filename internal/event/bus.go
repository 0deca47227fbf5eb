package event

import (
	"sync"

	"go.uber.org/zap"
)

// Bus is a synchronous in-process broadcast notifier. Publish invokes every
// listener registered for the event, in registration order, before it
// returns. There is no queueing and no cross-process fan-out.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
	logger *zap.Logger
}

type subscription struct {
	id int
	fn func(payload any)
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[string][]subscription),
		logger: logger,
	}
}

// Subscribe registers fn for name and returns its unsubscribe function.
// After unsubscribe returns, fn is never invoked again.
func (b *Bus) Subscribe(name string, fn func(payload any)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[name]
		for i := range subs {
			if subs[i].id == id {
				b.subs[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to every current listener for name. Listeners
// run inline; a panicking listener is logged and does not stop delivery to
// the rest.
func (b *Bus) Publish(name string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[name]))
	copy(subs, b.subs[name])
	b.mu.Unlock()

	for _, sub := range subs {
		b.deliver(name, sub, payload)
	}
}

func (b *Bus) deliver(name string, sub subscription, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				zap.String("event", name),
				zap.Any("panic", r))
		}
	}()

	sub.fn(payload)
}
