// Package events provides the session event channel: a minimal fire-and-forget
// publish mechanism with explicit observer registration. Subscribing returns an
// unsubscribe function so lifecycle stays in the caller's hands, instead of a
// global event bus.
package events

import (
	"sync"
	"time"

	"github.com/aretw0/remat/pkg/domain"
)

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not block.
type Handler func(domain.Event)

type subscriber struct {
	id int
	fn Handler
}

// Channel fans events out to subscribers in subscription order. There is no
// buffering and no delivery guarantee beyond that ordering; events are purely
// observational.
type Channel struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

// NewChannel creates an empty event channel.
func NewChannel() *Channel {
	return &Channel{}
}

// Subscribe registers a handler and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (c *Channel) Subscribe(fn Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every current subscriber, in subscription
// order. A zero timestamp is stamped with the current time.
func (c *Channel) Publish(evt domain.Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	c.mu.Lock()
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(evt)
	}
}
