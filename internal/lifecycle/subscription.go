package lifecycle

import "sync"

// Subscription is an explicit handle on a registered callback. Release
// detaches the callback; releasing more than once is safe and does nothing
// after the first call.
type Subscription interface {
	Release()
}

type funcSubscription struct {
	once    sync.Once
	release func()
}

// NewSubscription wraps a release function in an idempotent Subscription.
func NewSubscription(release func()) Subscription {
	return &funcSubscription{release: release}
}

func (s *funcSubscription) Release() {
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// CompositeSubscription bundles multiple subscriptions into a single handle
// that releases all of them together, exactly once.
type CompositeSubscription struct {
	mu       sync.Mutex
	released bool
	subs     []Subscription
}

// NewComposite creates a composite over the given subscriptions.
func NewComposite(subs ...Subscription) *CompositeSubscription {
	return &CompositeSubscription{subs: subs}
}

// Add attaches another subscription to the composite. Adding to an already
// released composite releases the subscription immediately.
func (c *CompositeSubscription) Add(s Subscription) {
	c.mu.Lock()
	released := c.released
	if !released {
		c.subs = append(c.subs, s)
	}
	c.mu.Unlock()

	if released {
		s.Release()
	}
}

// Release releases all bundled subscriptions. Subsequent calls do nothing.
func (c *CompositeSubscription) Release() {
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return
	}
	c.released = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, s := range subs {
		s.Release()
	}
}
