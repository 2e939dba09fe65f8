package store

import (
	"sync"
	"time"
)

type Status int

const (
	Idle Status = iota
	Loading
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a store. List and Selected are copies; mutating
// them does not affect the store.
type State[T any] struct {
	List      []T
	Selected  *T
	Status    Status
	LastError string
	// Version increases with every change. Snapshots delivered to
	// subscribers of overlapping operations may arrive out of order; the
	// highest Version is the current one.
	Version uint64
}

func (s State[T]) clone() State[T] {
	if s.List != nil {
		s.List = append(make([]T, 0, len(s.List)), s.List...)
	}
	if s.Selected != nil {
		v := *s.Selected
		s.Selected = &v
	}
	return s
}

// Notifier receives one user-facing message per completed mutation and one
// per failure.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}

type Option func(*options)

type options struct {
	notify Notifier
	now    func() time.Time
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notify = n
		}
	}
}

// WithClock sets the clock used for image cache-busting.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{notify: nopNotifier{}, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// subscription serializes deliveries with unsubscribing, so a snapshot is
// never delivered after unsubscribe has returned.
type subscription[T any] struct {
	mu     sync.Mutex
	fn     func(State[T])
	closed bool
}

func (s *subscription[T]) deliver(st State[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.fn(st)
	}
}

func (s *subscription[T]) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// core holds the state shared by Store and Singleton. The mutex guards
// single reconciliation writes only; operations are never serialized
// against each other.
type core[T any] struct {
	options
	mu    sync.Mutex
	state State[T]
	subs  map[uint64]*subscription[T]
	next  uint64
}

// State returns a snapshot of the current state.
func (c *core[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes it; fn is not called again once it returns. It waits
// for a delivery in progress, so fn must not call it.
func (c *core[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	sub := &subscription[T]{fn: fn}
	c.mu.Lock()
	if c.subs == nil {
		c.subs = make(map[uint64]*subscription[T])
	}
	key := c.next
	c.next++
	c.subs[key] = sub
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.close()
			c.mu.Lock()
			delete(c.subs, key)
			c.mu.Unlock()
		})
	}
}

func (c *core[T]) ClearError() {
	c.update(func(s *State[T]) {
		s.LastError = ""
		if s.Status == Error {
			s.Status = Idle
		}
	})
}

func (c *core[T]) update(fn func(*State[T])) {
	c.mu.Lock()
	fn(&c.state)
	c.state.Version++
	snap := c.state.clone()
	subs := make([]*subscription[T], 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s.deliver(snap.clone())
	}
}

func (c *core[T]) begin() {
	c.update(func(s *State[T]) { s.Status = Loading })
}

// fail records err and emits the single failure notification for op.
func (c *core[T]) fail(msg string, err error) error {
	c.update(func(s *State[T]) {
		s.Status = Error
		s.LastError = msg
	})
	c.notify.Failure(msg)
	return err
}
