package service

import "sync"

// observers is a small listener registry. Callbacks run synchronously on the
// goroutine that changed the state, after the state lock is released, in the
// order they subscribed.
type observers[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

func (o *observers[T]) add(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.next
	o.next++
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, sub := range o.subs {
			if sub.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	fns := make([]func(T), len(o.subs))
	for i, sub := range o.subs {
		fns[i] = sub.fn
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
