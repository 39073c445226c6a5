// Package resource provides a loadable value with explicit invalidation and
// change subscriptions. Views read a Snapshot, mutators call Invalidate, and
// whoever owns the view calls Revalidate to fetch fresh data.
package resource

import (
	"context"
	"sync"
	"time"
)

// Snapshot is the observable state of a Resource
type Snapshot[T any] struct {
	Data      T
	IsLoading bool
	Stale     bool // Set by Invalidate, cleared by a load started after it
	Err       error
	UpdatedAt time.Time
}

// LoadFunc produces a fresh value
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Resource caches the result of a LoadFunc
type Resource[T any] struct {
	load LoadFunc[T]

	mu   sync.Mutex
	snap Snapshot[T]
	gen  uint64 // bumped on every Revalidate to discard superseded loads
	rev  uint64 // bumped on every Invalidate
	subs map[int]func(Snapshot[T])
	next int
}

// New creates a Resource. It starts stale with no data.
func New[T any](load func(ctx context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{
		load: load,
		snap: Snapshot[T]{Stale: true},
		subs: make(map[int]func(Snapshot[T])),
	}
}

// Snapshot returns the current state without loading
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Subscribe registers fn for every published snapshot.
// Callbacks run synchronously on the publishing goroutine.
func (r *Resource[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Invalidate marks the data stale, drops any previous load error and
// notifies subscribers. A load already in flight finishes stale.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	r.rev++
	r.snap.Stale = true
	r.snap.Err = nil
	snap, subs := r.snap, r.subscribers()
	r.mu.Unlock()

	publish(subs, snap)
}

// Revalidate runs the loader and stores its result.
// Previous data is kept when the loader fails. If Invalidate ran while the
// loader was running, the result is stored but stays stale and its error is
// dropped, so subscribers know to load again.
func (r *Resource[T]) Revalidate(ctx context.Context) Snapshot[T] {
	r.mu.Lock()
	r.gen++
	gen, rev := r.gen, r.rev
	r.snap.IsLoading = true
	snap, subs := r.snap, r.subscribers()
	r.mu.Unlock()

	publish(subs, snap)

	data, err := r.load(ctx)

	r.mu.Lock()
	if gen != r.gen {
		// A newer revalidation owns the snapshot now
		snap = r.snap
		r.mu.Unlock()
		return snap
	}
	invalidated := rev != r.rev
	if err == nil {
		r.snap.Data = data
		r.snap.Stale = invalidated
	}
	if invalidated {
		err = nil
	}
	r.snap.Err = err
	r.snap.IsLoading = false
	r.snap.UpdatedAt = time.Now()
	snap, subs = r.snap, r.subscribers()
	r.mu.Unlock()

	publish(subs, snap)
	return snap
}

// subscribers copies the callback set. Caller must hold r.mu.
func (r *Resource[T]) subscribers() []func(Snapshot[T]) {
	fns := make([]func(Snapshot[T]), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	return fns
}

func publish[T any](fns []func(Snapshot[T]), snap Snapshot[T]) {
	for _, fn := range fns {
		fn(snap)
	}
}
