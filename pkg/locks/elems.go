// Package locks provides locks for individual keys, for example
// the models of a provider whose sibling order is rearranged.
package locks

import (
	"context"
	"fmt"
	"sync"
)

type waiter chan struct{}

// ElementLocks manages one lock per key. Waiting lockers are
// served in request order.
type ElementLocks[T comparable] struct {
	lock  sync.Mutex
	locks map[T][]waiter
}

func NewElementLocks[T comparable]() *ElementLocks[T] {
	return &ElementLocks[T]{locks: map[T][]waiter{}}
}

func (e *ElementLocks[T]) IsLocked(key T) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	_, ok := e.locks[key]
	return ok
}

func (e *ElementLocks[T]) HasWaiting(key T) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	return len(e.locks[key]) > 0
}

func (e *ElementLocks[T]) TryLock(key T) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	if _, ok := e.locks[key]; ok {
		return false
	}
	e.locks[key] = nil
	return true
}

// Lock acquires the lock for a key. It fails if the context is
// done before the lock could be acquired.
func (e *ElementLocks[T]) Lock(ctx context.Context, key T) error {
	e.lock.Lock()

	waiting, ok := e.locks[key]
	if !ok {
		e.locks[key] = nil
		e.lock.Unlock()
		return nil
	}
	w := make(waiter, 1)
	e.locks[key] = append(waiting, w)
	e.lock.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		e.lock.Lock()
		defer e.lock.Unlock()
		select {
		case <-w:
			// handed over concurrently
			e.unlock(key)
		default:
			e.remove(key, w)
		}
		return ctx.Err()
	}
}

func (e *ElementLocks[T]) Unlock(key T) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.unlock(key)
}

func (e *ElementLocks[T]) unlock(key T) {
	waiting, ok := e.locks[key]
	if !ok {
		panic(fmt.Sprintf("unlocking unlocked element %v", key))
	}
	if len(waiting) > 0 {
		waiting[0] <- struct{}{}
		e.locks[key] = waiting[1:]
	} else {
		delete(e.locks, key)
	}
}

func (e *ElementLocks[T]) remove(key T, w waiter) {
	waiting := e.locks[key]
	for i, c := range waiting {
		if c == w {
			e.locks[key] = append(waiting[:i:i], waiting[i+1:]...)
			return
		}
	}
}
