// Package queue provides a generic double-ended stack/queue.
package queue

import "iter"

// Q supports stack operations at its back and queue operations at its
// front. All operations are O(1) amortized.
type Q[T any] struct {
	items []T
	head  int
}

// New creates a new Q holding items, front to back
func New[T any](items ...T) *Q[T] {
	return &Q[T]{items: append([]T(nil), items...)}
}

// Push adds an item to the back
func (q *Q[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Pop removes and returns the item at the back
func (q *Q[T]) Pop() (T, bool) {
	var zero T
	if q.Len() == 0 {
		return zero, false
	}
	n := len(q.items) - 1
	item := q.items[n]
	q.items[n] = zero
	q.items = q.items[:n]
	return item, true
}

// Peek returns the item at the back without removing it
func (q *Q[T]) Peek() (T, bool) {
	if q.Len() == 0 {
		var zero T
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

// Dequeue removes and returns the item at the front
func (q *Q[T]) Dequeue() (T, bool) {
	var zero T
	if q.Len() == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head > len(q.items)/2 {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return item, true
}

// Len returns the number of items
func (q *Q[T]) Len() int {
	return len(q.items) - q.head
}

// At returns the item at index, counting from the front
func (q *Q[T]) At(index int) (T, bool) {
	if index < 0 || index >= q.Len() {
		var zero T
		return zero, false
	}
	return q.items[q.head+index], true
}

// All iterates over the items from front to back
func (q *Q[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range q.items[q.head:] {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Clear removes all items
func (q *Q[T]) Clear() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}
