// Package orderedmap provides a generic map that remembers insertion order.
package orderedmap

import (
	"container/list"
	"iter"
)

// OrderedMap stores key-value pairs in insertion order. Overwriting a key
// keeps its original position.
type OrderedMap[K comparable, V any] struct {
	index map[K]*list.Element
	order *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an empty OrderedMap
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		index: map[K]*list.Element{},
		order: list.New(),
	}
}

// Set stores a key-value pair
func (o *OrderedMap[K, V]) Set(key K, value V) {
	if e, ok := o.index[key]; ok {
		e.Value = entry[K, V]{key: key, value: value}
		return
	}
	o.index[key] = o.order.PushBack(entry[K, V]{key: key, value: value})
}

// Get returns the value associated with key
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	e, ok := o.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value.(entry[K, V]).value, true
}

// Has reports whether key is present
func (o *OrderedMap[K, V]) Has(key K) bool {
	_, ok := o.index[key]
	return ok
}

// Delete removes key and its value
func (o *OrderedMap[K, V]) Delete(key K) {
	if e, ok := o.index[key]; ok {
		o.order.Remove(e)
		delete(o.index, key)
	}
}

// Len returns the number of keys
func (o *OrderedMap[K, V]) Len() int {
	return o.order.Len()
}

// All iterates over the pairs in insertion order
func (o *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := o.order.Front(); e != nil; e = e.Next() {
			kv := e.Value.(entry[K, V])
			if !yield(kv.key, kv.value) {
				return
			}
		}
	}
}

// Keys iterates over the keys in insertion order
func (o *OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range o.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates over the values in insertion order
func (o *OrderedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range o.All() {
			if !yield(v) {
				return
			}
		}
	}
}
