package base

import (
	"sync"

	"github.com/Freeeeeet/music_school/internal/model"
)

// Collection is the ordered in-memory backing slice of one record store.
//
// Ids come from a counter owned by the collection: it starts at the highest
// seeded id and only moves forward, so ids are unique for the life of the
// process and are never handed out again after a delete. Every value that
// leaves the collection is a clone.
type Collection[T any] struct {
	mu      sync.RWMutex
	entity  string
	items   []T
	lastID  int64
	idOf    func(*T) int64
	cloneOf func(T) T
}

// NewCollection copies seed into a new collection.
func NewCollection[T any](entity string, seed []T, idOf func(*T) int64, cloneOf func(T) T) *Collection[T] {
	c := &Collection[T]{
		entity:  entity,
		items:   make([]T, 0, len(seed)),
		idOf:    idOf,
		cloneOf: cloneOf,
	}
	for i := range seed {
		item := cloneOf(seed[i])
		if id := idOf(&item); id > c.lastID {
			c.lastID = id
		}
		c.items = append(c.items, item)
	}
	return c
}

// Entity returns the name used in NotFound errors.
func (c *Collection[T]) Entity() string {
	return c.entity
}

// All returns a snapshot of the whole collection in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	for i := range c.items {
		out[i] = c.cloneOf(c.items[i])
	}
	return out
}

// Len returns the number of records currently stored.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the first record with the given id.
func (c *Collection[T]) Get(id int64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, model.NewNotFound(c.entity, id)
	}
	return c.cloneOf(c.items[idx]), nil
}

// Filter returns snapshots of the records matching pred, in order. It never
// returns nil so an empty result still encodes as [].
func (c *Collection[T]) Filter(pred func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for i := range c.items {
		if pred(&c.items[i]) {
			out = append(out, c.cloneOf(c.items[i]))
		}
	}
	return out
}

// Insert allocates the next id, lets build construct the record and appends
// it. Allocation and append happen under one lock, so concurrent inserts
// never share an id.
func (c *Collection[T]) Insert(build func(id int64) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID++
	item := c.cloneOf(build(c.lastID))
	c.items = append(c.items, item)
	return c.cloneOf(item)
}

// Update applies mutate to the stored record in place.
func (c *Collection[T]) Update(id int64, mutate func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, model.NewNotFound(c.entity, id)
	}

	// мутируем копию, чтобы mutate не утащил ссылки на внутренние слайсы
	item := c.cloneOf(c.items[idx])
	mutate(&item)
	c.items[idx] = c.cloneOf(item)
	return item, nil
}

// Delete removes the record and returns it.
func (c *Collection[T]) Delete(id int64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, model.NewNotFound(c.entity, id)
	}

	removed := c.items[idx]
	last := len(c.items) - 1
	copy(c.items[idx:], c.items[idx+1:])
	// освободившийся хвост обнуляем, чтобы массив не держал удалённую запись
	var zero T
	c.items[last] = zero
	c.items = c.items[:last]
	return removed, nil
}

func (c *Collection[T]) indexOf(id int64) int {
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			return i
		}
	}
	return -1
}
