package ecs

// Destroyable is the element constraint for a Collection.
type Destroyable interface {
	comparable
	Destroyed() bool
}

// Collection is an insertion-ordered set with tombstoned removal.
// Removing an element leaves a hole so that iteration in progress stays
// valid; holes are compacted by Reap and Compact.
type Collection[T Destroyable] struct {
	items []T
	index map[T]int
	holes int
}

func NewCollection[T Destroyable]() *Collection[T] {
	return &Collection[T]{
		items: make([]T, 0, 64),
		index: make(map[T]int, 64),
	}
}

// Add inserts v. Adding an element already present is a no-op and returns false.
func (c *Collection[T]) Add(v T) bool {
	var zero T
	if v == zero {
		return false
	}
	if _, ok := c.index[v]; ok {
		return false
	}
	c.index[v] = len(c.items)
	c.items = append(c.items, v)
	return true
}

// Remove tombstones v. Removing an absent element is a no-op.
func (c *Collection[T]) Remove(v T) bool {
	i, ok := c.index[v]
	if !ok {
		return false
	}
	var zero T
	c.items[i] = zero
	delete(c.index, v)
	c.holes++
	return true
}

func (c *Collection[T]) Has(v T) bool {
	_, ok := c.index[v]
	return ok
}

// Len returns the number of live elements.
func (c *Collection[T]) Len() int {
	return len(c.index)
}

// Each calls fn for every element present when the iteration started.
// Elements removed during iteration are skipped; elements added are not visited.
func (c *Collection[T]) Each(fn func(T)) {
	var zero T
	n := len(c.items)
	for i := 0; i < n; i++ {
		if v := c.items[i]; v != zero {
			fn(v)
		}
	}
}

// Snapshot returns the live elements in insertion order.
func (c *Collection[T]) Snapshot() []T {
	out := make([]T, 0, len(c.index))
	c.Each(func(v T) { out = append(out, v) })
	return out
}

// Reap removes every destroyed element and compacts. It returns the number removed.
func (c *Collection[T]) Reap() int {
	n := 0
	for v := range c.index {
		if v.Destroyed() {
			c.Remove(v)
			n++
		}
	}
	c.Compact()
	return n
}

// Compact squeezes out tombstones, preserving order.
func (c *Collection[T]) Compact() {
	if c.holes == 0 {
		return
	}
	var zero T
	live := c.items[:0]
	for _, v := range c.items {
		if v != zero {
			c.index[v] = len(live)
			live = append(live, v)
		}
	}
	for i := len(live); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = live
	c.holes = 0
}

// Clear removes everything.
func (c *Collection[T]) Clear() {
	clear(c.items)
	c.items = c.items[:0]
	clear(c.index)
	c.holes = 0
}
