package fireworks

// recyclable is implemented by the entity types that can live in a Pool.
type recyclable interface {
	isPooled() bool
	setPooled(bool)
}

// Pool is a free list of inactive entities. It only grows when no free entity
// is available, so Created equals the peak number of entities simultaneously
// checked out.
type Pool[T recyclable] struct {
	free    []T
	newFn   func() T
	created int
}

// NewPool returns an empty pool that allocates with newFn on demand.
func NewPool[T recyclable](newFn func() T) *Pool[T] {
	return &Pool[T]{newFn: newFn}
}

// Acquire returns a free entity or allocates a new one.
func (p *Pool[T]) Acquire() T {
	if n := len(p.free); n > 0 {
		e := p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		e.setPooled(false)
		return e
	}
	p.created++
	return p.newFn()
}

// Release returns e to the pool. Releasing an entity that is already pooled
// is a no-op and returns false.
func (p *Pool[T]) Release(e T) bool {
	if e.isPooled() {
		return false
	}
	e.setPooled(true)
	p.free = append(p.free, e)
	return true
}

// Len returns the number of free entities.
func (p *Pool[T]) Len() int {
	return len(p.free)
}

// Created returns how many entities the pool has ever allocated.
func (p *Pool[T]) Created() int {
	return p.created
}
