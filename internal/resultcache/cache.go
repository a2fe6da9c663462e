// Package resultcache provides a bounded LRU memoization cache with
// request coalescing for analysis results.
package resultcache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 128

// Key identifies one cached computation: the content fingerprint of the
// normalized sequence, the operation name, and the canonical parameter
// string. Two requests differing in any component are distinct entries.
type Key struct {
	Fingerprint string
	Op          string
	Params      string
}

// entry is a stored result. Entries are never mutated, only replaced or
// evicted whole.
type entry struct {
	key       Key
	value     any
	createdAt time.Time
}

// call is an in-flight computation that later arrivals wait on.
type call struct {
	done  chan struct{}
	value any
	err   error
}

// Cache memoizes computations keyed by Key. It is the engine's only shared
// mutable state: a single mutex guards lookup and insertion, and concurrent
// requests for the same key coalesce onto one compute call. Entries being
// computed are not yet in the LRU list, so eviction cannot touch them.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List // front is most recently used
	entries  map[Key]*list.Element
	inflight map[Key]*call
}

// New creates a cache holding at most capacity entries, evicting the least
// recently used entry past that. capacity <= 0 selects DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		entries:  make(map[Key]*list.Element),
		inflight: make(map[Key]*call),
	}
}

// GetOrCompute returns the cached value for key, invoking compute on a miss.
// For a fixed key, compute runs at most once at a time: a request arriving
// while another computes the same key blocks and then shares that result.
// A compute error is returned to every waiter but never cached, so the next
// access retries.
func (c *Cache) GetOrCompute(key Key, compute func() (any, error)) (any, error) {
	c.mu.Lock()

	if el, ok := c.entries[key]; ok {
		c.ll.MoveToFront(el)
		v := el.Value.(*entry).value
		c.mu.Unlock()
		return v, nil
	}

	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-cl.done
		return cl.value, cl.err
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.value, cl.err = compute()

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil {
		el := c.ll.PushFront(&entry{key: key, value: cl.value, createdAt: time.Now()})
		c.entries[key] = el
		for c.ll.Len() > c.capacity {
			oldest := c.ll.Back()
			c.ll.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}
	c.mu.Unlock()

	close(cl.done)
	return cl.value, cl.err
}

// Get returns the cached value for key without computing, marking it
// recently used.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry).value, true
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Contains reports whether key is stored, without touching recency.
func (c *Cache) Contains(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
