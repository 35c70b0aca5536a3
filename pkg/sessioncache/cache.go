// Package sessioncache implements the bounded per-destination TLS
// session-resumption cache (spec.md §3 SessionCache / §4.4). It mirrors
// the original Rust cache::SessionCache/SessionKey: a fixed-capacity
// FIFO per (host, port), with take being a single-use read so a replayed
// ticket is never offered twice.
package sessioncache

import "sync"

// DefaultCapacity is the number of sessions retained per destination
// when a Cache is built with NewCache(0) (spec.md §3: "capacity 8
// default").
const DefaultCapacity = 8

// SessionKey identifies a destination for resumption purposes. Port 0 is
// a valid key component (plain TCP without a declared port), so this is
// a plain comparable struct rather than a string join.
type SessionKey struct {
	Host string
	Port uint16
}

// Session is an opaque resumption ticket. This package never inspects
// its contents; callers (pkg/tlsconfig) hand it the exact value they got
// back from the TLS library's new-session callback.
type Session any

// Cache is a bounded mapping from SessionKey to a FIFO queue of up to
// capacity sessions (spec.md §3/§4.4: "a FIFO queue of at most capacity
// entries; on insert past capacity, the oldest is evicted"). Each
// destination keeps its own queue; there is no cap on the number of
// distinct destinations.
type Cache struct {
	mu       sync.Mutex
	capacity int
	byKey    map[SessionKey][]Session
}

// NewCache builds a Cache with the given per-key capacity. A capacity
// of 0 uses DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		byKey:    make(map[SessionKey][]Session),
	}
}

// Insert appends session to key's queue, evicting the oldest entry in
// that queue if it is already at capacity. Repeated inserts under the
// same key queue up rather than replace one another, so a destination
// that sees several handshakes in flight accumulates several tickets,
// each of which can later be taken independently.
func (c *Cache) Insert(key SessionKey, session Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := c.byKey[key]
	if len(queue) >= c.capacity {
		queue = queue[1:]
	}
	c.byKey[key] = append(queue, session)
}

// Take removes and returns the most recently inserted session still
// queued for key, if any. A given session is returned at most once
// (spec.md §4.4, §8: "take is single-use").
func (c *Cache) Take(key SessionKey) (session Session, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := c.byKey[key]
	if len(queue) == 0 {
		return nil, false
	}
	last := len(queue) - 1
	session = queue[last]
	queue = queue[:last]
	if len(queue) == 0 {
		delete(c.byKey, key)
	} else {
		c.byKey[key] = queue
	}
	return session, true
}

// Len reports the number of live (not-yet-taken) entries across every
// key. Intended for tests and diagnostics, not for production control
// flow.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, queue := range c.byKey {
		n += len(queue)
	}
	return n
}
