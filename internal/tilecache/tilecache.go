// Package tilecache implements the mutex-guarded, per-process LRU tile
// cache shared by every inbound tile request (spec §5's "Shared
// resources": "the per-tile LRU cache is ... guarded by a mutex").
package tilecache

import (
	"container/list"
	"sync"

	"github.com/railwayhistory/railmap/internal/tileid"
)

// Entry is a rendered tile's bytes plus the Content-Type to serve them
// with, keyed by its tileid.ID.
type Entry struct {
	Bytes       []byte
	ContentType string
}

type record struct {
	key   tileid.ID
	entry Entry
}

// Cache is a fixed-capacity LRU keyed by tileid.ID, safe for concurrent
// use by the work-stealing pool every tile request runs on (spec §5).
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[tileid.ID]*list.Element
}

// New returns a cache holding at most capacity entries; capacity <= 0
// is treated as 1.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[tileid.ID]*list.Element),
	}
}

// Get returns the cached entry for id, if any, and marks it
// most-recently-used.
func (c *Cache) Get(id tileid.ID) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id]
	if !ok {
		return Entry{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*record).entry, true
}

// Put stores entry under id, evicting the least-recently-used entry if
// the cache is at capacity.
func (c *Cache) Put(id tileid.ID, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[id]; ok {
		el.Value.(*record).entry = entry
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&record{key: id, entry: entry})
	c.items[id] = el

	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest == nil {
			break
		}
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*record).key)
	}
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
