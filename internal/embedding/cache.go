package embedding

import (
	"container/list"
	"sync"
)

// vectorCache is a bounded LRU of embeddings keyed by input text. Vectors are
// copied on the way in and out so callers may normalize or mutate them freely.
type vectorCache struct {
	mu      sync.Mutex
	size    int
	entries map[string]*list.Element
	order   *list.List

	hits, misses uint64
}

type cached struct {
	text string
	vec  []float32
}

func newVectorCache(size int) *vectorCache {
	if size <= 0 {
		size = 1
	}
	return &vectorCache{
		size:    size,
		entries: make(map[string]*list.Element, size),
		order:   list.New(),
	}
}

func (c *vectorCache) get(text string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[text]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return cloneVector(el.Value.(*cached).vec), true
}

func (c *vectorCache) put(text string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[text]; ok {
		el.Value.(*cached).vec = cloneVector(vec)
		c.order.MoveToFront(el)
		return
	}
	c.entries[text] = c.order.PushFront(&cached{text: text, vec: cloneVector(vec)})
	for c.order.Len() > c.size {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.entries, last.Value.(*cached).text)
	}
}

func (c *vectorCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: c.order.Len(), Hits: c.hits, Misses: c.misses}
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
