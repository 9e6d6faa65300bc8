package engine

import (
	"sync"

	"github.com/readlark/htmlhl/internal/htmldom"
	"go.uber.org/zap"
)

// textMapCache is an article-id-keyed text map cache held by an Engine. At
// capacity, inserting a new entry evicts the oldest half of existing
// entries by insertion order before adding the new one.
//
// A cached text map's node references point into a DOM tree that the
// originating call no longer owns: safe for position queries only, never
// for mutation.
type textMapCache struct {
	mu       sync.Mutex
	capacity int
	order    []string
	entries  map[string]*htmldom.TextMap
	log      *zap.Logger
}

func newTextMapCache(capacity int, log *zap.Logger) *textMapCache {
	if capacity <= 0 {
		capacity = 20
	}
	return &textMapCache{capacity: capacity, entries: make(map[string]*htmldom.TextMap), log: log}
}

func (c *textMapCache) set(articleID string, tm *htmldom.TextMap) {
	if articleID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[articleID]; !exists {
		if len(c.order) >= c.capacity {
			c.evictOldestHalfLocked()
		}
		c.order = append(c.order, articleID)
	}
	c.entries[articleID] = tm
}

func (c *textMapCache) get(articleID string) (*htmldom.TextMap, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tm, ok := c.entries[articleID]
	if ok {
		c.log.Debug("text map cache hit", zap.String("article_id", articleID))
	} else {
		c.log.Debug("text map cache miss", zap.String("article_id", articleID))
	}
	return tm, ok
}

func (c *textMapCache) clear(articleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, articleID)
	for i, id := range c.order {
		if id == articleID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *textMapCache) clearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*htmldom.TextMap)
	c.order = nil
}

func (c *textMapCache) evictOldestHalfLocked() {
	n := len(c.order) / 2
	if n == 0 {
		n = 1
	}
	c.log.Debug("text map cache evicting oldest half", zap.Int("count", n), zap.Int("capacity", c.capacity))
	for _, id := range c.order[:n] {
		delete(c.entries, id)
	}
	remaining := make([]string, len(c.order)-n)
	copy(remaining, c.order[n:])
	c.order = remaining
}
