package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Counter counts hits per key within a fixed window.
type Counter interface {
	Hit(key string) int
	Reject()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Rejections int64     `json:"rejections"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

// WindowCounter keeps one counter per key. A key's window starts at its
// first hit and its counter expires with the window.
type WindowCounter struct {
	cache   *cache.Cache
	mu      sync.Mutex
	stats   CacheStats
	maxSize int
	window  time.Duration
}

func NewCounter(maxSize int, window time.Duration) *WindowCounter {
	return &WindowCounter{
		cache:   cache.New(window, window*2),
		maxSize: maxSize,
		window:  window,
	}
}

// Hit increments key and returns its count in the current window.
func (c *WindowCounter) Hit(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()
	c.stats.Hits++

	if n, err := c.cache.IncrementInt(key, 1); err == nil {
		return n
	}

	if c.maxSize > 0 && c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	c.cache.Set(key, 1, cache.DefaultExpiration)
	return 1
}

// Reject records a request turned away by the caller.
func (c *WindowCounter) Reject() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Rejections++
}

func (c *WindowCounter) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

// removeOldest evicts the key whose window expires first.
func (c *WindowCounter) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldestExpiration int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldestExpiration {
			oldestKey = key
			oldestExpiration = item.Expiration
		}
	}

	c.cache.Delete(oldestKey)
}

// ClientKey namespaces a client address for the counter.
func ClientKey(scope, clientIP string) string {
	return fmt.Sprintf("rate:%s:%s", scope, clientIP)
}
