// Package cache holds the one piece of in-process shared state: the
// rendered global-listing response, kept for a fixed window. Staleness
// inside the window is intentional; a post created after population is
// not visible until the entry expires.
package cache

import (
	"sync/atomic"
	"time"
)

type entry struct {
	body        []byte
	contentType string
	expiresAt   time.Time
}

// ResponseCache is a single-entry response cache with timestamp expiry.
// Reads are lock-free; population is an atomic swap, so two concurrent
// misses may both store — last writer wins, the values are equivalent.
type ResponseCache struct {
	ttl time.Duration
	cur atomic.Pointer[entry]
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{ttl: ttl}
}

// Get returns the cached payload, or ok=false when empty or expired.
func (c *ResponseCache) Get() (body []byte, contentType string, ok bool) {
	e := c.cur.Load()
	if e == nil || time.Now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.body, e.contentType, true
}

// Set stores a payload for the next TTL window.
func (c *ResponseCache) Set(body []byte, contentType string) {
	c.cur.Store(&entry{
		body:        body,
		contentType: contentType,
		expiresAt:   time.Now().Add(c.ttl),
	})
}
