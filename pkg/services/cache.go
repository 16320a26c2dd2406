package services

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	value   []byte
	expires time.Time
}

// QueryCache keeps raw query results for a short TTL. A zero TTL disables it.
type QueryCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get decodes a fresh entry into out and reports whether one was found.
func (c *QueryCache) Get(key string, out interface{}) bool {
	if c == nil || c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().After(entry.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	return json.Unmarshal(entry.value, out) == nil
}

func (c *QueryCache) Set(key string, value interface{}) {
	if c == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: raw, expires: c.now().Add(c.ttl)}
}

func (c *QueryCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *QueryCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// cacheKey is stable regardless of map iteration order.
func cacheKey(query string, params map[string]interface{}) string {
	if len(params) == 0 {
		return query
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(query)
	for _, name := range names {
		encoded, _ := json.Marshal(params[name])
		b.WriteString("\x00$")
		b.WriteString(name)
		b.WriteByte('=')
		b.Write(encoded)
	}
	return b.String()
}
