package session

import (
	"sync"

	"github.com/npillmayer/lltab/ll"
)

// Cache holds sessions, keyed by grammar fingerprint. Grammars with identical
// rules share a session. A cache is safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []Option
}

// NewCache creates a cache. Sessions created by the cache use opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Session returns the session for g, creating one if necessary. Errors from
// session creation are not cached.
func (c *Cache) Session(g *ll.Grammar) (*Session, error) {
	c.mu.RLock()
	s, ok := c.sessions[g.Hash()]
	c.mu.RUnlock()
	if ok {
		tracer().Debugf("cache hit for grammar %s", g.Name)
		return s, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok = c.sessions[g.Hash()]; ok {
		return s, nil
	}
	s, err := New(g, c.opts...)
	if err != nil {
		return nil, err
	}
	c.sessions[g.Hash()] = s
	return s, nil
}

// Len returns the number of cached sessions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
