// Package cache provides a small in-process cache for derived aggregates with
// an explicit invalidation contract: every mutation declares which entity kind
// it touched, and all aggregates derived from that kind are dropped for the
// affected organization. Readers re-fetch on miss; there is no TTL-based
// staleness across a mutation boundary.
package cache

import (
	"sync"
	"time"
)

// EntityKind identifies a family of records that aggregates derive from.
type EntityKind string

const (
	KindClient      EntityKind = "client"
	KindProject     EntityKind = "project"
	KindDeal        EntityKind = "deal"
	KindTransaction EntityKind = "transaction"
	KindTask        EntityKind = "task"
	KindProfile     EntityKind = "profile"
)

type entry struct {
	value    any
	kinds    []EntityKind
	storedAt time.Time
}

// AggregateCache caches computed aggregates keyed by (organization, name).
// Safe for concurrent use.
type AggregateCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]entry
	maxAge  time.Duration
}

// New creates an AggregateCache. maxAge bounds how long an entry may live even
// without an invalidating mutation; zero disables the age check.
func New(maxAge time.Duration) *AggregateCache {
	return &AggregateCache{
		entries: make(map[string]map[string]entry),
		maxAge:  maxAge,
	}
}

// Get returns the cached aggregate for (organizationID, name), if present and
// not past maxAge.
func (c *AggregateCache) Get(organizationID, name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	byName, ok := c.entries[organizationID]
	if !ok {
		return nil, false
	}
	e, ok := byName[name]
	if !ok {
		return nil, false
	}
	if c.maxAge > 0 && time.Since(e.storedAt) > c.maxAge {
		return nil, false
	}
	return e.value, true
}

// Put stores an aggregate along with the entity kinds it was derived from.
func (c *AggregateCache) Put(organizationID, name string, value any, derivedFrom ...EntityKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byName, ok := c.entries[organizationID]
	if !ok {
		byName = make(map[string]entry)
		c.entries[organizationID] = byName
	}
	byName[name] = entry{value: value, kinds: derivedFrom, storedAt: time.Now()}
}

// Invalidate drops every aggregate for the organization that was derived from
// the given entity kind. Mutation entry points call this after a successful
// write.
func (c *AggregateCache) Invalidate(organizationID string, kind EntityKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byName, ok := c.entries[organizationID]
	if !ok {
		return
	}
	for name, e := range byName {
		for _, k := range e.kinds {
			if k == kind {
				delete(byName, name)
				break
			}
		}
	}
}
