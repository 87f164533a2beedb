package cache

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/metrics"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultTTL      = 30 * time.Minute
	DefaultCapacity = 50
)

// Entry is a cached calculation together with the time it was stored.
type Entry struct {
	Calculation domain.DeliveryCalculation
	CachedAt    time.Time
}

// Config controls expiry and capacity.
// Zero values fall back to DefaultTTL and DefaultCapacity.
type Config struct {
	TTL      time.Duration
	Capacity int
	Now      func() time.Time
}

// DeliveryCache is an address-keyed, time-boxed cache of delivery calculations.
//
// Entries expire lazily: a stale entry is dropped when it is read. When a
// write pushes the cache over capacity the entry with the oldest CachedAt is
// evicted (insertion age, not recency of use). There is no background sweep.
//
// Every mutation is written through to the optional BlobStore as one JSON
// document. Persistence failures are logged and never fail the caller.
type DeliveryCache struct {
	mu       sync.Mutex
	entries  map[string]Entry
	ttl      time.Duration
	capacity int
	now      func() time.Time
	store    ports.BlobStore
}

func NewDeliveryCache(cfg Config, store ports.BlobStore) *DeliveryCache {
	c := &DeliveryCache{
		entries:  make(map[string]Entry),
		ttl:      cfg.TTL,
		capacity: cfg.Capacity,
		now:      cfg.Now,
		store:    store,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.capacity <= 0 {
		c.capacity = DefaultCapacity
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Get returns the calculation cached for address if it is still valid.
// A stale entry is removed as a side effect.
func (c *DeliveryCache) Get(ctx context.Context, address string) (domain.DeliveryCalculation, bool) {
	key := NormalizeAddress(address)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.RecordCacheLookup("miss")
		return domain.DeliveryCalculation{}, false
	}

	if !c.isValidAt(e, c.now()) {
		delete(c.entries, key)
		c.persistLocked(ctx)
		metrics.RecordCacheLookup("expired")
		return domain.DeliveryCalculation{}, false
	}

	metrics.RecordCacheLookup("hit")
	return e.Calculation, true
}

// Set stores calc under address with a fresh CachedAt.
func (c *DeliveryCache) Set(ctx context.Context, address string, calc domain.DeliveryCalculation) {
	key := NormalizeAddress(address)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{Calculation: calc, CachedAt: c.now()}

	for len(c.entries) > c.capacity {
		c.evictOldestLocked()
	}

	c.persistLocked(ctx)
}

// Remove drops the entry for address, if any.
func (c *DeliveryCache) Remove(ctx context.Context, address string) {
	key := NormalizeAddress(address)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	c.persistLocked(ctx)
}

// Clear drops every entry.
func (c *DeliveryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	c.persistLocked(ctx)
}

// IsValid reports whether e is younger than or exactly as old as the TTL.
func (c *DeliveryCache) IsValid(e Entry) bool {
	return c.isValidAt(e, c.now())
}

// Len returns the number of stored entries, including stale ones not yet read.
func (c *DeliveryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Load replaces the in-memory entries with the persisted blob.
func (c *DeliveryCache) Load(ctx context.Context) (err error) {
	defer obs.Time(ctx, "fee_cache.Load")(&err)

	if c.store == nil {
		return nil
	}

	blob, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load delivery cache: %w", err)
	}

	entries, err := decodeEntries(blob)
	if err != nil {
		return fmt.Errorf("load delivery cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = entries
	for len(c.entries) > c.capacity {
		c.evictOldestLocked()
	}
	return nil
}

// Flush writes the current entries to the store.
func (c *DeliveryCache) Flush(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	blob, err := encodeEntries(c.entries)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("flush delivery cache: %w", err)
	}

	if err := c.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("flush delivery cache: %w", err)
	}
	return nil
}

func (c *DeliveryCache) isValidAt(e Entry, now time.Time) bool {
	born := e.Calculation.CalculatedAt
	if born.IsZero() {
		born = e.CachedAt
	}
	return now.Sub(born) <= c.ttl
}

// Ties on CachedAt are broken by key so eviction stays deterministic.
func (c *DeliveryCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true

	for k, e := range c.entries {
		if first || e.CachedAt.Before(oldest) || (e.CachedAt.Equal(oldest) && k < oldestKey) {
			oldestKey, oldest, first = k, e.CachedAt, false
		}
	}
	if first {
		return
	}

	delete(c.entries, oldestKey)
	metrics.RecordCacheEviction()
}

func (c *DeliveryCache) persistLocked(ctx context.Context) {
	if c.store == nil {
		return
	}

	blob, err := encodeEntries(c.entries)
	if err == nil {
		err = c.store.Save(ctx, blob)
	}
	if err != nil {
		obs.FromContext(ctx).WithError(err).Warn("delivery cache write failed")
	}
}

var _ ports.DeliveryCache = (*DeliveryCache)(nil)
