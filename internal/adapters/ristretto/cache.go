// Package ristretto is the in-process hotel read cache used when redis is not configured.
package ristretto

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"hotel_service/internal/adapters/observability"
)

// Cache holds JSON-encoded values so callers get copies, never shared pointers.
type Cache struct {
	c *ristretto.Cache[string, []byte]
}

// New creates a ristretto-backed cache bounded to maxCostBytes of encoded values.
func New(maxCostBytes int64) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	val, found := c.c.Get(key)
	if !found {
		observability.ObserveCache("ristretto", "miss")
		return false, nil
	}
	observability.ObserveCache("ristretto", "hit")
	return true, json.Unmarshal(val, dst)
}

func (c *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("ristretto", "set")
	c.c.SetWithTTL(key, b, int64(len(b)), time.Duration(ttlSec)*time.Second)
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("ristretto", "del")
	c.c.Del(key)
	return nil
}

// Wait blocks until buffered writes are applied.
func (c *Cache) Wait() { c.c.Wait() }

func (c *Cache) Close() { c.c.Close() }
