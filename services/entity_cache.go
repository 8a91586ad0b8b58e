package services

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"rental-admin/models"
	"rental-admin/utils"

	"github.com/sirupsen/logrus"
)

// EntityCache holds one collection in server order with an id index. It is
// replaced wholesale on every load and never patched in place.
type EntityCache[T models.Record] struct {
	endpoint string

	mu      sync.RWMutex
	records []T
	index   map[int64]int

	generation atomic.Uint64
}

func NewEntityCache[T models.Record](endpoint string) *EntityCache[T] {
	return &EntityCache[T]{endpoint: endpoint, index: map[int64]int{}}
}

func (c *EntityCache[T]) Endpoint() string { return c.endpoint }

// Load fetches the cache's endpoint and replaces its content.
func (c *EntityCache[T]) Load(ctx context.Context, client *RestClient) error {
	return c.LoadFrom(ctx, client, c.endpoint)
}

// LoadFrom is Load against another path of the same collection, such as
// /pagos/inquilino/{id}. A body that is not a JSON array yields an empty
// cache. A response that arrives after a newer load started is dropped.
func (c *EntityCache[T]) LoadFrom(ctx context.Context, client *RestClient, path string) error {
	gen := c.generation.Add(1)

	var raw json.RawMessage
	if err := client.Get(ctx, path, &raw); err != nil {
		return err
	}
	records := decodeList[T](raw, path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation.Load() {
		metricsSingleton().staleLoads.WithLabelValues(c.endpoint).Inc()
		utils.Logger.WithField("path", path).Debug("discarding stale cache load")
		return nil
	}
	c.replace(records)
	return nil
}

// Replace sets the content directly, dropping duplicate ids.
func (c *EntityCache[T]) Replace(records []T) {
	c.generation.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(records)
}

func (c *EntityCache[T]) replace(records []T) {
	c.records = make([]T, 0, len(records))
	c.index = make(map[int64]int, len(records))
	for _, rec := range records {
		id := rec.RecordID()
		if _, dup := c.index[id]; dup {
			utils.Logger.WithFields(logrus.Fields{
				"endpoint": c.endpoint,
				"id":       id,
			}).Warn("duplicate id in response, keeping the first")
			continue
		}
		c.index[id] = len(c.records)
		c.records = append(c.records, rec)
	}
}

// All returns a copy of the records in server order.
func (c *EntityCache[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

func (c *EntityCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *EntityCache[T]) FindByID(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.records[i], true
}

func decodeList[T any](raw json.RawMessage, path string) []T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		utils.Logger.WithField("path", path).Warnf("malformed list response: %v", err)
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			utils.Logger.WithField("path", path).Warnf("skipping undecodable record: %v", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}
