// Package query caches list pages by QueryKey. Concurrent requests for the
// same key share one backend load, pages expire after a TTL, failed loads
// are evicted, and mutations invalidate every key of a screen.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/pokenihongo/admin-console/internal/listing"
)

const (
	defaultSize           = 256
	defaultTTL            = 30 * time.Second
	defaultMaxConcurrency = 4
	defaultWait           = 2 * time.Millisecond
	defaultLoadTimeout    = 30 * time.Second
	maxBatch              = 32
)

// LoadFunc loads one key from the backend.
type LoadFunc[V any] func(ctx context.Context, key listing.QueryKey) (V, error)

// Options configure a Cache. Zero values select defaults.
type Options struct {
	Size           int
	TTL            time.Duration
	MaxConcurrency int
	Wait           time.Duration
	LoadTimeout    time.Duration
}

func (o Options) withDefaults() Options {
	if o.Size < 1 {
		o.Size = defaultSize
	}
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.MaxConcurrency < 1 {
		o.MaxConcurrency = defaultMaxConcurrency
	}
	if o.Wait <= 0 {
		o.Wait = defaultWait
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = defaultLoadTimeout
	}
	return o
}

// Cache is a keyed, deduplicating page cache.
type Cache[V any] struct {
	loader  *dataloader.Loader[listing.QueryKey, V]
	store   *store[V]
	metrics *Metrics
	log     *slog.Logger
}

// New creates a Cache that loads missing keys with load.
func New[V any](load LoadFunc[V], opts Options, metrics *Metrics, logger *slog.Logger) *Cache[V] {
	opts = opts.withDefaults()
	st := newStore[V](opts.Size, opts.TTL, metrics)

	return &Cache[V]{
		loader: dataloader.NewBatchedLoader(
			batchFn(load, opts.MaxConcurrency, opts.LoadTimeout),
			dataloader.WithCache[listing.QueryKey, V](st),
			dataloader.WithWait[listing.QueryKey, V](opts.Wait),
			dataloader.WithBatchCapacity[listing.QueryKey, V](maxBatch),
		),
		store:   st,
		metrics: metrics,
		log:     logger.With("service", "query_cache"),
	}
}

// batchFn loads each key of a batch on its own, at most limit at a time.
// Per-key failures stay with their key.
//
// The batch runs with the context of whichever caller queued first, but
// every caller joined to a key shares the result. Loads therefore keep the
// context values (token, request id) and drop its cancellation; timeout
// bounds them instead.
func batchFn[V any](load LoadFunc[V], limit int, timeout time.Duration) dataloader.BatchFunc[listing.QueryKey, V] {
	return func(ctx context.Context, keys []listing.QueryKey) []*dataloader.Result[V] {
		results := make([]*dataloader.Result[V], len(keys))
		detached := context.WithoutCancel(ctx)

		var g errgroup.Group
		g.SetLimit(limit)
		for i, key := range keys {
			g.Go(func() error {
				loadCtx, cancel := context.WithTimeout(detached, timeout)
				defer cancel()
				v, err := load(loadCtx, key)
				results[i] = &dataloader.Result[V]{Data: v, Error: err}
				return nil
			})
		}
		_ = g.Wait()

		return results
	}
}

// Get returns the page for key, loading it if it is not cached. A failed
// load is evicted so the next Get retries.
func (c *Cache[V]) Get(ctx context.Context, key listing.QueryKey) (V, error) {
	v, err := c.loader.Load(ctx, key)()
	if err != nil {
		c.loader.Clear(ctx, key)
		c.metrics.loadError(key.Screen)
		c.log.Debug("load failed, evicted",
			slog.String("key", key.String()),
			slog.String("error", err.Error()),
		)
		var zero V
		return zero, fmt.Errorf("query: load %s: %w", key.Screen, err)
	}
	return v, nil
}

// Invalidate removes one key.
func (c *Cache[V]) Invalidate(ctx context.Context, key listing.QueryKey) {
	c.loader.Clear(ctx, key)
}

// InvalidateScreen removes every cached key of screen and returns how many
// were removed. Loads already in flight finish, but their result is not
// served to later callers.
func (c *Cache[V]) InvalidateScreen(ctx context.Context, screen string) int {
	keys := c.store.screenKeys(screen)
	for _, k := range keys {
		c.loader.Clear(ctx, k)
	}
	c.metrics.invalidated(screen, len(keys))
	if len(keys) > 0 {
		c.log.Debug("screen invalidated",
			slog.String("screen", screen),
			slog.Int("keys", len(keys)),
		)
	}
	return len(keys)
}

// Purge empties the cache.
func (c *Cache[V]) Purge() {
	c.loader.ClearAll()
}

// Len reports the number of cached keys.
func (c *Cache[V]) Len() int {
	return c.store.lru.Len()
}
