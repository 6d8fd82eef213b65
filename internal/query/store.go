package query

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pokenihongo/admin-console/internal/listing"
)

// store adapts an expiring LRU to dataloader.Cache. It holds thunks, so a
// key that is still loading is a hit and joins the in-flight load.
type store[V any] struct {
	lru     *expirable.LRU[listing.QueryKey, dataloader.Thunk[V]]
	metrics *Metrics
}

var _ dataloader.Cache[listing.QueryKey, int] = (*store[int])(nil)

func newStore[V any](size int, ttl time.Duration, m *Metrics) *store[V] {
	return &store[V]{
		lru:     expirable.NewLRU[listing.QueryKey, dataloader.Thunk[V]](size, nil, ttl),
		metrics: m,
	}
}

func (s *store[V]) Get(_ context.Context, key listing.QueryKey) (dataloader.Thunk[V], bool) {
	t, ok := s.lru.Get(key)
	if ok {
		s.metrics.hit(key.Screen)
	} else {
		s.metrics.miss(key.Screen)
	}
	return t, ok
}

func (s *store[V]) Set(_ context.Context, key listing.QueryKey, t dataloader.Thunk[V]) {
	s.lru.Add(key, t)
}

func (s *store[V]) Delete(_ context.Context, key listing.QueryKey) bool {
	return s.lru.Remove(key)
}

func (s *store[V]) Clear() {
	s.lru.Purge()
}

// screenKeys returns the cached keys that belong to screen.
func (s *store[V]) screenKeys(screen string) []listing.QueryKey {
	var out []listing.QueryKey
	for _, k := range s.lru.Keys() {
		if k.HasScreen(screen) {
			out = append(out, k)
		}
	}
	return out
}
