package repo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"purem-oda-shop/shared/pkg/models"
)

const itemsKey = "items:all"

// StringCache is the subset of cache.Redis the decorator needs.
type StringCache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ItemsCached puts a read-through cache in front of another ItemStore.
// Cache failures only cost a trip to the underlying store.
//
// Save invalidates instead of writing through. A Load that read the store
// before a Save finished must not backfill its snapshot, so every Save bumps
// gen and backfills only happen when gen is unchanged since the store read.
type ItemsCached struct {
	Store ItemStore
	Cache StringCache
	TTL   time.Duration
	Log   zerolog.Logger

	mu  sync.Mutex
	gen uint64
}

func (r *ItemsCached) Load(ctx context.Context) ([]models.Item, error) {
	// 1) cache
	if s, err := r.Cache.GetString(ctx, itemsKey); err == nil {
		var items []models.Item
		if err := json.Unmarshal([]byte(s), &items); err == nil && items != nil {
			return items, nil
		}
		r.Log.Warn().Str("key", itemsKey).Msg("undecodable cache entry ignored")
	}

	// 2) store
	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	items, err := r.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	// 3) backfill, unless a Save landed meanwhile
	r.mu.Lock()
	if r.gen == gen {
		r.put(ctx, items)
	}
	r.mu.Unlock()
	return items, nil
}

func (r *ItemsCached) Save(ctx context.Context, items []models.Item) error {
	err := r.Store.Save(ctx, items)

	r.mu.Lock()
	r.gen++
	if derr := r.Cache.Del(ctx, itemsKey); derr != nil {
		r.Log.Warn().Err(derr).Str("key", itemsKey).Msg("cache invalidation failed")
	}
	r.mu.Unlock()
	return err
}

func (r *ItemsCached) put(ctx context.Context, items []models.Item) {
	if items == nil {
		items = []models.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := r.Cache.SetString(ctx, itemsKey, string(b), r.TTL); err != nil {
		r.Log.Debug().Err(err).Msg("cache set failed")
	}
}
