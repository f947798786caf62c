// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/metrics"
	"github.com/stockroomhq/stockroom/internal/models"
)

// Snapshot is one consistent view of every cached collection. Reference
// collections are indexed by id for join lookups; mutable collections stay
// as ordered slices. Snapshots are immutable once built; writers persist
// through the Collections and then Invalidate.
type Snapshot struct {
	Orders     []models.Order
	Inventory  []models.InventoryItem
	Customers  map[string]models.Customer
	Products   map[string]models.Product
	Warehouses map[string]models.Warehouse
	Addresses  map[string]models.Address

	LoadedAt time.Time
}

// Catalog loads and caches the related entity collections with a time-based
// invalidation policy. The first access after expiry reloads everything;
// concurrent callers during a reload share one load through singleflight
// instead of racing to reload redundantly.
type Catalog struct {
	orders     *Collection[models.Order]
	inventory  *Collection[models.InventoryItem]
	customers  *Collection[models.Customer]
	products   *Collection[models.Product]
	warehouses *Collection[models.Warehouse]
	addresses  *Collection[models.Address]

	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu       sync.Mutex // guards snap and loadedAt
	snap     *Snapshot
	loadedAt time.Time
}

// NewCatalog creates a catalog over the JSON collections in dir.
func NewCatalog(dir string, ttl time.Duration) *Catalog {
	c := &Catalog{
		orders:     NewCollection[models.Order](filepath.Join(dir, "orders.json")),
		inventory:  NewCollection[models.InventoryItem](filepath.Join(dir, "inventory.json")),
		customers:  NewCollection[models.Customer](filepath.Join(dir, "customers.json")),
		products:   NewCollection[models.Product](filepath.Join(dir, "products.json")),
		warehouses: NewCollection[models.Warehouse](filepath.Join(dir, "warehouses.json")),
		addresses:  NewCollection[models.Address](filepath.Join(dir, "addresses.json")),
		ttl:        ttl,
		now:        time.Now,
	}
	return c
}

// Orders exposes the order collection for write-through mutations.
func (c *Catalog) Orders() *Collection[models.Order] { return c.orders }

// Inventory exposes the inventory collection for write-through mutations.
func (c *Catalog) Inventory() *Collection[models.InventoryItem] { return c.inventory }

// Snapshot returns the cached view, reloading every collection when the TTL
// has elapsed or after an Invalidate. The reload is idempotent and shared:
// under concurrent expiry exactly one caller performs the file reads.
func (c *Catalog) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	fresh := c.snap != nil && c.now().Sub(c.loadedAt) < c.ttl
	snap := c.snap
	c.mu.Unlock()

	if fresh {
		metrics.CatalogCacheHits.Inc()
		return snap, nil
	}

	metrics.CatalogCacheMisses.Inc()
	v, err, shared := c.group.Do("reload", func() (interface{}, error) {
		s, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.snap = s
		c.loadedAt = s.LoadedAt
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Trace().Msg("catalog reload shared with concurrent caller")
	}
	return v.(*Snapshot), nil
}

// Invalidate drops the cached snapshot. Called after every write so the
// next read observes it immediately instead of waiting out the TTL.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
	logging.Debug().Msg("catalog invalidated")
}

func (c *Catalog) load(ctx context.Context) (*Snapshot, error) {
	started := c.now()

	orders, err := c.orders.Load(ctx)
	if err != nil {
		return nil, err
	}
	inventory, err := c.inventory.Load(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := c.customers.Load(ctx)
	if err != nil {
		return nil, err
	}
	products, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := c.warehouses.Load(ctx)
	if err != nil {
		return nil, err
	}
	addresses, err := c.addresses.Load(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Orders:     orders,
		Inventory:  inventory,
		Customers:  indexByID(customers, func(v models.Customer) string { return v.ID }),
		Products:   indexByID(products, func(v models.Product) string { return v.ID }),
		Warehouses: indexByID(warehouses, func(v models.Warehouse) string { return v.ID }),
		Addresses:  indexByID(addresses, func(v models.Address) string { return v.ID }),
		LoadedAt:   c.now(),
	}

	elapsed := c.now().Sub(started)
	metrics.CatalogReloadDuration.Observe(elapsed.Seconds())
	logging.Debug().
		Int("orders", len(orders)).
		Int("products", len(products)).
		Dur("elapsed", elapsed).
		Msg("catalog reloaded")
	return snap, nil
}

func indexByID[T any](items []T, id func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[id(item)] = item
	}
	return m
}
