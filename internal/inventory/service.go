// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package inventory implements stock-level reads and mutations: enrichment
// of inventory rows with product and warehouse names, filtering, typed
// sorting, pagination, and the stock write operations.
package inventory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/store"
)

// FilterAll disables the warehouse equality filter.
const FilterAll = "all"

// Sentinel errors for stock operations.
var (
	// ErrNotFound indicates the requested inventory row does not exist.
	ErrNotFound = errors.New("inventory item not found")

	// ErrDuplicate indicates a row for the same product and warehouse
	// already exists.
	ErrDuplicate = errors.New("inventory item already exists")
)

// SortField names one sortable stock attribute.
type SortField string

// Sortable stock fields.
const (
	SortByName         SortField = "name"
	SortByTotal        SortField = "totalQuantity"
	SortByAvailable    SortField = "availableQuantity"
	SortByReserved     SortField = "reservedQuantity"
	SortByMinThreshold SortField = "minThreshold"
	SortByLastUpdated  SortField = "lastUpdated"
)

// ValidSortFields lists every accepted sort field.
var ValidSortFields = []SortField{
	SortByName, SortByTotal, SortByAvailable,
	SortByReserved, SortByMinThreshold, SortByLastUpdated,
}

// IsValidSortField reports whether f is a sortable field.
func IsValidSortField(f SortField) bool {
	for _, v := range ValidSortFields {
		if v == f {
			return true
		}
	}
	return false
}

var comparators = map[SortField]func(a, b models.EnrichedStock) int{
	SortByName: func(a, b models.EnrichedStock) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	SortByTotal:        func(a, b models.EnrichedStock) int { return a.TotalQuantity - b.TotalQuantity },
	SortByAvailable:    func(a, b models.EnrichedStock) int { return a.AvailableQuantity - b.AvailableQuantity },
	SortByReserved:     func(a, b models.EnrichedStock) int { return a.ReservedQuantity - b.ReservedQuantity },
	SortByMinThreshold: func(a, b models.EnrichedStock) int { return a.MinThreshold - b.MinThreshold },
	SortByLastUpdated:  func(a, b models.EnrichedStock) int { return a.LastUpdated.Compare(b.LastUpdated) },
}

// Query carries the filter, sort and pagination parameters for stock reads.
type Query struct {
	WarehouseID string
	Search      string

	SortField SortField
	SortOrder string // "asc" or "desc"

	Page         int
	ItemsPerPage int

	// Unpaginated requests the full filtered set (exports).
	Unpaginated bool
}

// Result is one page of enriched stock rows plus its pagination window.
type Result struct {
	Data       []models.EnrichedStock
	Pagination models.Pagination
}

// Service reads and mutates stock levels against the entity catalog.
type Service struct {
	catalog *store.Catalog
	now     func() time.Time
}

// NewService creates an inventory service.
func NewService(catalog *store.Catalog) *Service {
	return &Service{catalog: catalog, now: time.Now}
}

// GetStocks returns the enriched stock rows matching q.
func (s *Service) GetStocks(ctx context.Context, q Query) (*Result, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	enriched := enrichStocks(snap, snap.Inventory)
	filtered := filterStocks(enriched, q)
	sortStocks(filtered, q.SortField, q.SortOrder)

	if q.Unpaginated {
		return &Result{
			Data: filtered,
			Pagination: models.Pagination{
				CurrentPage:  1,
				ItemsPerPage: len(filtered),
				TotalItems:   len(filtered),
				TotalPages:   1,
			},
		}, nil
	}

	data, pagination := models.Paginate(filtered, q.Page, q.ItemsPerPage)
	return &Result{Data: data, Pagination: pagination}, nil
}

// GetStockByID returns one enriched stock row, optionally narrowed to a
// warehouse, or ErrNotFound.
func (s *Service) GetStockByID(ctx context.Context, id, warehouseID string) (*models.EnrichedStock, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range snap.Inventory {
		if item.ID != id {
			continue
		}
		if warehouseID != "" && warehouseID != FilterAll && item.WarehouseID != warehouseID {
			continue
		}
		enriched := enrichStocks(snap, []models.InventoryItem{item})
		return &enriched[0], nil
	}
	return nil, ErrNotFound
}

// UpdateInput carries the optional fields of a stock update; nil means
// leave unchanged.
type UpdateInput struct {
	TotalQuantity    *int
	ReservedQuantity *int
	MinThreshold     *int
	WarehouseID      string
}

// UpdateStock applies a partial update to a stock row and stamps
// lastUpdated, then invalidates the catalog.
func (s *Service) UpdateStock(ctx context.Context, id string, input UpdateInput) (*models.EnrichedStock, error) {
	_, err := s.catalog.Inventory().Mutate(ctx, func(all []models.InventoryItem) ([]models.InventoryItem, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if input.WarehouseID != "" && input.WarehouseID != FilterAll && all[i].WarehouseID != input.WarehouseID {
				continue
			}
			if input.TotalQuantity != nil {
				all[i].Quantity = *input.TotalQuantity
			}
			if input.ReservedQuantity != nil {
				all[i].ReservedQuantity = *input.ReservedQuantity
			}
			if input.MinThreshold != nil {
				all[i].MinThreshold = *input.MinThreshold
			}
			all[i].LastUpdated = s.now()
			return all, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate()

	logging.Info().Str("stock", id).Msg("stock updated")
	return s.GetStockByID(ctx, id, input.WarehouseID)
}

// NewStockInput carries the fields of a stock row to create.
type NewStockInput struct {
	ProductID        string
	WarehouseID      string
	Quantity         int
	ReservedQuantity int
	MinThreshold     int
}

// AddStock creates a stock row; a row for the same product and warehouse
// already existing is ErrDuplicate.
func (s *Service) AddStock(ctx context.Context, input NewStockInput) (*models.EnrichedStock, error) {
	item := models.InventoryItem{
		ID:               uuid.NewString(),
		ProductID:        input.ProductID,
		WarehouseID:      input.WarehouseID,
		Quantity:         input.Quantity,
		ReservedQuantity: input.ReservedQuantity,
		MinThreshold:     input.MinThreshold,
		LastUpdated:      s.now(),
	}

	_, err := s.catalog.Inventory().Mutate(ctx, func(all []models.InventoryItem) ([]models.InventoryItem, error) {
		for _, existing := range all {
			if existing.ProductID == input.ProductID && existing.WarehouseID == input.WarehouseID {
				return nil, ErrDuplicate
			}
		}
		return append(all, item), nil
	})
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate()

	logging.Info().Str("stock", item.ID).Str("product", item.ProductID).Msg("stock row added")
	return s.GetStockByID(ctx, item.ID, "")
}

// DeleteStock removes a stock row, optionally narrowed to a warehouse.
func (s *Service) DeleteStock(ctx context.Context, id, warehouseID string) error {
	_, err := s.catalog.Inventory().Mutate(ctx, func(all []models.InventoryItem) ([]models.InventoryItem, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if warehouseID != "" && warehouseID != FilterAll && all[i].WarehouseID != warehouseID {
				continue
			}
			return append(all[:i], all[i+1:]...), nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return err
	}
	s.catalog.Invalidate()

	logging.Info().Str("stock", id).Msg("stock row deleted")
	return nil
}

func enrichStocks(snap *store.Snapshot, raw []models.InventoryItem) []models.EnrichedStock {
	enriched := make([]models.EnrichedStock, 0, len(raw))
	for _, item := range raw {
		e := models.EnrichedStock{
			ID:                item.ID,
			ProductID:         item.ProductID,
			WarehouseID:       item.WarehouseID,
			Name:              models.UnknownProduct,
			TotalQuantity:     item.Quantity,
			ReservedQuantity:  item.ReservedQuantity,
			AvailableQuantity: item.Quantity - item.ReservedQuantity,
			MinThreshold:      item.MinThreshold,
			LastUpdated:       item.LastUpdated,
			WarehouseName:     models.UnknownWarehouse,
		}
		if product, ok := snap.Products[item.ProductID]; ok {
			e.Name = product.Name
			e.Price = product.Price
		}
		if warehouse, ok := snap.Warehouses[item.WarehouseID]; ok {
			e.WarehouseName = warehouse.Name
		}
		enriched = append(enriched, e)
	}
	return enriched
}

func filterStocks(stocks []models.EnrichedStock, q Query) []models.EnrichedStock {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]models.EnrichedStock, 0, len(stocks))
	for _, item := range stocks {
		if q.WarehouseID != "" && q.WarehouseID != FilterAll && item.WarehouseID != q.WarehouseID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func sortStocks(stocks []models.EnrichedStock, field SortField, order string) {
	cmp, ok := comparators[field]
	if !ok {
		cmp = comparators[SortByName]
	}
	desc := order == "desc"
	sort.SliceStable(stocks, func(i, j int) bool {
		c := cmp(stocks[i], stocks[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}
