// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package orders implements the enrichment and filter layer over stored
// orders, the order write operations, and the picking-list entry point that
// feeds the aggregation engine.
package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/picking"
	"github.com/stockroomhq/stockroom/internal/store"
)

// Sentinel errors for order operations.
var (
	// ErrNotFound indicates the requested order id does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrUnknownProduct indicates a new order references a product id
	// absent from the product collection.
	ErrUnknownProduct = errors.New("unknown product in order")
)

// Service reads, filters and mutates orders against the entity catalog.
type Service struct {
	catalog *store.Catalog
	taxRate decimal.Decimal
	now     func() time.Time
}

// NewService creates an order service. taxRate is the combined sales tax
// rate applied when creating orders.
func NewService(catalog *store.Catalog, taxRate float64) *Service {
	return &Service{
		catalog: catalog,
		taxRate: decimal.NewFromFloat(taxRate),
		now:     time.Now,
	}
}

// Result is one page of enriched orders plus its pagination window.
type Result struct {
	Data       []models.EnrichedOrder
	Pagination models.Pagination
}

// GetOrders returns the enriched orders matching q, sorted and paginated.
// Unpaginated queries return every match in Data with a single-page window.
func (s *Service) GetOrders(ctx context.Context, q Query) (*Result, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.getOrders(snap, q), nil
}

func (s *Service) getOrders(snap *store.Snapshot, q Query) *Result {
	enriched := enrichOrders(snap, snap.Orders)
	filtered := s.filter(enriched, q)
	sortOrders(filtered, q.SortField, q.SortOrder)

	if q.Unpaginated {
		return &Result{
			Data: filtered,
			Pagination: models.Pagination{
				CurrentPage:  1,
				ItemsPerPage: len(filtered),
				TotalItems:   len(filtered),
				TotalPages:   1,
			},
		}
	}

	data, pagination := models.Paginate(filtered, q.Page, q.ItemsPerPage)
	return &Result{Data: data, Pagination: pagination}
}

func (s *Service) filter(orders []models.EnrichedOrder, q Query) []models.EnrichedOrder {
	now := s.now()
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]models.EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		if q.WarehouseID != "" && q.WarehouseID != FilterAll && order.WarehouseID != q.WarehouseID {
			continue
		}
		if q.Status != "" && q.Status != FilterAll && order.Status != q.Status {
			continue
		}
		if !withinWindow(order.Date, q.TimePeriod, q.StartDate, q.EndDate, now) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(order.ID), search) &&
			!strings.Contains(strings.ToLower(order.CustomerName), search) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}

func sortOrders(orders []models.EnrichedOrder, field SortField, order string) {
	cmp, ok := comparators[field]
	if !ok {
		cmp = comparators[SortByDate]
	}
	desc := order == "desc"
	sort.SliceStable(orders, func(i, j int) bool {
		c := cmp(orders[i], orders[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// GetOrderByID returns one enriched order, or ErrNotFound.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*models.EnrichedOrder, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range snap.Orders {
		if order.ID == id {
			enriched := enrichOrders(snap, []models.Order{order})
			return &enriched[0], nil
		}
	}
	return nil, ErrNotFound
}

// NewOrderInput carries the caller-supplied fields of an order to create.
type NewOrderInput struct {
	CustomerID        string
	WarehouseID       string
	BillingAddressID  string
	DeliveryAddressID string
	LineItems         []models.LineItem
}

// Create persists a new pending order. Prices are resolved from the product
// collection and the monetary fields are computed with decimal arithmetic at
// the configured tax rate; a line item referencing an unknown product is
// rejected with ErrUnknownProduct.
func (s *Service) Create(ctx context.Context, input NewOrderInput) (*models.EnrichedOrder, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range input.LineItems {
		product, ok := snap.Products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
		}
		line := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)
	taxes := subtotal.Mul(s.taxRate).Round(2)
	total := subtotal.Add(taxes)

	order := models.Order{
		ID:                uuid.NewString(),
		CustomerID:        input.CustomerID,
		WarehouseID:       input.WarehouseID,
		BillingAddressID:  input.BillingAddressID,
		DeliveryAddressID: input.DeliveryAddressID,
		Date:              s.now(),
		Status:            models.StatusPending,
		LineItems:         input.LineItems,
		Subtotal:          subtotal.InexactFloat64(),
		Taxes:             taxes.InexactFloat64(),
		Total:             total.InexactFloat64(),
	}

	_, err = s.catalog.Orders().Mutate(ctx, func(all []models.Order) ([]models.Order, error) {
		return append(all, order), nil
	})
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate()

	logging.Info().Str("order", order.ID).Str("warehouse", order.WarehouseID).Msg("order created")
	return s.GetOrderByID(ctx, order.ID)
}

// UpdateStatus sets the status of an order and stamps lastUpdated. The write
// goes through the repository under its mutex and invalidates the catalog so
// the next read observes it immediately.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.EnrichedOrder, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	_, err := s.catalog.Orders().Mutate(ctx, func(all []models.Order) ([]models.Order, error) {
		for i := range all {
			if all[i].ID == id {
				now := s.now()
				all[i].Status = status
				all[i].LastUpdated = &now
				return all, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate()

	logging.Info().Str("order", id).Str("status", status).Msg("order status updated")
	return s.GetOrderByID(ctx, id)
}

// PickingList aggregates the pending orders matching q into per-warehouse
// leaf-product requirements. The filter layer runs unpaginated so the
// aggregator sees every matching order, and both the candidate orders and
// the product index come from the same catalog snapshot.
func (s *Service) PickingList(ctx context.Context, q PickingQuery) ([]models.PickEntry, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := s.getOrders(snap, q.orderQuery())
	entries, err := picking.NewAggregator(snap.Products).Build(result.Data)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Int("orders", len(result.Data)).
		Int("entries", len(entries)).
		Msg("picking list generated")
	return entries, nil
}
