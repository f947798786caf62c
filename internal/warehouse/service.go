// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package warehouse serves the warehouse directory used to populate
// filter dropdowns and to resolve warehouse names in other views.
package warehouse

import (
	"context"
	"sort"
	"strings"

	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/store"
)

// Query carries the filter and pagination parameters for warehouse reads.
type Query struct {
	Search string

	Page         int
	ItemsPerPage int

	// Unpaginated returns the full directory in one response.
	Unpaginated bool
}

// Result is one page of warehouses plus its pagination window.
type Result struct {
	Data       []models.Warehouse
	Pagination models.Pagination
}

// Service reads the warehouse directory from the entity catalog.
type Service struct {
	catalog *store.Catalog
}

// NewService creates a warehouse service.
func NewService(catalog *store.Catalog) *Service {
	return &Service{catalog: catalog}
}

// GetWarehouses returns the warehouses matching q, sorted by name.
func (s *Service) GetWarehouses(ctx context.Context, q Query) (*Result, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))

	warehouses := make([]models.Warehouse, 0, len(snap.Warehouses))
	for _, w := range snap.Warehouses {
		if search != "" && !strings.Contains(strings.ToLower(w.Name), search) {
			continue
		}
		warehouses = append(warehouses, w)
	}
	sort.Slice(warehouses, func(i, j int) bool {
		return strings.ToLower(warehouses[i].Name) < strings.ToLower(warehouses[j].Name)
	})

	if q.Unpaginated {
		return &Result{
			Data: warehouses,
			Pagination: models.Pagination{
				CurrentPage:  1,
				ItemsPerPage: len(warehouses),
				TotalItems:   len(warehouses),
				TotalPages:   1,
			},
		}, nil
	}

	data, pagination := models.Paginate(warehouses, q.Page, q.ItemsPerPage)
	return &Result{Data: data, Pagination: pagination}, nil
}
