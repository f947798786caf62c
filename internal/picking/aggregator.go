// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package picking implements the order-to-picking-list aggregation engine.
//
// Given an already filtered, unpaginated set of enriched orders, the
// aggregator recursively decomposes composite (bundle) products into their
// constituent leaf products, sums the required quantity per leaf product
// per warehouse, and retains traceability from every aggregated quantity
// back to the originating order, customer and originally requested product.
//
// The engine is a pure function over its inputs: no I/O, no mutation of the
// order or product collections, no shared state between calls.
package picking

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stockroomhq/stockroom/internal/models"
)

// CycleError reports a composite product that is, directly or transitively,
// its own descendant. The product graph is configuration data, so a cycle is
// a configuration error, never a reason to recurse unboundedly.
type CycleError struct {
	ProductID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic product composition detected at product %s", e.ProductID)
}

// leafRequirement is one decomposed unit requirement: a leaf product and the
// effective quantity accumulated along the decomposition path.
type leafRequirement struct {
	productID string
	name      string
	quantity  int
}

// Aggregator builds picking lists against one product collection snapshot.
type Aggregator struct {
	products map[string]models.Product
}

// NewAggregator creates an aggregator over the given product index.
func NewAggregator(products map[string]models.Product) *Aggregator {
	return &Aggregator{products: products}
}

// Build aggregates the leaf-product requirements of the given orders.
//
// Entries are keyed by (productId, warehouseId): the same leaf product
// ordered from two warehouses yields two entries. The result is sorted by
// product name, case-insensitively, with a locale-aware collator. An empty
// order set yields an empty (non-nil) result.
func (a *Aggregator) Build(orders []models.EnrichedOrder) ([]models.PickEntry, error) {
	type key struct {
		productID   string
		warehouseID string
	}

	entries := make(map[key]*models.PickEntry)
	var insertion []key // map iteration order is random; keep output deterministic

	for _, order := range orders {
		for _, item := range order.LineItems {
			leaves, err := a.decompose(item.ProductID, item.Quantity, make(map[string]struct{}))
			if err != nil {
				return nil, err
			}

			for _, leaf := range leaves {
				k := key{productID: leaf.productID, warehouseID: order.WarehouseID}
				ref := models.PickOrderRef{
					OrderID:         order.ID,
					CustomerName:    order.CustomerName,
					Quantity:        leaf.quantity,
					OriginalProduct: item.Name,
				}

				if entry, ok := entries[k]; ok {
					entry.Quantity += leaf.quantity
					entry.Orders = append(entry.Orders, ref)
					continue
				}

				entries[k] = &models.PickEntry{
					ProductID:     leaf.productID,
					Name:          leaf.name,
					WarehouseID:   order.WarehouseID,
					WarehouseName: order.WarehouseName,
					Quantity:      leaf.quantity,
					Orders:        []models.PickOrderRef{ref},
				}
				insertion = append(insertion, k)
			}
		}
	}

	result := make([]models.PickEntry, 0, len(insertion))
	for _, k := range insertion {
		result = append(result, *entries[k])
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(result, func(i, j int) bool {
		return coll.CompareString(result[i].Name, result[j].Name) < 0
	})
	return result, nil
}

// decompose expands a product reference into its leaf requirements with the
// given multiplier. path carries the product ids already on the current
// expansion branch; a recurrence is a cycle and fails that decomposition.
//
// A product id with no matching reference record is treated as a terminal
// leaf with a sentinel display name rather than failing the aggregation.
func (a *Aggregator) decompose(productID string, quantity int, path map[string]struct{}) ([]leafRequirement, error) {
	product, ok := a.products[productID]
	if !ok {
		return []leafRequirement{{productID: productID, name: models.UnknownProduct, quantity: quantity}}, nil
	}

	if product.IsLeaf() {
		return []leafRequirement{{productID: product.ID, name: product.Name, quantity: quantity}}, nil
	}

	if _, seen := path[productID]; seen {
		return nil, &CycleError{ProductID: productID}
	}
	path[productID] = struct{}{}
	defer delete(path, productID)

	// Composite with no children contributes nothing, silently.
	var leaves []leafRequirement
	for _, child := range product.Children {
		childLeaves, err := a.decompose(child.ID, child.Quantity*quantity, path)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, childLeaves...)
	}
	return leaves, nil
}

// Summarize derives the picking list summary numbers: the count of distinct
// (product, warehouse) entries and the total unit quantity to prepare.
func Summarize(entries []models.PickEntry) (totalProducts, totalQuantity int) {
	totalProducts = len(entries)
	for _, entry := range entries {
		totalQuantity += entry.Quantity
	}
	return totalProducts, totalQuantity
}
