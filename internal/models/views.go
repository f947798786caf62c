// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package models

import "time"

// Sentinel display names substituted when a foreign key does not resolve.
// A dangling reference is an intentional default, not an error.
const (
	UnknownProduct   = "Unknown product"
	UnknownCustomer  = "Unknown customer"
	UnknownWarehouse = "Unknown warehouse"
)

// EnrichedLineItem is an order line item annotated with product name,
// unit price and line total from the product collection.
type EnrichedLineItem struct {
	ProductID  string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"totalPrice"`
}

// EnrichedOrder is an Order joined with customer name, warehouse name and
// resolved addresses. Computed per request, never persisted.
type EnrichedOrder struct {
	Order
	CustomerName    string             `json:"customerName"`
	WarehouseName   string             `json:"warehouseName"`
	BillingAddress  *Address           `json:"billingAddress"`
	DeliveryAddress *Address           `json:"deliveryAddress"`
	LineItems       []EnrichedLineItem `json:"lineItems"`
}

// EnrichedStock is an InventoryItem joined with product and warehouse names.
type EnrichedStock struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"productId"`
	WarehouseID       string    `json:"warehouseId"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	TotalQuantity     int       `json:"totalQuantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	MinThreshold      int       `json:"minThreshold"`
	LastUpdated       time.Time `json:"lastUpdated"`
	WarehouseName     string    `json:"warehouseName"`
}

// PickOrderRef traces an aggregated quantity back to the originating order,
// customer and originally requested (possibly composite) product.
type PickOrderRef struct {
	OrderID         string `json:"orderId"`
	CustomerName    string `json:"customerName"`
	Quantity        int    `json:"quantity"`
	OriginalProduct string `json:"originalProduct"`
}

// PickEntry is the total quantity of one leaf product required at one
// warehouse across a filtered order set. Entries are keyed by
// (productId, warehouseId); the same product at two warehouses is never
// merged.
type PickEntry struct {
	ProductID     string         `json:"productId"`
	Name          string         `json:"name"`
	WarehouseID   string         `json:"warehouseId"`
	WarehouseName string         `json:"warehouseName"`
	Quantity      int            `json:"quantity"`
	Orders        []PickOrderRef `json:"orders"`
}
