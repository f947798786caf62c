// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package models defines the persisted entities, derived view records and
// API envelopes shared across the application. Persisted entities mirror
// the JSON collections on disk one to one; derived records (EnrichedOrder,
// EnrichedStock, PickEntry) are computed per request and never stored.
package models

import "time"

// Order statuses. Status is the only order field mutated after creation.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatuses lists every accepted order status.
var ValidStatuses = []string{
	StatusPending, StatusPreparing, StatusReady,
	StatusShipped, StatusDelivered, StatusCancelled,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ProductChild is one component of a composite product's bill of materials.
type ProductChild struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Product is a reference entity. A composite product is fulfilled by its
// children rather than stocked directly; children may themselves be
// composite, forming a tree.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	IsComposite bool           `json:"isComposite"`
	Children    []ProductChild `json:"children,omitempty"`
}

// IsLeaf reports whether the product has no further decomposition. A
// composite with an empty children list is not a leaf; it decomposes to
// nothing.
func (p Product) IsLeaf() bool {
	return !p.IsComposite
}

// LineItem is one requested product within an order.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order is a stored customer order.
type Order struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customerId"`
	WarehouseID       string     `json:"warehouseId"`
	BillingAddressID  string     `json:"billingAddressId"`
	DeliveryAddressID string     `json:"deliveryAddressId"`
	Date              time.Time  `json:"date"`
	Status            string     `json:"status"`
	LineItems         []LineItem `json:"lineItems"`
	Subtotal          float64    `json:"subtotal"`
	Taxes             float64    `json:"taxes"`
	Total             float64    `json:"total"`
	LastUpdated       *time.Time `json:"lastUpdated,omitempty"`
}

// Customer is a reference entity.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Warehouse is a reference entity.
type Warehouse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AddressID string `json:"addressId,omitempty"`
}

// Address is a reference entity resolved into orders at read time.
type Address struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Province   string `json:"province"`
	Country    string `json:"country,omitempty"`
}

// InventoryItem is one stock row: the quantity of a product held at a
// warehouse. AvailableQuantity is derived, never stored.
type InventoryItem struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	WarehouseID      string    `json:"warehouseId"`
	Quantity         int       `json:"quantity"`
	ReservedQuantity int       `json:"reservedQuantity"`
	MinThreshold     int       `json:"minThreshold"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// User is a back-office account. PasswordHash is a bcrypt hash and is
// never serialized into API responses.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"passwordHash"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
}

// PublicUser is the safe projection of a User returned by the login endpoint.
type PublicUser struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Public strips credentials from a User.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}
