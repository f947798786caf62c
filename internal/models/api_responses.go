// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package models

// APIError carries a machine-readable error code alongside a human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Pagination describes the window of a paginated listing response.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	ItemsPerPage int  `json:"itemsPerPage"`
	TotalItems   int  `json:"totalItems"`
	TotalPages   int  `json:"totalPages"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// ListResponse wraps a paginated collection.
type ListResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// ItemResponse wraps a single record, optionally with a status message.
type ItemResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// PickingListResponse wraps the aggregated picking list with its derived
// summary numbers.
type PickingListResponse struct {
	Success       bool        `json:"success"`
	Data          []PickEntry `json:"data"`
	TotalProducts int         `json:"totalProducts"`
	TotalQuantity int         `json:"totalQuantity"`
}

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// LoginResponse carries the signed token and the authenticated user.
type LoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
