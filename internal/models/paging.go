// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package models

// Paginate slices items down to the requested page and describes the window.
// Pages are 1-based; a page past the end yields an empty (non-nil) slice.
func Paginate[T any](items []T, page, itemsPerPage int) ([]T, Pagination) {
	totalItems := len(items)
	totalPages := 0
	if itemsPerPage > 0 {
		totalPages = (totalItems + itemsPerPage - 1) / itemsPerPage
	}

	start := (page - 1) * itemsPerPage
	if start > totalItems {
		start = totalItems
	}
	end := start + itemsPerPage
	if end > totalItems {
		end = totalItems
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return window, Pagination{
		CurrentPage:  page,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}
