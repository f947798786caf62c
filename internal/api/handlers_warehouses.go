// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/warehouse"
)

func (rt *Router) handleWarehouses(w http.ResponseWriter, r *http.Request) {
	page, itemsPerPage, err := parsePagination(r, rt.cfg.API)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q := warehouse.Query{
		Search:       r.URL.Query().Get("search"),
		Page:         page,
		ItemsPerPage: itemsPerPage,
		Unpaginated:  r.URL.Query().Get("all") == "true",
	}

	result, err := rt.warehouses.GetWarehouses(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       result.Data,
		Pagination: result.Pagination,
	})
}
