// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/inventory"
	"github.com/stockroomhq/stockroom/internal/metrics"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/validation"
)

func (rt *Router) handleStocks(w http.ResponseWriter, r *http.Request) {
	q, err := parseStockQuery(r, rt.cfg.API)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := rt.inventory.GetStocks(r.Context(), q)
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

func (rt *Router) handleStockByID(w http.ResponseWriter, r *http.Request) {
	stock, err := rt.inventory.GetStockByID(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("warehouseId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ItemResponse{Success: true, Data: stock})
}

type addStockRequest struct {
	ProductID        string `json:"productId" validate:"required"`
	WarehouseID      string `json:"warehouseId" validate:"required"`
	Quantity         int    `json:"quantity" validate:"gte=0"`
	ReservedQuantity int    `json:"reservedQuantity" validate:"gte=0"`
	MinThreshold     int    `json:"minThreshold" validate:"gte=0"`
}

func (rt *Router) handleStockAdd(w http.ResponseWriter, r *http.Request) {
	var req addStockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(req); ve != nil {
		respondValidation(w, ve)
		return
	}

	stock, err := rt.inventory.AddStock(r.Context(), inventory.NewStockInput{
		ProductID:        req.ProductID,
		WarehouseID:      req.WarehouseID,
		Quantity:         req.Quantity,
		ReservedQuantity: req.ReservedQuantity,
		MinThreshold:     req.MinThreshold,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, models.ItemResponse{
		Success: true,
		Data:    stock,
		Message: "stock row added",
	})
}

type updateStockRequest struct {
	TotalQuantity    *int   `json:"totalQuantity" validate:"omitempty,gte=0"`
	ReservedQuantity *int   `json:"reservedQuantity" validate:"omitempty,gte=0"`
	MinThreshold     *int   `json:"minThreshold" validate:"omitempty,gte=0"`
	WarehouseID      string `json:"warehouseId"`
}

func (rt *Router) handleStockUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(req); ve != nil {
		respondValidation(w, ve)
		return
	}
	if req.TotalQuantity == nil && req.ReservedQuantity == nil && req.MinThreshold == nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "at least one field must be provided")
		return
	}

	stock, err := rt.inventory.UpdateStock(r.Context(), chi.URLParam(r, "id"), inventory.UpdateInput{
		TotalQuantity:    req.TotalQuantity,
		ReservedQuantity: req.ReservedQuantity,
		MinThreshold:     req.MinThreshold,
		WarehouseID:      req.WarehouseID,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ItemResponse{
		Success: true,
		Data:    stock,
		Message: "stock updated",
	})
}

func (rt *Router) handleStockDelete(w http.ResponseWriter, r *http.Request) {
	err := rt.inventory.DeleteStock(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("warehouseId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ItemResponse{
		Success: true,
		Message: "stock row deleted",
	})
}

func (rt *Router) handleStocksExport(w http.ResponseWriter, r *http.Request) {
	format, err := parseExportFormat(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	q, err := parseStockQuery(r, rt.cfg.API)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	q.Unpaginated = true
	q.ItemsPerPage = rt.cfg.API.ExportPageSize

	result, err := rt.inventory.GetStocks(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	file, err := export.Stocks(format, result.Data)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	metrics.ExportsTotal.WithLabelValues("stocks", string(format)).Inc()
	serveFile(w, file)
}
