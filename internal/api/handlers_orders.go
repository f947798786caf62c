// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/metrics"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/orders"
	"github.com/stockroomhq/stockroom/internal/picking"
	"github.com/stockroomhq/stockroom/internal/validation"
)

func (rt *Router) handleOrders(w http.ResponseWriter, r *http.Request) {
	q, err := parseOrderQuery(r, rt.cfg.API)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := rt.orders.GetOrders(r.Context(), q)
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

func (rt *Router) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := rt.orders.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ItemResponse{Success: true, Data: order})
}

type lineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	CustomerID        string            `json:"customerId" validate:"required"`
	WarehouseID       string            `json:"warehouseId" validate:"required"`
	BillingAddressID  string            `json:"billingAddressId"`
	DeliveryAddressID string            `json:"deliveryAddressId"`
	LineItems         []lineItemRequest `json:"lineItems" validate:"required,min=1,dive"`
}

func (rt *Router) handleOrderCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(req); ve != nil {
		respondValidation(w, ve)
		return
	}

	input := orders.NewOrderInput{
		CustomerID:        req.CustomerID,
		WarehouseID:       req.WarehouseID,
		BillingAddressID:  req.BillingAddressID,
		DeliveryAddressID: req.DeliveryAddressID,
	}
	for _, li := range req.LineItems {
		input.LineItems = append(input.LineItems, models.LineItem{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
		})
	}

	order, err := rt.orders.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, models.ItemResponse{
		Success: true,
		Data:    order,
		Message: "order created",
	})
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (rt *Router) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(req); ve != nil {
		respondValidation(w, ve)
		return
	}
	if !models.IsValidStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"status "+strconv.Quote(req.Status)+" is not a known order status")
		return
	}

	order, err := rt.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ItemResponse{
		Success: true,
		Data:    order,
		Message: "order status updated",
	})
}

func (rt *Router) handleOrdersExport(w http.ResponseWriter, r *http.Request) {
	format, err := parseExportFormat(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	q, err := parseOrderQuery(r, rt.cfg.API)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	q.Unpaginated = true
	q.ItemsPerPage = rt.cfg.API.ExportPageSize

	result, err := rt.orders.GetOrders(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	file, err := export.Orders(format, result.Data)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	metrics.ExportsTotal.WithLabelValues("orders", string(format)).Inc()
	serveFile(w, file)
}

func (rt *Router) handlePickingList(w http.ResponseWriter, r *http.Request) {
	q, err := parsePickingQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entries, err := rt.orders.PickingList(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	totalProducts, totalQuantity := picking.Summarize(entries)
	respondJSON(w, http.StatusOK, models.PickingListResponse{
		Success:       true,
		Data:          entries,
		TotalProducts: totalProducts,
		TotalQuantity: totalQuantity,
	})
}

func (rt *Router) handlePickingListExport(w http.ResponseWriter, r *http.Request) {
	format, err := parseExportFormat(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	q, err := parsePickingQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entries, err := rt.orders.PickingList(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	file, err := export.PickingList(format, entries)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	metrics.ExportsTotal.WithLabelValues("picking_list", string(format)).Inc()
	serveFile(w, file)
}

// serveFile writes a rendered export as a download attachment.
func serveFile(w http.ResponseWriter, file *export.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", file.ContentDisposition())
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		logging.Error().Err(err).Str("file", file.Name).Msg("failed to write export body")
	}
}
