// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stockroomhq/stockroom/internal/config"
	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/inventory"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/orders"
)

const dateLayout = "2006-01-02"

// paramError is a bad query parameter; it maps to a 400 response.
type paramError struct {
	msg string
}

func (e *paramError) Error() string { return e.msg }

func badParam(format string, args ...interface{}) error {
	return &paramError{msg: fmt.Sprintf(format, args...)}
}

// parsePagination reads page and itemsPerPage with the configured defaults,
// clamping itemsPerPage to the configured maximum.
func parsePagination(r *http.Request, cfg config.APIConfig) (page, itemsPerPage int, err error) {
	page = 1
	itemsPerPage = cfg.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, badParam("page must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("itemsPerPage"); raw != "" {
		itemsPerPage, err = strconv.Atoi(raw)
		if err != nil || itemsPerPage < 1 {
			return 0, 0, badParam("itemsPerPage must be a positive integer")
		}
		if itemsPerPage > cfg.MaxPageSize {
			itemsPerPage = cfg.MaxPageSize
		}
	}
	return page, itemsPerPage, nil
}

func parseSortOrder(r *http.Request) (string, error) {
	order := r.URL.Query().Get("sortOrder")
	switch order {
	case "", "asc", "desc":
		if order == "" {
			order = "desc"
		}
		return order, nil
	default:
		return "", badParam("sortOrder must be asc or desc")
	}
}

func parseDate(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, badParam("%s must be a date in %s format", name, dateLayout)
	}
	return t, nil
}

// parseTimeWindow validates timePeriod and its custom-range dates.
func parseTimeWindow(r *http.Request) (period string, start, end time.Time, err error) {
	q := r.URL.Query()
	period = q.Get("timePeriod")
	if period == "" {
		period = orders.WindowAll
	}
	if !orders.IsValidTimeWindow(period) {
		return "", time.Time{}, time.Time{}, badParam("timePeriod must be one of all, today, yesterday, week, custom")
	}

	start, err = parseDate(q.Get("startDate"), "startDate")
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	end, err = parseDate(q.Get("endDate"), "endDate")
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	if period == orders.WindowCustom && (start.IsZero() || end.IsZero()) {
		return "", time.Time{}, time.Time{}, badParam("startDate and endDate are required for a custom timePeriod")
	}
	return period, start, end, nil
}

// parseOrderQuery assembles the full order listing query from the URL.
func parseOrderQuery(r *http.Request, cfg config.APIConfig) (orders.Query, error) {
	q := r.URL.Query()

	status := q.Get("status")
	if status == "" {
		status = orders.FilterAll
	}
	if status != orders.FilterAll && !models.IsValidStatus(status) {
		return orders.Query{}, badParam("status %q is not a known order status", status)
	}

	sortField := orders.SortField(q.Get("sortBy"))
	if sortField == "" {
		sortField = orders.SortByDate
	}
	if !orders.IsValidSortField(sortField) {
		return orders.Query{}, badParam("sortBy %q is not sortable", string(sortField))
	}

	sortOrder, err := parseSortOrder(r)
	if err != nil {
		return orders.Query{}, err
	}

	period, start, end, err := parseTimeWindow(r)
	if err != nil {
		return orders.Query{}, err
	}

	page, itemsPerPage, err := parsePagination(r, cfg)
	if err != nil {
		return orders.Query{}, err
	}

	warehouseID := q.Get("warehouseId")
	if warehouseID == "" {
		warehouseID = orders.FilterAll
	}

	return orders.Query{
		WarehouseID:  warehouseID,
		Status:       status,
		Search:       q.Get("search"),
		TimePeriod:   period,
		StartDate:    start,
		EndDate:      end,
		SortField:    sortField,
		SortOrder:    sortOrder,
		Page:         page,
		ItemsPerPage: itemsPerPage,
	}, nil
}

// parsePickingQuery assembles the reduced picking-list query.
func parsePickingQuery(r *http.Request) (orders.PickingQuery, error) {
	period, start, end, err := parseTimeWindow(r)
	if err != nil {
		return orders.PickingQuery{}, err
	}

	warehouseID := r.URL.Query().Get("warehouseId")
	if warehouseID == "" {
		warehouseID = orders.FilterAll
	}

	return orders.PickingQuery{
		WarehouseID: warehouseID,
		Search:      r.URL.Query().Get("search"),
		TimePeriod:  period,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// parseStockQuery assembles the stock listing query from the URL.
func parseStockQuery(r *http.Request, cfg config.APIConfig) (inventory.Query, error) {
	q := r.URL.Query()

	sortField := inventory.SortField(q.Get("sortBy"))
	if sortField == "" {
		sortField = inventory.SortByName
	}
	if !inventory.IsValidSortField(sortField) {
		return inventory.Query{}, badParam("sortBy %q is not sortable", string(sortField))
	}

	sortOrder := q.Get("sortOrder")
	switch sortOrder {
	case "":
		sortOrder = "asc"
	case "asc", "desc":
	default:
		return inventory.Query{}, badParam("sortOrder must be asc or desc")
	}

	page, itemsPerPage, err := parsePagination(r, cfg)
	if err != nil {
		return inventory.Query{}, err
	}

	warehouseID := q.Get("warehouseId")
	if warehouseID == "" {
		warehouseID = inventory.FilterAll
	}

	return inventory.Query{
		WarehouseID:  warehouseID,
		Search:       q.Get("search"),
		SortField:    sortField,
		SortOrder:    sortOrder,
		Page:         page,
		ItemsPerPage: itemsPerPage,
	}, nil
}

// parseExportFormat reads and validates the format query parameter.
func parseExportFormat(r *http.Request) (export.Format, error) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	if !export.IsValidFormat(format) {
		return "", badParam("format must be one of csv, excel, pdf")
	}
	return format, nil
}
