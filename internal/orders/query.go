// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package orders

import (
	"strings"
	"time"

	"github.com/stockroomhq/stockroom/internal/models"
)

// FilterAll disables a warehouse or status equality filter.
const FilterAll = "all"

// Time windows accepted by the order filters. WindowCustom requires both
// StartDate and EndDate and includes the entire end day.
const (
	WindowAll       = "all"
	WindowToday     = "today"
	WindowYesterday = "yesterday"
	WindowWeek      = "week"
	WindowCustom    = "custom"
)

// ValidTimeWindows lists every accepted time window selector.
var ValidTimeWindows = []string{WindowAll, WindowToday, WindowYesterday, WindowWeek, WindowCustom}

// IsValidTimeWindow reports whether w is a known window selector.
func IsValidTimeWindow(w string) bool {
	for _, v := range ValidTimeWindows {
		if v == w {
			return true
		}
	}
	return false
}

// SortField names one sortable order attribute. Sorting is restricted to
// this allow-list and resolved through typed comparators, never a dynamic
// field lookup.
type SortField string

// Sortable order fields.
const (
	SortByDate     SortField = "date"
	SortByCustomer SortField = "customerId"
	SortByStatus   SortField = "status"
	SortByTotal    SortField = "total"
	SortByID       SortField = "id"
)

// ValidSortFields lists every accepted sort field.
var ValidSortFields = []SortField{SortByDate, SortByCustomer, SortByStatus, SortByTotal, SortByID}

// IsValidSortField reports whether f is a sortable field.
func IsValidSortField(f SortField) bool {
	for _, v := range ValidSortFields {
		if v == f {
			return true
		}
	}
	return false
}

// comparators maps each sortable field to its typed comparison. Date
// compares as time, customerId compares the resolved customer name
// case-insensitively, the rest compare their natural types.
var comparators = map[SortField]func(a, b models.EnrichedOrder) int{
	SortByDate: func(a, b models.EnrichedOrder) int {
		return a.Date.Compare(b.Date)
	},
	SortByCustomer: func(a, b models.EnrichedOrder) int {
		return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
	},
	SortByStatus: func(a, b models.EnrichedOrder) int {
		return strings.Compare(a.Status, b.Status)
	},
	SortByTotal: func(a, b models.EnrichedOrder) int {
		switch {
		case a.Total < b.Total:
			return -1
		case a.Total > b.Total:
			return 1
		default:
			return 0
		}
	},
	SortByID: func(a, b models.EnrichedOrder) int {
		return strings.Compare(strings.ToLower(a.ID), strings.ToLower(b.ID))
	},
}

// Query carries the filter, sort and pagination parameters for order reads.
type Query struct {
	WarehouseID string
	Status      string
	Search      string
	TimePeriod  string
	StartDate   time.Time
	EndDate     time.Time

	SortField SortField
	SortOrder string // "asc" or "desc"

	Page         int
	ItemsPerPage int

	// Unpaginated requests the full filtered set (exports, picking lists).
	Unpaginated bool
}

// PickingQuery is the reduced filter surface of the picking-list endpoints.
// Status is always forced to pending and pagination is always bypassed.
type PickingQuery struct {
	WarehouseID string
	Search      string
	TimePeriod  string
	StartDate   time.Time
	EndDate     time.Time
}

// orderQuery converts a picking query into the full query it implies.
func (q PickingQuery) orderQuery() Query {
	return Query{
		WarehouseID: q.WarehouseID,
		Status:      models.StatusPending,
		Search:      q.Search,
		TimePeriod:  q.TimePeriod,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		SortField:   SortByDate,
		SortOrder:   "desc",
		Unpaginated: true,
	}
}

// withinWindow reports whether ts falls inside the selected time window,
// evaluated against now. The custom window includes the entire end day.
func withinWindow(ts time.Time, window string, start, end, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch window {
	case WindowToday:
		return !ts.Before(today) && ts.Before(today.AddDate(0, 0, 1))
	case WindowYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return !ts.Before(yesterday) && ts.Before(today)
	case WindowWeek:
		return !ts.Before(today.AddDate(0, 0, -7))
	case WindowCustom:
		if start.IsZero() || end.IsZero() {
			return true
		}
		endExclusive := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)
		return !ts.Before(start) && ts.Before(endExclusive)
	default:
		return true
	}
}
