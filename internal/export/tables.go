// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stockroomhq/stockroom/internal/models"
)

// table is the intermediate form every export renders from. Each data set
// is flattened to strings once; the format renderers stay data-agnostic.
type table struct {
	title   string
	headers []string
	rows    [][]string
	// widths are the relative PDF column widths, same length as headers.
	widths []float64
}

func ordersTable(orders []models.EnrichedOrder) table {
	t := table{
		title:   "Orders",
		headers: []string{"Order ID", "Date", "Customer", "Warehouse", "Status", "Items", "Subtotal", "Taxes", "Total"},
		widths:  []float64{38, 22, 45, 40, 24, 16, 24, 24, 24},
	}
	for _, o := range orders {
		items := 0
		for _, li := range o.LineItems {
			items += li.Quantity
		}
		t.rows = append(t.rows, []string{
			o.ID,
			o.Date.Format("2006-01-02"),
			o.CustomerName,
			o.WarehouseName,
			o.Status,
			strconv.Itoa(items),
			money(o.Subtotal),
			money(o.Taxes),
			money(o.Total),
		})
	}
	return t
}

func stocksTable(stocks []models.EnrichedStock) table {
	t := table{
		title:   "Stocks",
		headers: []string{"Product ID", "Product", "Warehouse", "Total", "Reserved", "Available", "Min Threshold", "Last Updated"},
		widths:  []float64{38, 50, 42, 22, 22, 22, 28, 32},
	}
	for _, s := range stocks {
		t.rows = append(t.rows, []string{
			s.ProductID,
			s.Name,
			s.WarehouseName,
			strconv.Itoa(s.TotalQuantity),
			strconv.Itoa(s.ReservedQuantity),
			strconv.Itoa(s.AvailableQuantity),
			strconv.Itoa(s.MinThreshold),
			s.LastUpdated.Format("2006-01-02 15:04"),
		})
	}
	return t
}

func pickingTable(entries []models.PickEntry) table {
	t := table{
		title:   "Picking List",
		headers: []string{"Product ID", "Product", "Warehouse", "Quantity", "Orders"},
		widths:  []float64{38, 55, 45, 24, 95},
	}
	for _, e := range entries {
		refs := make([]string, 0, len(e.Orders))
		for _, ref := range e.Orders {
			refs = append(refs, fmt.Sprintf("%s (%d)", ref.OrderID, ref.Quantity))
		}
		t.rows = append(t.rows, []string{
			e.ProductID,
			e.Name,
			e.WarehouseName,
			strconv.Itoa(e.Quantity),
			strings.Join(refs, ", "),
		})
	}
	return t
}

// Orders renders the given enriched orders to the requested format.
func Orders(format Format, orders []models.EnrichedOrder) (*File, error) {
	return render(format, "orders", ordersTable(orders))
}

// Stocks renders the given enriched stock rows to the requested format.
func Stocks(format Format, stocks []models.EnrichedStock) (*File, error) {
	return render(format, "stocks", stocksTable(stocks))
}

// PickingList renders the aggregated picking list to the requested format.
func PickingList(format Format, entries []models.PickEntry) (*File, error) {
	return render(format, "picking_list", pickingTable(entries))
}

func render(format Format, prefix string, t table) (*File, error) {
	if !IsValidFormat(format) {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	var (
		content []byte
		err     error
	)
	switch format {
	case FormatExcel:
		content, err = renderExcel(t)
	case FormatPDF:
		content, err = renderPDF(t)
	default:
		content, err = renderCSV(t)
	}
	if err != nil {
		return nil, err
	}

	return &File{
		Name:        fileName(prefix, format),
		ContentType: contentType(format),
		Content:     content,
	}, nil
}
