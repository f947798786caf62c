// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package orders

import (
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/store"
)

// enrichOrders joins raw orders against the reference collections of the
// snapshot. Dangling foreign keys substitute sentinel names, a zero price or
// a nil address; they never fail the enrichment.
func enrichOrders(snap *store.Snapshot, raw []models.Order) []models.EnrichedOrder {
	enriched := make([]models.EnrichedOrder, 0, len(raw))
	for _, order := range raw {
		e := models.EnrichedOrder{
			Order:         order,
			CustomerName:  models.UnknownCustomer,
			WarehouseName: models.UnknownWarehouse,
		}

		if customer, ok := snap.Customers[order.CustomerID]; ok {
			e.CustomerName = customer.Name
		}
		if warehouse, ok := snap.Warehouses[order.WarehouseID]; ok {
			e.WarehouseName = warehouse.Name
		}
		if addr, ok := snap.Addresses[order.BillingAddressID]; ok {
			billing := addr
			e.BillingAddress = &billing
		}
		if addr, ok := snap.Addresses[order.DeliveryAddressID]; ok {
			delivery := addr
			e.DeliveryAddress = &delivery
		}

		e.LineItems = make([]models.EnrichedLineItem, 0, len(order.LineItems))
		for _, item := range order.LineItems {
			li := models.EnrichedLineItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Name:      models.UnknownProduct,
			}
			if product, ok := snap.Products[item.ProductID]; ok {
				li.Name = product.Name
				li.Price = product.Price
				li.TotalPrice = product.Price * float64(item.Quantity)
			}
			e.LineItems = append(e.LineItems, li)
		}

		enriched = append(enriched, e)
	}
	return enriched
}
