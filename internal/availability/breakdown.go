// Package availability derives per-item availability breakdowns from the two
// inventory models (serialized units, bulk stock) and classifies the risk of
// fulfilling quote lines against them.
package availability

import (
	"availability-service/internal/models"
)

// Inventory is the tracking-mode specific state of one item.
// The only implementations are SerializedInventory and BulkInventory.
type Inventory interface {
	counts() models.Breakdown
}

// SerializedInventory is an item tracked as discrete units
type SerializedInventory struct {
	Units []models.Unit
}

func (s SerializedInventory) counts() models.Breakdown {
	b := models.Breakdown{Total: len(s.Units)}
	for _, unit := range s.Units {
		switch unit.Status {
		case models.UnitAvailable:
			b.Available++
		case models.UnitCheckedOut:
			b.InTransit++
		case models.UnitMaintenance:
			b.OutOfService++
		}
	}
	return b
}

// BulkInventory is an item tracked by aggregate counters.
// Stock is nil when the item has no stock record yet.
type BulkInventory struct {
	Stock *models.StockRecord
}

func (s BulkInventory) counts() models.Breakdown {
	if s.Stock == nil {
		return models.Breakdown{}
	}
	// bulk stock has no notion of transit
	return models.Breakdown{
		Total:        s.Stock.TotalQuantity,
		OutOfService: s.Stock.OutOfServiceQuantity,
		Available:    s.Stock.AvailableQuantity(),
	}
}

// ComputeBreakdown combines an item's inventory with its reserved quantity
func ComputeBreakdown(inv Inventory, reserved int) models.Breakdown {
	var b models.Breakdown
	if inv != nil {
		b = inv.counts()
	}
	b.Reserved = reserved
	return b
}
