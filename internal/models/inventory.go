package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrackingMode distinguishes serialized items from bulk items.
// It never changes for the lifetime of an item.
type TrackingMode string

const (
	TrackingSerialized TrackingMode = "serialized"
	TrackingBulk       TrackingMode = "bulk"
)

// Valid reports whether the mode is one of the two known modes.
func (m TrackingMode) Valid() bool {
	return m == TrackingSerialized || m == TrackingBulk
}

// UnitStatus is the lifecycle state of a single serialized unit.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitCheckedOut  UnitStatus = "checked_out"
	UnitMaintenance UnitStatus = "maintenance"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitCheckedOut, UnitMaintenance:
		return true
	}
	return false
}

// Item represents a rental/inventory item
type Item struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tracking  TrackingMode    `json:"tracking"`
	GroupID   *uuid.UUID      `json:"group_id,omitempty"`
	Position  int             `json:"position"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsSerialized is the boolean view of the tracking mode
func (i *Item) IsSerialized() bool {
	return i.Tracking == TrackingSerialized
}

// Group is a reorderable collection of items
type Group struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}

// Unit is one serialized, individually tracked piece of an item
type Unit struct {
	ID           uuid.UUID  `json:"id"`
	ItemID       uuid.UUID  `json:"item_id"`
	SerialNumber string     `json:"serial_number"`
	Status       UnitStatus `json:"status"`
}

// StockRecord holds the aggregate counters of a bulk item
type StockRecord struct {
	ItemID               uuid.UUID `json:"item_id"`
	TotalQuantity        int       `json:"total_quantity"`
	OutOfServiceQuantity int       `json:"out_of_service_quantity"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AvailableQuantity is always total minus out of service
func (s *StockRecord) AvailableQuantity() int {
	return s.TotalQuantity - s.OutOfServiceQuantity
}

// Breakdown is the derived availability snapshot of one item.
// It is recomputed on every request and never persisted.
type Breakdown struct {
	Available    int `json:"available"`
	Reserved     int `json:"reserved"`
	InTransit    int `json:"in_transit"`
	OutOfService int `json:"out_of_service"`
	Total        int `json:"total"`
}
