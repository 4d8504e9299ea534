package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected:
		return true
	}
	return false
}

// Quote is a named, dated price proposal
type Quote struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Status    QuoteStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// QuoteLine references one item with a requested quantity.
// PriceSnapshot is the item's unit price when the line was added.
type QuoteLine struct {
	ID            uuid.UUID       `json:"id"`
	QuoteID       uuid.UUID       `json:"quote_id"`
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Tracking      TrackingMode    `json:"tracking"`
	Quantity      int             `json:"quantity"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot"`
}

// LineTotal is PriceSnapshot times Quantity
func (l *QuoteLine) LineTotal() decimal.Decimal {
	return l.PriceSnapshot.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// QuoteTotal sums the line totals
func QuoteTotal(lines []QuoteLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].LineTotal())
	}
	return total
}
