package handlers

import (
	"time"

	"availability-service/internal/availability"
	"availability-service/internal/models"
)

// BreakdownResponse is an item's availability split by state
// @Description Availability breakdown of one item
type BreakdownResponse struct {
	// Units or stock ready to rent
	Available int `json:"available" example:"4"`

	// Quantity on quote lines across all quotes
	Reserved int `json:"reserved" example:"6"`

	// Serialized units checked out (always 0 for bulk items)
	InTransit int `json:"in_transit" example:"1"`

	// Units in maintenance or out-of-service stock
	OutOfService int `json:"out_of_service" example:"1"`

	// Total units or stock
	Total int `json:"total" example:"6"`
}

func newBreakdownResponse(b models.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Available:    b.Available,
		Reserved:     b.Reserved,
		InTransit:    b.InTransit,
		OutOfService: b.OutOfService,
		Total:        b.Total,
	}
}

// ItemResponse represents a catalog item with its current availability
// @Description Catalog item with availability breakdown
type ItemResponse struct {
	ID        string            `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string            `json:"name" example:"Line array speaker"`
	UnitPrice string            `json:"unit_price" example:"85.00"`
	Tracking  string            `json:"tracking" example:"serialized" enums:"serialized,bulk"`
	GroupID   string            `json:"group_id,omitempty" example:"0b1e6c5a-8d59-4a53-9d0f-3b2a2f0c9d11"`
	Position  int               `json:"position" example:"0"`
	Breakdown BreakdownResponse `json:"breakdown"`
	CreatedAt string            `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string            `json:"updated_at" example:"2024-01-15T11:45:00Z"`
}

func newItemResponse(item *models.Item, b models.Breakdown) ItemResponse {
	resp := ItemResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		UnitPrice: item.UnitPrice.StringFixed(2),
		Tracking:  string(item.Tracking),
		Position:  item.Position,
		Breakdown: newBreakdownResponse(b),
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
	if item.GroupID != nil {
		resp.GroupID = item.GroupID.String()
	}
	return resp
}

// ListItemsResponse represents the item catalog
// @Description Catalog ordered by group position, item position, then name
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total" example:"4"`
}

// ItemAvailabilityResponse is the breakdown of one item
// @Description Breakdown of one item. Unknown or unreadable items report all zeros.
type ItemAvailabilityResponse struct {
	ItemID    string            `json:"item_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Breakdown BreakdownResponse `json:"breakdown"`
}

// BufferResponse is the safety margin for a request
// @Description Safety margin added to a requested quantity
type BufferResponse struct {
	Serialized bool `json:"serialized" example:"false"`
	Total      int  `json:"total" example:"100"`
	Requested  int  `json:"requested" example:"8"`
	Buffer     int  `json:"buffer" example:"2"`
}

// RiskLineRequest is one line of an ad-hoc risk check
type RiskLineRequest struct {
	ItemID   string `json:"item_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity int    `json:"quantity" binding:"min=0" example:"4"`
}

// RiskRequest asks for the risk of lines that are not saved yet
type RiskRequest struct {
	Lines []RiskLineRequest `json:"lines" binding:"required,dive"`
}

// LineRiskResponse is the classification of one line
// @Description Line risk. breakdown is omitted when the item could not be resolved.
type LineRiskResponse struct {
	ItemID     string             `json:"item_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ItemName   string             `json:"item_name,omitempty" example:"Line array speaker"`
	Quantity   int                `json:"quantity" example:"4"`
	Serialized bool               `json:"serialized" example:"true"`
	Outcome    string             `json:"outcome" example:"resolved" enums:"resolved,not_found,unclassified,failed"`
	Buffer     int                `json:"buffer" example:"0"`
	Breakdown  *BreakdownResponse `json:"breakdown,omitempty"`
	Risk       string             `json:"risk" example:"green" enums:"green,yellow,red"`
}

func newLineRiskResponse(la availability.LineAssessment) LineRiskResponse {
	resp := LineRiskResponse{
		ItemID:     la.ItemID.String(),
		ItemName:   la.ItemName,
		Quantity:   la.Quantity,
		Serialized: la.IsSerialized,
		Outcome:    string(la.Outcome),
		Buffer:     la.Buffer,
		Risk:       string(la.Risk),
	}
	if la.Breakdown != nil {
		b := newBreakdownResponse(*la.Breakdown)
		resp.Breakdown = &b
	}
	return resp
}

// RiskResponse is the classification of a set of lines
// @Description Per line risk and the overall level (worst line wins)
type RiskResponse struct {
	Lines []LineRiskResponse `json:"lines"`
	Risk  string             `json:"risk" example:"yellow" enums:"green,yellow,red"`
}

func newRiskResponse(a availability.Assessment) RiskResponse {
	lines := make([]LineRiskResponse, len(a.Lines))
	for i, la := range a.Lines {
		lines[i] = newLineRiskResponse(la)
	}
	return RiskResponse{Lines: lines, Risk: string(a.Risk)}
}

// QuoteLineResponse is a stored quote line with its risk
type QuoteLineResponse struct {
	ID            string `json:"id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	PriceSnapshot string `json:"price_snapshot" example:"85.00"`
	LineTotal     string `json:"line_total" example:"340.00"`
	Tracking      string `json:"tracking" example:"serialized"`
	LineRiskResponse
}

// QuoteResponse is a quote with annotated lines, total and overall risk
// @Description Quote with per line availability, total price and overall risk
type QuoteResponse struct {
	ID        string              `json:"id" example:"9b2d0d3c-7f1e-4f0e-9c39-3f8d8e1b2a10"`
	Name      string              `json:"name" example:"Summer festival main stage"`
	Status    string              `json:"status" example:"draft" enums:"draft,sent,accepted,rejected"`
	StartDate string              `json:"start_date" example:"2024-07-01"`
	EndDate   string              `json:"end_date" example:"2024-07-04"`
	Lines     []QuoteLineResponse `json:"lines"`
	Total     string              `json:"total" example:"1412.00"`
	Risk      string              `json:"risk" example:"green" enums:"green,yellow,red"`
}

func newQuoteResponse(qa *availability.QuoteAssessment) QuoteResponse {
	lines := make([]QuoteLineResponse, len(qa.QuoteLines))
	for i := range qa.QuoteLines {
		ql := &qa.QuoteLines[i]
		lines[i] = QuoteLineResponse{
			ID:               ql.ID.String(),
			PriceSnapshot:    ql.PriceSnapshot.StringFixed(2),
			LineTotal:        ql.LineTotal().StringFixed(2),
			Tracking:         string(ql.Tracking),
			LineRiskResponse: newLineRiskResponse(qa.Lines[i]),
		}
		if lines[i].ItemName == "" {
			lines[i].ItemName = ql.ItemName
		}
	}
	return QuoteResponse{
		ID:        qa.Quote.ID.String(),
		Name:      qa.Quote.Name,
		Status:    string(qa.Quote.Status),
		StartDate: qa.Quote.StartDate.Format(dateLayout),
		EndDate:   qa.Quote.EndDate.Format(dateLayout),
		Lines:     lines,
		Total:     models.QuoteTotal(qa.QuoteLines).StringFixed(2),
		Risk:      string(qa.Risk),
	}
}

const dateLayout = "2006-01-02"
