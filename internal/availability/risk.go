package availability

import (
	"availability-service/internal/models"

	"github.com/google/uuid"
)

// Level is a risk classification. Red outranks yellow outranks green.
type Level string

const (
	Green  Level = "green"
	Yellow Level = "yellow"
	Red    Level = "red"
)

func (l Level) severity() int {
	switch l {
	case Red:
		return 2
	case Yellow:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of two levels
func Worse(a, b Level) Level {
	if b.severity() > a.severity() {
		return b
	}
	return a
}

const (
	smallPoolThreshold = 5
	largeOrderQuantity = 10
	smallOrderPercent  = 20
	largeOrderPercent  = 10
)

// CalculateBufferQuantity returns the safety margin added to a request.
//
// Serialized items keep one spare unit while the pool has fewer than five
// units. Bulk items get 20% of the request (10% from ten upward), rounded up.
func CalculateBufferQuantity(isSerialized bool, total, requestedQuantity int) int {
	if isSerialized {
		if total < smallPoolThreshold {
			return 1
		}
		return 0
	}
	if requestedQuantity <= 0 {
		return 0
	}
	percent := largeOrderPercent
	if requestedQuantity < largeOrderQuantity {
		percent = smallOrderPercent
	}
	// integer ceiling of requested*percent/100
	return (requestedQuantity*percent + 99) / 100
}

// Line is one requested item of a quote
type Line struct {
	ItemID       uuid.UUID
	Quantity     int
	IsSerialized bool
}

// ClassifyLine rates a single line against its item's breakdown.
// A nil breakdown means the item could not be resolved and rates red.
func ClassifyLine(line Line, breakdown *models.Breakdown) Level {
	if breakdown == nil {
		return Red
	}
	buffer := CalculateBufferQuantity(line.IsSerialized, breakdown.Total, line.Quantity)
	switch {
	case breakdown.Available < line.Quantity:
		return Red
	case breakdown.Available < line.Quantity+buffer:
		return Yellow
	default:
		return Green
	}
}

// CalculateQuoteRisk folds the line levels into the quote level.
// Items missing from breakdowns count as red; no lines is green.
func CalculateQuoteRisk(lines []Line, breakdowns map[uuid.UUID]models.Breakdown) Level {
	risk := Green
	for _, line := range lines {
		var breakdown *models.Breakdown
		if b, ok := breakdowns[line.ItemID]; ok {
			breakdown = &b
		}
		risk = Worse(risk, ClassifyLine(line, breakdown))
		if risk == Red {
			return Red
		}
	}
	return risk
}
