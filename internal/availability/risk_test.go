package availability

import (
	"testing"

	"availability-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeBreakdown_Serialized(t *testing.T) {
	units := []models.Unit{
		{Status: models.UnitAvailable},
		{Status: models.UnitAvailable},
		{Status: models.UnitCheckedOut},
		{Status: models.UnitMaintenance},
		{Status: models.UnitMaintenance},
	}

	b := ComputeBreakdown(SerializedInventory{Units: units}, 3)

	assert.Equal(t, models.Breakdown{Available: 2, Reserved: 3, InTransit: 1, OutOfService: 2, Total: 5}, b)
	assert.Equal(t, b.Total, b.Available+b.InTransit+b.OutOfService)
}

func TestComputeBreakdown_SerializedPartition(t *testing.T) {
	statuses := []models.UnitStatus{models.UnitAvailable, models.UnitCheckedOut, models.UnitMaintenance}
	for n := 0; n < 12; n++ {
		units := make([]models.Unit, n)
		for i := range units {
			units[i].Status = statuses[(i*7+n)%3]
		}
		b := ComputeBreakdown(SerializedInventory{Units: units}, 0)
		assert.Equal(t, n, b.Total)
		assert.Equal(t, b.Total, b.Available+b.InTransit+b.OutOfService)
	}
}

func TestComputeBreakdown_NoUnits(t *testing.T) {
	assert.Equal(t, models.Breakdown{}, ComputeBreakdown(SerializedInventory{}, 0))
}

func TestComputeBreakdown_Bulk(t *testing.T) {
	tests := []struct {
		name     string
		stock    *models.StockRecord
		reserved int
		expected models.Breakdown
	}{
		{
			name:     "partially out of service",
			stock:    &models.StockRecord{TotalQuantity: 100, OutOfServiceQuantity: 15},
			reserved: 40,
			expected: models.Breakdown{Available: 85, Reserved: 40, OutOfService: 15, Total: 100},
		},
		{
			name:     "everything out of service",
			stock:    &models.StockRecord{TotalQuantity: 7, OutOfServiceQuantity: 7},
			expected: models.Breakdown{Available: 0, OutOfService: 7, Total: 7},
		},
		{
			name:     "no stock record",
			stock:    nil,
			reserved: 2,
			expected: models.Breakdown{Reserved: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := ComputeBreakdown(BulkInventory{Stock: tc.stock}, tc.reserved)
			assert.Equal(t, tc.expected, b)
			assert.Equal(t, 0, b.InTransit)
			assert.Equal(t, b.Total-b.OutOfService, b.Available)
		})
	}
}

func TestCalculateBufferQuantity(t *testing.T) {
	tests := []struct {
		name       string
		serialized bool
		total      int
		requested  int
		expected   int
	}{
		{"serialized small pool", true, 4, 1, 1},
		{"serialized small pool large request", true, 4, 100, 1},
		{"serialized empty pool", true, 0, 3, 1},
		{"serialized pool of five", true, 5, 1, 0},
		{"serialized large pool", true, 50, 40, 0},
		{"bulk eight", false, 100, 8, 2},
		{"bulk ten", false, 100, 10, 1},
		{"bulk five", false, 5, 5, 1},
		{"bulk nine", false, 0, 9, 2},
		{"bulk one", false, 0, 1, 1},
		{"bulk eleven", false, 0, 11, 2},
		{"bulk twenty", false, 0, 20, 2},
		{"bulk zero request", false, 10, 0, 0},
		{"bulk negative request", false, 10, -4, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CalculateBufferQuantity(tc.serialized, tc.total, tc.requested))
		})
	}
}

func TestClassifyLine_Examples(t *testing.T) {
	// bulk, 5 of 5 available, request 5: buffer 1, 5 < 6
	bulk := &models.Breakdown{Available: 5, Total: 5}
	assert.Equal(t, Yellow, ClassifyLine(Line{Quantity: 5}, bulk))

	// serialized pool of three, all available
	serialized := &models.Breakdown{Available: 3, Total: 3}
	assert.Equal(t, Yellow, ClassifyLine(Line{Quantity: 3, IsSerialized: true}, serialized))
	assert.Equal(t, Red, ClassifyLine(Line{Quantity: 4, IsSerialized: true}, serialized))
	assert.Equal(t, Green, ClassifyLine(Line{Quantity: 2, IsSerialized: true}, serialized))

	assert.Equal(t, Red, ClassifyLine(Line{Quantity: 1}, nil))
}

func TestClassifyLine_MonotonicInRequestedQuantity(t *testing.T) {
	breakdowns := []models.Breakdown{
		{Available: 0, Total: 0},
		{Available: 3, Total: 3},
		{Available: 4, Total: 6},
		{Available: 11, Total: 11},
		{Available: 25, Total: 30},
		{Available: 120, Total: 150},
	}

	for _, serialized := range []bool{true, false} {
		for _, b := range breakdowns {
			prev := Green
			for r := 0; r <= 200; r++ {
				level := ClassifyLine(Line{Quantity: r, IsSerialized: serialized}, &b)
				assert.GreaterOrEqualf(t, level.severity(), prev.severity(),
					"serialized=%v breakdown=%+v request=%d went from %s to %s", serialized, b, r, prev, level)
				prev = level
			}
		}
	}
}

func TestCalculateQuoteRisk_Aggregation(t *testing.T) {
	green, yellow, red := uuid.New(), uuid.New(), uuid.New()
	breakdowns := map[uuid.UUID]models.Breakdown{
		green:  {Available: 100, Total: 100},
		yellow: {Available: 5, Total: 5},
		red:    {Available: 1, Total: 1},
	}
	line := func(id uuid.UUID) Line { return Line{ItemID: id, Quantity: 5} }

	tests := []struct {
		name     string
		lines    []Line
		expected Level
	}{
		{"no lines", nil, Green},
		{"green green", []Line{line(green), line(green)}, Green},
		{"green yellow", []Line{line(green), line(yellow)}, Yellow},
		{"yellow green", []Line{line(yellow), line(green)}, Yellow},
		{"green red", []Line{line(green), line(red)}, Red},
		{"red yellow green", []Line{line(red), line(yellow), line(green)}, Red},
		{"unresolved item", []Line{line(green), line(uuid.New())}, Red},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CalculateQuoteRisk(tc.lines, breakdowns))
		})
	}
}

func TestCalculateQuoteRisk_ZeroQuantityUnresolvedIsRed(t *testing.T) {
	lines := []Line{{ItemID: uuid.New(), Quantity: 0}}
	assert.Equal(t, Red, CalculateQuoteRisk(lines, map[uuid.UUID]models.Breakdown{}))
}

func TestWorse(t *testing.T) {
	assert.Equal(t, Red, Worse(Green, Red))
	assert.Equal(t, Red, Worse(Red, Yellow))
	assert.Equal(t, Yellow, Worse(Yellow, Green))
	assert.Equal(t, Green, Worse(Green, Green))
}
