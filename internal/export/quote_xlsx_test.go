package export

import (
	"bytes"
	"testing"
	"time"

	"availability-service/internal/availability"
	"availability-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleAssessment() *availability.QuoteAssessment {
	start := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	quote := &models.Quote{
		ID:        uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000001"),
		Name:      "Open air cinema",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Status:    models.QuoteSent,
	}
	screenID, chairID := uuid.New(), uuid.New()
	return &availability.QuoteAssessment{
		Quote: quote,
		QuoteLines: []models.QuoteLine{
			{ItemID: screenID, ItemName: "LED screen", Tracking: models.TrackingSerialized, Quantity: 2, PriceSnapshot: decimal.RequireFromString("450")},
			{ItemID: chairID, ItemName: "Folding chair", Tracking: models.TrackingBulk, Quantity: 120, PriceSnapshot: decimal.RequireFromString("1.25")},
		},
		Assessment: availability.Assessment{
			Lines: []availability.LineAssessment{
				{ItemID: screenID, Quantity: 2, IsSerialized: true, Buffer: 1, Outcome: availability.OutcomeResolved,
					Breakdown: &models.Breakdown{Available: 2, Reserved: 2, Total: 3, OutOfService: 1}, Risk: availability.Yellow},
				{ItemID: chairID, Quantity: 120, Outcome: availability.OutcomeFailed, Risk: availability.Red},
			},
			Risk: availability.Red,
		},
	}
}

func TestWriteQuoteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteQuoteXLSX(&buf, sampleAssessment()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{linesSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(linesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Item", rows[0][0])
	assert.Equal(t, "Risk", rows[0][11])
	assert.Equal(t, []string{"LED screen", "serialized", "2", "450.00", "900.00", "2", "2", "0", "1", "3", "1", "yellow"}, rows[1])
	assert.Equal(t, "150.00", rows[2][4])
	assert.Equal(t, "red", rows[2][len(rows[2])-1])

	total, err := f.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "1050.00", total)

	risk, err := f.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "red", risk)

	start, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-03", start)
}

func TestQuoteFileName(t *testing.T) {
	qa := sampleAssessment()
	assert.Equal(t, "quote_3f2a9c1e_20260703.xlsx", QuoteFileName(qa.Quote))
}
