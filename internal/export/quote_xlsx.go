// Package export renders assessed quotes as spreadsheets for the sales team.
package export

import (
	"fmt"
	"io"

	"availability-service/internal/availability"
	"availability-service/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	linesSheet   = "Lines"
	summarySheet = "Summary"
	dateLayout   = "2006-01-02"
)

var lineHeader = []interface{}{
	"Item", "Tracking", "Quantity", "Unit price", "Line total",
	"Available", "Reserved", "In transit", "Out of service", "Total",
	"Buffer", "Risk",
}

// XLSXContentType is the MIME type of WriteQuoteXLSX output
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuoteFileName is the download name for a quote workbook
func QuoteFileName(quote *models.Quote) string {
	return fmt.Sprintf("quote_%s_%s.xlsx", quote.ID.String()[:8], quote.StartDate.Format("20060102"))
}

// WriteQuoteXLSX writes a two sheet workbook: one row per quote line with its
// breakdown and risk, and a summary with the quote total and overall risk.
// Lines whose item could not be resolved leave the breakdown cells empty.
func WriteQuoteXLSX(w io.Writer, qa *availability.QuoteAssessment) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), linesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(linesSheet, "A1", &lineHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, line := range qa.QuoteLines {
		row := []interface{}{
			line.ItemName,
			string(line.Tracking),
			line.Quantity,
			line.PriceSnapshot.StringFixed(2),
			line.LineTotal().StringFixed(2),
		}
		if i < len(qa.Lines) {
			row = append(row, assessmentCells(qa.Lines[i])...)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(linesSheet, cell, &row); err != nil {
			return fmt.Errorf("write line %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Quote", qa.Quote.Name},
		{"Status", string(qa.Quote.Status)},
		{"Start date", qa.Quote.StartDate.Format(dateLayout)},
		{"End date", qa.Quote.EndDate.Format(dateLayout)},
		{"Lines", len(qa.QuoteLines)},
		{"Total", models.QuoteTotal(qa.QuoteLines).StringFixed(2)},
		{"Risk", string(qa.Risk)},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	return f.Write(w)
}

func assessmentCells(la availability.LineAssessment) []interface{} {
	if la.Breakdown == nil {
		return []interface{}{"", "", "", "", "", "", string(la.Risk)}
	}
	b := la.Breakdown
	return []interface{}{
		b.Available, b.Reserved, b.InTransit, b.OutOfService, b.Total,
		la.Buffer, string(la.Risk),
	}
}
