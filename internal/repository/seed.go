package repository

import (
	"context"
	"fmt"
	"time"

	"availability-service/internal/models"

	"github.com/shopspring/decimal"
)

// SeedDemo fills an empty store with a small rental catalog and one draft quote
func SeedDemo(ctx context.Context, repo WriteRepository) (*models.Quote, error) {
	audio := &models.Group{Name: "Audio", Position: 0}
	staging := &models.Group{Name: "Staging", Position: 1}
	for _, g := range []*models.Group{audio, staging} {
		if err := repo.CreateGroup(ctx, g); err != nil {
			return nil, err
		}
	}

	speaker := &models.Item{Name: "Line array speaker", UnitPrice: decimal.RequireFromString("85.00"), Tracking: models.TrackingSerialized, GroupID: &audio.ID, Position: 0}
	mixer := &models.Item{Name: "Digital mixer", UnitPrice: decimal.RequireFromString("120.00"), Tracking: models.TrackingSerialized, GroupID: &audio.ID, Position: 1}
	cable := &models.Item{Name: "XLR cable 10m", UnitPrice: decimal.RequireFromString("2.50"), Tracking: models.TrackingBulk, GroupID: &audio.ID, Position: 2}
	deck := &models.Item{Name: "Stage deck 2x1m", UnitPrice: decimal.RequireFromString("18.00"), Tracking: models.TrackingBulk, GroupID: &staging.ID, Position: 0}
	for _, item := range []*models.Item{speaker, mixer, cable, deck} {
		if err := repo.CreateItem(ctx, item); err != nil {
			return nil, err
		}
	}

	speakerStatuses := []models.UnitStatus{
		models.UnitAvailable, models.UnitAvailable, models.UnitAvailable,
		models.UnitAvailable, models.UnitCheckedOut, models.UnitMaintenance,
	}
	for i, status := range speakerStatuses {
		unit := &models.Unit{ItemID: speaker.ID, SerialNumber: fmt.Sprintf("SPK-%03d", i+1), Status: status}
		if err := repo.AddUnit(ctx, unit); err != nil {
			return nil, err
		}
	}
	for i := 0; i < 2; i++ {
		unit := &models.Unit{ItemID: mixer.ID, SerialNumber: fmt.Sprintf("MIX-%03d", i+1), Status: models.UnitAvailable}
		if err := repo.AddUnit(ctx, unit); err != nil {
			return nil, err
		}
	}

	if err := repo.UpsertStock(ctx, &models.StockRecord{ItemID: cable.ID, TotalQuantity: 120, OutOfServiceQuantity: 6}); err != nil {
		return nil, err
	}
	if err := repo.UpsertStock(ctx, &models.StockRecord{ItemID: deck.ID, TotalQuantity: 24, OutOfServiceQuantity: 2}); err != nil {
		return nil, err
	}

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	quote := &models.Quote{Name: "Summer festival main stage", StartDate: start, EndDate: start.AddDate(0, 0, 3)}
	if err := repo.CreateQuote(ctx, quote); err != nil {
		return nil, err
	}

	lines := []struct {
		item     *models.Item
		quantity int
	}{
		{speaker, 4},
		{mixer, 1},
		{cable, 40},
		{deck, 20},
	}
	for _, l := range lines {
		if _, err := repo.AddQuoteLine(ctx, quote.ID, l.item.ID, l.quantity); err != nil {
			return nil, err
		}
	}

	return quote, nil
}
