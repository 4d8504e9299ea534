package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"availability-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repositoryFactories returns every implementation the contract tests run against
func repositoryFactories(t *testing.T) map[string]func() Repository {
	return map[string]func() Repository{
		"memory": func() Repository {
			return NewInMemoryRepository()
		},
		"sqlite": func() Repository {
			repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "inventory.db"))
			require.NoError(t, err)
			require.NoError(t, Migrate(repo.DB(), repo.Dialect()))
			t.Cleanup(func() { repo.Close() })
			return repo
		},
	}
}

func TestRepository_ItemsUnitsAndStock(t *testing.T) {
	for name, newRepo := range repositoryFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()

			camera := &models.Item{Name: "Camera", UnitPrice: decimal.RequireFromString("49.90"), Tracking: models.TrackingSerialized}
			require.NoError(t, repo.CreateItem(ctx, camera))
			chairs := &models.Item{Name: "Chair", UnitPrice: decimal.RequireFromString("1.25"), Tracking: models.TrackingBulk}
			require.NoError(t, repo.CreateItem(ctx, chairs))

			found, err := repo.FindItem(ctx, camera.ID)
			require.NoError(t, err)
			assert.Equal(t, "Camera", found.Name)
			assert.True(t, found.UnitPrice.Equal(decimal.RequireFromString("49.90")))
			assert.True(t, found.IsSerialized())

			unit := &models.Unit{ItemID: camera.ID, SerialNumber: "CAM-1"}
			require.NoError(t, repo.AddUnit(ctx, unit))
			require.NoError(t, repo.AddUnit(ctx, &models.Unit{ItemID: camera.ID, SerialNumber: "CAM-2", Status: models.UnitMaintenance}))
			require.NoError(t, repo.SetUnitStatus(ctx, unit.ID, models.UnitCheckedOut))

			units, err := repo.ListUnits(ctx, camera.ID)
			require.NoError(t, err)
			require.Len(t, units, 2)
			assert.Equal(t, models.UnitCheckedOut, units[0].Status)
			assert.Equal(t, models.UnitMaintenance, units[1].Status)

			assert.Equal(t, ErrUnitNotFound, repo.SetUnitStatus(ctx, uuid.New(), models.UnitAvailable))
			assert.Equal(t, ErrInvalidTracking, repo.AddUnit(ctx, &models.Unit{ItemID: chairs.ID}))

			_, err = repo.GetStock(ctx, chairs.ID)
			assert.Equal(t, ErrStockNotFound, err)

			require.NoError(t, repo.UpsertStock(ctx, &models.StockRecord{ItemID: chairs.ID, TotalQuantity: 50, OutOfServiceQuantity: 5}))
			require.NoError(t, repo.UpsertStock(ctx, &models.StockRecord{ItemID: chairs.ID, TotalQuantity: 60, OutOfServiceQuantity: 60}))
			stock, err := repo.GetStock(ctx, chairs.ID)
			require.NoError(t, err)
			assert.Equal(t, 60, stock.TotalQuantity)
			assert.Equal(t, 0, stock.AvailableQuantity())

			assert.Equal(t, ErrInvalidStock, repo.UpsertStock(ctx, &models.StockRecord{ItemID: chairs.ID, TotalQuantity: 5, OutOfServiceQuantity: 6}))
			assert.Equal(t, ErrInvalidTracking, repo.UpsertStock(ctx, &models.StockRecord{ItemID: camera.ID, TotalQuantity: 5}))

			_, err = repo.FindItem(ctx, uuid.New())
			assert.Equal(t, ErrItemNotFound, err)
		})
	}
}

func TestRepository_QuoteLinesAndReservations(t *testing.T) {
	for name, newRepo := range repositoryFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()

			tent := &models.Item{Name: "Tent", UnitPrice: decimal.RequireFromString("300"), Tracking: models.TrackingBulk}
			require.NoError(t, repo.CreateItem(ctx, tent))

			start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
			first := &models.Quote{Name: "Wedding", StartDate: start, EndDate: start.AddDate(0, 0, 2)}
			require.NoError(t, repo.CreateQuote(ctx, first))
			second := &models.Quote{Name: "Fair", StartDate: start.AddDate(0, 3, 0), EndDate: start.AddDate(0, 3, 1), Status: models.QuoteRejected}
			require.NoError(t, repo.CreateQuote(ctx, second))

			line, err := repo.AddQuoteLine(ctx, first.ID, tent.ID, 3)
			require.NoError(t, err)
			assert.True(t, line.PriceSnapshot.Equal(decimal.NewFromInt(300)))
			_, err = repo.AddQuoteLine(ctx, second.ID, tent.ID, 4)
			require.NoError(t, err)

			// reservations ignore quote status and dates
			reserved, err := repo.SumReservedQuantity(ctx, tent.ID)
			require.NoError(t, err)
			assert.Equal(t, 7, reserved)

			reserved, err = repo.SumReservedQuantity(ctx, uuid.New())
			require.NoError(t, err)
			assert.Equal(t, 0, reserved)

			lines, err := repo.ListQuoteLines(ctx, first.ID)
			require.NoError(t, err)
			require.Len(t, lines, 1)
			assert.Equal(t, "Tent", lines[0].ItemName)
			assert.Equal(t, models.TrackingBulk, lines[0].Tracking)
			assert.True(t, models.QuoteTotal(lines).Equal(decimal.NewFromInt(900)))

			quote, err := repo.FindQuote(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, models.QuoteDraft, quote.Status)
			assert.True(t, quote.StartDate.Equal(start))

			_, err = repo.AddQuoteLine(ctx, first.ID, tent.ID, 0)
			assert.Equal(t, ErrInvalidQuantity, err)
			_, err = repo.AddQuoteLine(ctx, uuid.New(), tent.ID, 1)
			assert.Equal(t, ErrQuoteNotFound, err)
			_, err = repo.AddQuoteLine(ctx, first.ID, uuid.New(), 1)
			assert.Equal(t, ErrItemNotFound, err)
		})
	}
}

func TestRepository_ListItemsOrderedByGroup(t *testing.T) {
	for name, newRepo := range repositoryFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()

			lighting := &models.Group{Name: "Lighting", Position: 1}
			audio := &models.Group{Name: "Audio", Position: 0}
			require.NoError(t, repo.CreateGroup(ctx, lighting))
			require.NoError(t, repo.CreateGroup(ctx, audio))

			for _, item := range []*models.Item{
				{Name: "Loose item", Tracking: models.TrackingBulk},
				{Name: "Par can", Tracking: models.TrackingSerialized, GroupID: &lighting.ID},
				{Name: "Mixer", Tracking: models.TrackingSerialized, GroupID: &audio.ID, Position: 1},
				{Name: "Speaker", Tracking: models.TrackingSerialized, GroupID: &audio.ID, Position: 0},
			} {
				require.NoError(t, repo.CreateItem(ctx, item))
			}

			items, err := repo.ListItems(ctx)
			require.NoError(t, err)

			names := make([]string, len(items))
			for i, item := range items {
				names[i] = item.Name
			}
			assert.Equal(t, []string{"Speaker", "Mixer", "Par can", "Loose item"}, names)
		})
	}
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	quote, err := SeedDemo(ctx, repo)
	require.NoError(t, err)

	lines, err := repo.ListQuoteLines(ctx, quote.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 4)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestRebind(t *testing.T) {
	pg := &SQLRepository{dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite := &SQLRepository{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ? ", lite.rebind("SELECT ? "))
}
