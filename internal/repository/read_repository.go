package repository

import (
	"context"

	"availability-service/internal/models"

	"github.com/google/uuid"
)

// ReadRepository defines the lookups the availability engine consumes
type ReadRepository interface {
	FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	ListUnits(ctx context.Context, itemID uuid.UUID) ([]models.Unit, error)
	GetStock(ctx context.Context, itemID uuid.UUID) (*models.StockRecord, error)
	// SumReservedQuantity sums quote line quantities for the item across all
	// quotes, whatever their status or dates.
	SumReservedQuantity(ctx context.Context, itemID uuid.UUID) (int, error)
	FindQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListQuoteLines(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLine, error)
}

// WriteRepository holds the CRUD operations used for seeding and tests
type WriteRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	CreateItem(ctx context.Context, item *models.Item) error
	AddUnit(ctx context.Context, unit *models.Unit) error
	SetUnitStatus(ctx context.Context, unitID uuid.UUID, status models.UnitStatus) error
	UpsertStock(ctx context.Context, stock *models.StockRecord) error
	CreateQuote(ctx context.Context, quote *models.Quote) error
	// AddQuoteLine captures the item's current unit price as the line's snapshot
	AddQuoteLine(ctx context.Context, quoteID, itemID uuid.UUID, quantity int) (*models.QuoteLine, error)
}

// Repository is a full read/write store
type Repository interface {
	ReadRepository
	WriteRepository
	Close() error
}

var (
	ErrItemNotFound    = &RepositoryError{Message: "item not found"}
	ErrUnitNotFound    = &RepositoryError{Message: "unit not found"}
	ErrStockNotFound   = &RepositoryError{Message: "stock record not found"}
	ErrQuoteNotFound   = &RepositoryError{Message: "quote not found"}
	ErrInvalidStock    = &RepositoryError{Message: "out of service quantity must be between 0 and total quantity"}
	ErrInvalidQuantity = &RepositoryError{Message: "quantity must be greater than zero"}
	ErrInvalidTracking = &RepositoryError{Message: "operation does not match item tracking mode"}
)

type RepositoryError struct {
	Message string
}

func (e *RepositoryError) Error() string {
	return e.Message
}

func validateStock(stock *models.StockRecord) error {
	if stock.OutOfServiceQuantity < 0 || stock.TotalQuantity < 0 ||
		stock.OutOfServiceQuantity > stock.TotalQuantity {
		return ErrInvalidStock
	}
	return nil
}
