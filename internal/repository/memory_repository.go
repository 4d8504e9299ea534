package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"availability-service/internal/models"

	"github.com/google/uuid"
)

// InMemoryRepository keeps everything in maps.
// Used when no database is configured and in tests.
type InMemoryRepository struct {
	mu         sync.RWMutex
	groups     map[uuid.UUID]models.Group
	items      map[uuid.UUID]models.Item
	units      map[uuid.UUID]models.Unit
	stock      map[uuid.UUID]models.StockRecord
	quotes     map[uuid.UUID]models.Quote
	quoteLines []models.QuoteLine
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		groups: make(map[uuid.UUID]models.Group),
		items:  make(map[uuid.UUID]models.Item),
		units:  make(map[uuid.UUID]models.Unit),
		stock:  make(map[uuid.UUID]models.StockRecord),
		quotes: make(map[uuid.UUID]models.Quote),
	}
}

func (r *InMemoryRepository) Close() error {
	return nil
}

func (r *InMemoryRepository) FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *InMemoryRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return r.lessItem(items[i], items[j])
	})
	return items, nil
}

// lessItem orders by group position, then item position, then name.
// Ungrouped items come last.
func (r *InMemoryRepository) lessItem(a, b models.Item) bool {
	ga, gb := r.groupPosition(a.GroupID), r.groupPosition(b.GroupID)
	if ga != gb {
		return ga < gb
	}
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	return a.Name < b.Name
}

func (r *InMemoryRepository) groupPosition(id *uuid.UUID) int {
	if id == nil {
		return math.MaxInt
	}
	if g, ok := r.groups[*id]; ok {
		return g.Position
	}
	return math.MaxInt
}

func (r *InMemoryRepository) ListUnits(ctx context.Context, itemID uuid.UUID) ([]models.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make([]models.Unit, 0)
	for _, unit := range r.units {
		if unit.ItemID == itemID {
			units = append(units, unit)
		}
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].SerialNumber < units[j].SerialNumber
	})
	return units, nil
}

func (r *InMemoryRepository) GetStock(ctx context.Context, itemID uuid.UUID) (*models.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stock, exists := r.stock[itemID]
	if !exists {
		return nil, ErrStockNotFound
	}
	return &stock, nil
}

func (r *InMemoryRepository) SumReservedQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := 0
	for _, line := range r.quoteLines {
		if line.ItemID == itemID {
			sum += line.Quantity
		}
	}
	return sum, nil
}

func (r *InMemoryRepository) FindQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, exists := r.quotes[id]
	if !exists {
		return nil, ErrQuoteNotFound
	}
	return &quote, nil
}

func (r *InMemoryRepository) ListQuoteLines(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]models.QuoteLine, 0)
	for _, line := range r.quoteLines {
		if line.QuoteID != quoteID {
			continue
		}
		// name and tracking are read through to the current item
		if item, ok := r.items[line.ItemID]; ok {
			line.ItemName = item.Name
			line.Tracking = item.Tracking
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *InMemoryRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	r.groups[group.ID] = *group
	return nil
}

func (r *InMemoryRepository) CreateItem(ctx context.Context, item *models.Item) error {
	if !item.Tracking.Valid() {
		return ErrInvalidTracking
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	r.items[item.ID] = *item
	return nil
}

func (r *InMemoryRepository) AddUnit(ctx context.Context, unit *models.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[unit.ItemID]
	if !exists {
		return ErrItemNotFound
	}
	if !item.IsSerialized() {
		return ErrInvalidTracking
	}
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	if unit.Status == "" {
		unit.Status = models.UnitAvailable
	}
	r.units[unit.ID] = *unit
	return nil
}

func (r *InMemoryRepository) SetUnitStatus(ctx context.Context, unitID uuid.UUID, status models.UnitStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	unit, exists := r.units[unitID]
	if !exists {
		return ErrUnitNotFound
	}
	unit.Status = status
	r.units[unitID] = unit
	return nil
}

func (r *InMemoryRepository) UpsertStock(ctx context.Context, stock *models.StockRecord) error {
	if err := validateStock(stock); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[stock.ItemID]
	if !exists {
		return ErrItemNotFound
	}
	if item.IsSerialized() {
		return ErrInvalidTracking
	}
	stock.UpdatedAt = time.Now().UTC()
	r.stock[stock.ItemID] = *stock
	return nil
}

func (r *InMemoryRepository) CreateQuote(ctx context.Context, quote *models.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.Status == "" {
		quote.Status = models.QuoteDraft
	}
	quote.CreatedAt = time.Now().UTC()
	r.quotes[quote.ID] = *quote
	return nil
}

func (r *InMemoryRepository) AddQuoteLine(ctx context.Context, quoteID, itemID uuid.UUID, quantity int) (*models.QuoteLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quotes[quoteID]; !exists {
		return nil, ErrQuoteNotFound
	}
	item, exists := r.items[itemID]
	if !exists {
		return nil, ErrItemNotFound
	}

	line := models.QuoteLine{
		ID:            uuid.New(),
		QuoteID:       quoteID,
		ItemID:        itemID,
		ItemName:      item.Name,
		Tracking:      item.Tracking,
		Quantity:      quantity,
		PriceSnapshot: item.UnitPrice,
	}
	r.quoteLines = append(r.quoteLines, line)
	return &line, nil
}
