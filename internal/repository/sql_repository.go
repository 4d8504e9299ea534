package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"availability-service/internal/models"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// SQLRepository reads and writes inventory and quotes through database/sql.
// Queries are written with '?' placeholders and rebound for Postgres.
type SQLRepository struct {
	db      *sql.DB
	dialect string
}

// NewSQLiteRepository opens (or creates) a SQLite database file
func NewSQLiteRepository(dbPath string) (*SQLRepository, error) {
	// WAL mode for better read concurrency while quote lines are written
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLRepository{db: db, dialect: DialectSQLite}, nil
}

// NewPostgresRepository connects to Postgres through the pgx stdlib driver
func NewPostgresRepository(dsn string) (*SQLRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLRepository{db: db, dialect: DialectPostgres}, nil
}

// DB exposes the handle for migrations
func (r *SQLRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLRepository) Dialect() string {
	return r.dialect
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// rebind turns '?' placeholders into $1..$n for Postgres
func (r *SQLRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// timeArg encodes a timestamp for the current dialect.
// SQLite stores RFC3339 text, Postgres takes native timestamps.
func (r *SQLRepository) timeArg(t time.Time) interface{} {
	if r.dialect == DialectPostgres {
		return t
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

const itemColumns = `id, name, unit_price, tracking, group_id, position, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var price, tracking, createdAtStr, updatedAtStr string
	var groupID uuid.NullUUID

	if err := row.Scan(
		&item.ID,
		&item.Name,
		&price,
		&tracking,
		&groupID,
		&item.Position,
		&createdAtStr,
		&updatedAtStr,
	); err != nil {
		return nil, err
	}

	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", price, err)
	}
	item.UnitPrice = unitPrice
	item.Tracking = models.TrackingMode(tracking)
	if groupID.Valid {
		id := groupID.UUID
		item.GroupID = &id
	}
	item.CreatedAt = parseTime(createdAtStr)
	item.UpdatedAt = parseTime(updatedAtStr)

	return &item, nil
}

// FindItem finds an item by ID
func (r *SQLRepository) FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := r.rebind(`SELECT ` + itemColumns + ` FROM items WHERE id = ?`)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return item, nil
}

// ListItems lists items ordered by group position, item position and name
func (r *SQLRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT i.id, i.name, i.unit_price, i.tracking, i.group_id, i.position, i.created_at, i.updated_at
		FROM items i
		LEFT JOIN item_groups g ON g.id = i.group_id
		ORDER BY CASE WHEN g.id IS NULL THEN 1 ELSE 0 END, g.position, i.position, i.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// ListUnits lists the serialized units of an item
func (r *SQLRepository) ListUnits(ctx context.Context, itemID uuid.UUID) ([]models.Unit, error) {
	query := r.rebind(`
		SELECT id, item_id, serial_number, status
		FROM units
		WHERE item_id = ?
		ORDER BY serial_number
	`)

	rows, err := r.db.QueryContext(ctx, query, itemID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	units := make([]models.Unit, 0)
	for rows.Next() {
		var unit models.Unit
		var status string
		if err := rows.Scan(&unit.ID, &unit.ItemID, &unit.SerialNumber, &status); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		unit.Status = models.UnitStatus(status)
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating units: %w", err)
	}

	return units, nil
}

// GetStock gets the stock record of a bulk item
func (r *SQLRepository) GetStock(ctx context.Context, itemID uuid.UUID) (*models.StockRecord, error) {
	query := r.rebind(`
		SELECT item_id, total_quantity, out_of_service_quantity, updated_at
		FROM stock_records
		WHERE item_id = ?
	`)

	var stock models.StockRecord
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx, query, itemID.String()).Scan(
		&stock.ItemID,
		&stock.TotalQuantity,
		&stock.OutOfServiceQuantity,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to get stock record: %w", err)
	}
	stock.UpdatedAt = parseTime(updatedAtStr)

	return &stock, nil
}

// SumReservedQuantity sums quote line quantities for an item over all quotes
func (r *SQLRepository) SumReservedQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	query := r.rebind(`SELECT COALESCE(SUM(quantity), 0) FROM quote_lines WHERE item_id = ?`)

	var sum int64
	if err := r.db.QueryRowContext(ctx, query, itemID.String()).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum reserved quantity: %w", err)
	}
	return int(sum), nil
}

// FindQuote finds a quote by ID
func (r *SQLRepository) FindQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	query := r.rebind(`
		SELECT id, name, start_date, end_date, status, created_at
		FROM quotes
		WHERE id = ?
	`)

	var quote models.Quote
	var status, startStr, endStr, createdAtStr string

	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&quote.ID,
		&quote.Name,
		&startStr,
		&endStr,
		&status,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}
	quote.Status = models.QuoteStatus(status)
	quote.StartDate = parseTime(startStr)
	quote.EndDate = parseTime(endStr)
	quote.CreatedAt = parseTime(createdAtStr)

	return &quote, nil
}

// ListQuoteLines lists the lines of a quote joined with the current item name and tracking mode
func (r *SQLRepository) ListQuoteLines(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLine, error) {
	query := r.rebind(`
		SELECT l.id, l.quote_id, l.item_id, i.name, i.tracking, l.quantity, l.price_snapshot
		FROM quote_lines l
		JOIN items i ON i.id = l.item_id
		WHERE l.quote_id = ?
		ORDER BY l.created_at, l.id
	`)

	rows, err := r.db.QueryContext(ctx, query, quoteID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list quote lines: %w", err)
	}
	defer rows.Close()

	lines := make([]models.QuoteLine, 0)
	for rows.Next() {
		var line models.QuoteLine
		var tracking, price string
		if err := rows.Scan(&line.ID, &line.QuoteID, &line.ItemID, &line.ItemName, &tracking, &line.Quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan quote line: %w", err)
		}
		snapshot, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid price snapshot %q: %w", price, err)
		}
		line.Tracking = models.TrackingMode(tracking)
		line.PriceSnapshot = snapshot
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote lines: %w", err)
	}

	return lines, nil
}

// CreateGroup inserts an item group
func (r *SQLRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	query := r.rebind(`INSERT INTO item_groups (id, name, position) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, group.ID.String(), group.Name, group.Position); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// CreateItem inserts an item
func (r *SQLRepository) CreateItem(ctx context.Context, item *models.Item) error {
	if !item.Tracking.Valid() {
		return ErrInvalidTracking
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now

	var groupID interface{}
	if item.GroupID != nil {
		groupID = item.GroupID.String()
	}

	query := r.rebind(`
		INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		item.ID.String(),
		item.Name,
		item.UnitPrice.String(),
		string(item.Tracking),
		groupID,
		item.Position,
		r.timeArg(item.CreatedAt),
		r.timeArg(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// AddUnit inserts a unit for a serialized item
func (r *SQLRepository) AddUnit(ctx context.Context, unit *models.Unit) error {
	item, err := r.FindItem(ctx, unit.ItemID)
	if err != nil {
		return err
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

	query := r.rebind(`INSERT INTO units (id, item_id, serial_number, status) VALUES (?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, unit.ID.String(), unit.ItemID.String(), unit.SerialNumber, string(unit.Status)); err != nil {
		return fmt.Errorf("failed to add unit: %w", err)
	}
	return nil
}

// SetUnitStatus changes the status of one unit
func (r *SQLRepository) SetUnitStatus(ctx context.Context, unitID uuid.UUID, status models.UnitStatus) error {
	query := r.rebind(`UPDATE units SET status = ? WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, string(status), unitID.String())
	if err != nil {
		return fmt.Errorf("failed to set unit status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set unit status: %w", err)
	}
	if affected == 0 {
		return ErrUnitNotFound
	}
	return nil
}

// UpsertStock creates or replaces the stock record of a bulk item
func (r *SQLRepository) UpsertStock(ctx context.Context, stock *models.StockRecord) error {
	if err := validateStock(stock); err != nil {
		return err
	}
	item, err := r.FindItem(ctx, stock.ItemID)
	if err != nil {
		return err
	}
	if item.IsSerialized() {
		return ErrInvalidTracking
	}
	stock.UpdatedAt = time.Now().UTC()

	query := r.rebind(`
		INSERT INTO stock_records (item_id, total_quantity, out_of_service_quantity, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (item_id) DO UPDATE SET
			total_quantity = excluded.total_quantity,
			out_of_service_quantity = excluded.out_of_service_quantity,
			updated_at = excluded.updated_at
	`)
	_, err = r.db.ExecContext(ctx, query,
		stock.ItemID.String(),
		stock.TotalQuantity,
		stock.OutOfServiceQuantity,
		r.timeArg(stock.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert stock record: %w", err)
	}
	return nil
}

// CreateQuote inserts a quote
func (r *SQLRepository) CreateQuote(ctx context.Context, quote *models.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.Status == "" {
		quote.Status = models.QuoteDraft
	}
	quote.CreatedAt = time.Now().UTC()

	query := r.rebind(`
		INSERT INTO quotes (id, name, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		quote.ID.String(),
		quote.Name,
		r.timeArg(quote.StartDate),
		r.timeArg(quote.EndDate),
		string(quote.Status),
		r.timeArg(quote.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// AddQuoteLine adds a line to a quote, snapshotting the item's unit price
func (r *SQLRepository) AddQuoteLine(ctx context.Context, quoteID, itemID uuid.UUID, quantity int) (*models.QuoteLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := r.FindQuote(ctx, quoteID); err != nil {
		return nil, err
	}
	item, err := r.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	line := &models.QuoteLine{
		ID:            uuid.New(),
		QuoteID:       quoteID,
		ItemID:        itemID,
		ItemName:      item.Name,
		Tracking:      item.Tracking,
		Quantity:      quantity,
		PriceSnapshot: item.UnitPrice,
	}

	query := r.rebind(`
		INSERT INTO quote_lines (id, quote_id, item_id, quantity, price_snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err = r.db.ExecContext(ctx, query,
		line.ID.String(),
		quoteID.String(),
		itemID.String(),
		quantity,
		line.PriceSnapshot.String(),
		r.timeArg(time.Now().UTC()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add quote line: %w", err)
	}
	return line, nil
}
