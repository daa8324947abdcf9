// Package entries provides the PostgreSQL-backed persistence gateway for
// receipt entries.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/dmitrijs2005/expensekeeper/internal/common"
	"github.com/dmitrijs2005/expensekeeper/internal/dbx"
	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

const entryColumns = `id, created_at, store_name, store_address, store_phone, date_of_purchase,
	subtotal, gst, hst, total, total_discounts, payment_method, line_items, file_name, approved`

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID returns the entry with the given id or common.ErrNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select entry: %w", common.ErrPersistence, err)
	}
	return entry, nil
}

// FindAll returns entries matching every supplied filter, newest purchase
// first with ties broken by descending id.
func (r *PostgresRepository) FindAll(ctx context.Context, filter models.EntryFilter) ([]*models.Entry, error) {
	where, args := buildWhere(filter)
	query := `SELECT ` + entryColumns + ` FROM entries` + where + ` ORDER BY date_of_purchase DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: select entries: %w", common.ErrPersistence, err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan entry: %w", common.ErrPersistence, err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %w", common.ErrPersistence, err)
	}
	return result, nil
}

// Insert stores a new entry and returns it with the id and created_at
// assigned by the database.
func (r *PostgresRepository) Insert(ctx context.Context, fields *models.EntryFields) (*models.Entry, error) {
	query := `
		INSERT INTO entries (store_name, store_address, store_phone, date_of_purchase,
			subtotal, gst, hst, total, total_discounts, payment_method, line_items, file_name, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query,
		fields.StoreName, fields.StoreAddress, fields.StorePhone, dateArg(fields.DateOfPurchase),
		fields.Subtotal, fields.GST, fields.HST, fields.Total, fields.TotalDiscounts,
		fields.PaymentMethod, fields.LineItems, fields.FileName, fields.Approved,
	))
	if err != nil {
		return nil, fmt.Errorf("%w: insert entry: %w", common.ErrPersistence, err)
	}
	return entry, nil
}

// Update overwrites every editable column of entry id with fields and
// returns the stored row. file_name is left untouched. Returns
// common.ErrNotFound when no such entry exists.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields *models.EntryFields) (*models.Entry, error) {
	query := `
		UPDATE entries
		SET store_name = $1, store_address = $2, store_phone = $3,
			date_of_purchase = $4, subtotal = $5, gst = $6, hst = $7,
			total = $8, total_discounts = $9, payment_method = $10,
			line_items = $11, approved = $12
		WHERE id = $13
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query,
		fields.StoreName, fields.StoreAddress, fields.StorePhone, dateArg(fields.DateOfPurchase),
		fields.Subtotal, fields.GST, fields.HST, fields.Total, fields.TotalDiscounts,
		fields.PaymentMethod, fields.LineItems, fields.Approved, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: update entry: %w", common.ErrPersistence, err)
	}
	return entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one row. Legacy rows may hold NULL in approved or the
// amount columns; those read back as false and zero.
func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		e        models.Entry
		date     sql.NullTime
		amounts  [5]decimal.NullDecimal
		approved sql.NullBool
	)

	err := row.Scan(
		&e.ID, &e.CreatedAt, &e.StoreName, &e.StoreAddress, &e.StorePhone, &date,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4],
		&e.PaymentMethod, &e.LineItems, &e.FileName, &approved,
	)
	if err != nil {
		return nil, err
	}

	e.Subtotal = amountOrZero(amounts[0])
	e.GST = amountOrZero(amounts[1])
	e.HST = amountOrZero(amounts[2])
	e.Total = amountOrZero(amounts[3])
	e.TotalDiscounts = amountOrZero(amounts[4])
	e.Approved = approved.Valid && approved.Bool

	if date.Valid {
		d := civil.DateOf(date.Time)
		e.DateOfPurchase = &d
	}
	return &e, nil
}

func amountOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// dateArg renders a nullable calendar date as a query argument.
func dateArg(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
