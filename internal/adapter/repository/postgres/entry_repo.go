package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/infrastructure/postgres/generated"
	"github.com/ysonawan/duebook/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a ledger entry inside the given transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:               entry.ID,
		CustomerID:       entry.CustomerID,
		ShopID:           entry.ShopID,
		CreatedByUserID:  entry.CreatedByUserID,
		EntryType:        string(entry.Type),
		Amount:           decimalToNumeric(entry.Amount),
		BalanceAfter:     decimalToNumeric(entry.BalanceAfter),
		ReferenceEntryID: stringPtrToPgText(entry.ReferenceEntryID),
		Notes:            stringToPgText(entry.Notes),
		EntryDate:        timeToPgTimestamptz(entry.EntryDate),
		CreatedAt:        timeToPgTimestamptz(entry.CreatedAt),
	})

	return mapCreateEntryError(err)
}

// oneReversalIndex is the unique partial index allowing at most one REVERSAL
// per original entry. The in-transaction HasReversal check normally catches a
// duplicate first; the index is the backstop under concurrency.
const oneReversalIndex = "idx_ledger_entries_one_reversal"

func mapCreateEntryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == oneReversalIndex {
		return domain.ErrAlreadyReversed
	}

	return err
}

// GetByID retrieves a ledger entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// HasReversal reports whether a REVERSAL referencing id exists. It runs inside
// tx so the check stays atomic with the reversal insert.
func (r *EntryRepository) HasReversal(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.HasReversalForEntry(ctx, stringToPgText(id))
}

// List returns one page of filtered entries plus the total match count,
// ordered newest entry date first.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter, page, size int) ([]*domain.Entry, int64, error) {
	where, args := buildEntryFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM ledger_entries` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := entrySelectColumns + where +
		fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, size, page*size)

	entries, err := r.queryEntries(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListAll returns every filtered entry, oldest first. Aggregations need the
// whole effective set, not a page.
func (r *EntryRepository) ListAll(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	where, args := buildEntryFilter(filter)
	query := entrySelectColumns + where + ` ORDER BY entry_date ASC, created_at ASC`

	return r.queryEntries(ctx, query, args)
}

const entrySelectColumns = `SELECT id, customer_id, shop_id, created_by_user_id, entry_type, amount, balance_after, reference_entry_id, notes, entry_date, created_at FROM ledger_entries`

func buildEntryFilter(filter usecase.EntryFilter) (string, []any) {
	var conds []string
	var args []any

	if !filter.AllShops() {
		args = append(args, filter.ShopID)
		conds = append(conds, fmt.Sprintf("shop_id = $%d", len(args)))
	}

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	if filter.EntryType != "" {
		args = append(args, string(filter.EntryType))
		conds = append(conds, fmt.Sprintf("entry_type = $%d", len(args)))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("entry_date >= $%d", len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("entry_date <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *EntryRepository) queryEntries(ctx context.Context, query string, args []any) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var row generated.LedgerEntry

		err := rows.Scan(
			&row.ID,
			&row.CustomerID,
			&row.ShopID,
			&row.CreatedByUserID,
			&row.EntryType,
			&row.Amount,
			&row.BalanceAfter,
			&row.ReferenceEntryID,
			&row.Notes,
			&row.EntryDate,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entries = append(entries, rowToEntry(row))
	}

	return entries, rows.Err()
}

func rowToEntry(row generated.LedgerEntry) *domain.Entry {
	return &domain.Entry{
		ID:               row.ID,
		CustomerID:       row.CustomerID,
		ShopID:           row.ShopID,
		CreatedByUserID:  row.CreatedByUserID,
		Type:             domain.EntryType(row.EntryType),
		Amount:           numericToDecimal(row.Amount),
		BalanceAfter:     numericToDecimal(row.BalanceAfter),
		ReferenceEntryID: pgTextToStringPtr(row.ReferenceEntryID),
		Notes:            row.Notes.String,
		EntryDate:        row.EntryDate.Time,
		CreatedAt:        row.CreatedAt.Time,
	}
}
