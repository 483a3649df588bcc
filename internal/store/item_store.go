package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vbonduro/tasklist/internal/domain"
)

// ErrNotFound is returned by writer operations that matched no row.
var ErrNotFound = errors.New("item not found")

// itemRecord mirrors one row of the items table.
type itemRecord struct {
	ID          int64
	Content     string
	DateCreated time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

const itemColumns = `id, content, date_created`

func scanItemRecord(row rowScanner) (itemRecord, error) {
	var rec itemRecord
	err := row.Scan(&rec.ID, &rec.Content, &rec.DateCreated)
	return rec, err
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:          r.ID,
		Content:     r.Content,
		DateCreated: r.DateCreated,
	}
}

// ItemWriter is the set of mutations available inside a transaction.
type ItemWriter interface {
	Create(ctx context.Context, content string) (int64, error)
	Update(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type ItemStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db, now: time.Now}
}

// WithClock overrides the time source used for date_created.
func (s *ItemStore) WithClock(now func() time.Time) *ItemStore {
	s.now = now
	return s
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	rec, err := scanItemRecord(s.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return rec.toDomain(), nil
}

// List returns items oldest first. A non-empty search keeps only items whose
// content contains it, ignoring ASCII case (other letters match exactly);
// % and _ match literally.
func (s *ItemStore) List(ctx context.Context, search string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if search != "" {
		// Both sides go through SQLite LOWER so they fold identically.
		query += ` WHERE LOWER(content) LIKE LOWER(?) ESCAPE '\'`
		args = append(args, "%"+escapeLike(search)+"%")
	}
	query += ` ORDER BY date_created ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		rec, err := scanItemRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, rec.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// WithTx runs fn inside a transaction. The transaction commits if fn returns
// nil and is rolled back otherwise, or when the commit itself fails.
func (s *ItemStore) WithTx(ctx context.Context, fn func(ItemWriter) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&itemTx{tx: tx, now: s.now}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w (also failed to roll back: %v)", err, rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		// Commit failures leave the tx done; Rollback only reports ErrTxDone.
		_ = tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type itemTx struct {
	tx  *sql.Tx
	now func() time.Time
}

func (t *itemTx) Create(ctx context.Context, content string) (int64, error) {
	result, err := t.tx.ExecContext(ctx, `
		INSERT INTO items (content, date_created) VALUES (?, ?)
	`, content, t.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

func (t *itemTx) Update(ctx context.Context, id int64, content string) error {
	result, err := t.tx.ExecContext(ctx, `
		UPDATE items SET content = ? WHERE id = ?
	`, content, id)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireAffected(result)
}

func (t *itemTx) Delete(ctx context.Context, id int64) error {
	result, err := t.tx.ExecContext(ctx, `
		DELETE FROM items WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
