// Package postgres implements the repository interfaces against PostgreSQL.
// User-submitted bookstore entries are the only persisted entity; records from
// the public directory are never written here.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookmap/internal/domain/entity"
	"bookmap/internal/repository"
)

type BookstoreRepo struct{ db *sql.DB }

func NewBookstoreRepo(db *sql.DB) repository.BookstoreRepository {
	return &BookstoreRepo{db: db}
}

const bookstoreColumns = `id, name, address, latitude, longitude, category,
phone, open_time, close_time, closed_days, description, created_by, created_at`

// scanBookstore maps one row to an entity. Nullable columns come back as NULL
// and become the empty string, which the domain treats as absent.
func scanBookstore(rows *sql.Rows) (*entity.Bookstore, error) {
	var (
		b         entity.Bookstore
		rawID     string
		phone     sql.NullString
		openTime  sql.NullString
		closeTime sql.NullString
		closed    sql.NullString
		desc      sql.NullString
		createdAt sql.NullTime
	)
	if err := rows.Scan(
		&rawID, &b.Name, &b.Address, &b.Latitude, &b.Longitude, &b.Category,
		&phone, &openTime, &closeTime, &closed, &desc, &b.CreatedBy, &createdAt,
	); err != nil {
		return nil, err
	}
	b.ID = entity.UserIDPrefix + rawID
	b.Phone = phone.String
	b.OpenTime = openTime.String
	b.CloseTime = closeTime.String
	b.ClosedDays = closed.String
	b.Description = desc.String
	b.UserAdded = true
	if createdAt.Valid {
		t := createdAt.Time
		b.CreatedAt = &t
	}
	return &b, nil
}

func (repo *BookstoreRepo) Create(ctx context.Context, b *entity.Bookstore) (string, error) {
	const query = `
INSERT INTO user_bookstores
(id, name, address, latitude, longitude, category,
 phone, open_time, close_time, closed_days, description, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	rawID := uuid.NewString()
	createdAt := b.CreatedAt
	if createdAt == nil {
		now := time.Now()
		createdAt = &now
	}
	_, err := repo.db.ExecContext(ctx, query,
		rawID, b.Name, b.Address, b.Latitude, b.Longitude, b.Category,
		nullable(b.Phone), nullable(b.OpenTime), nullable(b.CloseTime),
		nullable(b.ClosedDays), nullable(b.Description), b.CreatedBy, *createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return entity.UserIDPrefix + rawID, nil
}

func (repo *BookstoreRepo) ListAll(ctx context.Context) ([]*entity.Bookstore, error) {
	query := `
SELECT ` + bookstoreColumns + `
FROM user_bookstores
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stores := make([]*entity.Bookstore, 0, 50)
	for rows.Next() {
		b, err := scanBookstore(rows)
		if err != nil {
			return nil, fmt.Errorf("ListAll: Scan: %w", err)
		}
		stores = append(stores, b)
	}
	return stores, rows.Err()
}

func (repo *BookstoreRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Bookstore, error) {
	query := `
SELECT ` + bookstoreColumns + `
FROM user_bookstores
WHERE created_by = $1`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stores := make([]*entity.Bookstore, 0, 20)
	for rows.Next() {
		b, err := scanBookstore(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByOwner: Scan: %w", err)
		}
		stores = append(stores, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The equality filter and the ordering cannot be combined on every backing
	// store, so the descending creation order is reapplied here. Entries without
	// a timestamp keep their relative position.
	sort.SliceStable(stores, func(i, j int) bool {
		if stores[i].CreatedAt == nil || stores[j].CreatedAt == nil {
			return false
		}
		return stores[i].CreatedAt.After(*stores[j].CreatedAt)
	})
	return stores, nil
}

func (repo *BookstoreRepo) Update(ctx context.Context, id string, changes repository.BookstoreChanges) error {
	set := make([]string, 0, 10)
	args := make([]any, 0, 11)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if changes.Name != nil {
		add("name", *changes.Name)
	}
	if changes.Address != nil {
		add("address", *changes.Address)
	}
	if changes.Latitude != nil {
		add("latitude", *changes.Latitude)
	}
	if changes.Longitude != nil {
		add("longitude", *changes.Longitude)
	}
	if changes.Category != nil {
		add("category", *changes.Category)
	}
	if changes.Phone != nil {
		add("phone", *changes.Phone)
	}
	if changes.OpenTime != nil {
		add("open_time", *changes.OpenTime)
	}
	if changes.CloseTime != nil {
		add("close_time", *changes.CloseTime)
	}
	if changes.ClosedDays != nil {
		add("closed_days", *changes.ClosedDays)
	}
	if changes.Description != nil {
		add("description", *changes.Description)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, stripUserPrefix(id))
	query := fmt.Sprintf(`UPDATE user_bookstores SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *BookstoreRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM user_bookstores WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, stripUserPrefix(id)); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	// Deleting an ID that no longer exists is a no-op.
	return nil
}

// nullable converts the domain's "empty means absent" convention into a SQL
// NULL so the store never holds empty placeholders.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stripUserPrefix(id string) string {
	return strings.TrimPrefix(id, entity.UserIDPrefix)
}
