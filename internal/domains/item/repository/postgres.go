package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-backend/internal/domains/item/model"
	pkgdb "inventory-backend/pkg/database"
)

type itemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) Repository {
	return &itemRepository{pool: pool}
}

const itemColumns = "id, name, description, photo_key, created_at"

func scanItem(row pgx.Row) (*model.Item, error) {
	item := &model.Item{}
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.PhotoKey,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) Create(ctx context.Context, name, description string, photoKey *string) (*model.Item, error) {
	query := `
        INSERT INTO items (name, description, photo_key)
        VALUES ($1, $2, $3)
        RETURNING ` + itemColumns

	item, err := scanItem(r.pool.QueryRow(ctx, query, name, description, photoKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	return items, nil
}

// UpdateFields builds the SET clause dynamically so omitted fields are
// never touched. A call with no fields degenerates to a plain read.
func (r *itemRepository) UpdateFields(ctx context.Context, id int64, name, description *string) (*model.Item, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *name)
		argPos++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *description)
		argPos++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(
		"UPDATE items SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argPos, itemColumns,
	)
	args = append(args, id)

	item, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// SetPhotoKey swaps the photo reference in a single UPDATE and returns
// the previous key. The row-level swap is what keeps concurrent photo
// replacements from corrupting the record: the last swap wins, and the
// loser's upload becomes a sweepable orphan.
func (r *itemRepository) SetPhotoKey(ctx context.Context, id int64, key *string) (*string, error) {
	query := `
        UPDATE items i
        SET photo_key = $1
        FROM items prev
        WHERE i.id = prev.id AND i.id = $2
        RETURNING prev.photo_key`

	var prev *string
	err := r.pool.QueryRow(ctx, query, key, id).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set photo key: %w", err)
	}

	return prev, nil
}

// Delete removes the row inside a transaction and hands back the photo
// key it referenced, so the service can reclaim the object afterwards.
func (r *itemRepository) Delete(ctx context.Context, id int64) (*string, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*string, error) {
		var prev *string
		err := tx.QueryRow(ctx, `DELETE FROM items WHERE id = $1 RETURNING photo_key`, id).Scan(&prev)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to delete item: %w", err)
		}
		return prev, nil
	})
}

func (r *itemRepository) LivePhotoKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT photo_key FROM items WHERE photo_key IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query photo keys: %w", err)
	}
	defer rows.Close()

	keys := map[string]struct{}{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan photo key: %w", err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read photo keys: %w", err)
	}

	return keys, nil
}
