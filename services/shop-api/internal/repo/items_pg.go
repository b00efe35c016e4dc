package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"purem-oda-shop/shared/pkg/models"
)

// ItemsPG stores the collection in one table. pos keeps slice order; id is
// not a key because ids may collide.
type ItemsPG struct{ DB *pgxpool.Pool }

func (r *ItemsPG) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `
		create table if not exists items (
			pos         integer primary key,
			id          bigint  not null,
			title       text    not null,
			description text    not null default ''
		)
	`)
	return err
}

func (r *ItemsPG) Load(ctx context.Context) ([]models.Item, error) {
	rows, err := r.DB.Query(ctx, `select id, title, description from items order by pos`)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the table contents in one transaction.
func (r *ItemsPG) Save(ctx context.Context, items []models.Item) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `delete from items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	rows := make([][]any, 0, len(items))
	for i, it := range items {
		rows = append(rows, []any{i, it.ID, it.Title, it.Description})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"items"},
		[]string{"pos", "id", "title", "description"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy items: %w", err)
	}

	return tx.Commit(ctx)
}
