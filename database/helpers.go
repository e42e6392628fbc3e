package database

import (
	"context"
	"fmt"
	"storefront_server/structs"
	"time"

	"github.com/uptrace/bun"
)

// Transaction executes fn within a database transaction. Returning an error rolls back.
func Transaction(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, nil, fn)
}

// Paginate applies a table query's page to q and returns the rows with metadata.
// Unpaged table queries return every row as a single page.
func Paginate[T any](ctx context.Context, q *QueryBuilder[T], tq structs.TableQuery) (*structs.Page[T], error) {
	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if tq.Unpaged {
		data, err := q.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get rows: %w", err)
		}
		return &structs.Page[T]{
			Data:       data,
			Pagination: structs.Pagination{Page: 1, PageSize: len(data), Total: total},
		}, nil
	}

	offset := tq.Paged()
	data, err := q.Limit(tq.PageSize).Offset(offset).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}

	return &structs.Page[T]{
		Data: data,
		Pagination: structs.Pagination{
			Page:     tq.Page,
			PageSize: tq.PageSize,
			Total:    total,
		},
	}, nil
}

// Upsert performs an INSERT ... ON CONFLICT DO UPDATE on conflictColumn,
// overwriting updateColumns. The stored row's id is written back into data.
func Upsert[T any](ctx context.Context, db bun.IDB, data *T, conflictColumn string, updateColumns ...string) (*T, error) {
	start := time.Now()

	query := db.NewInsert().Model(data)
	if len(updateColumns) == 0 {
		// DO NOTHING would return no row, so touch the conflict column instead
		updateColumns = []string{conflictColumn}
	}
	query = query.On("CONFLICT (?) DO UPDATE", bun.Ident(conflictColumn))
	for _, col := range updateColumns {
		query = query.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
	}

	if _, err := query.Returning("*").Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute upsert: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}
