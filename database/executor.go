package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront_server/lib"
	"time"
)

// All executes the query and returns all matching records
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	data := []T{}
	if err := q.selectQuery(&data).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record, or nil when nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T
	if err := q.selectQuery(&data).Limit(1).Scan(ctx); err != nil {
		// Return nil for no rows instead of error
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count returns the number of matching records, ignoring limit and offset
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := q.db.NewSelect().Model((*T)(nil)).ApplyQueryBuilder(q.applyWheres).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	exists, err := q.db.NewSelect().Model((*T)(nil)).ApplyQueryBuilder(q.applyWheres).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute exists query: %w", err)
	}
	return exists, nil
}

// Insert inserts a new record; generated columns are written back into data
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	if _, err := q.db.NewInsert().Model(data).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", lib.MapPgError(err), time.Since(start))
	}

	return data, nil
}

// Update writes data to the rows matching the query, or to the row with
// data's primary key when no conditions were given. Only columns are written
// when any are named.
func (q *QueryBuilder[T]) Update(ctx context.Context, data *T, columns ...string) (int, error) {
	start := time.Now()
	query := q.db.NewUpdate().Model(data)
	if len(columns) > 0 {
		query = query.Column(columns...)
	}
	if len(q.wheres) == 0 {
		query = query.WherePK()
	} else {
		query = query.ApplyQueryBuilder(q.applyWheres)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", lib.MapPgError(err), time.Since(start))
	}

	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}

// Delete deletes records matching the query
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	res, err := q.db.NewDelete().Model((*T)(nil)).ApplyQueryBuilder(q.applyWheres).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}

// DeleteReturning deletes records matching the query and returns them
func (q *QueryBuilder[T]) DeleteReturning(ctx context.Context) ([]T, error) {
	start := time.Now()
	results := []T{}
	_, err := q.db.NewDelete().
		Model((*T)(nil)).
		ApplyQueryBuilder(q.applyWheres).
		Returning("*").
		Exec(ctx, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return results, nil
}
