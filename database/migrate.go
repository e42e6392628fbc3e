package database

import (
	"context"
	"fmt"
	"storefront_server/structs/tables"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the catalog tables and indexes when they do not exist yet.
// It bootstraps development databases and is not a migration tool.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	return Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []any{(*tables.Category)(nil), (*tables.Brand)(nil), (*tables.Banner)(nil)} {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("create table for %T: %w", model, err)
			}
		}

		_, err := tx.NewCreateTable().
			Model((*tables.Product)(nil)).
			IfNotExists().
			ForeignKey(`("category_id") REFERENCES "categories" ("id") ON DELETE CASCADE`).
			ForeignKey(`("brand_id") REFERENCES "brands" ("id") ON DELETE CASCADE`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create table for products: %w", err)
		}

		indexes := []struct {
			model  any
			name   string
			column string
		}{
			{(*tables.Product)(nil), "products_category_created_idx", "category_id, created_at DESC"},
			{(*tables.Banner)(nil), "banners_active_sort_idx", "is_active, sort_order"},
		}
		for _, idx := range indexes {
			_, err := tx.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				IfNotExists().
				ColumnExpr(idx.column).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("create index %s: %w", idx.name, err)
			}
		}
		return nil
	})
}
