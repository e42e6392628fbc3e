package database

import (
	"context"
	"fmt"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"time"

	"github.com/uptrace/bun"
)

// CategoryRepository persists categories.
type CategoryRepository struct {
	db bun.IDB
}

func NewCategoryRepository(db bun.IDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Category], error) {
	q := Query[tables.Category](r.db)
	if tq.Search != "" {
		q = q.WhereContains("name", tq.Search)
	}
	q = q.OrderBy(tq.SortBy, ParseDirection(tq.SortDirection)).OrderBy("id", ASC)

	return Paginate(ctx, q, tq)
}

func (r *CategoryRepository) Find(ctx context.Context, id int64) (*tables.Category, error) {
	c, err := Query[tables.Category](r.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, lib.ErrNotFound
	}
	return c, nil
}

// NameOrSlugTaken reports whether another category already uses name or slug.
func (r *CategoryRepository) NameOrSlugTaken(ctx context.Context, name, slug string, exceptID int64) (bool, error) {
	q := Query[tables.Category](r.db).WhereRaw("(?TableAlias.name = ? OR ?TableAlias.slug = ?)", name, slug)
	if exceptID > 0 {
		q = q.WhereNot("id", exceptID)
	}
	return q.Exists(ctx)
}

// Public returns the storefront projection of every category, newest first.
func (r *CategoryRepository) Public(ctx context.Context) ([]structs.PublicCategory, error) {
	out := []structs.PublicCategory{}
	err := r.db.NewSelect().
		Model((*tables.Category)(nil)).
		Column("id", "name", "slug", "image", "color").
		OrderExpr("?TableAlias.created_at DESC, ?TableAlias.id DESC").
		Scan(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list public categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *tables.Category) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := Query[tables.Category](r.db).Insert(ctx, c)
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, c *tables.Category) error {
	c.UpdatedAt = time.Now()
	n, err := Query[tables.Category](r.db).Update(ctx, c, "name", "slug", "color", "description", "image", "updated_at")
	if err != nil {
		return err
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	n, err := Query[tables.Category](r.db).Where("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// MissingIDs returns the ids, in input order, that match no category.
func (r *CategoryRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := []int64{}
	err := r.db.NewSelect().
		Model((*tables.Category)(nil)).
		Column("id").
		Where("?TableAlias.? IN (?)", bun.Ident("id"), bun.In(ids)).
		Scan(ctx, &found)
	if err != nil {
		return nil, fmt.Errorf("failed to look up categories: %w", err)
	}
	return missing(ids, found), nil
}

// DeleteMany removes all ids in one statement and returns the removed rows.
func (r *CategoryRepository) DeleteMany(ctx context.Context, ids []int64) ([]tables.Category, error) {
	return Query[tables.Category](r.db).WhereIn("id", ids).DeleteReturning(ctx)
}

func missing(want, found []int64) []int64 {
	seen := make(map[int64]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
