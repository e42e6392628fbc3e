package database

import (
	"context"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"time"

	"github.com/uptrace/bun"
)

// ProductRepository persists products. Reads load the category and brand relations.
type ProductRepository struct {
	db bun.IDB
}

func NewProductRepository(db bun.IDB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Product], error) {
	q := Query[tables.Product](r.db).With("Category").With("Brand")
	if tq.Search != "" {
		q = q.WhereContains("name", tq.Search)
	}
	q = q.OrderBy(tq.SortBy, ParseDirection(tq.SortDirection)).OrderBy("id", ASC)

	return Paginate(ctx, q, tq)
}

func (r *ProductRepository) Find(ctx context.Context, id int64) (*tables.Product, error) {
	return r.first(ctx, Query[tables.Product](r.db).Where("id", id))
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*tables.Product, error) {
	return r.first(ctx, Query[tables.Product](r.db).Where("slug", slug))
}

func (r *ProductRepository) first(ctx context.Context, q *QueryBuilder[tables.Product]) (*tables.Product, error) {
	p, err := q.With("Category").With("Brand").First(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, lib.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepository) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	q := Query[tables.Product](r.db).Where("slug", slug)
	if exceptID > 0 {
		q = q.WhereNot("id", exceptID)
	}
	return q.Exists(ctx)
}

// Latest returns the newest n products with their category and brand.
func (r *ProductRepository) Latest(ctx context.Context, n int) ([]tables.Product, error) {
	return Query[tables.Product](r.db).
		With("Category").
		With("Brand").
		OrderBy("created_at", DESC).
		OrderBy("id", DESC).
		Limit(n).
		All(ctx)
}

// Similar returns up to n other products of p's category, newest first.
func (r *ProductRepository) Similar(ctx context.Context, p *tables.Product, n int) ([]tables.Product, error) {
	return Query[tables.Product](r.db).
		With("Category").
		With("Brand").
		Where("category_id", p.CategoryID).
		WhereNot("id", p.ID).
		OrderBy("created_at", DESC).
		OrderBy("id", DESC).
		Limit(n).
		All(ctx)
}

func (r *ProductRepository) Create(ctx context.Context, p *tables.Product) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := Query[tables.Product](r.db).Insert(ctx, p)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	n, err := Query[tables.Product](r.db).Where("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}
