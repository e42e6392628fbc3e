package database

import (
	"context"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"time"

	"github.com/uptrace/bun"
)

// BrandRepository persists product brands.
type BrandRepository struct {
	db bun.IDB
}

func NewBrandRepository(db bun.IDB) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Brand], error) {
	q := Query[tables.Brand](r.db)
	if tq.Search != "" {
		q = q.WhereContains("name", tq.Search)
	}
	q = q.OrderBy(tq.SortBy, ParseDirection(tq.SortDirection)).OrderBy("id", ASC)

	return Paginate(ctx, q, tq)
}

func (r *BrandRepository) Find(ctx context.Context, id int64) (*tables.Brand, error) {
	b, err := Query[tables.Brand](r.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, lib.ErrNotFound
	}
	return b, nil
}

func (r *BrandRepository) NameOrSlugTaken(ctx context.Context, name, slug string, exceptID int64) (bool, error) {
	q := Query[tables.Brand](r.db).WhereRaw("(?TableAlias.name = ? OR ?TableAlias.slug = ?)", name, slug)
	if exceptID > 0 {
		q = q.WhereNot("id", exceptID)
	}
	return q.Exists(ctx)
}

func (r *BrandRepository) Create(ctx context.Context, b *tables.Brand) error {
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := Query[tables.Brand](r.db).Insert(ctx, b)
	return err
}
