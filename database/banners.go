package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"time"

	"github.com/uptrace/bun"
)

// BannerRepository persists home page banners.
type BannerRepository struct {
	db bun.IDB
}

func NewBannerRepository(db bun.IDB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Banner], error) {
	q := Query[tables.Banner](r.db)
	if tq.Search != "" {
		q = q.WhereContains("alt", tq.Search)
	}
	q = q.OrderBy(tq.SortBy, ParseDirection(tq.SortDirection)).OrderBy("id", ASC)

	return Paginate(ctx, q, tq)
}

// Active returns the banners shown on the storefront, in display order.
func (r *BannerRepository) Active(ctx context.Context) ([]tables.Banner, error) {
	return Query[tables.Banner](r.db).
		Where("is_active", true).
		OrderBy("sort_order", ASC).
		OrderBy("id", ASC).
		All(ctx)
}

func (r *BannerRepository) Find(ctx context.Context, id int64) (*tables.Banner, error) {
	b, err := Query[tables.Banner](r.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, lib.ErrNotFound
	}
	return b, nil
}

// MaxSortOrder returns the highest sort order in use, 0 when there are no banners.
func (r *BannerRepository) MaxSortOrder(ctx context.Context) (int, error) {
	var max int
	err := r.db.NewSelect().
		Model((*tables.Banner)(nil)).
		ColumnExpr("COALESCE(MAX(?TableAlias.sort_order), 0)").
		Scan(ctx, &max)
	if err != nil {
		return 0, fmt.Errorf("failed to read max sort order: %w", err)
	}
	return max, nil
}

func (r *BannerRepository) Create(ctx context.Context, b *tables.Banner) error {
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := Query[tables.Banner](r.db).Insert(ctx, b)
	return err
}

func (r *BannerRepository) Update(ctx context.Context, b *tables.Banner) error {
	b.UpdatedAt = time.Now()
	n, err := Query[tables.Banner](r.db).Update(ctx, b, "image_url", "link_url", "alt", "is_active", "sort_order", "updated_at")
	if err != nil {
		return err
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// Toggle flips is_active in a single statement and returns the updated row.
func (r *BannerRepository) Toggle(ctx context.Context, id int64) (*tables.Banner, error) {
	b := new(tables.Banner)
	res, err := r.db.NewUpdate().
		Model(b).
		Set("is_active = NOT is_active").
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.? = ?", bun.Ident("id"), id).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle banner: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, lib.ErrNotFound
	}
	return b, nil
}

func (r *BannerRepository) Delete(ctx context.Context, id int64) error {
	n, err := Query[tables.Banner](r.db).Where("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (r *BannerRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := []int64{}
	err := r.db.NewSelect().
		Model((*tables.Banner)(nil)).
		Column("id").
		Where("?TableAlias.? IN (?)", bun.Ident("id"), bun.In(ids)).
		Scan(ctx, &found)
	if err != nil {
		return nil, fmt.Errorf("failed to look up banners: %w", err)
	}
	return missing(ids, found), nil
}

func (r *BannerRepository) DeleteMany(ctx context.Context, ids []int64) ([]tables.Banner, error) {
	return Query[tables.Banner](r.db).WhereIn("id", ids).DeleteReturning(ctx)
}
