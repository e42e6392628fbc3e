package services

import (
	"context"
	"storefront_server/structs"
	"storefront_server/structs/tables"
)

// The stores below are implemented by the Postgres repositories in
// database and by the in-memory store in database/inmemory. Lookups of a
// single missing row return lib.ErrNotFound; unique violations return
// lib.ErrConflict.

type CategoryStore interface {
	List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Category], error)
	Find(ctx context.Context, id int64) (*tables.Category, error)
	NameOrSlugTaken(ctx context.Context, name, slug string, exceptID int64) (bool, error)
	Public(ctx context.Context) ([]structs.PublicCategory, error)
	Create(ctx context.Context, c *tables.Category) error
	Update(ctx context.Context, c *tables.Category) error
	Delete(ctx context.Context, id int64) error
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
	DeleteMany(ctx context.Context, ids []int64) ([]tables.Category, error)
}

type BannerStore interface {
	List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Banner], error)
	Active(ctx context.Context) ([]tables.Banner, error)
	Find(ctx context.Context, id int64) (*tables.Banner, error)
	MaxSortOrder(ctx context.Context) (int, error)
	Create(ctx context.Context, b *tables.Banner) error
	Update(ctx context.Context, b *tables.Banner) error
	Toggle(ctx context.Context, id int64) (*tables.Banner, error)
	Delete(ctx context.Context, id int64) error
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
	DeleteMany(ctx context.Context, ids []int64) ([]tables.Banner, error)
}

type BrandStore interface {
	List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Brand], error)
	Find(ctx context.Context, id int64) (*tables.Brand, error)
	NameOrSlugTaken(ctx context.Context, name, slug string, exceptID int64) (bool, error)
	Create(ctx context.Context, b *tables.Brand) error
}

type ProductStore interface {
	List(ctx context.Context, tq structs.TableQuery) (*structs.Page[tables.Product], error)
	Find(ctx context.Context, id int64) (*tables.Product, error)
	FindBySlug(ctx context.Context, slug string) (*tables.Product, error)
	SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error)
	Latest(ctx context.Context, n int) ([]tables.Product, error)
	Similar(ctx context.Context, p *tables.Product, n int) ([]tables.Product, error)
	Create(ctx context.Context, p *tables.Product) error
	Delete(ctx context.Context, id int64) error
}

// Stores groups the catalog stores of one backend.
type Stores struct {
	Categories CategoryStore
	Banners    BannerStore
	Brands     BrandStore
	Products   ProductStore
}

// FileStorage is the public disk uploads are written to. Paths are relative to its root.
type FileStorage interface {
	Save(folder string, data []byte, ext string) (string, error)
	Delete(path string) error
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}
