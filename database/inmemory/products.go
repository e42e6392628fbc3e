package inmemory

import (
	"context"
	"slices"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
)

type ProductStore struct {
	s *Store
}

func productField(p tables.Product, col string) any {
	switch col {
	case "name":
		return p.Name
	case "slug":
		return p.Slug
	case "price":
		return p.Price
	case "stock":
		return p.Stock
	case "rating":
		return p.Rating
	case "is_new":
		return p.IsNew
	case "created_at":
		return p.CreatedAt
	}
	return p.ID
}

// load copies a stored product and attaches its relations. Callers hold the read lock.
func (ps *ProductStore) load(p *tables.Product) tables.Product {
	out := *p
	out.Images = slices.Clone(p.Images)
	out.Features = slices.Clone(p.Features)
	out.Colors = slices.Clone(p.Colors)
	out.StorageOptions = slices.Clone(p.StorageOptions)
	if c, ok := ps.s.categories[p.CategoryID]; ok {
		cat := *c
		out.Category = &cat
	}
	if b, ok := ps.s.brands[p.BrandID]; ok {
		brand := *b
		out.Brand = &brand
	}
	return out
}

func (ps *ProductStore) all() []tables.Product {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	rows := make([]tables.Product, 0, len(ps.s.products))
	for _, p := range ps.s.products {
		rows = append(rows, ps.load(p))
	}
	return rows
}

func (ps *ProductStore) List(_ context.Context, tq structs.TableQuery) (*structs.Page[tables.Product], error) {
	return list(ps.all(), tq,
		func(p tables.Product) string { return p.Name },
		productField,
		func(p tables.Product) int64 { return p.ID },
	), nil
}

func (ps *ProductStore) Find(_ context.Context, id int64) (*tables.Product, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	p, ok := ps.s.products[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	out := ps.load(p)
	return &out, nil
}

func (ps *ProductStore) FindBySlug(_ context.Context, slug string) (*tables.Product, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	for _, p := range ps.s.products {
		if p.Slug == slug {
			out := ps.load(p)
			return &out, nil
		}
	}
	return nil, lib.ErrNotFound
}

func (ps *ProductStore) SlugTaken(_ context.Context, slug string, exceptID int64) (bool, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()
	return ps.slugTaken(slug, exceptID), nil
}

func (ps *ProductStore) slugTaken(slug string, exceptID int64) bool {
	for _, p := range ps.s.products {
		if p.ID != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (ps *ProductStore) newest(keep func(tables.Product) bool, n int) []tables.Product {
	rows := slices.DeleteFunc(ps.all(), func(p tables.Product) bool { return !keep(p) })
	slices.SortFunc(rows, func(a, b tables.Product) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func (ps *ProductStore) Latest(_ context.Context, n int) ([]tables.Product, error) {
	return ps.newest(func(tables.Product) bool { return true }, n), nil
}

func (ps *ProductStore) Similar(_ context.Context, p *tables.Product, n int) ([]tables.Product, error) {
	return ps.newest(func(o tables.Product) bool {
		return o.CategoryID == p.CategoryID && o.ID != p.ID
	}, n), nil
}

func (ps *ProductStore) Create(_ context.Context, p *tables.Product) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	if ps.slugTaken(p.Slug, 0) {
		return lib.ErrConflict
	}
	if _, ok := ps.s.categories[p.CategoryID]; !ok {
		return lib.ErrNotFound
	}
	if _, ok := ps.s.brands[p.BrandID]; !ok {
		return lib.ErrNotFound
	}

	now := ps.s.now()
	p.ID = ps.s.id()
	p.CreatedAt, p.UpdatedAt = now, now
	row := *p
	row.Category, row.Brand = nil, nil
	ps.s.products[p.ID] = &row
	return nil
}

func (ps *ProductStore) Delete(_ context.Context, id int64) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	if _, ok := ps.s.products[id]; !ok {
		return lib.ErrNotFound
	}
	delete(ps.s.products, id)
	return nil
}
