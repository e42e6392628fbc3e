package inmemory

import (
	"context"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
)

type BrandStore struct {
	s *Store
}

func brandField(b tables.Brand, col string) any {
	switch col {
	case "name":
		return b.Name
	case "slug":
		return b.Slug
	case "created_at":
		return b.CreatedAt
	}
	return b.ID
}

func (bs *BrandStore) List(_ context.Context, tq structs.TableQuery) (*structs.Page[tables.Brand], error) {
	bs.s.mu.RLock()
	rows := make([]tables.Brand, 0, len(bs.s.brands))
	for _, b := range bs.s.brands {
		rows = append(rows, *b)
	}
	bs.s.mu.RUnlock()

	return list(rows, tq,
		func(b tables.Brand) string { return b.Name },
		brandField,
		func(b tables.Brand) int64 { return b.ID },
	), nil
}

func (bs *BrandStore) Find(_ context.Context, id int64) (*tables.Brand, error) {
	bs.s.mu.RLock()
	defer bs.s.mu.RUnlock()

	b, ok := bs.s.brands[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (bs *BrandStore) NameOrSlugTaken(_ context.Context, name, slug string, exceptID int64) (bool, error) {
	bs.s.mu.RLock()
	defer bs.s.mu.RUnlock()
	return bs.taken(name, slug, exceptID), nil
}

func (bs *BrandStore) taken(name, slug string, exceptID int64) bool {
	for _, b := range bs.s.brands {
		if b.ID != exceptID && (b.Name == name || b.Slug == slug) {
			return true
		}
	}
	return false
}

func (bs *BrandStore) Create(_ context.Context, b *tables.Brand) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()

	if bs.taken(b.Name, b.Slug, 0) {
		return lib.ErrConflict
	}
	now := bs.s.now()
	b.ID = bs.s.id()
	b.CreatedAt, b.UpdatedAt = now, now
	row := *b
	bs.s.brands[b.ID] = &row
	return nil
}
