package inmemory

import (
	"cmp"
	"context"
	"math"
	"slices"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
)

type BannerStore struct {
	s *Store
}

func bannerField(b tables.Banner, col string) any {
	switch col {
	case "alt":
		return b.Alt
	case "is_active":
		return b.IsActive
	case "sort_order":
		return b.SortOrder
	case "created_at":
		return b.CreatedAt
	case "updated_at":
		return b.UpdatedAt
	}
	return b.ID
}

func (bs *BannerStore) all() []tables.Banner {
	bs.s.mu.RLock()
	defer bs.s.mu.RUnlock()

	rows := make([]tables.Banner, 0, len(bs.s.banners))
	for _, b := range bs.s.banners {
		rows = append(rows, *b)
	}
	return rows
}

func (bs *BannerStore) List(_ context.Context, tq structs.TableQuery) (*structs.Page[tables.Banner], error) {
	return list(bs.all(), tq,
		func(b tables.Banner) string { return b.Alt },
		bannerField,
		func(b tables.Banner) int64 { return b.ID },
	), nil
}

func (bs *BannerStore) Active(_ context.Context) ([]tables.Banner, error) {
	rows := slices.DeleteFunc(bs.all(), func(b tables.Banner) bool { return !b.IsActive })
	slices.SortFunc(rows, func(a, b tables.Banner) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return rows, nil
}

func (bs *BannerStore) Find(_ context.Context, id int64) (*tables.Banner, error) {
	bs.s.mu.RLock()
	defer bs.s.mu.RUnlock()

	b, ok := bs.s.banners[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (bs *BannerStore) MaxSortOrder(_ context.Context) (int, error) {
	bs.s.mu.RLock()
	defer bs.s.mu.RUnlock()

	if len(bs.s.banners) == 0 {
		return 0, nil
	}
	highest := math.MinInt
	for _, b := range bs.s.banners {
		highest = max(highest, b.SortOrder)
	}
	return highest, nil
}

func (bs *BannerStore) Create(_ context.Context, b *tables.Banner) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()

	now := bs.s.now()
	b.ID = bs.s.id()
	b.CreatedAt, b.UpdatedAt = now, now
	row := *b
	bs.s.banners[b.ID] = &row
	return nil
}

func (bs *BannerStore) Update(_ context.Context, b *tables.Banner) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()

	existing, ok := bs.s.banners[b.ID]
	if !ok {
		return lib.ErrNotFound
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = bs.s.now()
	row := *b
	bs.s.banners[b.ID] = &row
	return nil
}

func (bs *BannerStore) Toggle(_ context.Context, id int64) (*tables.Banner, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()

	b, ok := bs.s.banners[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	b.IsActive = !b.IsActive
	b.UpdatedAt = bs.s.now()
	out := *b
	return &out, nil
}

func (bs *BannerStore) Delete(_ context.Context, id int64) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()

	if _, ok := bs.s.banners[id]; !ok {
		return lib.ErrNotFound
	}
	delete(bs.s.banners, id)
	return nil
}

func (bs *BannerStore) MissingIDs(_ context.Context, ids []int64) ([]int64, error) {
	bs.s.mu.RLock()
	defer bs.s.mu.RUnlock()

	return missing(ids, func(id int64) bool {
		_, ok := bs.s.banners[id]
		return ok
	}), nil
}

func (bs *BannerStore) DeleteMany(_ context.Context, ids []int64) ([]tables.Banner, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()

	var removed []tables.Banner
	for _, id := range ids {
		if b, ok := bs.s.banners[id]; ok {
			removed = append(removed, *b)
			delete(bs.s.banners, id)
		}
	}
	return removed, nil
}
