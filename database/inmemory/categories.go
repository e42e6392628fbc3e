package inmemory

import (
	"context"
	"slices"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
)

type CategoryStore struct {
	s *Store
}

func categoryField(c tables.Category, col string) any {
	switch col {
	case "name":
		return c.Name
	case "slug":
		return c.Slug
	case "color":
		return c.Color
	case "created_at":
		return c.CreatedAt
	case "updated_at":
		return c.UpdatedAt
	}
	return c.ID
}

func (cs *CategoryStore) List(_ context.Context, tq structs.TableQuery) (*structs.Page[tables.Category], error) {
	cs.s.mu.RLock()
	rows := make([]tables.Category, 0, len(cs.s.categories))
	for _, c := range cs.s.categories {
		rows = append(rows, *c)
	}
	cs.s.mu.RUnlock()

	return list(rows, tq,
		func(c tables.Category) string { return c.Name },
		categoryField,
		func(c tables.Category) int64 { return c.ID },
	), nil
}

func (cs *CategoryStore) Find(_ context.Context, id int64) (*tables.Category, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()

	c, ok := cs.s.categories[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (cs *CategoryStore) NameOrSlugTaken(_ context.Context, name, slug string, exceptID int64) (bool, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()
	return cs.taken(name, slug, exceptID), nil
}

func (cs *CategoryStore) taken(name, slug string, exceptID int64) bool {
	for _, c := range cs.s.categories {
		if c.ID != exceptID && (c.Name == name || c.Slug == slug) {
			return true
		}
	}
	return false
}

func (cs *CategoryStore) Public(_ context.Context) ([]structs.PublicCategory, error) {
	cs.s.mu.RLock()
	rows := make([]tables.Category, 0, len(cs.s.categories))
	for _, c := range cs.s.categories {
		rows = append(rows, *c)
	}
	cs.s.mu.RUnlock()

	slices.SortFunc(rows, func(a, b tables.Category) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	out := make([]structs.PublicCategory, 0, len(rows))
	for _, c := range rows {
		out = append(out, structs.PublicCategory{ID: c.ID, Name: c.Name, Slug: c.Slug, Image: c.Image, Color: c.Color})
	}
	return out, nil
}

func (cs *CategoryStore) Create(_ context.Context, c *tables.Category) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	if cs.taken(c.Name, c.Slug, 0) {
		return lib.ErrConflict
	}
	now := cs.s.now()
	c.ID = cs.s.id()
	c.CreatedAt, c.UpdatedAt = now, now
	row := *c
	cs.s.categories[c.ID] = &row
	return nil
}

func (cs *CategoryStore) Update(_ context.Context, c *tables.Category) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	existing, ok := cs.s.categories[c.ID]
	if !ok {
		return lib.ErrNotFound
	}
	if cs.taken(c.Name, c.Slug, c.ID) {
		return lib.ErrConflict
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = cs.s.now()
	row := *c
	cs.s.categories[c.ID] = &row
	return nil
}

func (cs *CategoryStore) Delete(_ context.Context, id int64) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	if _, ok := cs.s.categories[id]; !ok {
		return lib.ErrNotFound
	}
	cs.remove(id)
	return nil
}

// remove deletes a category and, like the foreign key, its products.
func (cs *CategoryStore) remove(id int64) {
	delete(cs.s.categories, id)
	for pid, p := range cs.s.products {
		if p.CategoryID == id {
			delete(cs.s.products, pid)
		}
	}
}

func (cs *CategoryStore) MissingIDs(_ context.Context, ids []int64) ([]int64, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()

	return missing(ids, func(id int64) bool {
		_, ok := cs.s.categories[id]
		return ok
	}), nil
}

func (cs *CategoryStore) DeleteMany(_ context.Context, ids []int64) ([]tables.Category, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	var removed []tables.Category
	for _, id := range ids {
		if c, ok := cs.s.categories[id]; ok {
			removed = append(removed, *c)
			cs.remove(id)
		}
	}
	return removed, nil
}
