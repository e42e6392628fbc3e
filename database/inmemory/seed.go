package inmemory

import (
	"context"
	"fmt"
	"storefront_server/database"
)

// Seed loads a demo catalog into the store.
func (s *Store) Seed(ctx context.Context, data database.SeedData) error {
	categoryIDs := map[string]int64{}
	for i := range data.Categories {
		c := &data.Categories[i]
		if err := s.Categories().Create(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = c.ID
	}

	brandIDs := map[string]int64{}
	for i := range data.Brands {
		b := &data.Brands[i]
		if err := s.Brands().Create(ctx, b); err != nil {
			return fmt.Errorf("seed brand %s: %w", b.Slug, err)
		}
		brandIDs[b.Slug] = b.ID
	}

	for i := range data.Products {
		sp := &data.Products[i]
		sp.Product.CategoryID = categoryIDs[sp.CategorySlug]
		sp.Product.BrandID = brandIDs[sp.BrandSlug]
		if err := s.Products().Create(ctx, &sp.Product); err != nil {
			return fmt.Errorf("seed product %s: %w", sp.Product.Slug, err)
		}
	}

	for i := range data.Banners {
		if err := s.Banners().Create(ctx, &data.Banners[i]); err != nil {
			return fmt.Errorf("seed banner %q: %w", data.Banners[i].Alt, err)
		}
	}
	return nil
}
