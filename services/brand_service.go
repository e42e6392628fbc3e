package services

import (
	"context"
	"errors"
	"fmt"
	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
)

type BrandService struct {
	logger *gecho.Logger
	store  BrandStore
}

func NewBrandService(logger *gecho.Logger, store BrandStore) *BrandService {
	return &BrandService{logger: logger, store: store}
}

func (bs *BrandService) ListBrands(ctx context.Context, q structs.TableQuery) (*structs.Page[tables.Brand], error) {
	q, err := brandTable.normalize(q)
	if err != nil {
		return nil, err
	}
	page, err := bs.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return page, nil
}

func (bs *BrandService) CreateBrand(ctx context.Context, in *structs.BrandInput) (*tables.Brand, error) {
	in.Name = strings.TrimSpace(in.Name)

	ve, err := collect(lib.ValidateStruct(in))
	if err != nil {
		return nil, err
	}

	slug := lib.Slugify(in.Name)
	if in.Name != "" && slug == "" {
		ve.Add("name", "must contain letters or digits")
	}
	if !ve.Has("name") {
		taken, err := bs.store.NameOrSlugTaken(ctx, in.Name, slug, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check brand name: %w", err)
		}
		if taken {
			ve.Add("name", takenMessage)
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	brand := &tables.Brand{Name: in.Name, Slug: slug}
	if err := bs.store.Create(ctx, brand); err != nil {
		if errors.Is(err, lib.ErrConflict) {
			return nil, lib.NewValidationError("name", takenMessage)
		}
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	bs.logger.Info("Brand created", gecho.Field("id", brand.ID), gecho.Field("slug", brand.Slug))
	return brand, nil
}
