package services

import (
	"context"
	"fmt"
	"storefront_server/structs"
	"storefront_server/structs/tables"
)

const (
	LatestProductsLimit  = 8
	SimilarProductsLimit = 4
)

// HomePage is everything the storefront landing page renders.
type HomePage struct {
	Banners    []tables.Banner          `json:"banners"`
	Categories []structs.PublicCategory `json:"categories"`
	Products   []tables.Product         `json:"products"`
	StorageURL string                   `json:"storage_url"`
}

type ProductPage struct {
	Product *tables.Product  `json:"product"`
	Similar []tables.Product `json:"similar_products"`
}

// StorefrontService serves the public, read-only catalog views.
type StorefrontService struct {
	stores     Stores
	storageURL string
}

func NewStorefrontService(stores Stores, storageURL string) *StorefrontService {
	return &StorefrontService{stores: stores, storageURL: storageURL}
}

func (ss *StorefrontService) Home(ctx context.Context) (*HomePage, error) {
	banners, err := ss.stores.Banners.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load banners: %w", err)
	}

	categories, err := ss.stores.Categories.Public(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	products, err := ss.stores.Products.Latest(ctx, LatestProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest products: %w", err)
	}

	return &HomePage{
		Banners:    banners,
		Categories: categories,
		Products:   products,
		StorageURL: ss.storageURL,
	}, nil
}

// ProductDetail returns a product by slug with up to four newer-first products of the same category.
func (ss *StorefrontService) ProductDetail(ctx context.Context, slug string) (*ProductPage, error) {
	product, err := ss.stores.Products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	similar, err := ss.stores.Products.Similar(ctx, product, SimilarProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load similar products: %w", err)
	}

	return &ProductPage{Product: product, Similar: similar}, nil
}
