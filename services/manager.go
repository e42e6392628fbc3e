package services

import (
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CategoryService   *CategoryService
	BannerService     *BannerService
	BrandService      *BrandService
	ProductService    *ProductService
	StorefrontService *StorefrontService
	HealthService     *HealthService
	CacheService      *CacheService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, stores Stores, files FileStorage, db Pinger, cache *CacheService) *ServiceManager {
	maxImage := cfg.Storage.MaxImageBytes

	return &ServiceManager{
		CategoryService:   NewCategoryService(logger, stores.Categories, files, maxImage),
		BannerService:     NewBannerService(logger, stores.Banners, files, maxImage),
		BrandService:      NewBrandService(logger, stores.Brands),
		ProductService:    NewProductService(logger, stores, files, maxImage),
		StorefrontService: NewStorefrontService(stores, cfg.Storage.PublicURL),
		HealthService:     NewHealthService(logger, db, cfg.Database.Driver),
		CacheService:      cache,
	}
}
