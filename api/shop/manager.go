package shop

import (
	"storefront_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ShopRoutesManager serves the public storefront pages.
type ShopRoutesManager struct {
	logger            *gecho.Logger
	storefrontService *services.StorefrontService
}

func NewShopRoutesManager(logger *gecho.Logger, storefrontService *services.StorefrontService) *ShopRoutesManager {
	return &ShopRoutesManager{
		logger:            logger,
		storefrontService: storefrontService,
	}
}

func (s *ShopRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/", s.Home)
	r.Get("/products/{slug}", s.ProductDetail)
}
