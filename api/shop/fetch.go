package shop

import (
	"net/http"
	"storefront_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (s *ShopRoutesManager) Home(w http.ResponseWriter, r *http.Request) {
	home, err := s.storefrontService.Home(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to load the home page", s.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(home), gecho.Send())
}

// ProductDetail handles GET /products/{slug}
func (s *ShopRoutesManager) ProductDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	s.logger.Debug("Fetching product", gecho.Field("slug", slug))

	page, err := s.storefrontService.ProductDetail(r.Context(), slug)
	if err != nil {
		handling.HandleServiceError(w, err, "Product not found", s.logger)
		return
	}

	gecho.Success(w, gecho.WithData(page), gecho.Send())
}
