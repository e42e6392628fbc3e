package dashboard

import (
	"net/http"
	"storefront_server/api/middleware"
	"storefront_server/handling"
	"storefront_server/lib"
	"storefront_server/services"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DashboardRoutesManager struct {
	logger          *gecho.Logger
	storage         *structs.StorageConfig
	categoryService *services.CategoryService
	bannerService   *services.BannerService
	productService  *services.ProductService
	brandService    *services.BrandService
	mw              *middleware.Middleware
}

func NewDashboardRoutesManager(
	logger *gecho.Logger,
	storage *structs.StorageConfig,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *DashboardRoutesManager {
	return &DashboardRoutesManager{
		logger:          logger,
		storage:         storage,
		categoryService: sm.CategoryService,
		bannerService:   sm.BannerService,
		productService:  sm.ProductService,
		brandService:    sm.BrandService,
		mw:              mw,
	}
}

func (dr *DashboardRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		// The banner listing and creation form are reachable without a session.
		r.Get("/homebanner", dr.ListBanners)
		r.Post("/homebanner", dr.CreateBanner)

		r.Group(func(r chi.Router) {
			r.Use(dr.mw.SessionMiddleware)

			r.Get("/homebanner/export", dr.ExportBanners)
			r.Delete("/homebanner/bulk-delete", dr.BulkDeleteBanners)
			r.Put("/homebanner/{id}", dr.UpdateBanner)
			r.Delete("/homebanner/{id}", dr.DeleteBanner)
			r.Patch("/homebanner/{id}/toggle", dr.ToggleBanner)

			r.Get("/categories", dr.ListCategories)
			r.Post("/categories", dr.CreateCategory)
			r.Get("/categories/export", dr.ExportCategories)
			r.Delete("/categories/bulk-delete", dr.BulkDeleteCategories)
			r.Get("/categories/{id}", dr.GetCategory)
			r.Put("/categories/{id}", dr.UpdateCategory)
			r.Delete("/categories/{id}", dr.DeleteCategory)

			r.Get("/products", dr.ListProducts)
			r.Post("/products", dr.CreateProduct)
			r.Get("/products/export", dr.ExportProducts)
			r.Get("/products/{id}", dr.GetProduct)
			r.Delete("/products/{id}", dr.DeleteProduct)

			r.Get("/brands", dr.ListBrands)
			r.Post("/brands", dr.CreateBrand)
		})
	})
}

// routeID reads the {id} parameter, answering 404 itself when it is not a record id.
func (dr *DashboardRoutesManager) routeID(w http.ResponseWriter, r *http.Request, notFound string) (int64, bool) {
	id, ok := handling.ParseID(chi.URLParam(r, "id"))
	if !ok {
		gecho.NotFound(w, gecho.WithMessage(notFound), gecho.Send())
	}
	return id, ok
}

// parseForm parses the request form, answering 400 itself on failure.
func (dr *DashboardRoutesManager) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := handling.ParseForm(r, dr.storage.MaxMemory); err != nil {
		dr.logger.Debug("Failed to parse form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("The form could not be read. Please check the upload and try again"), gecho.Send())
		return false
	}
	return true
}

func (dr *DashboardRoutesManager) sendExport(w http.ResponseWriter, export *services.Export) {
	lib.AttachmentHeaders(w, services.XLSXContentType, export.Filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Data); err != nil {
		dr.logger.Warn("Failed to write export", gecho.Field("file", export.Filename), gecho.Field("error", err))
	}
}
