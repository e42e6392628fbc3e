package dashboard

import (
	"net/http"
	"storefront_server/handling"
	"storefront_server/lib"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
)

func (dr *DashboardRoutesManager) ListBrands(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, "Brand not found", dr.logger)
		return
	}

	page, err := dr.brandService.ListBrands(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, "Brand not found", dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(page), gecho.Send())
}

func (dr *DashboardRoutesManager) CreateBrand(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BrandInput](r)
	if err != nil {
		handling.HandleServiceError(w, err, "Brand not found", dr.logger)
		return
	}

	brand, err := dr.brandService.CreateBrand(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(w, err, "Brand not found", dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(brand),
		gecho.WithMessage("Brand created successfully"),
		gecho.Send(),
	)
}
