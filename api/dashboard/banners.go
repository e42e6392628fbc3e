package dashboard

import (
	"net/http"
	"storefront_server/handling"
	"storefront_server/lib"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
)

const bannerNotFound = "Banner not found"

func (dr *DashboardRoutesManager) ListBanners(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	page, err := dr.bannerService.ListBanners(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(page), gecho.Send())
}

// bannerInput reads the banner form. Fields that do not parse are reported
// before the service validates the rest.
func (dr *DashboardRoutesManager) bannerInput(r *http.Request) (*structs.BannerInput, error) {
	ve := &lib.ValidationError{}
	input := &structs.BannerInput{
		LinkURL:   handling.FormOptional(r, "link_url"),
		Alt:       r.PostForm.Get("alt"),
		IsActive:  handling.FormBool(r, "is_active", ve),
		SortOrder: handling.FormInt(r, "sort_order", ve),
	}

	image, err := lib.ReadUpload(r, "image", dr.storage.MaxImageBytes)
	if err != nil {
		ve.Add("image", "failed to upload")
	}
	input.Image = image

	return input, ve.OrNil()
}

func (dr *DashboardRoutesManager) CreateBanner(w http.ResponseWriter, r *http.Request) {
	if !dr.parseForm(w, r) {
		return
	}
	input, err := dr.bannerInput(r)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	banner, err := dr.bannerService.CreateBanner(r.Context(), input)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(banner),
		gecho.WithMessage("Banner created successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, bannerNotFound)
	if !ok || !dr.parseForm(w, r) {
		return
	}
	input, err := dr.bannerInput(r)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	banner, err := dr.bannerService.UpdateBanner(r.Context(), id, input)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(banner),
		gecho.WithMessage("Banner updated successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) ToggleBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, bannerNotFound)
	if !ok {
		return
	}

	banner, err := dr.bannerService.ToggleActive(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(banner), gecho.Send())
}

func (dr *DashboardRoutesManager) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, bannerNotFound)
	if !ok {
		return
	}

	if err := dr.bannerService.DeleteBanner(r.Context(), id); err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithMessage("Banner deleted successfully"), gecho.Send())
}

func (dr *DashboardRoutesManager) BulkDeleteBanners(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BulkDeleteRequest](r)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	deleted, err := dr.bannerService.BulkDeleteBanners(r.Context(), body.IDs)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]int{"deleted": deleted}),
		gecho.WithMessage("Banners deleted successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) ExportBanners(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	export, err := dr.bannerService.ExportBanners(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, bannerNotFound, dr.logger)
		return
	}

	dr.sendExport(w, export)
}
