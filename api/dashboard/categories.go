package dashboard

import (
	"net/http"
	"storefront_server/handling"
	"storefront_server/lib"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
)

const categoryNotFound = "Category not found"

func (dr *DashboardRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	page, err := dr.categoryService.ListCategories(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(page), gecho.Send())
}

func (dr *DashboardRoutesManager) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, categoryNotFound)
	if !ok {
		return
	}

	category, err := dr.categoryService.GetCategory(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(category), gecho.Send())
}

// categoryInput reads the category form fields and its optional image.
func (dr *DashboardRoutesManager) categoryInput(r *http.Request) (*structs.CategoryInput, error) {
	image, err := lib.ReadUpload(r, "image", dr.storage.MaxImageBytes)
	if err != nil {
		return nil, err
	}
	return &structs.CategoryInput{
		Name:        r.PostForm.Get("name"),
		Color:       r.PostForm.Get("color"),
		Description: handling.FormOptional(r, "description"),
		Image:       image,
	}, nil
}

func (dr *DashboardRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !dr.parseForm(w, r) {
		return
	}
	input, err := dr.categoryInput(r)
	if err != nil {
		handling.ValidationFailed(w, lib.NewValidationError("image", "failed to upload"))
		return
	}

	category, err := dr.categoryService.CreateCategory(r.Context(), input)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.WithMessage("Category created successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, categoryNotFound)
	if !ok || !dr.parseForm(w, r) {
		return
	}
	input, err := dr.categoryInput(r)
	if err != nil {
		handling.ValidationFailed(w, lib.NewValidationError("image", "failed to upload"))
		return
	}

	category, err := dr.categoryService.UpdateCategory(r.Context(), id, input)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(category),
		gecho.WithMessage("Category updated successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, categoryNotFound)
	if !ok {
		return
	}

	if err := dr.categoryService.DeleteCategory(r.Context(), id); err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithMessage("Category deleted successfully"), gecho.Send())
}

func (dr *DashboardRoutesManager) BulkDeleteCategories(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BulkDeleteRequest](r)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	deleted, err := dr.categoryService.BulkDeleteCategories(r.Context(), body.IDs)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]int{"deleted": deleted}),
		gecho.WithMessage("Categories deleted successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) ExportCategories(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	export, err := dr.categoryService.ExportCategories(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, categoryNotFound, dr.logger)
		return
	}

	dr.sendExport(w, export)
}
