package dashboard

import (
	"net/http"
	"storefront_server/handling"
	"storefront_server/lib"
	"storefront_server/structs"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

const productNotFound = "Product not found"

func (dr *DashboardRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	page, err := dr.productService.ListProducts(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(page), gecho.Send())
}

func (dr *DashboardRoutesManager) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, productNotFound)
	if !ok {
		return
	}

	product, err := dr.productService.GetProduct(r.Context(), id)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

// productInput reads the product form: scalar fields, JSON-encoded lists and
// the repeated images field.
func (dr *DashboardRoutesManager) productInput(r *http.Request) (*structs.ProductInput, error) {
	ve := &lib.ValidationError{}
	input := &structs.ProductInput{
		Name:             r.PostForm.Get("name"),
		CategoryID:       handling.FormID(r, "category_id", ve),
		BrandID:          handling.FormID(r, "brand_id", ve),
		ShortDescription: handling.FormOptional(r, "short_description"),
		FullDescription:  handling.FormOptional(r, "full_description"),
		Price:            handling.FormDecimal(r, "price", ve),
		OriginalPrice:    handling.FormDecimal(r, "original_price", ve),
	}

	if stock := handling.FormInt(r, "stock", ve); stock != nil {
		input.Stock = *stock
	}
	if reviews := handling.FormInt(r, "review_count", ve); reviews != nil {
		input.ReviewCount = *reviews
	}
	if isNew := handling.FormBool(r, "is_new", ve); isNew != nil {
		input.IsNew = *isNew
	}
	if rating := handling.FormDecimal(r, "rating", ve); rating != nil {
		input.Rating = *rating
	} else {
		input.Rating = decimal.Zero
	}

	handling.FormJSON(r, "features", &input.Features, ve)
	handling.FormJSON(r, "colors", &input.Colors, ve)
	handling.FormJSON(r, "storage_options", &input.StorageOptions, ve)
	for i, c := range input.Colors {
		input.Colors[i].Hex = strings.ToLower(c.Hex)
	}

	images, err := lib.ReadUploads(r, "images", dr.storage.MaxImageBytes)
	if err != nil {
		ve.Add("images", "failed to upload")
	}
	input.Images = images

	return input, ve.OrNil()
}

func (dr *DashboardRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !dr.parseForm(w, r) {
		return
	}
	input, err := dr.productInput(r)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	dr.logger.Debug("CreateProduct request received",
		gecho.Field("product_name", input.Name),
		gecho.Field("images_count", len(input.Images)),
	)

	product, err := dr.productService.CreateProduct(r.Context(), input)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.WithMessage("Product created successfully"),
		gecho.Send(),
	)
}

func (dr *DashboardRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := dr.routeID(w, r, productNotFound)
	if !ok {
		return
	}

	if err := dr.productService.DeleteProduct(r.Context(), id); err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	gecho.Success(w, gecho.WithMessage("Product deleted successfully"), gecho.Send())
}

func (dr *DashboardRoutesManager) ExportProducts(w http.ResponseWriter, r *http.Request) {
	tq, err := handling.ParseTableQuery(r)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	export, err := dr.productService.ExportProducts(r.Context(), tq)
	if err != nil {
		handling.HandleServiceError(w, err, productNotFound, dr.logger)
		return
	}

	dr.sendExport(w, export)
}
