package services

import (
	"context"
	"errors"
	"fmt"
	"storefront_server/lib"
	"storefront_server/storage"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

var (
	maxPrice  = decimal.RequireFromString("999999.99")
	maxRating = decimal.NewFromInt(5)
)

type ProductService struct {
	logger        *gecho.Logger
	store         ProductStore
	categories    CategoryStore
	brands        BrandStore
	files         FileStorage
	maxImageBytes int64
}

func NewProductService(logger *gecho.Logger, stores Stores, files FileStorage, maxImageBytes int64) *ProductService {
	return &ProductService{
		logger:        logger,
		store:         stores.Products,
		categories:    stores.Categories,
		brands:        stores.Brands,
		files:         files,
		maxImageBytes: maxImageBytes,
	}
}

func (ps *ProductService) ListProducts(ctx context.Context, q structs.TableQuery) (*structs.Page[tables.Product], error) {
	q, err := productTable.normalize(q)
	if err != nil {
		return nil, err
	}
	page, err := ps.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

func (ps *ProductService) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	return ps.store.Find(ctx, id)
}

// checkAmount validates a money amount: non-negative, at most two decimals, within the column range.
func checkAmount(ve *lib.ValidationError, field string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		ve.Add(field, "must be greater than or equal to 0")
	case d.GreaterThan(maxPrice):
		ve.Add(field, "must be less than or equal to 999999.99")
	case !d.Equal(d.Round(2)):
		ve.Add(field, "must have at most 2 decimal places")
	}
}

func (ps *ProductService) validate(ctx context.Context, in *structs.ProductInput) (string, []string, error) {
	in.Name = strings.TrimSpace(in.Name)

	ve, err := collect(lib.ValidateStruct(in))
	if err != nil {
		return "", nil, err
	}

	if in.Price != nil {
		checkAmount(ve, "price", *in.Price)
	}
	if in.OriginalPrice != nil {
		checkAmount(ve, "original_price", *in.OriginalPrice)
	}
	switch {
	case in.Rating.IsNegative() || in.Rating.GreaterThan(maxRating):
		ve.Add("rating", "must be between 0 and 5")
	case !in.Rating.Equal(in.Rating.Round(1)):
		ve.Add("rating", "must have at most 1 decimal place")
	}

	if in.CategoryID > 0 {
		if _, err := ps.categories.Find(ctx, in.CategoryID); err != nil {
			if !errors.Is(err, lib.ErrNotFound) {
				return "", nil, fmt.Errorf("failed to look up category: %w", err)
			}
			ve.Add("category_id", "is invalid")
		}
	}
	if in.BrandID > 0 {
		if _, err := ps.brands.Find(ctx, in.BrandID); err != nil {
			if !errors.Is(err, lib.ErrNotFound) {
				return "", nil, fmt.Errorf("failed to look up brand: %w", err)
			}
			ve.Add("brand_id", "is invalid")
		}
	}

	exts := make([]string, len(in.Images))
	for i, img := range in.Images {
		if exts[i], err = lib.CheckImage(img, ps.maxImageBytes); err != nil {
			ve.Add(lib.IndexField("images", i), err.Error())
		}
	}

	slug := lib.Slugify(in.Name)
	if in.Name != "" && slug == "" {
		ve.Add("name", "must contain letters or digits")
	}
	if !ve.Has("name") {
		taken, err := ps.store.SlugTaken(ctx, slug, 0)
		if err != nil {
			return "", nil, fmt.Errorf("failed to check product slug: %w", err)
		}
		if taken {
			ve.Add("name", takenMessage)
		}
	}

	return slug, exts, ve.OrNil()
}

// CreateProduct validates the input, stores every image in order and inserts the product.
func (ps *ProductService) CreateProduct(ctx context.Context, in *structs.ProductInput) (*tables.Product, error) {
	slug, exts, err := ps.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	product := &tables.Product{
		Name:             in.Name,
		Slug:             slug,
		CategoryID:       in.CategoryID,
		BrandID:          in.BrandID,
		ShortDescription: optional(in.ShortDescription),
		FullDescription:  optional(in.FullDescription),
		Price:            *in.Price,
		Stock:            in.Stock,
		IsNew:            in.IsNew,
		Images:           make([]string, 0, len(in.Images)),
		Features:         nonNil(in.Features),
		Colors:           nonNil(in.Colors),
		StorageOptions:   nonNil(in.StorageOptions),
		Rating:           in.Rating,
		ReviewCount:      in.ReviewCount,
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice)
	}

	for i, img := range in.Images {
		path, err := ps.files.Save(storage.ProductsFolder, img.Data, exts[i])
		if err != nil {
			ps.discardImages(product.Images)
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		product.Images = append(product.Images, path)
	}

	if err := ps.store.Create(ctx, product); err != nil {
		ps.discardImages(product.Images)
		if errors.Is(err, lib.ErrConflict) {
			return nil, lib.NewValidationError("name", takenMessage)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	ps.logger.Info("Product created", gecho.Field("id", product.ID), gecho.Field("slug", product.Slug))
	return product, nil
}

func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	existing, err := ps.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := ps.store.Delete(ctx, id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	ps.discardImages(existing.Images)
	return nil
}

func (ps *ProductService) discardImages(paths []string) {
	for _, p := range paths {
		discardFile(ps.logger, ps.files, p)
	}
}

func (ps *ProductService) ExportProducts(ctx context.Context, q structs.TableQuery) (*Export, error) {
	q, err := productTable.exportQuery(q)
	if err != nil {
		return nil, err
	}
	page, err := ps.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	rows := make([][]any, 0, len(page.Data))
	for _, p := range page.Data {
		var category, brand string
		if p.Category != nil {
			category = p.Category.Name
		}
		if p.Brand != nil {
			brand = p.Brand.Name
		}
		var original any = ""
		if p.OriginalPrice.Valid {
			original = cellDecimal(p.OriginalPrice.Decimal)
		}
		rows = append(rows, []any{
			p.ID, p.Name, p.Slug, category, brand, cellDecimal(p.Price), original,
			p.Stock, cellBool(p.IsNew), cellDecimal(p.Rating), p.ReviewCount, cellTime(p.CreatedAt),
		})
	}

	data, err := buildWorkbook("Products", []string{
		"ID", "Name", "Slug", "Category", "Brand", "Price", "Original Price",
		"Stock", "New", "Rating", "Reviews", "Created At",
	}, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build products export: %w", err)
	}
	return &Export{Filename: "products.xlsx", Data: data, Rows: len(rows)}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
