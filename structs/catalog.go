package structs

import (
	"github.com/shopspring/decimal"
)

// ColorOption is one selectable product color.
type ColorOption struct {
	Name string `json:"name" validate:"required,max=100"`
	Hex  string `json:"hex" validate:"required,hexcolor"`
}

// UploadedFile is an uploaded form file read into memory. Size is the size
// the client declared; Data holds at most the configured limit plus one byte.
type UploadedFile struct {
	Filename string
	Size     int64
	Data     []byte
}

// CategoryInput is the editable field set of a category.
type CategoryInput struct {
	Name        string        `json:"name" validate:"required,max=255"`
	Color       string        `json:"color" validate:"required,max=255"`
	Description *string       `json:"description"`
	Image       *UploadedFile `json:"-"`
}

// BannerInput is the editable field set of a banner. IsActive is a pointer so
// that a missing flag is told apart from false.
type BannerInput struct {
	LinkURL   *string       `json:"link_url" validate:"omitempty,max=255"`
	Alt       string        `json:"alt" validate:"required,max=255"`
	IsActive  *bool         `json:"is_active" validate:"required"`
	SortOrder *int          `json:"sort_order"`
	Image     *UploadedFile `json:"-"`
}

type BrandInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ProductInput is the editable field set of a product. Prices carry at most
// two decimals and rating one; those bounds are checked by the product service.
type ProductInput struct {
	Name             string           `json:"name" validate:"required,max=255"`
	CategoryID       int64            `json:"category_id" validate:"required,gt=0"`
	BrandID          int64            `json:"brand_id" validate:"required,gt=0"`
	ShortDescription *string          `json:"short_description"`
	FullDescription  *string          `json:"full_description"`
	Price            *decimal.Decimal `json:"price" validate:"required"`
	OriginalPrice    *decimal.Decimal `json:"original_price"`
	Stock            int              `json:"stock" validate:"gte=0"`
	IsNew            bool             `json:"is_new"`
	Features         []string         `json:"features" validate:"dive,required,max=255"`
	Colors           []ColorOption    `json:"colors" validate:"dive"`
	StorageOptions   []string         `json:"storage_options" validate:"dive,required,max=50"`
	Rating           decimal.Decimal  `json:"rating"`
	ReviewCount      int              `json:"review_count" validate:"gte=0"`
	Images           []*UploadedFile  `json:"-"`
}

type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// PublicCategory is the storefront-safe projection of a category.
type PublicCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
	Color string `json:"color"`
}
