package tables

import (
	"storefront_server/structs"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID               int64                 `bun:"id,pk,autoincrement" json:"id"`
	Name             string                `bun:"name,notnull" json:"name"`
	Slug             string                `bun:"slug,notnull,unique" json:"slug"`
	CategoryID       int64                 `bun:"category_id,notnull" json:"category_id"`
	BrandID          int64                 `bun:"brand_id,notnull" json:"brand_id"`
	ShortDescription *string               `bun:"short_description" json:"short_description"`
	FullDescription  *string               `bun:"full_description" json:"full_description"`
	Price            decimal.Decimal       `bun:"price,type:numeric(8,2),notnull" json:"price"`
	OriginalPrice    decimal.NullDecimal   `bun:"original_price,type:numeric(8,2)" json:"original_price"`
	Stock            int                   `bun:"stock,notnull,default:0" json:"stock"`
	IsNew            bool                  `bun:"is_new,notnull,default:false" json:"is_new"`
	Images           []string              `bun:"images,type:jsonb,notnull" json:"images"` // ordered storage paths
	Features         []string              `bun:"features,type:jsonb" json:"features"`
	Colors           []structs.ColorOption `bun:"colors,type:jsonb" json:"colors"`
	StorageOptions   []string              `bun:"storage_options,type:jsonb" json:"storage_options"`
	Rating           decimal.Decimal       `bun:"rating,type:numeric(2,1),notnull,default:0" json:"rating"`
	ReviewCount      int                   `bun:"review_count,notnull,default:0" json:"review_count"`
	CreatedAt        time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Brand    *Brand    `bun:"rel:belongs-to,join:brand_id=id" json:"brand,omitempty"`
}
