package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Banner struct {
	bun.BaseModel `bun:"table:banners,alias:b"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ImageURL  string    `bun:"image_url,notnull" json:"image_url"`
	LinkURL   *string   `bun:"link_url" json:"link_url"`
	Alt       string    `bun:"alt,notnull" json:"alt"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
