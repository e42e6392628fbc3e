package database

import (
	"context"
	"fmt"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// SeedProduct is a demo product whose category and brand are referenced by slug.
type SeedProduct struct {
	Product      tables.Product
	CategorySlug string
	BrandSlug    string
}

// SeedData is the demo catalog used to populate development databases.
type SeedData struct {
	Categories []tables.Category
	Brands     []tables.Brand
	Products   []SeedProduct
	Banners    []tables.Banner
}

func strPtr(s string) *string { return &s }

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func oldPrice(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// DemoCatalog returns a fresh copy of the demo catalog.
func DemoCatalog() SeedData {
	unsplash := func(id string) string {
		return "https://images.unsplash.com/" + id + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80"
	}

	return SeedData{
		Categories: []tables.Category{
			{Name: "New Phones", Slug: "new-phones", Image: unsplash("photo-1604671368394-2240d0b1bb6c"), Color: "bg-sky-100 dark:bg-sky-700/40"},
			{Name: "Used Phones", Slug: "used-phones", Image: unsplash("photo-1610792516307-ea5acd9c3b00"), Color: "bg-green-100 dark:bg-green-700/40"},
			{Name: "Repair Service", Slug: "repairs", Image: "https://www.diyfixtool.com/cdn/shop/articles/05qOG26wzVLHG2nlWpelvCF-1..v1683302270_jpg_JPEG_1600x900_71.png?v=1701080915", Color: "bg-orange-100 dark:bg-orange-700/40"},
			{Name: "Accessories", Slug: "accessories", Image: unsplash("photo-1505740420928-5e560c06d30e"), Color: "bg-indigo-100 dark:bg-indigo-700/40"},
			{Name: "Smartphones", Slug: "smartphones", Image: unsplash("photo-1593642532973-d31b6557fa68"), Color: "bg-yellow-100 dark:bg-yellow-700/40"},
			{Name: "Tablets", Slug: "tablets", Image: unsplash("photo-1585079542156-2755d9c8a094"), Color: "bg-purple-100 dark:bg-purple-700/40"},
		},
		Brands: []tables.Brand{
			{Name: "Apple", Slug: "apple"},
			{Name: "Samsung", Slug: "samsung"},
			{Name: "Google", Slug: "google"},
			{Name: "Xiaomi", Slug: "xiaomi"},
			{Name: "OnePlus", Slug: "oneplus"},
			{Name: "Oppo", Slug: "oppo"},
		},
		Products: []SeedProduct{
			{CategorySlug: "new-phones", BrandSlug: "apple", Product: tables.Product{
				Name:             "iPhone 15 Pro - 256GB",
				Slug:             "iphone-15-pro-256gb",
				ShortDescription: strPtr("Natural Titanium finish, A17 Pro chip, and Pro camera system."),
				FullDescription:  strPtr("Experience the future with the iPhone 15 Pro. Powered by the A17 Pro chip, it delivers unparalleled performance. The advanced pro-grade camera system captures breathtaking detail."),
				Price:            price("1099.00"),
				OriginalPrice:    oldPrice("1199.00"),
				Stock:            50,
				IsNew:            true,
				Images:           []string{"/images/products/iphone15pro.png", "/images/products/iphone15pro-2.png"},
				Features:         []string{`6.1" Super Retina XDR`, "A17 Pro Chip", "USB-C Connectivity", "5x Optical Zoom"},
				Colors:           []structs.ColorOption{{Name: "Natural Titanium", Hex: "#8A8A8D"}, {Name: "Blue Titanium", Hex: "#2A3C4B"}},
				StorageOptions:   []string{"128GB", "256GB", "512GB", "1TB"},
				Rating:           price("4.9"),
				ReviewCount:      180,
			}},
			{CategorySlug: "new-phones", BrandSlug: "samsung", Product: tables.Product{
				Name:             "Samsung Galaxy S24 Ultra - 512GB",
				Slug:             "samsung-galaxy-s24-ultra-512gb",
				ShortDescription: strPtr("Galaxy AI is here. Search, chat, and create like never before."),
				FullDescription:  strPtr("The Galaxy S24 Ultra sets the standard for premium Android devices with its integrated S Pen, AI-powered features, and a stunning 200MP main camera."),
				Price:            price("1299.00"),
				OriginalPrice:    oldPrice("1399.00"),
				Stock:            35,
				IsNew:            true,
				Images:           []string{"/images/products/s24ultra.png"},
				Features:         []string{`6.8" Dynamic AMOLED 2X`, "Integrated S Pen", "200MP Camera", "AI Features"},
				Colors:           []structs.ColorOption{{Name: "Titanium Gray", Hex: "#8D949A"}, {Name: "Titanium Violet", Hex: "#9370DB"}},
				StorageOptions:   []string{"256GB", "512GB", "1TB"},
				Rating:           price("4.8"),
				ReviewCount:      155,
			}},
			{CategorySlug: "used-phones", BrandSlug: "apple", Product: tables.Product{
				Name:             "Certified Pre-Owned iPhone 13 - 128GB",
				Slug:             "used-iphone-13-128gb",
				ShortDescription: strPtr("Excellent condition, fully unlocked. Includes 1-year YDL warranty."),
				FullDescription:  strPtr("A great value deal. The iPhone 13 features the powerful A15 Bionic chip, a beautiful Super Retina XDR display, and an advanced dual-camera system. All our pre-owned devices undergo rigorous testing."),
				Price:            price("499.00"),
				OriginalPrice:    oldPrice("699.00"),
				Stock:            20,
				Images:           []string{"/images/products/iphone13.png"},
				Features:         []string{`6.1" Super Retina XDR`, "A15 Bionic Chip", "Cinematic Mode"},
				Colors:           []structs.ColorOption{{Name: "Midnight", Hex: "#1C1C1E"}},
				StorageOptions:   []string{"128GB", "256GB"},
				Rating:           price("4.7"),
				ReviewCount:      98,
			}},
			{CategorySlug: "accessories", BrandSlug: "samsung", Product: tables.Product{
				Name:             "Fast Charge Power Bank 20000mAh",
				Slug:             "powerbank-20000mah-fastcharge",
				ShortDescription: strPtr("USB-C PD, charges phones and tablets quickly on the go."),
				FullDescription:  strPtr("Never run out of power with this high-capacity 20000mAh power bank. Features USB-C Power Delivery for fast charging your devices."),
				Price:            price("39.99"),
				OriginalPrice:    oldPrice("49.99"),
				Stock:            150,
				IsNew:            true,
				Images:           []string{"/images/products/powerbank.png"},
				Features:         []string{"20000mAh Capacity", "USB-C Power Delivery", "Dual Device Charging"},
				Colors:           []structs.ColorOption{{Name: "Black", Hex: "#000000"}},
				StorageOptions:   []string{},
				Rating:           price("4.5"),
				ReviewCount:      75,
			}},
		},
		Banners: []tables.Banner{
			{ImageURL: "/images/YDL-BANNER.jpg", LinkURL: strPtr("/anniversary-sale"), Alt: "12 Years Jumia Anniversary Sale", IsActive: true, SortOrder: 1},
			{ImageURL: "/images/YDLBanner2.png", LinkURL: strPtr("/summer-collection"), Alt: "Summer Collection Now Available", IsActive: true, SortOrder: 2},
			{ImageURL: "/images/banner.png", LinkURL: strPtr("/tech-deals"), Alt: "Exclusive Tech Deals", IsActive: false, SortOrder: 3},
		},
	}
}

// Seed upserts the demo catalog. Categories, brands and products are matched
// by slug; banners are only inserted into an empty table.
func Seed(ctx context.Context, db bun.IDB) error {
	data := DemoCatalog()
	now := time.Now()

	return Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		categoryIDs := make(map[string]int64, len(data.Categories))
		for i := range data.Categories {
			c := &data.Categories[i]
			c.CreatedAt, c.UpdatedAt = now, now
			if _, err := Upsert(ctx, tx, c, "slug", "name", "image", "color", "updated_at"); err != nil {
				return fmt.Errorf("seed category %s: %w", c.Slug, err)
			}
			categoryIDs[c.Slug] = c.ID
		}

		brandIDs := make(map[string]int64, len(data.Brands))
		for i := range data.Brands {
			b := &data.Brands[i]
			b.CreatedAt, b.UpdatedAt = now, now
			if _, err := Upsert(ctx, tx, b, "slug", "name", "updated_at"); err != nil {
				return fmt.Errorf("seed brand %s: %w", b.Slug, err)
			}
			brandIDs[b.Slug] = b.ID
		}

		for i := range data.Products {
			sp := &data.Products[i]
			p := &sp.Product
			p.CategoryID = categoryIDs[sp.CategorySlug]
			p.BrandID = brandIDs[sp.BrandSlug]
			p.CreatedAt, p.UpdatedAt = now, now
			_, err := Upsert(ctx, tx, p, "slug",
				"name", "category_id", "brand_id", "short_description", "full_description",
				"price", "original_price", "stock", "is_new", "images", "features", "colors",
				"storage_options", "rating", "review_count", "updated_at")
			if err != nil {
				return fmt.Errorf("seed product %s: %w", p.Slug, err)
			}
		}

		hasBanners, err := Query[tables.Banner](tx).Exists(ctx)
		if err != nil {
			return err
		}
		if hasBanners {
			return nil
		}
		for i := range data.Banners {
			b := &data.Banners[i]
			b.CreatedAt, b.UpdatedAt = now, now
			if _, err := Query[tables.Banner](tx).Insert(ctx, b); err != nil {
				return fmt.Errorf("seed banner %q: %w", b.Alt, err)
			}
		}
		return nil
	})
}
