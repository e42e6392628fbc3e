package lib

import "github.com/gosimple/slug"

// Slugify derives the URL slug of a display name, e.g. "iPhone 15 Pro - 256GB" becomes "iphone-15-pro-256gb".
func Slugify(name string) string {
	return slug.Make(name)
}
