package models

// Item is a recyclable-material category of the catalogue. Items are seeded by
// migrations and never change at runtime.
type Item struct {
	ID    int64
	Title string
	// Image is the stored icon file name, resolved to a URL by the HTTP layer.
	Image string
}
