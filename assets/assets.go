// Package assets embeds the icons of the seeded item catalogue.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed icons/*.svg
var icons embed.FS

// Icons returns the catalogue icons keyed by the file names stored in
// items.image.
func Icons() fs.FS {
	sub, err := fs.Sub(icons, "icons")
	if err != nil {
		panic(err) // embedded path is fixed
	}
	return sub
}
