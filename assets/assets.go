// Package assets embeds the default sprites and sounds.
package assets

import (
	"embed"
	"io/fs"
	"os"
)

// FS holds the res/ directory: sprites for every entity and the capture sound.
//
//go:embed res
var FS embed.FS

// Open returns the asset root: dir on disk when set, the embedded res/ otherwise.
func Open(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(FS, "res")
}
