package assets

import (
	"io/fs"
	"testing"

	"github.com/tomz197/wrangler/internal/loop/config"
)

func TestEmbeddedAssetsPresent(t *testing.T) {
	fsys, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, p := range config.AssetPaths() {
		if _, err := fs.Stat(fsys, p); err != nil {
			t.Errorf("embedded asset %s: %v", p, err)
		}
	}
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()
	fsys, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := fs.Stat(fsys, "cat.png"); err == nil {
		t.Error("empty directory reports cat.png")
	}
}
