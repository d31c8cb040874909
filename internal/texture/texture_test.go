package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"oldschool-fx/internal/raster"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{10, 20, 30, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{250, 128, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tga":
		err = tga.Encode(f, img)
	default:
		_, err = f.WriteString("not an image")
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.bmp", "c.tga"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeImage(t, path, checker(4, 3))
			fb, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if fb.Width != 4 || fb.Height != 3 {
				t.Fatalf("size %dx%d, want 4x3", fb.Width, fb.Height)
			}
			if got := fb.At(0, 0); got != 0xFA8000 {
				t.Errorf("(0,0) = %06x, want fa8000", got)
			}
			if got := fb.At(1, 0); got != 0x0A141E {
				t.Errorf("(1,0) = %06x, want 0a141e", got)
			}
		})
	}

	bad := filepath.Join(dir, "bad.jpg")
	writeImage(t, bad, nil)
	if _, err := Load(bad); err == nil {
		t.Error("Load accepted a corrupt file")
	}
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestBuildIndexRank(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeImage(t, filepath.Join(dir, "Stone.bmp"), checker(2, 2))
	writeImage(t, filepath.Join(sub, "stone.png"), checker(2, 2))
	writeImage(t, filepath.Join(dir, "ball.tga"), checker(2, 2))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := BuildIndex(dir)
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	path, ok := idx.ResolvePath(`textures\STONE.JPG`)
	if !ok || filepath.Ext(path) != ".png" {
		t.Errorf("ResolvePath(stone) = %q, %v; want the png", path, ok)
	}
	if _, ok := idx.ResolvePath("notes"); ok {
		t.Error("non-image file was indexed")
	}
	if BuildIndex("").Len() != 0 {
		t.Error("empty dir should give an empty index")
	}
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "tile.png"), checker(8, 8))
	c := NewCache(BuildIndex(dir))

	tile, err := c.Texture("tile")
	if err != nil {
		t.Fatal(err)
	}
	if tile.Width != 8 {
		t.Errorf("tile width %d, want 8 from disk", tile.Width)
	}
	again, _ := c.Texture("tile")
	if again != tile {
		t.Error("second lookup was not served from the cache")
	}

	stone, err := c.Texture("stone")
	if err != nil {
		t.Fatal(err)
	}
	if stone.Width != 256 || stone.Height != 256 {
		t.Errorf("builtin stone is %dx%d, want 256x256", stone.Width, stone.Height)
	}

	if _, err := c.Texture("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Texture(nope) = %v, want ErrNotFound", err)
	}
	if _, err := NewCache(nil).Texture("ball"); err != nil {
		t.Errorf("nil index: %v", err)
	}
}

func TestBuiltinSizes(t *testing.T) {
	for _, name := range Names() {
		fb, err := Builtin(name)
		if err != nil {
			t.Fatalf("Builtin(%q): %v", name, err)
		}
		g := builtins[name]
		if fb.Width != g.w || fb.Height != g.h || len(fb.Pix) != g.w*g.h {
			t.Errorf("%s: %dx%d, want %dx%d", name, fb.Width, fb.Height, g.w, g.h)
		}
	}
	if _, err := Builtin("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Builtin(nope) = %v, want ErrNotFound", err)
	}
}

func TestSized(t *testing.T) {
	shared, _ := Procedural{}.Texture("ball")
	same, err := Sized(Procedural{}, "ball", shared.Width, shared.Height)
	if err != nil {
		t.Fatal(err)
	}
	same.Pix[0] = 1
	if fresh, _ := (Procedural{}).Texture("ball"); fresh.Pix[0] == 1 {
		t.Error("Sized returned shared pixels")
	}

	fb, err := Sized(Procedural{}, "emblem", 33, 7)
	if err != nil {
		t.Fatal(err)
	}
	if fb.Width != 33 || fb.Height != 7 {
		t.Errorf("Sized = %dx%d, want 33x7", fb.Width, fb.Height)
	}

	if _, err := Sized(stub{}, "x", 4, 4); err == nil {
		t.Error("empty texture was accepted")
	}
}

type stub struct{}

func (stub) Texture(string) (*raster.FrameBuffer, error) {
	return raster.NewFrameBuffer(0, 0), nil
}
