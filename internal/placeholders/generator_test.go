package placeholders

import (
	"bytes"
	"path/filepath"
	"testing"

	"chosenoffset.com/gridcaster/internal/world/atlas"
)

func TestTexturesCoverBuiltInWallCodes(t *testing.T) {
	set, err := Textures()
	if err != nil {
		t.Fatalf("Textures failed: %v", err)
	}

	if set.TileSize() != TileSize {
		t.Errorf("Expected tile size %d, got %d", TileSize, set.TileSize())
	}
	if err := set.CheckWalls([]int{0, 1, 2}); err != nil {
		t.Errorf("Expected wall ids 0-2 to have textures, got %v", err)
	}
	if _, err := set.Wall(3); err == nil {
		t.Error("Expected no texture for wall id 3")
	}
}

func TestTilesAreDistinct(t *testing.T) {
	tiles := map[string][]byte{}
	for _, def := range layout {
		img := def.draw()
		if img.Bounds().Dx() != TileSize || img.Bounds().Dy() != TileSize {
			t.Errorf("Tile %s: expected %dx%d, got %v", def.name, TileSize, TileSize, img.Bounds())
		}
		for name, pix := range tiles {
			if bytes.Equal(pix, img.Pix) {
				t.Errorf("Tiles %s and %s are identical", name, def.name)
			}
		}
		tiles[def.name] = img.Pix
	}
}

func TestTilesAreRepeatable(t *testing.T) {
	if !bytes.Equal(CreateStoneTile().Pix, CreateStoneTile().Pix) {
		t.Error("Expected the stone tile to be drawn identically twice")
	}
}

func TestSaveRoundTripsThroughLoader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "art")

	configPath, err := Save(dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := atlas.LoadAtlas(configPath)
	if err != nil {
		t.Fatalf("LoadAtlas failed: %v", err)
	}
	if !bytes.Equal(loaded.Image.Pix, Image().Pix) {
		t.Error("Expected the decoded atlas image to match the generated one")
	}

	set, err := atlas.FromAtlas(loaded)
	if err != nil {
		t.Fatalf("FromAtlas failed: %v", err)
	}
	if err := set.CheckWalls([]int{0, 1, 2}); err != nil {
		t.Errorf("Expected wall codes to survive JSON, got %v", err)
	}
}

func TestDarken(t *testing.T) {
	c := Darken(ColorPalette.Brick, 0.5)
	if c.R != 75 || c.G != 30 || c.A != 255 {
		t.Errorf("Expected (75, 30, _, 255), got %v", c)
	}
}
