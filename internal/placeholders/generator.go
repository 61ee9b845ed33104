// Package placeholders draws procedural textures so the renderer runs
// without any art on disk.
package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"chosenoffset.com/gridcaster/internal/world/atlas"
)

// TileSize is the edge length of every placeholder texture
const TileSize = 64

// File names written by Save
const (
	ImageFile  = "placeholders.png"
	ConfigFile = "placeholders.json"
)

// ColorPalette defines the base colors of the placeholder textures
var ColorPalette = struct {
	Brick      color.RGBA
	Mortar     color.RGBA
	Stone      color.RGBA
	StoneSeam  color.RGBA
	Wood       color.RGBA
	WoodGrain  color.RGBA
	FloorLight color.RGBA
	FloorDark  color.RGBA
	Ceiling    color.RGBA
	CeilingRib color.RGBA
}{
	Brick:      color.RGBA{150, 60, 45, 255},
	Mortar:     color.RGBA{190, 180, 165, 255},
	Stone:      color.RGBA{120, 120, 125, 255},
	StoneSeam:  color.RGBA{70, 70, 75, 255},
	Wood:       color.RGBA{130, 90, 50, 255},
	WoodGrain:  color.RGBA{95, 62, 32, 255},
	FloorLight: color.RGBA{110, 105, 95, 255},
	FloorDark:  color.RGBA{80, 76, 70, 255},
	Ceiling:    color.RGBA{60, 65, 80, 255},
	CeilingRib: color.RGBA{40, 44, 56, 255},
}

// tileSpec places one texture in the generated atlas.
type tileSpec struct {
	name     string
	wallCode int // 0 for floor and ceiling
	draw     func() *image.RGBA
}

// Wall codes follow the cell values of the built-in map.
var layout = []tileSpec{
	{"brick", 1, CreateBrickTile},
	{"stone", 2, CreateStoneTile},
	{"wood", 3, CreateWoodTile},
	{atlas.FloorTile, 0, CreateFloorTile},
	{atlas.CeilingTile, 0, CreateCeilingTile},
}

const atlasColumns = 3

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBrickTile draws four courses of running-bond brick.
func CreateBrickTile() *image.RGBA {
	img := CreateSolidTile(ColorPalette.Mortar)
	const course = TileSize / 4
	const brick = TileSize / 2

	for y := 0; y < TileSize; y++ {
		row := y / course
		offset := (row % 2) * brick / 2
		for x := 0; x < TileSize; x++ {
			if y%course < 2 || (x+offset)%brick < 2 {
				continue
			}
			img.SetRGBA(x, y, jitter(ColorPalette.Brick, x, y, 1, 18))
		}
	}
	return img
}

// CreateStoneTile draws large irregular blocks with dark seams.
func CreateStoneTile() *image.RGBA {
	img := CreateSolidTile(ColorPalette.StoneSeam)
	const block = TileSize / 2

	for y := 0; y < TileSize; y++ {
		offset := 0
		if (y/block)%2 == 1 {
			offset = block / 3
		}
		for x := 0; x < TileSize; x++ {
			if y%block < 1 || (x+offset)%block < 1 {
				continue
			}
			img.SetRGBA(x, y, jitter(ColorPalette.Stone, x/2, y/2, 2, 30))
		}
	}
	return img
}

// CreateWoodTile draws vertical planks with grain lines.
func CreateWoodTile() *image.RGBA {
	img := CreateSolidTile(ColorPalette.Wood)
	const plank = TileSize / 4

	for x := 0; x < TileSize; x++ {
		for y := 0; y < TileSize; y++ {
			switch {
			case x%plank == 0:
				img.SetRGBA(x, y, Darken(ColorPalette.WoodGrain, 0.6))
			case (x+int(hash(x/plank, 0, 3)%5)+y/9)%5 == 0:
				img.SetRGBA(x, y, ColorPalette.WoodGrain)
			default:
				img.SetRGBA(x, y, jitter(ColorPalette.Wood, x, y/4, 3, 10))
			}
		}
	}
	return img
}

// CreateFloorTile draws a 2x2 checker of worn flagstones.
func CreateFloorTile() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	const half = TileSize / 2

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			base := ColorPalette.FloorLight
			if (x/half+y/half)%2 == 1 {
				base = ColorPalette.FloorDark
			}
			img.SetRGBA(x, y, jitter(base, x, y, 4, 12))
		}
	}
	return img
}

// CreateCeilingTile draws a panel with ribs along two edges.
func CreateCeilingTile() *image.RGBA {
	img := CreateSolidTile(ColorPalette.Ceiling)
	for i := 0; i < TileSize; i++ {
		for w := 0; w < 3; w++ {
			img.SetRGBA(i, w, ColorPalette.CeilingRib)
			img.SetRGBA(w, i, ColorPalette.CeilingRib)
		}
	}
	return img
}

// CreateAtlas creates a texture atlas from multiple tiles
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * TileSize
		y := (i / columns) * TileSize
		draw.Draw(img, image.Rect(x, y, x+TileSize, y+TileSize), tile, image.Point{}, draw.Src)
	}

	return img
}

// Config describes the generated atlas image.
func Config() *atlas.AtlasConfig {
	config := &atlas.AtlasConfig{
		Name:       "placeholders",
		ImagePath:  ImageFile,
		TileWidth:  TileSize,
		TileHeight: TileSize,
	}
	for i, def := range layout {
		tile := atlas.TileDefinition{
			Name:   def.name,
			AtlasX: i % atlasColumns,
			AtlasY: i / atlasColumns,
		}
		if def.wallCode > 0 {
			tile.Properties = map[string]interface{}{atlas.WallCodeProp: def.wallCode}
		}
		config.Tiles = append(config.Tiles, tile)
	}
	return config
}

// Image renders every placeholder texture into one atlas image.
func Image() *image.RGBA {
	tiles := make([]*image.RGBA, len(layout))
	for i, def := range layout {
		tiles[i] = def.draw()
	}
	return CreateAtlas(tiles, atlasColumns)
}

// Atlas builds the placeholder atlas in memory.
func Atlas() (*atlas.Atlas, error) {
	return atlas.New(Config(), Image())
}

// Textures returns the placeholder textures ready for the renderer.
func Textures() (*atlas.TextureSet, error) {
	a, err := Atlas()
	if err != nil {
		return nil, err
	}
	return atlas.FromAtlas(a)
}

// Save writes the atlas image and its JSON config into dir, returning the
// config path.
func Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := SavePNG(Image(), filepath.Join(dir, ImageFile)); err != nil {
		return "", fmt.Errorf("failed to write atlas image: %w", err)
	}

	data, err := json.MarshalIndent(Config(), "", "  ")
	if err != nil {
		return "", err
	}
	configPath := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write atlas config: %w", err)
	}

	return configPath, nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// jitter offsets a color by a repeatable amount in [-spread/2, spread/2).
func jitter(c color.RGBA, x, y int, seed uint32, spread int) color.RGBA {
	d := int(hash(x, y, seed)%uint32(spread)) - spread/2
	return color.RGBA{clamp(int(c.R) + d), clamp(int(c.G) + d), clamp(int(c.B) + d), c.A}
}

func hash(x, y int, seed uint32) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
