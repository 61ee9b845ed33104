package atlas

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
)

// ErrUnknownWallID is returned when a wall id has no texture.
var ErrUnknownWallID = errors.New("unknown wall id")

// Tile names and property keys that give an atlas its meaning.
const (
	FloorTile      = "floor"
	CeilingTile    = "ceiling"
	WallCodeProp = "wall_code" // 1-based map cell code drawn with this tile

	// MaxWallCode bounds wall_code, which sizes the wall lookup table.
	MaxWallCode = 255
)

// Texture is a square block of RGBA texels addressed by (u, v).
type Texture struct {
	size int
	pix  []uint8
}

// NewTexture copies a square image into a Texture.
func NewTexture(img *image.RGBA) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx() == 0 {
		return nil, fmt.Errorf("texture must be square and non-empty, got %dx%d", b.Dx(), b.Dy())
	}

	size := b.Dx()
	pix := make([]uint8, 0, size*size*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[start:start+size*4]...)
	}

	return &Texture{size: size, pix: pix}, nil
}

// Size returns the edge length in texels.
func (t *Texture) Size() int { return t.size }

// RGB returns the texel at column u, row v. Both are wrapped into range.
func (t *Texture) RGB(u, v int) (r, g, b uint8) {
	u, v = wrap(u, t.size), wrap(v, t.size)
	i := (v*t.size + u) * 4
	return t.pix[i], t.pix[i+1], t.pix[i+2]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// TextureSet is the checked lookup of every texture the renderer samples.
type TextureSet struct {
	tileSize int
	walls    []*Texture // indexed by zero-based wall id
	floor    *Texture
	ceiling  *Texture
}

// NewTextureSet builds a set from wall textures indexed by zero-based id.
// All textures must share one size.
func NewTextureSet(walls []*Texture, floor, ceiling *Texture) (*TextureSet, error) {
	if floor == nil || ceiling == nil {
		return nil, fmt.Errorf("floor and ceiling textures are required")
	}
	size := floor.Size()
	if ceiling.Size() != size {
		return nil, fmt.Errorf("ceiling texture is %dpx, floor is %dpx", ceiling.Size(), size)
	}
	for id, w := range walls {
		if w != nil && w.Size() != size {
			return nil, fmt.Errorf("wall texture %d is %dpx, expected %dpx", id, w.Size(), size)
		}
	}

	return &TextureSet{tileSize: size, walls: walls, floor: floor, ceiling: ceiling}, nil
}

// FromAtlas extracts the floor, ceiling and wall tiles of an atlas.
func FromAtlas(a *Atlas) (*TextureSet, error) {
	if a.Config.TileWidth != a.Config.TileHeight {
		return nil, fmt.Errorf("atlas %s tiles must be square, got %dx%d",
			a.Config.Name, a.Config.TileWidth, a.Config.TileHeight)
	}

	floor, err := textureByName(a, FloorTile)
	if err != nil {
		return nil, err
	}
	ceiling, err := textureByName(a, CeilingTile)
	if err != nil {
		return nil, err
	}

	byCode := make(map[int]*Texture)
	codes := make([]int, 0)
	for i := range a.Config.Tiles {
		tile := &a.Config.Tiles[i]
		code, ok, err := wallCode(tile)
		if err != nil {
			return nil, fmt.Errorf("atlas %s: %w", a.Config.Name, err)
		}
		if !ok {
			continue
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("duplicate %s %d in atlas %s", WallCodeProp, code, a.Config.Name)
		}
		tex, err := NewTexture(a.GetTileImage(tile))
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", tile.Name, err)
		}
		byCode[code] = tex
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("atlas %s defines no tiles with a %s property", a.Config.Name, WallCodeProp)
	}

	sort.Ints(codes)
	walls := make([]*Texture, codes[len(codes)-1])
	for _, code := range codes {
		walls[code-1] = byCode[code]
	}

	return NewTextureSet(walls, floor, ceiling)
}

// wallCode reads the tile's wall_code. ok is false when the tile has none.
func wallCode(tile *TileDefinition) (code int, ok bool, err error) {
	val, ok := tile.GetTileProperty(WallCodeProp)
	if !ok {
		return 0, false, nil
	}

	var f float64
	switch v := val.(type) {
	case float64: // JSON numbers
		f = v
	case int:
		f = float64(v)
	default:
		return 0, false, fmt.Errorf("tile %q: %s must be a number, got %T", tile.Name, WallCodeProp, val)
	}
	if f != math.Trunc(f) || f < 1 || f > MaxWallCode {
		return 0, false, fmt.Errorf("tile %q: %s must be an integer in [1, %d], got %v", tile.Name, WallCodeProp, MaxWallCode, val)
	}
	return int(f), true, nil
}

func textureByName(a *Atlas, name string) (*Texture, error) {
	img, err := a.GetTileImageByName(name)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", a.Config.Name, err)
	}
	tex, err := NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("tile %q: %w", name, err)
	}
	return tex, nil
}

// TileSize returns the shared edge length of all textures.
func (s *TextureSet) TileSize() int { return s.tileSize }

// Wall returns the texture for a zero-based wall id.
func (s *TextureSet) Wall(id int) (*Texture, error) {
	if id < 0 || id >= len(s.walls) || s.walls[id] == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWallID, id)
	}
	return s.walls[id], nil
}

// Floor returns the floor texture.
func (s *TextureSet) Floor() *Texture { return s.floor }

// Ceiling returns the ceiling texture.
func (s *TextureSet) Ceiling() *Texture { return s.ceiling }

// CheckWalls verifies that every listed wall id has a texture.
func (s *TextureSet) CheckWalls(ids []int) error {
	for _, id := range ids {
		if _, err := s.Wall(id); err != nil {
			return err
		}
	}
	return nil
}
