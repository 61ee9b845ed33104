package raycast

import "fmt"

// FullBrightness is the tint applied at or below the near distance.
const FullBrightness = 255

// Shading maps view distance to a brightness tint in [Floor, 255].
type Shading struct {
	Near  float64 // distance at and below which surfaces are fully lit
	Far   float64 // distance at and beyond which surfaces get Floor
	Floor uint8   // minimum brightness
}

// Validate checks that the thresholds are ordered.
func (s Shading) Validate() error {
	if s.Near <= 0 {
		return fmt.Errorf("near distance must be positive, got %.3f", s.Near)
	}
	if s.Far <= s.Near {
		return fmt.Errorf("far distance %.3f must exceed near distance %.3f", s.Far, s.Near)
	}
	return nil
}

// Brightness returns the tint for a surface at the given distance.
// Walls, floors and ceilings must all use it so the horizon has no seam.
func (s Shading) Brightness(distance float64) uint8 {
	switch {
	case distance <= s.Near:
		return FullBrightness
	case distance >= s.Far:
		return s.Floor
	}
	span := float64(s.Floor) - FullBrightness
	return uint8((distance-s.Near)*span/(s.Far-s.Near) + FullBrightness)
}

// tint scales one 8-bit channel by a brightness value.
func tint(c, brightness uint8) uint8 {
	return uint8(uint16(c) * uint16(brightness) / FullBrightness)
}
