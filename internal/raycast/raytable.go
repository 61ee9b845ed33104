package raycast

import (
	"fmt"
	"math"
)

// Ray is the precomputed data for one screen column.
type Ray struct {
	// Offset is the tangent-plane y coordinate of the ray for heading 0.
	Offset float64
	// Distortion scales the Euclidean hit distance to the view-plane distance.
	Distortion float64
}

// RayTable holds one Ray per buffer column, left to right.
type RayTable struct {
	rays []Ray
}

// NewRayTable precomputes the rays for a buffer of the given width.
// fov is the horizontal field of view in radians and must lie in (0, pi).
func NewRayTable(fov float64, width int) (*RayTable, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid ray table width: %d", width)
	}
	if fov <= 0 || fov >= math.Pi {
		return nil, fmt.Errorf("field of view %.4f rad outside (0, pi)", fov)
	}

	half := math.Tan(fov / 2)
	rays := make([]Ray, width)
	for i := range rays {
		offset := half - 2*half*float64(i+1)/float64(width)
		rays[i] = Ray{
			Offset:     offset,
			Distortion: 1 / math.Sqrt(1+offset*offset),
		}
	}

	return &RayTable{rays: rays}, nil
}

// Len returns the number of columns.
func (t *RayTable) Len() int { return len(t.rays) }

// At returns the ray for column i.
func (t *RayTable) At(i int) Ray { return t.rays[i] }

// Center returns the column whose ray points straight along the heading
// when the width is even.
func (t *RayTable) Center() int { return (len(t.rays) - 1) / 2 }

// Direction rotates the ray (1, offset) by heading and returns it as a unit vector.
func Direction(heading, offset float64) (dx, dy float64) {
	base := math.Sqrt(1 + offset*offset)
	rx, ry := 1/base, offset/base
	sin, cos := math.Sincos(heading)
	return cos*rx - sin*ry, sin*rx + cos*ry
}
