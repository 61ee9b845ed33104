// Package movement advances the camera through the grid with axis-sliding
// collision response.
package movement

import (
	"math"
	"time"
)

// Collider answers whether a continuous world point lies inside a wall.
type Collider interface {
	Solid(x, y float64) bool
}

// Camera is the continuous camera state. Only Integrator.Step mutates it.
type Camera struct {
	X, Y    float64
	Heading float64 // radians, counter-clockwise from +x
	Speed   float64 // forward speed command, grid units per second
	Turn    float64 // turn rate command, radians per second
}

// Outcome reports how the last step resolved against walls.
type Outcome int

const (
	Idle    Outcome = iota // no forward motion requested
	Moved                  // full 2D move accepted
	SlidX                  // only the X component was accepted
	SlidY                  // only the Y component was accepted
	Blocked                // stuck in a corner, position unchanged
)

func (o Outcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case Moved:
		return "moved"
	case SlidX:
		return "slid-x"
	case SlidY:
		return "slid-y"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Integrator applies one Euler step per frame.
type Integrator struct {
	world     Collider
	clearance float64
}

// NewIntegrator keeps the camera at least clearance units from walls along
// the tested axes.
func NewIntegrator(world Collider, clearance float64) *Integrator {
	return &Integrator{world: world, clearance: clearance}
}

// Step moves cam along its heading by Speed*dt, then turns it by Turn*dt.
func (in *Integrator) Step(cam *Camera, dt time.Duration) Outcome {
	secs := dt.Seconds()
	outcome := in.move(cam, secs)
	cam.Heading = normalize(cam.Heading + cam.Turn*secs)
	return outcome
}

func (in *Integrator) move(cam *Camera, secs float64) Outcome {
	dist := cam.Speed * secs
	if dist == 0 {
		return Idle
	}

	sin, cos := math.Sincos(cam.Heading)
	dir := sign(cam.Speed) // walking backwards flips the leading edge
	sx := sign(cos) * dir
	sy := sign(sin) * dir

	nx := cam.X + cos*dist
	ny := cam.Y + sin*dist

	c := in.clearance
	xFront, xBack := nx+sx*c, nx-sx*c
	yFront, yBack := ny+sy*c, ny-sy*c

	switch {
	case in.free(xFront, yFront) && in.free(xBack, yFront) && in.free(xFront, yBack):
		cam.X, cam.Y = nx, ny
		return Moved
	case in.free(xFront, cam.Y+c) && in.free(xFront, cam.Y-c):
		cam.X = nx
		return SlidX
	case in.free(cam.X+c, yFront) && in.free(cam.X-c, yFront):
		cam.Y = ny
		return SlidY
	}
	return Blocked
}

func (in *Integrator) free(x, y float64) bool {
	return !in.world.Solid(x, y)
}

func normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
