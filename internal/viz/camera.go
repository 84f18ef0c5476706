package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Obliquity is the tilt of the ecliptic against the equatorial frame of the
// ephemeris tables, in radians.
const Obliquity = 23.4392911 * math.Pi / 180

// Camera is an orthographic view onto the x-y plane after rotating the
// scene about the x, y and z axes in that order. Scale maps one AU to
// sub-pixels at zoom 1.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Scale            float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1, Scale: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(1000, c.Zoom*1.25) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.01, c.Zoom/1.25) }

// Ecliptic reports whether the view is rotated into the ecliptic plane.
func (c *Camera) Ecliptic() bool { return c.RotX == -Obliquity }

// ToggleEcliptic switches between the equatorial and the ecliptic plane.
func (c *Camera) ToggleEcliptic() {
	if c.Ecliptic() {
		c.RotX = 0
	} else {
		c.RotX = -Obliquity
	}
}

// Fit sets Scale so that a radius of extent fills the smaller half of a
// sw x sh sub-pixel screen.
func (c *Camera) Fit(extent float64, sw, sh int) {
	if !(extent > 0) || math.IsInf(extent, 0) {
		extent = 1
	}
	half := math.Min(float64(sw)/2, float64(sh)/2)
	c.Scale = 0.9 * half / extent
	c.Zoom = 1
}

// Rotate applies the camera rotation to p.
func (c *Camera) Rotate(p dynamo.Vector) dynamo.Vector {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps p to sub-pixel coordinates on a sw x sh screen centered on
// the origin. Screen y grows downwards.
func (c *Camera) Project(p dynamo.Vector, sw, sh int) (x, y int, visible bool) {
	if !p.IsFinite() {
		return 0, 0, false
	}
	rot := c.Rotate(p)
	k := c.Scale * c.Zoom
	fx := rot.X*k + float64(sw)/2
	fy := -rot.Y*k + float64(sh)/2
	if fx < 0 || fy < 0 || fx >= float64(sw) || fy >= float64(sh) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
