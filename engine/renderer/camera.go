package renderer

import (
	"github.com/spaghettifunk/rampart/engine/math"
)

// Orbit limits: phi stays off the poles so the view basis never degenerates,
// radius keeps the camera outside the scene and inside the far plane.
const (
	minPhi    = 0.1
	maxPhi    = math.K_PI - 0.1
	minRadius = 5.0
	maxRadius = 150.0
)

// OrbitCamera circles the scene origin on a sphere described by spherical
// coordinates. Mutated only by the driving thread between frames.
type OrbitCamera struct {
	theta  float32
	phi    float32
	radius float32
}

// NewOrbitCamera starts at the canonical viewing pose.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		theta:  1.5 * math.K_PI,
		phi:    0.2 * math.K_PI,
		radius: 15.0,
	}
}

// Rotate applies a mouse drag: each pixel corresponds to a quarter of a
// degree. Phi is clamped away from the poles.
func (c *OrbitCamera) Rotate(dx, dy int32) {
	c.theta += math.DegToRad(0.25 * float32(dx))
	c.phi += math.DegToRad(0.25 * float32(dy))
	c.phi = math.Clamp(c.phi, minPhi, maxPhi)
}

// Zoom applies a mouse drag along the view ray: each pixel corresponds to
// 0.05 units in the scene.
func (c *OrbitCamera) Zoom(dx, dy int32) {
	c.radius += 0.05*float32(dx) - 0.05*float32(dy)
	c.radius = math.Clamp(c.radius, minRadius, maxRadius)
}

// EyePosition converts the spherical coordinates to Cartesian.
func (c *OrbitCamera) EyePosition() math.Vec3 {
	return math.NewVec3(
		c.radius*math.Sin(c.phi)*math.Cos(c.theta),
		c.radius*math.Cos(c.phi),
		c.radius*math.Sin(c.phi)*math.Sin(c.theta),
	)
}

// ViewMatrix looks from the eye position at the origin.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.NewMat4LookAt(c.EyePosition(), math.NewVec3Zero(), math.NewVec3Up())
}

// Theta returns the azimuth angle in radians.
func (c *OrbitCamera) Theta() float32 { return c.theta }

// Phi returns the polar angle in radians.
func (c *OrbitCamera) Phi() float32 { return c.phi }

// Radius returns the orbit distance.
func (c *OrbitCamera) Radius() float32 { return c.radius }
