package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/rampart/engine/math"
)

func TestOrbitCameraDefaults(t *testing.T) {
	c := NewOrbitCamera()
	assert.InDelta(t, float64(1.5*math.K_PI), float64(c.Theta()), 1e-6)
	assert.InDelta(t, float64(0.2*math.K_PI), float64(c.Phi()), 1e-6)
	assert.Equal(t, float32(15.0), c.Radius())
}

func TestOrbitCameraPhiStaysClamped(t *testing.T) {
	c := NewOrbitCamera()
	// Drag hard toward each pole and jitter: phi must stay in [0.1, pi-0.1].
	drags := []int32{5000, -12000, 37, -9, 20000, -20000, 1, 1, 1}
	for _, dy := range drags {
		c.Rotate(13, dy)
		assert.GreaterOrEqual(t, c.Phi(), float32(0.1))
		assert.LessOrEqual(t, c.Phi(), math.K_PI-0.1)
	}
}

func TestOrbitCameraRadiusStaysClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.Zoom(100000, 0)
	assert.Equal(t, float32(150.0), c.Radius())
	c.Zoom(0, 100000)
	assert.Equal(t, float32(5.0), c.Radius())

	// 0.05 units per pixel.
	c.Zoom(100, 0)
	assert.InDelta(t, 10.0, float64(c.Radius()), 1e-4)
}

func TestOrbitCameraRotateStep(t *testing.T) {
	c := NewOrbitCamera()
	theta := c.Theta()
	phi := c.Phi()

	// A quarter of a degree per pixel.
	c.Rotate(4, -8)
	assert.InDelta(t, float64(theta+math.DegToRad(1)), float64(c.Theta()), 1e-6)
	assert.InDelta(t, float64(phi-math.DegToRad(2)), float64(c.Phi()), 1e-6)
}

func TestOrbitCameraEyePosition(t *testing.T) {
	c := NewOrbitCamera()
	eye := c.EyePosition()

	r := c.Radius()
	want := math.NewVec3(
		r*math.Sin(c.Phi())*math.Cos(c.Theta()),
		r*math.Cos(c.Phi()),
		r*math.Sin(c.Phi())*math.Sin(c.Theta()),
	)
	assert.True(t, eye.Compare(want, 1e-5))
	assert.InDelta(t, float64(r), float64(eye.Length()), 1e-4)
}

func TestOrbitCameraViewMatrixIsInvertible(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 50; i++ {
		c.Rotate(97, -53)
		c.Zoom(11, 3)
		v := c.ViewMatrix()
		assert.True(t, v.Mul(v.Inverse()).Compare(math.NewMat4Identity(), 1e-3), "iteration %d", i)
	}
}
