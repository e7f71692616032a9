package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func TestMat4MulIdentity(t *testing.T) {
	m := NewMat4Translation(NewVec3(1, 2, 3)).Mul(NewMat4EulerY(0.7))
	assert.True(t, m.Mul(NewMat4Identity()).Compare(m, tolerance))
	assert.True(t, NewMat4Identity().Mul(m).Compare(m, tolerance))
}

func TestMat4Transposed(t *testing.T) {
	m := Mat4{}
	for i := range m.Data {
		m.Data[i] = float32(i)
	}
	tr := m.Transposed()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.Equal(t, m.Data[row*4+col], tr.Data[col*4+row])
		}
	}
	assert.True(t, tr.Transposed().Compare(m, 0))
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := NewMat4EulerY(1.1).Mul(NewMat4Translation(NewVec3(-4, 7, 2)))
	inv := m.Inverse()
	assert.True(t, m.Mul(inv).Compare(NewMat4Identity(), tolerance))
	assert.True(t, inv.Mul(m).Compare(NewMat4Identity(), tolerance))
}

func TestMat4InverseSingularReturnsIdentity(t *testing.T) {
	// Zero matrix has determinant zero.
	m := Mat4{}
	assert.True(t, m.Inverse().Compare(NewMat4Identity(), 0))
}

func TestViewProjectionInverses(t *testing.T) {
	view := NewMat4LookAt(NewVec3(10, 12, -8), NewVec3Zero(), NewVec3Up())
	proj := NewMat4Perspective(K_QUARTER_PI, 1280.0/720.0, 1.0, 1000.0)

	require.True(t, view.Mul(view.Inverse()).Compare(NewMat4Identity(), tolerance))
	require.True(t, proj.Mul(proj.Inverse()).Compare(NewMat4Identity(), tolerance))

	viewProj := view.Mul(proj)
	assert.True(t, viewProj.Mul(viewProj.Inverse()).Compare(NewMat4Identity(), tolerance))
}

func TestLookAtBasisIsOrthonormal(t *testing.T) {
	v := NewMat4LookAt(NewVec3(3, 5, 7), NewVec3Zero(), NewVec3Up())
	x := NewVec3(v.Data[0], v.Data[4], v.Data[8])
	y := NewVec3(v.Data[1], v.Data[5], v.Data[9])
	z := NewVec3(v.Data[2], v.Data[6], v.Data[10])

	assert.InDelta(t, 1.0, float64(x.Length()), tolerance)
	assert.InDelta(t, 1.0, float64(y.Length()), tolerance)
	assert.InDelta(t, 1.0, float64(z.Length()), tolerance)
	assert.InDelta(t, 0.0, float64(x.Dot(y)), tolerance)
	assert.InDelta(t, 0.0, float64(y.Dot(z)), tolerance)
	assert.InDelta(t, 0.0, float64(x.Dot(z)), tolerance)
}

func TestVec3Cross(t *testing.T) {
	c := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0))
	assert.True(t, c.Compare(NewVec3(0, 0, 1), tolerance))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.1), Clamp(float32(-2.0), 0.1, K_PI-0.1))
	assert.Equal(t, K_PI-0.1, Clamp(K_PI, 0.1, K_PI-0.1))
	assert.Equal(t, 42, Clamp(42, 0, 100))
}

func TestDegRadRoundTrip(t *testing.T) {
	assert.InDelta(t, 90.0, float64(RadToDeg(DegToRad(90))), tolerance)
	assert.InDelta(t, float64(K_HALF_PI), float64(DegToRad(90)), tolerance)
}
