package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 0.5}

	require.Equal(t, Vec3{5, 1, 3.5}, a.Add(b))
	require.Equal(t, Vec3{-3, 3, 2.5}, a.Sub(b))
}

func TestVec3ScaleDot(t *testing.T) {
	a := Vec3{1, 2, 3}

	require.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	require.Equal(t, 1*4+2*(-1)+3*0.5, a.Dot(Vec3{4, -1, 0.5}))
}

func TestVec3Length(t *testing.T) {
	a := Vec3{3, 4, 0}
	require.InDelta(t, 5.0, a.Length(), 1e-12)
}

func TestVec3NormalizeUnitLength(t *testing.T) {
	a := Vec3{2, 0, 0}
	n := a.Normalize()

	require.InDelta(t, 1.0, n.Length(), 1e-12)
	require.InDelta(t, 1.0, n.X, 1e-12)
}

func TestVec3NormalizeZeroIsIdentity(t *testing.T) {
	require.Equal(t, ZeroVec3, ZeroVec3.Normalize())
}

func TestVec3Negate(t *testing.T) {
	a := Vec3{1, -2, 3}
	require.Equal(t, Vec3{-1, 2, -3}, a.Negate())
}

func TestVec3NormalizeArbitraryDirection(t *testing.T) {
	a := Vec3{1, 1, 1}
	n := a.Normalize()
	expected := 1.0 / math.Sqrt(3)

	require.InDelta(t, expected, n.X, 1e-12)
	require.InDelta(t, expected, n.Y, 1e-12)
	require.InDelta(t, expected, n.Z, 1e-12)
}
