package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSphereVsSphereOverlap(t *testing.T) {
	a := NewRigidBody(Vec3{0, 0, 0}, 1, NewSphere(1.0))
	b := NewRigidBody(Vec3{1.5, 0, 0}, 1, NewSphere(1.0))

	m, ok := testPair(a, b)
	require.True(t, ok)
	require.InDelta(t, 0.5, m.Penetration, 1e-9)
	require.InDelta(t, -1.0, m.Normal.X, 1e-9)
}

func TestSphereVsSphereNoContact(t *testing.T) {
	a := NewRigidBody(Vec3{0, 0, 0}, 1, NewSphere(1.0))
	b := NewRigidBody(Vec3{5, 0, 0}, 1, NewSphere(1.0))

	_, ok := testPair(a, b)
	require.False(t, ok)
}

func TestSphereVsPlaneOrderAgnostic(t *testing.T) {
	ground := NewStaticPlane(Vec3{0, 1, 0}, 0)
	sphere := NewRigidBody(Vec3{0, 0.2, 0}, 1, NewSphere(0.25))

	m1, ok1 := testPair(sphere, ground)
	m2, ok2 := testPair(ground, sphere)

	require.True(t, ok1)
	require.True(t, ok2)
	require.InDelta(t, m1.Penetration, m2.Penetration, 1e-9)
	require.InDelta(t, 1.0, m1.Normal.Y, 1e-9)
	require.InDelta(t, -1.0, m2.Normal.Y, 1e-9)
}

func TestSphereVsPlaneSeparated(t *testing.T) {
	ground := NewStaticPlane(Vec3{0, 1, 0}, 0)
	sphere := NewRigidBody(Vec3{0, 5, 0}, 1, NewSphere(0.25))

	_, ok := testPair(sphere, ground)
	require.False(t, ok)
}

func TestAABBVsAABBAxisTieBreakPrefersX(t *testing.T) {
	// Overlaps identically on x and y; x must win since it is compared
	// first and the tie-break only replaces the incumbent axis on a
	// strictly smaller overlap.
	a := NewRigidBody(Vec3{0, 0, 0}, 1, NewAABB(Vec3{1, 1, 1}))
	b := NewRigidBody(Vec3{1.5, 1.5, 0.5}, 1, NewAABB(Vec3{1, 1, 1}))

	m, ok := testPair(a, b)
	require.True(t, ok)
	require.NotZero(t, m.Normal.X)
	require.Zero(t, m.Normal.Y)
	require.Zero(t, m.Normal.Z)
}

func TestAABBVsPlane(t *testing.T) {
	ground := NewStaticPlane(Vec3{0, 1, 0}, 0)
	box := NewDynamicBox(Vec3{0, 0.15, 0}, Vec3{0.3, 0.2, 0.25}, 2)

	m, ok := testPair(box, ground)
	require.True(t, ok)
	require.InDelta(t, 0.05, m.Penetration, 1e-9)
}

func TestSphereVsAABBFaceSelection(t *testing.T) {
	box := NewDynamicBox(Vec3{0, 0, 0}, Vec3{1, 1, 1}, 1)
	sphere := NewRigidBody(Vec3{1.2, 0, 0}, 1, NewSphere(0.5))

	m, ok := testPair(sphere, box)
	require.True(t, ok)
	require.InDelta(t, 1.0, m.Normal.X, 1e-9)
}
