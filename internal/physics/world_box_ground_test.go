package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWorldBoxRestsOnGround drops a box with substeps enabled and checks
// it settles at rest on the ground with bounded penetration throughout.
func TestWorldBoxRestsOnGround(t *testing.T) {
	world := NewWorld()
	world.SetSubsteps(4)
	world.AddBody(NewStaticPlane(Vec3{0, 1, 0}, 0))

	hy := 0.2
	box := NewDynamicBox(Vec3{0, 2, 0}, Vec3{0.3, hy, 0.25}, 2)
	box.SetRestitution(0.3)
	world.AddBody(box)

	const renderDt = 1.0 / 60.0
	maxPenetration := 0.0
	steps := int(5.0 / renderDt)

	for i := 0; i < steps; i++ {
		world.Update(renderDt)
		pen := hy - box.Position.Y
		if pen > maxPenetration {
			maxPenetration = pen
		}
	}

	require.GreaterOrEqual(t, box.Position.Y, hy-1e-3)
	require.Less(t, maxPenetration, 2e-3)
}
