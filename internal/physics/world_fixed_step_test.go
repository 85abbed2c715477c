package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// runFallOntoGround simulates a falling sphere onto a large static box
// "ground" for simTime seconds and returns the maximum penetration
// observed. A tiny position-correction slop is used so the measurement
// reflects real penetration rather than the slop budget.
func runFallOntoGround(fixedTimeStep float64, substeps int, simTime float64) float64 {
	world := NewWorld()
	world.SetFixedTimeStep(fixedTimeStep)
	world.SetSubsteps(substeps)
	world.SetPositionCorrection(0.95, 1e-5)

	ground := NewDynamicBox(Vec3{0, 0.5, 0}, Vec3{50, 0.5, 50}, 0)
	world.AddBody(ground)

	sphere := NewDynamicSphere(Vec3{0, 6.0, 0}, 0.25, 1)
	sphere.SetRestitution(0)
	world.AddBody(sphere)

	maxPen := 0.0
	steps := int(simTime / fixedTimeStep)
	for i := 0; i < steps; i++ {
		world.Update(fixedTimeStep)
		pen := (ground.Position.Y + 0.5 + sphere.shape.Radius()) - sphere.Position.Y
		if pen > maxPen {
			maxPen = pen
		}
	}
	return maxPen
}

// TestSubstepsReducePenetration checks that running more, smaller
// substeps per fixed step measurably reduces maximum penetration depth
// compared to a single-substep baseline at a coarser fixed step.
func TestSubstepsReducePenetration(t *testing.T) {
	maxPenBaseline := runFallOntoGround(1.0/30.0, 1, 3.0)
	maxPenSubsteps := runFallOntoGround(1.0/120.0, 4, 3.0)

	require.LessOrEqual(t, maxPenSubsteps, maxPenBaseline*0.95+2e-6)
	require.Less(t, maxPenSubsteps, 2e-5)
}
