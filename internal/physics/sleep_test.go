package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBallSleepsThenWakes drops a ball onto the ground, checks it falls
// asleep within a bounded time, then wakes it, lowers friction, and
// checks it slides a meaningful distance before re-settling.
func TestBallSleepsThenWakes(t *testing.T) {
	world := NewWorld()
	world.SetSubsteps(4)
	world.SetSolverIterations(6)
	world.SetSleepVelocityThreshold(0.03)
	world.SetSleepTime(0.4)
	world.SetNormalImpulseVSlop(2e-3)
	world.SetWakeThresholds(1e-3, 1e-3)
	world.SetPositionCorrection(0.95, 5e-4)

	ground := NewStaticPlane(Vec3{0, 1, 0}, 0)
	ground.SetFrictionStatic(0.6)
	ground.SetFrictionDynamic(0.5)
	world.AddBody(ground)

	ball := NewDynamicSphere(Vec3{0, 1.5, 0}, 0.25, 1)
	ball.SetRestitution(0.2)
	ball.SetLinearDamping(0.02)
	ball.SetFrictionStatic(0.6)
	ball.SetFrictionDynamic(0.5)
	world.AddBody(ball)

	const renderDt = 1.0 / 60.0
	asleep := false
	for i := 0; i < int(5.0/renderDt); i++ {
		world.Update(renderDt)
		if ball.IsSleeping() {
			asleep = true
			break
		}
	}
	require.True(t, asleep, "ball should fall asleep within 5s")

	ground.SetFrictionStatic(0.2)
	ground.SetFrictionDynamic(0.10)
	ball.SetFrictionStatic(0.2)
	ball.SetFrictionDynamic(0.10)
	ball.WakeUp()
	ball.Velocity = Vec3{1.5, 0, 0}

	startX := ball.Position.X
	for i := 0; i < 120; i++ {
		world.Update(renderDt)
	}

	require.Greater(t, ball.Position.X-startX, 0.5)
}
