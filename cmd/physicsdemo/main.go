// Command physicsdemo runs a handful of named physics scenarios headlessly
// and logs summary statistics, in the spirit of the stress-test binaries
// that exercise this project's simulation core without any rendering.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/enzokpl/phys3d/internal/physics"
)

func main() {
	scenario := flag.String("scenario", "bounce", "scenario to run: bounce, stack, friction, sleep")
	flag.Parse()

	switch *scenario {
	case "bounce":
		runBounce()
	case "stack":
		runStack()
	case "friction":
		runFriction()
	case "sleep":
		runSleep()
	default:
		panic(fmt.Sprintf("physicsdemo: unknown scenario %q", *scenario))
	}
}

func runBounce() {
	world := physics.NewWorld()
	world.AddBody(physics.NewStaticPlane(physics.Vec3{X: 0, Y: 1, Z: 0}, 0))

	ball := physics.NewDynamicSphere(physics.Vec3{X: 0, Y: 2, Z: 0}, 0.25, 1)
	ball.SetRestitution(0.5)
	world.AddBody(ball)

	const dt = 1.0 / 120.0
	maxPenetration := 0.0
	for i := 0; i < 600; i++ {
		world.Update(dt)
		if pen := 0.25 - ball.Position.Y; pen > maxPenetration {
			maxPenetration = pen
		}
	}

	log.Printf("bounce: finalY=%.4f maxPenetration=%.5f sleeping=%t", ball.Position.Y, maxPenetration, ball.IsSleeping())
}

func runStack() {
	world := physics.NewWorld()
	world.SetSubsteps(6)
	world.SetSolverIterations(8)
	world.AddBody(physics.NewStaticPlane(physics.Vec3{X: 0, Y: 1, Z: 0}, 0))

	hy1, hy2 := 0.2, 0.15
	bottom := physics.NewDynamicBox(physics.Vec3{X: 0, Y: 1.5, Z: 0}, physics.Vec3{X: 0.3, Y: hy1, Z: 0.25}, 2)
	bottom.SetRestitution(0.2)
	top := physics.NewDynamicBox(physics.Vec3{X: 0.02, Y: 2.2, Z: 0}, physics.Vec3{X: 0.25, Y: hy2, Z: 0.25}, 1.5)
	top.SetRestitution(0.2)
	world.AddBody(bottom)
	world.AddBody(top)

	const renderDt = 1.0 / 60.0
	for i := 0; i < int(6.0/renderDt); i++ {
		world.Update(renderDt)
	}

	log.Printf("stack: bottomY=%.4f topY=%.4f gap=%.4f", bottom.Position.Y, top.Position.Y, top.Position.Y-bottom.Position.Y-hy1-hy2)
}

func runFriction() {
	world := physics.NewWorld()
	world.SetSubsteps(4)
	world.SetSolverIterations(6)
	world.AddBody(physics.NewStaticPlane(physics.Vec3{X: 0, Y: 1, Z: 0}, 0))

	box := physics.NewDynamicBox(physics.Vec3{X: 0, Y: 0.2, Z: 0}, physics.Vec3{X: 0.3, Y: 0.2, Z: 0.3}, 2)
	box.SetRestitution(0)
	box.SetFrictionStatic(0.8)
	box.SetFrictionDynamic(0.6)
	box.SetLinearDamping(0.01)
	box.Velocity = physics.Vec3{X: 3, Y: 0, Z: 0}
	world.AddBody(box)

	const renderDt = 1.0 / 60.0
	for i := 0; i < int(4.0/renderDt); i++ {
		world.Update(renderDt)
	}

	log.Printf("friction: finalVelX=%.4f finalY=%.4f", box.Velocity.X, box.Position.Y)
}

func runSleep() {
	world := physics.NewWorld()
	world.SetSubsteps(4)
	world.SetSolverIterations(6)
	world.SetSleepVelocityThreshold(0.03)
	world.SetSleepTime(0.4)
	world.SetDebugLogging(true)
	world.AddBody(physics.NewStaticPlane(physics.Vec3{X: 0, Y: 1, Z: 0}, 0))

	ball := physics.NewDynamicSphere(physics.Vec3{X: 0, Y: 1.5, Z: 0}, 0.25, 1)
	ball.SetRestitution(0.2)
	ball.SetLinearDamping(0.02)
	world.AddBody(ball)

	const renderDt = 1.0 / 60.0
	for i := 0; i < int(5.0/renderDt); i++ {
		world.Update(renderDt)
		if ball.IsSleeping() {
			log.Printf("sleep: fell asleep after %.3fs", float64(i+1)*renderDt)
			break
		}
	}

	ball.WakeUp()
	ball.Velocity = physics.Vec3{X: 1.5, Y: 0, Z: 0}
	for i := 0; i < 120; i++ {
		world.Update(renderDt)
	}
	log.Printf("sleep: finalX=%.4f", ball.Position.X)
}
