package physics

import "log"

// maxCatchUpSteps bounds how many fixed steps Update will run in a single
// call. Without this cap, a long stall (debugger pause, slow frame) would
// make the simulation try to catch up in one shot and stutter forever.
const maxCatchUpSteps = 8

// maxFrameDelta is the largest deltaTime Update will accept before
// clamping, matching the same stall-protection reasoning as
// maxCatchUpSteps.
const maxFrameDelta = 0.25

// World owns a set of bodies and steps them forward in fixed increments.
// Update accepts a wall-clock delta and internally slices it into one or
// more fixed steps via an accumulator, so simulation results do not
// depend on the caller's frame rate.
type World struct {
	bodies []*RigidBody
	cfg    SolverConfig

	fixedTimeStep    float64
	accumulator      float64
	substeps         int
	solverIterations int

	broadphase Broadphase

	sleepVelThreshold float64
	sleepTime         float64

	debugLogging   bool
	debugLogAccum  float64
}

// NewWorld returns a World with the same defaults original_source's
// World starts with: 120Hz fixed step, no substepping, 4 solver
// iterations, no broadphase (brute-force pairing), gravity (0,-9.81,0).
func NewWorld() *World {
	return &World{
		cfg:               DefaultSolverConfig(),
		fixedTimeStep:     1.0 / 120.0,
		substeps:          1,
		solverIterations:  4,
		sleepVelThreshold: 0.05,
		sleepTime:         0.5,
	}
}

// AddBody adds a body to the simulation.
func (w *World) AddBody(b *RigidBody) {
	w.bodies = append(w.bodies, b)
}

// Bodies returns the world's bodies. Callers must not retain the slice
// across a call that mutates the body count.
func (w *World) Bodies() []*RigidBody { return w.bodies }

// Gravity returns the current gravity vector.
func (w *World) Gravity() Vec3 { return w.cfg.Gravity }

// SetGravity sets the gravity vector applied during integration.
func (w *World) SetGravity(g Vec3) { w.cfg.Gravity = g }

// FixedTimeStep returns the simulation's fixed step duration in seconds.
func (w *World) FixedTimeStep() float64 { return w.fixedTimeStep }

// SetFixedTimeStep clamps step to a small positive minimum and stores it.
func (w *World) SetFixedTimeStep(step float64) {
	if step < 1e-6 {
		step = 1e-6
	}
	w.fixedTimeStep = step
}

// SetSubsteps clamps n to >= 1 and stores it. Each fixed step then runs n
// substeps of duration fixedTimeStep/n.
func (w *World) SetSubsteps(n int) {
	if n < 1 {
		n = 1
	}
	w.substeps = n
}

// SetSolverIterations clamps n to >= 1 and stores it.
func (w *World) SetSolverIterations(n int) {
	if n < 1 {
		n = 1
	}
	w.solverIterations = n
}

// SetBroadphase installs a broadphase. Passing nil reverts to brute-force
// n(n-1)/2 pairing.
func (w *World) SetBroadphase(bp Broadphase) { w.broadphase = bp }

// SetSleepVelocityThreshold clamps v to >= 0 and stores it.
func (w *World) SetSleepVelocityThreshold(v float64) {
	w.sleepVelThreshold = maxf(0, v)
}

// SetSleepTime clamps t to >= 0 and stores it.
func (w *World) SetSleepTime(t float64) {
	w.sleepTime = maxf(0, t)
}

// SetPositionCorrection forwards to the solver config.
func (w *World) SetPositionCorrection(percent, slop float64) {
	w.cfg.SetPositionCorrection(percent, slop)
}

// SetNormalImpulseVSlop forwards to the solver config.
func (w *World) SetNormalImpulseVSlop(v float64) {
	w.cfg.SetNormalImpulseVSlop(v)
}

// SetWakeThresholds forwards to the solver config.
func (w *World) SetWakeThresholds(impulse, correction float64) {
	w.cfg.SetWakeThresholds(impulse, correction)
}

// SetDebugLogging turns the periodic per-body state dump on or off.
func (w *World) SetDebugLogging(enabled bool) {
	w.debugLogging = enabled
	w.debugLogAccum = 0
}

// GetInterpolationAlpha returns how far the accumulator has progressed
// through the next fixed step, in [0,1], for render-side interpolation.
func (w *World) GetInterpolationAlpha() float64 {
	return clamp(w.accumulator/w.fixedTimeStep, 0, 1)
}

// ResetAccumulator zeroes the fixed-step accumulator, discarding any
// partial step's worth of banked time.
func (w *World) ResetAccumulator() { w.accumulator = 0 }

// Update advances the simulation by deltaTime seconds of wall-clock time,
// slicing it into zero or more fixed steps. If the accumulated backlog
// would take more than maxCatchUpSteps fixed steps to drain, the excess
// is dropped rather than spiraling into a longer and longer stall.
func (w *World) Update(deltaTime float64) {
	if deltaTime > maxFrameDelta {
		deltaTime = maxFrameDelta
	}
	w.accumulator += deltaTime

	steps := 0
	for w.accumulator >= w.fixedTimeStep && steps < maxCatchUpSteps {
		substepDt := w.fixedTimeStep / float64(w.substeps)
		for i := 0; i < w.substeps; i++ {
			w.step(substepDt)
		}
		w.accumulator -= w.fixedTimeStep
		steps++
	}
	if steps == maxCatchUpSteps {
		w.accumulator = 0
	}
}

// step runs exactly one substep of duration dt: reset activity, integrate,
// broadphase, soft contact, solver iterations, sleep update.
func (w *World) step(dt float64) {
	w.cfg.SetCurrentDt(dt)

	for _, b := range w.bodies {
		b.beginStepActivityReset()
	}
	for _, b := range w.bodies {
		b.integrate(w.cfg.Gravity, dt)
	}

	pairs := w.computePairs()

	for _, p := range pairs {
		if p.A.IsSleeping() && p.B.IsSleeping() {
			continue
		}
		applySoftContactSpherePlane(p.A, p.B, &w.cfg)
	}

	const impulseQuiet = 1e-2
	const correctionQuiet = 2e-3

	for iter := 0; iter < w.solverIterations; iter++ {
		for _, p := range pairs {
			if p.A.IsSleeping() && p.B.IsSleeping() {
				continue
			}
			if m, ok := testPair(p.A, p.B); ok {
				resolve(m, &w.cfg)
			}
		}
	}

	for _, b := range w.bodies {
		b.accumulateSleepTimer(dt, w.sleepVelThreshold, w.sleepTime, impulseQuiet, correctionQuiet)
	}

	w.debugLogAccum += dt
	if w.debugLogging && w.debugLogAccum >= 0.1 {
		w.debugLogAccum = 0
		w.logDebugSnapshot()
	}
}

// computePairs gathers candidate pairs for this step: broadphase pairs
// among bounded bodies (or brute-force n(n-1)/2 pairs with no broadphase
// installed), plus every bounded body paired against every plane, since
// planes are infinite and never inserted into the broadphase.
func (w *World) computePairs() []Pair {
	var planes, bounded []*RigidBody
	for _, b := range w.bodies {
		if b.shape.Kind() == KindPlane {
			planes = append(planes, b)
		} else {
			bounded = append(bounded, b)
		}
	}

	var pairs []Pair
	if w.broadphase != nil {
		w.broadphase.Clear()
		for _, b := range bounded {
			w.broadphase.Insert(b)
		}
		pairs = w.broadphase.ComputePairs()
	} else {
		for i := 0; i < len(bounded); i++ {
			for j := i + 1; j < len(bounded); j++ {
				pairs = append(pairs, Pair{A: bounded[i], B: bounded[j]})
			}
		}
	}

	for _, b := range bounded {
		for _, pl := range planes {
			pairs = append(pairs, Pair{A: b, B: pl})
		}
	}
	return pairs
}

func (w *World) logDebugSnapshot() {
	for _, b := range w.bodies {
		log.Printf("physics: body=%d kind=%d y=%.4f speed=%.4f velAvg=%.4f sleepTimer=%.3f contact=%t jMax=%.5f corrMax=%.5f sleeping=%t",
			b.ID(), b.shape.Kind(), b.Position.Y, b.Velocity.Length(), b.velAvg, b.sleepTimer,
			b.hadContactThisStep, b.maxImpulseThisStep, b.maxCorrectionThisStep, b.sleeping)
	}
}

// NewDynamicSphere builds and returns a dynamic sphere body, matching
// original_source's World.dynamicSphere factory.
func NewDynamicSphere(position Vec3, radius, mass float64) *RigidBody {
	return NewRigidBody(position, mass, NewSphere(radius))
}

// NewStaticPlane builds and returns a static (mass 0) plane body, matching
// original_source's World.staticPlane factory. Its position field is
// unused: the plane's world location is fully described by normal and d.
func NewStaticPlane(normal Vec3, d float64) *RigidBody {
	return NewRigidBody(ZeroVec3, 0, NewPlane(normal, d))
}

// NewDynamicBox builds and returns a dynamic box body, matching
// original_source's World.dynamicBox factory.
func NewDynamicBox(position, halfExtents Vec3, mass float64) *RigidBody {
	return NewRigidBody(position, mass, NewAABB(halfExtents))
}
