package physics

import "math"

// nextBodyID hands out stable, monotonically increasing body identities.
// Stepping is single-threaded (see spec §5), so a plain counter is enough —
// no atomic needed. Pair dedup in the broadphase keys on this id instead
// of pointer/hash identity, so pair order never depends on memory layout.
var nextBodyID uint64

// emaAlpha smooths the velocity-magnitude EMA used by the sleep controller.
const emaAlpha = 0.2

// RigidBody is a physical body: kinematic state, shape, material, and the
// bookkeeping the sleep controller and contact solver need.
type RigidBody struct {
	id uint64

	Position   Vec3
	Velocity   Vec3
	forceAccum Vec3

	mass    float64
	invMass float64
	shape   Shape

	restitution     float64
	frictionStatic  float64
	frictionDynamic float64
	linearDamping   float64

	canSleep   bool
	sleeping   bool
	sleepTimer float64
	velAvg     float64

	hadContactThisStep    bool
	maxImpulseThisStep    float64
	maxCorrectionThisStep float64
}

// NewRigidBody constructs a body at position with the given mass and
// shape. A mass of 0 makes the body static (invMass == 0, never
// integrated, immovable). Material defaults match spec §3: restitution
// 0.4, static/dynamic friction 0.6/0.4, linear damping 0.05.
func NewRigidBody(position Vec3, mass float64, shape Shape) *RigidBody {
	nextBodyID++
	invMass := 0.0
	if mass > 0 {
		invMass = 1.0 / mass
	}
	return &RigidBody{
		id:              nextBodyID,
		Position:        position,
		mass:            mass,
		invMass:         invMass,
		shape:           shape,
		restitution:     0.4,
		frictionStatic:  0.6,
		frictionDynamic: 0.4,
		linearDamping:   0.05,
		canSleep:        true,
	}
}

// ID returns this body's stable identity, assigned at construction.
func (b *RigidBody) ID() uint64 { return b.id }

// IsStatic reports whether the body has infinite mass (invMass == 0).
func (b *RigidBody) IsStatic() bool { return b.invMass == 0 }

// Shape returns the body's immutable shape.
func (b *RigidBody) Shape() Shape { return b.shape }

// InvMass returns 1/mass, or 0 for static bodies.
func (b *RigidBody) InvMass() float64 { return b.invMass }

// Mass returns the body's mass (0 for static bodies).
func (b *RigidBody) Mass() float64 { return b.mass }

// AddForce accumulates a force to be applied on the next integrate.
func (b *RigidBody) AddForce(f Vec3) { b.forceAccum = b.forceAccum.Add(f) }

// ClearForces zeroes the accumulated force.
func (b *RigidBody) ClearForces() { b.forceAccum = ZeroVec3 }

// Restitution returns the body's restitution coefficient.
func (b *RigidBody) Restitution() float64 { return b.restitution }

// SetRestitution clamps r into [0,1] and stores it.
func (b *RigidBody) SetRestitution(r float64) {
	b.restitution = clamp(r, 0, 1)
}

// FrictionStatic returns the body's static-friction coefficient.
func (b *RigidBody) FrictionStatic() float64 { return b.frictionStatic }

// SetFrictionStatic clamps muS to >= 0 and stores it.
func (b *RigidBody) SetFrictionStatic(muS float64) {
	b.frictionStatic = maxf(0, muS)
}

// FrictionDynamic returns the body's dynamic-friction coefficient.
func (b *RigidBody) FrictionDynamic() float64 { return b.frictionDynamic }

// SetFrictionDynamic clamps muK to >= 0 and stores it.
func (b *RigidBody) SetFrictionDynamic(muK float64) {
	b.frictionDynamic = maxf(0, muK)
}

// LinearDamping returns the body's exponential linear damping (s^-1).
func (b *RigidBody) LinearDamping() float64 { return b.linearDamping }

// SetLinearDamping clamps damping to >= 0 and stores it.
func (b *RigidBody) SetLinearDamping(damping float64) {
	b.linearDamping = maxf(0, damping)
}

// CanSleep reports whether the body is allowed to enter sleep.
func (b *RigidBody) CanSleep() bool { return b.canSleep }

// SetCanSleep enables or disables sleeping. Disabling wakes the body.
func (b *RigidBody) SetCanSleep(canSleep bool) {
	b.canSleep = canSleep
	if !canSleep {
		b.sleeping = false
	}
}

// IsSleeping reports whether the body is currently asleep.
func (b *RigidBody) IsSleeping() bool { return b.sleeping }

// WakeUp immediately and idempotently clears sleep state.
func (b *RigidBody) WakeUp() {
	b.sleeping = false
	b.sleepTimer = 0
}

// beginStepActivityReset clears per-step activity counters. Called by the
// world at the start of every substep, before integration (invariant I6).
func (b *RigidBody) beginStepActivityReset() {
	b.hadContactThisStep = false
	b.maxImpulseThisStep = 0
	b.maxCorrectionThisStep = 0
}

// markContact records that this body touched a manifold or soft contact
// this step.
func (b *RigidBody) markContact() { b.hadContactThisStep = true }

// accumulateImpulse keeps the largest impulse magnitude seen this step.
func (b *RigidBody) accumulateImpulse(jMag float64) {
	if jMag > b.maxImpulseThisStep {
		b.maxImpulseThisStep = jMag
	}
}

// accumulateCorrection keeps the largest positional correction seen this step.
func (b *RigidBody) accumulateCorrection(corrMag float64) {
	if corrMag > b.maxCorrectionThisStep {
		b.maxCorrectionThisStep = corrMag
	}
}

// HadContactThisStep reports whether markContact was called this step.
func (b *RigidBody) HadContactThisStep() bool { return b.hadContactThisStep }

// MaxImpulseThisStep returns the largest impulse magnitude seen this step (Ns).
func (b *RigidBody) MaxImpulseThisStep() float64 { return b.maxImpulseThisStep }

// MaxCorrectionThisStep returns the largest positional correction seen
// this step (m).
func (b *RigidBody) MaxCorrectionThisStep() float64 { return b.maxCorrectionThisStep }

// DebugVelAvg returns the EMA of |velocity|, used by the sleep controller.
func (b *RigidBody) DebugVelAvg() float64 { return b.velAvg }

// DebugSleepTimer returns the running quiet-time counter toward sleep.
func (b *RigidBody) DebugSleepTimer() float64 { return b.sleepTimer }

// integrate advances a non-static, non-sleeping body by dt using
// semi-implicit Euler plus exponential linear damping (spec §4.6). Static
// and sleeping bodies only clear forces (invariant I5).
func (b *RigidBody) integrate(gravity Vec3, dt float64) {
	if b.IsStatic() || b.sleeping {
		b.ClearForces()
		return
	}

	acc := b.forceAccum.Scale(b.invMass).Add(gravity)
	b.Velocity = b.Velocity.Add(acc.Scale(dt))

	decay := math.Exp(-b.linearDamping * dt)
	b.Velocity = b.Velocity.Scale(decay)

	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.ClearForces()
}

// accumulateSleepTimer updates the EMA-and-hysteresis sleep controller
// (spec §4.7). Runs once per substep, after the solver.
func (b *RigidBody) accumulateSleepTimer(dt, vThresholdVel, timeToSleep, impulseQuiet, correctionQuiet float64) {
	if !b.canSleep || b.IsStatic() {
		b.sleepTimer = 0
		b.sleeping = false
		b.velAvg = 0
		return
	}

	vLen := b.Velocity.Length()
	if b.velAvg == 0 {
		b.velAvg = vLen
	}
	b.velAvg = emaAlpha*vLen + (1-emaAlpha)*b.velAvg

	quietVelocity := b.velAvg < vThresholdVel
	quietContacts := b.maxImpulseThisStep <= impulseQuiet && b.maxCorrectionThisStep <= correctionQuiet

	if b.hadContactThisStep && quietVelocity && quietContacts {
		b.sleepTimer += dt
		if b.sleepTimer >= timeToSleep {
			b.sleeping = true
			b.Velocity = ZeroVec3
		}
	} else {
		b.sleepTimer = 0
		b.sleeping = false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
