package physics

import "math"

// SolverConfig holds the tunables the contact solver needs on every
// resolve call. It belongs to a World instance rather than living as
// package-level globals, so independent Worlds (as tests build) never
// share tuning.
type SolverConfig struct {
	Gravity   Vec3
	CurrentDt float64

	PositionCorrectionPercent float64
	PositionCorrectionSlop    float64
	NormalImpulseVSlop        float64
	WakeImpulseThreshold      float64
	WakeCorrectionThreshold   float64
}

// DefaultSolverConfig returns the tunables a freshly constructed World
// starts with.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Gravity:                   Vec3{0, -9.81, 0},
		CurrentDt:                 1.0 / 120.0,
		PositionCorrectionPercent: 0.95,
		PositionCorrectionSlop:    5e-4,
		NormalImpulseVSlop:        2e-3,
		WakeImpulseThreshold:      1e-3,
		WakeCorrectionThreshold:   1e-3,
	}
}

// SetCurrentDt clamps dt to a sane positive minimum and stores it. Called
// once per substep before resolving that substep's manifolds.
func (c *SolverConfig) SetCurrentDt(dt float64) {
	if dt < 1e-8 {
		dt = 1e-8
	}
	c.CurrentDt = dt
}

// SetNormalImpulseVSlop clamps the slop to >= 0.
func (c *SolverConfig) SetNormalImpulseVSlop(v float64) {
	c.NormalImpulseVSlop = maxf(0, v)
}

// SetWakeThresholds clamps both thresholds to >= 0.
func (c *SolverConfig) SetWakeThresholds(impulse, correction float64) {
	c.WakeImpulseThreshold = maxf(0, impulse)
	c.WakeCorrectionThreshold = maxf(0, correction)
}

// SetPositionCorrection clamps percent into [0,1] and slop to >= 0.
func (c *SolverConfig) SetPositionCorrection(percent, slop float64) {
	c.PositionCorrectionPercent = clamp(percent, 0, 1)
	c.PositionCorrectionSlop = maxf(0, slop)
}

// resolve applies the normal impulse, Coulomb friction, and positional
// correction for one manifold, then runs the sphere-plane resting
// stabilizer if the pair qualifies. m.Normal points from B toward A
// throughout.
func resolve(m Manifold, cfg *SolverConfig) {
	a, b := m.A, m.B
	invMassA, invMassB := a.InvMass(), b.InvMass()
	invMassSum := invMassA + invMassB
	if invMassSum == 0 {
		return
	}

	n := m.Normal

	rv := a.Velocity.Sub(b.Velocity)
	vN := rv.Dot(n)

	var jN float64
	if vN < -cfg.NormalImpulseVSlop {
		e := math.Min(a.Restitution(), b.Restitution())
		jN = -(1 + e) * vN / invMassSum
		if jN < 0 {
			jN = 0
		}
		applyNormalImpulse(a, b, n, jN)
	}

	a.markContact()
	b.markContact()
	a.accumulateImpulse(jN)
	b.accumulateImpulse(jN)
	if jN > cfg.WakeImpulseThreshold {
		a.WakeUp()
		b.WakeUp()
	}

	// Coulomb friction. A resting contact rarely produces a normal impulse
	// (vN sits near the velocity slop), so friction alone would starve for
	// budget; jSupport approximates the normal force gravity exerts across
	// the contact this step and gives friction something to work against
	// even when jN is zero.
	rv = a.Velocity.Sub(b.Velocity)
	rvT := rv.Sub(n.Scale(rv.Dot(n)))
	rvTLen := rvT.Length()
	if rvTLen > 1e-9 {
		t := rvT.Scale(1.0 / rvTLen)

		gDotN := cfg.Gravity.Dot(n)
		massA, massB := a.Mass(), b.Mass()
		jSupport := (massA + massB) * math.Abs(gDotN) * cfg.CurrentDt
		jNEff := jN + jSupport

		muS := (a.FrictionStatic() + b.FrictionStatic()) / 2
		muK := (a.FrictionDynamic() + b.FrictionDynamic()) / 2

		jtIdeal := -rv.Dot(t) / invMassSum

		var jt float64
		kinetic := false
		if math.Abs(jtIdeal) <= muS*jNEff {
			jt = jtIdeal
		} else {
			jt = -muK * jNEff
			kinetic = true
		}

		applyNormalImpulse(a, b, t, jt)
		a.accumulateImpulse(math.Abs(jt))
		b.accumulateImpulse(math.Abs(jt))
		if kinetic && math.Abs(jt) > cfg.WakeImpulseThreshold {
			a.WakeUp()
			b.WakeUp()
		}
	}

	// Positional correction: always push overlapping bodies apart,
	// independent of whether a normal impulse fired this step.
	correctionMag := math.Max(m.Penetration-cfg.PositionCorrectionSlop, 0) / invMassSum * cfg.PositionCorrectionPercent
	if correctionMag > 0 {
		a.Position = a.Position.Add(n.Scale(correctionMag * invMassA))
		b.Position = b.Position.Sub(n.Scale(correctionMag * invMassB))
		a.accumulateCorrection(correctionMag)
		b.accumulateCorrection(correctionMag)
		if correctionMag > cfg.WakeCorrectionThreshold {
			a.WakeUp()
			b.WakeUp()
		}
	}

	if a.shape.Kind() == KindSphere && b.shape.Kind() == KindPlane {
		stabilizeSpherePlaneContact(m)
	} else if a.shape.Kind() == KindPlane && b.shape.Kind() == KindSphere {
		stabilizeSpherePlaneContact(Manifold{A: b, B: a, Normal: n.Negate(), Penetration: m.Penetration})
	}
}

// applyNormalImpulse applies scalar j along direction dir (the contact
// normal, which points from b toward a, or the friction tangent): a gains
// j·dir·invMassA, b loses j·dir·invMassB.
func applyNormalImpulse(a, b *RigidBody, dir Vec3, j float64) {
	a.Velocity = a.Velocity.Add(dir.Scale(j * a.InvMass()))
	b.Velocity = b.Velocity.Sub(dir.Scale(j * b.InvMass()))
}

// stabilizeSpherePlaneContact snaps a resting sphere to the plane surface
// and kills residual normal velocity once both are within a hair's width
// of true contact, preventing the sphere from creeping through position
// correction jitter frame after frame. m.A must be the sphere, m.B the
// plane.
func stabilizeSpherePlaneContact(m Manifold) {
	const posEps = 1e-3
	const velEps = 2e-3

	n := m.B.shape.Normal()
	sphere := m.A

	dist := n.Dot(sphere.Position) - m.B.shape.Offset()
	err := sphere.shape.Radius() - dist

	if math.Abs(err) < posEps {
		sphere.Position = sphere.Position.Add(n.Scale(err))
	}

	vN := sphere.Velocity.Dot(n)
	if math.Abs(vN) < velEps {
		sphere.Velocity = sphere.Velocity.Sub(n.Scale(vN))
	}
}
