package physics

import "math"

// softContactEps is how close a sphere's surface must sit to a plane for
// the resting stabilizer to engage, independent of whether the
// narrowphase would call it a manifold yet.
const softContactEps = 5e-3

// applySoftContactSpherePlane runs before the solver's manifold iterations
// on every sphere/plane pair, in either argument order. A sphere resting
// near a plane has its normal velocity zeroed unconditionally, and gets a
// friction impulse budgeted purely off gravity's support force — there is
// no normal impulse yet to size friction against, since the pair may not
// even qualify as a manifold this substep. This is what keeps a resting
// ball from slowly sinking or drifting between the frames where an actual
// contact manifold fires. Reports whether it engaged.
func applySoftContactSpherePlane(a, b *RigidBody, cfg *SolverConfig) bool {
	var sphere, plane *RigidBody
	switch {
	case a.shape.Kind() == KindSphere && b.shape.Kind() == KindPlane:
		sphere, plane = a, b
	case a.shape.Kind() == KindPlane && b.shape.Kind() == KindSphere:
		sphere, plane = b, a
	default:
		return false
	}

	n := plane.shape.Normal()
	dist := n.Dot(sphere.Position) - plane.shape.Offset()
	r := sphere.shape.Radius()
	gap := math.Abs(r - dist)
	if gap > softContactEps {
		return false
	}

	corr := r - dist
	sphere.Position = sphere.Position.Add(n.Scale(corr))
	sphere.accumulateCorrection(math.Abs(corr))
	plane.accumulateCorrection(math.Abs(corr))

	vN := sphere.Velocity.Dot(n)
	sphere.Velocity = sphere.Velocity.Sub(n.Scale(vN))

	invMassSum := sphere.InvMass() + plane.InvMass()
	if invMassSum == 0 {
		sphere.markContact()
		plane.markContact()
		return true
	}

	rv := sphere.Velocity.Sub(plane.Velocity)
	tangentVel := rv.Sub(n.Scale(rv.Dot(n)))
	tLen := tangentVel.Length()
	if tLen > 1e-9 {
		t := tangentVel.Scale(1.0 / tLen)

		gDotN := cfg.Gravity.Dot(n)
		jSupport := (sphere.Mass() + plane.Mass()) * math.Abs(gDotN) * cfg.CurrentDt

		muS := (sphere.FrictionStatic() + plane.FrictionStatic()) / 2
		muK := (sphere.FrictionDynamic() + plane.FrictionDynamic()) / 2

		jtIdeal := -rv.Dot(t) / invMassSum

		var jt float64
		kinetic := false
		if math.Abs(jtIdeal) <= muS*jSupport {
			jt = jtIdeal
		} else {
			jt = -muK * jSupport
			kinetic = true
		}

		sphere.Velocity = sphere.Velocity.Add(t.Scale(jt * sphere.InvMass()))
		plane.Velocity = plane.Velocity.Sub(t.Scale(jt * plane.InvMass()))
		sphere.accumulateImpulse(math.Abs(jt))
		plane.accumulateImpulse(math.Abs(jt))
		if kinetic && math.Abs(jt) > cfg.WakeImpulseThreshold {
			sphere.WakeUp()
			plane.WakeUp()
		}
	}

	sphere.markContact()
	plane.markContact()
	return true
}
