package physics

import "math"

// spherePlaneSnapSlop withholds a sphere-plane manifold for the first
// millimeter of penetration, leaving near-contact and micro-penetration
// to the soft-contact resting stabilizer rather than the impulse solver.
const spherePlaneSnapSlop = 1e-3

// Manifold describes one narrowphase contact: the two bodies involved in
// the exact order the caller passed them, the contact normal pointing
// from B toward A, and the penetration depth along that normal (positive
// means overlapping).
type Manifold struct {
	A, B        *RigidBody
	Normal      Vec3
	Penetration float64
}

// testPair runs the narrowphase test appropriate to the two bodies' shape
// kinds and reports whether a contact manifold was generated, preserving
// the caller's (a,b) argument order in the returned manifold. Plane-plane
// pairs are never tested — the world never offers that combination.
func testPair(a, b *RigidBody) (Manifold, bool) {
	ka, kb := a.shape.Kind(), b.shape.Kind()

	switch {
	case ka == KindSphere && kb == KindSphere:
		return sphereVsSphere(a, b)
	case (ka == KindSphere && kb == KindPlane) || (ka == KindPlane && kb == KindSphere):
		return sphereVsPlane(a, b)
	case (ka == KindSphere && kb == KindAABB) || (ka == KindAABB && kb == KindSphere):
		return sphereVsAABB(a, b)
	case (ka == KindAABB && kb == KindPlane) || (ka == KindPlane && kb == KindAABB):
		return aabbVsPlane(a, b)
	case ka == KindAABB && kb == KindAABB:
		return aabbVsAABB(a, b)
	default:
		return Manifold{}, false
	}
}

// sphereVsSphere normal points from b to a: (pa-pb)/d, or +x if the
// centers coincide.
func sphereVsSphere(a, b *RigidBody) (Manifold, bool) {
	delta := a.Position.Sub(b.Position)
	dist := delta.Length()
	rSum := a.shape.Radius() + b.shape.Radius()
	if dist >= rSum {
		return Manifold{}, false
	}

	normal := Vec3{1, 0, 0}
	if dist > 0 {
		normal = delta.Scale(1.0 / dist)
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: rSum - dist}, true
}

// sphereVsPlane works regardless of which argument is the sphere and
// which is the plane, always returning a manifold whose normal points
// from b to a.
func sphereVsPlane(a, b *RigidBody) (Manifold, bool) {
	var sphere, plane *RigidBody
	sphereIsA := a.shape.Kind() == KindSphere
	if sphereIsA {
		sphere, plane = a, b
	} else {
		sphere, plane = b, a
	}

	n := plane.shape.Normal()
	dist := n.Dot(sphere.Position) - plane.shape.Offset()
	penetration := sphere.shape.Radius() - dist
	if penetration <= spherePlaneSnapSlop {
		return Manifold{}, false
	}

	sign := 1.0
	if dist < 0 {
		sign = -1.0
	}
	planeToSphere := n.Scale(sign)

	normal := planeToSphere
	if !sphereIsA {
		normal = planeToSphere.Negate()
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: penetration}, true
}

// sphereVsAABB works regardless of which argument is the sphere and which
// is the box, always returning a manifold whose normal points from b to
// a. Sphere-center-inside-box ties are broken by explicit x, then y,
// then z comparison, never by incidental floating-point ordering.
func sphereVsAABB(a, b *RigidBody) (Manifold, bool) {
	var sphere, box *RigidBody
	sphereIsA := a.shape.Kind() == KindSphere
	if sphereIsA {
		sphere, box = a, b
	} else {
		sphere, box = b, a
	}

	min := box.shape.Min(box.Position)
	max := box.shape.Max(box.Position)
	c := sphere.Position
	r := sphere.shape.Radius()

	closest := Vec3{
		X: clamp(c.X, min.X, max.X),
		Y: clamp(c.Y, min.Y, max.Y),
		Z: clamp(c.Z, min.Z, max.Z),
	}

	delta := c.Sub(closest)
	distSq := delta.Dot(delta)

	var boxToSphere Vec3
	var penetration float64

	if distSq > 1e-18 {
		dist := math.Sqrt(distSq)
		if dist >= r {
			return Manifold{}, false
		}
		boxToSphere = delta.Scale(1.0 / dist)
		penetration = r - dist
	} else {
		dxMin := c.X - min.X
		dxMax := max.X - c.X
		dyMin := c.Y - min.Y
		dyMax := max.Y - c.Y
		dzMin := c.Z - min.Z
		dzMax := max.Z - c.Z

		best := dxMin
		boxToSphere = Vec3{-1, 0, 0}

		if dxMax < best {
			best, boxToSphere = dxMax, Vec3{1, 0, 0}
		}
		if dyMin < best {
			best, boxToSphere = dyMin, Vec3{0, -1, 0}
		}
		if dyMax < best {
			best, boxToSphere = dyMax, Vec3{0, 1, 0}
		}
		if dzMin < best {
			best, boxToSphere = dzMin, Vec3{0, 0, -1}
		}
		if dzMax < best {
			best, boxToSphere = dzMax, Vec3{0, 0, 1}
		}
		penetration = best + r
	}

	normal := boxToSphere
	if !sphereIsA {
		normal = boxToSphere.Negate()
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: penetration}, true
}

// aabbVsPlane works regardless of which argument is the box and which is
// the plane, always returning a manifold whose normal points from b to a.
func aabbVsPlane(a, b *RigidBody) (Manifold, bool) {
	var box, plane *RigidBody
	boxIsA := a.shape.Kind() == KindAABB
	if boxIsA {
		box, plane = a, b
	} else {
		box, plane = b, a
	}

	n := plane.shape.Normal()
	he := box.shape.HalfExtents()
	r := math.Abs(n.X)*he.X + math.Abs(n.Y)*he.Y + math.Abs(n.Z)*he.Z
	dist := n.Dot(box.Position) - plane.shape.Offset()
	penetration := r - dist
	if penetration <= 0 {
		return Manifold{}, false
	}

	sign := 1.0
	if dist < 0 {
		sign = -1.0
	}
	planeToBox := n.Scale(sign)

	normal := planeToBox
	if !boxIsA {
		normal = planeToBox.Negate()
	}
	return Manifold{A: a, B: b, Normal: normal, Penetration: penetration}, true
}

// aabbVsAABB computes per-axis overlap and picks the minimum as the
// separating axis, ties broken x, then y, then z. The normal points from
// b to a: opposite the sign of (center_b - center_a) along the chosen
// axis, or the positive direction if that component is exactly zero.
func aabbVsAABB(a, b *RigidBody) (Manifold, bool) {
	heA, heB := a.shape.HalfExtents(), b.shape.HalfExtents()
	delta := b.Position.Sub(a.Position)

	ox := heA.X + heB.X - math.Abs(delta.X)
	oy := heA.Y + heB.Y - math.Abs(delta.Y)
	oz := heA.Z + heB.Z - math.Abs(delta.Z)

	if ox <= 0 || oy <= 0 || oz <= 0 {
		return Manifold{}, false
	}

	overlap := ox
	axis := 0
	if oy < overlap {
		overlap, axis = oy, 1
	}
	if oz < overlap {
		overlap, axis = oz, 2
	}

	var normal Vec3
	switch axis {
	case 0:
		normal = Vec3{bToASign(delta.X), 0, 0}
	case 1:
		normal = Vec3{0, bToASign(delta.Y), 0}
	default:
		normal = Vec3{0, 0, bToASign(delta.Z)}
	}

	return Manifold{A: a, B: b, Normal: normal, Penetration: overlap}, true
}

// bToASign returns the sign of the b-to-a normal component given the
// corresponding component of (center_b - center_a): the opposite sign,
// or positive when the component is exactly zero.
func bToASign(centerBMinusA float64) float64 {
	if centerBMinusA > 0 {
		return -1
	}
	return 1
}
