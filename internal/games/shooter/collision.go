package shooter

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max mgl32.Vec3
}

// BoxAt builds a box from its center and full size.
func BoxAt(center, size mgl32.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the middle of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Intersects reports whether two boxes overlap with positive volume.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y() &&
		b.Min.Z() < o.Max.Z() && b.Max.Z() > o.Min.Z()
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// Ray is a half line. Dir should be normalized so hit distances are in world units.
type Ray struct {
	Origin, Dir mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit describes where a ray met a surface.
type Hit struct {
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// IntersectBox runs the slab test against b. A ray starting inside the box
// hits at distance 0 facing back along the ray.
func (r Ray) IntersectBox(b AABB) (Hit, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	var normal mgl32.Vec3

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Dir[axis]
		lo, hi := b.Min[axis], b.Max[axis]

		if d > -1e-8 && d < 1e-8 {
			if o < lo || o > hi {
				return Hit{}, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = mgl32.Vec3{}
			normal[axis] = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return Hit{}, false
		}
	}

	if tmax < 0 {
		return Hit{}, false
	}
	if tmin < 0 {
		return Hit{Distance: 0, Point: r.Origin, Normal: r.Dir.Mul(-1)}, true
	}
	return Hit{Distance: tmin, Point: r.At(tmin), Normal: normal}, true
}
