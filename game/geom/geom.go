package geom

import "math"

// Eps guards the determinant forms against near-parallel input.
const Eps = 1e-9

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

// Cross returns the 2D cross product (z component of the 3D cross).
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistTo(o Vec2) float64 { return o.Sub(v).Len() }

// Norm returns the unit vector in v's direction. The zero vector
// normalizes to itself instead of producing NaN.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l < Eps {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the heading of v in radians (0 = +X, pi/2 = +Y).
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Perp returns v rotated 90 degrees counterclockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// FromAngle returns the unit vector pointing along angle a.
func FromAngle(a float64) Vec2 { return Vec2{math.Cos(a), math.Sin(a)} }

// Rect is an axis-aligned rectangle with top-left corner (X, Y).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Edges returns the four boundary segments in clockwise order.
func (r Rect) Edges() [4]Segment {
	tl := Vec2{r.X, r.Y}
	tr := Vec2{r.X + r.W, r.Y}
	br := Vec2{r.X + r.W, r.Y + r.H}
	bl := Vec2{r.X, r.Y + r.H}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// Segment is a line segment between two endpoints.
type Segment struct {
	A, B Vec2
}

func (s Segment) Len() float64 { return s.B.Sub(s.A).Len() }

// ClosestPointOnSegment returns the point on s nearest to p.
func ClosestPointOnSegment(p Vec2, s Segment) Vec2 {
	d := s.B.Sub(s.A)
	l2 := d.Dot(d)
	if l2 < Eps {
		return s.A
	}
	t := p.Sub(s.A).Dot(d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.A.Add(d.Scale(t))
}

// ResolveCircleRect pushes a circle out of an axis-aligned rectangle.
// Returns the resolved center and whether the circle overlapped at all.
// A center strictly inside the rect is pushed toward the nearest face,
// since the clamped-point normal would be zero-length there.
func ResolveCircleRect(c Vec2, r float64, rect Rect) (Vec2, bool) {
	cx := math.Max(rect.X, math.Min(c.X, rect.X+rect.W))
	cy := math.Max(rect.Y, math.Min(c.Y, rect.Y+rect.H))
	closest := Vec2{cx, cy}

	sep := c.Sub(closest)
	dist := sep.Len()

	if dist > Eps {
		if dist >= r {
			return c, false
		}
		return closest.Add(sep.Norm().Scale(r)), true
	}

	// Center inside the rect: push toward the nearest face.
	left := c.X - rect.X
	right := rect.X + rect.W - c.X
	top := c.Y - rect.Y
	bottom := rect.Y + rect.H - c.Y

	minPen := math.Min(math.Min(left, right), math.Min(top, bottom))
	switch minPen {
	case left:
		return Vec2{rect.X - r, c.Y}, true
	case right:
		return Vec2{rect.X + rect.W + r, c.Y}, true
	case top:
		return Vec2{c.X, rect.Y - r}, true
	default:
		return Vec2{c.X, rect.Y + rect.H + r}, true
	}
}

// ResolveCircleSegment pushes a circle out of a thick segment (a capsule of
// radius thickness/2 around the centerline). Used for door panels. When the
// center lies exactly on the centerline the push falls back to the segment's
// perpendicular.
func ResolveCircleSegment(c Vec2, r float64, s Segment, thickness float64) (Vec2, bool) {
	closest := ClosestPointOnSegment(c, s)
	sep := c.Sub(closest)
	dist := sep.Len()
	reach := r + thickness/2

	if dist >= reach {
		return c, false
	}
	if dist < Eps {
		n := s.B.Sub(s.A).Perp().Norm()
		if n == (Vec2{}) {
			n = Vec2{1, 0}
		}
		return closest.Add(n.Scale(reach)), true
	}
	return closest.Add(sep.Norm().Scale(reach)), true
}

// RaySegment intersects the ray origin + t*dir (t >= 0) with segment s.
// Returns the parametric distance t, the hit point, and false for parallel
// or non-intersecting input.
func RaySegment(origin, dir Vec2, s Segment) (float64, Vec2, bool) {
	d := s.B.Sub(s.A)
	denom := dir.Cross(d)
	if math.Abs(denom) < Eps {
		return 0, Vec2{}, false
	}
	diff := s.A.Sub(origin)
	t := diff.Cross(d) / denom
	u := diff.Cross(dir) / denom
	if t < 0 || u < -Eps || u > 1+Eps {
		return 0, Vec2{}, false
	}
	return t, origin.Add(dir.Scale(t)), true
}

// SegmentsIntersect intersects two segments, returning the parametric
// position t along a (0..1) and the intersection point.
func SegmentsIntersect(a, b Segment) (float64, Vec2, bool) {
	da := a.B.Sub(a.A)
	db := b.B.Sub(b.A)
	denom := da.Cross(db)
	if math.Abs(denom) < Eps {
		return 0, Vec2{}, false
	}
	diff := b.A.Sub(a.A)
	t := diff.Cross(db) / denom
	u := diff.Cross(da) / denom
	if t < -Eps || t > 1+Eps || u < -Eps || u > 1+Eps {
		return 0, Vec2{}, false
	}
	return t, a.A.Add(da.Scale(t)), true
}

// SweptCircle tests the segment p0→p1 against a circle and returns the
// earliest contact time t in [0, 1]. A start point already inside the circle
// reports an immediate hit at t = 0, which keeps fast movers from tunneling
// through thin targets within one step.
func SweptCircle(p0, p1, center Vec2, radius float64) (float64, bool) {
	m := p0.Sub(center)
	cc := m.Dot(m) - radius*radius
	if cc <= 0 {
		return 0, true
	}
	d := p1.Sub(p0)
	a := d.Dot(d)
	if a < Eps {
		return 0, false
	}
	b := 2 * m.Dot(d)
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// NormalizeAngle wraps a to (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the shortest signed difference a-b, in (-pi, pi].
func AngleDiff(a, b float64) float64 { return NormalizeAngle(a - b) }

// AngleWithinSweep reports whether angle x lies inside the wrap-aware band
// swept from angle `from` through a signed `width`.
func AngleWithinSweep(x, from, width float64) bool {
	if width < 0 {
		from += width
		width = -width
	}
	d := math.Mod(x-from, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d <= width+Eps
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
