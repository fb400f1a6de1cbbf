// Package vision computes shadow-cast visibility polygons and occlusion
// queries against the per-tick dynamic segment set.
package vision

import (
	"math"
	"sort"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
)

// angleEps offsets the two extra rays cast past each occluder endpoint so
// corners resolve without gaps in the polygon.
const angleEps = 1e-4

// Polygon computes the star-shaped visibility polygon around origin against
// the given occluder segments. farDist bounds rays that hit nothing (callers
// pass the scene's diagonal extent). Vertices come back sorted by angle and
// are suitable for fog clipping and point-in-polygon exposure tests.
func Polygon(origin geom.Vec2, segs []geom.Segment, farDist float64) []geom.Vec2 {
	angles := collectAngles(origin, segs)

	poly := make([]geom.Vec2, 0, len(angles))
	for _, a := range angles {
		poly = append(poly, castRay(origin, a, segs, farDist))
	}
	return poly
}

// collectAngles generates three rays per occluder endpoint (exact and ±eps),
// normalized and de-duplicated, sorted ascending.
func collectAngles(origin geom.Vec2, segs []geom.Segment) []float64 {
	angles := make([]float64, 0, len(segs)*6)
	add := func(p geom.Vec2) {
		a := p.Sub(origin).Angle()
		angles = append(angles, geom.NormalizeAngle(a-angleEps), a, geom.NormalizeAngle(a+angleEps))
	}
	for _, s := range segs {
		add(s.A)
		add(s.B)
	}
	sort.Float64s(angles)

	dedup := angles[:0]
	last := math.Inf(-1)
	for _, a := range angles {
		if a-last < angleEps/2 {
			continue
		}
		dedup = append(dedup, a)
		last = a
	}
	return dedup
}

// castRay returns the nearest segment hit along angle a, or a synthetic far
// point when nothing occludes.
func castRay(origin geom.Vec2, a float64, segs []geom.Segment, farDist float64) geom.Vec2 {
	dir := geom.FromAngle(a)
	best := farDist
	hit := origin.Add(dir.Scale(farDist))
	for _, s := range segs {
		t, pt, ok := geom.RaySegment(origin, dir, s)
		if ok && t < best {
			best = t
			hit = pt
		}
	}
	return hit
}

// PointInPolygon reports whether p lies inside the polygon by even-odd ray
// crossing. An empty polygon contains nothing.
func PointInPolygon(p geom.Vec2, poly []geom.Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Occluded reports whether the straight line a→b crosses any segment. This is
// the cheap direct test used for enemy sight and explosion falloff, avoiding
// a full polygon build per query.
func Occluded(a, b geom.Vec2, segs []geom.Segment) bool {
	line := geom.Segment{A: a, B: b}
	for _, s := range segs {
		if _, _, ok := geom.SegmentsIntersect(line, s); ok {
			return true
		}
	}
	return false
}
