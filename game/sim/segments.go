package sim

import (
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/vision"
)

// BuildDynamicSegments assembles the per-tick occluder set: every static
// wall edge plus one segment per door at its current angle. Pure function;
// World.Tick calls it exactly once per tick and every collision, visibility
// and AI occlusion query that tick shares the result.
func BuildDynamicSegments(walls []geom.Rect, doors []*Door) []geom.Segment {
	segs := make([]geom.Segment, 0, len(walls)*4+len(doors))
	for _, wall := range walls {
		e := wall.Edges()
		segs = append(segs, e[0], e[1], e[2], e[3])
	}
	for _, d := range doors {
		segs = append(segs, d.Segment())
	}
	return segs
}

func visionPolygon(origin geom.Vec2, segs []geom.Segment, diag float64) []geom.Vec2 {
	return vision.Polygon(origin, segs, diag)
}

// occluded is the direct line test shared by AI sight, explosion falloff and
// melee hit confirmation.
func occluded(a, b geom.Vec2, segs []geom.Segment) bool {
	return vision.Occluded(a, b, segs)
}

func pointInPoly(p geom.Vec2, poly []geom.Vec2) bool {
	return vision.PointInPolygon(p, poly)
}
