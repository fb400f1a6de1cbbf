package sim

import (
	"math"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

// explode applies blast damage around pos with linear falloff: full maxDmg at
// the center, zero at the edge. Cover blocks the blast entirely; a target
// behind a wall or a closed door takes nothing. Locked doors inside the
// radius are blown off their hinges.
func (w *World) explode(pos geom.Vec2, radius, maxDmg float64) {
	if radius <= 0 {
		return
	}
	falloff := func(d float64) float64 {
		f := maxDmg * (1 - d/radius)
		if f < 0 {
			return 0
		}
		return f
	}

	for _, e := range w.Enemies {
		d := e.Pos.DistTo(pos)
		if d > radius || occluded(pos, e.Pos, w.segs) {
			continue
		}
		w.damageEnemy(e, falloff(d))
	}

	if d := w.Player.Pos.DistTo(pos); d <= radius && !occluded(pos, w.Player.Pos, w.segs) {
		w.hurtPlayerRaw(falloff(d))
	}

	for id, rp := range w.Peers {
		d := rp.Pos.DistTo(pos)
		if d > radius || occluded(pos, rp.Pos, w.segs) {
			continue
		}
		w.outbox.Send(netmsg.NewTo(netmsg.TypePlayerHit, w.LocalID, id,
			netmsg.PlayerHit{Target: id, Damage: falloff(d), FromX: pos.X, FromY: pos.Y}))
	}

	// Breach: locked doors in the radius are destroyed, not swung.
	var blown []*Door
	for _, d := range w.Doors {
		if !d.Locked {
			continue
		}
		cp := geom.ClosestPointOnSegment(pos, d.Segment())
		if cp.DistTo(pos) <= radius {
			blown = append(blown, d)
		}
	}
	for _, d := range blown {
		w.destroyDoor(d)
	}
	if len(blown) > 0 {
		w.segs = BuildDynamicSegments(w.Walls, w.Doors)
	}

	w.addImpact(pos)
	w.removeDeadEnemies()
}

// flashBang blinds actors exposed to the burst. The player is affected only
// if the burst point lies inside their current vision polygon; the blind
// window scales down as their facing turns away from the flash. Enemies use
// the cheaper direct occlusion test.
func (w *World) flashBang(pos geom.Vec2, def *resource.ThrowableDef) {
	p := w.Player
	if p.Pos.DistTo(pos) <= def.Radius {
		poly := w.VisibilityPolygon(p.Pos)
		if len(poly) >= 3 && pointInPoly(pos, poly) {
			p.BlindTimer = math.Max(p.BlindTimer, blindDuration(pos, p.Pos, p.Facing))
		}
	}
	for _, e := range w.Enemies {
		if e.Pos.DistTo(pos) > def.Radius || occluded(pos, e.Pos, w.segs) {
			continue
		}
		e.BlindTimer = math.Max(e.BlindTimer, blindDuration(pos, e.Pos, e.Facing))
	}
	w.addSound(pos, SoundExplosion, def.SoundRadius, false)
}

// blindDuration interpolates the blind window by exposure angle: staring at
// the flash gets the maximum, facing directly away the minimum.
func blindDuration(flash, at geom.Vec2, facing float64) float64 {
	bearing := flash.Sub(at).Angle()
	frac := math.Abs(geom.AngleDiff(bearing, facing)) / math.Pi
	return flashBlindMax + (flashBlindMin-flashBlindMax)*frac
}
