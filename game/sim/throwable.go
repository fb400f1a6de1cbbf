package sim

import (
	"math"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

const (
	throwRestitution = 0.55
	throwFriction    = 1.8 // exponential velocity decay per second
)

// Throwable is a grenade in flight or at rest, counting down its fuse.
type Throwable struct {
	Def    *resource.ThrowableDef
	Pos    geom.Vec2
	Vel    geom.Vec2
	Fuse   float64
	Radius float64
	// Bounced is set on the first wall contact; clients use it to switch the
	// bounce sound off for subsequent low-speed contacts.
	Bounced bool
}

func (w *World) tickThrowables(dt float64) {
	kept := w.Throwables[:0]
	for _, t := range w.Throwables {
		t.Fuse -= dt
		if t.Fuse <= 0 {
			w.detonate(t.Def, t.Pos)
			continue
		}
		w.moveThrowable(t, dt)
		kept = append(kept, t)
	}
	w.Throwables = kept
}

// moveThrowable advances one grenade with swept wall reflection. Up to three
// bounces can resolve inside a single tick in a tight corner.
func (w *World) moveThrowable(t *Throwable, dt float64) {
	remaining := dt
	for i := 0; i < 3 && remaining > 0; i++ {
		p0 := t.Pos
		p1 := p0.Add(t.Vel.Scale(remaining))
		step := geom.Segment{A: p0, B: p1}

		bestT := math.Inf(1)
		var hitSeg geom.Segment
		for _, s := range w.segs {
			if tt, _, ok := geom.SegmentsIntersect(step, s); ok && tt < bestT {
				bestT, hitSeg = tt, s
			}
		}
		if math.IsInf(bestT, 1) {
			t.Pos = p1
			break
		}

		hitPos := p0.Add(p1.Sub(p0).Scale(bestT))
		normal := hitSeg.B.Sub(hitSeg.A).Perp().Norm()
		// Reflect and damp.
		t.Vel = t.Vel.Sub(normal.Scale(2 * t.Vel.Dot(normal))).Scale(throwRestitution)
		t.Pos = hitPos.Add(normal.Scale(math.Copysign(t.Radius+0.5, t.Vel.Dot(normal))))
		t.Bounced = true
		remaining *= 1 - bestT
	}

	t.Vel = t.Vel.Scale(math.Exp(-throwFriction * dt))
	if t.Vel.Len() < 4 {
		t.Vel = geom.Vec2{}
	}
	t.Pos.X = geom.Clamp(t.Pos.X, t.Radius, w.W-t.Radius)
	t.Pos.Y = geom.Clamp(t.Pos.Y, t.Radius, w.H-t.Radius)
}

// detonate resolves a throwable's payload at a point. Called both on fuse
// expiry in flight and for an over-cooked grenade still in hand.
func (w *World) detonate(def *resource.ThrowableDef, pos geom.Vec2) {
	switch def.Kind {
	case "flash":
		w.flashBang(pos, def)
	case "incendiary":
		w.Zones = append(w.Zones, &AreaEffect{
			Pos: pos, Radius: def.Radius, Kind: ZoneFire, TTL: def.EffectTTL, DPS: def.BurnDPS,
		})
		w.explode(pos, def.Radius*0.5, def.MaxDamage)
		w.addSound(pos, SoundExplosion, def.SoundRadius, false)
	case "smoke":
		w.Zones = append(w.Zones, &AreaEffect{
			Pos: pos, Radius: def.Radius, Kind: ZoneSmoke, TTL: def.EffectTTL,
		})
		w.addSound(pos, SoundImpact, def.SoundRadius, false)
	default: // frag
		w.explode(pos, def.Radius, def.MaxDamage)
		w.addSound(pos, SoundExplosion, def.SoundRadius, false)
	}
}
