package sim

import (
	"math"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

// MeleeSwing is an in-progress player sweep. The blade edge travels from
// start to end over the weapon's swing time with an ease-out profile, and the
// band swept since the previous tick is what can connect, so no angle is
// skipped at any frame rate.
type MeleeSwing struct {
	Def   *resource.WeaponDef
	start float64
	end   float64
	prev  float64

	elapsed float64
	hit     map[int]bool
}

func (w *World) startPlayerSwing(def *resource.WeaponDef) {
	p := w.Player
	half := def.MeleeArc / 2
	s := &MeleeSwing{
		Def:   def,
		start: p.Facing - half,
		end:   p.Facing + half,
		hit:   map[int]bool{},
	}
	s.prev = s.start
	p.Swing = s
	p.meleeCooldown = def.MeleeCool
	p.Healing = false
}

func (w *World) tickMelee(dt float64) {
	p := w.Player
	s := p.Swing
	if s == nil {
		return
	}

	s.elapsed += dt
	frac := s.elapsed / s.Def.MeleeTime
	if frac > 1 {
		frac = 1
	}
	// Ease-out: fast at the start of the arc, settling at the end.
	eased := 1 - (1-frac)*(1-frac)
	cur := s.start + (s.end-s.start)*eased
	width := cur - s.prev

	for _, e := range w.Enemies {
		if s.hit[e.ID] {
			continue
		}
		to := e.Pos.Sub(p.Pos)
		dist := to.Len()
		if dist < s.Def.MeleeInner || dist > w.meleeReach(p.Pos, to.Angle(), s.Def.MeleeRange) {
			continue
		}
		if !geom.AngleWithinSweep(to.Angle(), s.prev, width) {
			continue
		}
		if occluded(p.Pos, e.Pos, w.segs) {
			continue
		}
		s.hit[e.ID] = true
		// A connected sweep is a takedown regardless of the blade's stats.
		// Only the shield bash deals graduated damage.
		e.HitFlash = hitFlashTime
		e.Health = 0
	}
	w.removeDeadEnemies()

	s.prev = cur
	if frac >= 1 {
		p.Swing = nil
	}
}

// meleeReach clamps the sweep's outer radius along one bearing by the nearest
// wall, so a blade never reaches through geometry.
func (w *World) meleeReach(from geom.Vec2, bearing, maxRange float64) float64 {
	dir := geom.FromAngle(bearing)
	reach := maxRange
	for _, s := range w.segs {
		if t, _, ok := geom.RaySegment(from, dir, s); ok && t < reach {
			reach = t
		}
	}
	return reach
}

// shieldBash is the shield's attack: an instant forward cone that damages and
// stuns everything it catches.
func (w *World) shieldBash(def *resource.WeaponDef) {
	p := w.Player
	p.meleeCooldown = def.MeleeCool
	for _, e := range w.Enemies {
		to := e.Pos.Sub(p.Pos)
		if to.Len() > def.MeleeRange {
			continue
		}
		if math.Abs(geom.AngleDiff(to.Angle(), p.Facing)) > def.MeleeArc/2 {
			continue
		}
		if occluded(p.Pos, e.Pos, w.segs) {
			continue
		}
		w.damageEnemy(e, def.Damage)
		if def.StunDuration > 0 {
			e.StunTimer = def.StunDuration
		}
	}
	w.removeDeadEnemies()
}

// enemyMeleeStrike resolves an advanced enemy's swing at the moment it lands.
// A raised shield facing the attacker blocks the hit and stuns the attacker
// instead; the shield eats the damage as durability.
func (w *World) enemyMeleeStrike(e *Enemy) {
	p := w.Player
	to := p.Pos.Sub(e.Pos)
	if to.Len() > advMeleeRange+p.Radius {
		return
	}
	if math.Abs(geom.AngleDiff(to.Angle(), e.Facing)) > advMeleeArc/2 {
		return
	}
	if occluded(e.Pos, p.Pos, w.segs) {
		return
	}

	bearing := e.Pos.Sub(p.Pos).Angle()
	if sh := p.equippedShield(); sh != nil && sh.Durability > 0 &&
		math.Abs(geom.AngleDiff(bearing, p.Facing)) <= shieldFrontHalfArc {
		sh.Durability = math.Max(0, sh.Durability-advMeleeDamage)
		e.StunTimer = shieldBlockStun
		return
	}
	w.hurtPlayerRaw(advMeleeDamage)
}
