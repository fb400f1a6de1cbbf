package sim

import (
	"math"

	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
)

// SoundKind tags a sound event for AI prioritization and client playback.
type SoundKind string

const (
	SoundGunfire   SoundKind = "gunfire"
	SoundDoor      SoundKind = "door"
	SoundExplosion SoundKind = "explosion"
	SoundImpact    SoundKind = "impact"
)

// SoundEvent is an expanding circle. AI reacts when the wavefront crosses a
// listener between two ticks, so each sound triggers each listener at most
// once without per-listener bookkeeping.
type SoundEvent struct {
	Pos       geom.Vec2
	Kind      SoundKind
	Radius    float64
	MaxRadius float64
	// PlayerFire marks sounds produced by the player's own weapon; those
	// suppress rather than merely attract.
	PlayerFire bool

	prevRadius float64
}

// Crossed reports whether the wavefront passed over p during the last tick.
func (s *SoundEvent) Crossed(p geom.Vec2) bool {
	d := s.Pos.DistTo(p)
	return d > s.prevRadius && d <= s.Radius
}

func (w *World) addSound(pos geom.Vec2, kind SoundKind, maxRadius float64, playerFire bool) {
	if maxRadius <= 0 {
		return
	}
	w.Sounds = append(w.Sounds, &SoundEvent{Pos: pos, Kind: kind, MaxRadius: maxRadius, PlayerFire: playerFire})
}

// Impact is a short-lived hit flash at a bullet's terminal point.
type Impact struct {
	Pos geom.Vec2
	Age float64
}

func (w *World) addImpact(pos geom.Vec2) {
	w.Impacts = append(w.Impacts, &Impact{Pos: pos})
}

// ZoneKind tags a persistent area effect.
type ZoneKind string

const (
	ZoneFire  ZoneKind = "fire"
	ZoneSmoke ZoneKind = "smoke"
)

// AreaEffect is a ground circle that burns or blocks sight until its TTL runs
// out.
type AreaEffect struct {
	Pos    geom.Vec2
	Radius float64
	Kind   ZoneKind
	TTL    float64
	DPS    float64
}

// smokeBlocks reports whether any smoke zone intersects the sight line a-b.
func (w *World) smokeBlocks(a, b geom.Vec2) bool {
	seg := geom.Segment{A: a, B: b}
	for _, z := range w.Zones {
		if z.Kind != ZoneSmoke {
			continue
		}
		cp := geom.ClosestPointOnSegment(z.Pos, seg)
		if cp.DistTo(z.Pos) <= z.Radius {
			return true
		}
	}
	return false
}

// decayEffects runs the end-of-tick bookkeeping: sound expansion, impact and
// zone aging, fire-zone contact, damage-over-time, and timer decay.
func (w *World) decayEffects(dt float64) {
	sounds := w.Sounds[:0]
	for _, s := range w.Sounds {
		s.prevRadius = s.Radius
		s.Radius += soundExpandSpeed * dt
		if s.prevRadius < s.MaxRadius {
			sounds = append(sounds, s)
		}
	}
	w.Sounds = sounds

	impacts := w.Impacts[:0]
	for _, im := range w.Impacts {
		im.Age += dt
		if im.Age < impactTTL {
			impacts = append(impacts, im)
		}
	}
	w.Impacts = impacts

	zones := w.Zones[:0]
	for _, z := range w.Zones {
		z.TTL -= dt
		if z.TTL <= 0 {
			continue
		}
		zones = append(zones, z)
		if z.Kind != ZoneFire {
			continue
		}
		if w.Player.Pos.DistTo(z.Pos) <= z.Radius+w.Player.Radius {
			w.Player.Burning = burnDuration
			w.Player.BurnDPS = z.DPS
		}
		for _, e := range w.Enemies {
			if e.Pos.DistTo(z.Pos) <= z.Radius+e.Radius {
				e.Burning = burnDuration
				e.BurnDPS = z.DPS
			}
		}
	}
	w.Zones = zones

	p := w.Player
	if p.Burning > 0 {
		p.Burning -= dt
		dps := p.BurnDPS
		if dps <= 0 {
			dps = burnDPS
		}
		w.hurtPlayerRaw(dps * dt)
	}
	if p.BleedTimer > 0 {
		p.BleedTimer -= dt
		w.hurtPlayerRaw(bleedDPSPerStack * float64(p.BleedStacks) * dt)
		if p.BleedTimer <= 0 {
			p.BleedStacks = 0
		}
	}
	if p.BlindTimer > 0 {
		p.BlindTimer -= dt
	}
	if p.HitFlash > 0 {
		p.HitFlash -= dt
	}

	for _, e := range w.Enemies {
		if e.Burning > 0 {
			e.Burning -= dt
			dps := e.BurnDPS
			if dps <= 0 {
				dps = burnDPS
			}
			e.Health -= dps * dt
		}
		if e.BleedTimer > 0 {
			e.BleedTimer -= dt
			e.Health -= bleedDPSPerStack * float64(e.BleedStacks) * dt
			if e.BleedTimer <= 0 {
				e.BleedStacks = 0
			}
		}
		if e.BlindTimer > 0 {
			e.BlindTimer -= dt
		}
		if e.HitFlash > 0 {
			e.HitFlash -= dt
		}
	}
	w.removeDeadEnemies()
}

// bleedEnemy adds one bleed stack, capped; a new stack refreshes the shared
// timer rather than extending it.
func bleedEnemy(e *Enemy, stacks int) {
	for i := 0; i < stacks; i++ {
		if e.BleedStacks < bleedMaxStacks {
			e.BleedStacks++
		}
	}
	if e.BleedStacks > 0 {
		e.BleedTimer = bleedDuration
	}
}

func bleedPlayer(p *Player, stacks int) {
	for i := 0; i < stacks; i++ {
		if p.BleedStacks < bleedMaxStacks {
			p.BleedStacks++
		}
	}
	if p.BleedStacks > 0 {
		p.BleedTimer = bleedDuration
	}
}

// hurtPlayerRaw applies damage that bypasses shield mitigation (burn, bleed,
// blast).
func (w *World) hurtPlayerRaw(amount float64) {
	if amount <= 0 || w.Player.Health <= 0 {
		return
	}
	w.Player.Health -= amount
	w.Player.HitFlash = hitFlashTime
	if w.Player.Health <= 0 {
		w.Player.Health = 0
		w.logger.Info("player down", zap.Float64("t", w.now))
	}
}

// damagePlayer applies directional damage from a source point, with shield
// mitigation. An equipped shield absorbs frontal hits into its durability; a
// stowed shield protects the back but passes a fraction of the damage
// through.
func (w *World) damagePlayer(amount float64, from geom.Vec2) {
	p := w.Player
	if amount <= 0 || p.Health <= 0 {
		return
	}
	bearing := from.Sub(p.Pos).Angle()

	if sh := p.equippedShield(); sh != nil && sh.Durability > 0 &&
		math.Abs(geom.AngleDiff(bearing, p.Facing)) <= shieldFrontHalfArc {
		absorbed := math.Min(amount, sh.Durability)
		sh.Durability -= absorbed
		amount -= absorbed
		if amount <= 0 {
			return
		}
	} else if sh := p.stowedShield(); sh != nil && sh.Durability > 0 &&
		math.Abs(geom.AngleDiff(bearing, p.Facing+math.Pi)) <= shieldRearHalfArc {
		passed := amount * rearPassFraction
		absorbed := math.Min(amount-passed, sh.Durability)
		sh.Durability -= absorbed
		amount = passed + (amount - passed - absorbed)
	}
	w.hurtPlayerRaw(amount)
}

func (w *World) damageEnemy(e *Enemy, amount float64) {
	if amount <= 0 {
		return
	}
	e.Health -= amount
	e.HitFlash = hitFlashTime
}
