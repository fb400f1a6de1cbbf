package sim

import (
	"math"

	"github.com/google/uuid"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

const impactSoundRadius = 180.0

type ownerKind int

const (
	ownerPlayer ownerKind = iota
	ownerEnemy
)

// Bullet is a physical projectile in flight. Hitscan shots never become
// bullets; they resolve instantly in hitscan.
type Bullet struct {
	Def    *resource.WeaponDef
	Pos    geom.Vec2
	Vel    geom.Vec2
	Radius float64
	Owner  ownerKind

	Traveled float64

	// Homing lock, by stable enemy id. -1 means no lock. Ids, not pointers,
	// so a dead target simply stops resolving and the round flies straight.
	lockID   int
	released bool
}

func (w *World) spawnBullet(origin geom.Vec2, angle float64, def *resource.WeaponDef, owner ownerKind) {
	r := def.BulletRadius
	if r <= 0 {
		r = 2
	}
	w.Bullets = append(w.Bullets, &Bullet{
		Def:    def,
		Pos:    origin,
		Vel:    geom.FromAngle(angle).Scale(def.BulletSpeed),
		Radius: r,
		Owner:  owner,
		lockID: -1,
	})
}

// hitscan resolves an instantaneous shot: the nearest of the first wall
// intersection and the first target along the ray takes the hit. The terminal
// point always gets an impact flash and an impact sound.
func (w *World) hitscan(origin geom.Vec2, angle float64, def *resource.WeaponDef, owner ownerKind) {
	dir := geom.FromAngle(angle)

	wallDist := w.diag
	for _, s := range w.segs {
		if t, _, ok := geom.RaySegment(origin, dir, s); ok && t < wallDist {
			wallDist = t
		}
	}

	var hitEnemy *Enemy
	hitPeer := uuid.Nil
	hitPlayer := false
	hitDist := wallDist

	if owner == ownerPlayer {
		for _, e := range w.Enemies {
			if t, ok := rayCircle(origin, dir, e.Pos, e.Radius); ok && t < hitDist {
				hitDist, hitEnemy, hitPeer = t, e, uuid.Nil
			}
		}
		for id, rp := range w.Peers {
			if t, ok := rayCircle(origin, dir, rp.Pos, playerRadius); ok && t < hitDist {
				hitDist, hitEnemy, hitPeer = t, nil, id
			}
		}
	} else {
		if t, ok := rayCircle(origin, dir, w.Player.Pos, w.Player.Radius); ok && t < hitDist {
			hitDist, hitPlayer = t, true
		}
	}

	end := origin.Add(dir.Scale(hitDist))
	switch {
	case hitEnemy != nil:
		w.damageEnemy(hitEnemy, def.Damage)
		if def.Incendiary {
			hitEnemy.Burning = burnDuration
			hitEnemy.BurnDPS = burnDPS
		}
	case hitPeer != uuid.Nil:
		w.outbox.Send(netmsg.NewTo(netmsg.TypePlayerHit, w.LocalID, hitPeer,
			netmsg.PlayerHit{Target: hitPeer, Damage: def.Damage, FromX: origin.X, FromY: origin.Y}))
	case hitPlayer:
		w.damagePlayer(def.Damage, origin)
	}
	w.addImpact(end)
	w.addSound(end, SoundImpact, impactSoundRadius, false)
}

// rayCircle returns the entry distance of a ray into a circle.
func rayCircle(origin, dir, center geom.Vec2, radius float64) (float64, bool) {
	oc := center.Sub(origin)
	proj := oc.Dot(dir)
	if proj < 0 {
		return 0, false
	}
	perp2 := oc.Dot(oc) - proj*proj
	r2 := radius * radius
	if perp2 > r2 {
		return 0, false
	}
	t := proj - math.Sqrt(r2-perp2)
	if t < 0 {
		t = 0
	}
	return t, true
}

func (w *World) tickBullets(dt float64) {
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		if w.advanceBullet(b, dt) {
			kept = append(kept, b)
		}
	}
	w.Bullets = kept
	w.removeDeadEnemies()
}

// advanceBullet moves one bullet a full step with swept collision, so no
// speed tunnels through a wall or a target. Returns false when the bullet is
// spent.
func (w *World) advanceBullet(b *Bullet, dt float64) bool {
	if b.Def.Class == resource.ClassHoming {
		w.steerHoming(b, dt)
	}

	p0 := b.Pos
	p1 := p0.Add(b.Vel.Scale(dt))
	step := geom.Segment{A: p0, B: p1}
	stepLen := p0.DistTo(p1)

	// Earliest event along the step wins.
	bestT := math.Inf(1)
	var hitWall bool
	var hitEnemy *Enemy
	hitPeer := uuid.Nil
	hitPlayer := false

	for _, s := range w.segs {
		if t, _, ok := geom.SegmentsIntersect(step, s); ok && t < bestT {
			bestT, hitWall = t, true
			hitEnemy, hitPeer, hitPlayer = nil, uuid.Nil, false
		}
	}
	if b.Owner == ownerPlayer {
		for _, e := range w.Enemies {
			if t, ok := geom.SweptCircle(p0, p1, e.Pos, e.Radius+b.Radius); ok && t < bestT {
				bestT, hitWall, hitEnemy, hitPeer = t, false, e, uuid.Nil
			}
		}
		for id, rp := range w.Peers {
			if t, ok := geom.SweptCircle(p0, p1, rp.Pos, playerRadius+b.Radius); ok && t < bestT {
				bestT, hitWall, hitEnemy, hitPeer = t, false, nil, id
			}
		}
	} else {
		if t, ok := geom.SweptCircle(p0, p1, w.Player.Pos, w.Player.Radius+b.Radius); ok && t < bestT {
			bestT, hitWall, hitPlayer = t, false, true
		}
	}

	// Rocket proximity fuse: an inflated swept circle against every target.
	if b.Def.Class == resource.ClassRocket && b.Def.ProxRadius > 0 {
		for _, e := range w.Enemies {
			if t, ok := geom.SweptCircle(p0, p1, e.Pos, e.Radius+b.Def.ProxRadius); ok && t < bestT {
				bestT, hitWall, hitEnemy, hitPeer, hitPlayer = t, false, nil, uuid.Nil, false
			}
		}
	}

	if math.IsInf(bestT, 1) {
		b.Pos = p1
		b.Traveled += stepLen
		if w.airburstDue(b) {
			w.airburst(b)
			return false
		}
		if b.Pos.X < -b.Radius || b.Pos.Y < -b.Radius || b.Pos.X > w.W+b.Radius || b.Pos.Y > w.H+b.Radius {
			return false
		}
		return true
	}

	hitPos := p0.Add(p1.Sub(p0).Scale(bestT))
	b.Pos = hitPos
	b.Traveled += stepLen * bestT

	switch b.Def.Class {
	case resource.ClassExplosive, resource.ClassRocket:
		w.explode(hitPos, b.Def.BlastRadius, b.Def.MaxDamage)
	case resource.ClassHoming:
		w.airburst(b)
	default:
		if hitEnemy != nil {
			w.damageEnemy(hitEnemy, b.Def.Damage)
			if b.Def.Incendiary {
				hitEnemy.Burning = burnDuration
				hitEnemy.BurnDPS = burnDPS
			}
		} else if hitPeer != uuid.Nil {
			w.outbox.Send(netmsg.NewTo(netmsg.TypePlayerHit, w.LocalID, hitPeer,
				netmsg.PlayerHit{Target: hitPeer, Damage: b.Def.Damage, FromX: p0.X, FromY: p0.Y}))
		} else if hitPlayer {
			w.damagePlayer(b.Def.Damage, p0)
		}
		if hitWall {
			w.addImpact(hitPos)
			w.addSound(hitPos, SoundImpact, impactSoundRadius, false)
		}
	}
	return false
}

// steerHoming acquires and tracks a lock. Acquisition considers only targets
// ahead of the heading whose perpendicular distance to the projected path is
// within AcquireRange, takes the one closest to the path, and never
// re-targets. Steering turns at TurnRate until the heading error drops below
// the release threshold, then the round flies ballistic.
func (w *World) steerHoming(b *Bullet, dt float64) {
	heading := b.Vel.Angle()

	if b.lockID < 0 {
		dir := geom.FromAngle(heading)
		best := -1
		bestPerp := b.Def.AcquireRange
		for _, e := range w.Enemies {
			to := e.Pos.Sub(b.Pos)
			ahead := to.Dot(dir)
			if ahead < 0 {
				continue
			}
			if perp := to.Sub(dir.Scale(ahead)).Len(); perp <= bestPerp {
				best, bestPerp = e.ID, perp
			}
		}
		if best < 0 {
			return
		}
		b.lockID = best
	}
	if b.released {
		return
	}
	target := w.EnemyByID(b.lockID)
	if target == nil {
		return
	}
	want := target.Pos.Sub(b.Pos).Angle()
	err := geom.AngleDiff(want, heading)
	if math.Abs(err) < homingReleaseAngle {
		b.released = true
		return
	}
	turn := geom.Clamp(err, -b.Def.TurnRate*dt, b.Def.TurnRate*dt)
	b.Vel = geom.FromAngle(heading + turn).Scale(b.Vel.Len())
}

func (w *World) airburstDue(b *Bullet) bool {
	return b.Def.Class == resource.ClassHoming && b.Def.FlightRange > 0 && b.Traveled >= b.Def.FlightRange
}

// airburst detonates a homing round at the most effective center nearby:
// every nearby living target's own position is a candidate, and the one
// covering the most targets within the burst radius wins, nearest to the
// round on ties. With nothing in reach the round bursts where it is. Every
// target inside the chosen radius takes the hit.
func (w *World) airburst(b *Bullet) {
	rad := b.Def.AirburstRad
	if rad <= 0 {
		rad = b.Def.BlastRadius
	}
	near := b.Def.AcquireRange
	if near <= 0 {
		near = rad * 2
	}

	center := b.Pos
	if b.Owner == ownerPlayer {
		bestCount := 0
		bestDist := math.Inf(1)
		for _, c := range w.Enemies {
			d := c.Pos.DistTo(b.Pos)
			if d > near {
				continue
			}
			count := 0
			for _, e := range w.Enemies {
				if e.Pos.DistTo(c.Pos) <= rad {
					count++
				}
			}
			if count > bestCount || (count == bestCount && d < bestDist) {
				bestCount, bestDist, center = count, d, c.Pos
			}
		}
		for _, e := range w.Enemies {
			if e.Pos.DistTo(center) > rad {
				continue
			}
			w.damageEnemy(e, b.Def.AirburstDmg)
			bleedEnemy(e, b.Def.BleedStacks)
		}
	} else {
		if w.Player.Pos.DistTo(b.Pos) <= near {
			center = w.Player.Pos
		}
		if w.Player.Pos.DistTo(center) <= rad {
			w.hurtPlayerRaw(b.Def.AirburstDmg)
			bleedPlayer(w.Player, b.Def.BleedStacks)
		}
	}
	w.addImpact(center)
	w.addSound(center, SoundExplosion, b.Def.SoundRadius, b.Owner == ownerPlayer)
	w.removeDeadEnemies()
}
