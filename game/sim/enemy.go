package sim

import (
	"math"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

// EnemyState is the top layer of the AI machine.
type EnemyState int

const (
	StateIdle EnemyState = iota
	StateInvestigating
	StateAlert
	StateSearching
	StateReturning
)

// advPhase is the advanced archetype's melee sub-machine.
type advPhase int

const (
	advIdle advPhase = iota
	advWindup
	advSwing
	advRecover
)

// AdvState carries the advanced archetype's rifle and melee sub-machines.
type AdvState struct {
	Phase      advPhase
	phaseTimer float64

	rifleAmmo   int
	reloadTimer float64
	burstLeft   int
	shotTimer   float64
}

// Enemy is one AI actor.
type Enemy struct {
	ID        int
	Archetype string
	Pos       geom.Vec2
	Radius    float64
	Health    float64
	Facing    float64
	State     EnemyState

	patrolOrigin geom.Vec2
	homeFacing   float64
	targetPos    geom.Vec2 // current destination or last known player position
	stateTimer   float64

	reactionTimer float64
	fireCooldown  float64
	suppressTimer float64
	StunTimer     float64

	Burning     float64
	BurnDPS     float64
	BleedStacks int
	BleedTimer  float64
	BlindTimer  float64
	HitFlash    float64

	Adv *AdvState
}

func newEnemy(id int, pos geom.Vec2, facing float64, archetype string) *Enemy {
	e := &Enemy{
		ID:           id,
		Archetype:    archetype,
		Pos:          pos,
		Radius:       enemyRadius,
		Health:       enemyMaxHealth,
		Facing:       geom.NormalizeAngle(facing),
		patrolOrigin: pos,
		homeFacing:   geom.NormalizeAngle(facing),
	}
	if archetype == "advanced" {
		e.Adv = &AdvState{rifleAmmo: rifleMagSize, burstLeft: rifleBurstLen}
	}
	return e
}

// enemyGun is the standard archetype's sidearm row.
var enemyGun = &resource.WeaponDef{
	ID: "guard_pistol", Class: resource.ClassHitscan,
	Damage: enemyDamage, Spread: enemySpread, SoundRadius: 480,
}

var advRifle = &resource.WeaponDef{
	ID: "guard_rifle", Class: resource.ClassHitscan,
	Damage: rifleDamage, Spread: rifleSpread, SoundRadius: 560,
}

func (w *World) tickEnemies(dt float64) {
	for _, e := range w.Enemies {
		w.tickEnemy(e, dt)
	}
	w.removeDeadEnemies()
}

func (w *World) tickEnemy(e *Enemy, dt float64) {
	if e.StunTimer > 0 {
		e.StunTimer -= dt
		return
	}
	if e.fireCooldown > 0 {
		e.fireCooldown -= dt
	}

	sees := w.enemySeesPlayer(e)

	// Sound reactions. A wavefront crossing an actor who is not already in a
	// firefight pulls them to the source; the player's own gunfire also pins
	// them down for a moment.
	if e.State != StateAlert {
		for _, s := range w.Sounds {
			if !s.Crossed(e.Pos) {
				continue
			}
			e.State = StateInvestigating
			e.targetPos = s.Pos
			e.stateTimer = soundSearchDuration
			if s.PlayerFire {
				e.suppressTimer = suppressDuration
			}
		}
	}

	suppressed := e.suppressTimer > 0
	if suppressed {
		e.suppressTimer -= dt
	}

	// Sighting: full promotion to alert after the reaction delay. Aggressive
	// mode skips both the delay and the lower states.
	if sees {
		if w.Difficulty == DifficultyAggressive || e.State == StateAlert {
			e.State = StateAlert
			e.reactionTimer = 0
		} else {
			e.reactionTimer += dt
			if e.reactionTimer >= w.reactionDelay {
				e.State = StateAlert
			} else if e.State == StateIdle || e.State == StateReturning {
				e.State = StateInvestigating
				e.stateTimer = soundSearchDuration
			}
		}
		e.targetPos = w.Player.Pos
	} else {
		e.reactionTimer = 0
	}

	// Suppression freezes movement and fire only. Eyes keep working, so a
	// pinned enemy still spots and promotes above.
	if suppressed {
		if sees {
			w.turnToward(e, w.Player.Pos, dt)
		} else {
			w.turnToward(e, e.targetPos, dt)
		}
		return
	}

	switch e.State {
	case StateAlert:
		w.enemyAlert(e, dt, sees)
	case StateInvestigating:
		w.enemyInvestigate(e, dt)
	case StateSearching:
		w.enemySearch(e, dt)
	case StateReturning:
		w.enemyReturn(e, dt)
	default:
		w.turnTowardAngle(e, e.homeFacing, dt)
	}
}

// enemySeesPlayer is the sight test: view distance, field of view, wall
// occlusion and smoke, all against the current tick's segment set. A player
// stepping into a clear cone is spotted the same tick.
func (w *World) enemySeesPlayer(e *Enemy) bool {
	if e.BlindTimer > 0 || w.Player.Health <= 0 {
		return false
	}
	to := w.Player.Pos.Sub(e.Pos)
	if to.Len() > enemyViewDist {
		return false
	}
	if math.Abs(geom.AngleDiff(to.Angle(), e.Facing)) > enemyFOV/2 {
		return false
	}
	if occluded(e.Pos, w.Player.Pos, w.segs) {
		return false
	}
	return !w.smokeBlocks(e.Pos, w.Player.Pos)
}

func (w *World) enemyAlert(e *Enemy, dt float64, sees bool) {
	if !sees {
		e.State = StateSearching
		e.stateTimer = searchDuration
		return
	}
	e.targetPos = w.Player.Pos
	w.turnToward(e, w.Player.Pos, dt)

	if e.Adv != nil {
		w.advCombat(e, dt)
		return
	}

	dist := e.Pos.DistTo(w.Player.Pos)
	if dist > enemyViewDist*0.6 {
		w.enemyMove(e, w.Player.Pos.Sub(e.Pos).Norm(), dt)
	}
	aligned := math.Abs(geom.AngleDiff(w.Player.Pos.Sub(e.Pos).Angle(), e.Facing)) < 0.15
	if aligned && e.fireCooldown <= 0 {
		e.fireCooldown = enemyFireCooldown
		w.enemyShoot(e, enemyGun)
	}
}

// advCombat runs the advanced archetype: a melee phase machine at close
// range, burst rifle fire otherwise.
func (w *World) advCombat(e *Enemy, dt float64) {
	a := e.Adv
	dist := e.Pos.DistTo(w.Player.Pos)

	if a.Phase != advIdle {
		a.phaseTimer -= dt
		if a.phaseTimer > 0 {
			return
		}
		switch a.Phase {
		case advWindup:
			a.Phase = advSwing
			a.phaseTimer = advSwingTime
			w.enemyMeleeStrike(e)
		case advSwing:
			a.Phase = advRecover
			a.phaseTimer = advRecoverTime
		default:
			a.Phase = advIdle
		}
		return
	}

	if dist <= advMeleeRange*0.85 {
		a.Phase = advWindup
		a.phaseTimer = advWindupTime
		return
	}

	if a.reloadTimer > 0 {
		a.reloadTimer -= dt
		if a.reloadTimer <= 0 {
			a.rifleAmmo = rifleMagSize
			a.burstLeft = rifleBurstLen
		}
		return
	}
	if a.rifleAmmo <= 0 {
		a.reloadTimer = rifleReloadTime
		return
	}

	if dist > enemyViewDist*0.5 {
		w.enemyMove(e, w.Player.Pos.Sub(e.Pos).Norm(), dt)
	}

	if a.shotTimer > 0 {
		a.shotTimer -= dt
		return
	}
	aligned := math.Abs(geom.AngleDiff(w.Player.Pos.Sub(e.Pos).Angle(), e.Facing)) < 0.2
	if !aligned {
		return
	}
	w.enemyShoot(e, advRifle)
	a.rifleAmmo--
	a.burstLeft--
	if a.burstLeft <= 0 {
		a.burstLeft = rifleBurstLen
		a.shotTimer = rifleBurstPause
	} else {
		a.shotTimer = rifleShotDelay
	}
}

func (w *World) enemyShoot(e *Enemy, def *resource.WeaponDef) {
	muzzle := e.Pos.Add(geom.FromAngle(e.Facing).Scale(e.Radius + 2))
	angle := e.Facing + (w.rng.Float64()-0.5)*def.Spread
	w.hitscan(muzzle, angle, def, ownerEnemy)
	w.addSound(e.Pos, SoundGunfire, def.SoundRadius, false)
}

func (w *World) enemyInvestigate(e *Enemy, dt float64) {
	if e.Pos.DistTo(e.targetPos) <= arriveDist {
		e.State = StateSearching
		if e.stateTimer <= 0 {
			e.stateTimer = soundSearchDuration
		}
		return
	}
	w.turnToward(e, e.targetPos, dt)
	w.enemyMove(e, e.targetPos.Sub(e.Pos).Norm(), dt)
}

// enemySearch holds position and sweeps the view left and right until the
// timer runs out, then heads home.
func (w *World) enemySearch(e *Enemy, dt float64) {
	e.stateTimer -= dt
	if e.stateTimer <= 0 {
		e.State = StateReturning
		return
	}
	dir := 1.0
	if int(e.stateTimer/0.9)%2 == 1 {
		dir = -1.0
	}
	e.Facing = geom.NormalizeAngle(e.Facing + dir*searchLookRate*dt)
}

func (w *World) enemyReturn(e *Enemy, dt float64) {
	if e.Pos.DistTo(e.patrolOrigin) <= arriveDist {
		e.State = StateIdle
		return
	}
	w.turnToward(e, e.patrolOrigin, dt)
	w.enemyMove(e, e.patrolOrigin.Sub(e.Pos).Norm(), dt)
}

// enemyMove advances the enemy with collision, opening any closed door
// blocking the way unless the player is camped just behind it.
func (w *World) enemyMove(e *Enemy, dir geom.Vec2, dt float64) {
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	w.enemyHandleDoor(e, dir)
	e.Pos = w.moveCircle(e.Pos, dir.Scale(enemySpeed*dt), e.Radius)
}

// enemyHandleDoor opens a closed unlocked door the enemy is about to walk
// into. The open is refused when the player waits within ambush range on the
// far side of the panel.
func (w *World) enemyHandleDoor(e *Enemy, dir geom.Vec2) {
	probe := geom.Segment{A: e.Pos, B: e.Pos.Add(dir.Scale(doorOpenProbeDist))}
	for _, d := range w.Doors {
		if d.Locked || !d.IsClosed() {
			continue
		}
		seg := d.Segment()
		if _, _, ok := geom.SegmentsIntersect(probe, seg); !ok {
			cp := geom.ClosestPointOnSegment(e.Pos, seg)
			if cp.DistTo(e.Pos) > e.Radius+d.Thickness+4 {
				continue
			}
		}
		mid := seg.A.Add(seg.B.Sub(seg.A).Scale(0.5))
		if w.Player.Pos.DistTo(mid) <= doorCampDist && doorSide(seg, w.Player.Pos) != doorSide(seg, e.Pos) {
			continue
		}
		d.Toggle()
	}
}

// doorSide reports which side of the door's line a point lies on.
func doorSide(seg geom.Segment, p geom.Vec2) int {
	c := seg.B.Sub(seg.A).Cross(p.Sub(seg.A))
	if c >= 0 {
		return 1
	}
	return -1
}

func (w *World) turnToward(e *Enemy, target geom.Vec2, dt float64) {
	w.turnTowardAngle(e, target.Sub(e.Pos).Angle(), dt)
}

func (w *World) turnTowardAngle(e *Enemy, want float64, dt float64) {
	diff := geom.AngleDiff(want, e.Facing)
	step := geom.Clamp(diff, -enemyTurnRate*dt, enemyTurnRate*dt)
	e.Facing = geom.NormalizeAngle(e.Facing + step)
}
