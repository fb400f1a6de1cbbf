package sim

import (
	"math"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

const doorReachDist = 60.0

// WeaponState is one carried weapon's live ammo and wear state.
type WeaponState struct {
	Def        *resource.WeaponDef
	Mag        int
	Reserve    int
	Durability float64
}

// Player is the local actor. All mutation happens inside World.Tick.
type Player struct {
	Pos    geom.Vec2
	Radius float64
	Facing float64

	Health    float64
	MaxHealth float64

	Weapons []*WeaponState
	Active  int

	Throwables  map[string]int
	ActiveThrow string

	Medkits int

	Reloading   bool
	reloadTimer float64
	Healing     bool
	healTimer   float64

	fireCooldown  float64
	meleeCooldown float64
	Swing         *MeleeSwing

	cookDef  *resource.ThrowableDef
	cookFuse float64

	heldDoor *Door

	Burning     float64
	BurnDPS     float64
	BleedStacks int
	BleedTimer  float64
	BlindTimer  float64
	HitFlash    float64
}

// Input is one tick's worth of player intent. Invalid or impossible commands
// are silent no-ops; the resolver never errors.
type Input struct {
	Move geom.Vec2 // direction intent; normalized by the resolver
	Aim  float64   // radians

	Fire   bool
	Reload bool
	Melee  bool
	Heal   bool

	SwitchTo int // weapon slot, -1 for no change

	Cook  bool // hold the active throwable's fuse
	Throw bool // release it

	ToggleDoor bool
	HoldDoor   bool // grab the nearest door and drive it with aim

	Drop bool
}

func newPlayer(pos geom.Vec2, res *resource.Loader, loadout resource.Loadout) *Player {
	p := &Player{
		Pos:         pos,
		Radius:      playerRadius,
		Health:      playerMaxHealth,
		MaxHealth:   playerMaxHealth,
		Throwables:  map[string]int{},
		ActiveThrow: loadout.ActiveThrow,
		Medkits:     2,
	}
	for _, lw := range loadout.Weapons {
		def := res.BuildWeapon(lw)
		p.Weapons = append(p.Weapons, &WeaponState{
			Def:        def,
			Mag:        def.MagSize,
			Reserve:    def.Reserve,
			Durability: def.Durability,
		})
	}
	if len(p.Weapons) == 0 {
		def := resource.FallbackWeapon()
		p.Weapons = append(p.Weapons, &WeaponState{Def: def, Mag: def.MagSize, Reserve: def.Reserve})
	}
	for kind, n := range loadout.Throwables {
		if n > 0 {
			p.Throwables[kind] = n
		}
	}
	if p.ActiveThrow == "" {
		p.ActiveThrow = "frag"
	}
	return p
}

// ActiveWeapon returns the currently wielded weapon. Always non-nil.
func (p *Player) ActiveWeapon() *WeaponState {
	return p.Weapons[p.Active]
}

// equippedShield returns the active weapon if it is a shield.
func (p *Player) equippedShield() *WeaponState {
	if ws := p.ActiveWeapon(); ws.Def.Class == resource.ClassShield {
		return ws
	}
	return nil
}

// stowedShield returns a carried but not wielded shield, if any.
func (p *Player) stowedShield() *WeaponState {
	for i, ws := range p.Weapons {
		if i != p.Active && ws.Def.Class == resource.ClassShield {
			return ws
		}
	}
	return nil
}

func (w *World) tickPlayer(dt float64, in Input) {
	p := w.Player
	if p.Health <= 0 {
		return
	}

	p.Facing = geom.NormalizeAngle(in.Aim)

	move := in.Move
	if move.Len() > 1 {
		move = move.Norm()
	}
	speed := playerSpeed
	if p.Healing {
		speed *= 0.5
	}
	if move.X != 0 || move.Y != 0 {
		p.Pos = w.moveCircle(p.Pos, move.Scale(speed*dt), p.Radius)
	}

	if in.SwitchTo >= 0 && in.SwitchTo < len(p.Weapons) && in.SwitchTo != p.Active {
		p.Active = in.SwitchTo
		p.Reloading = false
		p.fireCooldown = 0
	}

	if in.Drop && len(p.Weapons) > 1 {
		dropped := p.Weapons[p.Active]
		p.Weapons = append(p.Weapons[:p.Active], p.Weapons[p.Active+1:]...)
		if p.Active >= len(p.Weapons) {
			p.Active = len(p.Weapons) - 1
		}
		p.Reloading = false
		w.outbox.Send(netmsg.New(netmsg.TypeDropWeapon, w.LocalID,
			netmsg.DropWeapon{WeaponID: dropped.Def.ID, X: p.Pos.X, Y: p.Pos.Y}))
	}

	w.tickReload(dt, in)
	w.tickHeal(dt, in)

	if p.fireCooldown > 0 {
		p.fireCooldown -= dt
	}
	if p.meleeCooldown > 0 {
		p.meleeCooldown -= dt
	}

	ws := p.ActiveWeapon()
	switch ws.Def.Class {
	case resource.ClassMelee:
		if (in.Fire || in.Melee) && p.Swing == nil && p.meleeCooldown <= 0 {
			w.startPlayerSwing(ws.Def)
		}
	case resource.ClassShield:
		if (in.Fire || in.Melee) && p.meleeCooldown <= 0 {
			w.shieldBash(ws.Def)
		}
	default:
		if in.Fire {
			w.fireActive(ws)
		}
		if in.Melee && p.Swing == nil && p.meleeCooldown <= 0 {
			// Quick-melee with the sidearm stock.
			w.startPlayerSwing(meleeFallbackDef())
		}
	}

	w.tickCook(dt, in)
	w.tickDoorGrab(in)

	w.outbox.Send(netmsg.New(netmsg.TypePlayerUpdate, w.LocalID,
		netmsg.PlayerUpdate{X: p.Pos.X, Y: p.Pos.Y, Aim: p.Facing, Health: p.Health}))
}

// fireActive resolves one trigger pull for a ranged weapon. Empty magazine
// and mid-reload pulls are silent no-ops.
func (w *World) fireActive(ws *WeaponState) {
	p := w.Player
	if p.fireCooldown > 0 || p.Reloading || ws.Mag <= 0 {
		return
	}
	ws.Mag--
	p.fireCooldown = 1.0 / ws.Def.FireRate
	p.Healing = false

	muzzle := p.Pos.Add(geom.FromAngle(p.Facing).Scale(p.Radius + 2))
	pellets := ws.Def.Pellets
	if pellets < 1 {
		pellets = 1
	}
	for i := 0; i < pellets; i++ {
		angle := p.Facing + (w.rng.Float64()-0.5)*ws.Def.Spread
		if ws.Def.Class == resource.ClassHitscan {
			w.hitscan(muzzle, angle, ws.Def, ownerPlayer)
		} else {
			w.spawnBullet(muzzle, angle, ws.Def, ownerPlayer)
		}
	}

	w.addSound(p.Pos, SoundGunfire, ws.Def.SoundRadius, true)
	w.outbox.Send(netmsg.New(netmsg.TypeFireWeapon, w.LocalID,
		netmsg.FireWeapon{WeaponID: ws.Def.ID, X: muzzle.X, Y: muzzle.Y, Angle: p.Facing}))
}

func (w *World) tickReload(dt float64, in Input) {
	p := w.Player
	ws := p.ActiveWeapon()
	if p.Reloading {
		p.reloadTimer -= dt
		if p.reloadTimer <= 0 {
			need := ws.Def.MagSize - ws.Mag
			if need > ws.Reserve {
				need = ws.Reserve
			}
			ws.Mag += need
			ws.Reserve -= need
			p.Reloading = false
		}
		return
	}
	if in.Reload && ws.Mag < ws.Def.MagSize && ws.Reserve > 0 {
		p.Reloading = true
		p.reloadTimer = ws.Def.ReloadS
	}
}

// tickHeal runs the medkit channel. Starting at full health or with no kits
// left is a silent no-op; firing cancels the channel without consuming a kit.
func (w *World) tickHeal(dt float64, in Input) {
	p := w.Player
	if p.Healing {
		p.healTimer -= dt
		if p.healTimer <= 0 {
			p.Healing = false
			p.Medkits--
			p.Health = math.Min(p.MaxHealth, p.Health+healAmount)
		}
		return
	}
	if in.Heal && p.Health < p.MaxHealth && p.Medkits > 0 {
		p.Healing = true
		p.healTimer = healDuration
	}
}

// tickCook handles the grenade fuse: holding Cook starts the fuse, Throw
// releases the grenade with whatever fuse remains, and holding past zero
// detonates in hand.
func (w *World) tickCook(dt float64, in Input) {
	p := w.Player

	if p.cookDef == nil {
		if in.Cook && p.Throwables[p.ActiveThrow] > 0 {
			p.cookDef = w.res.Throwable(p.ActiveThrow)
			p.cookFuse = p.cookDef.FuseS
			p.Throwables[p.ActiveThrow]--
		}
		return
	}

	p.cookFuse -= dt
	if p.cookFuse <= 0 {
		def := p.cookDef
		p.cookDef = nil
		w.detonate(def, p.Pos)
		return
	}
	if in.Throw {
		def := p.cookDef
		fuse := p.cookFuse
		p.cookDef = nil
		w.Throwables = append(w.Throwables, &Throwable{
			Def:    def,
			Pos:    p.Pos.Add(geom.FromAngle(p.Facing).Scale(p.Radius + 4)),
			Vel:    geom.FromAngle(p.Facing).Scale(def.ThrowSpeed),
			Fuse:   fuse,
			Radius: 5,
		})
	}
}

// tickDoorGrab resolves door interaction: toggle auto-swings the nearest
// reachable door, hold grabs it and drives the panel toward the aim point.
func (w *World) tickDoorGrab(in Input) {
	p := w.Player

	if in.ToggleDoor {
		if d := w.nearestDoor(p.Pos, doorReachDist); d != nil {
			d.Toggle()
		}
	}

	if in.HoldDoor {
		if p.heldDoor == nil {
			p.heldDoor = w.nearestDoor(p.Pos, doorReachDist)
		}
		if d := p.heldDoor; d != nil && !d.Locked {
			d.HeldByPlayer = true
			aimPoint := p.Pos.Add(geom.FromAngle(p.Facing).Scale(doorReachDist * 2))
			desired := aimPoint.Sub(d.Hinge).Angle()
			d.AngVel = geom.Clamp(geom.AngleDiff(desired, d.Angle)*6, -4, 4)
		}
		return
	}
	if p.heldDoor != nil {
		p.heldDoor.HeldByPlayer = false
		p.heldDoor = nil
	}
}

func (w *World) nearestDoor(from geom.Vec2, reach float64) *Door {
	var best *Door
	bestDist := reach
	for _, d := range w.Doors {
		cp := geom.ClosestPointOnSegment(from, d.Segment())
		if dist := cp.DistTo(from); dist <= bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// meleeFallbackDef is the bare weapon-stock jab used when quick-meleeing with
// a ranged weapon equipped.
func meleeFallbackDef() *resource.WeaponDef {
	return &resource.WeaponDef{
		ID: "stock_jab", Class: resource.ClassMelee,
		MeleeInner: 8, MeleeRange: 40, MeleeArc: 1.0, MeleeTime: 0.18, MeleeCool: 0.8,
	}
}
