package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/config"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

func TestEnemySpotsPlayerWithinOneTick(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")

	w.Tick(0.016, Input{Aim: 0, SwitchTo: -1})

	assert.Equal(t, StateAlert, e.State)
}

func TestReactionDelayGatesFullAlert(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: 0.5})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")

	w.Tick(0.016, Input{SwitchTo: -1})
	assert.Equal(t, StateInvestigating, e.State, "noticed but not yet engaging")

	for i := 0; i < 40; i++ {
		w.Tick(0.016, Input{SwitchTo: -1})
	}
	assert.Equal(t, StateAlert, e.State)
}

func TestEnemyDoesNotSeeBehindItself(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, 0, "standard") // facing away

	w.Tick(0.016, Input{SwitchTo: -1})

	assert.Equal(t, StateIdle, e.State)
}

func TestWallBlocksEnemySight(t *testing.T) {
	lv := boxLevel()
	lv.Walls = append(lv.Walls, resource.RectFrac{X: 0.6, Y: 0.4, W: 0.01, H: 0.2})
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")

	w.Tick(0.016, Input{SwitchTo: -1})

	assert.Equal(t, StateIdle, e.State)
}

func TestSmokeBlocksEnemySight(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")
	w.Zones = append(w.Zones, &AreaEffect{Pos: geom.Vec2{X: 600, Y: 500}, Radius: 60, Kind: ZoneSmoke, TTL: 10})

	w.Tick(0.016, Input{SwitchTo: -1})

	assert.NotEqual(t, StateAlert, e.State)
}

func TestLostSightSearchesThenReturnsHome(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")

	w.Tick(0.016, Input{SwitchTo: -1})
	require.Equal(t, StateAlert, e.State)

	// Player vanishes beyond view distance.
	w.Player.Pos = geom.Vec2{X: 60, Y: 60}
	sawSearch := false
	for i := 0; i < 500; i++ {
		w.Tick(0.016, Input{SwitchTo: -1})
		if e.State == StateSearching {
			sawSearch = true
		}
	}

	assert.True(t, sawSearch, "passes through the search state")
	assert.Equal(t, StateIdle, e.State)
	assert.InDelta(t, 0, e.Pos.DistTo(e.patrolOrigin), arriveDist+1)
	assert.InDelta(t, 0, math.Abs(geom.AngleDiff(e.Facing, e.homeFacing)), 0.2)
}

func TestGunfireSoundSuppressesAndDraws(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: 0.35})
	e := addEnemy(w, geom.Vec2{X: 800, Y: 500}, 0, "standard") // facing away from the player
	startPos := e.Pos

	w.addSound(geom.Vec2{X: 500, Y: 500}, SoundGunfire, 400, true)
	for i := 0; i < 10; i++ {
		w.Tick(0.05, Input{SwitchTo: -1})
	}

	assert.Equal(t, StateInvestigating, e.State)
	assert.InDelta(t, 500, e.targetPos.X, 1)
	assert.Positive(t, e.suppressTimer, "player fire pins the listener down")
	assert.InDelta(t, 0, e.Pos.DistTo(startPos), 1e-9, "suppressed enemies hold position")
}

func TestSoundTriggersEachListenerOnce(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{})
	e := addEnemy(w, geom.Vec2{X: 800, Y: 500}, 0, "standard")

	s := &SoundEvent{Pos: geom.Vec2{X: 500, Y: 500}, Kind: SoundDoor, MaxRadius: 400}
	w.Sounds = append(w.Sounds, s)

	crossings := 0
	for i := 0; i < 20; i++ {
		if s.Crossed(e.Pos) {
			crossings++
		}
		w.decayEffects(0.05)
	}
	assert.Equal(t, 1, crossings)
}

func TestAggressiveModeSkipsReactionDelay(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{},
		config.GameConfig{Difficulty: "aggressive", ReactionDelayS: 5})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")

	w.Tick(0.016, Input{SwitchTo: -1})

	assert.Equal(t, StateAlert, e.State)
}

func TestBlindEnemyCannotSee(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")
	e.BlindTimer = 1

	assert.False(t, w.enemySeesPlayer(e))
}

func TestStunnedEnemyIsFrozen(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")
	e.StunTimer = 1

	pos, facing := e.Pos, e.Facing
	w.tickEnemy(e, 0.016)

	assert.Equal(t, pos, e.Pos)
	assert.Equal(t, facing, e.Facing)
	assert.InDelta(t, 1-0.016, e.StunTimer, 1e-9)
}

func TestEnemyOpensDoorInPath(t *testing.T) {
	lv := boxLevel()
	lv.Doors = []resource.DoorDef{
		{Hinge: resource.PointFrac{X: 0.3, Y: 0.3}, Length: 0.06, Thickness: 0.004, MaxOpenAngle: 1.9, SwingDir: 1},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	e := addEnemy(w, geom.Vec2{X: 330, Y: 330}, 0, "standard")
	d := w.Doors[0]

	w.enemyHandleDoor(e, geom.Vec2{X: 0, Y: -1})

	assert.NotNil(t, d.target, "door swings open for the walker")
}

func TestEnemyRefusesDoorWithPlayerCamping(t *testing.T) {
	lv := boxLevel()
	lv.Doors = []resource.DoorDef{
		{Hinge: resource.PointFrac{X: 0.3, Y: 0.3}, Length: 0.06, Thickness: 0.004, MaxOpenAngle: 1.9, SwingDir: 1},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	e := addEnemy(w, geom.Vec2{X: 330, Y: 330}, 0, "standard")
	d := w.Doors[0]
	w.Player.Pos = geom.Vec2{X: 330, Y: 260} // waiting on the far side

	w.enemyHandleDoor(e, geom.Vec2{X: 0, Y: -1})

	assert.Nil(t, d.target, "no auto-open into an ambush")
}

func TestAdvancedMeleePhasesAndStrike(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 540, Y: 500}, math.Pi, "advanced")
	e.State = StateAlert

	sawWindup, sawRecover := false, false
	for i := 0; i < 70; i++ {
		w.tickEnemy(e, 0.016)
		switch e.Adv.Phase {
		case advWindup:
			sawWindup = true
		case advRecover:
			sawRecover = true
		}
	}

	assert.True(t, sawWindup)
	assert.True(t, sawRecover)
	assert.InDelta(t, playerMaxHealth-advMeleeDamage, w.Player.Health, 1e-9)
}

func TestAdvancedMeleeBlockedByShieldStunsAttacker(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 540, Y: 500}, math.Pi, "advanced")
	e.State = StateAlert

	shield := &WeaponState{
		Def:        &resource.WeaponDef{ID: "tower", Class: resource.ClassShield},
		Durability: 200,
	}
	w.Player.Weapons = []*WeaponState{shield}
	w.Player.Active = 0
	w.Player.Facing = 0 // squared up against the attacker

	for i := 0; i < 70; i++ {
		w.tickEnemy(e, 0.016)
	}

	assert.Equal(t, playerMaxHealth, w.Player.Health, "shield blocks the swing")
	assert.InDelta(t, 200-advMeleeDamage, shield.Durability, 1e-9)
}

func TestAdvancedRifleFiresBursts(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 800, Y: 500}, math.Pi, "advanced")
	e.State = StateAlert

	for i := 0; i < 32; i++ { // ~0.5s
		w.tickEnemy(e, 0.016)
	}

	assert.Less(t, e.Adv.rifleAmmo, rifleMagSize, "rounds spent")
	assert.Less(t, w.Player.Health, playerMaxHealth, "incoming fire connects")
}

func TestSuppressedEnemyStillSpots(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{ReactionDelayS: -1})
	e := addEnemy(w, geom.Vec2{X: 700, Y: 500}, math.Pi, "standard")
	e.suppressTimer = 1.0
	e.targetPos = geom.Vec2{X: 900, Y: 500}
	startPos := e.Pos

	for i := 0; i < 5; i++ {
		w.Tick(0.05, Input{SwitchTo: -1})
	}

	assert.Equal(t, StateAlert, e.State, "being pinned does not blind the enemy")
	assert.InDelta(t, 0, e.Pos.DistTo(startPos), 1e-9, "pinned enemies hold position")
	assert.Equal(t, playerMaxHealth, w.Player.Health, "pinned enemies hold fire")
	assert.Positive(t, e.suppressTimer)
}
