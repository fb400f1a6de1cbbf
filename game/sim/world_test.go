package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/config"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

func newTestWorld(t *testing.T, level *resource.LevelDef, loadout resource.Loadout, gcfg config.GameConfig) *World {
	t.Helper()
	logger := zap.NewNop()
	res := resource.NewLoader("", "", logger)
	out := netmsg.NewOutbox(nil, 20, 1, logger)
	if gcfg.MaxDTSeconds == 0 {
		gcfg.MaxDTSeconds = 0.1
	}
	if gcfg.EnemySeed == 0 {
		gcfg.EnemySeed = 7
	}
	return NewWorld(level, res, loadout, gcfg, out, logger)
}

func addEnemy(w *World, pos geom.Vec2, facing float64, archetype string) *Enemy {
	e := newEnemy(w.nextID, pos, facing, archetype)
	w.nextID++
	w.Enemies = append(w.Enemies, e)
	return e
}

// boxLevel is an empty 1000x1000 room bounded by four walls.
func boxLevel() *resource.LevelDef {
	return &resource.LevelDef{
		Name: "box", Width: 1000, Height: 1000,
		Walls: []resource.RectFrac{
			{X: 0, Y: 0, W: 1, H: 0.02},
			{X: 0, Y: 0.98, W: 1, H: 0.02},
			{X: 0, Y: 0, W: 0.02, H: 1},
			{X: 0.98, Y: 0, W: 0.02, H: 1},
		},
		PlayerStart: resource.PointFrac{X: 0.5, Y: 0.5},
	}
}

func TestTickClampsLargeDT(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{})
	w.Tick(10, Input{SwitchTo: -1})
	assert.InDelta(t, 0.1, w.Now(), 1e-9)
}

func TestPausedWorldDoesNotAdvance(t *testing.T) {
	w := newTestWorld(t, boxLevel(), resource.Loadout{}, config.GameConfig{})
	w.Paused = true
	w.Tick(0.016, Input{SwitchTo: -1})
	assert.Zero(t, w.Now())
}

func TestSpawnCountRandomizedWithinRange(t *testing.T) {
	lv := boxLevel()
	lv.Spawns = []resource.SpawnDef{
		{Pos: resource.PointFrac{X: 0.2, Y: 0.2}, Archetype: "standard", CountMin: 2, CountMax: 4},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{EnemySeed: 3})
	require.GreaterOrEqual(t, len(w.Enemies), 2)
	require.LessOrEqual(t, len(w.Enemies), 4)
}

func TestSegmentsIncludeDoorsAtCurrentAngle(t *testing.T) {
	lv := boxLevel()
	lv.Doors = []resource.DoorDef{
		{Hinge: resource.PointFrac{X: 0.3, Y: 0.3}, Length: 0.06, Thickness: 0.004, MaxOpenAngle: 1.9, SwingDir: 1},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	require.Len(t, w.Doors, 1)
	before := w.Doors[0].Segment().B

	w.Doors[0].SetTarget(w.Doors[0].OpenAngle())
	for i := 0; i < 200; i++ {
		w.Tick(0.016, Input{SwitchTo: -1})
	}
	after := w.Doors[0].Segment().B
	assert.Greater(t, before.DistTo(after), 1.0)
	// The rebuilt segment set carries the moved panel.
	assert.Contains(t, w.Segments(), w.Doors[0].Segment())
}

func TestDoorDriveStopsAtOpenAngle(t *testing.T) {
	lv := boxLevel()
	lv.Doors = []resource.DoorDef{
		{Hinge: resource.PointFrac{X: 0.3, Y: 0.3}, Length: 0.06, Thickness: 0.004, MaxOpenAngle: 1.9, SwingDir: 1},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	d := w.Doors[0]
	d.Toggle()
	for i := 0; i < 300; i++ {
		w.tickDoors(0.016)
	}
	assert.InDelta(t, d.OpenAngle(), d.Angle, 1e-9)
	assert.Nil(t, d.target)
}

func TestDoorAngleClampedToRange(t *testing.T) {
	lv := boxLevel()
	lv.Doors = []resource.DoorDef{
		{Hinge: resource.PointFrac{X: 0.3, Y: 0.3}, Length: 0.06, Thickness: 0.004, MaxOpenAngle: 1.0, SwingDir: 1},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	d := w.Doors[0]
	d.AngVel = 50
	for i := 0; i < 100; i++ {
		w.tickDoors(0.016)
	}
	lo, hi := d.Range()
	assert.GreaterOrEqual(t, d.Angle, lo)
	assert.LessOrEqual(t, d.Angle, hi)
	assert.InDelta(t, hi, d.Angle, 1e-9)
}

func TestLockedDoorIgnoresToggle(t *testing.T) {
	lv := boxLevel()
	lv.Doors = []resource.DoorDef{
		{Hinge: resource.PointFrac{X: 0.3, Y: 0.3}, Length: 0.06, Thickness: 0.004, MaxOpenAngle: 1.9, SwingDir: 1, Locked: true},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	d := w.Doors[0]
	d.Toggle()
	for i := 0; i < 50; i++ {
		w.tickDoors(0.016)
	}
	assert.InDelta(t, d.ClosedAngle, d.Angle, 1e-9)
}

// A door swing that would shove a unit into a wall is rejected wholesale: the
// panel stops and the unit never ends up inside geometry.
func TestDoorSwingRejectedWhenUnitWouldBeCrushed(t *testing.T) {
	lv := &resource.LevelDef{
		Name: "crush", Width: 1000, Height: 1000,
		Walls: []resource.RectFrac{
			{X: 0.1, Y: 0.14, W: 0.08, H: 0.03},
		},
		Doors: []resource.DoorDef{
			{Hinge: resource.PointFrac{X: 0.1, Y: 0.1}, Length: 0.06, Thickness: 0.006, MaxOpenAngle: 1.9, SwingDir: 1},
		},
		PlayerStart: resource.PointFrac{X: 0.5, Y: 0.5},
	}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	e := addEnemy(w, geom.Vec2{X: 140, Y: 124}, 0, "standard")

	d := w.Doors[0]
	d.SetTarget(d.OpenAngle())
	for i := 0; i < 400; i++ {
		w.tickDoors(0.016)
	}

	assert.Less(t, d.Angle, d.OpenAngle()-0.3, "door should jam well before fully open")
	_, overlapping := geom.ResolveCircleRect(e.Pos, e.Radius, w.Walls[0])
	assert.False(t, overlapping, "enemy must never be pushed inside a wall")
}

func TestExtractionZoneDetection(t *testing.T) {
	lv := boxLevel()
	lv.Extraction = &resource.RectFrac{X: 0.45, Y: 0.45, W: 0.1, H: 0.1}
	w := newTestWorld(t, lv, resource.Loadout{}, config.GameConfig{})
	assert.True(t, w.InExtractionZone())
	w.Player.Pos = geom.Vec2{X: 100, Y: 100}
	assert.False(t, w.InExtractionZone())
}
