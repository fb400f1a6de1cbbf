package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testLevels = `{
  "levels": [
    {
      "name": "killhouse",
      "width": 1200,
      "height": 800,
      "walls": [{"x": 0, "y": 0, "w": 1, "h": 0.02}],
      "doors": [{"hinge": {"x": 0.5, "y": 0.5}, "swing_dir": 0}],
      "spawns": [
        {"pos": {"x": 0.7, "y": 0.3}, "archetype": "sniper", "count_min": 5, "count_max": 2}
      ],
      "player_start": {"x": 0.5, "y": 0.9}
    },
    {"name": ""}
  ]
}`

const testWeapons = `{
  "weapons": [
    {"id": "mk18", "name": "MK18", "class": "hitscan", "damage": 30, "fire_rate": 10,
     "spread": 0.02, "mag_size": 30, "reserve": 90, "reload_s": 2.1, "sound_radius": 900},
    {"id": "broken", "name": "Broken Row"}
  ],
  "throwables": [
    {"kind": "flash", "fuse_s": 1.8, "throw_speed": 400, "radius": 260}
  ],
  "attachments": [
    {"id": "suppressor", "name": "Suppressor", "mods": {"sound_radius": 0.25, "damage": 0.9}},
    {"id": "extmag", "name": "Extended Mag", "mods": {"mag_size": 1.5, "reload_s": 1.2}}
  ]
}`

func newLoadedLoader(t *testing.T) *Loader {
	t.Helper()
	dir := t.TempDir()
	lp := filepath.Join(dir, "levels.json")
	wp := filepath.Join(dir, "weapons.json")
	require.NoError(t, os.WriteFile(lp, []byte(testLevels), 0644))
	require.NoError(t, os.WriteFile(wp, []byte(testWeapons), 0644))

	l := NewLoader(lp, wp, zap.NewNop())
	require.NoError(t, l.Load())
	return l
}

func TestLoad_Tables(t *testing.T) {
	l := newLoadedLoader(t)

	assert.Equal(t, []string{"killhouse"}, l.LevelNames(), "nameless rows are skipped")

	lv := l.Level("killhouse")
	assert.Equal(t, 1200.0, lv.Width)
	require.Len(t, lv.Spawns, 1)

	w := l.Weapon("mk18")
	assert.Equal(t, 30.0, w.Damage)
	assert.Equal(t, 900.0, w.SoundRadius)

	th := l.Throwable("flash")
	assert.Equal(t, 1.8, th.FuseS)
}

func TestLoad_MissingFilesFallBack(t *testing.T) {
	l := NewLoader("/does/not/exist.json", "/nor/this.json", zap.NewNop())
	assert.Error(t, l.Load())

	// Accessors still serve playable defaults.
	lv := l.Level("anything")
	assert.Equal(t, "fallback", lv.Name)
	assert.NotEmpty(t, lv.Walls)

	w := l.Weapon("anything")
	assert.Equal(t, "fallback_pistol", w.ID)
	assert.Positive(t, w.FireRate)

	th := l.Throwable("anything")
	assert.Equal(t, "frag", th.Kind)
	assert.Positive(t, th.FuseS)
}

func TestSanitize_LevelFields(t *testing.T) {
	l := newLoadedLoader(t)
	lv := l.Level("killhouse")

	d := lv.Doors[0]
	assert.Equal(t, 1, d.SwingDir, "zero swing direction normalizes to +1")
	assert.Positive(t, d.Length)
	assert.Positive(t, d.Thickness)
	assert.Positive(t, d.MaxOpenAngle)

	s := lv.Spawns[0]
	assert.Equal(t, "standard", s.Archetype, "unknown archetype falls back")
	assert.LessOrEqual(t, s.CountMin, s.CountMax, "inverted range is clamped")
}

func TestSanitize_WeaponFields(t *testing.T) {
	l := newLoadedLoader(t)
	w := l.Weapon("broken")

	assert.Equal(t, ClassHitscan, w.Class)
	assert.Positive(t, w.FireRate, "zero fire rate would divide by zero")
	assert.Equal(t, 1, w.Pellets)
	assert.Positive(t, w.BulletRadius)
}

func TestBuildWeapon_AppliesAttachments(t *testing.T) {
	l := newLoadedLoader(t)

	w := l.BuildWeapon(LoadoutWeapon{WeaponID: "mk18", Attachments: []string{"suppressor", "extmag", "nonsense"}})
	assert.InDelta(t, 27.0, w.Damage, 1e-9)       // 30 * 0.9
	assert.InDelta(t, 225.0, w.SoundRadius, 1e-9) // 900 * 0.25
	assert.Equal(t, 45, w.MagSize)                // 30 * 1.5
	assert.InDelta(t, 2.52, w.ReloadS, 1e-9)      // 2.1 * 1.2

	// The base row is untouched.
	base := l.Weapon("mk18")
	assert.Equal(t, 30.0, base.Damage)
	assert.Equal(t, 30, base.MagSize)
}

func TestBuildWeapon_UnknownID(t *testing.T) {
	l := newLoadedLoader(t)
	w := l.BuildWeapon(LoadoutWeapon{WeaponID: "ghost_gun"})
	assert.Equal(t, "fallback_pistol", w.ID)
}
