package resource

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Loader reads level and weapon tables from JSON files. Missing or malformed
// data never fails the host: every accessor falls back to a built-in safe
// default so the simulation stays playable.
type Loader struct {
	levelsPath  string
	weaponsPath string
	logger      *zap.Logger

	levels      map[string]*LevelDef
	weapons     map[string]*WeaponDef
	throwables  map[string]*ThrowableDef
	attachments map[string]*AttachmentDef
}

// NewLoader creates a Loader for the given data paths.
func NewLoader(levelsPath, weaponsPath string, logger *zap.Logger) *Loader {
	return &Loader{
		levelsPath:  levelsPath,
		weaponsPath: weaponsPath,
		logger:      logger,
		levels:      map[string]*LevelDef{},
		weapons:     map[string]*WeaponDef{},
		throwables:  map[string]*ThrowableDef{},
		attachments: map[string]*AttachmentDef{},
	}
}

type weaponsFile struct {
	Weapons     []*WeaponDef     `json:"weapons"`
	Throwables  []*ThrowableDef  `json:"throwables"`
	Attachments []*AttachmentDef `json:"attachments"`
}

type levelsFile struct {
	Levels []*LevelDef `json:"levels"`
}

// Load reads both tables. The returned error is informational; accessors
// serve built-in defaults for whatever failed to load.
func (l *Loader) Load() error {
	var firstErr error

	if err := l.loadLevels(); err != nil {
		firstErr = err
		l.logger.Warn("level table load failed, using built-ins", zap.Error(err))
	}
	if err := l.loadWeapons(); err != nil {
		if firstErr == nil {
			firstErr = err
		}
		l.logger.Warn("weapon table load failed, using built-ins", zap.Error(err))
	}

	l.logger.Info("resource tables loaded",
		zap.Int("levels", len(l.levels)),
		zap.Int("weapons", len(l.weapons)),
		zap.Int("throwables", len(l.throwables)),
		zap.Int("attachments", len(l.attachments)))
	return firstErr
}

func (l *Loader) loadLevels() error {
	raw, err := os.ReadFile(l.levelsPath)
	if err != nil {
		return err
	}
	var f levelsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	for _, lv := range f.Levels {
		if lv == nil || lv.Name == "" {
			continue
		}
		sanitizeLevel(lv)
		l.levels[lv.Name] = lv
	}
	return nil
}

func (l *Loader) loadWeapons() error {
	raw, err := os.ReadFile(l.weaponsPath)
	if err != nil {
		return err
	}
	var f weaponsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	for _, w := range f.Weapons {
		if w == nil || w.ID == "" {
			continue
		}
		sanitizeWeapon(w)
		l.weapons[w.ID] = w
	}
	for _, t := range f.Throwables {
		if t == nil || t.Kind == "" {
			continue
		}
		l.throwables[t.Kind] = t
	}
	for _, a := range f.Attachments {
		if a == nil || a.ID == "" {
			continue
		}
		l.attachments[a.ID] = a
	}
	return nil
}

// sanitizeLevel clamps level fields to usable ranges.
func sanitizeLevel(lv *LevelDef) {
	if lv.Width <= 0 {
		lv.Width = 1280
	}
	if lv.Height <= 0 {
		lv.Height = 720
	}
	for i := range lv.Doors {
		d := &lv.Doors[i]
		if d.SwingDir >= 0 {
			d.SwingDir = 1
		} else {
			d.SwingDir = -1
		}
		if d.Length <= 0 {
			d.Length = 0.05
		}
		if d.Thickness <= 0 {
			d.Thickness = 0.005
		}
		if d.MaxOpenAngle <= 0 {
			d.MaxOpenAngle = 2.0
		}
	}
	for i := range lv.Spawns {
		s := &lv.Spawns[i]
		if s.Archetype != "advanced" {
			s.Archetype = "standard"
		}
		if s.Count <= 0 && s.CountMax <= 0 {
			s.Count = 1
		}
		if s.CountMax > 0 && s.CountMin > s.CountMax {
			s.CountMin = s.CountMax
		}
	}
}

// sanitizeWeapon fills conservative values for fields a malformed row left
// at zero, so fire-rate division and reload timers stay sane.
func sanitizeWeapon(w *WeaponDef) {
	if w.Class == "" {
		w.Class = ClassHitscan
	}
	if w.FireRate <= 0 && w.Class != ClassMelee && w.Class != ClassShield {
		w.FireRate = 1
	}
	if w.Pellets <= 0 {
		w.Pellets = 1
	}
	if w.MagSize < 0 {
		w.MagSize = 0
	}
	if w.Reserve < 0 {
		w.Reserve = 0
	}
	if w.BulletRadius <= 0 {
		w.BulletRadius = 2
	}
	if w.BulletSpeed <= 0 && w.Class != ClassHitscan && w.Class != ClassMelee && w.Class != ClassShield {
		w.BulletSpeed = 600
	}
	if w.Class == ClassMelee || w.Class == ClassShield {
		if w.MeleeRange <= 0 {
			w.MeleeRange = 60
		}
		if w.MeleeArc <= 0 {
			w.MeleeArc = 2.0
		}
		if w.MeleeTime <= 0 {
			w.MeleeTime = 0.25
		}
		if w.MeleeCool <= 0 {
			w.MeleeCool = 0.6
		}
	}
}

// Level returns the named level, or the built-in fallback layout.
func (l *Loader) Level(name string) *LevelDef {
	if lv, ok := l.levels[name]; ok {
		return lv
	}
	l.logger.Warn("unknown level, serving fallback", zap.String("name", name))
	return FallbackLevel()
}

// LevelNames lists loaded level names (fallback excluded).
func (l *Loader) LevelNames() []string {
	names := make([]string, 0, len(l.levels))
	for n := range l.levels {
		names = append(names, n)
	}
	return names
}

// Weapon returns the weapon row for id, or the built-in sidearm.
func (l *Loader) Weapon(id string) *WeaponDef {
	if w, ok := l.weapons[id]; ok {
		return w
	}
	return FallbackWeapon()
}

// Throwable returns the throwable row for kind, or a default frag grenade.
func (l *Loader) Throwable(kind string) *ThrowableDef {
	if t, ok := l.throwables[kind]; ok {
		return t
	}
	return &ThrowableDef{Kind: "frag", FuseS: 2.5, ThrowSpeed: 420, Radius: 150, MaxDamage: 120, SoundRadius: 600}
}

// BuildWeapon resolves a loadout entry: copies the base row and applies each
// attachment's stat multipliers. Unknown attachments are skipped silently.
func (l *Loader) BuildWeapon(lw LoadoutWeapon) *WeaponDef {
	base := l.Weapon(lw.WeaponID)
	w := *base
	for _, id := range lw.Attachments {
		a, ok := l.attachments[id]
		if !ok {
			continue
		}
		applyMods(&w, a.Mods)
	}
	return &w
}

func applyMods(w *WeaponDef, mods map[string]float64) {
	for key, mult := range mods {
		switch key {
		case "damage":
			w.Damage *= mult
		case "fire_rate":
			w.FireRate *= mult
		case "spread":
			w.Spread *= mult
		case "mag_size":
			w.MagSize = int(float64(w.MagSize) * mult)
		case "reload_s":
			w.ReloadS *= mult
		case "bullet_speed":
			w.BulletSpeed *= mult
		case "sound_radius":
			w.SoundRadius *= mult
		}
	}
}

// FallbackLevel is a single open room with one door and one enemy, used when
// level data is missing or names an unknown level.
func FallbackLevel() *LevelDef {
	return &LevelDef{
		Name:   "fallback",
		Width:  1280,
		Height: 720,
		Walls: []RectFrac{
			{X: 0, Y: 0, W: 1, H: 0.02},
			{X: 0, Y: 0.98, W: 1, H: 0.02},
			{X: 0, Y: 0, W: 0.02, H: 1},
			{X: 0.98, Y: 0, W: 0.02, H: 1},
			{X: 0.45, Y: 0.3, W: 0.1, H: 0.02},
		},
		Doors: []DoorDef{
			{Hinge: PointFrac{X: 0.55, Y: 0.31}, Length: 0.06, Thickness: 0.006, ClosedAngle: 0, MaxOpenAngle: 1.9, SwingDir: 1},
		},
		Spawns: []SpawnDef{
			{Pos: PointFrac{X: 0.7, Y: 0.2}, Archetype: "standard", Count: 1, Facing: 3.14},
		},
		PlayerStart: PointFrac{X: 0.5, Y: 0.8},
	}
}

// FallbackWeapon is a minimal sidearm used for unknown weapon ids.
func FallbackWeapon() *WeaponDef {
	return &WeaponDef{
		ID: "fallback_pistol", Name: "Sidearm", Class: ClassHitscan,
		Damage: 20, FireRate: 4, Spread: 0.03, Pellets: 1,
		MagSize: 12, Reserve: 48, ReloadS: 1.4,
		BulletRadius: 2, SoundRadius: 500,
	}
}

// String implements fmt.Stringer for debug logging.
func (l *Loader) String() string {
	return fmt.Sprintf("Loader(levels=%d weapons=%d)", len(l.levels), len(l.weapons))
}
