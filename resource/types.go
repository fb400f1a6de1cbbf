package resource

// Level and weapon definitions are the only structured input the simulation
// consumes. Positions and sizes in level data are fractions of the level's
// world dimensions, so the same layout scales to any world size.

// PointFrac is a normalized position (0..1 of world width/height).
type PointFrac struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RectFrac is a normalized axis-aligned rectangle.
type RectFrac struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DoorDef describes a hinged door panel.
type DoorDef struct {
	Hinge        PointFrac `json:"hinge"`
	Length       float64   `json:"length"` // fraction of world width
	Thickness    float64   `json:"thickness"`
	ClosedAngle  float64   `json:"closed_angle"` // radians
	MaxOpenAngle float64   `json:"max_open_angle"`
	SwingDir     int       `json:"swing_dir"` // +1 or -1
	Locked       bool      `json:"locked"`
}

// SpawnDef places one or more enemies. When CountMax > 0 the actual count is
// randomized in [CountMin, CountMax] at world build time.
type SpawnDef struct {
	Pos       PointFrac `json:"pos"`
	Archetype string    `json:"archetype"` // "standard" | "advanced"
	Count     int       `json:"count"`
	CountMin  int       `json:"count_min"`
	CountMax  int       `json:"count_max"`
	Facing    float64   `json:"facing"` // radians
}

// LevelDef is a playable level layout.
type LevelDef struct {
	Name        string     `json:"name"`
	Width       float64    `json:"width"`  // world units
	Height      float64    `json:"height"` // world units
	Walls       []RectFrac `json:"walls"`
	Doors       []DoorDef  `json:"doors"`
	Spawns      []SpawnDef `json:"spawns"`
	PlayerStart PointFrac  `json:"player_start"`
	Extraction  *RectFrac  `json:"extraction,omitempty"`
}

// WeaponClass selects the firing pipeline for a weapon.
type WeaponClass string

const (
	ClassHitscan    WeaponClass = "hitscan"
	ClassProjectile WeaponClass = "projectile"
	ClassExplosive  WeaponClass = "explosive"
	ClassHoming     WeaponClass = "homing"
	ClassRocket     WeaponClass = "rocket" // physical projectile with a proximity fuse
	ClassMelee      WeaponClass = "melee"
	ClassShield     WeaponClass = "shield" // forward-cone bash + frontal damage mitigation
)

// WeaponDef is a weapon data row. Only the fields relevant to the weapon's
// class are consulted; the rest stay zero.
type WeaponDef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Class    WeaponClass `json:"class"`
	Damage   float64     `json:"damage"`
	FireRate float64     `json:"fire_rate"` // shots per second
	Spread   float64     `json:"spread"`    // radians, total jitter arc
	Pellets  int         `json:"pellets"`
	MagSize  int         `json:"mag_size"`
	Reserve  int         `json:"reserve"`
	ReloadS  float64     `json:"reload_s"`

	BulletSpeed  float64 `json:"bullet_speed"`
	BulletRadius float64 `json:"bullet_radius"`
	SoundRadius  float64 `json:"sound_radius"`
	Incendiary   bool    `json:"incendiary"`

	// Explosive / rocket
	BlastRadius float64 `json:"blast_radius"`
	MaxDamage   float64 `json:"max_damage"`
	ProxRadius  float64 `json:"prox_radius"`

	// Homing
	TurnRate     float64 `json:"turn_rate"`      // radians per second while locked
	AcquireRange float64 `json:"acquire_range"`  // scan radius around projected path
	FlightRange  float64 `json:"flight_range"`   // base airburst range
	BleedStacks  int     `json:"bleed_stacks"`   // stacks applied by airburst
	AirburstDmg  float64 `json:"airburst_dmg"`   // instant damage at airburst
	AirburstRad  float64 `json:"airburst_rad"`   // airburst blast radius

	// Melee / shield
	MeleeInner   float64 `json:"melee_inner"`
	MeleeRange   float64 `json:"melee_range"`
	MeleeArc     float64 `json:"melee_arc"` // radians, total swept band
	MeleeTime    float64 `json:"melee_time"`
	MeleeCool    float64 `json:"melee_cool"`
	Durability   float64 `json:"durability"`
	StunDuration float64 `json:"stun_duration"`
}

// ThrowableDef is a grenade-class data row.
type ThrowableDef struct {
	Kind        string  `json:"kind"` // "frag" | "flash" | "incendiary" | "smoke"
	FuseS       float64 `json:"fuse_s"`
	ThrowSpeed  float64 `json:"throw_speed"`
	Radius      float64 `json:"radius"`
	MaxDamage   float64 `json:"max_damage"`
	EffectTTL   float64 `json:"effect_ttl"`   // lingering area lifetime (incendiary/smoke)
	BurnDPS     float64 `json:"burn_dps"`     // incendiary only
	SoundRadius float64 `json:"sound_radius"`
}

// AttachmentDef multiplies base weapon stats. Keys: damage, fire_rate,
// spread, mag_size, reload_s, bullet_speed, sound_radius.
type AttachmentDef struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Mods map[string]float64 `json:"mods"`
}

// Loadout is the player's chosen kit, consumed once at world build.
type Loadout struct {
	Weapons     []LoadoutWeapon `json:"weapons"`
	Throwables  map[string]int  `json:"throwables"` // kind → count
	ActiveThrow string          `json:"active_throw"`
}

// LoadoutWeapon pairs a weapon with its attachment choices.
type LoadoutWeapon struct {
	WeaponID    string   `json:"weapon_id"`
	Attachments []string `json:"attachments"`
}
