package sim

import (
	"github.com/google/uuid"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
)

// Snapshot is a read-only copy of the renderable world state, taken after a
// tick completes. Hosts hand snapshots to other goroutines; the live World is
// touched only by Tick.
type Snapshot struct {
	Tick uint64  `json:"tick"`
	Time float64 `json:"time"`

	Player  PlayerView  `json:"player"`
	Enemies []EnemyView `json:"enemies"`
	Peers   []PeerView  `json:"peers,omitempty"`

	Doors      []DoorView   `json:"doors,omitempty"`
	Bullets    []BulletView `json:"bullets,omitempty"`
	Throwables []ThrowView  `json:"throwables,omitempty"`
	Sounds     []SoundView  `json:"sounds,omitempty"`
	Impacts    []geom.Vec2  `json:"impacts,omitempty"`
	Zones      []ZoneView   `json:"zones,omitempty"`

	Visibility []geom.Vec2 `json:"visibility"`
	Extracted  bool        `json:"extracted"`
}

type PlayerView struct {
	Pos       geom.Vec2 `json:"pos"`
	Facing    float64   `json:"facing"`
	Health    float64   `json:"health"`
	MaxHealth float64   `json:"max_health"`
	Mag       int       `json:"mag"`
	Reserve   int       `json:"reserve"`
	WeaponID  string    `json:"weapon_id"`
	Reloading bool      `json:"reloading"`
	Healing   bool      `json:"healing"`
	Blind     float64   `json:"blind"`
	HitFlash  float64   `json:"hit_flash"`
}

type EnemyView struct {
	ID       int       `json:"id"`
	Pos      geom.Vec2 `json:"pos"`
	Facing   float64   `json:"facing"`
	Health   float64   `json:"health"`
	Alerted  bool      `json:"alerted"`
	HitFlash float64   `json:"hit_flash"`
}

type PeerView struct {
	ID     uuid.UUID `json:"id"`
	Pos    geom.Vec2 `json:"pos"`
	Aim    float64   `json:"aim"`
	Health float64   `json:"health"`
}

type DoorView struct {
	Hinge  geom.Vec2 `json:"hinge"`
	End    geom.Vec2 `json:"end"`
	Locked bool      `json:"locked"`
}

type BulletView struct {
	Pos geom.Vec2 `json:"pos"`
	Vel geom.Vec2 `json:"vel"`
}

type ThrowView struct {
	Pos  geom.Vec2 `json:"pos"`
	Kind string    `json:"kind"`
	Fuse float64   `json:"fuse"`
}

type SoundView struct {
	Pos    geom.Vec2 `json:"pos"`
	Radius float64   `json:"radius"`
	Kind   SoundKind `json:"kind"`
}

type ZoneView struct {
	Pos    geom.Vec2 `json:"pos"`
	Radius float64   `json:"radius"`
	Kind   ZoneKind  `json:"kind"`
}

// Snapshot captures the current renderable state.
func (w *World) Snapshot() Snapshot {
	p := w.Player
	ws := p.ActiveWeapon()
	s := Snapshot{
		Tick: w.tick,
		Time: w.now,
		Player: PlayerView{
			Pos: p.Pos, Facing: p.Facing,
			Health: p.Health, MaxHealth: p.MaxHealth,
			Mag: ws.Mag, Reserve: ws.Reserve, WeaponID: ws.Def.ID,
			Reloading: p.Reloading, Healing: p.Healing,
			Blind: p.BlindTimer, HitFlash: p.HitFlash,
		},
		Visibility: w.VisibilityPolygon(p.Pos),
		Extracted:  w.InExtractionZone(),
	}
	for _, e := range w.Enemies {
		s.Enemies = append(s.Enemies, EnemyView{
			ID: e.ID, Pos: e.Pos, Facing: e.Facing, Health: e.Health,
			Alerted: e.State == StateAlert, HitFlash: e.HitFlash,
		})
	}
	for _, rp := range w.Peers {
		s.Peers = append(s.Peers, PeerView{ID: rp.ID, Pos: rp.Pos, Aim: rp.Aim, Health: rp.Health})
	}
	for _, d := range w.Doors {
		seg := d.Segment()
		s.Doors = append(s.Doors, DoorView{Hinge: seg.A, End: seg.B, Locked: d.Locked})
	}
	for _, b := range w.Bullets {
		s.Bullets = append(s.Bullets, BulletView{Pos: b.Pos, Vel: b.Vel})
	}
	for _, t := range w.Throwables {
		s.Throwables = append(s.Throwables, ThrowView{Pos: t.Pos, Kind: t.Def.Kind, Fuse: t.Fuse})
	}
	for _, snd := range w.Sounds {
		s.Sounds = append(s.Sounds, SoundView{Pos: snd.Pos, Radius: snd.Radius, Kind: snd.Kind})
	}
	for _, im := range w.Impacts {
		s.Impacts = append(s.Impacts, im.Pos)
	}
	for _, z := range w.Zones {
		s.Zones = append(s.Zones, ZoneView{Pos: z.Pos, Radius: z.Radius, Kind: z.Kind})
	}
	return s
}
