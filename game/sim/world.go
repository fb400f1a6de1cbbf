// Package sim implements the per-frame tactical combat simulation: geometry
// and collision, door hinge dynamics, the projectile pipeline, melee sweeps,
// explosions and status effects, enemy AI, and the player action resolver.
// All simulation state is owned and mutated exclusively by World.Tick; other
// goroutines read post-tick snapshots only.
package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/config"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

// Difficulty selects the enemy behavior set.
type Difficulty int

const (
	// DifficultyStandard runs the full patrol/investigate/search machine.
	DifficultyStandard Difficulty = iota
	// DifficultyAggressive bypasses it: enemies track and fire whenever the
	// player is visible. Kept as an explicit selector, not merged.
	DifficultyAggressive
)

// ParseDifficulty maps a config string to a Difficulty, defaulting to standard.
func ParseDifficulty(s string) Difficulty {
	if s == "aggressive" {
		return DifficultyAggressive
	}
	return DifficultyStandard
}

// World is the complete simulation state for one round.
type World struct {
	W, H float64
	diag float64

	Walls []geom.Rect
	Doors []*Door

	Player  *Player
	Enemies []*Enemy
	nextID  int

	Bullets    []*Bullet
	Throwables []*Throwable
	Sounds     []*SoundEvent
	Impacts    []*Impact
	Zones      []*AreaEffect
	Peers      map[uuid.UUID]*RemotePeer

	Extraction *geom.Rect

	LocalID    uuid.UUID
	Paused     bool
	Difficulty Difficulty

	// segs is the dynamic segment set, rebuilt exactly once per tick and
	// shared read-only by every query for the rest of that tick.
	segs []geom.Segment

	now           float64
	tick          uint64
	maxDT         float64
	reactionDelay float64

	res    *resource.Loader
	outbox *netmsg.Outbox
	rng    *rand.Rand
	logger *zap.Logger
}

// NewWorld builds a fresh simulation from level and loadout data. Nothing is
// persisted between rounds.
func NewWorld(level *resource.LevelDef, res *resource.Loader, loadout resource.Loadout,
	gcfg config.GameConfig, outbox *netmsg.Outbox, logger *zap.Logger) *World {

	if level == nil {
		level = resource.FallbackLevel()
	}
	seed := gcfg.EnemySeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxDT := gcfg.MaxDTSeconds
	if maxDT <= 0 {
		maxDT = maxDTDefault
	}
	reaction := gcfg.ReactionDelayS
	if reaction < 0 {
		reaction = 0
	}

	w := &World{
		W:             level.Width,
		H:             level.Height,
		diag:          math.Hypot(level.Width, level.Height),
		Peers:         map[uuid.UUID]*RemotePeer{},
		LocalID:       uuid.New(),
		Difficulty:    ParseDifficulty(gcfg.Difficulty),
		maxDT:         maxDT,
		reactionDelay: reaction,
		res:           res,
		outbox:        outbox,
		rng:           rand.New(rand.NewSource(seed)),
		logger:        logger,
	}

	for _, r := range level.Walls {
		w.Walls = append(w.Walls, geom.Rect{X: r.X * w.W, Y: r.Y * w.H, W: r.W * w.W, H: r.H * w.H})
	}
	for i := range level.Doors {
		w.Doors = append(w.Doors, newDoor(&level.Doors[i], w.W, w.H))
	}
	if level.Extraction != nil {
		e := level.Extraction
		w.Extraction = &geom.Rect{X: e.X * w.W, Y: e.Y * w.H, W: e.W * w.W, H: e.H * w.H}
	}

	w.spawnEnemies(level.Spawns)
	w.Player = newPlayer(
		geom.Vec2{X: level.PlayerStart.X * w.W, Y: level.PlayerStart.Y * w.H},
		res, loadout,
	)

	w.segs = BuildDynamicSegments(w.Walls, w.Doors)

	w.logger.Info("world built",
		zap.String("level", level.Name),
		zap.Int("walls", len(w.Walls)),
		zap.Int("doors", len(w.Doors)),
		zap.Int("enemies", len(w.Enemies)))

	w.outbox.Send(netmsg.New(netmsg.TypeStartRound, w.LocalID,
		netmsg.StartRound{Level: level.Name, Seed: seed}))
	return w
}

func (w *World) spawnEnemies(spawns []resource.SpawnDef) {
	for _, s := range spawns {
		n := s.Count
		if s.CountMax > 0 {
			lo := s.CountMin
			if lo < 0 {
				lo = 0
			}
			n = lo + w.rng.Intn(s.CountMax-lo+1)
		}
		base := geom.Vec2{X: s.Pos.X * w.W, Y: s.Pos.Y * w.H}
		for i := 0; i < n; i++ {
			pos := base
			if i > 0 {
				// Ring the extras around the spawn point.
				a := float64(i) / float64(n) * 2 * math.Pi
				pos = base.Add(geom.FromAngle(a).Scale(enemyRadius * 2.5))
			}
			w.Enemies = append(w.Enemies, newEnemy(w.nextID, pos, s.Facing, s.Archetype))
			w.nextID++
		}
	}
}

// Tick advances the simulation by dt seconds in the fixed component order.
// dt is clamped so a stalled host cannot produce a catch-up jump. Paused
// worlds skip simulation entirely while the host keeps rendering snapshots.
func (w *World) Tick(dt float64, in Input) {
	if w.Paused || dt <= 0 {
		return
	}
	if dt > w.maxDT {
		dt = w.maxDT
	}
	w.tick++
	w.now += dt

	w.segs = BuildDynamicSegments(w.Walls, w.Doors)
	w.tickDoors(dt)
	w.tickPlayer(dt, in)
	w.tickBullets(dt)
	w.tickThrowables(dt)
	w.tickMelee(dt)
	w.tickEnemies(dt)
	w.tickPeers(dt)
	w.decayEffects(dt)
}

// Segments returns the current tick's dynamic segment set, read-only.
func (w *World) Segments() []geom.Segment { return w.segs }

// Now returns accumulated simulation time in seconds.
func (w *World) Now() float64 { return w.now }

// EnemyByID finds a living enemy by stable id, or nil. Homing locks hold ids,
// never pointers, so a removed target simply stops resolving.
func (w *World) EnemyByID(id int) *Enemy {
	for _, e := range w.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// InExtractionZone reports whether the player stands in the extraction zone.
func (w *World) InExtractionZone() bool {
	return w.Extraction != nil && w.Extraction.Contains(w.Player.Pos)
}

// VisibilityPolygon computes the player's current vision polygon for fog
// clipping and exposure tests. Only origins that need a full polygon pay for
// one; enemy sight uses the cheaper direct occlusion test.
func (w *World) VisibilityPolygon(origin geom.Vec2) []geom.Vec2 {
	return visionPolygon(origin, w.segs, w.diag)
}

// removeDeadEnemies drops enemies at or below zero health from the active
// set. Called after each damage-dealing phase.
func (w *World) removeDeadEnemies() {
	kept := w.Enemies[:0]
	killed := 0
	for _, e := range w.Enemies {
		if e.Health > 0 {
			kept = append(kept, e)
		} else {
			killed++
		}
	}
	if killed > 0 {
		w.logger.Debug("enemies down", zap.Int("count", killed), zap.Int("alive", len(kept)))
	}
	w.Enemies = kept
}

// moveCircle moves a unit circle with wall/door collision resolution and
// world-bounds clamping. Returns the resolved position.
func (w *World) moveCircle(pos geom.Vec2, delta geom.Vec2, radius float64) geom.Vec2 {
	p := pos.Add(delta)
	p = w.resolveStatic(p, radius)
	p.X = geom.Clamp(p.X, radius, w.W-radius)
	p.Y = geom.Clamp(p.Y, radius, w.H-radius)
	return p
}

// resolveStatic pushes a circle out of all walls and door panels.
func (w *World) resolveStatic(p geom.Vec2, radius float64) geom.Vec2 {
	for _, wall := range w.Walls {
		p, _ = geom.ResolveCircleRect(p, radius, wall)
	}
	for _, d := range w.Doors {
		p, _ = geom.ResolveCircleSegment(p, radius, d.Segment(), d.Thickness)
	}
	return p
}

// overlapsAnyWall reports whether a circle at p overlaps any wall. Used by
// door dynamics to reject pushes that would crush a unit into a wall.
func (w *World) overlapsAnyWall(p geom.Vec2, radius float64) bool {
	for _, wall := range w.Walls {
		if _, hit := geom.ResolveCircleRect(p, radius, wall); hit {
			return true
		}
	}
	return false
}
