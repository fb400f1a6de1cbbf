package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/sim"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
)

const inboxSize = 256

// Room owns one running simulation. A dedicated goroutine drives the tick
// loop; everything else talks to the room through SetInput, Deliver and
// Snapshot. The sim.World itself is never touched off the tick goroutine.
type Room struct {
	ID        uuid.UUID
	LevelName string

	mu     sync.Mutex
	world  *sim.World
	input  sim.Input
	paused bool

	inbox chan netmsg.Message
	snap  atomic.Value // sim.Snapshot

	tickInterval time.Duration
	lastActive   time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func newRoom(levelName string, world *sim.World, tickMs int, logger *zap.Logger) *Room {
	if tickMs <= 0 {
		tickMs = 16
	}
	r := &Room{
		ID:           uuid.New(),
		LevelName:    levelName,
		world:        world,
		inbox:        make(chan netmsg.Message, inboxSize),
		tickInterval: time.Duration(tickMs) * time.Millisecond,
		lastActive:   time.Now(),
		stopCh:       make(chan struct{}),
		logger:       logger,
	}
	r.input.SwitchTo = -1
	r.snap.Store(world.Snapshot())
	return r
}

// Run drives the tick loop until Stop. Wall-clock time between ticks is
// measured and handed to the world, which clamps it; a stalled host resumes
// without a catch-up jump.
func (r *Room) Run() {
	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(last).Seconds()
			last = now
			r.tick(dt)
		case <-r.stopCh:
			return
		}
	}
}

func (r *Room) tick(dt float64) {
	// Apply queued peer traffic on the tick goroutine.
	for {
		select {
		case m := <-r.inbox:
			r.world.HandleMessage(m)
			continue
		default:
		}
		break
	}

	r.mu.Lock()
	in := r.input
	r.clearOneShots()
	// The world is only touched on this goroutine; the pause flag crosses
	// over under the lock.
	r.world.Paused = r.paused
	r.mu.Unlock()

	r.world.Tick(dt, in)
	r.snap.Store(r.world.Snapshot())
}

// clearOneShots resets edge-triggered intents so a held HTTP sample does not
// repeat them every tick. Held intents (movement, aim, trigger) persist.
func (r *Room) clearOneShots() {
	r.input.Reload = false
	r.input.Melee = false
	r.input.Heal = false
	r.input.Throw = false
	r.input.ToggleDoor = false
	r.input.Drop = false
	r.input.SwitchTo = -1
}

// Stop terminates the tick loop. Idempotent.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// SetInput replaces the pending player intent sample.
func (r *Room) SetInput(in sim.Input) {
	r.mu.Lock()
	r.input = in
	r.lastActive = time.Now()
	r.mu.Unlock()
}

// SetPaused pauses or resumes the simulation. Snapshots keep flowing while
// paused.
func (r *Room) SetPaused(paused bool) {
	r.mu.Lock()
	r.paused = paused
	r.lastActive = time.Now()
	r.mu.Unlock()
}

// Deliver enqueues an inbound peer message. A full inbox drops the message;
// peer traffic is best-effort.
func (r *Room) Deliver(m netmsg.Message) {
	select {
	case r.inbox <- m:
	default:
		r.logger.Debug("room inbox full, message dropped",
			zap.String("room", r.ID.String()), zap.String("type", string(m.Type)))
	}
}

// Snapshot returns the most recent post-tick state.
func (r *Room) Snapshot() sim.Snapshot {
	return r.snap.Load().(sim.Snapshot)
}

// IdleFor reports how long ago the room last saw player input.
func (r *Room) IdleFor() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Since(r.lastActive)
}
