package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/config"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/sim"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/scheduler"
)

// Manager owns all active rooms.
type Manager struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*Room

	cfg    *config.Config
	res    *resource.Loader
	sender netmsg.Sender
	logger *zap.Logger
}

// NewManager creates a Manager. sender may be nil for offline hosting. When
// the config sets a room idle TTL, an idle sweep is registered on sched.
func NewManager(cfg *config.Config, res *resource.Loader, sender netmsg.Sender,
	sched *scheduler.Scheduler, logger *zap.Logger) *Manager {

	m := &Manager{
		rooms:  make(map[uuid.UUID]*Room),
		cfg:    cfg,
		res:    res,
		sender: sender,
		logger: logger,
	}
	if sched != nil && cfg.Game.RoomIdleTTL > 0 {
		sched.AddTicker("room-idle-sweep", time.Minute, m.sweepIdle)
	}
	return m
}

// Create builds a world for the named level and starts its room.
func (m *Manager) Create(levelName string, loadout resource.Loadout) *Room {
	outbox := netmsg.NewOutbox(m.sender, m.cfg.Net.UpdateRate, m.cfg.Net.UpdateBurst, m.logger)
	world := sim.NewWorld(m.res.Level(levelName), m.res, loadout, m.cfg.Game, outbox, m.logger)
	room := newRoom(levelName, world, m.cfg.Game.TickMs, m.logger)

	m.mu.Lock()
	m.rooms[room.ID] = room
	m.mu.Unlock()

	go room.Run()
	m.logger.Info("room created",
		zap.String("room", room.ID.String()),
		zap.String("level", levelName))
	return room
}

// Get returns the room by id, or nil.
func (m *Manager) Get(id uuid.UUID) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[id]
}

// List returns all active rooms.
func (m *Manager) List() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// Destroy stops and removes a room.
func (m *Manager) Destroy(id uuid.UUID) bool {
	m.mu.Lock()
	room, ok := m.rooms[id]
	if ok {
		delete(m.rooms, id)
	}
	m.mu.Unlock()
	if ok {
		room.Stop()
		m.logger.Info("room destroyed", zap.String("room", id.String()))
	}
	return ok
}

// ActiveRoomCount returns the number of running rooms.
func (m *Manager) ActiveRoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// StopAll stops every room (server shutdown).
func (m *Manager) StopAll() {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.rooms = make(map[uuid.UUID]*Room)
	m.mu.Unlock()
	for _, r := range rooms {
		r.Stop()
	}
}

// sweepIdle destroys rooms that have not seen input for the configured TTL.
func (m *Manager) sweepIdle() {
	ttl := m.cfg.Game.RoomIdleTTL
	for _, r := range m.List() {
		if r.IdleFor() > ttl {
			m.logger.Info("room idle, sweeping", zap.String("room", r.ID.String()))
			m.Destroy(r.ID)
		}
	}
}
