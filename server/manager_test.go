package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/config"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/sim"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := zap.NewNop()
	cfg := config.Default()
	cfg.Game.TickMs = 5
	res := resource.NewLoader("", "", logger)
	m := NewManager(cfg, res, nil, nil, logger)
	t.Cleanup(m.StopAll)
	return m
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager(t)

	room := m.Create("fallback", resource.Loadout{})
	require.NotNil(t, room)
	assert.Equal(t, 1, m.ActiveRoomCount())
	assert.Same(t, room, m.Get(room.ID))
	assert.Nil(t, m.Get(uuid.New()))
	assert.Len(t, m.List(), 1)
}

func TestRoom_TickAdvances(t *testing.T) {
	m := newTestManager(t)
	room := m.Create("fallback", resource.Loadout{})

	time.Sleep(60 * time.Millisecond)
	snap := room.Snapshot()
	assert.Positive(t, snap.Tick)
	assert.Positive(t, snap.Time)
}

func TestRoom_PauseFreezesClock(t *testing.T) {
	m := newTestManager(t)
	room := m.Create("fallback", resource.Loadout{})

	room.SetPaused(true)
	time.Sleep(30 * time.Millisecond)
	before := room.Snapshot().Time
	time.Sleep(50 * time.Millisecond)
	after := room.Snapshot().Time

	assert.Equal(t, before, after, "sim clock must not advance while paused")
}

func TestManager_Destroy(t *testing.T) {
	m := newTestManager(t)
	room := m.Create("fallback", resource.Loadout{})

	assert.True(t, m.Destroy(room.ID))
	assert.Nil(t, m.Get(room.ID))
	assert.False(t, m.Destroy(room.ID), "second destroy is a no-op")
	assert.Zero(t, m.ActiveRoomCount())
}

func TestManager_StopAll(t *testing.T) {
	m := newTestManager(t)
	m.Create("fallback", resource.Loadout{})
	m.Create("fallback", resource.Loadout{})
	require.Equal(t, 2, m.ActiveRoomCount())

	m.StopAll()
	assert.Zero(t, m.ActiveRoomCount())
}

func TestManager_SweepIdle(t *testing.T) {
	m := newTestManager(t)
	m.cfg.Game.RoomIdleTTL = time.Nanosecond

	fresh := m.Create("fallback", resource.Loadout{})
	time.Sleep(10 * time.Millisecond)
	m.sweepIdle()
	assert.Nil(t, m.Get(fresh.ID), "idle room gets swept")

	m.cfg.Game.RoomIdleTTL = time.Hour
	kept := m.Create("fallback", resource.Loadout{})
	m.sweepIdle()
	assert.NotNil(t, m.Get(kept.ID))
}

func TestRoom_ClearOneShots(t *testing.T) {
	m := newTestManager(t)
	room := m.Create("fallback", resource.Loadout{})
	room.Stop()

	room.mu.Lock()
	room.input = sim.Input{
		Move: room.input.Move, Aim: 1.2, Fire: true, HoldDoor: true, Cook: true,
		Reload: true, Melee: true, Heal: true, Throw: true,
		ToggleDoor: true, Drop: true, SwitchTo: 2,
	}
	room.clearOneShots()
	in := room.input
	room.mu.Unlock()

	// Held intents persist across ticks.
	assert.True(t, in.Fire)
	assert.True(t, in.HoldDoor)
	assert.True(t, in.Cook)
	assert.Equal(t, 1.2, in.Aim)

	// Edge-triggered intents fire once.
	assert.False(t, in.Reload)
	assert.False(t, in.Melee)
	assert.False(t, in.Heal)
	assert.False(t, in.Throw)
	assert.False(t, in.ToggleDoor)
	assert.False(t, in.Drop)
	assert.Equal(t, -1, in.SwitchTo)
}

func TestRoom_DeliverNeverBlocks(t *testing.T) {
	m := newTestManager(t)
	room := m.Create("fallback", resource.Loadout{})
	room.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < inboxSize+50; i++ {
			room.Deliver(netmsg.Message{Type: netmsg.TypePlayerUpdate})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Deliver blocked on a full inbox")
	}
}
