package sim

import (
	"math"

	"github.com/google/uuid"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/netmsg"
)

const (
	peerExpiry   = 5.0  // seconds without a sample before a peer is dropped
	peerLerpRate = 10.0 // interpolation pull per second
)

// RemotePeer is a non-authoritative overlay of another player. The core only
// renders and interpolates peers; their health and inventory belong to the
// owning peer, reached via player-hit messages.
type RemotePeer struct {
	ID     uuid.UUID
	Pos    geom.Vec2
	Aim    float64
	Health float64

	sample    geom.Vec2
	sampleAim float64
	hasSample bool
	lastSeen  float64
}

// HandleMessage applies one inbound peer message to the world. Unknown types
// and messages addressed elsewhere are ignored; a malformed payload is
// dropped silently.
func (w *World) HandleMessage(m netmsg.Message) {
	if m.From == w.LocalID {
		return
	}
	switch m.Type {
	case netmsg.TypePlayerUpdate:
		var pu netmsg.PlayerUpdate
		if !m.Decode(&pu) {
			return
		}
		rp, ok := w.Peers[m.From]
		if !ok {
			rp = &RemotePeer{ID: m.From, Pos: geom.Vec2{X: pu.X, Y: pu.Y}}
			w.Peers[m.From] = rp
		}
		rp.sample = geom.Vec2{X: pu.X, Y: pu.Y}
		rp.sampleAim = pu.Aim
		rp.hasSample = true
		rp.Health = pu.Health
		rp.lastSeen = w.now

	case netmsg.TypePlayerHit:
		if m.To != w.LocalID {
			return
		}
		var ph netmsg.PlayerHit
		if !m.Decode(&ph) {
			return
		}
		w.damagePlayer(ph.Damage, geom.Vec2{X: ph.FromX, Y: ph.FromY})

	case netmsg.TypeFireWeapon:
		var fw netmsg.FireWeapon
		if !m.Decode(&fw) {
			return
		}
		w.addSound(geom.Vec2{X: fw.X, Y: fw.Y}, SoundGunfire, 480, false)
	}
}

// tickPeers interpolates each peer toward its latest sample and expires the
// silent ones.
func (w *World) tickPeers(dt float64) {
	pull := math.Min(1, peerLerpRate*dt)
	for id, rp := range w.Peers {
		if w.now-rp.lastSeen > peerExpiry {
			delete(w.Peers, id)
			continue
		}
		if !rp.hasSample {
			continue
		}
		rp.Pos = rp.Pos.Add(rp.sample.Sub(rp.Pos).Scale(pull))
		rp.Aim = geom.NormalizeAngle(rp.Aim + geom.AngleDiff(rp.sampleAim, rp.Aim)*pull)
	}
}
