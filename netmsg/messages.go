// Package netmsg defines the messages the simulation exchanges with its
// peer overlay. Transport is external; the core only emits and consumes.
package netmsg

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Type identifies a message kind on the wire.
type Type string

const (
	TypeFireWeapon   Type = "fire-weapon"
	TypePlayerUpdate Type = "player-update"
	TypePlayerHit    Type = "player-hit"
	TypeDropWeapon   Type = "drop-weapon"
	TypePickupWeapon Type = "pickup-weapon"
	TypeBuyWeapon    Type = "buy-weapon"
	TypeStartRound   Type = "start-round"
)

// Message is the envelope for all peer traffic. A zero To means broadcast.
type Message struct {
	ID      uuid.UUID       `json:"id"`
	Type    Type            `json:"type"`
	From    uuid.UUID       `json:"from"`
	To      uuid.UUID       `json:"to,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// FireWeapon announces a local shot so peers can mirror effects.
type FireWeapon struct {
	WeaponID string  `json:"weapon_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Angle    float64 `json:"angle"`
}

// PlayerUpdate is the periodic local-actor state sample.
type PlayerUpdate struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Aim    float64 `json:"aim"`
	Health float64 `json:"health"`
}

// PlayerHit requests damage on a remote actor. The core never mutates a
// peer's health locally; the owning peer is authoritative.
type PlayerHit struct {
	Target uuid.UUID `json:"target"`
	Damage float64   `json:"damage"`
	FromX  float64   `json:"from_x"`
	FromY  float64   `json:"from_y"`
}

// DropWeapon / PickupWeapon / BuyWeapon mirror inventory changes.
type DropWeapon struct {
	WeaponID string  `json:"weapon_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type PickupWeapon struct {
	WeaponID string `json:"weapon_id"`
}

type BuyWeapon struct {
	WeaponID string `json:"weapon_id"`
}

// StartRound announces a fresh simulation build.
type StartRound struct {
	Level string `json:"level"`
	Seed  int64  `json:"seed"`
}

// New builds a broadcast message with a marshaled payload. Marshal failures
// produce an empty payload rather than an error; messaging is best-effort.
func New(t Type, from uuid.UUID, payload any) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = nil
	}
	return Message{ID: uuid.New(), Type: t, From: from, Payload: raw}
}

// NewTo builds a message addressed to a single peer.
func NewTo(t Type, from, to uuid.UUID, payload any) Message {
	m := New(t, from, payload)
	m.To = to
	return m
}

// Decode unmarshals the payload into out, returning false on malformed data.
func (m Message) Decode(out any) bool {
	if len(m.Payload) == 0 {
		return false
	}
	return json.Unmarshal(m.Payload, out) == nil
}

// Sender delivers outbound messages to the transport layer.
type Sender interface {
	Send(Message) error
}
