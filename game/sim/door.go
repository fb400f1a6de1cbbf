package sim

import (
	"math"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
)

// Door is a hinged panel simulated as a rotating thick segment.
type Door struct {
	Hinge     geom.Vec2
	Length    float64
	Thickness float64

	ClosedAngle float64
	Angle       float64
	MaxOpen     float64 // swing range magnitude from the closed angle
	SwingDir    float64 // +1 or -1

	AngVel       float64
	target       *float64 // auto-swing drive; self-clears on arrival
	Locked       bool
	HeldByPlayer bool

	soundCooldown float64
}

func newDoor(d *resource.DoorDef, worldW, worldH float64) *Door {
	return &Door{
		Hinge:       geom.Vec2{X: d.Hinge.X * worldW, Y: d.Hinge.Y * worldH},
		Length:      d.Length * worldW,
		Thickness:   d.Thickness * worldW,
		ClosedAngle: d.ClosedAngle,
		Angle:       d.ClosedAngle,
		MaxOpen:     d.MaxOpenAngle,
		SwingDir:    float64(d.SwingDir),
		Locked:      d.Locked,
	}
}

// Segment returns the door panel's centerline at its current angle.
func (d *Door) Segment() geom.Segment {
	return geom.Segment{A: d.Hinge, B: d.Hinge.Add(geom.FromAngle(d.Angle).Scale(d.Length))}
}

// Range returns the door's configured [min, max] angle bounds.
func (d *Door) Range() (float64, float64) {
	if d.SwingDir >= 0 {
		return d.ClosedAngle, d.ClosedAngle + d.MaxOpen
	}
	return d.ClosedAngle - d.MaxOpen, d.ClosedAngle
}

// IsClosed reports whether the door sits at (or near) its closed angle.
func (d *Door) IsClosed() bool {
	return math.Abs(d.Angle-d.ClosedAngle) < 0.08
}

// OpenAngle is the fully open angle for this door's swing direction.
func (d *Door) OpenAngle() float64 {
	return d.ClosedAngle + d.SwingDir*d.MaxOpen
}

// SetTarget starts an auto-swing toward angle a (clamped to range).
func (d *Door) SetTarget(a float64) {
	lo, hi := d.Range()
	a = geom.Clamp(a, lo, hi)
	d.target = &a
}

// Toggle auto-swings toward open when closed, toward closed otherwise.
// Locked doors ignore toggles.
func (d *Door) Toggle() {
	if d.Locked {
		return
	}
	if d.IsClosed() {
		d.SetTarget(d.OpenAngle())
	} else {
		d.SetTarget(d.ClosedAngle)
	}
}

// tickDoors integrates every door one step. A proposed angle change is
// committed only if every unit it pushes lands clear of all walls; otherwise
// the whole change is rejected and velocity zeroed, so doors never crush a
// unit into a wall.
func (w *World) tickDoors(dt float64) {
	for _, d := range w.Doors {
		if d.soundCooldown > 0 {
			d.soundCooldown -= dt
		}

		oldAngle := d.Angle
		prop := oldAngle

		if d.target != nil {
			diff := *d.target - prop
			step := doorDriveRate * dt
			if math.Abs(diff) <= step {
				prop = *d.target
				d.target = nil
			} else if diff > 0 {
				prop += step
			} else {
				prop -= step
			}
		} else {
			prop += d.AngVel * dt
			if !d.HeldByPlayer {
				d.AngVel *= math.Exp(-doorVelDecay * dt)
				if math.Abs(d.AngVel) < 0.01 {
					d.AngVel = 0
				}
			}
		}

		lo, hi := d.Range()
		clamped := geom.Clamp(prop, lo, hi)
		if clamped != prop {
			d.AngVel = 0
			prop = clamped
		}
		if prop == oldAngle {
			continue
		}

		if !w.commitDoorAngle(d, prop) {
			d.AngVel = 0
			continue
		}

		speed := math.Abs(prop-oldAngle) / dt
		if speed >= doorSwingSoundVel && d.soundCooldown <= 0 {
			d.soundCooldown = doorSoundCooldown
			mid := d.Hinge.Add(geom.FromAngle(d.Angle).Scale(d.Length / 2))
			w.addSound(mid, SoundDoor, doorSoundRadius*math.Min(1.5, speed/doorSwingSoundVel), false)
		}
	}
}

// commitDoorAngle validates the proposed angle against every living unit.
// Returns false (state untouched) when any required push-out would itself
// overlap a wall. On success the angle and all unit pushes are applied.
func (w *World) commitDoorAngle(d *Door, prop float64) bool {
	propSeg := geom.Segment{A: d.Hinge, B: d.Hinge.Add(geom.FromAngle(prop).Scale(d.Length))}

	type push struct {
		apply func(geom.Vec2)
		to    geom.Vec2
	}
	var pushes []push

	check := func(pos geom.Vec2, radius float64, apply func(geom.Vec2)) bool {
		np, hit := geom.ResolveCircleSegment(pos, radius, propSeg, d.Thickness)
		if !hit {
			return true
		}
		if w.overlapsAnyWall(np, radius) {
			return false
		}
		pushes = append(pushes, push{apply: apply, to: np})
		return true
	}

	p := w.Player
	if !check(p.Pos, p.Radius, func(v geom.Vec2) { p.Pos = v }) {
		return false
	}
	for _, e := range w.Enemies {
		e := e
		if !check(e.Pos, e.Radius, func(v geom.Vec2) { e.Pos = v }) {
			return false
		}
	}

	d.Angle = prop
	for _, pu := range pushes {
		pu.apply(pu.to)
	}
	return true
}

// destroyDoor removes a door from the world (blast damage on locked doors).
func (w *World) destroyDoor(target *Door) {
	kept := w.Doors[:0]
	for _, d := range w.Doors {
		if d != target {
			kept = append(kept, d)
		}
	}
	w.Doors = kept
}
