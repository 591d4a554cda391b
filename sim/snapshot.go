package sim

import "github.com/seivard/grimhollow/common"

// Snapshot is the per-tick read-only view of an enemy handed to the renderer
// and animator. Everything here is a copy; holding a snapshot never keeps an
// enemy alive.
type Snapshot struct {
	ID   int
	Type string
	Name string
	Boss bool

	Position common.Vec3
	Yaw      float64
	Roll     float64
	Scale    float64
	// Fade is 1 for live enemies and eases to 0 during a boss death.
	Fade float64

	Health    float64
	MaxHealth float64

	Dead      bool
	Attacking bool
	Moving    bool
}

// Snapshot captures the enemy's presentational state.
func (e *Enemy) Snapshot() Snapshot {
	if e == nil {
		return Snapshot{}
	}
	return Snapshot{
		ID:        e.id,
		Type:      e.typeName,
		Name:      e.displayName,
		Boss:      e.boss,
		Position:  e.pos,
		Yaw:       e.yaw,
		Roll:      e.roll,
		Scale:     e.scale,
		Fade:      e.fade,
		Health:    e.health,
		MaxHealth: e.maxHealth,
		Dead:      e.dead,
		Attacking: e.attacking,
		Moving:    e.moving,
	}
}

// Snapshots captures every enemy in the pool.
func (w *World) Snapshots() []Snapshot {
	if w == nil || len(w.enemies) == 0 {
		return nil
	}
	out := make([]Snapshot, 0, len(w.enemies))
	for _, e := range w.enemies {
		if e != nil {
			out = append(out, e.Snapshot())
		}
	}
	return out
}
