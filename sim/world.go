package sim

import (
	"fmt"
	"math/rand"

	"github.com/seivard/grimhollow/behavior"
	"github.com/seivard/grimhollow/common"
	"github.com/seivard/grimhollow/network"
)

// Config carries the world-level tuning knobs. The airborne constants were
// tuned against the reference player model; keep them configurable rather
// than derived.
type Config struct {
	MaxProjectiles     int
	ChaseMultiplier    float64
	TargetGroundOffset float64
	AirborneTolerance  float64
}

func DefaultConfig() Config {
	return Config{
		MaxProjectiles:     defaultMaxProjectiles,
		ChaseMultiplier:    1.5,
		TargetGroundOffset: 1.0,
		AirborneTolerance:  0.35,
	}
}

// World is the simulation driver. It owns the enemy pool, the projectile
// manager, the id counter, and the simulation clock: a float64 seconds
// accumulator advanced only by Update, so tests drive time deterministically.
//
// Single-threaded by contract: one Update pass over all enemies, then one
// over the projectiles, per frame. Nothing here locks.
type World struct {
	cfg       Config
	terrain   HeightSampler
	local     Player
	transport network.Transport
	table     *behavior.Table
	rng       *rand.Rand

	now     float64
	nextID  int
	enemies []*Enemy

	projectiles *ProjectileManager
}

func NewWorld(cfg Config, terrain HeightSampler, local Player, transport network.Transport, table *behavior.Table, rng *rand.Rand) *World {
	if cfg.ChaseMultiplier <= 0 {
		cfg.ChaseMultiplier = 1.5
	}
	if cfg.TargetGroundOffset <= 0 {
		cfg.TargetGroundOffset = 1.0
	}
	if cfg.AirborneTolerance <= 0 {
		cfg.AirborneTolerance = 0.35
	}
	if transport == nil {
		transport = network.NopTransport{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &World{
		cfg:         cfg,
		terrain:     terrain,
		local:       local,
		transport:   transport,
		table:       table,
		rng:         rng,
		nextID:      1,
		projectiles: NewProjectileManager(cfg.MaxProjectiles),
	}
}

// SetTable swaps the behavior table, e.g. after a hot reload. Enemies already
// spawned keep their old stats; only new spawns see the change.
func (w *World) SetTable(t *behavior.Table) {
	if w == nil || t == nil {
		return
	}
	w.table = t
}

// Now returns the simulation clock in seconds.
func (w *World) Now() float64 { return w.now }

// Projectiles returns the projectile manager.
func (w *World) Projectiles() *ProjectileManager { return w.projectiles }

// Enemies returns the live enemy pool; the slice is owned by the world.
func (w *World) Enemies() []*Enemy { return w.enemies }

// Spawn creates an enemy of a known type at pos.
func (w *World) Spawn(typeName string, pos common.Vec3) (*Enemy, error) {
	if w == nil || w.table == nil {
		return nil, fmt.Errorf("sim: no behavior table")
	}
	spec, ok := w.table.Spec(typeName)
	if !ok {
		return nil, fmt.Errorf("sim: unknown enemy type %q", typeName)
	}
	return w.SpawnFromSpec(spec, pos), nil
}

// SpawnFromSpec creates an enemy directly from a definition, bypassing the
// table lookup. Useful for tests and one-off scripted encounters.
func (w *World) SpawnFromSpec(spec behavior.TypeSpec, pos common.Vec3) *Enemy {
	if w == nil {
		return nil
	}
	cat := behavior.CategoryFor(spec.Name)
	if w.table != nil {
		cat = w.table.CategoryOf(spec.Name)
	}
	e := NewEnemy(w.nextID, spec, cat, pos)
	w.nextID++
	w.enemies = append(w.enemies, e)
	return e
}

// Update advances the whole simulation by delta seconds: clock, one pass over
// every enemy, then one pass over the projectiles. Enemies whose death
// animation finished this tick are removed from the pool.
func (w *World) Update(delta float64) {
	if w == nil || delta <= 0 {
		return
	}
	w.now += delta

	for i := len(w.enemies) - 1; i >= 0; i-- {
		if !w.enemies[i].Update(w, delta) {
			w.removeEnemy(i)
		}
	}

	w.projectiles.Update(w, delta)
}

func (w *World) removeEnemy(i int) {
	last := len(w.enemies) - 1
	w.enemies[i] = w.enemies[last]
	w.enemies[last] = nil
	w.enemies = w.enemies[:last]
}

// AliveCount returns the number of enemies that are not dead or dying.
func (w *World) AliveCount() int {
	n := 0
	for _, e := range w.enemies {
		if e != nil && !e.dead {
			n++
		}
	}
	return n
}

// Clear retires every projectile and enemy, returning the world to its
// initial empty state. Safe at any tick boundary.
func (w *World) Clear() {
	if w == nil {
		return
	}
	w.projectiles.Clear()
	for i := range w.enemies {
		w.enemies[i] = nil
	}
	w.enemies = w.enemies[:0]
}

// targetAirborne reports whether the target hovers too far above the ground
// under it for a melee enemy to reach. Unknown terrain means "not airborne":
// melee enemies shouldn't freeze because a chunk hasn't loaded.
func (w *World) targetAirborne(t Target) bool {
	if !t.Valid() {
		return false
	}
	pos := t.Position()
	h, ok := w.sampleHeight(pos.X, pos.Z)
	if !ok {
		return false
	}
	return pos.Y > h+w.cfg.TargetGroundOffset+w.cfg.AirborneTolerance
}
