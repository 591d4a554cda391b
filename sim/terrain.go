package sim

import (
	"log"
	"math"

	"github.com/seivard/grimhollow/common"
)

// HeightSampler answers terrain height queries. The bool result is false when
// the height is unknown at (x, z); implementations may also return NaN or
// infinities, which callers treat the same as unknown.
type HeightSampler interface {
	HeightAt(x, z float64) (float64, bool)
}

// Terrain-follow tuning. The recheck distance throttles how often a moving
// enemy re-queries the sampler; the drift sweep runs on ~1% of ticks.
const (
	terrainRecheckDist = 0.5
	driftTolerance     = 5.0
	driftSampleChance  = 0.01
	relocateRadius     = 10.0
)

// sampleHeight wraps the world sampler and folds non-finite answers into
// "unknown".
func (w *World) sampleHeight(x, z float64) (float64, bool) {
	if w == nil || w.terrain == nil {
		return 0, false
	}
	h, ok := w.terrain.HeightAt(x, z)
	if !ok || !common.IsFinite(h) {
		return 0, false
	}
	return h, true
}

// followTerrain keeps the enemy's Y consistent with the ground under it.
//
// Bosses are pinned: the first available terrain height fixes their Y for
// life, and every later call re-asserts it over any other writer. Regular
// enemies re-query only after moving terrainRecheckDist on some axis since
// the last successful check. Unknown heights skip the update for the tick.
func (e *Enemy) followTerrain(w *World) {
	if e == nil || w == nil {
		return
	}

	if !e.allowTerrainUpdates {
		if !e.initialPositionSet {
			h, ok := w.sampleHeight(e.pos.X, e.pos.Z)
			if !ok {
				return
			}
			e.initialY = h + e.heightOffset
			e.pos.Y = e.initialY
			e.initialPositionSet = true
			return
		}
		e.pos.Y = e.initialY
		return
	}

	if e.lastTerrainCheck != nil {
		d := e.pos.Sub(*e.lastTerrainCheck)
		if math.Abs(d.X) < terrainRecheckDist &&
			math.Abs(d.Y) < terrainRecheckDist &&
			math.Abs(d.Z) < terrainRecheckDist {
			return
		}
	}

	h, ok := w.sampleHeight(e.pos.X, e.pos.Z)
	if !ok {
		return
	}
	e.pos.Y = h + e.heightOffset
	anchor := e.pos
	e.lastTerrainCheck = &anchor
}

// validatePosition is the drift-correction sweep for regular enemies. It runs
// on a small random fraction of ticks: a non-finite position relocates the
// enemy near its target, and a Y more than driftTolerance off the expected
// ground height snaps back. Returns true when a correction was made.
func (e *Enemy) validatePosition(w *World) bool {
	if e == nil || w == nil || !e.allowTerrainUpdates {
		return false
	}
	if w.rng.Float64() >= driftSampleChance {
		return false
	}

	if !e.pos.Finite() {
		anchor := common.Vec3{}
		if e.target.Valid() {
			anchor = e.target.Position()
		}
		angle := w.rng.Float64() * 2 * math.Pi
		radius := w.rng.Float64() * relocateRadius
		e.pos = common.Vec3{
			X: anchor.X + math.Cos(angle)*radius,
			Y: anchor.Y,
			Z: anchor.Z + math.Sin(angle)*radius,
		}
		e.lastTerrainCheck = nil
		e.followTerrain(w)
		log.Printf("terrain: relocated enemy %d after invalid position", e.id)
		return true
	}

	h, ok := w.sampleHeight(e.pos.X, e.pos.Z)
	if !ok {
		return false
	}
	expected := h + e.heightOffset
	if math.Abs(e.pos.Y-expected) > driftTolerance {
		e.pos.Y = expected
		anchor := e.pos
		e.lastTerrainCheck = &anchor
		log.Printf("terrain: corrected drift on enemy %d", e.id)
		return true
	}
	return false
}
