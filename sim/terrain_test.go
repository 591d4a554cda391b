package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/seivard/grimhollow/common"
)

func TestBossHeightIsPinnedForLife(t *testing.T) {
	w := newTestWorld(flatTerrain{height: 2}, nil, nil)
	e := w.SpawnFromSpec(bossSpec(), common.Vec3{})

	w.Update(0.016)
	want := 2.4 // terrain height plus the type's height offset
	if got := e.Position().Y; got != want {
		t.Fatalf("boss initial Y = %v, want %v", got, want)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		e.SetPosition(common.Vec3{
			X: rng.Float64()*100 - 50,
			Y: rng.Float64()*200 - 100,
			Z: rng.Float64()*100 - 50,
		})
		if i%100 == 0 {
			e.TakeDamage(w, 1, true, cp.Vector{X: 1}, false)
		}
		w.Update(0.016)
		if got := e.Position().Y; got != want {
			t.Fatalf("tick %d: boss Y = %v, want pinned %v", i, got, want)
		}
	}
}

func TestBossPinWaitsForKnownTerrain(t *testing.T) {
	w := newTestWorld(unknownTerrain{}, nil, nil)
	e := w.SpawnFromSpec(bossSpec(), common.Vec3{Y: 7})

	w.Update(0.016)
	if got := e.Position().Y; got != 7 {
		t.Errorf("boss Y changed over unknown terrain: %v", got)
	}
	if e.initialPositionSet {
		t.Error("pin must not latch until the sampler answers")
	}
}

func TestTerrainRecheckIsThrottled(t *testing.T) {
	terrain := &countingTerrain{height: 1}
	w := newTestWorld(terrain, nil, nil)
	e := w.SpawnFromSpec(meleeSpec(), common.Vec3{})

	w.Update(0.016)
	if terrain.calls == 0 {
		t.Fatal("first tick never queried the sampler")
	}
	if got := e.Position().Y; got != 1 {
		t.Fatalf("enemy Y = %v, want 1", got)
	}

	// stationary enemy: the movement throttle suppresses requeries. The
	// occasional drift sweep may still sample, so allow a little slack.
	base := terrain.calls
	for i := 0; i < 100; i++ {
		w.Update(0.016)
	}
	if terrain.calls > base+4 {
		t.Errorf("stationary enemy made %d sampler calls, want about %d", terrain.calls, base)
	}

	// moving past the recheck distance on one axis forces a requery
	before := terrain.calls
	pos := e.Position()
	pos.X += 0.6
	e.SetPosition(pos)
	w.Update(0.016)
	if terrain.calls <= before {
		t.Error("moving past the recheck distance did not requery the sampler")
	}
}

func TestDriftCorrectionSnapsToGround(t *testing.T) {
	w := newTestWorld(flatTerrain{}, nil, nil)
	e := w.SpawnFromSpec(meleeSpec(), common.Vec3{})
	e.pos.Y = 50

	corrected := false
	for i := 0; i < 100000; i++ {
		if e.validatePosition(w) {
			corrected = true
			break
		}
	}
	if !corrected {
		t.Fatal("drift sweep never triggered")
	}
	if got := e.Position().Y; got != 0 {
		t.Errorf("drifted Y = %v after correction, want 0", got)
	}
}

func TestDriftWithinToleranceIsLeftAlone(t *testing.T) {
	w := newTestWorld(flatTerrain{}, nil, nil)
	e := w.SpawnFromSpec(meleeSpec(), common.Vec3{})
	e.pos.Y = 4 // under the 5-unit tolerance

	for i := 0; i < 100000; i++ {
		if e.validatePosition(w) {
			t.Fatalf("sweep corrected a position only %v units off", 4.0)
		}
	}
}

func TestInvalidPositionRelocatesNearTarget(t *testing.T) {
	player := newTestPlayer(common.Vec3{X: 20, Y: 1, Z: 5})
	w := newTestWorld(flatTerrain{}, player, nil)
	e := w.SpawnFromSpec(meleeSpec(), common.Vec3{})
	e.target = LocalTarget(player)
	e.pos.X = math.NaN()

	corrected := false
	for i := 0; i < 100000; i++ {
		if e.validatePosition(w) {
			corrected = true
			break
		}
	}
	if !corrected {
		t.Fatal("sweep never caught the invalid position")
	}
	if !e.Position().Finite() {
		t.Fatalf("position still invalid: %+v", e.Position())
	}
	distSq := common.HorizontalDistSq(e.Position(), player.Position())
	if distSq > relocateRadius*relocateRadius+1e-9 {
		t.Errorf("relocated %v units from target, want within %v", math.Sqrt(distSq), relocateRadius)
	}
	if got := e.Position().Y; got != 0 {
		t.Errorf("relocated Y = %v, want snapped to ground", got)
	}
}

func TestAirborneGate(t *testing.T) {
	tests := []struct {
		name    string
		terrain HeightSampler
		posY    float64
		want    bool
	}{
		{"grounded", flatTerrain{}, 1.0, false},
		{"slightly high", flatTerrain{}, 1.3, false},
		{"above tolerance", flatTerrain{}, 1.4, true},
		{"high jump", flatTerrain{}, 4.0, true},
		{"unknown terrain", unknownTerrain{}, 9.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := newTestPlayer(common.Vec3{X: 1, Y: tt.posY})
			w := newTestWorld(tt.terrain, player, nil)
			if got := w.targetAirborne(LocalTarget(player)); got != tt.want {
				t.Errorf("targetAirborne(Y=%v) = %v, want %v", tt.posY, got, tt.want)
			}
		})
	}
}
