// simrun is a headless soak harness for the enemy simulation: it spawns a
// scripted mix of enemies against a synthetic heightfield and a circling
// player, runs for a fixed number of ticks, and logs snapshots. Used as a
// manual smoke test for tuning changes.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/seivard/grimhollow/behavior"
	"github.com/seivard/grimhollow/common"
	"github.com/seivard/grimhollow/sim"
)

type heightField struct{}

func (heightField) HeightAt(x, z float64) (float64, bool) {
	return math.Sin(x*0.12)*1.5 + math.Cos(z*0.09)*1.2, true
}

// soakPlayer walks a slow circle and soaks up whatever the enemies deal out.
type soakPlayer struct {
	pos     common.Vec3
	health  float64
	xp      int
	effects map[sim.EffectKind]bool
	angle   float64
}

func newSoakPlayer() *soakPlayer {
	return &soakPlayer{health: 1000, effects: make(map[sim.EffectKind]bool)}
}

func (p *soakPlayer) advance(dt float64) {
	p.angle += dt * 0.3
	p.pos.X = math.Cos(p.angle) * 12
	p.pos.Z = math.Sin(p.angle) * 12
	h, _ := heightField{}.HeightAt(p.pos.X, p.pos.Z)
	p.pos.Y = h + 1.0
}

func (p *soakPlayer) Position() common.Vec3 { return p.pos }

func (p *soakPlayer) TakeDamage(amount float64) {
	p.health -= amount
	if p.health < 0 {
		p.health = 0
	}
}

func (p *soakPlayer) ApplyEffect(kind sim.EffectKind, seconds float64) { p.effects[kind] = true }
func (p *soakPlayer) HasEffect(kind sim.EffectKind) bool              { return p.effects[kind] }
func (p *soakPlayer) RemoveEffect(kind sim.EffectKind)                { delete(p.effects, kind) }
func (p *soakPlayer) AddExperience(amount int)                        { p.xp += amount }

func main() {
	ticks := flag.Int("ticks", 1200, "number of simulation ticks to run")
	dt := flag.Float64("dt", 0.05, "seconds per tick")
	seed := flag.Int64("seed", 1, "rng seed")
	watchDir := flag.String("watch", "", "behavior defs dir to hot-reload")
	flag.Parse()

	table, err := behavior.LoadTable()
	if err != nil {
		log.Fatalf("simrun: %v", err)
	}

	player := newSoakPlayer()
	player.advance(0)

	w := sim.NewWorld(sim.DefaultConfig(), heightField{}, player, nil, table, rand.New(rand.NewSource(*seed)))

	var watcher *behavior.Watcher
	if *watchDir != "" {
		watcher, err = behavior.NewWatcher(*watchDir)
		if err != nil {
			log.Fatalf("simrun: watch %s: %v", *watchDir, err)
		}
		defer watcher.Close()
	}

	for _, spawn := range []struct {
		typeName string
		pos      common.Vec3
	}{
		{"husk", common.Vec3{X: 6, Z: 2}},
		{"bone_strider", common.Vec3{X: -8, Z: 5}},
		{"gravewight", common.Vec3{X: 0, Z: -14}},
		{"mire_caller", common.Vec3{X: 15, Z: 15}},
		{"venom_creeper", common.Vec3{X: -4, Z: -6}},
		{"frost_sovereign", common.Vec3{X: 0, Z: 20}},
	} {
		if _, err := w.Spawn(spawn.typeName, spawn.pos); err != nil {
			log.Fatalf("simrun: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(*seed + 1))
	logEvery := int(1.0 / *dt)
	if logEvery < 1 {
		logEvery = 1
	}

	for i := 0; i < *ticks; i++ {
		if watcher != nil {
			select {
			case name := <-watcher.Events:
				if t, err := behavior.LoadTable(); err == nil {
					w.SetTable(t)
					log.Printf("simrun: reloaded %s", name)
				} else {
					log.Printf("simrun: reload: %v", err)
				}
			default:
			}
		}

		player.advance(*dt)

		// poke a random enemy now and then so deaths and knockbacks happen
		if i%97 == 0 && len(w.Enemies()) > 0 {
			e := w.Enemies()[rng.Intn(len(w.Enemies()))]
			dir := cp.Vector{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}
			e.TakeDamage(w, 25, true, dir, false)
		}

		w.Update(*dt)

		if i%logEvery == 0 {
			for _, s := range w.Snapshots() {
				log.Printf("t=%6.2f %-16s hp=%5.1f/%5.1f pos=(%6.2f %5.2f %6.2f) moving=%v attacking=%v dead=%v",
					w.Now(), s.Type, s.Health, s.MaxHealth, s.Position.X, s.Position.Y, s.Position.Z, s.Moving, s.Attacking, s.Dead)
			}
			log.Printf("t=%6.2f projectiles=%d alive=%d player_hp=%.0f player_xp=%d effects=%d",
				w.Now(), w.Projectiles().Count(), w.AliveCount(), player.health, player.xp, len(player.effects))
		}
	}
}
