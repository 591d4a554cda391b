package sim

import (
	"math/rand"

	"github.com/seivard/grimhollow/behavior"
	"github.com/seivard/grimhollow/common"
	"github.com/seivard/grimhollow/network"
)

// flatTerrain answers every query with a fixed height.
type flatTerrain struct {
	height float64
}

func (t flatTerrain) HeightAt(x, z float64) (float64, bool) { return t.height, true }

// countingTerrain records how many queries reach the sampler.
type countingTerrain struct {
	height float64
	calls  int
}

func (t *countingTerrain) HeightAt(x, z float64) (float64, bool) {
	t.calls++
	return t.height, true
}

// unknownTerrain never has an answer.
type unknownTerrain struct{}

func (unknownTerrain) HeightAt(x, z float64) (float64, bool) { return 0, false }

type testPlayer struct {
	pos     common.Vec3
	damage  []float64
	effects map[EffectKind]bool
	xp      int
}

func newTestPlayer(pos common.Vec3) *testPlayer {
	return &testPlayer{pos: pos, effects: make(map[EffectKind]bool)}
}

func (p *testPlayer) Position() common.Vec3 { return p.pos }

func (p *testPlayer) TakeDamage(amount float64) { p.damage = append(p.damage, amount) }

func (p *testPlayer) ApplyEffect(kind EffectKind, seconds float64) { p.effects[kind] = true }
func (p *testPlayer) HasEffect(kind EffectKind) bool              { return p.effects[kind] }
func (p *testPlayer) RemoveEffect(kind EffectKind)                { delete(p.effects, kind) }
func (p *testPlayer) AddExperience(amount int)                    { p.xp += amount }

type fakeRemote struct {
	pos common.Vec3
}

func (r *fakeRemote) Position() common.Vec3 { return r.pos }

type sentMessage struct {
	peer network.PeerID
	msg  network.Message
}

type fakeTransport struct {
	active bool
	host   bool
	roster map[network.PeerID]network.RemotePlayer

	sent       []sentMessage
	broadcasts []network.Message
}

func (t *fakeTransport) Active() bool { return t.active }
func (t *fakeTransport) Host() bool   { return t.host }

func (t *fakeTransport) SendToPeer(peer network.PeerID, msg network.Message) error {
	t.sent = append(t.sent, sentMessage{peer: peer, msg: msg})
	return nil
}

func (t *fakeTransport) Broadcast(msg network.Message) {
	t.broadcasts = append(t.broadcasts, msg)
}

func (t *fakeTransport) Roster() map[network.PeerID]network.RemotePlayer { return t.roster }

func newTestWorld(terrain HeightSampler, local Player, transport network.Transport) *World {
	return NewWorld(DefaultConfig(), terrain, local, transport, nil, rand.New(rand.NewSource(7)))
}

func meleeSpec() behavior.TypeSpec {
	return behavior.TypeSpec{
		Name:              "husk",
		Health:            40,
		Damage:            10,
		AttackRange:       1.5,
		AttackSpeed:       1.5,
		DetectionRange:    14,
		Speed:             2.2,
		Experience:        15,
		Behavior:          "melee",
		AggressionTimeout: 5,
	}
}

func rangedSpec() behavior.TypeSpec {
	return behavior.TypeSpec{
		Name:              "mire_caller",
		Health:            50,
		Damage:            12,
		AttackRange:       11,
		AttackSpeed:       1,
		DetectionRange:    20,
		Speed:             2,
		Experience:        40,
		Behavior:          "ranged",
		ProjectileType:    "mirebolt",
		ProjectileFlight:  "direct",
		AggressionTimeout: 6,
	}
}

func bossSpec() behavior.TypeSpec {
	return behavior.TypeSpec{
		Name:              "frost_sovereign",
		Boss:              true,
		Health:            600,
		Damage:            30,
		AttackRange:       3,
		AttackSpeed:       0.7,
		DetectionRange:    30,
		Speed:             1.6,
		HeightOffset:      0.4,
		Experience:        400,
		Behavior:          "melee",
		PersistentAggression: true,
	}
}
