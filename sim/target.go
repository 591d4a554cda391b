package sim

import (
	"log"
	"math"

	"github.com/seivard/grimhollow/common"
	"github.com/seivard/grimhollow/network"
)

type targetKind int

const (
	targetNone targetKind = iota
	targetLocal
	targetRemote
)

// Target is the tagged union of things an enemy can aim at: the local player
// or a remote player owned by another peer. Damage routing lives in
// ApplyDamage so the local/remote split is decided in exactly one place.
type Target struct {
	kind   targetKind
	local  Player
	peer   network.PeerID
	remote network.RemotePlayer
}

// LocalTarget wraps the local player.
func LocalTarget(p Player) Target {
	if p == nil {
		return Target{}
	}
	return Target{kind: targetLocal, local: p}
}

// RemoteTarget wraps a remote player owned by peer.
func RemoteTarget(peer network.PeerID, rp network.RemotePlayer) Target {
	if rp == nil {
		return Target{}
	}
	return Target{kind: targetRemote, peer: peer, remote: rp}
}

// Valid reports whether the target points at anything.
func (t Target) Valid() bool { return t.kind != targetNone }

// Remote reports whether the target is another peer's player.
func (t Target) Remote() bool { return t.kind == targetRemote }

// Player returns the local player handle when the target is local.
func (t Target) Player() (Player, bool) {
	if t.kind == targetLocal {
		return t.local, true
	}
	return nil, false
}

// Position returns the target's live position.
func (t Target) Position() common.Vec3 {
	switch t.kind {
	case targetLocal:
		return t.local.Position()
	case targetRemote:
		return t.remote.Position()
	default:
		return common.Vec3{}
	}
}

// ApplyDamage delivers already defense-reduced damage. Local targets take it
// directly. Remote targets never mutate local state: the host forwards the
// hit to the owning peer, and non-hosts drop it. Only the host is
// authoritative for player health.
func (t Target) ApplyDamage(w *World, amount int, enemyID int) {
	switch t.kind {
	case targetLocal:
		t.local.TakeDamage(float64(amount))
	case targetRemote:
		if w == nil || w.transport == nil || !w.transport.Host() {
			return
		}
		if err := w.transport.SendToPeer(t.peer, network.PlayerDamage(amount, enemyID)); err != nil {
			log.Printf("target: forward damage to %s: %v", t.peer, err)
		}
	}
}

// ResolveTarget picks the closest damageable actor to pos in the ground
// plane. The local player is evaluated first, so it wins distance ties.
// Resolution is per tick and never cached: remote players move and
// disconnect between ticks.
func (w *World) ResolveTarget(pos common.Vec3) Target {
	best := Target{}
	bestDistSq := math.MaxFloat64

	if w == nil {
		return best
	}
	if w.local != nil {
		best = LocalTarget(w.local)
		bestDistSq = common.HorizontalDistSq(pos, w.local.Position())
	}
	if w.transport != nil && w.transport.Active() {
		for id, rp := range w.transport.Roster() {
			if rp == nil {
				continue
			}
			if dSq := common.HorizontalDistSq(pos, rp.Position()); dSq < bestDistSq {
				best = RemoteTarget(id, rp)
				bestDistSq = dSq
			}
		}
	}
	return best
}
