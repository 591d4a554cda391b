package sim

import (
	"testing"

	"github.com/seivard/grimhollow/common"
	"github.com/seivard/grimhollow/network"
)

func TestResolveTargetPicksNearest(t *testing.T) {
	player := newTestPlayer(common.Vec3{X: 5, Y: 1})
	tr := &fakeTransport{
		active: true,
		roster: map[network.PeerID]network.RemotePlayer{
			network.NewPeerID(): &fakeRemote{pos: common.Vec3{X: 2}},
		},
	}
	w := newTestWorld(flatTerrain{}, player, tr)

	got := w.ResolveTarget(common.Vec3{})
	if !got.Valid() {
		t.Fatal("no target resolved")
	}
	if !got.Remote() {
		t.Error("closer remote player should win over the local player")
	}
}

func TestResolveTargetLocalWinsTies(t *testing.T) {
	player := newTestPlayer(common.Vec3{X: 3, Y: 1})
	tr := &fakeTransport{
		active: true,
		roster: map[network.PeerID]network.RemotePlayer{
			network.NewPeerID(): &fakeRemote{pos: common.Vec3{Z: 3}},
		},
	}
	w := newTestWorld(flatTerrain{}, player, tr)

	got := w.ResolveTarget(common.Vec3{})
	if got.Remote() {
		t.Error("local player should win an exact distance tie")
	}
	if p, ok := got.Player(); !ok || p != player {
		t.Error("resolved target is not the local player")
	}
}

func TestResolveTargetIgnoresInactiveSession(t *testing.T) {
	player := newTestPlayer(common.Vec3{X: 9, Y: 1})
	tr := &fakeTransport{
		active: false,
		roster: map[network.PeerID]network.RemotePlayer{
			network.NewPeerID(): &fakeRemote{pos: common.Vec3{X: 1}},
		},
	}
	w := newTestWorld(flatTerrain{}, player, tr)

	got := w.ResolveTarget(common.Vec3{})
	if got.Remote() {
		t.Error("inactive session roster must not be targeted")
	}
}

func TestResolveTargetEmptyWorld(t *testing.T) {
	w := newTestWorld(flatTerrain{}, nil, nil)
	if got := w.ResolveTarget(common.Vec3{}); got.Valid() {
		t.Errorf("resolved a target in an empty world: %+v", got)
	}
}

func TestLocalDamageHitsDirectly(t *testing.T) {
	player := newTestPlayer(common.Vec3{})
	w := newTestWorld(flatTerrain{}, player, nil)

	LocalTarget(player).ApplyDamage(w, 7, 1)
	if len(player.damage) != 1 || player.damage[0] != 7 {
		t.Errorf("local damage calls = %v, want [7]", player.damage)
	}
}

func TestRemoteDamageForwardedByHost(t *testing.T) {
	player := newTestPlayer(common.Vec3{})
	peer := network.NewPeerID()
	remote := &fakeRemote{pos: common.Vec3{X: 4}}
	tr := &fakeTransport{
		active: true,
		host:   true,
		roster: map[network.PeerID]network.RemotePlayer{peer: remote},
	}
	w := newTestWorld(flatTerrain{}, player, tr)

	RemoteTarget(peer, remote).ApplyDamage(w, 9, 3)

	if len(tr.sent) != 1 {
		t.Fatalf("messages sent = %d, want 1", len(tr.sent))
	}
	if tr.sent[0].peer != peer {
		t.Errorf("message sent to %s, want %s", tr.sent[0].peer, peer)
	}
	msg := tr.sent[0].msg
	if msg.Type != network.MessagePlayerDamage || msg.Amount != 9 || msg.EnemyID != 3 {
		t.Errorf("message = %+v, want playerDamage amount 9 enemy 3", msg)
	}
	if len(player.damage) != 0 {
		t.Error("remote damage mutated the local player")
	}
}

func TestRemoteDamageDroppedByNonHost(t *testing.T) {
	peer := network.NewPeerID()
	remote := &fakeRemote{pos: common.Vec3{X: 4}}
	tr := &fakeTransport{
		active: true,
		host:   false,
		roster: map[network.PeerID]network.RemotePlayer{peer: remote},
	}
	w := newTestWorld(flatTerrain{}, newTestPlayer(common.Vec3{}), tr)

	RemoteTarget(peer, remote).ApplyDamage(w, 9, 3)
	if len(tr.sent) != 0 {
		t.Errorf("non-host forwarded damage: %+v", tr.sent)
	}
}

func TestTargetPositionIsLive(t *testing.T) {
	player := newTestPlayer(common.Vec3{X: 1})
	target := LocalTarget(player)

	player.pos = common.Vec3{X: 8}
	if got := target.Position(); got.X != 8 {
		t.Errorf("target position = %v, want live position 8", got.X)
	}
}
