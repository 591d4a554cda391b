package network

import (
	"github.com/google/uuid"

	"github.com/seivard/grimhollow/common"
)

// PeerID identifies a connected peer.
type PeerID = uuid.UUID

// NewPeerID mints a fresh peer identifier.
func NewPeerID() PeerID { return uuid.New() }

// RemotePlayer is the read-only view of another peer's player that the
// simulation core steers toward and shoots at. Health lives on the owning
// peer; damage reaches it through the transport, never through this handle.
type RemotePlayer interface {
	Position() common.Vec3
}

// Transport is the multiplayer session as seen by the simulation core. Sends
// are fire-and-forget: the core never blocks on delivery and never retries.
type Transport interface {
	// Active reports whether a multiplayer session is running.
	Active() bool
	// Host reports whether this instance owns enemy state and may mutate
	// remote players.
	Host() bool
	// SendToPeer delivers a message to a single peer. Errors are advisory;
	// callers log and move on.
	SendToPeer(peer PeerID, msg Message) error
	// Broadcast delivers a message to every peer.
	Broadcast(msg Message)
	// Roster returns the connected remote players keyed by peer.
	Roster() map[PeerID]RemotePlayer
}

// NopTransport is the single-player transport: never active, never host.
type NopTransport struct{}

func (NopTransport) Active() bool                     { return false }
func (NopTransport) Host() bool                       { return false }
func (NopTransport) SendToPeer(PeerID, Message) error { return nil }
func (NopTransport) Broadcast(Message)                {}
func (NopTransport) Roster() map[PeerID]RemotePlayer  { return nil }
