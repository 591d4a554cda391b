package network

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/seivard/grimhollow/common"
)

const sendTimeout = 2 * time.Second

// PeerConn wraps a websocket connection with the small surface the hub needs.
type PeerConn struct {
	conn *websocket.Conn
}

func NewPeerConn(conn *websocket.Conn) *PeerConn {
	return &PeerConn{conn: conn}
}

func (c *PeerConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *PeerConn) Write(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *PeerConn) Close(code int32, reason string) error {
	return c.conn.Close(websocket.StatusCode(code), reason)
}

type hubPeer struct {
	conn *PeerConn
	pos  common.Vec3
}

// Hub implements Transport over a set of websocket peers. The surrounding
// game owns the accept loop and session handshake; it registers peers here
// and feeds their last-known player positions from its own state messages.
type Hub struct {
	mu    sync.Mutex
	host  bool
	peers map[PeerID]*hubPeer
}

func NewHub(host bool) *Hub {
	return &Hub{host: host, peers: make(map[PeerID]*hubPeer)}
}

func (h *Hub) AddPeer(id PeerID, conn *PeerConn) {
	if h == nil || conn == nil {
		return
	}
	h.mu.Lock()
	h.peers[id] = &hubPeer{conn: conn}
	h.mu.Unlock()
}

func (h *Hub) RemovePeer(id PeerID) {
	if h == nil {
		return
	}
	h.mu.Lock()
	delete(h.peers, id)
	h.mu.Unlock()
}

// UpdatePeerPosition records the latest player position reported by a peer.
func (h *Hub) UpdatePeerPosition(id PeerID, pos common.Vec3) {
	if h == nil {
		return
	}
	h.mu.Lock()
	if p, ok := h.peers[id]; ok {
		p.pos = pos
	}
	h.mu.Unlock()
}

func (h *Hub) Active() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers) > 0
}

func (h *Hub) Host() bool {
	return h != nil && h.host
}

func (h *Hub) SendToPeer(peer PeerID, msg Message) error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	p, ok := h.peers[peer]
	h.mu.Unlock()
	if !ok {
		return nil
	}
	h.send(p.conn, msg)
	return nil
}

func (h *Hub) Broadcast(msg Message) {
	if h == nil {
		return
	}
	h.mu.Lock()
	conns := make([]*PeerConn, 0, len(h.peers))
	for _, p := range h.peers {
		conns = append(conns, p.conn)
	}
	h.mu.Unlock()
	for _, c := range conns {
		h.send(c, msg)
	}
}

// send writes without blocking the simulation tick. A failed write is logged
// and dropped; the session layer notices dead peers through its own reads.
func (h *Hub) send(conn *PeerConn, msg Message) {
	if conn == nil {
		return
	}
	data, err := msg.Encode()
	if err != nil {
		log.Printf("network: %v", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := conn.Write(ctx, data); err != nil {
			log.Printf("network: write %s: %v", msg.Type, err)
		}
	}()
}

// Roster snapshots the connected peers as remote-player views.
func (h *Hub) Roster() map[PeerID]RemotePlayer {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.peers) == 0 {
		return nil
	}
	out := make(map[PeerID]RemotePlayer, len(h.peers))
	for id, p := range h.peers {
		out[id] = remoteView{pos: p.pos}
	}
	return out
}

type remoteView struct {
	pos common.Vec3
}

func (r remoteView) Position() common.Vec3 { return r.pos }
