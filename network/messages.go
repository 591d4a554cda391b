package network

import (
	"encoding/json"
	"fmt"
)

// MessageType discriminates simulation messages on the wire.
type MessageType string

const (
	// MessagePlayerDamage is unicast by the host to the peer whose player an
	// enemy hit.
	MessagePlayerDamage MessageType = "playerDamage"
	// MessageShareExperience is broadcast by the host when an enemy dies in a
	// multiplayer session.
	MessageShareExperience MessageType = "shareExperience"
)

// Message is the wire payload for host-authoritative combat routing. Amount
// is the already defense-reduced damage or the per-player experience share.
type Message struct {
	Type        MessageType `json:"type"`
	Amount      int         `json:"amount"`
	EnemyID     int         `json:"enemyId"`
	PlayerCount int         `json:"playerCount,omitempty"`
}

// PlayerDamage builds a damage-forwarding message.
func PlayerDamage(amount, enemyID int) Message {
	return Message{Type: MessagePlayerDamage, Amount: amount, EnemyID: enemyID}
}

// ShareExperience builds an experience-split broadcast.
func ShareExperience(amount, enemyID, playerCount int) Message {
	return Message{Type: MessageShareExperience, Amount: amount, EnemyID: enemyID, PlayerCount: playerCount}
}

// Encode serializes the message for the transport.
func (m Message) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("network: encode %s: %w", m.Type, err)
	}
	return data, nil
}

// DecodeMessage parses a wire payload.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("network: decode: %w", err)
	}
	if m.Type == "" {
		return Message{}, fmt.Errorf("network: decode: missing type")
	}
	return m, nil
}
