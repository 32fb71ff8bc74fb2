package engine

import (
	"github.com/minaorangina/mancala/protocol"
	uuid "github.com/satori/go.uuid"
)

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Player represents a player in the game
type Player interface {
	ID() string
	Name() string
	Info() protocol.PlayerInfo
	Send(msg protocol.OutboundMessage) error
}

// Players represents all players in the game
type Players []Player

// NewPlayers returns a set of Players
func NewPlayers(p ...Player) Players {
	return Players(p)
}

// AddPlayer adds a player to a set of Players
func AddPlayer(ps Players, p Player) Players {
	if _, ok := ps.Find(p.ID()); !ok {
		return Players(append(ps, p))
	}
	return ps
}

// Find finds a player by id
func (ps Players) Find(id string) (Player, bool) {
	for _, p := range ps {
		if got := p.ID(); got == id {
			return p, true
		}
	}
	return nil, false
}

// Remove returns the players without the one with the given id
func (ps Players) Remove(id string) Players {
	kept := Players{}
	for _, p := range ps {
		if p.ID() != id {
			kept = append(kept, p)
		}
	}
	return kept
}

// Info lists every player's id and name, in seating order
func (ps Players) Info() []protocol.PlayerInfo {
	info := []protocol.PlayerInfo{}
	for _, p := range ps {
		info = append(info, p.Info())
	}
	return info
}
