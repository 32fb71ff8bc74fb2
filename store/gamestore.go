package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/mancala/engine"
	"github.com/minaorangina/mancala/protocol"
)

const maxPendingPlayers = 2

var (
	ErrUnknownGameID           = errors.New("unknown game ID")
	ErrUnknownPlayerID         = errors.New("unknown player ID")
	ErrFnUnknownInactiveGameID = func(gameID string) error {
		return fmt.Errorf("pending game with id \"%s\" does not exist: %w", gameID, ErrUnknownGameID)
	}
	ErrGameAlreadyStarted = engine.ErrGameAlreadyStarted
	ErrGameFull           = engine.ErrGameFull
	ErrDuplicateGameID    = errors.New("game ID already in use")
)

type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	FindActiveGame(gameID string) engine.GameEngine
	FindInactiveGame(gameID string) engine.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
	AddInactiveGame(engine engine.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player engine.Player) error
	RemoveGame(gameID string)
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	Games          map[string]engine.GameEngine
	PendingPlayers map[string][]protocol.PlayerInfo
	mu             sync.RWMutex
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Games:          map[string]engine.GameEngine{},
		PendingPlayers: map[string][]protocol.PlayerInfo{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.Games[ID]
	if !ok {
		return nil
	}

	return game
}

// FindActiveGame finds a game that has been started
func (s *InMemoryGameStore) FindActiveGame(ID string) engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() == engine.Idle {
		return nil
	}
	return game
}

// FindInactiveGame finds a game that is still waiting for players
func (s *InMemoryGameStore) FindInactiveGame(ID string) engine.GameEngine {
	game := s.FindGame(ID)
	if game == nil || game.PlayState() != engine.Idle {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, info := range s.PendingPlayers[gameID] {
		if info.PlayerID == playerID {
			found := info
			return &found
		}
	}

	return nil
}

func (s *InMemoryGameStore) AddInactiveGame(game engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}

	s.Games[game.ID()] = game
	return nil
}

// AddPendingPlayer adds the information from which to construct a Player in the future.
// If the target Game does not exist, it will fail.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	game := s.FindGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}
	if game.PlayState() != engine.Idle {
		return ErrGameAlreadyStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.PendingPlayers[gameID]) >= maxPendingPlayers {
		return ErrGameFull
	}
	s.PendingPlayers[gameID] = append(s.PendingPlayers[gameID], protocol.PlayerInfo{PlayerID: playerID, Name: name})

	return nil
}

// AddPlayerToGame seats a player who has already joined as pending
func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player engine.Player) error {
	game := s.FindInactiveGame(gameID)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}
	if s.FindPendingPlayer(gameID, player.ID()) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayerID, player.ID())
	}

	return game.AddPlayer(player)
}

// RemoveGame forgets a game and its pending players
func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Games, gameID)
	delete(s.PendingPlayers, gameID)
}
