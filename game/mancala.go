package game

import (
	"errors"
	"fmt"

	"github.com/minaorangina/mancala/board"
	"github.com/minaorangina/mancala/protocol"
)

var (
	ErrNilGame                = errors.New("game is nil")
	ErrTooFewPlayers          = errors.New("exactly 2 players required, got too few")
	ErrTooManyPlayers         = errors.New("exactly 2 players required, got too many")
	ErrNoPlayers              = errors.New("game has no players")
	ErrGameUnexpectedResponse = errors.New("game received unexpected response")
	ErrGameAwaitingResponse   = errors.New("game is awaiting a response")
	ErrNotYourTurn            = errors.New("not your turn")
	ErrNotYourCup             = errors.New("cup belongs to the other player")
	ErrGameOver               = errors.New("game is already over")
	ErrInvalidFirstPlayer     = errors.New("first player must be side A or side B")
)

const numPlayers = 2

// Game is a turn-based game driven by messages
type Game interface {
	Start(playerInfo []protocol.PlayerInfo) error
	Next() ([]protocol.OutboundMessage, error)
	ReceiveResponse(msg protocol.InboundMessage) ([]protocol.OutboundMessage, error)
	AwaitingResponse() protocol.Cmd
	GameOver() bool
	Result() (Result, bool)
	Pits() []int
}

// Move is one sowing move as it was played
type Move struct {
	PlayerID string       `json:"playerID"`
	Cup      int          `json:"cup"`
	End      int          `json:"end"`
	Result   board.Result `json:"-"`
	Outcome  string       `json:"outcome"`
}

// Result describes a finished game
type Result struct {
	Players []protocol.PlayerInfo `json:"players"`
	Winner  *protocol.PlayerInfo  `json:"winner,omitempty"`
	Draw    bool                  `json:"draw"`
	Stores  [numPlayers]int       `json:"stores"`
	Pits    []int                 `json:"pits"`
	Moves   []Move                `json:"moves"`
}

// Opts configures a game of mancala
type Opts struct {
	// Pits resumes a game from explicit counts instead of the starting board
	Pits []int
	// FirstPlayer is the side that moves first; the first player in
	// Start's list always plays side A.
	FirstPlayer board.Player
	// StrictOwnership rejects moves starting from the opponent's pits.
	// The board itself never checks ownership.
	StrictOwnership bool
}

type mancala struct {
	Board            *board.Board
	PlayerInfo       []protocol.PlayerInfo
	CurrentPlayer    board.Player
	ExpectedCommand  protocol.Cmd
	awaitingResponse bool
	gamePlay         GamePlayState
	moves            []Move
	opts             Opts
}

// NewMancala constructs a game of mancala that is yet to start
func NewMancala(opts Opts) *mancala {
	return &mancala{
		CurrentPlayer: opts.FirstPlayer,
		moves:         []Move{},
		opts:          opts,
	}
}

// Start seats the players; the first one plays side A
func (m *mancala) Start(playerInfo []protocol.PlayerInfo) error {
	if m == nil {
		return ErrNilGame
	}
	if len(playerInfo) < numPlayers {
		return ErrTooFewPlayers
	}
	if len(playerInfo) > numPlayers {
		return ErrTooManyPlayers
	}
	if m.opts.FirstPlayer != board.PlayerA && m.opts.FirstPlayer != board.PlayerB {
		return fmt.Errorf("%w, got %d", ErrInvalidFirstPlayer, m.opts.FirstPlayer)
	}

	nameA, nameB := playerInfo[0].Name, playerInfo[1].Name
	if m.opts.Pits != nil {
		b, err := board.FromPits(m.opts.Pits, nameA, nameB)
		if err != nil {
			return fmt.Errorf("could not resume game: %w", err)
		}
		m.Board = b
	} else {
		m.Board = board.New(nameA, nameB)
	}

	m.PlayerInfo = playerInfo
	m.gamePlay = gameStarted

	if m.Board.IsGameOver() {
		m.gamePlay = gameOver
	}

	return nil
}

// Next asks the current player for a move
func (m *mancala) Next() ([]protocol.OutboundMessage, error) {
	if m == nil {
		return nil, ErrNilGame
	}
	if m.gamePlay == gameNotStarted {
		return nil, ErrNoPlayers
	}
	if m.gamePlay == gameOver {
		return nil, ErrGameOver
	}
	if m.awaitingResponse {
		return nil, ErrGameAwaitingResponse
	}

	current := m.info(m.CurrentPlayer)
	msgs := m.buildMessages(protocol.Turn, func(recipient protocol.PlayerInfo) protocol.OutboundMessage {
		msg := protocol.OutboundMessage{
			CurrentTurn: current,
			Message:     fmt.Sprintf("It's %s's turn", current.Name),
		}
		if recipient.PlayerID == current.PlayerID {
			msg.ShouldRespond = true
			msg.Message = fmt.Sprintf("%s, choose a starting cup", current.Name)
		}
		return msg
	})

	m.awaitingResponse = true
	m.ExpectedCommand = protocol.Move

	return msgs, nil
}

// ReceiveResponse plays the current player's chosen cup.
// An illegal cup is reported back to the mover, who is asked again.
func (m *mancala) ReceiveResponse(msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
	if m == nil {
		return nil, ErrNilGame
	}
	if m.gamePlay == gameOver {
		return nil, ErrGameOver
	}
	if !m.awaitingResponse || msg.Command != m.ExpectedCommand {
		return nil, ErrGameUnexpectedResponse
	}

	mover := m.info(m.CurrentPlayer)
	if msg.PlayerID != mover.PlayerID {
		return nil, ErrNotYourTurn
	}

	if err := m.checkMove(msg.Cup); err != nil {
		return []protocol.OutboundMessage{m.buildRetryMessage(mover, msg.Cup, err)}, nil
	}

	end := m.Board.Sow(msg.Cup, m.CurrentPlayer)
	res := m.Board.Resolve(end)
	m.awaitingResponse = false
	m.ExpectedCommand = protocol.Null

	m.moves = append(m.moves, Move{
		PlayerID: mover.PlayerID,
		Cup:      msg.Cup,
		End:      end,
		Result:   res,
		Outcome:  res.String(),
	})

	if m.Board.IsGameOver() {
		m.gamePlay = gameOver
		return m.buildGameOverMessages(mover), nil
	}

	if res.Kind == board.AwaitMove {
		return m.buildMessages(protocol.Prompt, func(protocol.PlayerInfo) protocol.OutboundMessage {
			return protocol.OutboundMessage{
				CurrentTurn: mover,
				NextTurn:    mover,
				Message:     fmt.Sprintf("%s landed in their store and goes again", mover.Name),
			}
		}), nil
	}

	// Switch and Continue both hand the turn over
	m.CurrentPlayer = m.CurrentPlayer.Other()
	next := m.info(m.CurrentPlayer)

	return m.buildMessages(protocol.Switch, func(protocol.PlayerInfo) protocol.OutboundMessage {
		return protocol.OutboundMessage{
			CurrentTurn: mover,
			NextTurn:    next,
			Message:     fmt.Sprintf("%s played cup %d. Over to %s", mover.Name, msg.Cup, next.Name),
		}
	}), nil
}

// AwaitingResponse returns the command the game is waiting for, if any
func (m *mancala) AwaitingResponse() protocol.Cmd {
	if m == nil || !m.awaitingResponse {
		return protocol.Null
	}
	return m.ExpectedCommand
}

func (m *mancala) GameOver() bool {
	return m != nil && m.gamePlay == gameOver
}

// Result returns the final state once the game is over
func (m *mancala) Result() (Result, bool) {
	if !m.GameOver() {
		return Result{}, false
	}

	res := Result{
		Players: m.PlayerInfo,
		Stores:  [numPlayers]int{m.Board.Store(board.PlayerA), m.Board.Store(board.PlayerB)},
		Pits:    m.Board.Pits(),
		Moves:   m.Moves(),
	}
	if p, ok := m.Board.Winner().Winner(); ok {
		winner := m.info(p)
		res.Winner = &winner
	} else {
		res.Draw = true
	}

	return res, true
}

// Pits returns the current board, or nil before the game starts
func (m *mancala) Pits() []int {
	if m == nil || m.Board == nil {
		return nil
	}
	return m.Board.Pits()
}

// Moves returns every move played so far
func (m *mancala) Moves() []Move {
	moves := make([]Move, len(m.moves))
	copy(moves, m.moves)
	return moves
}

func (m *mancala) info(p board.Player) protocol.PlayerInfo {
	return m.PlayerInfo[p]
}

func (m *mancala) checkMove(cup int) error {
	if err := m.Board.Validate(cup); err != nil {
		return err
	}
	if m.opts.StrictOwnership && !board.SideOf(m.CurrentPlayer).Contains(cup) {
		return ErrNotYourCup
	}
	return nil
}
