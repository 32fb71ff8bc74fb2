package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/mancala/game"
	"github.com/minaorangina/mancala/protocol"
	"go.uber.org/zap"
)

// PlayState represents the state of the current game
// idle -> waiting for players
// inProgress -> game in progress
// finished -> someone won or it was a draw
// abandoned -> a player could not be reached
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Finished
	Abandoned
)

var playStateNames = map[PlayState]string{
	Idle:       "idle",
	InProgress: "inProgress",
	Finished:   "finished",
	Abandoned:  "abandoned",
}

func (s PlayState) String() string {
	return playStateNames[s]
}

var (
	ErrNilGame            = errors.New("game is nil")
	ErrGameFull           = errors.New("game already has 2 players")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameNotInProgress  = errors.New("game is not in progress")
	ErrNotCreator         = errors.New("only the game's creator can start it")
	ErrPlayerLeft         = errors.New("player has left the game")
)

const maxPlayers = 2

// Receiver accepts messages from players
type Receiver interface {
	Receive(msg protocol.InboundMessage)
}

// GameEngine represents the engine of the game
type GameEngine interface {
	Receiver
	ID() string
	CreatorID() string
	Start() error
	Players() Players
	AddPlayer(Player) error
	RemovePlayer(Player)
	PlayState() PlayState
	Pits() []int
	Done() <-chan struct{}
}

type gameEngine struct {
	id         string
	creatorID  string
	playState  PlayState
	players    Players
	game       game.Game
	inboundCh  chan protocol.InboundMessage
	done       chan struct{}
	doneOnce   sync.Once
	onGameOver func(gameID string, result game.Result)
	log        *zap.SugaredLogger
	mu         sync.Mutex
}

type GameEngineOpts struct {
	GameID     string
	CreatorID  string
	Players    Players
	Game       game.Game
	InboundCh  chan protocol.InboundMessage
	OnGameOver func(gameID string, result game.Result)
	Logger     *zap.SugaredLogger
}

// NewGameEngine constructs a new GameEngine and starts listening for
// messages from its players
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.Game == nil {
		return nil, ErrNilGame
	}
	if opts.InboundCh == nil {
		opts.InboundCh = make(chan protocol.InboundMessage)
	}
	if opts.Players == nil {
		opts.Players = Players{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	engine := &gameEngine{
		id:         opts.GameID,
		creatorID:  opts.CreatorID,
		players:    opts.Players,
		game:       opts.Game,
		inboundCh:  opts.InboundCh,
		done:       make(chan struct{}),
		onGameOver: opts.OnGameOver,
		log:        opts.Logger.With("gameID", opts.GameID),
	}

	go engine.Listen()

	return engine, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

func (ge *gameEngine) Players() Players {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	ps := make(Players, len(ge.players))
	copy(ps, ge.players)
	return ps
}

func (ge *gameEngine) PlayState() PlayState {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return ge.playState
}

// Pits returns the board as it stands, nil before the game starts
func (ge *gameEngine) Pits() []int {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return ge.game.Pits()
}

// Done is closed once the game is finished or abandoned
func (ge *gameEngine) Done() <-chan struct{} {
	return ge.done
}

// AddPlayer adds a player to a game and tells everyone about it
func (ge *gameEngine) AddPlayer(p Player) error {
	ge.mu.Lock()
	if ge.playState != Idle {
		ge.mu.Unlock()
		return ErrGameAlreadyStarted
	}
	if _, ok := ge.players.Find(p.ID()); ok {
		ge.mu.Unlock()
		return nil
	}
	if len(ge.players) >= maxPlayers {
		ge.mu.Unlock()
		return ErrGameFull
	}
	ge.players = AddPlayer(ge.players, p)
	ps := ge.players
	ge.mu.Unlock()

	ge.log.Infow("player joined", "playerID", p.ID(), "name", p.Name())

	msgs := []protocol.OutboundMessage{}
	for _, recipient := range ps {
		msgs = append(msgs, buildNewJoinerMessage(p, recipient))
	}
	ge.messagePlayers(msgs)

	return nil
}

// RemovePlayer unregisters a player, e.g. when their connection drops.
// A game in progress cannot go on without them and is abandoned.
func (ge *gameEngine) RemovePlayer(p Player) {
	ge.mu.Lock()
	ge.players = ge.players.Remove(p.ID())
	inProgress := ge.playState == InProgress
	ge.mu.Unlock()

	ge.log.Infow("player left", "playerID", p.ID())
	if inProgress {
		ge.abandon(fmt.Errorf("player %s: %w", p.ID(), ErrPlayerLeft))
	}
}

// Start starts a game. Starting a game that is already underway does nothing.
func (ge *gameEngine) Start() error {
	ge.mu.Lock()
	if ge.playState != Idle {
		ge.mu.Unlock()
		return nil
	}

	if err := ge.game.Start(ge.players.Info()); err != nil {
		ge.mu.Unlock()
		return err
	}
	ge.playState = InProgress

	msgs := []protocol.OutboundMessage{}
	for _, p := range ge.players {
		msgs = append(msgs, protocol.OutboundMessage{
			PlayerID: p.ID(),
			Name:     p.Name(),
			Command:  protocol.HasStarted,
			Pits:     ge.game.Pits(),
			Message:  startGameText,
		})
	}

	result, over := ge.game.Result()
	if over {
		ge.playState = Finished
	} else {
		next, err := ge.game.Next()
		if err != nil {
			ge.mu.Unlock()
			return err
		}
		msgs = append(msgs, next...)
	}
	ge.mu.Unlock()

	ge.log.Info("game started")
	ge.messagePlayers(msgs)
	if over {
		ge.finish(result)
	}

	return nil
}

// Receive queues a message from a player
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	select {
	case ge.inboundCh <- msg:
	case <-ge.done:
	}
}

// Listen handles player messages one at a time until the game ends
func (ge *gameEngine) Listen() {
	for {
		select {
		case msg := <-ge.inboundCh:
			ge.handleInbound(msg)
		case <-ge.done:
			return
		}
	}
}

func (ge *gameEngine) handleInbound(msg protocol.InboundMessage) {
	switch msg.Command {
	case protocol.Start:
		if msg.PlayerID != ge.creatorID {
			ge.sendError(msg.PlayerID, ErrNotCreator)
			return
		}
		if err := ge.Start(); err != nil {
			ge.log.Warnw("could not start game", "error", err)
			ge.sendError(msg.PlayerID, err)
		}

	case protocol.Move:
		ge.handleMove(msg)

	default:
		ge.sendError(msg.PlayerID, fmt.Errorf("unexpected command %s", msg.Command))
	}
}

func (ge *gameEngine) handleMove(msg protocol.InboundMessage) {
	ge.mu.Lock()
	if ge.playState != InProgress {
		ge.mu.Unlock()
		ge.sendError(msg.PlayerID, ErrGameNotInProgress)
		return
	}

	msgs, err := ge.game.ReceiveResponse(msg)
	if err != nil {
		ge.mu.Unlock()
		ge.log.Infow("move rejected", "playerID", msg.PlayerID, "cup", msg.Cup, "error", err)
		ge.sendError(msg.PlayerID, err)
		return
	}
	ge.log.Debugw("move", "playerID", msg.PlayerID, "cup", msg.Cup)

	result, over := ge.game.Result()
	if over {
		ge.playState = Finished
	} else if ge.game.AwaitingResponse() == protocol.Null {
		next, err := ge.game.Next()
		if err != nil {
			ge.log.Errorw("could not move game on", "error", err)
		}
		msgs = append(msgs, next...)
	}
	ge.mu.Unlock()

	ge.messagePlayers(msgs)
	if over {
		ge.finish(result)
	}
}

func (ge *gameEngine) finish(result game.Result) {
	ge.log.Infow("game over", "draw", result.Draw, "stores", result.Stores)
	if ge.onGameOver != nil {
		ge.onGameOver(ge.id, result)
	}
	ge.doneOnce.Do(func() { close(ge.done) })
}

func (ge *gameEngine) abandon(reason error) {
	ge.mu.Lock()
	if ge.playState == Finished {
		ge.mu.Unlock()
		return
	}
	ge.playState = Abandoned
	ge.mu.Unlock()

	ge.log.Warnw("game abandoned", "error", reason)
	ge.doneOnce.Do(func() { close(ge.done) })
}

// messagePlayers delivers messages in order. A message that needs an answer
// is delivered in its own goroutine so Listen is free to take the answer.
func (ge *gameEngine) messagePlayers(messages []protocol.OutboundMessage) {
	ps := ge.Players()
	for _, m := range messages {
		p, ok := ps.Find(m.PlayerID)
		if !ok {
			if m.ShouldRespond {
				ge.abandon(fmt.Errorf("player %s: %w", m.PlayerID, ErrPlayerLeft))
			}
			continue
		}
		if m.ShouldRespond {
			go ge.send(p, m)
			continue
		}
		ge.send(p, m)
	}
}

func (ge *gameEngine) send(p Player, m protocol.OutboundMessage) {
	if err := p.Send(m); err != nil {
		ge.log.Warnw("could not message player", "playerID", p.ID(), "command", m.Command, "error", err)
		if m.ShouldRespond {
			ge.abandon(fmt.Errorf("player %s: %w", p.ID(), err))
		}
	}
}

func (ge *gameEngine) sendError(playerID string, err error) {
	p, ok := ge.Players().Find(playerID)
	if !ok {
		return
	}
	ge.send(p, protocol.OutboundMessage{
		PlayerID: p.ID(),
		Name:     p.Name(),
		Command:  protocol.Error,
		Message:  err.Error(),
		Error:    err.Error(),
	})
}

func buildNewJoinerMessage(joiner, recipient Player) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID: recipient.ID(),
		Name:     recipient.Name(),
		Message:  fmt.Sprintf("%s has joined the game!", joiner.Name()),
		Command:  protocol.NewJoiner,
		Joiner:   joiner.Info(),
	}
}
