package engine

import (
	"sync"

	"github.com/minaorangina/mancala/game"
	"github.com/minaorangina/mancala/protocol"
)

// SpyGame is a game that records how the engine drives it
type SpyGame struct {
	startCalled bool
	startInfo   []protocol.PlayerInfo
	responses   []protocol.InboundMessage
	mu          sync.Mutex
}

func NewSpyGame() *SpyGame {
	return &SpyGame{}
}

func (g *SpyGame) AwaitingResponse() protocol.Cmd {
	return protocol.Null
}

func (g *SpyGame) Start(info []protocol.PlayerInfo) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startCalled = true
	g.startInfo = info
	return nil
}

func (g *SpyGame) StartCalled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startCalled
}

func (g *SpyGame) Next() ([]protocol.OutboundMessage, error) {
	return nil, nil
}

func (g *SpyGame) ReceiveResponse(msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses = append(g.responses, msg)
	return nil, nil
}

func (g *SpyGame) Responses() []protocol.InboundMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]protocol.InboundMessage, len(g.responses))
	copy(out, g.responses)
	return out
}

func (g *SpyGame) GameOver() bool {
	return false
}

func (g *SpyGame) Result() (game.Result, bool) {
	return game.Result{}, false
}

func (g *SpyGame) Pits() []int {
	return nil
}

// SpyReceiver collects the messages a player hands to its engine
type SpyReceiver struct {
	ch chan protocol.InboundMessage
}

func NewSpyReceiver() *SpyReceiver {
	return &SpyReceiver{ch: make(chan protocol.InboundMessage, 8)}
}

func (r *SpyReceiver) Receive(msg protocol.InboundMessage) {
	r.ch <- msg
}

func playersToNames(players Players) []string {
	names := []string{}
	for _, p := range players {
		names = append(names, p.Name())
	}

	return names
}

func mancalaFrom(pits []int) game.Game {
	return game.NewMancala(game.Opts{Pits: pits})
}
