package engine

import (
	"bytes"
	"sync"

	"github.com/minaorangina/mancala/protocol"
)

// TestPlayer records every message it is sent
type TestPlayer struct {
	id       string
	name     string
	mu       sync.Mutex
	received []protocol.OutboundMessage
	sendErr  error
}

func NewTestPlayer(id, name string) *TestPlayer {
	return &TestPlayer{id: id, name: name}
}

func (tp *TestPlayer) ID() string {
	return tp.id
}

func (tp *TestPlayer) Name() string {
	return tp.name
}

func (tp *TestPlayer) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{PlayerID: tp.id, Name: tp.name}
}

func (tp *TestPlayer) Send(msg protocol.OutboundMessage) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if tp.sendErr != nil {
		return tp.sendErr
	}
	tp.received = append(tp.received, msg)
	return nil
}

// FailSends makes every later Send return err
func (tp *TestPlayer) FailSends(err error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.sendErr = err
}

// Received returns a copy of the messages sent so far
func (tp *TestPlayer) Received() []protocol.OutboundMessage {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	msgs := make([]protocol.OutboundMessage, len(tp.received))
	copy(msgs, tp.received)
	return msgs
}

// ReceivedCommands lists the commands of the messages sent so far
func (tp *TestPlayer) ReceivedCommands() []protocol.Cmd {
	cmds := []protocol.Cmd{}
	for _, m := range tp.Received() {
		cmds = append(cmds, m.Command)
	}
	return cmds
}

func APlayer(id, name string) *TestPlayer {
	return NewTestPlayer(id, name)
}

func SomePlayers() Players {
	player1 := NewTestPlayer(NewID(), "Harry")
	player2 := NewTestPlayer(NewID(), "Sally")
	return NewPlayers(player1, player2)
}

// TestBuffer is used in tests for io
type TestBuffer struct {
	buf bytes.Buffer
	m   sync.Mutex
}

func NewTestBuffer() *TestBuffer {
	return &TestBuffer{}
}

func (tb *TestBuffer) Read(p []byte) (int, error) {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.Read(p)
}

func (tb *TestBuffer) Write(p []byte) (int, error) {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.Write(p)
}

func (tb *TestBuffer) String() string {
	tb.m.Lock()
	defer tb.m.Unlock()
	return tb.buf.String()
}
