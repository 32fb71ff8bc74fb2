package game

import (
	"errors"
	"fmt"

	"github.com/minaorangina/mancala/board"
	"github.com/minaorangina/mancala/protocol"
)

// buildMessages builds one message per player, filling in the fields every
// message shares
func (m *mancala) buildMessages(
	cmd protocol.Cmd,
	build func(recipient protocol.PlayerInfo) protocol.OutboundMessage,
) []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{}
	for _, info := range m.PlayerInfo {
		msg := build(info)
		msg.PlayerID = info.PlayerID
		msg.Name = info.Name
		msg.Command = cmd
		msg.Pits = m.Board.Pits()
		msgs = append(msgs, msg)
	}
	return msgs
}

func (m *mancala) buildRetryMessage(mover protocol.PlayerInfo, cup int, err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		PlayerID:      mover.PlayerID,
		Name:          mover.Name,
		Command:       protocol.Error,
		CurrentTurn:   mover,
		Pits:          m.Board.Pits(),
		ShouldRespond: true,
		Message:       retryText(cup, err),
		Error:         err.Error(),
	}
}

func retryText(cup int, err error) string {
	switch {
	case errors.Is(err, board.ErrInvalidCup):
		return fmt.Sprintf("Cup %d is not a starting cup. Choose a cup from 0 to 12, but not 6", cup)
	case errors.Is(err, board.ErrEmptyCup):
		return fmt.Sprintf("Cup %d is empty. Choose another cup", cup)
	case errors.Is(err, ErrNotYourCup):
		return fmt.Sprintf("Cup %d is on your opponent's side. Choose one of your own", cup)
	}
	return err.Error()
}

func (m *mancala) buildGameOverMessages(lastMover protocol.PlayerInfo) []protocol.OutboundMessage {
	var winner *protocol.PlayerInfo
	text := fmt.Sprintf("It's a draw, %d all", m.Board.Store(board.PlayerA))

	if p, ok := m.Board.Winner().Winner(); ok {
		info := m.info(p)
		winner = &info
		text = fmt.Sprintf("%s wins %d to %d", info.Name, m.Board.Store(p), m.Board.Store(p.Other()))
	}

	return m.buildMessages(protocol.GameOver, func(protocol.PlayerInfo) protocol.OutboundMessage {
		return protocol.OutboundMessage{
			CurrentTurn: lastMover,
			Winner:      winner,
			Message:     text,
		}
	})
}
