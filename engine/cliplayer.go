package engine

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/mancala/protocol"
)

const maxRetries = 5

var ErrMaxRetries = errors.New("max retries exceeded")

// CLIPlayer plays from a terminal. Two players can share one terminal:
// only the player a message concerns prints it.
type CLIPlayer struct {
	id     string
	name   string
	in     *bufio.Reader
	out    io.Writer
	engine Receiver
}

// NewCLIPlayer constructs a terminal player. Players sharing a terminal
// should share the same *bufio.Reader.
func NewCLIPlayer(id, name string, in io.Reader, out io.Writer, engine Receiver) *CLIPlayer {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &CLIPlayer{id: id, name: name, in: reader, out: out, engine: engine}
}

func (p *CLIPlayer) ID() string {
	return p.id
}

func (p *CLIPlayer) Name() string {
	return p.name
}

func (p *CLIPlayer) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{PlayerID: p.id, Name: p.name}
}

func (p *CLIPlayer) Send(msg protocol.OutboundMessage) error {
	switch msg.Command {
	case protocol.NewJoiner:
		if msg.Joiner.PlayerID == p.id {
			SendText(p.out, joinedText, p.name)
		}

	case protocol.Turn, protocol.Error:
		if !msg.ShouldRespond {
			return nil
		}
		if msg.Command == protocol.Error {
			SendText(p.out, "%s\n", msg.Message)
		} else {
			SendText(p.out, "%s", RenderBoard(msg.Pits))
		}

		cup, err := p.askForCup()
		if err != nil {
			return err
		}
		p.engine.Receive(protocol.InboundMessage{
			PlayerID: p.id,
			Command:  protocol.Move,
			Cup:      cup,
		})

	case protocol.Prompt, protocol.Switch:
		if msg.CurrentTurn.PlayerID == p.id {
			SendText(p.out, "%s\n", msg.Message)
		}

	case protocol.GameOver:
		if msg.CurrentTurn.PlayerID == p.id {
			SendText(p.out, "%s", RenderBoard(msg.Pits))
			SendText(p.out, "%s\n", msg.Message)
		}
	}

	return nil
}

func (p *CLIPlayer) askForCup() (int, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		SendText(p.out, chooseCupText, p.name)

		line, readErr := p.in.ReadString('\n')
		if line == "" && readErr != nil {
			return 0, readErr
		}

		cup, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return cup, nil
		}
		SendText(p.out, retryNumberText)

		if readErr != nil {
			return 0, readErr
		}
	}

	SendText(p.out, maxRetriesText)
	return 0, ErrMaxRetries
}
