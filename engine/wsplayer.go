package engine

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/mancala/protocol"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var ErrSendTimeout = errors.New("timed out sending to player")

// WSPlayer plays over a websocket, exchanging JSON messages
type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	sendCh chan []byte
	engine GameEngine
	log    *zap.SugaredLogger
}

// NewWSPlayer constructs a websocket player and starts pumping messages
// between the connection and the engine
func NewWSPlayer(id, name string, ws *websocket.Conn, ge GameEngine, log *zap.SugaredLogger) *WSPlayer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	player := &WSPlayer{
		id:     id,
		name:   name,
		conn:   ws,
		sendCh: make(chan []byte, 8),
		engine: ge,
		log:    log.With("playerID", id),
	}

	if ws != nil {
		go player.writePump()
		go player.readPump()
	}

	return player
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

func (p *WSPlayer) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{PlayerID: p.id, Name: p.name}
}

func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case p.sendCh <- data:
		return nil
	case <-time.After(writeWait):
		return ErrSendTimeout
	}
}

// Receive converts raw data from the connection and passes it to the engine.
// The sender is always this player, whatever the payload says.
func (p *WSPlayer) Receive(data []byte) {
	var msg protocol.InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		p.log.Infow("unreadable message", "error", err)
		_ = p.Send(protocol.OutboundMessage{
			PlayerID: p.id,
			Name:     p.name,
			Command:  protocol.Error,
			Error:    err.Error(),
			Message:  "could not read message",
		})
		return
	}

	msg.PlayerID = p.id
	p.engine.Receive(msg)
}

func (p *WSPlayer) readPump() {
	defer func() {
		p.engine.RemovePlayer(p)
		p.conn.Close()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				p.log.Warnw("connection closed", "error", err)
			}
			return
		}
		p.Receive(data)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
