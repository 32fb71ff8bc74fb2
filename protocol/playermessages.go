package protocol

type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// InboundMessage is a message from Player to GameEngine
type InboundMessage struct {
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
	Cup      int    `json:"cup"`
}

// OutboundMessage is a message from GameEngine to Player
type OutboundMessage struct {
	PlayerID      string      `json:"playerID"`
	Command       Cmd         `json:"command"`
	Name          string      `json:"name"`
	Message       string      `json:"message"`
	Pits          []int       `json:"pits,omitempty"`
	ShouldRespond bool        `json:"shouldRespond"`
	Joiner        PlayerInfo  `json:"joiner,omitempty"`
	CurrentTurn   PlayerInfo  `json:"currentTurn,omitempty"`
	NextTurn      PlayerInfo  `json:"nextTurn,omitempty"`
	Winner        *PlayerInfo `json:"winner,omitempty"`
	Error         string      `json:"error,omitempty"`
}
