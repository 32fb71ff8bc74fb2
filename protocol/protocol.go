package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	Error
	// game-specific
	Turn     // a player is asked for a starting cup
	Move     // a player answers with a starting cup
	Prompt   // the mover landed in their store and goes again
	Switch   // the turn passes to the other player
	GameOver // sent once, with the final board
)

var CmdNames = map[Cmd]string{
	Null:       "Null",
	NewJoiner:  "NewJoiner",
	Start:      "Start",
	HasStarted: "HasStarted",
	Error:      "Error",
	Turn:       "Turn",
	Move:       "Move",
	Prompt:     "Prompt",
	Switch:     "Switch",
	GameOver:   "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":       Null,
	"NewJoiner":  NewJoiner,
	"Start":      Start,
	"HasStarted": HasStarted,
	"Error":      Error,
	"Turn":       Turn,
	"Move":       Move,
	"Prompt":     Prompt,
	"Switch":     Switch,
	"GameOver":   GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalText lets commands travel as their names in JSON
func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(text))
	}
	*c = cmd
	return nil
}
