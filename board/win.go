package board

import "fmt"

// Outcome is the result of a finished game
type Outcome int

const (
	Draw Outcome = iota
	WonByA
	WonByB
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case WonByA:
		return "WonByA"
	case WonByB:
		return "WonByB"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Winner returns the winning player, or false for a draw
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case WonByA:
		return PlayerA, true
	case WonByB:
		return PlayerB, true
	}
	return 0, false
}

// IsGameOver reports whether every sowing pit on either side is empty
func (b *Board) IsGameOver() bool {
	return b.sideEmpty(PlayerA) || b.sideEmpty(PlayerB)
}

// Winner compares the two stores. Only meaningful once IsGameOver is true.
func (b *Board) Winner() Outcome {
	a, bb := b.Store(PlayerA), b.Store(PlayerB)
	switch {
	case a > bb:
		return WonByA
	case bb > a:
		return WonByB
	}
	return Draw
}

// WinnerName returns the name of the winning player, or false for a draw
func (b *Board) WinnerName() (string, bool) {
	p, ok := b.Winner().Winner()
	if !ok {
		return "", false
	}
	return b.Name(p), true
}
