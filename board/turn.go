package board

import "fmt"

// Kind is the outcome of a move for turn order
type Kind int

const (
	// AwaitMove means the player who just moved goes again
	AwaitMove Kind = iota
	// Switch means the turn passes to the other player
	Switch
	// Continue carries the ending index. Callers currently handle it like Switch.
	Continue
)

var kindNames = map[Kind]string{
	AwaitMove: "AwaitMove",
	Switch:    "Switch",
	Continue:  "Continue",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result is what Resolve decided about a finished move.
// Index is only meaningful for Continue.
type Result struct {
	Kind  Kind
	Index int
}

func (r Result) String() string {
	if r.Kind == Continue {
		return fmt.Sprintf("Continue(%d)", r.Index)
	}
	return r.Kind.String()
}

// Resolve decides who moves next given where the last stone landed
func (b *Board) Resolve(end int) Result {
	if IsStore(end) {
		return Result{Kind: AwaitMove}
	}
	// the pit was empty before the last stone arrived
	if b.pits[end] == 1 {
		return Result{Kind: Switch}
	}
	return Result{Kind: Continue, Index: end}
}
