package board

import "fmt"

const (
	// NumPits is the number of positions on the board, stores included
	NumPits = 14

	pitsPerSide    = 6
	startingStones = 4
)

// Player identifies one of the two players sharing a board
type Player int

const (
	PlayerA Player = iota
	PlayerB
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	}
	return fmt.Sprintf("Player(%d)", int(p))
}

// Other returns the opponent of p
func (p Player) Other() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Side is the part of the board a player owns:
// the sowing pits First..Last and a single store.
type Side struct {
	First int
	Last  int
	Store int
}

// Contains reports whether i is one of the side's sowing pits
func (s Side) Contains(i int) bool {
	return i >= s.First && i <= s.Last
}

var sides = map[Player]Side{
	PlayerA: {First: 0, Last: pitsPerSide - 1, Store: pitsPerSide},
	PlayerB: {First: pitsPerSide + 1, Last: 2 * pitsPerSide, Store: 2*pitsPerSide + 1},
}

// SideOf returns the pits owned by p
func SideOf(p Player) Side {
	return sides[p]
}

// IsStore reports whether i is either player's store
func IsStore(i int) bool {
	return i == sides[PlayerA].Store || i == sides[PlayerB].Store
}

// Owner returns the player owning position i, store or sowing pit.
// It returns false when i is off the board.
func Owner(i int) (Player, bool) {
	for _, p := range []Player{PlayerA, PlayerB} {
		s := sides[p]
		if s.Contains(i) || s.Store == i {
			return p, true
		}
	}
	return 0, false
}

// Board holds the stone counts of all 14 pits and the names of the two
// players. Counts only change through Sow.
type Board struct {
	pits  [NumPits]int
	names [2]string
}

// New sets up a board for a fresh game: four stones in every sowing pit,
// both stores empty.
func New(nameA, nameB string) *Board {
	b := &Board{names: [2]string{nameA, nameB}}
	for i := range b.pits {
		if IsStore(i) {
			continue
		}
		b.pits[i] = startingStones
	}
	return b
}

// FromPits builds a board from explicit counts, e.g. to resume a game
func FromPits(pits []int, nameA, nameB string) (*Board, error) {
	if len(pits) != NumPits {
		return nil, fmt.Errorf("%w: want %d pits, got %d", ErrMalformedBoard, NumPits, len(pits))
	}

	b := &Board{names: [2]string{nameA, nameB}}
	for i, n := range pits {
		if n < 0 {
			return nil, fmt.Errorf("%w: pit %d has %d stones", ErrMalformedBoard, i, n)
		}
		b.pits[i] = n
	}
	return b, nil
}

// Pits returns a copy of every pit count in board order
func (b *Board) Pits() []int {
	pits := make([]int, NumPits)
	copy(pits, b.pits[:])
	return pits
}

// Pit returns the number of stones at index i
func (b *Board) Pit(i int) int {
	return b.pits[i]
}

// Store returns the number of stones in p's store
func (b *Board) Store(p Player) int {
	return b.pits[SideOf(p).Store]
}

// Name returns the name p was registered with
func (b *Board) Name(p Player) string {
	return b.names[p]
}

// Total counts every stone on the board
func (b *Board) Total() int {
	total := 0
	for _, n := range b.pits {
		total += n
	}
	return total
}

func (b *Board) sideEmpty(p Player) bool {
	s := SideOf(p)
	for i := s.First; i <= s.Last; i++ {
		if b.pits[i] != 0 {
			return false
		}
	}
	return true
}
