package board

// Validate checks that start names a sowing pit holding at least one stone.
// It does not check which player owns the pit.
func (b *Board) Validate(start int) error {
	if start < SideOf(PlayerA).First || start > SideOf(PlayerB).Last || IsStore(start) {
		return ErrInvalidCup
	}
	if b.pits[start] == 0 {
		return ErrEmptyCup
	}
	return nil
}

// Sow picks up every stone in start and drops them one at a time into the
// following pits, wrapping round the board. The opponent's store is skipped.
// It returns the index the last stone landed in.
//
// Sow assumes start has been validated; an empty start pit returns start.
func (b *Board) Sow(start int, p Player) int {
	held := b.pits[start]
	b.pits[start] = 0

	skip := SideOf(p.Other()).Store
	cursor := start
	for held > 0 {
		cursor = (cursor + 1) % NumPits
		if cursor == skip {
			continue
		}
		b.pits[cursor]++
		held--
	}

	return cursor
}

// Move validates, sows and resolves a move for p.
// On error the board is left untouched.
func (b *Board) Move(start int, p Player) (Result, error) {
	if err := b.Validate(start); err != nil {
		return Result{}, err
	}
	end := b.Sow(start, p)
	return b.Resolve(end), nil
}
