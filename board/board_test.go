package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const totalStones = 48

func mustBoard(t *testing.T, pits []int) *Board {
	t.Helper()
	b, err := FromPits(pits, "Ada", "Bo")
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("sowing pits start with four stones and stores are empty", func(t *testing.T) {
		b := New("Ada", "Bo")

		for i := 0; i < NumPits; i++ {
			if i == 6 || i == 13 {
				assert.Equal(t, 0, b.Pit(i), "store %d", i)
				continue
			}
			assert.Equal(t, 4, b.Pit(i), "pit %d", i)
		}
		assert.Equal(t, totalStones, b.Total())
	})

	t.Run("remembers player names", func(t *testing.T) {
		b := New("Ada", "Bo")
		assert.Equal(t, "Ada", b.Name(PlayerA))
		assert.Equal(t, "Bo", b.Name(PlayerB))
	})

	t.Run("Pits returns a copy", func(t *testing.T) {
		b := New("Ada", "Bo")
		pits := b.Pits()
		pits[0] = 99
		assert.Equal(t, 4, b.Pit(0))
	})
}

func TestOwnership(t *testing.T) {
	assert.Equal(t, Side{First: 0, Last: 5, Store: 6}, SideOf(PlayerA))
	assert.Equal(t, Side{First: 7, Last: 12, Store: 13}, SideOf(PlayerB))

	for i := 0; i <= 6; i++ {
		p, ok := Owner(i)
		assert.True(t, ok)
		assert.Equal(t, PlayerA, p, "index %d", i)
	}
	for i := 7; i <= 13; i++ {
		p, ok := Owner(i)
		assert.True(t, ok)
		assert.Equal(t, PlayerB, p, "index %d", i)
	}

	_, ok := Owner(14)
	assert.False(t, ok)
	_, ok = Owner(-1)
	assert.False(t, ok)

	assert.Equal(t, PlayerB, PlayerA.Other())
	assert.Equal(t, PlayerA, PlayerB.Other())
}

func TestFromPits(t *testing.T) {
	t.Run("rejects the wrong number of pits", func(t *testing.T) {
		_, err := FromPits([]int{1, 2, 3}, "", "")
		assert.ErrorIs(t, err, ErrMalformedBoard)
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		pits := New("", "").Pits()
		pits[4] = -1
		_, err := FromPits(pits, "", "")
		assert.ErrorIs(t, err, ErrMalformedBoard)
	})
}

func TestValidate(t *testing.T) {
	t.Run("out of range and store indices are invalid", func(t *testing.T) {
		b := New("Ada", "Bo")
		for _, start := range []int{-1, 6, 13, 14, 100} {
			assert.ErrorIs(t, b.Validate(start), ErrInvalidCup, "start %d", start)
		}
	})

	t.Run("every sowing pit is a valid start on a fresh board", func(t *testing.T) {
		b := New("Ada", "Bo")
		for start := 0; start <= 12; start++ {
			if start == 6 {
				continue
			}
			assert.NoError(t, b.Validate(start), "start %d", start)
		}
	})

	t.Run("empty pits cannot be started from", func(t *testing.T) {
		b := mustBoard(t, []int{0, 0, 0, 0, 0, 0, 24, 0, 0, 0, 0, 0, 0, 24})
		for start := 0; start <= 12; start++ {
			if start == 6 {
				continue
			}
			assert.ErrorIs(t, b.Validate(start), ErrEmptyCup, "start %d", start)
		}
	})

	t.Run("a failed move leaves the board untouched", func(t *testing.T) {
		b := mustBoard(t, []int{0, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4})
		before := b.Pits()

		_, err := b.Move(0, PlayerA)
		assert.ErrorIs(t, err, ErrEmptyCup)

		_, err = b.Move(13, PlayerA)
		assert.ErrorIs(t, err, ErrInvalidCup)

		assert.Equal(t, before, b.Pits())
	})
}

func TestSow(t *testing.T) {
	t.Run("last stone in own store means the player goes again", func(t *testing.T) {
		b := New("Ada", "Bo")

		end := b.Sow(2, PlayerA)

		assert.Equal(t, 6, end)
		assert.Equal(t, 0, b.Pit(2))
		assert.Equal(t, []int{5, 5, 5}, b.Pits()[3:6])
		assert.Equal(t, 1, b.Store(PlayerA))
		assert.Equal(t, Result{Kind: AwaitMove}, b.Resolve(end))
	})

	t.Run("last stone in a previously empty pit switches the turn", func(t *testing.T) {
		b := mustBoard(t, []int{1, 0, 4, 4, 4, 4, 0, 4, 4, 4, 4, 4, 4, 0})

		res, err := b.Move(0, PlayerA)

		require.NoError(t, err)
		assert.Equal(t, 1, b.Pit(1))
		assert.Equal(t, Result{Kind: Switch}, res)
	})

	t.Run("last stone in an occupied pit continues with the ending index", func(t *testing.T) {
		b := New("Ada", "Bo")

		res, err := b.Move(0, PlayerA)

		require.NoError(t, err)
		assert.Equal(t, Result{Kind: Continue, Index: 4}, res)
		assert.Equal(t, "Continue(4)", res.String())
	})

	t.Run("player A wraps round and never feeds the opponent's store", func(t *testing.T) {
		b := mustBoard(t, []int{4, 4, 4, 4, 4, 4, 0, 4, 4, 4, 4, 5, 4, 0})

		end := b.Sow(11, PlayerA)

		assert.Equal(t, 3, end)
		assert.Equal(t, 0, b.Store(PlayerB))
		assert.Equal(t, 0, b.Pit(11))
		assert.Equal(t, 5, b.Pit(12))
		assert.Equal(t, []int{5, 5, 5, 5}, b.Pits()[0:4])
		assert.Equal(t, 4, b.Pit(4))
	})

	t.Run("player B feeds its own store when crossing it", func(t *testing.T) {
		b := mustBoard(t, []int{4, 4, 4, 4, 4, 4, 0, 4, 4, 4, 4, 5, 4, 0})

		end := b.Sow(11, PlayerB)

		assert.Equal(t, 2, end)
		assert.Equal(t, 1, b.Store(PlayerB))
		assert.Equal(t, []int{5, 5, 5}, b.Pits()[0:3])
	})

	t.Run("player B skips player A's store, even sowing from A's side", func(t *testing.T) {
		b := New("Ada", "Bo")

		res, err := b.Move(5, PlayerB)

		require.NoError(t, err)
		assert.Equal(t, 0, b.Store(PlayerA))
		assert.Equal(t, []int{5, 5, 5, 5}, b.Pits()[7:11])
		assert.Equal(t, Result{Kind: Continue, Index: 10}, res)
	})

	t.Run("a full lap refills the starting pit", func(t *testing.T) {
		b := mustBoard(t, []int{14, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

		end := b.Sow(0, PlayerA)

		assert.Equal(t, 1, end)
		assert.Equal(t, 1, b.Pit(0))
		assert.Equal(t, 2, b.Pit(1))
		assert.Equal(t, 1, b.Store(PlayerA))
		assert.Equal(t, 0, b.Store(PlayerB))
		assert.Equal(t, 14, b.Total())
	})
}

func TestStonesAreConserved(t *testing.T) {
	b := New("Ada", "Bo")
	current := PlayerA

	for turn := 0; turn < 500 && !b.IsGameOver(); turn++ {
		side := SideOf(current)
		start := -1
		// deterministic choice: the fullest pit on the mover's side
		for i := side.First; i <= side.Last; i++ {
			if b.Pit(i) > 0 && (start == -1 || b.Pit(i) > b.Pit(start)) {
				start = i
			}
		}
		require.NotEqual(t, -1, start)

		res, err := b.Move(start, current)
		require.NoError(t, err)
		require.Equal(t, totalStones, b.Total(), "turn %d", turn)

		if res.Kind != AwaitMove {
			current = current.Other()
		}
	}
}

func TestWinner(t *testing.T) {
	t.Run("fresh board is not over", func(t *testing.T) {
		assert.False(t, New("Ada", "Bo").IsGameOver())
	})

	t.Run("empty side for either player ends the game", func(t *testing.T) {
		aEmpty := mustBoard(t, []int{0, 0, 0, 0, 0, 0, 20, 1, 1, 1, 1, 1, 1, 22})
		bEmpty := mustBoard(t, []int{1, 1, 1, 1, 1, 1, 20, 0, 0, 0, 0, 0, 0, 22})
		assert.True(t, aEmpty.IsGameOver())
		assert.True(t, bEmpty.IsGameOver())
	})

	t.Run("equal stores are a draw", func(t *testing.T) {
		b := mustBoard(t, []int{0, 0, 0, 0, 0, 0, 24, 0, 0, 0, 0, 0, 0, 24})

		require.True(t, b.IsGameOver())
		assert.Equal(t, Draw, b.Winner())
		_, ok := b.WinnerName()
		assert.False(t, ok)
	})

	t.Run("bigger store wins", func(t *testing.T) {
		aWins := mustBoard(t, []int{0, 0, 0, 0, 0, 0, 30, 0, 0, 0, 0, 0, 0, 18})
		bWins := mustBoard(t, []int{0, 0, 0, 0, 0, 0, 18, 0, 0, 0, 0, 0, 0, 30})

		assert.Equal(t, WonByA, aWins.Winner())
		name, ok := aWins.WinnerName()
		assert.True(t, ok)
		assert.Equal(t, "Ada", name)

		assert.Equal(t, WonByB, bWins.Winner())
		p, ok := bWins.Winner().Winner()
		assert.True(t, ok)
		assert.Equal(t, PlayerB, p)
	})
}

func TestCodec(t *testing.T) {
	t.Run("encodes pits in board order", func(t *testing.T) {
		assert.Equal(t, "4,4,4,4,4,4,0,4,4,4,4,4,4,0", New("", "").String())
	})

	t.Run("parses what it encodes", func(t *testing.T) {
		b := New("Ada", "Bo")
		b.Sow(2, PlayerA)

		parsed, err := Parse(b.String(), "Ada", "Bo")
		require.NoError(t, err)
		assert.Equal(t, b.Pits(), parsed.Pits())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "a,b", "1,2,3", "4,4,4,4,4,4,0,4,4,4,4,4,4,-1"} {
			_, err := Parse(s, "", "")
			assert.ErrorIs(t, err, ErrMalformedBoard, "input %q", s)
		}
	})
}
