package board

import (
	"fmt"
	"strconv"
	"strings"
)

const pitSeparator = ","

// String encodes the pit counts in board order, e.g. "4,4,4,4,4,4,0,4,4,4,4,4,4,0"
func (b *Board) String() string {
	parts := make([]string, NumPits)
	for i, n := range b.pits {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, pitSeparator)
}

// Parse decodes the output of String
func Parse(s, nameA, nameB string) (*Board, error) {
	raw := strings.Split(strings.TrimSpace(s), pitSeparator)
	pits := make([]int, len(raw))
	for i, r := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("%w: pit %d: %v", ErrMalformedBoard, i, err)
		}
		pits[i] = n
	}
	return FromPits(pits, nameA, nameB)
}
