package board

import "errors"

var (
	ErrInvalidCup     = errors.New("invalid starting cup")
	ErrEmptyCup       = errors.New("starting cup is empty")
	ErrMalformedBoard = errors.New("malformed board")
)
