package game

// GamePlayState tracks whether a game is underway
type GamePlayState int

const (
	gameNotStarted GamePlayState = iota
	gameStarted
	gameOver
)

var gamePlayStateNames = map[GamePlayState]string{
	gameNotStarted: "notStarted",
	gameStarted:    "started",
	gameOver:       "over",
}

func (s GamePlayState) String() string {
	return gamePlayStateNames[s]
}
