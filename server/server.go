package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/mancala/board"
	"github.com/minaorangina/mancala/engine"
	"github.com/minaorangina/mancala/game"
	"github.com/minaorangina/mancala/store"
	"go.uber.org/zap"
)

const (
	gameIDLength         = 6
	gameIDAttempts       = 5
	defaultAllowedOrigin = "*"
)

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GetGameRes struct {
	Status  string   `json:"status"`
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
	Pits    []int    `json:"pits,omitempty"`
	Board   string   `json:"board,omitempty"`
}

type ServerOpts struct {
	Store   store.GameStore
	Results store.ResultStore
	Logger  *zap.SugaredLogger
	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins  []string
	StrictOwnership bool
}

// GameServer is a game server
type GameServer struct {
	store    store.GameStore
	results  store.ResultStore
	log      *zap.SugaredLogger
	strict   bool
	upgrader websocket.Upgrader
	http.Server
}

func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, gameIDLength)

	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}

	return string(code)
}

// originChecker applies the CORS allow-list to websocket upgrades.
// Requests without an Origin header don't come from a browser and pass.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == defaultAllowedOrigin || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	if opts.Store == nil {
		opts.Store = store.NewInMemoryGameStore()
	}
	if opts.Results == nil {
		opts.Results = store.NewInMemoryResultStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{defaultAllowedOrigin}
	}

	s := &GameServer{
		store:   opts.Store,
		results: opts.Results,
		log:     opts.Logger,
		strict:  opts.StrictOwnership,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/new", s.HandleNewGame)
	r.Post("/join", s.HandleJoinGame)
	r.Get("/game/{gameID}", s.HandleFindGame)
	r.Get("/results/{gameID}", s.HandleResult)
	r.Get("/ws", s.HandleWS)

	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	accessLog := zap.NewStdLog(opts.Logger.Desugar()).Writer()
	s.Handler = handlers.LoggingHandler(accessLog, cors(r))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	playerID := engine.NewID()
	ge, err := g.newGame(playerID)
	if err != nil {
		g.log.Errorw("could not create game", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err = g.store.AddPendingPlayer(ge.ID(), playerID, data.Name)
	if err != nil {
		g.log.Errorw("could not add creator", "gameID", ge.ID(), "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.log.Infow("game created", "gameID", ge.ID(), "playerID", playerID)

	writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   ge.ID(),
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		Players:  []string{},
	})
}

// newGame registers a fresh game under an unused ID
func (g *GameServer) newGame(creatorID string) (engine.GameEngine, error) {
	var err error
	for i := 0; i < gameIDAttempts; i++ {
		var ge engine.GameEngine
		ge, err = engine.NewGameEngine(engine.GameEngineOpts{
			GameID:     NewGameID(),
			CreatorID:  creatorID,
			Game:       game.NewMancala(game.Opts{StrictOwnership: g.strict}),
			OnGameOver: g.saveResult,
			Logger:     g.log,
		})
		if err != nil {
			return nil, err
		}

		err = g.store.AddInactiveGame(ge)
		if err == nil {
			go g.forgetWhenAbandoned(ge)
			return ge, nil
		}
		if !errors.Is(err, store.ErrDuplicateGameID) {
			return nil, err
		}
	}

	return nil, err
}

func (g *GameServer) saveResult(gameID string, result game.Result) {
	if err := g.results.SaveResult(context.Background(), gameID, result); err != nil {
		g.log.Errorw("could not save result", "gameID", gameID, "error", err)
	}
}

func (g *GameServer) forgetWhenAbandoned(ge engine.GameEngine) {
	<-ge.Done()
	if ge.PlayState() == engine.Abandoned {
		g.store.RemoveGame(ge.ID())
	}
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	response := GetGameRes{
		Status:  ge.PlayState().String(),
		GameID:  gameID,
		Players: playerNames(ge.Players()),
	}

	if pits := ge.Pits(); pits != nil {
		response.Pits = pits
		if b, err := board.FromPits(pits, "", ""); err == nil {
			response.Board = b.String()
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (g *GameServer) HandleResult(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	result, err := g.results.FindResult(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrResultNotFound) {
			writeText(w, http.StatusNotFound, fmt.Sprintf("no result for game '%s'", gameID))
			return
		}
		g.log.Errorw("could not find result", "gameID", gameID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()

	if err != nil {
		g.writeParseError(err, w)
		return
	}

	if data.GameID == "" {
		writeText(w, http.StatusBadRequest, "Missing game ID")
		return
	}

	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "Missing player name")
		return
	}

	ge := g.store.FindInactiveGame(data.GameID)
	if ge == nil {
		writeText(w, http.StatusBadRequest, unknownGameIDMsg(data.GameID))
		return
	}

	playerID := engine.NewID()

	err = g.store.AddPendingPlayer(data.GameID, playerID, data.Name)
	if err != nil {
		if errors.Is(err, store.ErrGameFull) || errors.Is(err, store.ErrGameAlreadyStarted) {
			writeText(w, http.StatusConflict, err.Error())
			return
		}
		g.log.Errorw("could not add pending player", "gameID", data.GameID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, PendingGameRes{
		PlayerID: playerID,
		GameID:   data.GameID,
		Name:     data.Name,
		Players:  playerNames(ge.Players()),
	})
}

func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	gameID := query.Get("game_id")
	if gameID == "" {
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	}

	playerID := query.Get("player_id")
	if playerID == "" {
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	}

	ge := g.store.FindInactiveGame(gameID)
	if ge == nil {
		writeText(w, http.StatusBadRequest, unknownGameIDMsg(gameID))
		return
	}

	pendingPlayer := g.store.FindPendingPlayer(gameID, playerID)
	if pendingPlayer == nil {
		writeText(w, http.StatusBadRequest, store.ErrUnknownPlayerID.Error())
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		g.log.Warnw("could not upgrade to websocket", "gameID", gameID, "error", err)
		return
	}

	player := engine.NewWSPlayer(playerID, pendingPlayer.Name, conn, ge, g.log)
	if err := g.store.AddPlayerToGame(gameID, player); err != nil {
		g.log.Warnw("could not add player to game", "gameID", gameID, "playerID", playerID, "error", err)
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		conn.Close()
	}
}

func (g *GameServer) writeParseError(err error, w http.ResponseWriter) {
	if errors.Is(err, io.EOF) {
		writeText(w, http.StatusBadRequest, "Missing body")
		return
	}
	g.log.Infow("could not parse request", "error", err)
	writeText(w, http.StatusBadRequest, "Malformed body")
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func playerNames(ps engine.Players) []string {
	names := []string{}
	for _, p := range ps {
		names = append(names, p.Name())
	}
	return names
}
