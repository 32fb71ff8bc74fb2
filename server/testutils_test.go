package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/mancala/engine"
	"github.com/minaorangina/mancala/game"
	utils "github.com/minaorangina/mancala/internal"
	"github.com/minaorangina/mancala/protocol"
	"github.com/minaorangina/mancala/store"
	"github.com/stretchr/testify/require"
)

func NewBasicStore() *store.InMemoryGameStore {
	return store.NewInMemoryGameStore()
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newJoinGameRequest(data []byte) *http.Request {
	if data == nil {
		data = []byte{}
	}
	request, _ := http.NewRequest(http.MethodPost, "/join", bytes.NewBuffer(data))
	return request
}

func newTestGame(t *testing.T, opts engine.GameEngineOpts) engine.GameEngine {
	t.Helper()

	if opts.Game == nil {
		opts.Game = game.NewMancala(game.Opts{})
	}
	ge, err := engine.NewGameEngine(opts)
	require.NoError(t, err)
	return ge
}

func newServerWithGame(t *testing.T, ge engine.GameEngine) *GameServer {
	t.Helper()

	str := NewBasicStore()
	require.NoError(t, str.AddInactiveGame(ge))
	return NewServer(ServerOpts{Store: str})
}

// newServerWithInactiveGame returns a GameServer with an inactive game
// and a pending creator
func newServerWithInactiveGame(t *testing.T, ps engine.Players) (*GameServer, string) {
	t.Helper()
	return newServerWithInactiveGameOpts(t, ps, ServerOpts{})
}

// newServerWithInactiveGameOpts is newServerWithInactiveGame with custom server options.
// opts.Store is replaced.
func newServerWithInactiveGameOpts(t *testing.T, ps engine.Players, opts ServerOpts) (*GameServer, string) {
	t.Helper()

	gameID := "PENDIN"
	str := NewBasicStore()
	require.NoError(t, str.AddInactiveGame(newTestGame(t, engine.GameEngineOpts{
		GameID:    gameID,
		CreatorID: "hersha-1",
		Players:   ps,
	})))
	require.NoError(t, str.AddPendingPlayer(gameID, "hersha-1", "Hersha"))

	opts.Store = str

	return NewServer(opts), gameID
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func assertPendingGameResponse(t *testing.T, body *bytes.Buffer, want string) PendingGameRes {
	t.Helper()
	bodyBytes, err := io.ReadAll(body)
	utils.AssertNoError(t, err)

	var got PendingGameRes
	err = json.Unmarshal(bodyBytes, &got)
	if err != nil {
		t.Fatalf("could not unmarshal json: %s", err.Error())
	}
	if got.Name != want {
		t.Errorf("got %s, want %s", got.Name, want)
	}
	if len(got.GameID) == 0 {
		t.Error("expected a game id")
	}
	if len(got.PlayerID) == 0 {
		t.Error("expected a player id")
	}
	return got
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		var body []byte
		code := 0
		if resp != nil {
			body, _ = io.ReadAll(resp.Body)
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

// readUntil reads messages until one with the given command arrives
func readUntil(t *testing.T, ws *websocket.Conn, cmd protocol.Cmd) protocol.OutboundMessage {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg protocol.OutboundMessage
		require.NoError(t, ws.ReadJSON(&msg))
		if msg.Command == cmd {
			return msg
		}
	}
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}
