package web

import (
    "encoding/json"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/gorilla/websocket"
    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
    "github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, d engine.Difficulty) (*app.Service, *websocket.Conn) {
    t.Helper()
    svc, h := newTestServer(t, d)
    srv := httptest.NewServer(h)
    t.Cleanup(srv.Close)

    conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
    require.NoError(t, err)
    t.Cleanup(func() { conn.Close() })
    require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
    return svc, conn
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]any {
    t.Helper()
    var m map[string]any
    require.NoError(t, conn.ReadJSON(&m))
    return m
}

func TestWebsocketInitialState(t *testing.T) {
    svc, conn := dialWS(t, engine.Medium)
    msg := readJSON(t, conn)
    require.Equal(t, "state", msg["kind"])
    require.Equal(t, "medium", msg["difficulty"])
    require.Equal(t, svc.State().GameID, msg["game_id"])
}

func TestWebsocketMoveStreamsEvents(t *testing.T) {
    _, conn := dialWS(t, engine.Hard)
    readJSON(t, conn) // state

    require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "position": 4}))

    human := readJSON(t, conn)
    require.Equal(t, "move_applied", human["kind"])
    require.Equal(t, "O", human["mark"])
    require.EqualValues(t, 4, human["position"])

    computer := readJSON(t, conn)
    require.Equal(t, "move_applied", computer["kind"])
    require.Equal(t, "X", computer["mark"])
    require.Contains(t, []float64{0, 2, 6, 8}, computer["position"])
}

func TestWebsocketCommands(t *testing.T) {
    svc, conn := dialWS(t, engine.Easy)
    readJSON(t, conn) // state

    require.NoError(t, conn.WriteJSON(map[string]any{"type": "difficulty", "level": "hard"}))
    msg := readJSON(t, conn)
    require.Equal(t, "difficulty_changed", msg["kind"])
    require.Equal(t, "hard", msg["difficulty"])
    require.Equal(t, engine.Hard, svc.State().Difficulty)

    require.NoError(t, conn.WriteJSON(map[string]any{"type": "reset"}))
    msg = readJSON(t, conn)
    require.Equal(t, "board_reset", msg["kind"])

    require.NoError(t, conn.WriteJSON(map[string]any{"type": "move", "position": 12}))
    msg = readJSON(t, conn)
    require.Equal(t, "error", msg["kind"])
    require.Contains(t, msg["error"], "out of bounds")

    require.NoError(t, conn.WriteJSON(map[string]any{"type": "dance"}))
    msg = readJSON(t, conn)
    require.Equal(t, "error", msg["kind"])
}

func TestRenderEventJSON(t *testing.T) {
    b := renderEvent(app.Event{Kind: app.GameEnded, GameID: "g", Position: -1, Outcome: app.Tie})
    var m map[string]any
    require.NoError(t, json.Unmarshal(b, &m))
    require.Equal(t, "game_ended", m["kind"])
    require.Equal(t, "tie", m["outcome"])
    require.EqualValues(t, -1, m["position"])
}
