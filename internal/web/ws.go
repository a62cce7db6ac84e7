package web

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "time"

    "github.com/gorilla/websocket"
    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
    "github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
    CheckOrigin: func(r *http.Request) bool {
        return true
    },
}

// wsCommand is a client request: move, difficulty or reset.
type wsCommand struct {
    Type     string `json:"type"`
    Position *int   `json:"position,omitempty"`
    Level    string `json:"level,omitempty"`
}

// wsMessage is sent by the server for anything that is not a session event.
type wsMessage struct {
    Kind       string     `json:"kind"`
    Error      string     `json:"error,omitempty"`
    GameID     string     `json:"game_id,omitempty"`
    Board      *[9]string `json:"board,omitempty"`
    Difficulty string     `json:"difficulty,omitempty"`
    Stats      *app.Stats `json:"stats,omitempty"`
}

func mustMarshal(v any) []byte {
    b, err := json.Marshal(v)
    if err != nil {
        panic(err)
    }
    return b
}

func stateMessage(st app.Snapshot) wsMessage {
    var board [9]string
    for i, c := range st.Board {
        if c != domain.Empty {
            board[i] = c.String()
        }
    }
    return wsMessage{
        Kind:       "state",
        GameID:     st.GameID,
        Board:      &board,
        Difficulty: st.Difficulty.String(),
        Stats:      &st.Stats,
    }
}

func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        log.Warn().Err(err).Msg("websocket upgrade")
        return
    }
    defer conn.Close()

    ctx, cancel := context.WithCancel(r.Context())
    defer cancel()
    events, unsub := h.svc.Subscribe(ctx)
    defer unsub()

    replies := make(chan []byte, 8)
    replies <- mustMarshal(stateMessage(h.svc.State()))
    go func() {
        defer cancel()
        h.readCommands(ctx, conn, replies)
    }()

    if err := h.writeWS(ctx, conn, events, replies); err != nil {
        log.Debug().Err(err).Msg("websocket closed")
    }
}

// readCommands applies client commands until the connection fails.
func (h *handlers) readCommands(ctx context.Context, conn *websocket.Conn, replies chan<- []byte) {
    for {
        var cmd wsCommand
        if err := conn.ReadJSON(&cmd); err != nil {
            if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
                log.Debug().Err(err).Msg("websocket read")
            }
            return
        }
        if err := h.dispatch(cmd); err != nil {
            msg := mustMarshal(wsMessage{Kind: "error", Error: err.Error()})
            select {
            case replies <- msg:
            case <-ctx.Done():
                return
            }
        }
    }
}

var errBadCommand = errors.New("unknown command")

func (h *handlers) dispatch(cmd wsCommand) error {
    switch cmd.Type {
    case "move":
        if cmd.Position == nil {
            return domain.ErrOutOfBounds
        }
        _, err := h.svc.Move(*cmd.Position)
        return err
    case "difficulty":
        d, err := engine.ParseDifficulty(cmd.Level)
        if err != nil {
            return err
        }
        h.svc.SetDifficulty(d)
        return nil
    case "reset":
        h.svc.Reset()
        return nil
    default:
        return errBadCommand
    }
}

// writeWS is the only writer on conn: it forwards events and replies and
// pings when the connection has been idle for a heartbeat period.
func (h *handlers) writeWS(ctx context.Context, conn *websocket.Conn, events <-chan []byte, replies <-chan []byte) error {
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    lastWrite := time.Now()
    pingPayload := mustMarshal(wsMessage{Kind: "ping"})

    write := func(msg []byte) error {
        lastWrite = time.Now()
        return conn.WriteMessage(websocket.TextMessage, msg)
    }
    for {
        select {
        case <-ctx.Done():
            _ = conn.WriteControl(websocket.CloseMessage,
                websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
                time.Now().Add(time.Second))
            return nil
        case msg, ok := <-events:
            if !ok {
                return nil
            }
            if err := write(msg); err != nil {
                return err
            }
        case msg := <-replies:
            if err := write(msg); err != nil {
                return err
            }
        case <-ticker.C:
            if time.Since(lastWrite) < h.heartbeat {
                continue
            }
            if err := write(pingPayload); err != nil {
                return err
            }
        }
    }
}
