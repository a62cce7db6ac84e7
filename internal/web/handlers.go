package web

import (
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
)

type handlers struct {
    svc       *app.Service
    tpl       *templates
    heartbeat time.Duration
}

type boardView struct {
    Board        domain.Board
    Difficulty   string
    Difficulties []string
    Stats        app.Stats
    Message      string
    Error        string
    Over         bool
}

func (h *handlers) view(errMsg string) boardView {
    st := h.svc.State()
    v := boardView{
        Board:      st.Board,
        Difficulty: st.Difficulty.String(),
        Stats:      st.Stats,
        Error:      errMsg,
    }
    for _, d := range engine.Difficulties() {
        v.Difficulties = append(v.Difficulties, d.String())
    }
    return v
}

func outcomeMessage(o app.Outcome) string {
    switch o {
    case app.HumanWin:
        return "You won!"
    case app.ComputerWin:
        return "You lost!"
    case app.Tie:
        return "It's a tie!"
    default:
        return ""
    }
}

func (h *handlers) writeBoard(w http.ResponseWriter, v boardView) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(renderTemplate(h.tpl.board, "", v))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.game, "base", h.view("")))
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
    h.writeBoard(w, h.view(""))
}

func (h *handlers) move(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    pos, err := strconv.Atoi(r.Form.Get("pos"))
    if err != nil {
        h.writeBoard(w, h.view("Invalid move"))
        return
    }
    res, err := h.svc.Move(pos)
    if err != nil {
        errMsg := "Invalid move"
        if errors.Is(err, domain.ErrOutOfBounds) {
            errMsg = "Out of bounds"
        }
        h.writeBoard(w, h.view(errMsg))
        return
    }
    v := h.view("")
    if res.Outcome.Terminal() {
        // show the finished round; the session has already restarted
        v.Board = res.Board
        v.Message = outcomeMessage(res.Outcome)
        v.Over = true
    }
    h.writeBoard(w, v)
}

func (h *handlers) difficulty(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    d, err := engine.ParseDifficulty(r.Form.Get("level"))
    if err != nil {
        h.writeBoard(w, h.view("Unknown difficulty"))
        return
    }
    h.svc.SetDifficulty(d)
    h.writeBoard(w, h.view(""))
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
    h.svc.Reset()
    h.writeBoard(w, h.view(""))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, _ := h.svc.Subscribe(ctx)
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    // Initial flush of headers
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok { return }
            _, _ = fmt.Fprintf(w, "event: game\n")
            _, _ = fmt.Fprintf(w, "data: %s\n\n", b)
            writeSSE(w, "board", renderTemplate(h.tpl.board, "", h.view("")))
            flusher.Flush()
        }
    }
}

// writeSSE frames a multi-line payload as one server-sent event.
func writeSSE(w io.Writer, event string, payload []byte) {
    _, _ = fmt.Fprintf(w, "event: %s\n", event)
    for _, line := range strings.Split(strings.TrimSpace(string(payload)), "\n") {
        _, _ = fmt.Fprintf(w, "data: %s\n", line)
    }
    _, _ = io.WriteString(w, "\n")
}
