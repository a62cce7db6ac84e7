package web

import (
    "encoding/json"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/rs/zerolog/log"
)

const defaultHeartbeat = 15 * time.Second

// NewServer wires routes and returns an http.Handler. It installs a JSON
// event renderer on s so SSE and websocket clients receive the same payloads.
func NewServer(s *app.Service, heartbeat time.Duration) http.Handler {
    if heartbeat <= 0 {
        heartbeat = defaultHeartbeat
    }
    s.SetRenderer(renderEvent)

    r := chi.NewRouter()
    r.Use(middleware.Recoverer)
    r.Use(requestLogger)
    h := &handlers{svc: s, tpl: loadTemplates(), heartbeat: heartbeat}
    r.Get("/", h.index)
    r.Get("/board", h.board)
    r.Post("/move", h.move)
    r.Post("/difficulty", h.difficulty)
    r.Post("/reset", h.reset)
    r.Get("/events", h.events)
    r.Get("/ws", h.ws)
    return r
}

func renderEvent(ev app.Event) []byte {
    b, err := json.Marshal(ev)
    if err != nil {
        log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("encode event")
        return nil
    }
    return b
}

func requestLogger(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
        next.ServeHTTP(ww, r)
        log.Debug().
            Str("method", r.Method).
            Str("path", r.URL.Path).
            Int("status", ww.Status()).
            Dur("elapsed", time.Since(start)).
            Msg("request")
    })
}
