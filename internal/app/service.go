package app

import (
    "context"
    "sync"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
)

// Snapshot is a copy of everything a presentation layer renders.
type Snapshot struct {
    GameID     string
    Board      domain.Board
    Difficulty engine.Difficulty
    State      State
    Stats      Stats
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service serialises inputs to one Session and fans its events out to subscribers.
type Service struct {
    mu      sync.Mutex
    session *Session
    stats   Stats
    pending []Event
    subs    map[*subscriber]struct{}
    render  func(Event) []byte
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService(sel *engine.Selector, d engine.Difficulty) *Service {
    return NewServiceWithRenderer(sel, d, func(Event) []byte { return nil })
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(sel *engine.Selector, d engine.Difficulty, renderer func(Event) []byte) *Service {
    if renderer == nil {
        renderer = func(Event) []byte { return nil }
    }
    s := &Service{
        subs:   make(map[*subscriber]struct{}),
        render: renderer,
    }
    s.session = NewSession(sel, d, func(ev Event) { s.pending = append(s.pending, ev) })
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Event) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(Event) []byte { return nil }
        return
    }
    s.render = renderer
}

// Move applies a human move and the computer's answer, then broadcasts.
func (s *Service) Move(pos int) (Result, error) {
    var res Result
    var err error
    s.apply(func() { res, err = s.session.HumanMove(pos) })
    return res, err
}

// SetDifficulty changes the level for subsequent computer moves.
func (s *Service) SetDifficulty(d engine.Difficulty) {
    s.apply(func() { s.session.SetDifficulty(d) })
}

// Reset restarts the round with an empty board.
func (s *Service) Reset() {
    s.apply(s.session.Reset)
}

// State returns a snapshot of the session and statistics.
func (s *Service) State() Snapshot {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.snapshotLocked()
}

// Stats returns the finished-round counters.
func (s *Service) Stats() Stats {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.stats
}

func (s *Service) snapshotLocked() Snapshot {
    return Snapshot{
        GameID:     s.session.GameID(),
        Board:      s.session.Board(),
        Difficulty: s.session.Difficulty(),
        State:      s.session.State(),
        Stats:      s.stats,
    }
}

// apply runs fn and delivers the events it produced without releasing the lock.
// Subscriber channels are only closed while the lock is held.
func (s *Service) apply(fn func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.pending = nil
    fn()
    events := s.pending
    s.pending = nil
    for _, ev := range events {
        if ev.Kind == GameEnded {
            s.stats.Record(ev.Outcome)
        }
        s.broadcastLocked(s.render(ev))
    }
}

func (s *Service) broadcastLocked(payload []byte) {
    for sub := range s.subs {
        select {
        case sub.ch <- payload:
        default:
            // drop slow subscriber
            sub.close()
            delete(s.subs, sub)
        }
    }
}

// Subscribe registers a subscriber. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context) (<-chan []byte, func()) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sub := &subscriber{ch: make(chan []byte, 16)}
    s.subs[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            delete(s.subs, sub)
            sub.close()
            s.mu.Unlock()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub
}
