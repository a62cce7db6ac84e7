package app

import (
    "errors"
    "fmt"

    "github.com/google/uuid"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
    "github.com/rs/zerolog/log"
)

// Marks are fixed: the computer plays X, the human plays O and moves first.
const (
    ComputerMark = domain.X
    HumanMark    = domain.O
)

// State is the controller's position in the turn cycle.
type State uint8

const (
    AwaitingHumanMove State = iota
    ComputerResponding
    Terminal
)

func (s State) String() string {
    switch s {
    case ComputerResponding:
        return "computer_responding"
    case Terminal:
        return "terminal"
    default:
        return "awaiting_human_move"
    }
}

// Result reports what a human move led to. Board is the position the round
// reached, captured before any restart.
type Result struct {
    Outcome      Outcome
    HumanMove    int
    ComputerMove int
    Board        domain.Board
}

// Session runs rounds of human (O) against computer (X) on one board.
// It is not safe for concurrent use; Service serialises access.
type Session struct {
    board      domain.Board
    difficulty engine.Difficulty
    selector   *engine.Selector
    state      State
    gameID     string
    emit       func(Event)
}

// NewSession returns a session with an empty board. emit may be nil.
func NewSession(sel *engine.Selector, d engine.Difficulty, emit func(Event)) *Session {
    if sel == nil {
        sel = engine.NewSelector()
    }
    if emit == nil {
        emit = func(Event) {}
    }
    return &Session{
        difficulty: d,
        selector:   sel,
        gameID:     uuid.NewString(),
        emit:       emit,
    }
}

// Board returns a copy of the current board.
func (s *Session) Board() domain.Board { return s.board.Snapshot() }

// Difficulty returns the level used for the next computer move.
func (s *Session) Difficulty() engine.Difficulty { return s.difficulty }

// State returns the controller state.
func (s *Session) State() State { return s.state }

// GameID identifies the current round.
func (s *Session) GameID() string { return s.gameID }

// SetDifficulty changes the level read at the next computer move.
func (s *Session) SetDifficulty(d engine.Difficulty) {
    s.difficulty = d
    s.emit(Event{
        Kind:       DifficultyChanged,
        GameID:     s.gameID,
        Position:   -1,
        Difficulty: d.String(),
        Board:      boardStrings(s.board),
    })
}

// Reset empties the board and starts a new round.
func (s *Session) Reset() {
    s.board.Reset()
    s.state = AwaitingHumanMove
    s.gameID = uuid.NewString()
    s.emit(Event{Kind: BoardReset, GameID: s.gameID, Position: -1})
}

// HumanMove plays O at pos and, unless that ends the round, answers with the
// computer's move. A move on an occupied cell is ignored. A finished round is
// reported and the board is reset before HumanMove returns.
func (s *Session) HumanMove(pos int) (Result, error) {
    res := Result{Outcome: InProgress, HumanMove: -1, ComputerMove: -1}
    if !domain.Valid(pos) {
        res.Board = s.Board()
        return res, fmt.Errorf("human move %d: %w", pos, domain.ErrOutOfBounds)
    }
    if err := s.board.Place(pos, HumanMark); err != nil {
        if errors.Is(err, domain.ErrOccupied) {
            log.Debug().Int("position", pos).Msg("ignoring move on occupied cell")
            res.Board = s.Board()
            return res, nil
        }
        return res, err
    }
    res.HumanMove = pos
    s.applied(pos, HumanMark)

    switch {
    case s.board.HasWon(HumanMark):
        res.Outcome = HumanWin
    case s.board.IsFull():
        res.Outcome = Tie
    }
    if res.Outcome.Terminal() {
        return s.finish(res), nil
    }

    s.state = ComputerResponding
    dec, err := s.selector.Choose(&s.board, s.difficulty)
    if err != nil {
        // terminal checks above guarantee an empty cell
        panic(fmt.Sprintf("app: computer move on %v: %v", s.board, err))
    }
    if err := s.board.Place(dec.Move, ComputerMark); err != nil {
        panic(fmt.Sprintf("app: computer move %d: %v", dec.Move, err))
    }
    res.ComputerMove = dec.Move
    s.applied(dec.Move, ComputerMark)

    switch {
    case s.board.HasWon(ComputerMark):
        res.Outcome = ComputerWin
    case s.board.IsTie():
        res.Outcome = Tie
    }
    if res.Outcome.Terminal() {
        return s.finish(res), nil
    }
    s.state = AwaitingHumanMove
    res.Board = s.Board()
    return res, nil
}

func (s *Session) applied(pos int, mark domain.Cell) {
    log.Debug().
        Str("game_id", s.gameID).
        Int("position", pos).
        Str("mark", mark.String()).
        Msg("move applied")
    s.emit(Event{
        Kind:     MoveApplied,
        GameID:   s.gameID,
        Position: pos,
        Mark:     mark.String(),
        Board:    boardStrings(s.board),
    })
}

func (s *Session) finish(res Result) Result {
    s.state = Terminal
    res.Board = s.Board()
    log.Info().
        Str("game_id", s.gameID).
        Str("outcome", res.Outcome.String()).
        Str("difficulty", s.difficulty.String()).
        Msg("game ended")
    s.emit(Event{
        Kind:     GameEnded,
        GameID:   s.gameID,
        Position: -1,
        Outcome:  res.Outcome,
        Board:    boardStrings(s.board),
    })
    s.Reset()
    return res
}
