package app

import (
    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Outcome classifies a round after a move.
type Outcome uint8

const (
    InProgress Outcome = iota
    HumanWin
    ComputerWin
    Tie
)

func (o Outcome) String() string {
    switch o {
    case HumanWin:
        return "human_win"
    case ComputerWin:
        return "computer_win"
    case Tie:
        return "tie"
    default:
        return "in_progress"
    }
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Terminal reports whether the outcome ends the round.
func (o Outcome) Terminal() bool { return o != InProgress }

// EventKind names an event emitted by a Session.
type EventKind string

const (
    MoveApplied       EventKind = "move_applied"
    GameEnded         EventKind = "game_ended"
    BoardReset        EventKind = "board_reset"
    DifficultyChanged EventKind = "difficulty_changed"
)

// Event is what a Session reports to presentation layers.
// Position is -1 for events that do not concern a cell.
type Event struct {
    Kind       EventKind `json:"kind"`
    GameID     string    `json:"game_id"`
    Position   int       `json:"position"`
    Mark       string    `json:"mark,omitempty"`
    Outcome    Outcome   `json:"outcome,omitempty"`
    Difficulty string    `json:"difficulty,omitempty"`
    Board      [9]string `json:"board"`
}

func boardStrings(b domain.Board) [9]string {
    var out [9]string
    for i, c := range b {
        if c != domain.Empty {
            out[i] = c.String()
        }
    }
    return out
}
