package engine

import (
    "fmt"
    "math"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
)

// Search evaluations, from X's point of view.
const (
    Loss = -1
    Tie  = 0
    Win  = 1
)

// Window bounds for a full alpha-beta search.
const (
    NegInf = math.MinInt32
    PosInf = math.MaxInt32
)

// Searcher runs minimax with alpha-beta pruning over a board it borrows.
// Every exploratory placement is retracted before the call that made it returns.
type Searcher struct {
    board *domain.Board
    nodes int
}

// NewSearcher returns a searcher exploring b.
func NewSearcher(b *domain.Board) *Searcher {
    return &Searcher{board: b}
}

// Nodes returns the number of positions evaluated so far.
func (s *Searcher) Nodes() int { return s.nodes }

// Search returns the position value with X maximizing and O minimizing.
// Positions still open when depth runs out score as a tie.
func (s *Searcher) Search(depth, alpha, beta int, maximizing bool) int {
    s.nodes++
    if depth == 0 || s.board.Terminal() {
        return score(s.board)
    }

    if maximizing {
        best := NegInf
        for pos := 0; pos < domain.Size; pos++ {
            if s.board[pos] != domain.Empty {
                continue
            }
            eval := s.with(pos, domain.X, func() int {
                return s.Search(depth-1, alpha, beta, false)
            })
            best = max(best, eval)
            alpha = max(alpha, eval)
            if beta <= alpha {
                break
            }
        }
        return best
    }

    best := PosInf
    for pos := 0; pos < domain.Size; pos++ {
        if s.board[pos] != domain.Empty {
            continue
        }
        eval := s.with(pos, domain.O, func() int {
            return s.Search(depth-1, alpha, beta, true)
        })
        best = min(best, eval)
        beta = min(beta, eval)
        if beta <= alpha {
            break
        }
    }
    return best
}

// with places mark at pos for the duration of fn.
func (s *Searcher) with(pos int, mark domain.Cell, fn func() int) int {
    if err := s.board.Place(pos, mark); err != nil {
        panic(fmt.Sprintf("engine: exploratory move at %d: %v", pos, err))
    }
    defer s.board.Clear(pos)
    return fn()
}

// Search evaluates b without changing it.
func Search(b *domain.Board, depth, alpha, beta int, maximizing bool) int {
    return NewSearcher(b).Search(depth, alpha, beta, maximizing)
}

func score(b *domain.Board) int {
    switch {
    case b.HasWon(domain.X):
        return Win
    case b.HasWon(domain.O):
        return Loss
    default:
        return Tie
    }
}
