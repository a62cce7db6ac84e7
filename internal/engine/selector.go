package engine

import (
    "errors"
    "time"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/rs/zerolog/log"
    "golang.org/x/exp/rand"
)

// DefaultDepth is the search depth used below the computer's candidate move.
const DefaultDepth = 5

// ErrNoMoves is returned when a move is requested on a full board.
var ErrNoMoves = errors.New("no empty cell to move to")

// weights rates cells by static desirability: corners 3, center 5, edges 1.
var weights = [domain.Size]int{
    3, 1, 3,
    1, 5, 1,
    3, 1, 3,
}

// Weight returns the static desirability of a cell.
func Weight(pos int) int { return weights[pos] }

// Decision describes how a computer move was chosen.
type Decision struct {
    Move       int
    Difficulty Difficulty
    // Eval is the best search evaluation; zero when no search ran.
    Eval int
    // WeightCandidates are the empty cells of maximal static weight (Medium only).
    // They are advisory: the move is drawn from SearchCandidates.
    WeightCandidates []int
    SearchCandidates []int
    Nodes            int
}

type Option func(s *Selector)

// WithDepth overrides the search depth.
func WithDepth(depth int) Option {
    return func(s *Selector) {
        if depth > 0 {
            s.depth = depth
        }
    }
}

// WithSeed seeds the random source used by Easy and Medium.
func WithSeed(seed uint64) Option {
    return func(s *Selector) {
        s.rng = rand.New(rand.NewSource(seed))
    }
}

// Selector picks the computer's (X) move for a difficulty.
type Selector struct {
    depth int
    rng   *rand.Rand
}

// NewSelector returns a selector searching DefaultDepth, seeded from the clock.
func NewSelector(opts ...Option) *Selector {
    s := &Selector{
        depth: DefaultDepth,
        rng:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// Depth returns the configured search depth.
func (s *Selector) Depth() int { return s.depth }

// Choose returns an empty cell for X to play. b is explored in place and
// restored before Choose returns.
func (s *Selector) Choose(b *domain.Board, d Difficulty) (Decision, error) {
    empties := b.Empties()
    if len(empties) == 0 {
        return Decision{}, ErrNoMoves
    }

    var dec Decision
    switch d {
    case Easy:
        dec = Decision{Move: empties[s.rng.Intn(len(empties))]}
    case Medium:
        dec = s.medium(b, empties)
    case Hard:
        dec = s.hard(b, empties)
    default:
        return Decision{}, ErrUnknownDifficulty
    }
    dec.Difficulty = d

    log.Debug().
        Str("difficulty", d.String()).
        Int("move", dec.Move).
        Int("eval", dec.Eval).
        Ints("weight_candidates", dec.WeightCandidates).
        Ints("search_candidates", dec.SearchCandidates).
        Int("nodes", dec.Nodes).
        Msg("computer move selected")
    return dec, nil
}

// medium draws uniformly among the moves with the best search evaluation.
func (s *Selector) medium(b *domain.Board, empties []int) Decision {
    dec := Decision{WeightCandidates: weightCandidates(empties)}

    sr := NewSearcher(b)
    best := NegInf
    var moves []int
    for _, pos := range empties {
        eval := sr.with(pos, domain.X, func() int {
            return sr.Search(s.depth, NegInf, PosInf, false)
        })
        switch {
        case eval > best:
            best = eval
            moves = []int{pos}
        case eval == best:
            moves = append(moves, pos)
        }
    }

    dec.Move = moves[s.rng.Intn(len(moves))]
    dec.Eval = best
    dec.SearchCandidates = moves
    dec.Nodes = sr.Nodes()
    return dec
}

// hard keeps the first move with the strictly best evaluation.
func (s *Selector) hard(b *domain.Board, empties []int) Decision {
    sr := NewSearcher(b)
    best, move := NegInf, -1
    alpha, beta := NegInf, PosInf
    for _, pos := range empties {
        eval := sr.with(pos, domain.X, func() int {
            return sr.Search(s.depth, alpha, beta, false)
        })
        if eval > best {
            best, move = eval, pos
            alpha = max(alpha, eval)
            if beta <= alpha {
                break
            }
        }
    }
    return Decision{
        Move:             move,
        Eval:             best,
        SearchCandidates: []int{move},
        Nodes:            sr.Nodes(),
    }
}

func weightCandidates(empties []int) []int {
    top := 0
    var out []int
    for _, pos := range empties {
        w := Weight(pos)
        switch {
        case w > top:
            top = w
            out = []int{pos}
        case w == top:
            out = append(out, pos)
        }
    }
    return out
}
