package app

import (
    "errors"
    "testing"

    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
    "github.com/stretchr/testify/require"
)

const (
    x = domain.X
    o = domain.O
    e = domain.Empty
)

type recorder struct{ events []Event }

func (r *recorder) emit(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []EventKind {
    out := make([]EventKind, 0, len(r.events))
    for _, ev := range r.events {
        out = append(out, ev.Kind)
    }
    return out
}

func newTestSession(d engine.Difficulty) (*Session, *recorder) {
    rec := &recorder{}
    return NewSession(engine.NewSelector(engine.WithSeed(1)), d, rec.emit), rec
}

func TestHumanMoveThenComputerAnswers(t *testing.T) {
    s, rec := newTestSession(engine.Hard)
    res, err := s.HumanMove(4)
    require.NoError(t, err)
    require.Equal(t, InProgress, res.Outcome)
    require.Equal(t, 4, res.HumanMove)
    require.Contains(t, []int{0, 2, 6, 8}, res.ComputerMove, "center opening must be answered in a corner")

    b := s.Board()
    require.Equal(t, o, b[4])
    require.Equal(t, x, b[res.ComputerMove])
    require.Equal(t, AwaitingHumanMove, s.State())

    require.Equal(t, []EventKind{MoveApplied, MoveApplied}, rec.kinds())
    require.Equal(t, "O", rec.events[0].Mark)
    require.Equal(t, 4, rec.events[0].Position)
    require.Equal(t, "X", rec.events[1].Mark)
    require.Equal(t, res.ComputerMove, rec.events[1].Position)
}

func TestHumanWinSkipsComputer(t *testing.T) {
    s, rec := newTestSession(engine.Hard)
    s.board = domain.Board{
        o, o, e,
        x, x, e,
        e, e, e,
    }
    gameID := s.GameID()

    res, err := s.HumanMove(2)
    require.NoError(t, err)
    require.Equal(t, HumanWin, res.Outcome)
    require.Equal(t, -1, res.ComputerMove)
    require.True(t, res.Board.HasWon(o))
    require.Equal(t, x, res.Board[3])

    require.Equal(t, []EventKind{MoveApplied, GameEnded, BoardReset}, rec.kinds())
    require.Equal(t, HumanWin, rec.events[1].Outcome)
    require.Equal(t, gameID, rec.events[1].GameID)
    require.NotEqual(t, gameID, s.GameID(), "a new round gets a new id")
    require.Equal(t, domain.Board{}, s.Board())
    require.Equal(t, AwaitingHumanMove, s.State())
}

func TestFullBoardWithoutLineIsTie(t *testing.T) {
    t.Run("human fills the last cell", func(t *testing.T) {
        s, rec := newTestSession(engine.Hard)
        s.board = domain.Board{
            x, o, x,
            x, o, o,
            o, x, e,
        }
        res, err := s.HumanMove(8)
        require.NoError(t, err)
        require.Equal(t, Tie, res.Outcome)
        require.Equal(t, -1, res.ComputerMove)
        require.True(t, res.Board.IsTie())
        require.Equal(t, []EventKind{MoveApplied, GameEnded, BoardReset}, rec.kinds())
    })

    t.Run("computer fills the last cell", func(t *testing.T) {
        s, _ := newTestSession(engine.Easy)
        s.board = domain.Board{
            x, o, x,
            x, o, o,
            e, e, o,
        }
        res, err := s.HumanMove(6)
        require.NoError(t, err)
        require.Equal(t, 7, res.ComputerMove)
        require.Equal(t, Tie, res.Outcome)
        require.Equal(t, domain.Board{}, s.Board())
    })
}

func TestComputerWin(t *testing.T) {
    s, rec := newTestSession(engine.Hard)
    s.board = domain.Board{
        o, o, e,
        x, x, e,
        o, e, e,
    }
    res, err := s.HumanMove(8)
    require.NoError(t, err)
    require.Equal(t, ComputerWin, res.Outcome)
    require.Equal(t, 5, res.ComputerMove)
    require.True(t, res.Board.HasWon(x))
    require.Equal(t, []EventKind{MoveApplied, MoveApplied, GameEnded, BoardReset}, rec.kinds())
}

func TestOccupiedCellIsIgnored(t *testing.T) {
    s, rec := newTestSession(engine.Easy)
    _, err := s.HumanMove(0)
    require.NoError(t, err)
    before := s.Board()
    rec.events = nil

    res, err := s.HumanMove(0)
    require.NoError(t, err)
    require.Equal(t, InProgress, res.Outcome)
    require.Equal(t, -1, res.HumanMove)
    require.Equal(t, before, s.Board())
    require.Empty(t, rec.events)
}

func TestOutOfBoundsFailsFast(t *testing.T) {
    s, rec := newTestSession(engine.Easy)
    for _, pos := range []int{-1, 9} {
        _, err := s.HumanMove(pos)
        require.True(t, errors.Is(err, domain.ErrOutOfBounds), "pos %d: %v", pos, err)
    }
    require.Equal(t, domain.Board{}, s.Board())
    require.Empty(t, rec.events)
}

func TestResetIsIdempotent(t *testing.T) {
    s, rec := newTestSession(engine.Medium)
    _, _ = s.HumanMove(0)
    _, _ = s.HumanMove(8)
    s.Reset()
    require.Equal(t, domain.Board{}, s.Board())
    s.Reset()
    require.Equal(t, domain.Board{}, s.Board())
    require.Equal(t, AwaitingHumanMove, s.State())
    require.Equal(t, BoardReset, rec.events[len(rec.events)-1].Kind)
}

func TestSetDifficultyEmits(t *testing.T) {
    s, rec := newTestSession(engine.Medium)
    s.SetDifficulty(engine.Hard)
    require.Equal(t, engine.Hard, s.Difficulty())
    require.Equal(t, []EventKind{DifficultyChanged}, rec.kinds())
    require.Equal(t, "hard", rec.events[0].Difficulty)
}

// optimalHumanMove returns the first move minimising X's full-depth value.
func optimalHumanMove(b domain.Board) int {
    best, move := engine.PosInf, -1
    for _, pos := range b.Empties() {
        _ = b.Place(pos, o)
        v := engine.Search(&b, domain.Size, engine.NegInf, engine.PosInf, true)
        _ = b.Clear(pos)
        if v < best {
            best, move = v, pos
        }
    }
    return move
}

func TestHardNeverLosesToOptimalHuman(t *testing.T) {
    for opening := 0; opening < domain.Size; opening++ {
        s, _ := newTestSession(engine.Hard)
        res, err := s.HumanMove(opening)
        require.NoError(t, err)
        for turns := 0; !res.Outcome.Terminal(); turns++ {
            require.Less(t, turns, 5, "opening %d did not finish", opening)
            res, err = s.HumanMove(optimalHumanMove(s.Board()))
            require.NoError(t, err)
        }
        require.NotEqual(t, HumanWin, res.Outcome, "opening %d lost: %v", opening, res.Board)
    }
}

func TestEveryDifficultyFinishesRounds(t *testing.T) {
    for _, d := range engine.Difficulties() {
        s, _ := newTestSession(d)
        var res Result
        for turns := 0; turns < 5; turns++ {
            var err error
            res, err = s.HumanMove(s.Board().Empties()[0])
            require.NoError(t, err)
            if res.Outcome.Terminal() {
                break
            }
        }
        require.True(t, res.Outcome.Terminal(), "difficulty %v", d)
        require.Equal(t, domain.Board{}, s.Board())
    }
}
