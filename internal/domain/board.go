package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

// String returns the mark symbol, or a blank for an empty cell.
func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return " "
    }
}

// Opponent returns the other mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
    switch c {
    case X:
        return O
    case O:
        return X
    default:
        return Empty
    }
}

// Size is the number of cells on the board.
const Size = 9

// Board is a fixed 3x3 board stored row-major.
type Board [Size]Cell

// Errors returned by board operations.
var (
    ErrOutOfBounds = errors.New("out of bounds")
    ErrOccupied    = errors.New("cell occupied")
)

// Valid reports whether pos addresses a cell.
func Valid(pos int) bool { return pos >= 0 && pos < Size }

// Place sets an empty cell to mark.
func (b *Board) Place(pos int, mark Cell) error {
    if !Valid(pos) {
        return ErrOutOfBounds
    }
    if b[pos] != Empty {
        return ErrOccupied
    }
    b[pos] = mark
    return nil
}

// Clear resets a cell to Empty. Used to retract exploratory moves.
func (b *Board) Clear(pos int) error {
    if !Valid(pos) {
        return ErrOutOfBounds
    }
    b[pos] = Empty
    return nil
}

// IsFull is true iff no cell is Empty.
func (b Board) IsFull() bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}

// Empties lists the empty cell indices in ascending order.
func (b Board) Empties() []int {
    out := make([]int, 0, Size)
    for i, c := range b {
        if c == Empty {
            out = append(out, i)
        }
    }
    return out
}

// Snapshot returns a copy of the cells.
func (b Board) Snapshot() Board { return b }

// Reset empties every cell.
func (b *Board) Reset() { *b = Board{} }

// WinningLines are the 8 index triples that decide a game.
var WinningLines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

// HasWon reports whether some winning line is fully owned by mark.
func (b Board) HasWon(mark Cell) bool {
    if mark == Empty {
        return false
    }
    for _, ln := range WinningLines {
        if b[ln[0]] == mark && b[ln[1]] == mark && b[ln[2]] == mark {
            return true
        }
    }
    return false
}

// IsTie is true iff the board is full and neither mark has won.
func (b Board) IsTie() bool {
    return b.IsFull() && !b.HasWon(X) && !b.HasWon(O)
}

// Terminal reports whether either mark has won or the board is full.
func (b Board) Terminal() bool {
    return b.HasWon(X) || b.HasWon(O) || b.IsFull()
}
