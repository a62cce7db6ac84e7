// Package terminal is a line-oriented front end for playing from a shell.
package terminal

import (
    "bufio"
    "context"
    "errors"
    "fmt"
    "io"
    "strconv"
    "strings"

    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/domain"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
)

const help = "Commands: 0-8 to play, easy|medium|hard, reset, stats, help, quit"

// Run reads commands from in until quit, EOF or ctx is done. A pending read
// does not delay cancellation.
func Run(ctx context.Context, svc *app.Service, in io.Reader, out io.Writer) error {
    lines, scanErr := scanLines(ctx, in)
    fmt.Fprintln(out, "You are O, the computer is X.", help)
    printBoard(out, svc.State())
    for {
        fmt.Fprint(out, "> ")
        if ctx.Err() != nil {
            return ctx.Err()
        }
        var text string
        select {
        case <-ctx.Done():
            fmt.Fprintln(out)
            return ctx.Err()
        case l, ok := <-lines:
            if !ok {
                fmt.Fprintln(out)
                return <-scanErr
            }
            text = l
        }
        line := strings.ToLower(strings.TrimSpace(text))
        switch line {
        case "":
            continue
        case "quit", "exit":
            return nil
        case "help":
            fmt.Fprintln(out, help)
        case "reset":
            svc.Reset()
            printBoard(out, svc.State())
        case "stats":
            printStats(out, svc.Stats())
        default:
            if d, err := engine.ParseDifficulty(line); err == nil {
                svc.SetDifficulty(d)
                fmt.Fprintf(out, "Difficulty: %s\n", d)
                continue
            }
            pos, err := strconv.Atoi(line)
            if err != nil {
                fmt.Fprintln(out, "Unknown command.", help)
                continue
            }
            play(out, svc, pos)
        }
    }
}

// scanLines feeds lines from in until EOF, a read error or ctx is done.
// The error channel always receives exactly one value once lines is closed.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
    lines := make(chan string)
    errc := make(chan error, 1)
    go func() {
        defer close(lines)
        sc := bufio.NewScanner(in)
        for sc.Scan() {
            select {
            case lines <- sc.Text():
            case <-ctx.Done():
                errc <- ctx.Err()
                return
            }
        }
        errc <- sc.Err()
    }()
    return lines, errc
}

func play(out io.Writer, svc *app.Service, pos int) {
    before := svc.State().Board
    res, err := svc.Move(pos)
    switch {
    case errors.Is(err, domain.ErrOutOfBounds):
        fmt.Fprintln(out, "Out of bounds: pick a cell from 0 to 8.")
        return
    case err != nil:
        fmt.Fprintln(out, "Invalid move:", err)
        return
    case res.HumanMove < 0 && before[pos] != domain.Empty:
        fmt.Fprintln(out, "Cell is occupied.")
        return
    }
    if res.ComputerMove >= 0 {
        fmt.Fprintf(out, "Computer plays %d\n", res.ComputerMove)
    }
    if !res.Outcome.Terminal() {
        printBoard(out, svc.State())
        return
    }
    printCells(out, res.Board)
    switch res.Outcome {
    case app.HumanWin:
        fmt.Fprintln(out, "You won!")
    case app.ComputerWin:
        fmt.Fprintln(out, "You lost!")
    case app.Tie:
        fmt.Fprintln(out, "It's a tie!")
    }
    printStats(out, svc.Stats())
    fmt.Fprintln(out, "New game.")
    printBoard(out, svc.State())
}

func printBoard(out io.Writer, st app.Snapshot) {
    fmt.Fprintf(out, "Difficulty: %s\n", st.Difficulty)
    printCells(out, st.Board)
}

// printCells shows marks, or the cell index where a cell is empty.
func printCells(out io.Writer, b domain.Board) {
    for r := 0; r < 3; r++ {
        cells := make([]string, 3)
        for c := 0; c < 3; c++ {
            i := r*3 + c
            if b[i] == domain.Empty {
                cells[c] = strconv.Itoa(i)
            } else {
                cells[c] = b[i].String()
            }
        }
        fmt.Fprintf(out, " %s\n", strings.Join(cells, " | "))
        if r < 2 {
            fmt.Fprintln(out, "---+---+---")
        }
    }
}

func printStats(out io.Writer, s app.Stats) {
    fmt.Fprintf(out, "Total Games: %d\n", s.Total)
    fmt.Fprintf(out, "Player Wins: %d  Win Rate: %.2f%%\n", s.HumanWins, s.HumanWinRate())
    fmt.Fprintf(out, "Computer Wins: %d  Win Rate: %.2f%%\n", s.ComputerWins, s.ComputerWinRate())
    fmt.Fprintf(out, "Ties: %d  Tie Rate: %.2f%%\n", s.Ties, s.TieRate())
}
