package app

// Stats counts finished rounds. It is fed from game_ended events only.
type Stats struct {
    Total        int `json:"total"`
    HumanWins    int `json:"human_wins"`
    ComputerWins int `json:"computer_wins"`
    Ties         int `json:"ties"`
}

// Record counts a terminal outcome. InProgress is ignored.
func (s *Stats) Record(o Outcome) {
    switch o {
    case HumanWin:
        s.HumanWins++
    case ComputerWin:
        s.ComputerWins++
    case Tie:
        s.Ties++
    default:
        return
    }
    s.Total++
}

func (s Stats) rate(n int) float64 {
    if s.Total == 0 {
        return 0
    }
    return float64(n) / float64(s.Total) * 100
}

// HumanWinRate is the percentage of rounds the human won.
func (s Stats) HumanWinRate() float64 { return s.rate(s.HumanWins) }

// ComputerWinRate is the percentage of rounds the computer won.
func (s Stats) ComputerWinRate() float64 { return s.rate(s.ComputerWins) }

// TieRate is the percentage of tied rounds.
func (s Stats) TieRate() float64 { return s.rate(s.Ties) }
