package engine

import (
    "errors"
    "fmt"
    "strings"
)

// Difficulty selects the computer's move policy.
type Difficulty uint8

const (
    Easy Difficulty = iota
    Medium
    Hard
)

// ErrUnknownDifficulty is returned when a difficulty name is not recognised.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

func (d Difficulty) String() string {
    switch d {
    case Easy:
        return "easy"
    case Medium:
        return "medium"
    case Hard:
        return "hard"
    default:
        return fmt.Sprintf("difficulty(%d)", uint8(d))
    }
}

// ParseDifficulty accepts easy, medium or hard in any case.
func ParseDifficulty(s string) (Difficulty, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "easy":
        return Easy, nil
    case "medium":
        return Medium, nil
    case "hard":
        return Hard, nil
    default:
        return Medium, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
    }
}

// Difficulties lists every level in increasing strength.
func Difficulties() []Difficulty { return []Difficulty{Easy, Medium, Hard} }
