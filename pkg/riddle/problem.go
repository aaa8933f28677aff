package riddle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/japaniel/sortrid/pkg/dictionary"
)

// MaskRune pads single-word hints to the puzzle length.
const MaskRune = '*'

// ErrEmptyIndex is returned when there is nothing to ask.
var ErrEmptyIndex = errors.New("riddle: no problem keys in index")

// RangeError reports a hint length outside (0, Limit).
type RangeError struct {
	N     int
	Limit int
}

func (e *RangeError) Error() string {
	if e.Limit <= 1 {
		return fmt.Sprintf("hint length %d out of range: no hint available for this problem", e.N)
	}
	return fmt.Sprintf("hint length %d out of range: must be between 1 and %d", e.N, e.Limit-1)
}

// Problem is a single-word sorting riddle.
type Problem struct {
	text    string
	answers []string
}

// NewProblem samples one problem key uniformly, with replacement.
func NewProblem(idx *Index, rng *rand.Rand) (*Problem, error) {
	if idx.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	key := idx.problemKeys[rng.IntN(idx.Len())]
	return ProblemFor(idx, key), nil
}

// ProblemFor builds the riddle for a specific key.
func ProblemFor(idx *Index, key string) *Problem {
	return &Problem{text: key, answers: idx.Answers(key)}
}

// Text is the sorted key shown to the player.
func (p *Problem) Text() string { return p.text }

// Answers returns every accepted answer, sorted.
func (p *Problem) Answers() []string { return slices.Clone(p.answers) }

// Judge reports whether candidate is an answer. When it is, alternatives
// holds the other answers.
func (p *Problem) Judge(candidate string) (correct bool, alternatives []string) {
	if !slices.Contains(p.answers, candidate) {
		return false, nil
	}
	alternatives = make([]string, 0, len(p.answers)-1)
	for _, a := range p.answers {
		if a != candidate {
			alternatives = append(alternatives, a)
		}
	}
	return true, alternatives
}

// Hint reveals the first n characters of every answer, masking the rest.
// n must leave at least two characters hidden.
func (p *Problem) Hint(n int) ([]string, error) {
	length := dictionary.RuneLen(p.text)
	if n <= 0 || n >= length-1 {
		return nil, &RangeError{N: n, Limit: length - 1}
	}
	mask := strings.Repeat(string(MaskRune), length-n)
	hints := make([]string, 0, len(p.answers))
	for _, a := range p.answers {
		hints = append(hints, prefix(a, n)+mask)
	}
	return hints, nil
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n])
}
