package riddle

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/japaniel/sortrid/pkg/dictionary"
)

// MergeProblem is an N-word sorting riddle: the letters of N independently
// drawn words sorted together. Any N pool words that rebuild the same letters
// are accepted, so SampleAnswers is one solution among possibly many.
type MergeProblem struct {
	text    string
	samples []string
	idx     *Index
}

// NewMergeProblem samples n problem keys independently, uniformly and with
// replacement.
func NewMergeProblem(idx *Index, rng *rand.Rand, n int) (*MergeProblem, error) {
	if n < 2 {
		return nil, fmt.Errorf("riddle: merge arity must be at least 2, got %d", n)
	}
	if idx.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	keys := make([]string, n)
	samples := make([]string, n)
	for i := range keys {
		keys[i] = idx.problemKeys[rng.IntN(idx.Len())]
		answers := idx.Answers(keys[i])
		samples[i] = answers[rng.IntN(len(answers))]
	}
	return MergeProblemFor(idx, keys, samples), nil
}

// MergeProblemFor builds the riddle for specific keys and sample answers.
func MergeProblemFor(idx *Index, keys, samples []string) *MergeProblem {
	// Concatenated sorted fragments are not sorted as a whole; resort.
	return &MergeProblem{
		text:    dictionary.SortKey(strings.Join(keys, "")),
		samples: slices.Clone(samples),
		idx:     idx,
	}
}

// Text is the merged sorted key shown to the player.
func (p *MergeProblem) Text() string { return p.text }

// Arity is the number of words the answer must have.
func (p *MergeProblem) Arity() int { return len(p.samples) }

// SampleAnswers returns the words the riddle was drawn from.
func (p *MergeProblem) SampleAnswers() []string { return slices.Clone(p.samples) }

// Judge accepts any Arity() pool words whose letters sort to Text().
func (p *MergeProblem) Judge(words []string) bool {
	if len(words) != p.Arity() {
		return false
	}
	if dictionary.SortKey(strings.Join(words, "")) != p.text {
		return false
	}
	for _, w := range words {
		if !p.idx.InPool(w) {
			return false
		}
	}
	return true
}

// Hint returns the first n characters of each sample answer, unpadded.
// n must be shorter than the shortest sample answer.
func (p *MergeProblem) Hint(n int) ([]string, error) {
	shortest := dictionary.RuneLen(p.samples[0])
	for _, w := range p.samples[1:] {
		shortest = min(shortest, dictionary.RuneLen(w))
	}
	if n <= 0 || n >= shortest {
		return nil, &RangeError{N: n, Limit: shortest}
	}
	hints := make([]string, 0, len(p.samples))
	for _, w := range p.samples {
		hints = append(hints, prefix(w, n))
	}
	return hints, nil
}
