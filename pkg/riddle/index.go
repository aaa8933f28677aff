// Package riddle builds the anagram index of a preset and generates sorting
// riddles from it.
package riddle

import (
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/preset"
	"github.com/rs/zerolog"
)

// Index maps sorted keys to the words they unscramble to. It is read-only
// once Build returns.
type Index struct {
	// problemKeys is sorted and duplicate-free so sampling is uniform over
	// distinct keys and reproducible for a fixed seed.
	problemKeys []string
	answers     map[string]map[string]struct{}
	pool        map[string]struct{}
}

// Build indexes cfg. Main dictionaries contribute puzzle keys and answers,
// sub dictionaries contribute answers only. Both are filtered by the same
// word-length bounds so no out-of-range word is ever revealed.
func Build(cfg *preset.Config, logger zerolog.Logger) *Index {
	idx := &Index{
		answers: make(map[string]map[string]struct{}),
		pool:    make(map[string]struct{}),
	}
	keys := make(map[string]struct{})

	inBounds := func(key string) bool {
		n := dictionary.RuneLen(key)
		return cfg.MinWordLen <= n && n <= cfg.MaxWordLen
	}

	for _, d := range cfg.Main {
		var kept int
		for _, e := range d.Entries {
			idx.pool[e.OrigWord] = struct{}{}
			if !inBounds(e.SortedWord) {
				continue
			}
			idx.add(e)
			keys[e.SortedWord] = struct{}{}
			kept++
		}
		logger.Debug().Str("path", d.Path).Int("kept", kept).Int("total", d.Len()).Msg("main dictionary indexed")
	}
	for _, d := range cfg.Sub {
		var kept int
		for _, e := range d.Entries {
			idx.pool[e.OrigWord] = struct{}{}
			if !inBounds(e.SortedWord) {
				continue
			}
			idx.add(e)
			kept++
		}
		logger.Debug().Str("path", d.Path).Int("kept", kept).Int("total", d.Len()).Msg("sub dictionary indexed")
	}

	idx.problemKeys = make([]string, 0, len(keys))
	for k := range keys {
		idx.problemKeys = append(idx.problemKeys, k)
	}
	slices.Sort(idx.problemKeys)

	logger.Info().
		Str("preset", cfg.Name).
		Str("problems", humanize.Comma(int64(len(idx.problemKeys)))).
		Str("keys", humanize.Comma(int64(len(idx.answers)))).
		Str("words", humanize.Comma(int64(len(idx.pool)))).
		Msg("anagram index built")
	return idx
}

func (idx *Index) add(e dictionary.Entry) {
	set, ok := idx.answers[e.SortedWord]
	if !ok {
		set = make(map[string]struct{})
		idx.answers[e.SortedWord] = set
	}
	set[e.OrigWord] = struct{}{}
}

// Len returns the number of distinct problem keys.
func (idx *Index) Len() int { return len(idx.problemKeys) }

// ProblemKeys returns a copy of the puzzle-eligible keys in sorted order.
func (idx *Index) ProblemKeys() []string { return slices.Clone(idx.problemKeys) }

// Answers returns the words key unscrambles to, sorted.
func (idx *Index) Answers(key string) []string {
	set := idx.answers[key]
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Contains reports whether word is an answer for key.
func (idx *Index) Contains(key, word string) bool {
	_, ok := idx.answers[key][word]
	return ok
}

// InPool reports whether word appears in any loaded dictionary.
func (idx *Index) InPool(word string) bool {
	_, ok := idx.pool[word]
	return ok
}
