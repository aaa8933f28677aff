package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/morph"
	"github.com/rs/zerolog"
)

// Tokenizer is the part of morph.Analyzer the harvester uses.
type Tokenizer interface {
	Analyze(text string) ([]morph.Token, error)
}

// KeepFunc turns a token into a dictionary entry, or rejects it.
type KeepFunc func(tok morph.Token) (dictionary.Entry, bool)

// Harvester analyzes sentences concurrently and collects dictionary entries
// in the order their words first appear.
type Harvester struct {
	Analyzer Tokenizer
	Workers  int
	Logger   zerolog.Logger
	// OnProgress is called with the number of analyzed sentences and the total.
	OnProgress func(current, total int)

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewHarvester creates a Harvester with four workers.
func NewHarvester(a Tokenizer, logger zerolog.Logger) *Harvester {
	return &Harvester{
		Analyzer: a,
		Workers:  4,
		Logger:   logger,
	}
}

// Harvest analyzes every sentence and returns the distinct entries keep
// accepts, ordered by first occurrence.
func (h *Harvester) Harvest(ctx context.Context, sentences []string, keep KeepFunc) ([]dictionary.Entry, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	var wp WorkerPoolInterface
	if h.PoolFactory != nil {
		wp = h.PoolFactory(h.Workers, h.Workers*2)
	} else {
		wp = NewWorkerPool(h.Workers, h.Workers*2)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wp.Start(ctx)

	// Each job writes only its own slot, so results need no lock.
	results := make([][]morph.Token, len(sentences))
	var (
		errOnce  sync.Once
		firstErr error
		doneMu   sync.Mutex
		done     int
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	var submitErr error
	for i, s := range sentences {
		err := wp.SubmitCtx(ctx, func(ctx context.Context) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			tokens, err := h.Analyzer.Analyze(s)
			if err != nil {
				fail(fmt.Errorf("analyze sentence %d: %w", i, err))
				return err
			}
			results[i] = tokens
			if h.OnProgress != nil {
				doneMu.Lock()
				done++
				h.OnProgress(done, len(sentences))
				doneMu.Unlock()
			}
			return nil
		})
		if err != nil {
			submitErr = err
			break
		}
	}
	// Close waits for queued jobs, so results are complete afterwards.
	wp.Close()

	if firstErr != nil {
		return nil, firstErr
	}
	if submitErr != nil {
		return nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[dictionary.Entry]struct{})
	var entries []dictionary.Entry
	for _, tokens := range results {
		for _, tok := range tokens {
			e, ok := keep(tok)
			if !ok {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			entries = append(entries, e)
		}
	}
	h.Logger.Debug().Int("sentences", len(sentences)).Int("entries", len(entries)).Msg("harvest complete")
	return entries, nil
}
