// Package contest runs an interactive sorting-riddle session.
package contest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/japaniel/sortrid/pkg/riddle"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// State holds the tallies of one session.
type State struct {
	Attempted       int
	CorrectNoHint   int
	CorrectWithHint int
	GivenUp         int
}

// Engine plays rounds of riddles drawn from an index.
type Engine struct {
	Index *riddle.Index
	In    LineReader
	Out   io.Writer
	// Count is the number of rounds to play; zero or less plays until EXIT.
	Count int
	// Arity is the number of words per riddle; one or less asks single words.
	Arity  int
	Rand   *rand.Rand
	Logger zerolog.Logger
}

// NewEngine creates an engine with an unbounded single-word session and a
// randomly seeded generator.
func NewEngine(idx *riddle.Index, in LineReader, out io.Writer, logger zerolog.Logger) *Engine {
	return &Engine{
		Index:  idx,
		In:     in,
		Out:    out,
		Arity:  1,
		Rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Logger: logger,
	}
}

type roundResult int

const (
	roundSolved roundResult = iota
	roundGivenUp
	roundExit
)

// Run plays rounds until Count is reached, EXIT is entered, or input ends.
// The returned State is valid even when err is non-nil.
func (e *Engine) Run(ctx context.Context) (State, error) {
	var st State
	log := e.Logger.With().Str("session", uuid.NewString()).Logger()
	log.Info().Int("count", e.Count).Int("arity", max(e.Arity, 1)).Msg("contest started")

	e.printf("Commands: %s | %s <n> | %s\n", KeywordGiveUp, KeywordHint, KeywordExit)
	for round := 1; e.Count <= 0 || round <= e.Count; round++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		res, err := e.playRound(ctx, round, &st, log)
		if err != nil {
			return st, err
		}
		if res == roundExit {
			log.Info().Int("round", round).Msg("contest aborted")
			break
		}
	}

	log.Info().
		Int("attempted", st.Attempted).
		Int("correct_no_hint", st.CorrectNoHint).
		Int("correct_with_hint", st.CorrectWithHint).
		Int("given_up", st.GivenUp).
		Msg("contest finished")
	return st, nil
}

func (e *Engine) playRound(ctx context.Context, round int, st *State, log zerolog.Logger) (roundResult, error) {
	pz, err := e.newPuzzle()
	if err != nil {
		return roundExit, err
	}
	st.Attempted++
	log.Debug().Int("round", round).Str("problem", pz.Text()).Msg("round started")

	if e.Count > 0 {
		e.printf("\n[%d/%d] %s\n", round, e.Count, pz.Text())
	} else {
		e.printf("\n[%d] %s\n", round, pz.Text())
	}
	if a := pz.Arity(); a > 1 {
		e.printf("Answer %d words separated by one of %s\n", a, strings.Join(AnswerSeparators, " "))
	}

	hintUsed := false
	for {
		if err := ctx.Err(); err != nil {
			return roundExit, err
		}
		line, err := e.In.ReadLine("> ")
		if err == io.EOF {
			return roundExit, nil
		}
		if err != nil {
			return roundExit, fmt.Errorf("read input: %w", err)
		}

		cmd := ParseCommand(norm.NFC.String(line))
		switch cmd.Kind {
		case CmdEmpty:
			continue

		case CmdExit:
			return roundExit, nil

		case CmdGiveUp:
			st.GivenUp++
			e.printf("Answer: %s\n", strings.Join(pz.Reveal(), ", "))
			log.Debug().Int("round", round).Msg("given up")
			return roundGivenUp, nil

		case CmdHint:
			req := ParseHint(cmd.Arg)
			switch req.Status {
			case HintSyntax:
				e.printf("Usage: %s <positive integer>\n", KeywordHint)
				continue
			case HintRange:
				e.printf("Hint length must be a positive integer\n")
				continue
			}
			hints, err := pz.Hint(req.N)
			var rerr *riddle.RangeError
			if errors.As(err, &rerr) {
				e.printf("%v\n", rerr)
				continue
			}
			if err != nil {
				return roundExit, err
			}
			hintUsed = true
			e.printf("Hint: %s\n", strings.Join(hints, ", "))

		case CmdAnswer:
			correct, alternatives, err := pz.Judge(cmd.Arg)
			if errors.Is(err, ErrInputSyntax) {
				e.printf("Enter exactly %d words separated by one of %s\n", pz.Arity(), strings.Join(AnswerSeparators, " "))
				continue
			}
			if !correct {
				e.printf("Wrong answer\n")
				continue
			}
			if hintUsed {
				st.CorrectWithHint++
			} else {
				st.CorrectNoHint++
			}
			e.printf("Correct!\n")
			if len(alternatives) > 0 {
				e.printf("Other answers: %s\n", strings.Join(alternatives, ", "))
			}
			log.Debug().Int("round", round).Bool("hint", hintUsed).Msg("solved")
			return roundSolved, nil
		}
	}
}

func (e *Engine) newPuzzle() (puzzle, error) {
	if e.Arity <= 1 {
		p, err := riddle.NewProblem(e.Index, e.Rand)
		if err != nil {
			return nil, err
		}
		return singlePuzzle{p}, nil
	}
	p, err := riddle.NewMergeProblem(e.Index, e.Rand, e.Arity)
	if err != nil {
		return nil, err
	}
	return mergePuzzle{p}, nil
}

func (e *Engine) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

// WriteSummary prints the session tallies.
func WriteSummary(w io.Writer, st State) error {
	_, err := fmt.Fprintf(w,
		"\n--- Summary ---\n"+
			"Problems:            %s\n"+
			"Correct (no hint):   %s\n"+
			"Correct (with hint): %s\n"+
			"Given up:            %s\n",
		humanize.Comma(int64(st.Attempted)),
		humanize.Comma(int64(st.CorrectNoHint)),
		humanize.Comma(int64(st.CorrectWithHint)),
		humanize.Comma(int64(st.GivenUp)),
	)
	return err
}

// puzzle is the per-round view of a single-word or merge riddle.
type puzzle interface {
	Text() string
	Arity() int
	Hint(n int) ([]string, error)
	// Judge checks a raw answer line. Alternatives are only reported for
	// single-word riddles.
	Judge(line string) (correct bool, alternatives []string, err error)
	// Reveal lists what is shown on give-up.
	Reveal() []string
}

type singlePuzzle struct{ *riddle.Problem }

func (p singlePuzzle) Arity() int { return 1 }

func (p singlePuzzle) Judge(line string) (bool, []string, error) {
	ok, alts := p.Problem.Judge(line)
	return ok, alts, nil
}

// Reveal shows every accepted answer.
func (p singlePuzzle) Reveal() []string { return p.Answers() }

type mergePuzzle struct{ *riddle.MergeProblem }

func (p mergePuzzle) Judge(line string) (bool, []string, error) {
	words, ok := SplitAnswer(line, p.Arity())
	if !ok {
		return false, nil, ErrInputSyntax
	}
	return p.MergeProblem.Judge(words), nil, nil
}

// Reveal shows only the decomposition the riddle was drawn from.
func (p mergePuzzle) Reveal() []string { return p.SampleAnswers() }
