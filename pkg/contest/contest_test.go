package contest

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/preset"
	"github.com/japaniel/sortrid/pkg/riddle"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
)

func testIndex(minLen int, words ...string) *riddle.Index {
	d := &dictionary.Dictionary{Path: "test.csv"}
	for _, w := range words {
		d.Entries = append(d.Entries, dictionary.Entry{OrigWord: w, SortedWord: dictionary.SortKey(w)})
	}
	cfg := &preset.Config{Name: "test", Main: []*dictionary.Dictionary{d}, MinWordLen: minLen, MaxWordLen: 20}
	return riddle.Build(cfg, zerolog.Nop())
}

func runScript(t *testing.T, idx *riddle.Index, count, arity int, script string) (State, string) {
	t.Helper()
	var out bytes.Buffer
	e := NewEngine(idx, NewScanner(strings.NewReader(script)), &out, zerolog.Nop())
	e.Count = count
	e.Arity = arity
	e.Rand = rand.New(rand.NewPCG(1, 1))
	st, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return st, out.String()
}

func TestRunBoundedCountEndsWithoutExit(t *testing.T) {
	idx := testIndex(4, "sale", "seal")
	// The third line must never be read.
	st, out := runScript(t, idx, 2, 1, "sale\nGIVEUP\nseal\n")

	want := State{Attempted: 2, CorrectNoHint: 1, GivenUp: 1}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s\noutput:\n%s", diff, out)
	}
	if !strings.Contains(out, "[1/2] aels") || !strings.Contains(out, "[2/2] aels") {
		t.Errorf("expected both problems to be shown:\n%s", out)
	}
	if !strings.Contains(out, "Other answers: seal") {
		t.Errorf("expected alternatives after a correct answer:\n%s", out)
	}
	if !strings.Contains(out, "Answer: sale, seal") {
		t.Errorf("give-up must reveal every answer:\n%s", out)
	}
}

func TestRunHints(t *testing.T) {
	idx := testIndex(4, "sale", "seal")
	st, out := runScript(t, idx, 1, 1, "HINT\nHINT x\nHINT 0\nHINT 3\nHINT 2\nseal\n")

	want := State{Attempted: 1, CorrectWithHint: 1}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s\noutput:\n%s", diff, out)
	}
	if strings.Count(out, "Usage: HINT") != 2 {
		t.Errorf("expected two syntax errors:\n%s", out)
	}
	if !strings.Contains(out, "must be a positive integer") {
		t.Errorf("expected non-positive hint to be rejected:\n%s", out)
	}
	if !strings.Contains(out, "out of range") {
		t.Errorf("expected HINT 3 on a 4-letter word to be rejected:\n%s", out)
	}
	if !strings.Contains(out, "Hint: sa**, se**") {
		t.Errorf("expected hint output:\n%s", out)
	}
}

func TestRunHintSeparatedByTab(t *testing.T) {
	idx := testIndex(4, "stone", "notes")
	st, out := runScript(t, idx, 1, 1, "HINT\t2\nnotes\n")

	want := State{Attempted: 1, CorrectWithHint: 1}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s\noutput:\n%s", diff, out)
	}
	if strings.Contains(out, "Wrong answer") {
		t.Errorf("tab-separated hint was judged as an answer:\n%s", out)
	}
	if !strings.Contains(out, "Hint: no***, st***") {
		t.Errorf("expected hint output:\n%s", out)
	}
}

func TestRunArityBelowOnePlaysSingleWord(t *testing.T) {
	idx := testIndex(4, "sale", "seal")
	st, out := runScript(t, idx, 1, 0, "seal\n")

	want := State{Attempted: 1, CorrectNoHint: 1}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s\noutput:\n%s", diff, out)
	}
}

func TestRunWrongAnswerThenExit(t *testing.T) {
	idx := testIndex(4, "sale", "seal")
	st, out := runScript(t, idx, 5, 1, "SALE\nEXIT\nsale\n")

	want := State{Attempted: 1}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s\noutput:\n%s", diff, out)
	}
	if !strings.Contains(out, "Wrong answer") {
		t.Errorf("expected wrong answer notice:\n%s", out)
	}
	if strings.Contains(out, "[2/5]") {
		t.Errorf("EXIT must skip the remaining problems:\n%s", out)
	}
}

func TestRunUnboundedEndsOnEOF(t *testing.T) {
	idx := testIndex(4, "stone")
	st, _ := runScript(t, idx, 0, 1, "stone\nstone\n\nstone\n")
	want := State{Attempted: 4, CorrectNoHint: 3}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s", diff)
	}
}

func TestRunMerge(t *testing.T) {
	// One key only, so both draws are "act".
	idx := testIndex(3, "cat")
	st, out := runScript(t, idx, 2, 2, "cat\ncat;cat\ncat、cat\nHINT 1\ncat，cat\n")

	want := State{Attempted: 2, CorrectNoHint: 1, CorrectWithHint: 1}
	if diff := pretty.Diff(st, want); len(diff) > 0 {
		t.Fatalf("state mismatch:\n%s\noutput:\n%s", diff, out)
	}
	if !strings.Contains(out, "aacctt") {
		t.Errorf("expected merged problem text:\n%s", out)
	}
	if strings.Count(out, "Enter exactly 2 words") != 2 {
		t.Errorf("expected two syntax errors:\n%s", out)
	}
	if !strings.Contains(out, "Hint: c, c") {
		t.Errorf("expected merge hint:\n%s", out)
	}
	if strings.Contains(out, "Other answers") {
		t.Errorf("merge riddles report no alternatives:\n%s", out)
	}
}

func TestRunMergeGiveUpRevealsSample(t *testing.T) {
	idx := testIndex(3, "cat", "act")
	st, out := runScript(t, idx, 1, 2, "GIVEUP\n")
	if st.GivenUp != 1 {
		t.Fatalf("expected give-up to be tallied: %+v", st)
	}
	line := out[strings.Index(out, "Answer: "):]
	line = strings.TrimSpace(strings.TrimPrefix(line, "Answer: "))
	if words := strings.Split(line, ", "); len(words) != 2 {
		t.Fatalf("expected exactly the two sampled words, got %q", line)
	}
}

func TestRunCanceledContext(t *testing.T) {
	idx := testIndex(4, "sale")
	e := NewEngine(idx, NewScanner(strings.NewReader("sale\n")), &bytes.Buffer{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := e.Run(ctx)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if st.Attempted != 0 {
		t.Fatalf("expected no rounds, got %+v", st)
	}
}

func TestRunEmptyIndex(t *testing.T) {
	idx := testIndex(10, "cat")
	e := NewEngine(idx, NewScanner(strings.NewReader("")), &bytes.Buffer{}, zerolog.Nop())
	if _, err := e.Run(context.Background()); err != riddle.ErrEmptyIndex {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, State{Attempted: 1200, CorrectNoHint: 3, CorrectWithHint: 2, GivenUp: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"1,200", "Correct (no hint):   3", "Correct (with hint): 2", "Given up:            1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
