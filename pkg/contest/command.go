package contest

import (
	"errors"
	"strconv"
	"strings"
)

// Command keywords. They are matched exactly so that lowercase dictionary
// words such as "exit" remain answerable.
const (
	KeywordGiveUp = "GIVEUP"
	KeywordHint   = "HINT"
	KeywordExit   = "EXIT"
)

// AnswerSeparators split a merge answer into words.
var AnswerSeparators = []string{",", "，", "、"}

// ErrInputSyntax marks malformed input. The round continues without penalty.
var ErrInputSyntax = errors.New("input syntax error")

// CommandKind classifies one line of player input.
type CommandKind int

const (
	CmdEmpty CommandKind = iota
	CmdAnswer
	CmdGiveUp
	CmdHint
	CmdExit
)

// Command is a parsed input line. Arg holds the hint argument for CmdHint and
// the answer text for CmdAnswer.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand interprets a trimmed input line. HINT may be separated from
// its argument by any whitespace.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CmdEmpty}
	}
	switch fields := strings.Fields(line); {
	case line == KeywordGiveUp:
		return Command{Kind: CmdGiveUp}
	case line == KeywordExit:
		return Command{Kind: CmdExit}
	case fields[0] == KeywordHint:
		return Command{Kind: CmdHint, Arg: strings.TrimSpace(line[len(KeywordHint):])}
	}
	return Command{Kind: CmdAnswer, Arg: line}
}

// HintStatus is the outcome of parsing a hint argument.
type HintStatus int

const (
	HintValid HintStatus = iota
	// HintSyntax: the argument is missing or not an integer.
	HintSyntax
	// HintRange: the argument is an integer but not positive.
	HintRange
)

// HintRequest is a parsed hint argument. N is meaningful only when Status
// is HintValid. Upper bounds depend on the puzzle and are checked there.
type HintRequest struct {
	Status HintStatus
	N      int
}

// ParseHint parses the argument of a HINT command.
func ParseHint(arg string) HintRequest {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return HintRequest{Status: HintSyntax}
	}
	if n <= 0 {
		return HintRequest{Status: HintRange, N: n}
	}
	return HintRequest{Status: HintValid, N: n}
}

// SplitAnswer splits line into exactly n words using the first separator
// that produces n non-empty words.
func SplitAnswer(line string, n int) ([]string, bool) {
	for _, sep := range AnswerSeparators {
		parts := strings.Split(line, sep)
		if len(parts) != n {
			continue
		}
		words := make([]string, 0, n)
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				words = append(words, p)
			}
		}
		if len(words) == n {
			return words, true
		}
	}
	return nil, false
}
