package contest

import (
	"bufio"
	"io"

	"github.com/chzyer/readline"
)

// LineReader supplies one line of player input per call. It returns io.EOF
// when no more input will arrive.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// Console reads from an interactive terminal with line editing and history.
type Console struct {
	rl *readline.Instance
}

// NewConsole opens the terminal. historyFile may be empty to disable history.
func NewConsole(historyFile string) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "EXIT",
	})
	if err != nil {
		return nil, err
	}
	return &Console{rl: rl}, nil
}

// ReadLine blocks until a line is entered. Ctrl-C discards the current line.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	for {
		line, err := c.rl.Readline()
		switch err {
		case nil:
			return line, nil
		case readline.ErrInterrupt:
			continue
		default:
			return "", err
		}
	}
}

// Close restores the terminal.
func (c *Console) Close() error { return c.rl.Close() }

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd uintptr) bool { return readline.IsTerminal(int(fd)) }

// Scanner reads lines from a non-interactive source such as a pipe. Prompts
// are not echoed.
type Scanner struct {
	sc *bufio.Scanner
	c  io.Closer
}

// NewScanner wraps r. If r is an io.Closer it is closed by Close.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{sc: bufio.NewScanner(r)}
	if c, ok := r.(io.Closer); ok {
		s.c = c
	}
	return s
}

func (s *Scanner) ReadLine(string) (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *Scanner) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}
