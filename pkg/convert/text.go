package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/japaniel/sortrid/pkg/dictionary"
)

// FromText reads "orig sorted" lines. A line with only the original word gets
// its sorted key computed. Blank lines and lines starting with # are skipped.
func FromText(r io.Reader) ([]dictionary.Entry, error) {
	var entries []dictionary.Entry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			entries = append(entries, dictionary.Entry{OrigWord: fields[0], SortedWord: dictionary.SortKey(fields[0])})
		case 2:
			entries = append(entries, dictionary.Entry{OrigWord: fields[0], SortedWord: fields[1]})
		default:
			return nil, fmt.Errorf("line %d: expected \"orig [sorted]\", got %d fields", lineNo, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ToText writes one "orig sorted" line per entry.
func ToText(w io.Writer, entries []dictionary.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.OrigWord, e.SortedWord); err != nil {
			return err
		}
	}
	return bw.Flush()
}
