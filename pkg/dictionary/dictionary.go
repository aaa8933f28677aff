package dictionary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column names of the canonical record format.
const (
	ColOrigWord   = "orig_word"
	ColSortedWord = "sorted_word"
)

// Entry is one record of a canonical dictionary.
// SortedWord is trusted to be SortKey(OrigWord); it is not recomputed on load.
type Entry struct {
	OrigWord   string
	SortedWord string
}

// Dictionary is an ordered, read-only collection of entries loaded from one file.
type Dictionary struct {
	Path    string
	Entries []Entry
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.Entries) }

// ErrMissingColumn is returned when the header lacks a canonical column.
var ErrMissingColumn = errors.New("missing column")

// Load reads the dictionary at path. SQLite files (.db, .sqlite, .sqlite3) are
// read from the dictionary store; everything else is parsed as canonical CSV.
func Load(path string) (*Dictionary, error) {
	if IsSQLitePath(path) {
		entries, err := loadSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return &Dictionary{Path: path, Entries: entries}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Dictionary{Path: path, Entries: entries}, nil
}

// ReadCSV parses canonical records from r. The header must name both
// orig_word and sorted_word; other columns are ignored. A row that is too
// short to hold either field is an error, never skipped.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file, expected header %s,%s", ErrMissingColumn, ColOrigWord, ColSortedWord)
	}
	if err != nil {
		return nil, err
	}

	origIdx, sortedIdx := -1, -1
	for i, name := range header {
		// Spreadsheet exports often carry a BOM on the first cell.
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		switch name {
		case ColOrigWord:
			origIdx = i
		case ColSortedWord:
			sortedIdx = i
		}
	}
	if origIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColOrigWord)
	}
	if sortedIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColSortedWord)
	}
	need := max(origIdx, sortedIdx) + 1

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < need {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, need, len(rec))
		}
		entries = append(entries, Entry{
			OrigWord:   rec[origIdx],
			SortedWord: rec[sortedIdx],
		})
	}
	return entries, nil
}

// WriteCSV writes entries in the canonical record format, header first.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColOrigWord, ColSortedWord}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.OrigWord, e.SortedWord}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// IsSQLitePath reports whether path names a SQLite dictionary store.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
