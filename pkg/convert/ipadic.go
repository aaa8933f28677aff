// Package convert turns foreign word lists into canonical dictionaries and
// back again.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/morph"
)

// DefaultReadingPattern accepts readings written only in katakana.
const DefaultReadingPattern = `^[ァ-ヴー]+$`

// IPAdic column positions.
const (
	ipaSurface = iota
	ipaLeftID
	ipaRightID
	ipaCost
	ipaPOS
	ipaPOS1
	ipaPOS2
	ipaPOS3
	ipaConjType
	ipaConjForm
	ipaBase
	ipaReading
	ipaPronunciation

	ipaColumns
)

// ErrShortRow is returned for a record with fewer than the 13 IPAdic columns.
var ErrShortRow = errors.New("short ipadic row")

// CompilePattern compiles a reading pattern, falling back to
// DefaultReadingPattern when expr is empty.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = DefaultReadingPattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("reading pattern %q: %w", expr, err)
	}
	return re, nil
}

// FromIPADic reads an IPAdic CSV export and keeps the common nouns whose
// reading matches pattern. The original word is the reading in hiragana.
// Entries are de-duplicated and keep input order.
func FromIPADic(r io.Reader, pattern *regexp.Regexp) ([]dictionary.Entry, error) {
	if pattern == nil {
		pattern = regexp.MustCompile(DefaultReadingPattern)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	seen := make(map[string]struct{})
	var entries []dictionary.Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < ipaColumns {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w: %d columns", line, ErrShortRow, len(rec))
		}
		if rec[ipaPOS] != morph.POSNoun || rec[ipaPOS1] != morph.POSSubGeneral {
			continue
		}
		reading := rec[ipaReading]
		if !pattern.MatchString(reading) {
			continue
		}
		orig := dictionary.ToHiragana(reading)
		if _, dup := seen[orig]; dup {
			continue
		}
		seen[orig] = struct{}{}
		entries = append(entries, dictionary.Entry{OrigWord: orig, SortedWord: dictionary.SortKey(orig)})
	}
	return entries, nil
}

// ToIPADic writes entries as IPAdic common-noun rows, surface in hiragana
// and reading in katakana.
func ToIPADic(w io.Writer, entries []dictionary.Entry) error {
	cw := csv.NewWriter(w)
	for _, e := range entries {
		reading := dictionary.ToKatakana(e.OrigWord)
		rec := make([]string, ipaColumns)
		rec[ipaSurface] = e.OrigWord
		rec[ipaLeftID], rec[ipaRightID], rec[ipaCost] = "0", "0", "0"
		rec[ipaPOS] = morph.POSNoun
		rec[ipaPOS1] = morph.POSSubGeneral
		rec[ipaPOS2], rec[ipaPOS3] = "*", "*"
		rec[ipaConjType], rec[ipaConjForm] = "*", "*"
		rec[ipaBase] = e.OrigWord
		rec[ipaReading] = reading
		rec[ipaPronunciation] = reading
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
