// Package preset resolves a named bundle of dictionaries and word-length
// bounds into a loaded configuration.
package preset

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	ini "github.com/vaughan0/go-ini"
)

// Recognized preset keys.
const (
	KeyMainDicts  = "maindicts"
	KeySubDicts   = "subdicts"
	KeyMinWordLen = "minwordlen"
	KeyMaxWordLen = "maxwordlen"
)

// Baseline values used when neither a default preset file nor a named
// preset sets a field.
const (
	DefaultMinWordLen = 5
	DefaultMaxWordLen = 32
)

// Preset is the on-disk form of a preset. A nil field is absent and
// inherits from the preset it is merged onto.
type Preset struct {
	MainDicts  []string `json:"maindicts"`
	SubDicts   []string `json:"subdicts"`
	MinWordLen *int     `json:"minwordlen"`
	MaxWordLen *int     `json:"maxwordlen"`
}

// Default returns the baseline preset every named preset is overlaid onto.
func Default() Preset {
	minLen, maxLen := DefaultMinWordLen, DefaultMaxWordLen
	return Preset{
		MainDicts: []string{"english/ejdict_level0_words.csv"},
		SubDicts: []string{
			"english/ejdict_level1_words.csv",
			"english/ejdict_level2_words.csv",
		},
		MinWordLen: &minLen,
		MaxWordLen: &maxLen,
	}
}

// Merge overlays the present fields of overlay onto base.
func Merge(base, overlay Preset) Preset {
	out := base
	if overlay.MainDicts != nil {
		out.MainDicts = overlay.MainDicts
	}
	if overlay.SubDicts != nil {
		out.SubDicts = overlay.SubDicts
	}
	if overlay.MinWordLen != nil {
		out.MinWordLen = overlay.MinWordLen
	}
	if overlay.MaxWordLen != nil {
		out.MaxWordLen = overlay.MaxWordLen
	}
	return out
}

// Format is the encoding of a preset file.
type Format string

const (
	FormatJSON Format = "json"
	FormatINI  Format = "ini"
)

// FormatOf picks the preset format from a file name; anything that is not
// .ini is read as JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		return FormatINI
	}
	return FormatJSON
}

// Parse decodes a preset, rejecting keys it does not recognize.
func Parse(r io.Reader, format Format) (Preset, error) {
	switch format {
	case FormatJSON:
		return parseJSON(r)
	case FormatINI:
		return parseINI(r)
	}
	return Preset{}, fmt.Errorf("unknown preset format %q", format)
}

func parseJSON(r io.Reader) (Preset, error) {
	var p Preset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}

// parseINI reads top-level "key = value" pairs. List values are
// comma-separated; an empty value is an empty list.
func parseINI(r io.Reader) (Preset, error) {
	f, err := ini.Load(r)
	if err != nil {
		return Preset{}, fmt.Errorf("decode preset: %w", err)
	}

	var p Preset
	for section, kv := range f {
		if section != "" {
			return Preset{}, fmt.Errorf("decode preset: unexpected section [%s]", section)
		}
		for key, value := range kv {
			switch strings.ToLower(key) {
			case KeyMainDicts:
				p.MainDicts = splitList(value)
			case KeySubDicts:
				p.SubDicts = splitList(value)
			case KeyMinWordLen:
				n, err := strconv.Atoi(value)
				if err != nil {
					return Preset{}, fmt.Errorf("decode preset: %s: %w", key, err)
				}
				p.MinWordLen = &n
			case KeyMaxWordLen:
				n, err := strconv.Atoi(value)
				if err != nil {
					return Preset{}, fmt.Errorf("decode preset: %s: %w", key, err)
				}
				p.MaxWordLen = &n
			default:
				return Preset{}, fmt.Errorf("decode preset: unknown key %q", key)
			}
		}
	}
	return p, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
