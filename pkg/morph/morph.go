// Package morph tags Japanese text with the kagome IPA dictionary so that
// converters can pick dictionary words out of prose.
package morph

import (
	"regexp"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// IPA part-of-speech labels of a common noun (名詞,一般).
const (
	POSNoun       = "名詞"
	POSSubGeneral = "一般"
)

// Positions in an IPA feature list.
const (
	featPOS     = 0
	featPOS1    = 1
	featBase    = 6
	featReading = 7
)

// unknownFeature marks an empty IPA feature.
const unknownFeature = "*"

// Token is one morpheme. Reading is katakana; it is empty for unknown words.
type Token struct {
	Surface       string
	BaseForm      string
	Reading       string
	PartsOfSpeech []string
	PrimaryPOS    string
}

// IsCommonNoun reports whether the token is tagged 名詞,一般.
func (t Token) IsCommonNoun() bool {
	return t.PrimaryPOS == POSNoun && len(t.PartsOfSpeech) > featPOS1 && t.PartsOfSpeech[featPOS1] == POSSubGeneral
}

// Analyzer tags text. It is safe for concurrent use.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer loads the IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze tags text, skipping whitespace and dummy morphemes.
func (a *Analyzer) Analyze(text string) ([]Token, error) {
	var out []Token
	for _, m := range a.t.Tokenize(text) {
		if m.Class == tokenizer.DUMMY || strings.TrimSpace(m.Surface) == "" {
			continue
		}
		out = append(out, newToken(m.Surface, m.Features()))
	}
	return out, nil
}

func newToken(surface string, features []string) Token {
	feature := func(fallback string, idx int) string {
		if idx < len(features) && features[idx] != unknownFeature {
			return features[idx]
		}
		return fallback
	}
	return Token{
		Surface:       surface,
		BaseForm:      feature(surface, featBase),
		Reading:       feature("", featReading),
		PartsOfSpeech: features,
		PrimaryPOS:    feature("", featPOS),
	}
}

// SplitSentences cuts text after 。！？ and newlines. Blank pieces are
// dropped; the rest keep their terminators.
func SplitSentences(text string) []string {
	var (
		out   []string
		start int
	)
	emit := func(end int) {
		if piece := text[start:end]; strings.TrimSpace(piece) != "" {
			out = append(out, piece)
		}
		start = end
	}
	for i, r := range text {
		switch r {
		case '。', '！', '？', '\n':
			emit(i + len(string(r)))
		}
	}
	emit(len(text))
	return out
}

var rubyAnnotation = regexp.MustCompile(`(?si)<(rt|rp)\b[^>]*>.*?</(rt|rp)>`)

// SanitizeRuby deletes furigana (<rt>) and fallback parentheses (<rp>) so an
// annotated word is read once.
func SanitizeRuby(content []byte) []byte {
	return rubyAnnotation.ReplaceAll(content, nil)
}
