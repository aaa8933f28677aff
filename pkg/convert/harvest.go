package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"

	"github.com/go-shiori/go-readability"
	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/ingest"
	"github.com/japaniel/sortrid/pkg/morph"
	"github.com/rs/zerolog"
)

// Harvester collects common nouns from Japanese prose.
type Harvester struct {
	Analyzer ingest.Tokenizer
	Pattern  *regexp.Regexp
	Workers  int
	Logger   zerolog.Logger
}

// NewHarvester creates a Harvester over the IPA analyzer. A nil pattern means
// DefaultReadingPattern.
func NewHarvester(pattern *regexp.Regexp, logger zerolog.Logger) (*Harvester, error) {
	a, err := morph.NewAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}
	if pattern == nil {
		pattern = regexp.MustCompile(DefaultReadingPattern)
	}
	return &Harvester{Analyzer: a, Pattern: pattern, Workers: 4, Logger: logger}, nil
}

// keep accepts common nouns with a matching reading.
func (h *Harvester) keep(tok morph.Token) (dictionary.Entry, bool) {
	if !tok.IsCommonNoun() || !h.Pattern.MatchString(tok.Reading) {
		return dictionary.Entry{}, false
	}
	orig := dictionary.ToHiragana(tok.Reading)
	return dictionary.Entry{OrigWord: orig, SortedWord: dictionary.SortKey(orig)}, true
}

// Harvest returns the distinct nouns of text in first-seen order.
func (h *Harvester) Harvest(ctx context.Context, text string) ([]dictionary.Entry, error) {
	sentences := morph.SplitSentences(text)
	hv := ingest.NewHarvester(h.Analyzer, h.Logger)
	if h.Workers > 0 {
		hv.Workers = h.Workers
	}
	return hv.Harvest(ctx, sentences, h.keep)
}

// HarvestHTML extracts the main article of an HTML page and harvests it.
// Furigana is stripped first. pageURL may be nil.
func (h *Harvester) HarvestHTML(ctx context.Context, r io.Reader, pageURL *url.URL) ([]dictionary.Entry, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body = morph.SanitizeRuby(body)

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}
	h.Logger.Info().Str("title", article.Title).Int("chars", len([]rune(article.TextContent))).Msg("article extracted")
	return h.Harvest(ctx, article.TextContent)
}
