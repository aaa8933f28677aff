package morph

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestAnalyzeCommonNouns(t *testing.T) {
	analyzer, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("Failed to create analyzer: %v", err)
	}

	tokens, err := analyzer.Analyze("猫が走る。")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(tokens) == 0 {
		t.Fatal("No tokens found")
	}

	var nouns []string
	for _, tok := range tokens {
		if tok.IsCommonNoun() {
			nouns = append(nouns, tok.Surface+"/"+tok.Reading)
		}
	}
	if diff := pretty.Diff(nouns, []string{"猫/ネコ"}); len(diff) > 0 {
		t.Fatalf("common nouns mismatch:\n%s", diff)
	}

	// Verb base form comes from the IPA features.
	found := false
	for _, tok := range tokens {
		if tok.Surface == "走る" && tok.BaseForm == "走る" && tok.PrimaryPOS == "動詞" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected verb 走る in %v", tokens)
	}
}

func TestNewTokenFeatureFallbacks(t *testing.T) {
	tok := newToken("ｘｙｚ", []string{"名詞", "一般", "*", "*", "*", "*", "*"})
	want := Token{
		Surface:       "ｘｙｚ",
		BaseForm:      "ｘｙｚ",
		PartsOfSpeech: []string{"名詞", "一般", "*", "*", "*", "*", "*"},
		PrimaryPOS:    "名詞",
	}
	if diff := pretty.Diff(tok, want); len(diff) > 0 {
		t.Fatalf("token mismatch:\n%s", diff)
	}
	if !tok.IsCommonNoun() {
		t.Error("expected an unknown 名詞,一般 to still be a common noun")
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("一つ。二つ？ 三つ\n\n四つ")
	if len(SplitSentences(" \n\n\t")) != 0 {
		t.Error("blank pieces must be dropped")
	}
	want := []string{"一つ。", "二つ？", " 三つ\n", "四つ"}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Fatalf("sentences mismatch:\n%s", diff)
	}
}

func TestTokenIsCommonNoun(t *testing.T) {
	tests := []struct {
		tok  Token
		want bool
	}{
		{Token{PrimaryPOS: "名詞", PartsOfSpeech: []string{"名詞", "一般"}}, true},
		{Token{PrimaryPOS: "名詞", PartsOfSpeech: []string{"名詞", "固有名詞"}}, false},
		{Token{PrimaryPOS: "名詞", PartsOfSpeech: []string{"名詞"}}, false},
		{Token{PrimaryPOS: "動詞", PartsOfSpeech: []string{"動詞", "一般"}}, false},
	}
	for _, tt := range tests {
		if got := tt.tok.IsCommonNoun(); got != tt.want {
			t.Errorf("IsCommonNoun(%v) = %v; want %v", tt.tok.PartsOfSpeech, got, tt.want)
		}
	}
}

func TestSanitizeRuby(t *testing.T) {
	in := []byte(`<p><ruby>漢字<rp>(</rp><RT class="x">かんじ</RT><rp>)</rp></ruby>です</p>`)
	got := string(SanitizeRuby(in))
	if strings.Contains(got, "かんじ") || strings.Contains(got, "<rp>") {
		t.Fatalf("ruby not removed: %s", got)
	}
	if !strings.Contains(got, "漢字") {
		t.Fatalf("base text lost: %s", got)
	}
}
