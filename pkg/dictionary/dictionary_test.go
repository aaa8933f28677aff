package dictionary

import (
	"bytes"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/japaniel/sortrid/pkg/db"
	"github.com/kr/pretty"
	_ "github.com/mattn/go-sqlite3"
)

func TestReadCSV(t *testing.T) {
	in := "sorted_word,orig_word,level\naels,sale,1\naels,seal,2\nいぬ,いぬ,1\n"
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := []Entry{
		{OrigWord: "sale", SortedWord: "aels"},
		{OrigWord: "seal", SortedWord: "aels"},
		{OrigWord: "いぬ", SortedWord: "いぬ"},
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Fatalf("entries mismatch:\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing sorted column", "orig_word,other\nsale,x\n"},
		{"missing orig column", "sorted_word\naels\n"},
		{"short row", "orig_word,sorted_word\nsale,aels\nseal\n"},
	}
	for _, tt := range tests {
		if _, err := ReadCSV(strings.NewReader(tt.in)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	_, err := ReadCSV(strings.NewReader("orig_word\nsale\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("\ufefforig_word,sorted_word\ncat,act\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 1 || got[0].OrigWord != "cat" {
		t.Fatalf("unexpected entries %v", got)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	entries := []Entry{{"cat", "act"}, {"dog", "dgo"}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "orig_word,sorted_word\n") {
		t.Fatalf("missing header: %q", buf.String())
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := pretty.Diff(got, entries); len(diff) > 0 {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"cat", "act"},
		{"dog", "dgo"},
		{"actdgo", "acdgot"},
		{"ねこ", "こね"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SortKey(tt.in); got != tt.out {
			t.Errorf("SortKey(%q) = %q; want %q", tt.in, got, tt.out)
		}
	}
	if RuneLen("ねこ") != 2 {
		t.Errorf("RuneLen counts bytes")
	}
}

func TestToHiragana(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"ア", "あ"},
		{"ガ", "が"},
		{"ン", "ん"},
		{"ー", "ー"},
		{"abc", "abc"},
		{"あいう", "あいう"},
	}
	for _, tt := range tests {
		if got := ToHiragana(tt.in); got != tt.out {
			t.Errorf("ToHiragana(%q) = %q; want %q", tt.in, got, tt.out)
		}
		if got := ToHiragana(ToKatakana(tt.out)); got != tt.out {
			t.Errorf("ToHiragana(ToKatakana(%q)) = %q", tt.out, got)
		}
	}
	if got := ToKatakana("いぬ"); got != "イヌ" {
		t.Errorf("ToKatakana(いぬ) = %q", got)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "english"), 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "english", "words.csv")
	if err := os.WriteFile(p, []byte("orig_word,sorted_word\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(p, "")
	if err != nil || got != p {
		t.Fatalf("literal resolve: %q, %v", got, err)
	}
	got, err = Resolve("english/words.csv", dir)
	if err != nil || got != p {
		t.Fatalf("default dir resolve: %q, %v", got, err)
	}
	if _, err := Resolve("english/missing.csv", dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := Resolve("english", dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("directory must not resolve, got %v", err)
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.sqlite")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.InitDB(conn); err != nil {
		t.Fatalf("init db: %v", err)
	}
	for _, w := range []string{"cat", "act", "dog"} {
		if _, err := db.InsertEntry(conn, 0, w, SortKey(w)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	conn.Close()

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []Entry{{"cat", "act"}, {"act", "act"}, {"dog", "dgo"}}
	if diff := pretty.Diff(d.Entries, want); len(diff) > 0 {
		t.Fatalf("entries mismatch:\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
