package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/japaniel/sortrid/pkg/config"
	"github.com/japaniel/sortrid/pkg/contest"
	"github.com/japaniel/sortrid/pkg/convert"
	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/japaniel/sortrid/pkg/preset"
	"github.com/japaniel/sortrid/pkg/riddle"
	"github.com/rs/zerolog"
)

var version = "dev"

const usage = `Usage:
  sortrid [-v] [-version] contest [-preset NAME] [-count N] [-merge M] [-seed S] [-history FILE]
  sortrid [-v] convert -from ipadic|text|article|html -in FILE -out FILE.csv|.sqlite [-pattern RE] [-url URL] [-encoding ENC]
  sortrid [-v] invconv -to ipadic|text -in FILE.csv|.sqlite -out FILE
`

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("sortrid", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	verbose := fs.Bool("v", false, "Enable debug logging")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("sortrid", version)
		return
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, *verbose)

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "contest":
		// Contests stop on EXIT or end of input; Ctrl-C is not trapped.
		err = runContest(context.Background(), cfg, logger, args[1:])
	case "convert":
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = runConvert(ctx, logger, args[1:])
		cancel()
	case "invconv":
		err = runInvconv(logger, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		fs.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg(args[0] + " failed")
	}
}

func newLogger(w io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
}

func runContest(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("contest", flag.ExitOnError)
	presetName := fs.String("preset", preset.DefaultName, "Preset name or path")
	count := fs.Int("count", 0, "Number of problems (0 plays until EXIT)")
	merge := fs.Int("merge", 1, "Words per problem; 1 or less asks single words")
	seed := fs.Uint64("seed", 0, "Random seed (0 picks one)")
	history := fs.String("history", "", "Readline history file")
	fs.Parse(args)

	resolver := preset.NewResolver(cfg.PresetDir, cfg.DictDir, logger)
	pc, err := resolver.Resolve(*presetName)
	if err != nil {
		return err
	}
	idx := riddle.Build(pc, logger)
	if idx.Len() == 0 {
		return riddle.ErrEmptyIndex
	}

	var in contest.LineReader
	if contest.IsTerminal(os.Stdin.Fd()) {
		c, err := contest.NewConsole(*history)
		if err != nil {
			return fmt.Errorf("open console: %w", err)
		}
		in = c
	} else {
		in = contest.NewScanner(os.Stdin)
	}
	defer in.Close()

	engine := contest.NewEngine(idx, in, os.Stdout, logger)
	engine.Count = *count
	engine.Arity = *merge
	if *seed != 0 {
		engine.Rand = rand.New(rand.NewPCG(*seed, *seed))
	}

	st, runErr := engine.Run(ctx)
	if err := contest.WriteSummary(os.Stdout, st); err != nil {
		return err
	}
	return runErr
}

func runConvert(ctx context.Context, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	from := fs.String("from", "", "Input kind: ipadic, text, article or html")
	in := fs.String("in", "", "Input file")
	out := fs.String("out", "", "Output dictionary (.csv, or .db/.sqlite/.sqlite3)")
	pattern := fs.String("pattern", "", "Reading filter (default "+convert.DefaultReadingPattern+")")
	pageURL := fs.String("url", "", "Page URL for html input; fetched when -in is empty")
	encoding := fs.String("encoding", "utf-8", "Input encoding: utf-8, euc-jp or shift-jis")
	workers := fs.Int("workers", 4, "Analyzer workers for article and html input")
	fs.Parse(args)

	if *out == "" {
		return errors.New("-out is required")
	}
	re, err := convert.CompilePattern(*pattern)
	if err != nil {
		return err
	}

	var src io.Reader
	source := *in
	switch {
	case *in != "":
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		if src, err = convert.Decode(f, *encoding); err != nil {
			return err
		}
	case *from == "html" && *pageURL != "":
		logger.Info().Str("url", *pageURL).Msg("fetching")
		body, err := convert.Fetch(ctx, nil, *pageURL)
		if err != nil {
			return err
		}
		src = bytes.NewReader(body)
		source = *pageURL
	default:
		return errors.New("-in is required")
	}

	var entries []dictionary.Entry
	switch *from {
	case "ipadic":
		entries, err = convert.FromIPADic(src, re)
	case "text":
		entries, err = convert.FromText(src)
	case "article", "html":
		h, herr := convert.NewHarvester(re, logger)
		if herr != nil {
			return herr
		}
		h.Workers = *workers
		if *from == "article" {
			var text []byte
			if text, err = io.ReadAll(src); err == nil {
				entries, err = h.Harvest(ctx, string(text))
			}
		} else {
			var u *url.URL
			if *pageURL != "" {
				if u, err = url.Parse(*pageURL); err != nil {
					return fmt.Errorf("parse -url: %w", err)
				}
			}
			entries, err = h.HarvestHTML(ctx, src, u)
		}
	default:
		return fmt.Errorf("unknown -from %q", *from)
	}
	if err != nil {
		return fmt.Errorf("convert %s: %w", source, err)
	}

	n, err := convert.Save(ctx, *out, *from, source, entries)
	if err != nil {
		return err
	}
	logger.Info().
		Str("out", *out).
		Str("entries", humanize.Comma(int64(len(entries)))).
		Str("written", humanize.Comma(int64(n))).
		Msg("dictionary written")
	return nil
}

func runInvconv(logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("invconv", flag.ExitOnError)
	to := fs.String("to", "", "Output kind: ipadic or text")
	in := fs.String("in", "", "Canonical dictionary (.csv, or .db/.sqlite/.sqlite3)")
	out := fs.String("out", "", "Output file")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return errors.New("-in and -out are required")
	}
	var write func(io.Writer, []dictionary.Entry) error
	switch strings.ToLower(*to) {
	case "ipadic":
		write = convert.ToIPADic
	case "text":
		write = convert.ToText
	default:
		return fmt.Errorf("unknown -to %q", *to)
	}

	d, err := dictionary.Load(*in)
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := write(f, d.Entries); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info().Str("out", *out).Str("entries", humanize.Comma(int64(d.Len()))).Msg("dictionary exported")
	return nil
}
