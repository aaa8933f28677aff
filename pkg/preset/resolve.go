package preset

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/japaniel/sortrid/pkg/dictionary"
	"github.com/rs/zerolog"
)

// DefaultName is the preset used when no name is given. It needs no file on
// disk; when one exists it is overlaid onto the built-in baseline.
const DefaultName = "default"

// ConfigurationError reports a preset or dictionary file that could not be
// located or parsed. It is fatal for preset resolution.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Config is a resolved preset with every dictionary loaded.
type Config struct {
	Name       string
	Main       []*dictionary.Dictionary
	Sub        []*dictionary.Dictionary
	MinWordLen int
	MaxWordLen int
}

// Resolver turns preset names into loaded configurations.
type Resolver struct {
	// PresetDir is searched for preset files not found by literal path.
	PresetDir string
	// DictDir is searched for dictionary files not found by literal path.
	DictDir string
	Logger  zerolog.Logger
}

// NewResolver creates a resolver for the given default directories.
func NewResolver(presetDir, dictDir string, logger zerolog.Logger) *Resolver {
	return &Resolver{PresetDir: presetDir, DictDir: dictDir, Logger: logger}
}

// Resolve overlays the named preset onto the default preset and loads every
// dictionary it references. Any failure yields a *ConfigurationError and no
// partial configuration.
func (r *Resolver) Resolve(name string) (*Config, error) {
	if name == "" {
		name = DefaultName
	}

	base := Default()
	if path, err := r.findPreset(DefaultName); err == nil {
		overlay, err := readPreset(path)
		if err != nil {
			return nil, err
		}
		base = Merge(base, overlay)
		r.Logger.Debug().Str("path", path).Msg("default preset file applied")
	}

	p := base
	if name != DefaultName {
		path, err := r.findPreset(name)
		if err != nil {
			return nil, &ConfigurationError{Path: name, Err: err}
		}
		overlay, err := readPreset(path)
		if err != nil {
			return nil, err
		}
		p = Merge(base, overlay)
		r.Logger.Debug().Str("path", path).Msg("preset file applied")
	}

	return r.load(name, p)
}

func (r *Resolver) load(name string, p Preset) (*Config, error) {
	cfg := &Config{
		Name:       name,
		MinWordLen: *p.MinWordLen,
		MaxWordLen: *p.MaxWordLen,
	}
	if cfg.MinWordLen < 1 || cfg.MinWordLen > cfg.MaxWordLen {
		return nil, &ConfigurationError{
			Path: name,
			Err:  fmt.Errorf("invalid word length bounds [%d, %d]", cfg.MinWordLen, cfg.MaxWordLen),
		}
	}
	if len(p.MainDicts) == 0 {
		return nil, &ConfigurationError{Path: name, Err: errors.New("no main dictionaries")}
	}

	var err error
	if cfg.Main, err = r.loadAll(p.MainDicts); err != nil {
		return nil, err
	}
	if cfg.Sub, err = r.loadAll(p.SubDicts); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Resolver) loadAll(refs []string) ([]*dictionary.Dictionary, error) {
	out := make([]*dictionary.Dictionary, 0, len(refs))
	for _, ref := range refs {
		path, err := dictionary.Resolve(ref, r.DictDir)
		if err != nil {
			return nil, &ConfigurationError{Path: ref, Err: err}
		}
		d, err := dictionary.Load(path)
		if err != nil {
			return nil, &ConfigurationError{Path: path, Err: err}
		}
		r.Logger.Debug().
			Str("path", path).
			Str("entries", humanize.Comma(int64(d.Len()))).
			Msg("dictionary loaded")
		out = append(out, d)
	}
	return out, nil
}

// findPreset tries name as given and with each known extension, first
// literally and then under PresetDir.
func (r *Resolver) findPreset(name string) (string, error) {
	var lastErr error
	for _, candidate := range []string{name, name + ".json", name + ".ini"} {
		path, err := dictionary.Resolve(candidate, r.PresetDir)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func readPreset(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, &ConfigurationError{Path: path, Err: err}
	}
	defer f.Close()
	p, err := Parse(f, FormatOf(path))
	if err != nil {
		return Preset{}, &ConfigurationError{Path: path, Err: err}
	}
	return p, nil
}
