package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a file reference resolves nowhere.
var ErrNotFound = errors.New("file not found")

// Resolve locates ref: as given (relative to the working directory) first,
// then under defaultDir.
func Resolve(ref, defaultDir string) (string, error) {
	if exists(ref) {
		return ref, nil
	}
	if defaultDir != "" && !filepath.IsAbs(ref) {
		p := filepath.Join(defaultDir, ref)
		if exists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", ref, ErrNotFound)
}

func exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
