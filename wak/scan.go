package wak

import (
	"cmp"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
)

// ScanOption configures a directory scan.
type ScanOption func(*scanConfig)

type scanConfig struct {
	logger *slog.Logger
}

// ScanWithLogger sets the logger for scan operations.
// If not set, logging is disabled.
func ScanWithLogger(logger *slog.Logger) ScanOption {
	return func(c *scanConfig) {
		c.logger = logger
	}
}

func (c *scanConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// ScanDir reads every regular file under dir and returns entries in
// canonical order: within each directory, files sort before
// subdirectories, and names compare rune by rune with an underscore
// ranking above every other rune at its position. The ordering is a
// strict total order, so scanning an unchanged tree twice yields the
// same sequence and hence the same archive bytes.
//
// Empty directories are not represented. Symbolic links and other
// irregular files are skipped.
func ScanDir(dir string, opts ...ScanOption) ([]Entry, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()
	return ScanFS(root.FS(), opts...)
}

// ScanFS is ScanDir over an fs.FS rooted at ".".
func ScanFS(fsys fs.FS, opts ...ScanOption) ([]Entry, error) {
	cfg := scanConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return scanTree(fsys, &cfg, ".", nil)
}

// scanTree appends entries for the subtree at dir in canonical order.
func scanTree(fsys fs.FS, cfg *scanConfig, dir string, entries []Entry) ([]Entry, error) {
	children, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	slices.SortFunc(children, compareSiblings)

	for _, d := range children {
		p := path.Join(dir, d.Name())
		switch {
		case d.IsDir():
			entries, err = scanTree(fsys, cfg, p, entries)
			if err != nil {
				return nil, err
			}
		case d.Type().IsRegular():
			content, err := fs.ReadFile(fsys, p)
			if err != nil {
				return nil, fmt.Errorf("read file %s: %w", p, err)
			}
			entries = append(entries, Entry{Path: p, Content: content})
		default:
			cfg.log().Debug("skipped irregular file", "path", p, "type", d.Type().String())
		}
	}
	return entries, nil
}

// compareSiblings orders the children of one directory: files before
// subdirectories, then names under compareNames. Files sort first so
// that a directory's own entries precede everything beneath its
// subdirectories in the flattened sequence.
func compareSiblings(a, b fs.DirEntry) int {
	if a.IsDir() != b.IsDir() {
		if a.IsDir() {
			return 1
		}
		return -1
	}
	return compareNames(a.Name(), b.Name())
}

// compareNames compares two names rune by rune. At the first position
// where they differ, an underscore ranks above every other rune,
// overriding plain code-point order; otherwise the lower code point
// sorts first. A name that is a strict prefix of the other sorts
// first. The scan is iterative so arbitrarily long names cannot
// exhaust the stack.
func compareNames(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		x, y := ra[i], rb[i]
		if x == y {
			continue
		}
		switch {
		case x == '_':
			return 1
		case y == '_':
			return -1
		case x < y:
			return -1
		default:
			return 1
		}
	}
	return cmp.Compare(len(ra), len(rb))
}
