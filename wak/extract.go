package wak

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// defaultExtractWorkers bounds parallel file writes when no worker
// count is configured.
const defaultExtractWorkers = 4

// ExtractOption configures an extraction.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	workers   int
	overwrite bool
	logger    *slog.Logger
}

// ExtractWithWorkers sets the number of workers for parallel writes.
// Values < 0 force serial extraction. Zero uses the default.
func ExtractWithWorkers(n int) ExtractOption {
	return func(c *extractConfig) {
		c.workers = n
	}
}

// ExtractWithOverwrite allows overwriting existing files.
// By default, existing files are skipped.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithLogger sets the logger for extraction.
// If not set, logging is disabled.
func ExtractWithLogger(logger *slog.Logger) ExtractOption {
	return func(c *extractConfig) {
		c.logger = logger
	}
}

func (c *extractConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Extract writes entries to destDir, creating it and any parent
// directories as needed. Each file is written to a temp file in its
// final directory and renamed into place, so a partially written file
// is never visible at its final path. Paths must satisfy fs.ValidPath;
// anything else (absolute paths, ".." elements) is rejected before any
// write happens.
func Extract(entries []Entry, destDir string, opts ...ExtractOption) error {
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, e := range entries {
		if !fs.ValidPath(e.Path) || e.Path == "." {
			return &fs.PathError{Op: "extract", Path: e.Path, Err: fs.ErrInvalid}
		}
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return fmt.Errorf("create destination %s: %w", destDir, err)
	}
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return fmt.Errorf("open destination root %s: %w", destDir, err)
	}
	defer root.Close()

	workers := cfg.workers
	switch {
	case workers < 0:
		workers = 1
	case workers == 0:
		workers = defaultExtractWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range entries {
		e := &entries[i]
		g.Go(func() error {
			return writeEntry(root, e, &cfg)
		})
	}
	return g.Wait()
}

// writeEntry materializes one entry inside root.
func writeEntry(root *os.Root, e *Entry, cfg *extractConfig) error {
	rel := filepath.FromSlash(e.Path)

	if !cfg.overwrite {
		if _, err := root.Stat(rel); err == nil {
			cfg.log().Debug("skipped existing file", "path", e.Path)
			return nil
		}
	}

	dir := filepath.Dir(rel)
	if err := root.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, tmpRel, err := createTempFile(root, dir, ".wak-")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", e.Path, err)
	}
	if _, err := tmp.Write(e.Content); err != nil {
		tmp.Close()
		_ = root.Remove(tmpRel)
		return fmt.Errorf("write %s: %w", e.Path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = root.Remove(tmpRel)
		return fmt.Errorf("close temp file for %s: %w", e.Path, err)
	}
	if err := root.Rename(tmpRel, rel); err != nil {
		_ = root.Remove(tmpRel)
		return fmt.Errorf("rename to %s: %w", e.Path, err)
	}
	return nil
}

func createTempFile(root *os.Root, dir, prefix string) (*os.File, string, error) {
	const attempts = 10
	for range attempts {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, "", err
		}
		rel := filepath.Join(dir, prefix+hex.EncodeToString(b[:]))
		f, err := root.OpenFile(rel, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return f, rel, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", errors.New("create temp file: exhausted retries")
}
